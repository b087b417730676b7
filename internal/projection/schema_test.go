package projection

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/agentdeck/agentdeck/internal/model"
)

func sampleSkill() model.Skill {
	return model.Skill{
		ID:                     1,
		Name:                   "test-agent",
		Description:            "An agent skill",
		Content:                "You are a helpful assistant.",
		AllowedTools:           []string{"Bash", "Glob"},
		Model:                  "opus",
		DisableModelInvocation: true,
		Source:                 "manual",
	}
}

func minimalSkill() model.Skill {
	return model.Skill{
		ID:      2,
		Name:    "minimal",
		Content: "Minimal content.",
		Source:  "manual",
	}
}

func sampleAgent() model.SubAgent {
	return model.SubAgent{
		ID:             1,
		Name:           "code-reviewer",
		Description:    "Reviews code for bugs and improvements",
		Content:        "You are a code review expert.",
		Tools:          []string{"Read", "Grep", "Glob"},
		Model:          "sonnet",
		PermissionMode: "bypassPermissions",
		Skills:         []string{"lint", "format"},
		Source:         "manual",
	}
}

func minimalAgent() model.SubAgent {
	return model.SubAgent{
		ID:          2,
		Name:        "minimal-agent",
		Description: "A minimal agent",
		Content:     "Do the minimum.",
		Source:      "manual",
	}
}

func TestSkillDocumentFull(t *testing.T) {
	doc := SchemaFor(model.ClaudeCode).SkillDocument(sampleSkill())

	if !strings.HasPrefix(doc, "---\n") {
		t.Errorf("document does not open a metadata block:\n%s", doc)
	}
	for _, want := range []string{
		"name: test-agent\n",
		"description: An agent skill\n",
		"allowed-tools: Bash, Glob\n",
		"model: opus\n",
		"disable-model-invocation: true\n",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q:\n%s", want, doc)
		}
	}
	if !strings.Contains(doc, "---\n\nYou are a helpful assistant.") {
		t.Errorf("document body not separated from metadata:\n%s", doc)
	}
}

func TestSkillDocumentFieldOrder(t *testing.T) {
	doc := SchemaFor(model.ClaudeCode).SkillDocument(sampleSkill())

	order := []string{"name:", "description:", "allowed-tools:", "model:", "disable-model-invocation:"}
	last := -1
	for _, key := range order {
		idx := strings.Index(doc, key)
		if idx == -1 {
			t.Fatalf("document missing key %q:\n%s", key, doc)
		}
		if idx < last {
			t.Errorf("key %q emitted out of order:\n%s", key, doc)
		}
		last = idx
	}
}

func TestSkillDocumentMinimal(t *testing.T) {
	doc := SchemaFor(model.ClaudeCode).SkillDocument(minimalSkill())

	if !strings.Contains(doc, "name: minimal\n") {
		t.Errorf("name must always be emitted:\n%s", doc)
	}
	for _, absent := range []string{"description:", "allowed-tools:", "model:", "disable-model-invocation:"} {
		if strings.Contains(doc, absent) {
			t.Errorf("empty optional field %q must be omitted:\n%s", absent, doc)
		}
	}
}

// Empty-but-present optional fields must serialize byte-identically to
// absent fields.
func TestSkillDocumentOmissionLaw(t *testing.T) {
	absent := minimalSkill()

	emptied := minimalSkill()
	emptied.Description = ""
	emptied.AllowedTools = []string{}
	emptied.Model = ""

	for _, target := range model.AllTargets() {
		schema := SchemaFor(target)
		if got, want := schema.SkillDocument(emptied), schema.SkillDocument(absent); got != want {
			t.Errorf("%s: empty fields rendered differently from absent fields:\ngot:\n%s\nwant:\n%s", target, got, want)
		}
	}
}

// Skill documents are target-independent: only the artifact path layout
// differs between runtimes.
func TestSkillDocumentSharedAcrossTargets(t *testing.T) {
	s := sampleSkill()
	claude := SchemaFor(model.ClaudeCode).SkillDocument(s)
	opencode := SchemaFor(model.OpenCode).SkillDocument(s)
	if claude != opencode {
		t.Errorf("skill documents diverged between targets:\nclaude:\n%s\nopencode:\n%s", claude, opencode)
	}
}

func TestAgentDocumentClaude(t *testing.T) {
	doc := SchemaFor(model.ClaudeCode).AgentDocument(sampleAgent())

	for _, want := range []string{
		"name: code-reviewer\n",
		"description: Reviews code for bugs and improvements\n",
		"tools: Read, Grep, Glob\n",
		"model: sonnet\n",
		"permissionMode: bypassPermissions\n",
		"skills: lint, format\n",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q:\n%s", want, doc)
		}
	}
	if !strings.Contains(doc, "---\n\nYou are a code review expert.") {
		t.Errorf("document body not separated from metadata:\n%s", doc)
	}
}

func TestAgentDocumentClaudeMinimal(t *testing.T) {
	doc := SchemaFor(model.ClaudeCode).AgentDocument(minimalAgent())

	if !strings.Contains(doc, "name: minimal-agent\n") {
		t.Errorf("name must always be emitted:\n%s", doc)
	}
	if !strings.Contains(doc, "description: A minimal agent\n") {
		t.Errorf("description must always be emitted:\n%s", doc)
	}
	for _, absent := range []string{"tools:", "model:", "permissionMode:", "skills:"} {
		if strings.Contains(doc, absent) {
			t.Errorf("empty optional field %q must be omitted:\n%s", absent, doc)
		}
	}
}

func TestAgentDocumentOpenCode(t *testing.T) {
	doc := SchemaFor(model.OpenCode).AgentDocument(sampleAgent())

	if !strings.Contains(doc, "description: \"Reviews code for bugs and improvements\"\n") {
		t.Errorf("description must be double-quoted:\n%s", doc)
	}
	if !strings.Contains(doc, "tools:\n") {
		t.Errorf("tools must be a nested block:\n%s", doc)
	}
	for _, want := range []string{"  read: true\n", "  grep: true\n", "  glob: true\n"} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing tool entry %q:\n%s", want, doc)
		}
	}
	if !strings.Contains(doc, "model: sonnet\n") {
		t.Errorf("document missing model:\n%s", doc)
	}
}

// Runtime-exclusive fields never leak into the other runtime's document.
func TestAgentDocumentSchemaExclusivity(t *testing.T) {
	a := sampleAgent()

	opencode := SchemaFor(model.OpenCode).AgentDocument(a)
	for _, absent := range []string{"name:", "permissionMode:", "skills:", "tools: Read"} {
		if strings.Contains(opencode, absent) {
			t.Errorf("opencode document must not contain %q:\n%s", absent, opencode)
		}
	}

	claude := SchemaFor(model.ClaudeCode).AgentDocument(a)
	if strings.Contains(claude, "  read: true") {
		t.Errorf("claude document must not contain nested tool map:\n%s", claude)
	}
	if strings.Contains(claude, "description: \"") {
		t.Errorf("claude document must not quote the description:\n%s", claude)
	}
}

// Tool keys in opencode documents are the lowercased input names, whatever
// the input casing was.
func TestAgentDocumentCasingLaw(t *testing.T) {
	tests := map[string]struct {
		tools []string
		want  []string
	}{
		"pascal case":  {tools: []string{"Read", "WebFetch"}, want: []string{"  read: true\n", "  webfetch: true\n"}},
		"upper case":   {tools: []string{"BASH"}, want: []string{"  bash: true\n"}},
		"already lower": {tools: []string{"grep"}, want: []string{"  grep: true\n"}},
		"mixed":        {tools: []string{"GoToDefinition", "ls"}, want: []string{"  gotodefinition: true\n", "  ls: true\n"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			a := minimalAgent()
			a.Tools = tt.tools
			doc := SchemaFor(model.OpenCode).AgentDocument(a)
			for _, want := range tt.want {
				if !strings.Contains(doc, want) {
					t.Errorf("document missing %q:\n%s", want, doc)
				}
			}
		})
	}
}

func TestAgentDocumentOmissionLaw(t *testing.T) {
	absent := minimalAgent()

	emptied := minimalAgent()
	emptied.Tools = []string{}
	emptied.Model = ""
	emptied.PermissionMode = ""
	emptied.Skills = []string{}

	for _, target := range model.AllTargets() {
		schema := SchemaFor(target)
		if got, want := schema.AgentDocument(emptied), schema.AgentDocument(absent); got != want {
			t.Errorf("%s: empty fields rendered differently from absent fields:\ngot:\n%s\nwant:\n%s", target, got, want)
		}
	}
}

// The metadata block of every emitted document must be parseable YAML, since
// both runtimes read it with YAML frontmatter parsers.
func TestDocumentsAreValidYAML(t *testing.T) {
	docs := map[string]string{
		"skill full":            SchemaFor(model.ClaudeCode).SkillDocument(sampleSkill()),
		"skill minimal":         SchemaFor(model.ClaudeCode).SkillDocument(minimalSkill()),
		"agent claude full":     SchemaFor(model.ClaudeCode).AgentDocument(sampleAgent()),
		"agent opencode full":   SchemaFor(model.OpenCode).AgentDocument(sampleAgent()),
		"agent opencode minimal": SchemaFor(model.OpenCode).AgentDocument(minimalAgent()),
	}

	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			block := metadataBlock(t, doc)
			var parsed map[string]any
			if err := yaml.Unmarshal([]byte(block), &parsed); err != nil {
				t.Errorf("metadata block is not valid YAML: %v\n%s", err, block)
			}
		})
	}
}

func metadataBlock(t *testing.T, doc string) string {
	t.Helper()
	rest, ok := strings.CutPrefix(doc, "---\n")
	if !ok {
		t.Fatalf("document has no opening delimiter:\n%s", doc)
	}
	block, _, ok := strings.Cut(rest, "\n---\n")
	if !ok {
		t.Fatalf("document has no closing delimiter:\n%s", doc)
	}
	return block
}
