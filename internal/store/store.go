// Package store persists canonical Skill and SubAgent records in a local
// SQLite database. The projection engine never touches the store; the CLI
// composes the two.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/agentdeck/agentdeck/internal/model"
	"github.com/agentdeck/agentdeck/internal/util"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Store wraps the SQLite database holding the canonical records.
type Store struct {
	db *sqlx.DB
}

// DefaultPath returns the default database location (~/.agentdeck/agentdeck.db).
func DefaultPath() (string, error) {
	dir, err := util.AgentdeckDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "agentdeck.db"), nil
}

// Open opens or creates the database at path and ensures the schema exists.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %q: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database %q: %w", path, err)
	}

	if err := configure(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func configure(ctx context.Context, db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	return nil
}

func migrate(ctx context.Context, db *sqlx.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS skills (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			description TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL,
			allowed_tools TEXT NOT NULL DEFAULT '',
			model TEXT NOT NULL DEFAULT '',
			disable_model_invocation INTEGER NOT NULL DEFAULT 0,
			tags TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT 'manual',
			source_path TEXT NOT NULL DEFAULT '',
			is_favorite INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS subagents (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			description TEXT NOT NULL,
			content TEXT NOT NULL,
			tools TEXT NOT NULL DEFAULT '',
			model TEXT NOT NULL DEFAULT '',
			permission_mode TEXT NOT NULL DEFAULT '',
			skills TEXT NOT NULL DEFAULT '',
			tags TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT 'manual',
			source_path TEXT NOT NULL DEFAULT '',
			is_favorite INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// List fields are stored comma-joined; record names and tool names never
// contain commas.
func joinList(values []string) string {
	return strings.Join(values, ",")
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	return strings.Split(value, ",")
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

type skillRow struct {
	ID                     int64  `db:"id"`
	Name                   string `db:"name"`
	Description            string `db:"description"`
	Content                string `db:"content"`
	AllowedTools           string `db:"allowed_tools"`
	Model                  string `db:"model"`
	DisableModelInvocation bool   `db:"disable_model_invocation"`
	Tags                   string `db:"tags"`
	Source                 string `db:"source"`
	SourcePath             string `db:"source_path"`
	IsFavorite             bool   `db:"is_favorite"`
	CreatedAt              string `db:"created_at"`
	UpdatedAt              string `db:"updated_at"`
}

func (r skillRow) toModel() model.Skill {
	return model.Skill{
		ID:                     r.ID,
		Name:                   r.Name,
		Description:            r.Description,
		Content:                r.Content,
		AllowedTools:           splitList(r.AllowedTools),
		Model:                  r.Model,
		DisableModelInvocation: r.DisableModelInvocation,
		Tags:                   splitList(r.Tags),
		Source:                 r.Source,
		SourcePath:             r.SourcePath,
		IsFavorite:             r.IsFavorite,
		CreatedAt:              parseTime(r.CreatedAt),
		UpdatedAt:              parseTime(r.UpdatedAt),
	}
}

type subAgentRow struct {
	ID             int64  `db:"id"`
	Name           string `db:"name"`
	Description    string `db:"description"`
	Content        string `db:"content"`
	Tools          string `db:"tools"`
	Model          string `db:"model"`
	PermissionMode string `db:"permission_mode"`
	Skills         string `db:"skills"`
	Tags           string `db:"tags"`
	Source         string `db:"source"`
	SourcePath     string `db:"source_path"`
	IsFavorite     bool   `db:"is_favorite"`
	CreatedAt      string `db:"created_at"`
	UpdatedAt      string `db:"updated_at"`
}

func (r subAgentRow) toModel() model.SubAgent {
	return model.SubAgent{
		ID:             r.ID,
		Name:           r.Name,
		Description:    r.Description,
		Content:        r.Content,
		Tools:          splitList(r.Tools),
		Model:          r.Model,
		PermissionMode: r.PermissionMode,
		Skills:         splitList(r.Skills),
		Tags:           splitList(r.Tags),
		Source:         r.Source,
		SourcePath:     r.SourcePath,
		IsFavorite:     r.IsFavorite,
		CreatedAt:      parseTime(r.CreatedAt),
		UpdatedAt:      parseTime(r.UpdatedAt),
	}
}

// CreateSkill inserts a new skill and fills in its ID and timestamps.
func (s *Store) CreateSkill(ctx context.Context, skill *model.Skill) error {
	now := time.Now()
	skill.CreatedAt = now
	skill.UpdatedAt = now
	if skill.Source == "" {
		skill.Source = "manual"
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO skills (name, description, content, allowed_tools, model,
			disable_model_invocation, tags, source, source_path, is_favorite,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		skill.Name, skill.Description, skill.Content, joinList(skill.AllowedTools),
		skill.Model, skill.DisableModelInvocation, joinList(skill.Tags),
		skill.Source, skill.SourcePath, skill.IsFavorite,
		formatTime(now), formatTime(now),
	)
	if err != nil {
		return fmt.Errorf("insert skill %q: %w", skill.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("read skill id: %w", err)
	}
	skill.ID = id
	return nil
}

// GetSkill returns the skill with the given name.
func (s *Store) GetSkill(ctx context.Context, name string) (model.Skill, error) {
	var row skillRow
	err := s.db.GetContext(ctx, &row, `SELECT * FROM skills WHERE name = ?`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Skill{}, fmt.Errorf("skill %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return model.Skill{}, fmt.Errorf("get skill %q: %w", name, err)
	}
	return row.toModel(), nil
}

// ListSkills returns all skills ordered by name.
func (s *Store) ListSkills(ctx context.Context) ([]model.Skill, error) {
	var rows []skillRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM skills ORDER BY name`); err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	skills := make([]model.Skill, 0, len(rows))
	for _, row := range rows {
		skills = append(skills, row.toModel())
	}
	return skills, nil
}

// UpdateSkill rewrites an existing skill, matched by name.
func (s *Store) UpdateSkill(ctx context.Context, skill *model.Skill) error {
	skill.UpdatedAt = time.Now()
	res, err := s.db.ExecContext(ctx,
		`UPDATE skills SET description = ?, content = ?, allowed_tools = ?,
			model = ?, disable_model_invocation = ?, tags = ?, source = ?,
			source_path = ?, is_favorite = ?, updated_at = ?
		WHERE name = ?`,
		skill.Description, skill.Content, joinList(skill.AllowedTools),
		skill.Model, skill.DisableModelInvocation, joinList(skill.Tags),
		skill.Source, skill.SourcePath, skill.IsFavorite,
		formatTime(skill.UpdatedAt), skill.Name,
	)
	if err != nil {
		return fmt.Errorf("update skill %q: %w", skill.Name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update skill %q: %w", skill.Name, err)
	}
	if affected == 0 {
		return fmt.Errorf("skill %q: %w", skill.Name, ErrNotFound)
	}
	return nil
}

// DeleteSkill removes the skill with the given name.
func (s *Store) DeleteSkill(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM skills WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete skill %q: %w", name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete skill %q: %w", name, err)
	}
	if affected == 0 {
		return fmt.Errorf("skill %q: %w", name, ErrNotFound)
	}
	return nil
}

// CreateSubAgent inserts a new sub-agent and fills in its ID and timestamps.
func (s *Store) CreateSubAgent(ctx context.Context, agent *model.SubAgent) error {
	now := time.Now()
	agent.CreatedAt = now
	agent.UpdatedAt = now
	if agent.Source == "" {
		agent.Source = "manual"
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO subagents (name, description, content, tools, model,
			permission_mode, skills, tags, source, source_path, is_favorite,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		agent.Name, agent.Description, agent.Content, joinList(agent.Tools),
		agent.Model, agent.PermissionMode, joinList(agent.Skills),
		joinList(agent.Tags), agent.Source, agent.SourcePath, agent.IsFavorite,
		formatTime(now), formatTime(now),
	)
	if err != nil {
		return fmt.Errorf("insert sub-agent %q: %w", agent.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("read sub-agent id: %w", err)
	}
	agent.ID = id
	return nil
}

// GetSubAgent returns the sub-agent with the given name.
func (s *Store) GetSubAgent(ctx context.Context, name string) (model.SubAgent, error) {
	var row subAgentRow
	err := s.db.GetContext(ctx, &row, `SELECT * FROM subagents WHERE name = ?`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return model.SubAgent{}, fmt.Errorf("sub-agent %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return model.SubAgent{}, fmt.Errorf("get sub-agent %q: %w", name, err)
	}
	return row.toModel(), nil
}

// ListSubAgents returns all sub-agents ordered by name.
func (s *Store) ListSubAgents(ctx context.Context) ([]model.SubAgent, error) {
	var rows []subAgentRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM subagents ORDER BY name`); err != nil {
		return nil, fmt.Errorf("list sub-agents: %w", err)
	}
	agents := make([]model.SubAgent, 0, len(rows))
	for _, row := range rows {
		agents = append(agents, row.toModel())
	}
	return agents, nil
}

// UpdateSubAgent rewrites an existing sub-agent, matched by name.
func (s *Store) UpdateSubAgent(ctx context.Context, agent *model.SubAgent) error {
	agent.UpdatedAt = time.Now()
	res, err := s.db.ExecContext(ctx,
		`UPDATE subagents SET description = ?, content = ?, tools = ?, model = ?,
			permission_mode = ?, skills = ?, tags = ?, source = ?, source_path = ?,
			is_favorite = ?, updated_at = ?
		WHERE name = ?`,
		agent.Description, agent.Content, joinList(agent.Tools), agent.Model,
		agent.PermissionMode, joinList(agent.Skills), joinList(agent.Tags),
		agent.Source, agent.SourcePath, agent.IsFavorite,
		formatTime(agent.UpdatedAt), agent.Name,
	)
	if err != nil {
		return fmt.Errorf("update sub-agent %q: %w", agent.Name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update sub-agent %q: %w", agent.Name, err)
	}
	if affected == 0 {
		return fmt.Errorf("sub-agent %q: %w", agent.Name, ErrNotFound)
	}
	return nil
}

// DeleteSubAgent removes the sub-agent with the given name.
func (s *Store) DeleteSubAgent(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM subagents WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete sub-agent %q: %w", name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete sub-agent %q: %w", name, err)
	}
	if affected == 0 {
		return fmt.Errorf("sub-agent %q: %w", name, ErrNotFound)
	}
	return nil
}
