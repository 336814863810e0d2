package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hylla/gridline/internal/app"
	"github.com/hylla/gridline/internal/domain"
	_ "modernc.org/sqlite"
)

// driverName defines a package constant value.
const driverName = "sqlite"

// Repository stores one column layout document per view.
type Repository struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies migrations.
func Open(path string) (*Repository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo := &Repository{db: db}
	if err := repo.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// OpenInMemory opens a shared in-memory database.
func OpenInMemory() (*Repository, error) {
	db, err := sql.Open(driverName, "file::memory:?cache=shared")
	if err != nil {
		return nil, fmt.Errorf("open sqlite memory: %w", err)
	}
	repo := &Repository{db: db}
	if err := repo.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// Close closes the database.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Ping reports whether the database is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// migrate creates the schema.
func (r *Repository) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS column_layouts (
			view_id TEXT PRIMARY KEY,
			column_state TEXT NOT NULL DEFAULT '[]',
			updated_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_column_layouts_updated_at ON column_layouts(updated_at DESC);`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate sqlite: %w", err)
		}
	}
	if _, err := r.db.ExecContext(ctx, `ALTER TABLE column_layouts ADD COLUMN column_count INTEGER NOT NULL DEFAULT 0`); err != nil && !isDuplicateColumnErr(err) {
		return fmt.Errorf("migrate sqlite add column_layouts.column_count: %w", err)
	}
	return nil
}

// GetLayout returns the layout stored for viewID.
func (r *Repository) GetLayout(ctx context.Context, viewID string) (domain.ColumnLayout, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT view_id, column_state, updated_at
		FROM column_layouts
		WHERE view_id = ?
	`, viewID)
	return scanLayout(row)
}

// SaveLayout replaces the stored layout for the layout's view.
func (r *Repository) SaveLayout(ctx context.Context, layout domain.ColumnLayout) error {
	state, err := domain.EncodeColumnState(layout.Columns)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO column_layouts(view_id, column_state, column_count, updated_at)
		VALUES(?, ?, ?, ?)
		ON CONFLICT(view_id) DO UPDATE SET
			column_state = excluded.column_state,
			column_count = excluded.column_count,
			updated_at = excluded.updated_at
	`, layout.ViewID, state, len(layout.Columns), ts(layout.UpdatedAt))
	if err != nil {
		return fmt.Errorf("save layout: %w", err)
	}
	return nil
}

// DeleteLayout removes the stored layout for viewID.
func (r *Repository) DeleteLayout(ctx context.Context, viewID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM column_layouts WHERE view_id = ?`, viewID)
	if err != nil {
		return fmt.Errorf("delete layout: %w", err)
	}
	return translateNoRows(res)
}

// ListLayouts returns every stored layout ordered by view id.
func (r *Repository) ListLayouts(ctx context.Context) ([]domain.ColumnLayout, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT view_id, column_state, updated_at
		FROM column_layouts
		ORDER BY view_id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.ColumnLayout, 0)
	for rows.Next() {
		layout, err := scanLayout(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, layout)
	}
	return out, rows.Err()
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanLayout decodes one column_layouts row.
func scanLayout(s scanner) (domain.ColumnLayout, error) {
	var (
		layout     domain.ColumnLayout
		stateRaw   string
		updatedRaw string
	)
	if err := s.Scan(&layout.ViewID, &stateRaw, &updatedRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ColumnLayout{}, app.ErrNotFound
		}
		return domain.ColumnLayout{}, err
	}
	entries, err := domain.DecodeColumnState(stateRaw)
	if err != nil {
		return domain.ColumnLayout{}, fmt.Errorf("decode layout %q: %w", layout.ViewID, err)
	}
	layout.Columns = entries
	layout.UpdatedAt = parseTS(updatedRaw)
	return layout, nil
}

// translateNoRows maps a zero-row write to app.ErrNotFound.
func translateNoRows(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return app.ErrNotFound
	}
	return nil
}

// ts formats a timestamp for storage.
func ts(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTS parses a stored timestamp.
func parseTS(v string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}
	}
	return ts.UTC()
}

// isDuplicateColumnErr reports whether err is sqlite's duplicate column error.
func isDuplicateColumnErr(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate column name")
}
