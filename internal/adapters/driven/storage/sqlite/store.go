package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/branchsync-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/branchsync-cli/internal/core/domain"
	"github.com/custodia-labs/branchsync-cli/internal/core/ports/driven"
)

// Row outcome discriminators for sync_run_projects.
const (
	outcomeUpdated = "updated"
	outcomeFailed  = "failed"
)

var _ driven.SyncHistoryStore = (*Store)(nil)

// Store is the SQLite-backed sync history store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.branchsync/data/history.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".branchsync", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_sync_runs.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// SaveRun stores a completed run with its per-project outcomes.
func (s *Store) SaveRun(ctx context.Context, run domain.SyncRun) error {
	sourcesJSON, err := json.Marshal(run.Sources)
	if err != nil {
		return fmt.Errorf("marshalling sources: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sync_runs (id, org_id, sources, dry_run, processed_targets, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.OrgID, string(sourcesJSON), run.DryRun, run.ProcessedTargets,
		run.StartedAt.UTC(), run.FinishedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sync_run_projects
			(run_id, position, outcome, project_id, from_branch, to_branch, kind, dry_run, target, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	position := 0
	for _, u := range run.Projects.Updated {
		if _, err := stmt.ExecContext(ctx, run.ID, position, outcomeUpdated,
			u.ProjectID, u.From, u.To, string(u.Kind), u.DryRun, targetName(u.Target), nil); err != nil {
			return fmt.Errorf("saving project outcome: %w", err)
		}
		position++
	}
	for _, f := range run.Projects.Failed {
		if _, err := stmt.ExecContext(ctx, run.ID, position, outcomeFailed,
			f.ProjectID, f.From, f.To, string(f.Kind), f.DryRun, targetName(f.Target), f.ErrorMessage); err != nil {
			return fmt.Errorf("saving project outcome: %w", err)
		}
		position++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetRun retrieves a run and its per-project outcomes by id.
func (s *Store) GetRun(ctx context.Context, runID string) (*domain.SyncRun, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, org_id, sources, dry_run, processed_targets, started_at, finished_at
		FROM sync_runs WHERE id = ?
	`, runID)

	run, err := scanRun(row)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT outcome, project_id, from_branch, to_branch, kind, dry_run, target, error_message
		FROM sync_run_projects WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying project outcomes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var outcome, kind string
		var target, errorMessage sql.NullString
		var update domain.ProjectUpdate
		if err := rows.Scan(&outcome, &update.ProjectID, &update.From, &update.To,
			&kind, &update.DryRun, &target, &errorMessage); err != nil {
			return nil, fmt.Errorf("scanning project outcome: %w", err)
		}

		update.Kind = domain.UpdateKind(kind)
		if target.Valid && target.String != "" {
			update.Target = &domain.Target{DisplayName: target.String}
		}

		switch outcome {
		case outcomeFailed:
			run.Projects.Failed = append(run.Projects.Failed, domain.ProjectUpdateFailure{
				ProjectID:    update.ProjectID,
				From:         update.From,
				To:           update.To,
				Kind:         update.Kind,
				DryRun:       update.DryRun,
				ErrorMessage: errorMessage.String,
				Target:       update.Target,
			})
		default:
			run.Projects.Updated = append(run.Projects.Updated, update)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating project outcomes: %w", err)
	}

	return run, nil
}

// ListRuns returns up to limit runs for the organisation, most recent
// first, without their per-project outcomes.
func (s *Store) ListRuns(ctx context.Context, orgID string, limit int) ([]domain.SyncRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, org_id, sources, dry_run, processed_targets, started_at, finished_at
		FROM sync_runs WHERE org_id = ?
		ORDER BY started_at DESC
		LIMIT ?
	`, orgID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.SyncRun //nolint:prealloc // size unknown from query
	for rows.Next() {
		run, err := scanRunRows(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	return runs, nil
}

// scanRun scans a single run row.
func scanRun(row *sql.Row) (*domain.SyncRun, error) {
	var run domain.SyncRun
	var sourcesJSON string
	if err := row.Scan(&run.ID, &run.OrgID, &sourcesJSON, &run.DryRun,
		&run.ProcessedTargets, &run.StartedAt, &run.FinishedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	if err := json.Unmarshal([]byte(sourcesJSON), &run.Sources); err != nil {
		return nil, fmt.Errorf("unmarshaling sources: %w", err)
	}

	return &run, nil
}

// scanRunRows scans a run from *sql.Rows.
func scanRunRows(rows *sql.Rows) (*domain.SyncRun, error) {
	var run domain.SyncRun
	var sourcesJSON string
	if err := rows.Scan(&run.ID, &run.OrgID, &sourcesJSON, &run.DryRun,
		&run.ProcessedTargets, &run.StartedAt, &run.FinishedAt); err != nil {
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	if err := json.Unmarshal([]byte(sourcesJSON), &run.Sources); err != nil {
		return nil, fmt.Errorf("unmarshaling sources: %w", err)
	}

	return &run, nil
}

func targetName(t *domain.Target) any {
	if t == nil {
		return nil
	}
	return t.DisplayName
}
