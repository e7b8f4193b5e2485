// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists pipeline runs in SQLite: the legend of each
// drawing, its link results and light counts. Unresolved links form the
// manual review queue.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/legend-engine/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "legend.db"

	// timeLayout has a fixed-width fraction so stored timestamps sort
	// lexically.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// ErrRunNotFound is returned when no stored run matches an ID.
var ErrRunNotFound = errors.New("run not found")

// Store manages the run history database.
type Store struct {
	db      *sql.DB
	dataDir string
}

// Open opens or creates the run history database at
// dataDir/index/legend.db and creates the schema if needed.
func Open(cfg types.StoreConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.DataDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dataDir: cfg.DataDir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return filepath.Join(s.dataDir, indexDir, dbFile)
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			drawing TEXT NOT NULL,
			created_at TEXT NOT NULL,
			terms TEXT NOT NULL,
			resolved INTEGER NOT NULL,
			unresolved INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_drawing ON runs(drawing)`,
		`CREATE TABLE IF NOT EXISTS links (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			legend_item TEXT NOT NULL,
			best_block TEXT,
			score REAL NOT NULL,
			candidates TEXT NOT NULL,
			PRIMARY KEY (run_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_links_unresolved ON links(run_id) WHERE best_block IS NULL`,
		`CREATE TABLE IF NOT EXISTS lights (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			count INTEGER NOT NULL,
			PRIMARY KEY (run_id, position)
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveRun stores run with its links and light counts in one transaction.
// A missing ID is filled with a new UUID and a zero CreatedAt with the
// current time; both are written back to run. Scores are stored rounded.
func (s *Store) SaveRun(ctx context.Context, run *types.Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	run.Links = types.RoundAll(run.Links)
	run.Summary = types.SummarizeLinks(run.Links)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	termsJSON, err := json.Marshal(nonNil(run.Legend))
	if err != nil {
		return fmt.Errorf("encoding legend: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, drawing, created_at, terms, resolved, unresolved)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Drawing, run.CreatedAt.UTC().Format(timeLayout),
		string(termsJSON), run.Summary.Resolved, run.Summary.Unresolved,
	)
	if err != nil {
		return fmt.Errorf("inserting run %s: %w", run.ID, err)
	}

	linkStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO links (run_id, position, legend_item, best_block, score, candidates)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing link insert: %w", err)
	}
	defer linkStmt.Close()

	for i, l := range run.Links {
		candJSON, err := json.Marshal(l.Candidates)
		if err != nil {
			return fmt.Errorf("encoding candidates for %q: %w", l.LegendItem, err)
		}
		var best sql.NullString
		if l.BestBlock != nil {
			best = sql.NullString{String: *l.BestBlock, Valid: true}
		}
		if _, err := linkStmt.ExecContext(ctx, run.ID, i, l.LegendItem, best, l.Score, string(candJSON)); err != nil {
			return fmt.Errorf("inserting link %q: %w", l.LegendItem, err)
		}
	}

	lightStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO lights (run_id, position, name, category, count) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing light insert: %w", err)
	}
	defer lightStmt.Close()

	for i, lc := range run.Lights.Items() {
		if _, err := lightStmt.ExecContext(ctx, run.ID, i, lc.Name, lc.Category, lc.Count); err != nil {
			return fmt.Errorf("inserting light count %q: %w", lc.Name, err)
		}
	}

	return tx.Commit()
}

// GetRun loads a run by ID. A unique ID prefix is accepted.
func (s *Store) GetRun(ctx context.Context, id string) (types.Run, error) {
	full, err := s.resolveID(ctx, id)
	if err != nil {
		return types.Run{}, err
	}

	var (
		run       types.Run
		createdAt string
		termsJSON string
	)
	err = s.db.QueryRowContext(ctx,
		`SELECT id, drawing, created_at, terms, resolved, unresolved FROM runs WHERE id = ?`, full,
	).Scan(&run.ID, &run.Drawing, &createdAt, &termsJSON, &run.Summary.Resolved, &run.Summary.Unresolved)
	if err != nil {
		return types.Run{}, fmt.Errorf("loading run %s: %w", full, err)
	}
	if run.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return types.Run{}, fmt.Errorf("parsing created_at of run %s: %w", full, err)
	}
	if err := json.Unmarshal([]byte(termsJSON), &run.Legend); err != nil {
		return types.Run{}, fmt.Errorf("decoding legend of run %s: %w", full, err)
	}

	links, err := s.FindLinks(ctx, LinkQuery{RunID: full})
	if err != nil {
		return types.Run{}, err
	}
	run.Links = make([]types.LinkResult, len(links))
	for i, l := range links {
		run.Links[i] = l.LinkResult
	}
	run.Summary.Total = len(run.Links)

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, category, count FROM lights WHERE run_id = ? ORDER BY position`, full)
	if err != nil {
		return types.Run{}, fmt.Errorf("loading lights of run %s: %w", full, err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			name, category string
			count          int
		)
		if err := rows.Scan(&name, &category, &count); err != nil {
			return types.Run{}, fmt.Errorf("scanning light count: %w", err)
		}
		run.Lights.Add(name, category, count)
	}
	if err := rows.Err(); err != nil {
		return types.Run{}, fmt.Errorf("iterating light counts: %w", err)
	}
	return run, nil
}

// LatestRun returns the most recent run of a drawing.
func (s *Store) LatestRun(ctx context.Context, drawing string) (types.Run, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM runs WHERE drawing = ? ORDER BY created_at DESC, id DESC LIMIT 1`, drawing,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Run{}, fmt.Errorf("%w: no run for drawing %q", ErrRunNotFound, drawing)
	}
	if err != nil {
		return types.Run{}, fmt.Errorf("finding latest run of %q: %w", drawing, err)
	}
	return s.GetRun(ctx, id)
}

// DeleteRun removes a run and its links and light counts.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	full, err := s.resolveID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, full); err != nil {
		return fmt.Errorf("deleting run %s: %w", full, err)
	}
	return nil
}

// resolveID expands a unique ID prefix to the full run ID.
func (s *Store) resolveID(ctx context.Context, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%w: empty id", ErrRunNotFound)
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM runs WHERE id LIKE ? ESCAPE '\' ORDER BY id LIMIT 2`, escapeLike(id)+"%")
	if err != nil {
		return "", fmt.Errorf("looking up run %s: %w", id, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var got string
		if err := rows.Scan(&got); err != nil {
			return "", fmt.Errorf("scanning run id: %w", err)
		}
		if got == id {
			return got, nil
		}
		ids = append(ids, got)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("looking up run %s: %w", id, err)
	}
	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("run id prefix %q is ambiguous", id)
	}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
