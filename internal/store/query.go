// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/legend-engine/pkg/types"
)

// defaultLimit caps list queries that do not set a limit.
const defaultLimit = 50

// RunQuery filters the run history.
type RunQuery struct {
	// Drawing restricts results to one drawing.
	Drawing string

	// WithUnresolved keeps only runs that have at least one unresolved link.
	WithUnresolved bool

	// Limit caps the number of runs. Zero uses the default.
	Limit int
}

// RunSummary is one row of the run history.
type RunSummary struct {
	ID         string    `json:"id" yaml:"id"`
	Drawing    string    `json:"drawing" yaml:"drawing"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
	Terms      int       `json:"terms" yaml:"terms"`
	Resolved   int       `json:"resolved" yaml:"resolved"`
	Unresolved int       `json:"unresolved" yaml:"unresolved"`
}

// ListRuns returns runs newest first.
func (s *Store) ListRuns(ctx context.Context, q RunQuery) ([]RunSummary, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT id, drawing, created_at, json_array_length(terms), resolved, unresolved
		FROM runs WHERE 1=1`)
	if q.Drawing != "" {
		qb.WriteString(` AND drawing = ?`)
		args = append(args, q.Drawing)
	}
	if q.WithUnresolved {
		qb.WriteString(` AND unresolved > 0`)
	}
	qb.WriteString(` ORDER BY created_at DESC, id DESC LIMIT ?`)
	args = append(args, limitOrDefault(q.Limit))

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var (
			r         RunSummary
			createdAt string
		)
		if err := rows.Scan(&r.ID, &r.Drawing, &createdAt, &r.Terms, &r.Resolved, &r.Unresolved); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if r.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at of run %s: %w", r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LinkQuery filters stored link results.
type LinkQuery struct {
	// RunID restricts results to one run (full ID).
	RunID string

	// Drawing restricts results to runs of one drawing.
	Drawing string

	// Term matches legend items containing this text, ignoring case.
	Term string

	// UnresolvedOnly keeps links without an accepted symbol.
	UnresolvedOnly bool

	// Limit caps the number of rows. Zero means no limit for a single run
	// and the default otherwise.
	Limit int
}

// LinkRow is a stored link result with the run it belongs to.
type LinkRow struct {
	RunID            string `json:"run_id" yaml:"run_id"`
	Drawing          string `json:"drawing" yaml:"drawing"`
	Position         int    `json:"position" yaml:"position"`
	types.LinkResult `yaml:",inline"`
}

// FindLinks returns stored link results ordered by run (newest first) and
// legend position.
func (s *Store) FindLinks(ctx context.Context, q LinkQuery) ([]LinkRow, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT l.run_id, r.drawing, l.position, l.legend_item, l.best_block, l.score, l.candidates
		FROM links l
		JOIN runs r ON r.id = l.run_id
		WHERE 1=1`)
	if q.RunID != "" {
		qb.WriteString(` AND l.run_id = ?`)
		args = append(args, q.RunID)
	}
	if q.Drawing != "" {
		qb.WriteString(` AND r.drawing = ?`)
		args = append(args, q.Drawing)
	}
	if q.Term != "" {
		qb.WriteString(` AND lower(l.legend_item) LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(strings.ToLower(q.Term))+"%")
	}
	if q.UnresolvedOnly {
		qb.WriteString(` AND l.best_block IS NULL`)
	}
	qb.WriteString(` ORDER BY r.created_at DESC, l.run_id, l.position`)
	if q.Limit > 0 || q.RunID == "" {
		qb.WriteString(` LIMIT ?`)
		args = append(args, limitOrDefault(q.Limit))
	}

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying links: %w", err)
	}
	defer rows.Close()

	var out []LinkRow
	for rows.Next() {
		var (
			row      LinkRow
			best     sql.NullString
			candJSON string
		)
		if err := rows.Scan(&row.RunID, &row.Drawing, &row.Position, &row.LegendItem, &best, &row.Score, &candJSON); err != nil {
			return nil, fmt.Errorf("scanning link: %w", err)
		}
		if best.Valid {
			b := best.String
			row.BestBlock = &b
		}
		if err := json.Unmarshal([]byte(candJSON), &row.Candidates); err != nil {
			return nil, fmt.Errorf("decoding candidates of %q: %w", row.LegendItem, err)
		}
		if row.Candidates == nil {
			row.Candidates = []types.Candidate{}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Unresolved returns the review queue: links without an accepted symbol.
// An empty runID searches every run.
func (s *Store) Unresolved(ctx context.Context, runID string) ([]LinkRow, error) {
	q := LinkQuery{UnresolvedOnly: true}
	if runID != "" {
		full, err := s.resolveID(ctx, runID)
		if err != nil {
			return nil, err
		}
		q.RunID = full
	}
	return s.FindLinks(ctx, q)
}

func limitOrDefault(n int) int {
	if n <= 0 {
		return defaultLimit
	}
	return n
}
