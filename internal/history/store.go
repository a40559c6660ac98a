// Package history persists an optional catalog of past runs and the
// moves they made. The organizer never reads it back; it exists for
// the history command.
package history

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Store persists run records in a sqlite catalog.
type Store struct {
	db *sql.DB
}

// Open opens or creates the catalog at path and applies the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Run is one recorded run.
type Run struct {
	ID          string
	StartedAt   time.Time
	FinishedAt  *time.Time
	Destination string
	Roots       []string
	DryRun      bool
	Movie       bool
	Moved       int
	Skipped     int
	Errors      int
}

// Move is one recorded relocation. DeviceSeq is the camera's own
// sequence number, Sequence the assigned output folder number.
type Move struct {
	ID        int64
	RunID     string
	DeviceSeq int
	Sequence  int
	Source    string
	Dest      string
	Size      int64
	CreatedAt time.Time
}

// StartRun inserts a new run record and returns it.
func (s *Store) StartRun(destination string, roots []string, dryRun, movie bool) (*Run, error) {
	run := &Run{
		ID:          uuid.NewString(),
		StartedAt:   time.Now(),
		Destination: destination,
		Roots:       roots,
		DryRun:      dryRun,
		Movie:       movie,
	}
	rootsJSON, _ := json.Marshal(roots)

	_, err := s.db.Exec(`
		INSERT INTO runs (id, started_at, destination, roots, dry_run, movie)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt, run.Destination, string(rootsJSON), run.DryRun, run.Movie,
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// AddMove records one relocation under a run. The move's ID and
// CreatedAt are filled in on success.
func (s *Store) AddMove(mv *Move) error {
	now := time.Now()
	result, err := s.db.Exec(`
		INSERT INTO moves (run_id, device_seq, sequence, source_path, dest_path, size_bytes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		mv.RunID, mv.DeviceSeq, mv.Sequence, mv.Source, mv.Dest, mv.Size, now,
	)
	if err != nil {
		return fmt.Errorf("insert move: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	mv.ID = id
	mv.CreatedAt = now
	return nil
}

// FinishRun stamps the end time and final tallies on a run.
func (s *Store) FinishRun(runID string, moved, skipped, errCount int) error {
	_, err := s.db.Exec(`
		UPDATE runs SET finished_at = ?, moved = ?, skipped = ?, errors = ?
		WHERE id = ?`,
		time.Now(), moved, skipped, errCount, runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Destination *string
	Since       *time.Time
	Limit       int
}

// Runs returns recorded runs matching the filter.
// Results are ordered by most recent first.
func (s *Store) Runs(f RunFilter) ([]*Run, error) {
	var conditions []string
	var args []any

	if f.Destination != nil {
		conditions = append(conditions, "destination = ?")
		args = append(args, *f.Destination)
	}
	if f.Since != nil {
		conditions = append(conditions, "started_at >= ?")
		args = append(args, *f.Since)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := `SELECT id, started_at, finished_at, destination, roots, dry_run, movie, moved, skipped, errors
		FROM runs ` + whereClause + ` ORDER BY started_at DESC`

	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Run
	for rows.Next() {
		run := &Run{}
		var rootsJSON string
		if err := rows.Scan(&run.ID, &run.StartedAt, &run.FinishedAt, &run.Destination,
			&rootsJSON, &run.DryRun, &run.Movie, &run.Moved, &run.Skipped, &run.Errors); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if err := json.Unmarshal([]byte(rootsJSON), &run.Roots); err != nil {
			return nil, fmt.Errorf("decode roots: %w", err)
		}
		results = append(results, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return results, nil
}

// Moves returns the relocations recorded for one run, oldest first.
func (s *Store) Moves(runID string) ([]*Move, error) {
	rows, err := s.db.Query(`
		SELECT id, run_id, device_seq, sequence, source_path, dest_path, size_bytes, created_at
		FROM moves WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list moves: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Move
	for rows.Next() {
		mv := &Move{}
		if err := rows.Scan(&mv.ID, &mv.RunID, &mv.DeviceSeq, &mv.Sequence,
			&mv.Source, &mv.Dest, &mv.Size, &mv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan move: %w", err)
		}
		results = append(results, mv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate moves: %w", err)
	}

	return results, nil
}
