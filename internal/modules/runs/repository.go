// Package runs persists completed simulation runs.
package runs

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aristath/qbind/internal/database"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// timeLayout is fixed-width so that the stored created_at strings sort
// lexicographically in chronological order. RFC3339Nano trims trailing
// zeros from the fractional second, which breaks ORDER BY.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Run is one persisted simulation run.
type Run struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	Strategy      string    `json:"strategy"`
	MaxIterations int       `json:"max_iterations"`
	Energy        float64   `json:"energy"`
	Iterations    int       `json:"iterations"`
	Converged     bool      `json:"converged"`
	Verdict       string    `json:"verdict"`
	Trace         []float64 `json:"trace,omitempty"`
}

// Repository handles database operations for simulation runs.
// Database: runs.db (runs table)
type Repository struct {
	db  *database.DB
	log zerolog.Logger
}

// NewRepository creates a new runs repository.
func NewRepository(db *database.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("component", "runs_repository").Logger(),
	}
}

// InitSchema creates the runs table if it does not exist.
func (r *Repository) InitSchema() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id             TEXT PRIMARY KEY,
			created_at     TEXT NOT NULL,
			strategy       TEXT NOT NULL,
			max_iterations INTEGER NOT NULL,
			energy         REAL NOT NULL,
			iterations     INTEGER NOT NULL,
			converged      INTEGER NOT NULL,
			verdict        TEXT NOT NULL,
			trace          BLOB
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create runs table: %w", err)
	}
	return nil
}

// Save stores a completed run and returns its generated id.
func (r *Repository) Save(run Run) (string, error) {
	id := run.ID
	if id == "" {
		id = uuid.New().String()
	}
	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	var traceBlob []byte
	if len(run.Trace) > 0 {
		var err error
		traceBlob, err = msgpack.Marshal(run.Trace)
		if err != nil {
			return "", fmt.Errorf("failed to encode trace: %w", err)
		}
	}

	_, err := r.db.Exec(`
		INSERT INTO runs
			(id, created_at, strategy, max_iterations, energy, iterations, converged, verdict, trace)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, createdAt.UTC().Format(timeLayout), run.Strategy, run.MaxIterations,
		run.Energy, run.Iterations, boolToInt(run.Converged), run.Verdict, traceBlob)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	r.log.Debug().
		Str("id", id).
		Str("strategy", run.Strategy).
		Float64("energy", run.Energy).
		Str("verdict", run.Verdict).
		Msg("Saved simulation run")

	return id, nil
}

// List returns the most recent runs, newest first, without traces.
func (r *Repository) List(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Query(`
		SELECT id, created_at, strategy, max_iterations, energy, iterations, converged, verdict
		FROM runs
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var result []Run
	for rows.Next() {
		var run Run
		var createdAt string
		var converged int
		if err := rows.Scan(&run.ID, &createdAt, &run.Strategy, &run.MaxIterations,
			&run.Energy, &run.Iterations, &converged, &run.Verdict); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.CreatedAt, _ = time.Parse(timeLayout, createdAt)
		run.Converged = converged != 0
		result = append(result, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return result, nil
}

// Get returns a single run with its decoded trace, or (nil, nil) if the id
// is unknown.
func (r *Repository) Get(id string) (*Run, error) {
	var run Run
	var createdAt string
	var converged int
	var traceBlob []byte

	err := r.db.QueryRow(`
		SELECT id, created_at, strategy, max_iterations, energy, iterations, converged, verdict, trace
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &createdAt, &run.Strategy, &run.MaxIterations,
		&run.Energy, &run.Iterations, &converged, &run.Verdict, &traceBlob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run %s: %w", id, err)
	}

	run.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	run.Converged = converged != 0

	if len(traceBlob) > 0 {
		if err := msgpack.Unmarshal(traceBlob, &run.Trace); err != nil {
			return nil, fmt.Errorf("failed to decode trace for run %s: %w", id, err)
		}
	}

	return &run, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
