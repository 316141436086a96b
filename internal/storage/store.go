// Package storage persists simulation runs. FileStore writes one
// directory per run; SQLStore keeps runs in a gorm database (SQLite or
// Postgres).
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/san-kum/sixdof/internal/sim"
)

var (
	ErrRunNotFound    = errors.New("storage: run not found")
	ErrUnknownBackend = errors.New("storage: unknown backend")
)

type RunMetadata struct {
	ID         string             `json:"id"`
	Model      string             `json:"model"`
	Integrator string             `json:"integrator"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Steps      int                `json:"steps"`
	Terminated bool               `json:"terminated"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Store is implemented by every run backend.
type Store interface {
	// Save assigns the run an ID and timestamp and returns the ID.
	Save(ctx context.Context, meta RunMetadata, result *sim.Result) (string, error)
	// List returns all runs, newest first.
	List(ctx context.Context) ([]RunMetadata, error)
	Load(ctx context.Context, id string) (*RunMetadata, error)
	// LoadSamples returns the recorded states and their times.
	LoadSamples(ctx context.Context, id string) ([]sim.State, []float64, error)
	// LoadControls returns the control applied over each step, one fewer
	// than the samples.
	LoadControls(ctx context.Context, id string) ([]sim.Control, error)
	Close() error
}

// Open returns the backend named by backend: "file" stores under dir,
// "sqlite" opens dsn (or an in-memory database when dsn is empty) and
// "postgres" connects to dsn.
func Open(backend, dir, dsn string, log zerolog.Logger) (Store, error) {
	switch backend {
	case "file", "":
		st := NewFileStore(dir, log)
		if err := st.Init(); err != nil {
			return nil, err
		}
		return st, nil
	case "sqlite":
		return OpenSQLite(dsn, log)
	case "postgres":
		return OpenPostgres(dsn, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// prepare fills the store-assigned fields of meta from result.
func prepare(meta RunMetadata, result *sim.Result) RunMetadata {
	meta.ID = newRunID(meta.Model)
	meta.Timestamp = time.Now().UTC()
	meta.Steps = result.StepsTaken
	meta.Terminated = result.Terminated
	if meta.Metrics == nil {
		meta.Metrics = result.Metrics
	}
	return meta
}

func newRunID(model string) string {
	if model == "" {
		model = "run"
	}
	return model + "_" + uuid.NewString()[:8]
}
