package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/san-kum/sixdof/internal/sim"
)

const sampleBatchSize = 2000

type runRecord struct {
	ID         string    `gorm:"primaryKey;size:64"`
	Model      string    `gorm:"size:64"`
	Integrator string    `gorm:"size:64"`
	Timestamp  time.Time `gorm:"index:idx_runs_timestamp"`
	Seed       int64
	Dt         float64
	Duration   float64
	Steps      int
	Terminated bool
	Metrics    []metricRecord `gorm:"foreignKey:RunID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (runRecord) TableName() string { return "runs" }

type metricRecord struct {
	ID    uint   `gorm:"primaryKey"`
	RunID string `gorm:"size:64;index:idx_metrics_run_id"`
	Name  string `gorm:"size:64"`
	Value float64
}

func (metricRecord) TableName() string { return "run_metrics" }

// sampleRecord holds one state, and the control applied over the step
// that starts at it, as JSON arrays so that models of any dimension share
// the table. The final sample has no control.
type sampleRecord struct {
	ID      uint   `gorm:"primaryKey"`
	RunID   string `gorm:"size:64;index:idx_samples_run_step,priority:1"`
	Step    int    `gorm:"index:idx_samples_run_step,priority:2"`
	Time    float64
	State   string
	Control string
}

func (sampleRecord) TableName() string { return "run_samples" }

// SQLStore keeps runs in a relational database through gorm.
type SQLStore struct {
	db  *gorm.DB
	log zerolog.Logger
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		CreateBatchSize:        sampleBatchSize,
		Logger:                 logger.Default.LogMode(logger.Silent),
	}
}

// OpenSQLite opens the database file at path. An empty path gives a
// private in-memory database that lives until Close.
func OpenSQLite(path string, log zerolog.Logger) (*SQLStore, error) {
	dsn := path
	if dsn == "" {
		dsn = fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	}
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", dsn, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql interface: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if path == "" {
		log.Info().Msg("Using in-memory SQLite store")
	} else {
		log.Info().Str("path", path).Msg("Using SQLite store")
	}
	return NewSQLStore(db, log)
}

func OpenPostgres(dsn string, log zerolog.Logger) (*SQLStore, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql interface: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)

	log.Info().Msg("Connected to Postgres store")
	return NewSQLStore(db, log)
}

// NewSQLStore migrates the schema on db.
func NewSQLStore(db *gorm.DB, log zerolog.Logger) (*SQLStore, error) {
	if err := db.AutoMigrate(&runRecord{}, &metricRecord{}, &sampleRecord{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &SQLStore{db: db, log: log}, nil
}

func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *SQLStore) Save(ctx context.Context, meta RunMetadata, result *sim.Result) (string, error) {
	meta = prepare(meta, result)
	rec := toRecord(meta)

	samples := make([]sampleRecord, len(result.States))
	for i, x := range result.States {
		data, err := json.Marshal([]float64(x))
		if err != nil {
			return "", err
		}
		samples[i] = sampleRecord{RunID: meta.ID, Step: i, Time: result.Times[i], State: string(data)}
		if i < len(result.Controls) {
			data, err := json.Marshal([]float64(result.Controls[i]))
			if err != nil {
				return "", err
			}
			samples[i].Control = string(data)
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		if len(samples) == 0 {
			return nil
		}
		return tx.CreateInBatches(samples, sampleBatchSize).Error
	})
	if err != nil {
		return "", fmt.Errorf("save run %s: %w", meta.ID, err)
	}

	s.log.Debug().Str("run", meta.ID).Int("samples", len(samples)).Msg("saved run")
	return meta.ID, nil
}

func (s *SQLStore) List(ctx context.Context) ([]RunMetadata, error) {
	var recs []runRecord
	err := s.db.WithContext(ctx).Preload("Metrics").Order("timestamp desc").Find(&recs).Error
	if err != nil {
		return nil, err
	}
	runs := make([]RunMetadata, len(recs))
	for i := range recs {
		runs[i] = recs[i].toMetadata()
	}
	return runs, nil
}

func (s *SQLStore) Load(ctx context.Context, id string) (*RunMetadata, error) {
	var rec runRecord
	err := s.db.WithContext(ctx).Preload("Metrics").First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	meta := rec.toMetadata()
	return &meta, nil
}

func (s *SQLStore) LoadSamples(ctx context.Context, id string) ([]sim.State, []float64, error) {
	if _, err := s.Load(ctx, id); err != nil {
		return nil, nil, err
	}

	var recs []sampleRecord
	err := s.db.WithContext(ctx).Where("run_id = ?", id).Order("step").Find(&recs).Error
	if err != nil {
		return nil, nil, err
	}

	states := make([]sim.State, len(recs))
	times := make([]float64, len(recs))
	for i, rec := range recs {
		if err := json.Unmarshal([]byte(rec.State), &states[i]); err != nil {
			return nil, nil, fmt.Errorf("sample %d of %s: %w", rec.Step, id, err)
		}
		times[i] = rec.Time
	}
	return states, times, nil
}

func (s *SQLStore) LoadControls(ctx context.Context, id string) ([]sim.Control, error) {
	if _, err := s.Load(ctx, id); err != nil {
		return nil, err
	}

	var recs []sampleRecord
	err := s.db.WithContext(ctx).
		Where("run_id = ? AND control <> ''", id).
		Order("step").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}

	controls := make([]sim.Control, len(recs))
	for i, rec := range recs {
		if err := json.Unmarshal([]byte(rec.Control), &controls[i]); err != nil {
			return nil, fmt.Errorf("control %d of %s: %w", rec.Step, id, err)
		}
	}
	return controls, nil
}

func toRecord(meta RunMetadata) runRecord {
	names := make([]string, 0, len(meta.Metrics))
	for name := range meta.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	metrics := make([]metricRecord, len(names))
	for i, name := range names {
		metrics[i] = metricRecord{RunID: meta.ID, Name: name, Value: meta.Metrics[name]}
	}

	return runRecord{
		ID:         meta.ID,
		Model:      meta.Model,
		Integrator: meta.Integrator,
		Timestamp:  meta.Timestamp,
		Seed:       meta.Seed,
		Dt:         meta.Dt,
		Duration:   meta.Duration,
		Steps:      meta.Steps,
		Terminated: meta.Terminated,
		Metrics:    metrics,
	}
}

func (r runRecord) toMetadata() RunMetadata {
	metrics := make(map[string]float64, len(r.Metrics))
	for _, m := range r.Metrics {
		metrics[m.Name] = m.Value
	}
	return RunMetadata{
		ID:         r.ID,
		Model:      r.Model,
		Integrator: r.Integrator,
		Timestamp:  r.Timestamp,
		Seed:       r.Seed,
		Dt:         r.Dt,
		Duration:   r.Duration,
		Steps:      r.Steps,
		Terminated: r.Terminated,
		Metrics:    metrics,
	}
}
