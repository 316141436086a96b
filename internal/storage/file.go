package storage

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/san-kum/sixdof/internal/sim"
)

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
)

// FileStore keeps each run in baseDir/<id>/ as metadata.json and
// states.csv.
type FileStore struct {
	baseDir string
	log     zerolog.Logger
}

func NewFileStore(baseDir string, log zerolog.Logger) *FileStore {
	return &FileStore{baseDir: baseDir, log: log}
}

func (s *FileStore) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) Save(ctx context.Context, meta RunMetadata, result *sim.Result) (string, error) {
	meta = prepare(meta, result)
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeStates(filepath.Join(runDir, statesFile), result); err != nil {
		return "", err
	}

	s.log.Debug().Str("run", meta.ID).Int("samples", len(result.States)).Msg("saved run")
	return meta.ID, nil
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

// writeStates writes one row per sample: time, the state, then the
// control applied over the step that starts at that sample. The final
// sample has no control and gets zeros.
func writeStates(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if len(result.States) == 0 {
		w.Flush()
		return w.Error()
	}

	header := []string{"time"}
	for i := range result.States[0] {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	numControls := 0
	if len(result.Controls) > 0 {
		numControls = len(result.Controls[0])
	}
	for i := 0; i < numControls; i++ {
		header = append(header, fmt.Sprintf("u%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range result.States {
		row := []string{formatFloat(result.Times[i])}
		for _, val := range result.States[i] {
			row = append(row, formatFloat(val))
		}
		for j := 0; j < numControls; j++ {
			val := 0.0
			if i < len(result.Controls) && j < len(result.Controls[i]) {
				val = result.Controls[i][j]
			}
			row = append(row, formatFloat(val))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (s *FileStore) List(ctx context.Context) ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(ctx, entry.Name())
		if err != nil {
			s.log.Warn().Err(err).Str("dir", entry.Name()).Msg("skipping unreadable run")
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *FileStore) Load(ctx context.Context, id string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// readStates returns the header and data rows of a run's states.csv.
func (s *FileStore) readStates(id string) ([]string, [][]string, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, statesFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
		}
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, nil
	}
	return records[0], records[1:], nil
}

// columns counts the header columns starting with prefix.
func columns(header []string, prefix byte) int {
	n := 0
	for _, col := range header {
		if len(col) > 0 && col[0] == prefix {
			n++
		}
	}
	return n
}

func (s *FileStore) LoadSamples(ctx context.Context, id string) ([]sim.State, []float64, error) {
	header, rows, err := s.readStates(id)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return []sim.State{}, []float64{}, nil
	}

	stateDim := columns(header, 'x')
	times := make([]float64, 0, len(rows))
	states := make([]sim.State, 0, len(rows))
	for i, record := range rows {
		if len(record) < stateDim+1 {
			return nil, nil, fmt.Errorf("%s line %d: %d fields", statesFile, i+2, len(record))
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%s line %d: %w", statesFile, i+2, err)
		}
		state, err := parseFloats(record[1 : 1+stateDim])
		if err != nil {
			return nil, nil, fmt.Errorf("%s line %d: %w", statesFile, i+2, err)
		}
		times = append(times, t)
		states = append(states, state)
	}

	return states, times, nil
}

// LoadControls reads the u columns. The zero padding on the final sample
// is not returned.
func (s *FileStore) LoadControls(ctx context.Context, id string) ([]sim.Control, error) {
	header, rows, err := s.readStates(id)
	if err != nil {
		return nil, err
	}
	controlDim := columns(header, 'u')
	if len(rows) < 2 || controlDim == 0 {
		return []sim.Control{}, nil
	}

	stateDim := columns(header, 'x')
	controls := make([]sim.Control, 0, len(rows)-1)
	for i, record := range rows[:len(rows)-1] {
		start := 1 + stateDim
		if len(record) < start+controlDim {
			return nil, fmt.Errorf("%s line %d: %d fields", statesFile, i+2, len(record))
		}
		u, err := parseFloats(record[start : start+controlDim])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", statesFile, i+2, err)
		}
		controls = append(controls, sim.Control(u))
	}
	return controls, nil
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
