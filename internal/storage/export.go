package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/sixdof/internal/sim"
)

type ExportData struct {
	RunMetadata
	Times    []float64   `json:"times"`
	States   []sim.State `json:"states"`
	Controls [][]float64 `json:"controls,omitempty"`
}

// ExportJSON writes meta and the full trajectory as indented JSON.
func ExportJSON(w io.Writer, meta RunMetadata, result *sim.Result) error {
	data := ExportData{
		RunMetadata: meta,
		Times:       result.Times,
		States:      result.States,
		Controls:    make([][]float64, len(result.Controls)),
	}
	if data.Steps == 0 {
		data.Steps = result.StepsTaken
	}
	if data.Metrics == nil {
		data.Metrics = result.Metrics
	}
	for i, c := range result.Controls {
		data.Controls[i] = c
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSONFile(path string, meta RunMetadata, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := ExportJSON(file, meta, result); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
