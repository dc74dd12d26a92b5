package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/fluidsim/internal/experiment"
)

type ExportData struct {
	Run     RunMetadata         `json:"run"`
	Samples []experiment.Sample `json:"samples"`
}

// ExportJSON writes a run with its series as one JSON document. An empty
// path writes to stdout.
func (s *Store) ExportJSON(runID, path string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, err := s.LoadSeries(runID)
	if err != nil {
		return err
	}
	return withOutput(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ExportData{Run: *meta, Samples: samples})
	})
}

// ExportCSV copies a run's series as CSV. An empty path writes to stdout.
func (s *Store) ExportCSV(runID, path string) error {
	samples, err := s.LoadSeries(runID)
	if err != nil {
		return err
	}
	return withOutput(path, func(w io.Writer) error {
		return gocsv.Marshal(&samples, w)
	})
}

func withOutput(path string, fn func(io.Writer) error) error {
	if path == "" {
		return fn(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return fn(f)
}
