package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fynnbrem/homepage/internal/collider"
	"github.com/fynnbrem/homepage/internal/sim"
)

type ExportData struct {
	Run       RunMetadata       `json:"run"`
	Snapshots []sim.Snapshot    `json:"snapshots,omitempty"`
	Records   []collider.Record `json:"records,omitempty"`
}

// Export gathers everything stored for runID.
func (s *Store) Export(runID string) (*ExportData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	data := &ExportData{Run: *meta}

	switch meta.Kind {
	case KindArena:
		data.Snapshots, err = s.LoadStates(runID)
	case KindPi:
		data.Records, err = s.LoadRecords(runID)
	default:
		err = fmt.Errorf("run %s: unknown kind %q", runID, meta.Kind)
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// ExportJSON writes the run as indented JSON to w.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	data, err := s.Export(runID)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func (s *Store) ExportJSONFile(path, runID string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return s.ExportJSON(file, runID)
}
