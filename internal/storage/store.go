package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

// Sample is one recorded trajectory point.
type Sample struct {
	T        float64 `json:"t"`
	Position float64 `json:"position"`
	Velocity float64 `json:"velocity"`
	Energy   float64 `json:"energy"`
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Damping   float64   `json:"damping"`
	Stiffness float64   `json:"stiffness"`
	Mass      float64   `json:"mass"`
	Forcing   float64   `json:"forcing"`
	Method    string    `json:"method"`
	AbsTol    float64   `json:"abs_tol"`
	RelTol    float64   `json:"rel_tol"`
	Duration  float64   `json:"duration"`
	FPS       int       `json:"fps"`
	Samples   int       `json:"samples"`
}

// Save writes a run directory with metadata.json and states.csv,
// returning the generated run id.
func (s *Store) Save(meta RunMetadata, samples []Sample) (string, error) {
	runID := fmt.Sprintf("spring_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Samples = len(samples)

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"time", "position", "velocity", "energy"}); err != nil {
		return "", err
	}
	for _, sm := range samples {
		row := []string{
			strconv.FormatFloat(sm.T, 'f', 6, 64),
			strconv.FormatFloat(sm.Position, 'f', 6, 64),
			strconv.FormatFloat(sm.Velocity, 'f', 6, 64),
			strconv.FormatFloat(sm.Energy, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]Sample, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("empty states file for run %s", runID)
	}

	samples := make([]Sample, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < 4 {
			return nil, fmt.Errorf("malformed row in run %s", runID)
		}
		var sm Sample
		if sm.T, err = strconv.ParseFloat(row[0], 64); err != nil {
			return nil, err
		}
		if sm.Position, err = strconv.ParseFloat(row[1], 64); err != nil {
			return nil, err
		}
		if sm.Velocity, err = strconv.ParseFloat(row[2], 64); err != nil {
			return nil, err
		}
		if sm.Energy, err = strconv.ParseFloat(row[3], 64); err != nil {
			return nil, err
		}
		samples = append(samples, sm)
	}
	return samples, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.Load(e.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

type runExport struct {
	Meta    RunMetadata `json:"meta"`
	Samples []Sample    `json:"samples"`
}

// ExportJSON writes the full run (metadata plus samples) as indented
// JSON to stdout.
func (s *Store) ExportJSON(runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(runExport{Meta: *meta, Samples: samples})
}
