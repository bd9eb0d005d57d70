// Package storage persists simulation runs as directories holding a
// metadata.json and a states.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/hwen/knotsim/internal/sim"
)

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
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Entities  []string           `json:"entities"`
	Crossings []int              `json:"crossings"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes one run directory. The CSV carries a time column followed
// by x, y, z, world columns per entity, in result order.
func (s *Store) Save(scenario string, cfg sim.Config, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scenario:  scenario,
		Timestamp: time.Now(),
		Seed:      cfg.Seed,
		Dt:        cfg.Dt,
		Duration:  cfg.Duration,
		Entities:  result.Names,
		Crossings: result.Crossings,
		Metrics:   result.Metrics,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "states.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"time"}
	for _, name := range result.Names {
		header = append(header,
			name+"_x", name+"_y", name+"_z", name+"_world")
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i, row := range result.Samples {
		record := []string{strconv.FormatFloat(result.Times[i], 'f', 6, 64)}
		for _, sample := range row {
			record = append(record,
				strconv.FormatFloat(sample.Pos.X, 'f', 6, 64),
				strconv.FormatFloat(sample.Pos.Y, 'f', 6, 64),
				strconv.FormatFloat(sample.Pos.Z, 'f', 6, 64),
				strconv.Itoa(sample.World))
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadStates reads a run's CSV back into sample rows. Column layout
// follows Save: four columns per entity after the time column.
func (s *Store) LoadStates(runID string) ([][]sim.Sample, []float64, error) {
	csvPath := filepath.Join(s.baseDir, runID, "states.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return [][]sim.Sample{}, []float64{}, nil
	}

	numEntities := (len(records[0]) - 1) / 4

	times := make([]float64, 0, len(records)-1)
	samples := make([][]sim.Sample, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 1+4*numEntities {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}

		row := make([]sim.Sample, numEntities)
		bad := false
		for j := 0; j < numEntities; j++ {
			base := 1 + 4*j
			x, errX := strconv.ParseFloat(record[base], 64)
			y, errY := strconv.ParseFloat(record[base+1], 64)
			z, errZ := strconv.ParseFloat(record[base+2], 64)
			w, errW := strconv.Atoi(record[base+3])
			if errX != nil || errY != nil || errZ != nil || errW != nil {
				bad = true
				break
			}
			row[j].Pos.X, row[j].Pos.Y, row[j].Pos.Z = x, y, z
			row[j].World = w
		}
		if bad {
			continue
		}

		times = append(times, t)
		samples = append(samples, row)
	}

	return samples, times, nil
}

// ExportJSON writes the full trace of a saved run as one JSON document.
func (s *Store) ExportJSON(runID string, outPath string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, times, err := s.LoadStates(runID)
	if err != nil {
		return err
	}

	doc := struct {
		Metadata *RunMetadata   `json:"metadata"`
		Times    []float64      `json:"times"`
		Samples  [][]sim.Sample `json:"samples"`
	}{meta, times, samples}

	file, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
