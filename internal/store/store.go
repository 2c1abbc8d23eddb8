package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/longsim/internal/sim"
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
	Profile   string             `json:"profile"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Steps     int                `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
}

var csvHeader = []string{"time", "x", "v", "a", "we", "throttle", "grade"}

// Save writes a run directory holding metadata.json and states.csv, one
// row per recorded sample.
func (s *Store) Save(profile string, dt, duration float64, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", profile, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Profile:   profile,
		Timestamp: time.Now(),
		Dt:        dt,
		Duration:  duration,
		Steps:     result.StepsTaken,
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

	if err := WriteCSV(w, result); err != nil {
		return "", err
	}

	return runID, nil
}

// WriteCSV streams the trajectory columns of a result as CSV rows.
func WriteCSV(w *csv.Writer, result *sim.Result) error {
	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for i := range result.Times {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.FormatFloat(result.Positions[i], 'f', 6, 64),
			strconv.FormatFloat(result.Velocities[i], 'f', 6, 64),
			strconv.FormatFloat(result.Accelerations[i], 'f', 6, 64),
			strconv.FormatFloat(result.EngineSpeeds[i], 'f', 6, 64),
			strconv.FormatFloat(result.Throttles[i], 'f', 6, 64),
			strconv.FormatFloat(result.Grades[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
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

// LoadResult reads a saved states.csv back into column form.
func (s *Store) LoadResult(runID string) (*sim.Result, error) {
	csvPath := filepath.Join(s.baseDir, runID, "states.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	result := &sim.Result{Metrics: make(map[string]float64)}
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < len(csvHeader) {
			continue
		}

		vals := make([]float64, len(csvHeader))
		ok := true
		for j := range vals {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}

		result.Times = append(result.Times, vals[0])
		result.Positions = append(result.Positions, vals[1])
		result.Velocities = append(result.Velocities, vals[2])
		result.Accelerations = append(result.Accelerations, vals[3])
		result.EngineSpeeds = append(result.EngineSpeeds, vals[4])
		result.Throttles = append(result.Throttles, vals[5])
		result.Grades = append(result.Grades, vals[6])
		result.StepsTaken++
	}

	return result, nil
}
