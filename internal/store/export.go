package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/longsim/internal/sim"
)

type ExportData struct {
	Profile       string             `json:"profile"`
	Dt            float64            `json:"dt"`
	Duration      float64            `json:"duration"`
	Steps         int                `json:"steps"`
	Times         []float64          `json:"times"`
	Positions     []float64          `json:"positions"`
	Velocities    []float64          `json:"velocities"`
	Accelerations []float64          `json:"accelerations"`
	EngineSpeeds  []float64          `json:"engine_speeds"`
	Throttles     []float64          `json:"throttles"`
	Grades        []float64          `json:"grades"`
	Metrics       map[string]float64 `json:"metrics"`
}

func exportData(meta *RunMetadata, result *sim.Result) ExportData {
	return ExportData{
		Profile:       meta.Profile,
		Dt:            meta.Dt,
		Duration:      meta.Duration,
		Steps:         result.StepsTaken,
		Times:         result.Times,
		Positions:     result.Positions,
		Velocities:    result.Velocities,
		Accelerations: result.Accelerations,
		EngineSpeeds:  result.EngineSpeeds,
		Throttles:     result.Throttles,
		Grades:        result.Grades,
		Metrics:       result.Metrics,
	}
}

// ExportJSON writes a full run, metadata plus trajectory columns, to w.
func ExportJSON(w io.Writer, meta *RunMetadata, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(meta, result))
}

// ExportJSONFile writes a full run to the given path.
func ExportJSONFile(path string, meta *RunMetadata, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return ExportJSON(file, meta, result)
}
