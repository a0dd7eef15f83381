package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/pointmass/internal/world"
)

type ExportData struct {
	Scenario   string             `json:"scenario"`
	Integrator string             `json:"integrator"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Steps      int                `json:"steps"`
	Times      []float64          `json:"times"`
	States     [][]float64        `json:"states"`
	Metrics    map[string]float64 `json:"metrics"`
}

func ExportJSON(path, scenario, integrator string, dt, duration float64, result *world.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return writeJSON(file, scenario, integrator, dt, duration, result)
}

func ExportJSONStdout(scenario, integrator string, dt, duration float64, result *world.Result) error {
	return writeJSON(os.Stdout, scenario, integrator, dt, duration, result)
}

func writeJSON(w io.Writer, scenario, integrator string, dt, duration float64, result *world.Result) error {
	data := ExportData{
		Scenario:   scenario,
		Integrator: integrator,
		Dt:         dt,
		Duration:   duration,
		Steps:      len(result.Times),
		Times:      result.Times,
		States:     result.States,
		Metrics:    result.Metrics,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportCSV(path string, result *world.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteCSV(file, result)
}

func WriteCSV(out io.Writer, result *world.Result) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	if len(result.States) == 0 {
		return nil
	}

	if err := w.Write(stateHeader(len(result.States[0]))); err != nil {
		return err
	}

	for i := range result.States {
		row := []string{strconv.FormatFloat(result.Times[i], 'f', 6, 64)}
		for _, val := range result.States[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}
