package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/gravlab/internal/dynamo"
)

type ExportData struct {
	Scenario string             `json:"scenario"`
	Scheme   string             `json:"scheme"`
	Dt       float64            `json:"dt"`
	Steps    int                `json:"steps"`
	Bodies   []string           `json:"bodies"`
	Times    []float64          `json:"times"`
	States   []dynamo.State     `json:"states"`
	Metrics  map[string]float64 `json:"metrics"`
}

func exportData(scenario, scheme string, dt float64, bodies []string, traj *dynamo.Trajectory) ExportData {
	return ExportData{
		Scenario: scenario,
		Scheme:   scheme,
		Dt:       dt,
		Steps:    traj.Len(),
		Bodies:   bodies,
		Times:    traj.Times,
		States:   traj.States,
		Metrics:  traj.Metrics,
	}
}

func WriteJSON(w io.Writer, scenario, scheme string, dt float64, bodies []string, traj *dynamo.Trajectory) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exportData(scenario, scheme, dt, bodies, traj))
}

func ExportJSON(path, scenario, scheme string, dt float64, bodies []string, traj *dynamo.Trajectory) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, scenario, scheme, dt, bodies, traj)
}

func WriteCSV(w io.Writer, bodies []string, traj *dynamo.Trajectory) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if traj.Len() == 0 {
		return nil
	}
	if err := cw.Write(stateHeader(bodies, len(traj.States[0]))); err != nil {
		return err
	}
	for i := range traj.States {
		row := make([]string, 0, len(traj.States[i])+1)
		row = append(row, strconv.FormatFloat(traj.Times[i], 'g', -1, 64))
		for _, val := range traj.States[i] {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}

func ExportCSV(path string, bodies []string, traj *dynamo.Trajectory) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteCSV(file, bodies, traj)
}
