package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	sim "github.com/supplychain-sim/supplychain-sim/sim"
	"github.com/supplychain-sim/supplychain-sim/sim/trace"
)

// resultsDocument is the JSON results layout consumed by the reporting layer.
type resultsDocument struct {
	RunID    string `json:"run_id"`
	Seed     int64  `json:"seed"`
	Scenario string `json:"scenario,omitempty"`

	Summary   sim.Summary            `json:"summary"`
	Snapshots []sim.TickSnapshot     `json:"snapshots"`
	Trace     *trace.SimulationTrace `json:"trace"`
}

// writeJSONResults writes one results document for the completed run.
func writeJSONResults(path, runID string, seed int64, scenarioName string, s *sim.Simulator) error {
	doc := resultsDocument{
		RunID:     runID,
		Seed:      seed,
		Scenario:  scenarioName,
		Summary:   s.Metrics.Summarize(),
		Snapshots: s.Metrics.Snapshots,
		Trace:     s.Trace,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}
