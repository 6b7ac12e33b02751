// Package trace provides append-only record types for the simulation's
// scenario log and decision trace. It stores pure data and has no dependency
// on sim/, so the external reporting layer can consume it directly.
package trace

// ScenarioRecord captures one scenario-controller mutation, tagged with the
// tick at which it was applied.
type ScenarioRecord struct {
	Tick     int64  `json:"tick"`
	Action   string `json:"action"`
	Supplier string `json:"supplier,omitempty"`
	Country  string `json:"country,omitempty"`

	// DurationTicks is set for supplier disruptions.
	DurationTicks int64 `json:"duration_ticks,omitempty"`

	// Value carries the new tariff, FX rate, or volatility where applicable.
	Value float64 `json:"value,omitempty"`

	// Affected counts suppliers touched by sanction toggles.
	Affected int `json:"affected,omitempty"`

	// Applied is false for configuration errors (e.g. unknown supplier),
	// which are logged and recorded but never halt the run.
	Applied bool `json:"applied"`
}

// SourcingChangeRecord captures one adaptive re-sourcing decision.
type SourcingChangeRecord struct {
	Tick    int64   `json:"tick"`
	Part    string  `json:"part"`
	FromKey string  `json:"from_key"`
	ToKey   string  `json:"to_key"`
	NewCost float64 `json:"new_cost"`
}

// ProductionFailureRecord captures one failed supplier production attempt.
// Stochastic failure is an expected outcome, not an error.
type ProductionFailureRecord struct {
	Tick        int64  `json:"tick"`
	SupplierKey string `json:"supplier_key"`
	Part        string `json:"part"`
}
