package trace

// SimulationTrace collects scenario, sourcing, and production-failure
// records during a run. All three slices are append-only; entries are never
// rewritten.
type SimulationTrace struct {
	Scenario           []ScenarioRecord          `json:"scenario"`
	SourcingChanges    []SourcingChangeRecord    `json:"sourcing_changes"`
	ProductionFailures []ProductionFailureRecord `json:"production_failures"`
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace() *SimulationTrace {
	return &SimulationTrace{
		Scenario:           make([]ScenarioRecord, 0),
		SourcingChanges:    make([]SourcingChangeRecord, 0),
		ProductionFailures: make([]ProductionFailureRecord, 0),
	}
}

// RecordScenario appends a scenario-log entry.
func (st *SimulationTrace) RecordScenario(record ScenarioRecord) {
	st.Scenario = append(st.Scenario, record)
}

// RecordSourcingChange appends a sourcing-change record.
func (st *SimulationTrace) RecordSourcingChange(record SourcingChangeRecord) {
	st.SourcingChanges = append(st.SourcingChanges, record)
}

// RecordProductionFailure appends a production-failure record.
func (st *SimulationTrace) RecordProductionFailure(record ProductionFailureRecord) {
	st.ProductionFailures = append(st.ProductionFailures, record)
}
