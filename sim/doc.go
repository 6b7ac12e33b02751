// Package sim provides the discrete-event supply-chain simulation engine.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - event.go: the delivery event and the (tick, sequence)-ordered event queue
//   - supplier.go / manufacturer.go: the two agent types and their per-tick behavior
//   - simulator.go: the orchestrator that owns all state and drives the tick pipeline
//
// # Architecture
//
// The simulator models a fixed roster of supplier agents and one manufacturer
// stepping through discrete ticks. Each tick runs a fixed pipeline: FX rates
// update, due deliveries drain into inventory, every supplier attempts
// production (in construction order), the manufacturer adapts its sourcing and
// builds if it can, the clock advances, and a metrics snapshot is appended.
// The pipeline order is load-bearing: deliveries must land before agents act
// on inventory in the same tick, and FX must settle before any cost is read.
//
// Exogenous shocks (supplier outages, tariff shocks, sanctions, FX shocks)
// enter through the ScenarioController, which must only be invoked strictly
// between ticks by a single driver. Scenario scripts (script.go) are the
// file-driven form of that contract.
//
// Sub-packages:
//   - sim/trace/: pure-data records for the scenario log, sourcing changes,
//     and production failures (no dependency on sim/)
//   - sim/export/: SQLite results sink for the external reporting layer
//
// All randomness flows through a PartitionedRNG (rng.go) so two runs with the
// same seed and roster produce identical traces.
package sim
