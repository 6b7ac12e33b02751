// Tracks per-tick and run-level simulation metrics for final reporting.

package sim

import (
	"fmt"
	"math"
	"sort"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/gonum/stat"
)

// TickSnapshot is one append-only metrics record per tick.
type TickSnapshot struct {
	Tick int64 `json:"tick"`

	// ComponentCost is the manufacturer's total component cost at snapshot
	// time; zero with SourcingFeasible=false when any preferred supplier is
	// unavailable.
	ComponentCost    float64 `json:"component_cost"`
	SourcingFeasible bool    `json:"sourcing_feasible"`

	ComponentsBuilt int `json:"components_built"`

	Inventory      map[string]int `json:"inventory"`
	TotalInventory int            `json:"total_inventory"`

	FXRates map[string]float64 `json:"fx_rates"`
	Tariffs map[string]float64 `json:"tariffs"`

	ProductionFailures int `json:"production_failures"`
	SourcingChanges    int `json:"sourcing_changes"`
}

// Metrics aggregates per-tick snapshots for the whole run. Snapshots are
// append-only and never rewritten.
type Metrics struct {
	Snapshots []TickSnapshot `json:"snapshots"`
}

// NewMetrics creates an empty metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{Snapshots: make([]TickSnapshot, 0)}
}

// Snapshot appends one record for the tick that just completed. Inventory,
// FX, and tariff maps are copied so later mutation cannot rewrite history.
func (m *Metrics) Snapshot(tick int64, sim *Simulator) {
	cost := sim.Manufacturer.ComponentCost(sim)
	feasible := !math.IsInf(cost, 1)
	if !feasible {
		cost = 0
	}

	fx := make(map[string]float64, len(sim.Econ.FXRates))
	for country, rate := range sim.Econ.FXRates {
		fx[country] = rate
	}
	tariffs := make(map[string]float64, len(sim.Econ.Tariffs))
	for country, rate := range sim.Econ.Tariffs {
		tariffs[country] = rate
	}

	m.Snapshots = append(m.Snapshots, TickSnapshot{
		Tick:               tick,
		ComponentCost:      cost,
		SourcingFeasible:   feasible,
		ComponentsBuilt:    sim.Manufacturer.ComponentsBuilt,
		Inventory:          sim.Inventory.Snapshot(),
		TotalInventory:     sim.Inventory.Total(),
		FXRates:            fx,
		Tariffs:            tariffs,
		ProductionFailures: sim.failuresThisTick,
		SourcingChanges:    sim.sourcingChangesThisTick,
	})
}

// Summary holds run-level aggregates derived from the snapshots.
type Summary struct {
	Ticks           int64   `json:"ticks"`
	ComponentsBuilt int     `json:"components_built"`
	BuildRate       float64 `json:"build_rate"` // components per tick

	FeasibleTicks int     `json:"feasible_ticks"`
	CostMean      float64 `json:"cost_mean"`
	CostP50       float64 `json:"cost_p50"`
	CostP90       float64 `json:"cost_p90"`

	ProductionFailures int `json:"production_failures"`
	SourcingChanges    int `json:"sourcing_changes"`
	FinalInventory     int `json:"final_inventory"`
}

// Summarize computes run-level aggregates. Cost statistics cover only ticks
// where sourcing was feasible.
func (m *Metrics) Summarize() Summary {
	s := Summary{Ticks: int64(len(m.Snapshots))}
	if len(m.Snapshots) == 0 {
		return s
	}

	costs := make([]float64, 0, len(m.Snapshots))
	for _, snap := range m.Snapshots {
		if snap.SourcingFeasible {
			costs = append(costs, snap.ComponentCost)
		}
		s.ProductionFailures += snap.ProductionFailures
		s.SourcingChanges += snap.SourcingChanges
	}

	last := m.Snapshots[len(m.Snapshots)-1]
	s.ComponentsBuilt = last.ComponentsBuilt
	s.BuildRate = float64(last.ComponentsBuilt) / float64(len(m.Snapshots))
	s.FinalInventory = last.TotalInventory
	s.FeasibleTicks = len(costs)

	if len(costs) > 0 {
		sort.Float64s(costs)
		s.CostMean = stat.Mean(costs, nil)
		s.CostP50 = stat.Quantile(0.5, stat.Empirical, costs, nil)
		s.CostP90 = stat.Quantile(0.9, stat.Empirical, costs, nil)
	}
	return s
}

// Print displays the run summary at the end of the simulation.
func (m *Metrics) Print() {
	s := m.Summarize()
	fmt.Println("=== Simulation Summary ===")
	fmt.Printf("Ticks                : %s\n", humanize.Comma(s.Ticks))
	fmt.Printf("Components Built     : %s\n", humanize.Comma(int64(s.ComponentsBuilt)))
	fmt.Printf("Build Rate           : %.3f /tick\n", s.BuildRate)
	fmt.Printf("Feasible Ticks       : %s\n", humanize.Comma(int64(s.FeasibleTicks)))
	if s.FeasibleTicks > 0 {
		fmt.Printf("Component Cost Mean  : %.2f\n", s.CostMean)
		fmt.Printf("Component Cost P50   : %.2f\n", s.CostP50)
		fmt.Printf("Component Cost P90   : %.2f\n", s.CostP90)
	}
	fmt.Printf("Production Failures  : %s\n", humanize.Comma(int64(s.ProductionFailures)))
	fmt.Printf("Sourcing Changes     : %s\n", humanize.Comma(int64(s.SourcingChanges)))
	fmt.Printf("Final Inventory      : %s units\n", humanize.Comma(int64(s.FinalInventory)))
}
