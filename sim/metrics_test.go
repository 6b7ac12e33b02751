package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_SnapshotCopiesState(t *testing.T) {
	s := newTestSimulator()
	s.Run(3)

	snap := s.Metrics.Snapshots[2]
	s.Econ.Tariffs["China"] = 0.9
	s.Inventory.Add("Acme_China", 500)

	assert.NotEqual(t, 0.9, snap.Tariffs["China"], "snapshot tariffs must be a copy")
	assert.Less(t, snap.Inventory["Acme_China"], 500, "snapshot inventory must be a copy")
}

func TestMetrics_SnapshotMarksInfeasibleCost(t *testing.T) {
	s := newTestSimulator()
	s.Scenario.ApplySanctions("Japan") // sole sensor source gone
	s.Step()

	snap := s.Metrics.Snapshots[0]
	assert.False(t, snap.SourcingFeasible)
	assert.Equal(t, 0.0, snap.ComponentCost)
}

func TestMetrics_Summarize(t *testing.T) {
	m := NewMetrics()
	m.Snapshots = []TickSnapshot{
		{Tick: 0, ComponentCost: 100, SourcingFeasible: true, ComponentsBuilt: 0, ProductionFailures: 2},
		{Tick: 1, ComponentCost: 200, SourcingFeasible: true, ComponentsBuilt: 1, SourcingChanges: 1},
		{Tick: 2, SourcingFeasible: false, ComponentsBuilt: 1},
		{Tick: 3, ComponentCost: 300, SourcingFeasible: true, ComponentsBuilt: 2, TotalInventory: 40},
	}

	s := m.Summarize()
	assert.Equal(t, int64(4), s.Ticks)
	assert.Equal(t, 2, s.ComponentsBuilt)
	assert.Equal(t, 0.5, s.BuildRate)
	assert.Equal(t, 3, s.FeasibleTicks)
	assert.InDelta(t, 200.0, s.CostMean, 1e-9)
	assert.Equal(t, 2, s.ProductionFailures)
	assert.Equal(t, 1, s.SourcingChanges)
	assert.Equal(t, 40, s.FinalInventory)
}

func TestMetrics_SummarizeEmpty(t *testing.T) {
	s := NewMetrics().Summarize()
	assert.Equal(t, int64(0), s.Ticks)
	assert.Equal(t, 0, s.ComponentsBuilt)
}
