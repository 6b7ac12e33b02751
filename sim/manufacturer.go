package sim

import (
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/supplychain-sim/supplychain-sim/sim/trace"
)

// ManufacturerAgent consumes inventory against a fixed bill of materials,
// adapting its sourcing across suppliers when a preferred source becomes
// unavailable. One instance per run.
type ManufacturerAgent struct {
	// RequiredParts maps part -> quantity needed per unit built.
	// Immutable after construction.
	RequiredParts map[string]int

	// PreferredSources maps part -> sourcing key of the currently preferred
	// supplier. Initialized to the cheapest available supplier per part and
	// updated by AdaptSourcingStrategy.
	PreferredSources map[string]string

	// ComponentsBuilt counts units built; monotonically increasing.
	ComponentsBuilt int
}

// NewManufacturerAgent creates a manufacturer with the given bill of
// materials. Preferred sources start empty; InitPreferredSources or roster
// construction fills them in. A nil or empty bill of materials is a
// degenerate but valid configuration: the empty product is always buildable.
func NewManufacturerAgent(requiredParts map[string]int) *ManufacturerAgent {
	bom := make(map[string]int, len(requiredParts))
	for part, qty := range requiredParts {
		bom[part] = qty
	}
	return &ManufacturerAgent{
		RequiredParts:    bom,
		PreferredSources: make(map[string]string),
	}
}

// ID implements Agent.
func (m *ManufacturerAgent) ID() string {
	return "manufacturer"
}

// sortedParts returns the bill-of-materials parts in stable order so map
// iteration never perturbs sourcing decisions or RNG-free determinism.
func (m *ManufacturerAgent) sortedParts() []string {
	parts := make([]string, 0, len(m.RequiredParts))
	for part := range m.RequiredParts {
		parts = append(parts, part)
	}
	sort.Strings(parts)
	return parts
}

// InitPreferredSources picks, per required part, the cheapest available
// supplier at time zero. Parts with no viable supplier stay unassigned and
// are picked up by AdaptSourcingStrategy later.
func (m *ManufacturerAgent) InitPreferredSources(sim *Simulator) {
	for _, part := range m.sortedParts() {
		if best := cheapestViableSupplier(sim, part); best != nil {
			m.PreferredSources[part] = best.Key()
		}
	}
}

// cheapestViableSupplier returns the cheapest online, unsanctioned supplier
// of the given part, or nil. Candidates are scanned in construction order
// and sorted stably by effective cost, so price ties break by discovery order.
func cheapestViableSupplier(sim *Simulator, part string) *SupplierAgent {
	var candidates []*SupplierAgent
	for _, s := range sim.Suppliers {
		if s.Part != part || !s.Available() {
			continue
		}
		if math.IsInf(s.EffectiveCost(sim.Econ), 1) {
			continue
		}
		candidates = append(candidates, s)
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].EffectiveCost(sim.Econ) < candidates[j].EffectiveCost(sim.Econ)
	})
	return candidates[0]
}

// AdaptSourcingStrategy re-sources each part whose preferred supplier is
// missing, offline, sanctioned, or priced at infinity. The search is greedy
// and per-part: candidates sort ascending by effective cost and the first
// viable one wins — at most one switch per part per call, no global
// re-optimization. A still-viable preferred source is left untouched, so
// calling twice with no state change in between records nothing new.
func (m *ManufacturerAgent) AdaptSourcingStrategy(tick int64, sim *Simulator) {
	for _, part := range m.sortedParts() {
		fromKey := m.PreferredSources[part]
		current := sim.Supplier(fromKey)
		if current != nil && current.Available() && !math.IsInf(current.EffectiveCost(sim.Econ), 1) {
			continue
		}

		next := cheapestViableSupplier(sim, part)
		if next == nil {
			logrus.Warnf("no viable supplier for part %q at tick %d", part, tick)
			continue
		}
		if next.Key() == fromKey {
			continue
		}

		newCost := next.EffectiveCost(sim.Econ)
		m.PreferredSources[part] = next.Key()
		sim.Trace.RecordSourcingChange(trace.SourcingChangeRecord{
			Tick:    tick,
			Part:    part,
			FromKey: fromKey,
			ToKey:   next.Key(),
			NewCost: newCost,
		})
		sim.sourcingChangesThisTick++
		logrus.Infof("re-sourced part %q from %s to %s at %.2f/unit (tick %d)",
			part, fromKey, next.Key(), newCost, tick)
	}
}

// ComponentCost sums effectiveCost(part) * quantity across required parts.
// Returns +Inf if any part's current supplier is missing, offline, or
// sanctioned: infeasibility propagates without partial totals.
func (m *ManufacturerAgent) ComponentCost(sim *Simulator) float64 {
	total := 0.0
	for _, part := range m.sortedParts() {
		supplier := sim.Supplier(m.PreferredSources[part])
		if supplier == nil || !supplier.Available() {
			return math.Inf(1)
		}
		cost := supplier.EffectiveCost(sim.Econ)
		if math.IsInf(cost, 1) {
			return math.Inf(1)
		}
		total += cost * float64(m.RequiredParts[part])
	}
	return total
}

// Step runs one manufacturer tick: adapt sourcing, then build one unit if
// the plan is affordable and every required part has sufficient on-hand
// inventory. Inventory decrements happen only after every part checks out,
// so a partial build can never occur.
func (m *ManufacturerAgent) Step(tick int64, sim *Simulator) {
	m.AdaptSourcingStrategy(tick, sim)

	cost := m.ComponentCost(sim)
	if math.IsInf(cost, 1) {
		logrus.Debugf("build skipped at tick %d: sourcing infeasible", tick)
		return
	}

	parts := m.sortedParts()
	for _, part := range parts {
		key := m.PreferredSources[part]
		if sim.Inventory.OnHand(key) < m.RequiredParts[part] {
			logrus.Debugf("build skipped at tick %d: %d units of %q short from %s",
				tick, m.RequiredParts[part]-sim.Inventory.OnHand(key), part, key)
			return
		}
	}

	for _, part := range parts {
		sim.Inventory.Consume(m.PreferredSources[part], m.RequiredParts[part])
	}
	m.ComponentsBuilt++
	logrus.Debugf("built component %d at tick %d for %.2f", m.ComponentsBuilt, tick, cost)
}
