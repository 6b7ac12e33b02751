package sim

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/supplychain-sim/supplychain-sim/sim/trace"
)

const (
	// inventoryCeiling caps on-hand plus in-transit units per sourcing key;
	// at or above it a supplier idles instead of producing.
	inventoryCeiling = 100

	// productionBatchQty is the units delivered per successful production attempt.
	productionBatchQty = 10
)

// SupplierAgent is a per-(name, country) production unit. It reads the
// economic state for pricing and pushes delivery events onto the simulator's
// queue. The offline and sanctioned axes are independent: a supplier can be
// both at once. Agents are created once at roster load and never destroyed.
type SupplierAgent struct {
	Name    string
	Part    string
	Country string

	LeadTimeTicks int64
	Reliability   float64 // probability a production attempt succeeds, in [0,1]

	Offline      bool
	OfflineUntil int64 // meaningful only while Offline
	Sanctioned   bool
}

// SourcingKey builds the composite "name_country" identifier.
func SourcingKey(name, country string) string {
	return name + "_" + country
}

// Key returns the supplier's unique sourcing key.
func (a *SupplierAgent) Key() string {
	return SourcingKey(a.Name, a.Country)
}

// ID implements Agent.
func (a *SupplierAgent) ID() string {
	return a.Key()
}

// Available reports whether the supplier can currently trade and produce.
func (a *SupplierAgent) Available() bool {
	return !a.Offline && !a.Sanctioned
}

// EffectiveCost returns the unit price after tariff and FX adjustment, or
// +Inf if the supplier is sanctioned (cannot trade, regardless of offline
// state) or has no base price on record.
func (a *SupplierAgent) EffectiveCost(econ *EconomicState) float64 {
	if a.Sanctioned {
		return math.Inf(1)
	}
	base, ok := econ.BasePrice(a.Part, a.Country)
	if !ok {
		return math.Inf(1)
	}
	return base * (1.0 + econ.Tariffs[a.Country]) * econ.FXRates[a.Country]
}

// Step runs one tick of supplier behavior: recover from an expired outage,
// then attempt production unless offline, sanctioned, or already at the
// inventory ceiling. A failed reliability draw is an expected outcome,
// recorded in the trace, never an error.
func (a *SupplierAgent) Step(tick int64, sim *Simulator) {
	if a.Offline && tick >= a.OfflineUntil {
		a.Offline = false
		logrus.Infof("supplier %s back online at tick %d", a.Key(), tick)
	}
	if a.Offline || a.Sanctioned {
		return
	}

	key := a.Key()
	pipeline := sim.Inventory.OnHand(key) + sim.InTransit(key)
	if pipeline >= inventoryCeiling {
		logrus.Debugf("supplier %s at ceiling (%d units on hand or in transit), skipping production", key, pipeline)
		return
	}

	if sim.RNG.ForSubsystem(SubsystemProduction).Float64() < a.Reliability {
		sim.ScheduleDelivery(tick+a.LeadTimeTicks, key, productionBatchQty)
	} else {
		logrus.Debugf("supplier %s production attempt failed at tick %d", key, tick)
		sim.Trace.RecordProductionFailure(trace.ProductionFailureRecord{
			Tick:        tick,
			SupplierKey: key,
			Part:        a.Part,
		})
		sim.failuresThisTick++
	}
}
