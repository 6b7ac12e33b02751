package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplySupplierDisruption(t *testing.T) {
	s := newTestSimulator()
	s.Clock = 10

	ok := s.Scenario.ApplySupplierDisruption("Acme", "China", 5)
	require.True(t, ok)

	acme := s.Supplier("Acme_China")
	assert.True(t, acme.Offline)
	assert.Equal(t, int64(15), acme.OfflineUntil)

	require.Len(t, s.Trace.Scenario, 1)
	assert.Equal(t, ActionSupplierDisruption, s.Trace.Scenario[0].Action)
	assert.Equal(t, int64(10), s.Trace.Scenario[0].Tick)
	assert.True(t, s.Trace.Scenario[0].Applied)
}

func TestApplySupplierDisruption_UnknownSupplier(t *testing.T) {
	s := newTestSimulator()

	ok := s.Scenario.ApplySupplierDisruption("Nobody", "Nowhere", 5)
	assert.False(t, ok)

	// Warn-and-record, never throw; no supplier state changed.
	require.Len(t, s.Trace.Scenario, 1)
	assert.False(t, s.Trace.Scenario[0].Applied)
	for _, sup := range s.Suppliers {
		assert.False(t, sup.Offline, "supplier %s perturbed by failed disruption", sup.Key())
	}
}

func TestApplySanctions_CountsAndCostsInfinite(t *testing.T) {
	suppliers := []*SupplierAgent{
		{Name: "A", Part: "Brake Pad", Country: "China", Reliability: 1},
		{Name: "B", Part: "Sensor", Country: "China", Reliability: 1},
		{Name: "C", Part: "Brake Pad", Country: "Germany", Reliability: 1},
	}
	econ := NewEconomicState()
	econ.SetBasePrice("Brake Pad", "China", 30)
	econ.SetBasePrice("Sensor", "China", 80)
	econ.SetBasePrice("Brake Pad", "Germany", 50)
	s := NewSimulator(NewSimulationKey(1), econ, suppliers, NewManufacturerAgent(nil))

	affected := s.Scenario.ApplySanctions("China")
	assert.Equal(t, 2, affected)
	for _, sup := range s.Suppliers {
		if sup.Country == "China" {
			assert.True(t, math.IsInf(sup.EffectiveCost(econ), 1), "%s should cost +Inf", sup.Key())
		} else {
			assert.False(t, math.IsInf(sup.EffectiveCost(econ), 1), "%s should stay finite", sup.Key())
		}
	}

	assert.Equal(t, 2, s.Scenario.RemoveSanctions("China"))
	for _, sup := range s.Suppliers {
		assert.False(t, sup.Sanctioned)
	}
}

func TestApplySanctions_NoMatches(t *testing.T) {
	s := newTestSimulator()
	assert.Equal(t, 0, s.Scenario.ApplySanctions("Atlantis"))
	require.Len(t, s.Trace.Scenario, 1)
	assert.False(t, s.Trace.Scenario[0].Applied)
}

func TestApplyTariffShock_ChangesComponentCostExactly(t *testing.T) {
	s := newTestSimulator()
	oldTariff := s.Econ.Tariffs["China"]
	fxRate := s.Econ.FXRates["China"]
	before := s.Manufacturer.ComponentCost(s)

	s.Scenario.ApplyTariffShock("China", 0.50)
	after := s.Manufacturer.ComponentCost(s)

	// Preferred brake pad source is Chinese: delta = basePrice * fx * (new - old) * qty.
	wantDelta := 30.0 * fxRate * (0.50 - oldTariff) * 2
	assert.InDelta(t, wantDelta, after-before, 1e-9)
}

func TestApplyFxShock_BypassesClamp(t *testing.T) {
	s := newTestSimulator()
	s.Scenario.ApplyFxShock("China", 2.8)
	assert.Equal(t, 2.8, s.Econ.FXRates["China"])
}

func TestApplyFxShock_BaseCurrencyIgnored(t *testing.T) {
	s := newTestSimulator()
	s.Scenario.ApplyFxShock(BaseCurrencyCountry, 1.5)
	assert.Equal(t, 1.0, s.Econ.FXRates[BaseCurrencyCountry])
	require.Len(t, s.Trace.Scenario, 1)
	assert.False(t, s.Trace.Scenario[0].Applied)
}

func TestSetFxVolatility(t *testing.T) {
	s := newTestSimulator()
	s.Scenario.SetFxVolatility("China", 0.15)
	assert.Equal(t, 0.15, s.Econ.FXVolatility["China"])
}
