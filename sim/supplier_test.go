package sim

import (
	"math"
	"testing"
)

func TestEffectiveCost_TariffAndFX(t *testing.T) {
	econ := newTestEconomy()
	econ.Tariffs["China"] = 0.25
	econ.FXRates["China"] = 1.2

	s := &SupplierAgent{Name: "Acme", Part: "Brake Pad", Country: "China"}
	want := 30.0 * 1.25 * 1.2
	if got := s.EffectiveCost(econ); math.Abs(got-want) > 1e-9 {
		t.Errorf("effective cost = %v, want %v", got, want)
	}
}

func TestEffectiveCost_SanctionedIsInfinite(t *testing.T) {
	econ := newTestEconomy()
	s := &SupplierAgent{Name: "Acme", Part: "Brake Pad", Country: "China", Sanctioned: true}

	if got := s.EffectiveCost(econ); !math.IsInf(got, 1) {
		t.Errorf("sanctioned cost = %v, want +Inf", got)
	}

	// Sanction dominates regardless of offline state.
	s.Offline = true
	if got := s.EffectiveCost(econ); !math.IsInf(got, 1) {
		t.Errorf("sanctioned+offline cost = %v, want +Inf", got)
	}
}

func TestEffectiveCost_UnknownPriceIsInfinite(t *testing.T) {
	econ := newTestEconomy()
	s := &SupplierAgent{Name: "Acme", Part: "Widget", Country: "China"}
	if got := s.EffectiveCost(econ); !math.IsInf(got, 1) {
		t.Errorf("cost without base price = %v, want +Inf", got)
	}
}

func TestSupplierStep_DeliveryArrivesAfterLeadTime(t *testing.T) {
	s := newIdleSimulator()
	key := "Acme_China"

	// Reliability 1.0, lead time 2: production at tick 0 lands exactly at
	// tick 2 — not 1, not 3.
	s.Step() // tick 0
	if got := s.Metrics.Snapshots[0].Inventory[key]; got != 0 {
		t.Errorf("tick 0 inventory = %d, want 0", got)
	}
	s.Step() // tick 1
	if got := s.Metrics.Snapshots[1].Inventory[key]; got != 0 {
		t.Errorf("tick 1 inventory = %d, want 0", got)
	}
	s.Step() // tick 2
	if got := s.Metrics.Snapshots[2].Inventory[key]; got != 10 {
		t.Errorf("tick 2 inventory = %d, want exactly 10", got)
	}
}

func TestSupplierStep_OfflineSkipsProduction(t *testing.T) {
	s := newIdleSimulator()
	acme := s.Supplier("Acme_China")
	acme.Offline = true
	acme.OfflineUntil = 100

	for i := 0; i < 10; i++ {
		s.Step()
	}
	if got := s.Inventory.OnHand("Acme_China") + s.InTransit("Acme_China"); got != 0 {
		t.Errorf("offline supplier produced %d units", got)
	}
}

func TestSupplierStep_ComesBackOnlineAtExpiry(t *testing.T) {
	s := newIdleSimulator()
	acme := s.Supplier("Acme_China")
	acme.Offline = true
	acme.OfflineUntil = 3

	s.Step() // tick 0: still offline
	s.Step() // tick 1
	s.Step() // tick 2
	if !acme.Offline {
		t.Fatal("supplier came back before offlineUntil")
	}
	s.Step() // tick 3: recovers, produces
	if acme.Offline {
		t.Fatal("supplier still offline at offlineUntil")
	}
	if got := s.InTransit("Acme_China"); got != 10 {
		t.Errorf("in transit after recovery tick = %d, want 10", got)
	}
}

func TestSupplierStep_SanctionedSkipsProduction(t *testing.T) {
	s := newIdleSimulator()
	s.Supplier("Acme_China").Sanctioned = true

	for i := 0; i < 10; i++ {
		s.Step()
	}
	if got := s.Inventory.OnHand("Acme_China") + s.InTransit("Acme_China"); got != 0 {
		t.Errorf("sanctioned supplier produced %d units", got)
	}
}

func TestSupplierStep_CeilingStopsProduction(t *testing.T) {
	s := newIdleSimulator()
	s.Inventory.Add("Acme_China", inventoryCeiling)

	s.Step()
	if got := s.InTransit("Acme_China"); got != 0 {
		t.Errorf("supplier at ceiling scheduled %d units", got)
	}
}

func TestSupplierStep_ZeroReliabilityRecordsFailures(t *testing.T) {
	s := NewSimulator(
		NewSimulationKey(42),
		newTestEconomy(),
		[]*SupplierAgent{{Name: "Flaky", Part: "Brake Pad", Country: "China", LeadTimeTicks: 1, Reliability: 0.0}},
		NewManufacturerAgent(nil),
	)
	for i := 0; i < 5; i++ {
		s.Step()
	}
	if got := len(s.Trace.ProductionFailures); got != 5 {
		t.Errorf("production failures recorded = %d, want 5", got)
	}
	if got := s.Metrics.Snapshots[0].ProductionFailures; got != 1 {
		t.Errorf("tick 0 failure count = %d, want 1", got)
	}
}
