package sim

// Shared fixtures for sim package tests. All fixtures use fixed seeds so
// expectations stay stable across runs.

func float64Ptr(v float64) *float64 { return &v }
func int64Ptr(v int64) *int64       { return &v }

// newTestEconomy builds an economy with three countries and known prices.
func newTestEconomy() *EconomicState {
	econ := NewEconomicState()
	econ.SetBasePrice("Brake Pad", "China", 30.0)
	econ.SetBasePrice("Brake Pad", "Germany", 50.0)
	econ.SetBasePrice("Sensor", "Japan", 80.0)
	return econ
}

// newTestSuppliers builds three reliable suppliers matching newTestEconomy.
// Construction order: Acme (cheap brake pads), Bosch (expensive brake pads),
// Denso (sensors).
func newTestSuppliers() []*SupplierAgent {
	return []*SupplierAgent{
		{Name: "Acme", Part: "Brake Pad", Country: "China", LeadTimeTicks: 2, Reliability: 1.0},
		{Name: "Bosch", Part: "Brake Pad", Country: "Germany", LeadTimeTicks: 2, Reliability: 1.0},
		{Name: "Denso", Part: "Sensor", Country: "Japan", LeadTimeTicks: 2, Reliability: 1.0},
	}
}

// newTestSimulator wires the fixture economy, suppliers, and a manufacturer
// needing two brake pads and one sensor per unit.
func newTestSimulator() *Simulator {
	return NewSimulator(
		NewSimulationKey(42),
		newTestEconomy(),
		newTestSuppliers(),
		NewManufacturerAgent(map[string]int{"Brake Pad": 2, "Sensor": 1}),
	)
}

// newIdleSimulator wires the fixture suppliers to a manufacturer with an
// empty bill of materials, so nothing ever consumes inventory.
func newIdleSimulator() *Simulator {
	return NewSimulator(
		NewSimulationKey(42),
		newTestEconomy(),
		newTestSuppliers(),
		NewManufacturerAgent(nil),
	)
}
