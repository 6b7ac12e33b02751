package sim

import (
	"container/heap"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/supplychain-sim/supplychain-sim/sim/trace"
)

// Simulator is the orchestrator: it owns the economic state, inventory,
// agents, event queue, metrics, and trace, and drives the per-tick pipeline.
// Single-threaded by design — every agent's step runs to completion before
// the next, so all agents in a tick observe one consistent snapshot of the
// economic state and inventory.
type Simulator struct {
	Clock int64

	Econ      *EconomicState
	Inventory *InventoryStore

	// Suppliers in construction order; the order is the step order and the
	// sourcing-search discovery order.
	Suppliers    []*SupplierAgent
	Manufacturer *ManufacturerAgent
	Scenario     *ScenarioController

	RNG     *PartitionedRNG
	Metrics *Metrics
	Trace   *trace.SimulationTrace

	EventQueue EventQueue

	agents        []Agent
	supplierIndex map[string]*SupplierAgent
	inTransit     map[string]int
	nextEventSeq  uint64

	failuresThisTick        int
	sourcingChangesThisTick int
}

// NewSimulator assembles a simulator from pre-built state. Supplier keys
// must be unique; a duplicate is a construction bug and panics. The
// manufacturer's preferred sources are initialized to the cheapest available
// supplier per part at tick zero.
func NewSimulator(key SimulationKey, econ *EconomicState, suppliers []*SupplierAgent, manufacturer *ManufacturerAgent) *Simulator {
	sim := &Simulator{
		Econ:          econ,
		Inventory:     NewInventoryStore(),
		Suppliers:     suppliers,
		Manufacturer:  manufacturer,
		RNG:           NewPartitionedRNG(key),
		Metrics:       NewMetrics(),
		Trace:         trace.NewSimulationTrace(),
		EventQueue:    make(EventQueue, 0),
		supplierIndex: make(map[string]*SupplierAgent, len(suppliers)),
		inTransit:     make(map[string]int),
	}
	sim.Scenario = &ScenarioController{sim: sim}

	for _, s := range suppliers {
		if _, exists := sim.supplierIndex[s.Key()]; exists {
			panic(fmt.Sprintf("duplicate supplier key %s", s.Key()))
		}
		sim.supplierIndex[s.Key()] = s
		sim.agents = append(sim.agents, s)
		econ.EnsureCountry(s.Country)
	}
	sim.agents = append(sim.agents, manufacturer)

	manufacturer.InitPreferredSources(sim)
	return sim
}

// Supplier returns the supplier with the given sourcing key, or nil.
func (sim *Simulator) Supplier(key string) *SupplierAgent {
	return sim.supplierIndex[key]
}

// InTransit returns the quantity currently scheduled for future delivery to
// the given sourcing key.
func (sim *Simulator) InTransit(key string) int {
	return sim.inTransit[key]
}

// ScheduleDelivery enqueues a delivery event. The sequence number assigned
// here is the queue's tie-break for equal arrival ticks, so same-tick
// deliveries process in enqueue order.
func (sim *Simulator) ScheduleDelivery(arrivalTick int64, key string, qty int) {
	if arrivalTick < sim.Clock {
		panic(fmt.Sprintf("delivery for %s scheduled in the past: tick %d < clock %d", key, arrivalTick, sim.Clock))
	}
	sim.nextEventSeq++
	heap.Push(&sim.EventQueue, &DeliveryEvent{
		baseEvent: baseEvent{tick: arrivalTick, seq: sim.nextEventSeq},
		Key:       key,
		Quantity:  qty,
	})
	sim.inTransit[key] += qty
	logrus.Debugf(">> scheduled delivery of %d units of %s for tick %d", qty, key, arrivalTick)
}

// ProcessEvents drains every event whose arrival tick is due. This is a
// drain-while-due loop, not a single pop: multiple deliveries can mature on
// the same tick.
func (sim *Simulator) ProcessEvents(currentTick int64) {
	for len(sim.EventQueue) > 0 && sim.EventQueue[0].Tick() <= currentTick {
		ev := heap.Pop(&sim.EventQueue).(Event)
		ev.Execute(sim)
	}
}

// Step runs one simulation tick in fixed order: FX update, event drain,
// supplier steps in construction order, manufacturer step, clock advance,
// metrics snapshot. The order is load-bearing — deliveries must land before
// agents act on inventory, and FX must settle before any cost is computed.
func (sim *Simulator) Step() {
	tick := sim.Clock

	sim.Econ.UpdateFXRates(sim.RNG.ForSubsystem(SubsystemFX))
	sim.ProcessEvents(tick)
	for _, agent := range sim.agents {
		agent.Step(tick, sim)
	}

	sim.Clock = tick + 1
	sim.Metrics.Snapshot(tick, sim)
	sim.failuresThisTick = 0
	sim.sourcingChangesThisTick = 0
}

// Run executes the given number of ticks.
func (sim *Simulator) Run(ticks int64) {
	logrus.Infof("starting simulation: %d suppliers, %d parts, %d ticks",
		len(sim.Suppliers), len(sim.Manufacturer.RequiredParts), ticks)
	for i := int64(0); i < ticks; i++ {
		sim.Step()
	}
	logrus.Infof("simulation complete at tick %d: %d components built", sim.Clock, sim.Manufacturer.ComponentsBuilt)
}
