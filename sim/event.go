package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events. Each event carries
// its arrival tick and the sequence number assigned at enqueue time; the
// queue orders strictly by (tick, seq), so same-tick events process FIFO.
type Event interface {
	Tick() int64
	Seq() uint64
	Execute(*Simulator)
}

type baseEvent struct {
	tick int64
	seq  uint64
}

func (e *baseEvent) Tick() int64 { return e.tick }
func (e *baseEvent) Seq() uint64 { return e.seq }

// DeliveryEvent represents a production batch arriving at the manufacturer's
// inventory after a supplier's lead time has elapsed.
type DeliveryEvent struct {
	baseEvent
	Key      string // sourcing key "supplierName_country"
	Quantity int
}

// Execute lands the delivery into the inventory store.
func (e *DeliveryEvent) Execute(sim *Simulator) {
	logrus.Debugf("<< Delivery: %d units of %s at tick %d", e.Quantity, e.Key, e.tick)
	sim.inTransit[e.Key] -= e.Quantity
	sim.Inventory.Add(e.Key, e.Quantity)
}

// EventQueue implements heap.Interface and orders events by (tick, seq).
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []Event

func (eq EventQueue) Len() int { return len(eq) }

func (eq EventQueue) Less(i, j int) bool {
	if eq[i].Tick() != eq[j].Tick() {
		return eq[i].Tick() < eq[j].Tick()
	}
	return eq[i].Seq() < eq[j].Seq()
}

func (eq EventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(Event))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}
