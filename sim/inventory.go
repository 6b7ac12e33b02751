package sim

import "fmt"

// InventoryStore maps sourcing keys ("supplierName_country") to on-hand
// part quantities. Quantities are mutated only by delivery events (Add) and
// manufacturer consumption (Consume) and can never go negative: callers must
// verify sufficiency in the same tick they decide to consume.
type InventoryStore struct {
	onHand map[string]int
}

// NewInventoryStore creates an empty inventory store.
func NewInventoryStore() *InventoryStore {
	return &InventoryStore{onHand: make(map[string]int)}
}

// Add credits qty units to the given sourcing key.
func (s *InventoryStore) Add(key string, qty int) {
	if qty < 0 {
		panic(fmt.Sprintf("inventory add of negative quantity %d for %s", qty, key))
	}
	s.onHand[key] += qty
}

// Consume debits qty units from the given sourcing key. Overdrawing is an
// implementer bug, not a runtime condition: the manufacturer checks
// sufficiency before consuming, so a shortfall here panics.
func (s *InventoryStore) Consume(key string, qty int) {
	if qty < 0 {
		panic(fmt.Sprintf("inventory consume of negative quantity %d for %s", qty, key))
	}
	remaining := s.onHand[key] - qty
	if remaining < 0 {
		panic(fmt.Sprintf("inventory for %s went negative (%d)", key, remaining))
	}
	s.onHand[key] = remaining
}

// OnHand returns the current quantity for a sourcing key (0 if unknown).
func (s *InventoryStore) OnHand(key string) int {
	return s.onHand[key]
}

// Total returns the summed quantity across all keys.
func (s *InventoryStore) Total() int {
	total := 0
	for _, qty := range s.onHand {
		total += qty
	}
	return total
}

// Snapshot returns a copy of the full key -> quantity mapping.
func (s *InventoryStore) Snapshot() map[string]int {
	snap := make(map[string]int, len(s.onHand))
	for key, qty := range s.onHand {
		snap[key] = qty
	}
	return snap
}
