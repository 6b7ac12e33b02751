package sim

// Agent is the capability interface shared by all simulation actors. The
// Simulator steps agents through this interface in a fixed order (suppliers
// in construction order, then the manufacturer); code that needs
// supplier-specific or manufacturer-specific behavior downcasts explicitly.
type Agent interface {
	ID() string
	Step(tick int64, sim *Simulator)
}
