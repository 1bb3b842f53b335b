package domain

// Dependency links a predecessor task to a successor task under one of the
// four CPM kinds, with a signed lag measured in working days. Duplicate
// (predecessor, successor) pairs collapse to the most recently asserted
// (type, lag); this is enforced by the owning store, not by the scheduler.
type Dependency struct {
	PredecessorID string
	SuccessorID   string
	Type          DependencyType
	LagDays       int
}
