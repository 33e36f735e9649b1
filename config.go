package obb2d

// SolverConfig replaces box2d-lite's three file-scope bool toggles with a
// value World holds directly, so an embedder can change solver behavior
// per-World instead of process-wide. World reads a copy of this at the
// top of each Step; mutating it mid-step has no effect until the next
// call.
type SolverConfig struct {
	// AccumulateImpulses enables warm-starting's companion: clamping the
	// running total per contact rather than the per-iteration delta.
	// Disabling it makes ApplyImpulse clamp each iteration's impulse in
	// isolation instead.
	AccumulateImpulses bool

	// WarmStarting carries the previous step's accumulated impulses
	// forward as the first guess for this step's solve.
	WarmStarting bool

	// PositionCorrection enables the Baumgarte bias term that pushes
	// overlapping bodies apart, instead of relying on velocity alone.
	PositionCorrection bool
}

// DefaultSolverConfig returns the box2d-lite default of all three
// behaviors enabled.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		AccumulateImpulses: true,
		WarmStarting:       true,
		PositionCorrection: true,
	}
}
