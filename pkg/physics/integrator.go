package physics

// Step advances the world by one fixed time step (Dt) and returns the
// number of steps taken so far.
func (w *World) Step() uint64 {
	w.b2.Step(w.Dt, w.VelocityIterations, w.PositionIterations)
	w.steps++
	return w.steps
}

// Steps is the number of completed steps.
func (w *World) Steps() uint64 {
	return w.steps
}
