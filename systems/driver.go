package systems

// Driver wires the switch and stepper into a single per-frame advance.
type Driver struct {
	State   *State
	Stepper *Stepper
	Switch  *MorphSwitch
	DT      float32
}

// Advance resolves pending switch triggers and runs one step. It reports
// whether the active target changed.
func (d *Driver) Advance() (bool, error) {
	active, switched := d.Switch.Resolve()
	return switched, d.Stepper.Step(d.State, active, d.DT)
}
