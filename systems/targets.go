package systems

// Target holds one point set in particle space, ready for the integrator.
// Positions is stride-3 (x, y, z) with z always 0.
type Target struct {
	Positions []float32
	Alpha     []float32
}

// NewTarget maps a unit-square point set into particle space [-1, 1]².
// y is flipped so that image rows grow downward on screen.
func NewTarget(ps PointSet) *Target {
	t := &Target{
		Positions: make([]float32, 3*len(ps)),
		Alpha:     make([]float32, len(ps)),
	}
	for i, p := range ps {
		x, y := ToParticleSpace(p.X, p.Y)
		t.Positions[3*i] = x
		t.Positions[3*i+1] = y
		t.Alpha[i] = p.Alpha
	}
	return t
}

// Len returns the number of points.
func (t *Target) Len() int {
	return len(t.Alpha)
}

// ToParticleSpace maps a unit-square coordinate to particle space.
func ToParticleSpace(x, y float64) (float32, float32) {
	return float32(2 * (x - 0.5)), float32(-2 * (y - 0.5))
}

// MorphTargets is the immutable pair of targets particles morph between.
// Particle i of A pairs with particle i of B.
type MorphTargets struct {
	a, b *Target
}

// BuildTargets converts both point sets. They must have equal length.
func BuildTargets(a, b PointSet) (*MorphTargets, error) {
	if len(a) != len(b) {
		return nil, &TargetSizeMismatchError{A: len(a), B: len(b)}
	}
	return &MorphTargets{a: NewTarget(a), b: NewTarget(b)}, nil
}

// Get returns the target for m.
func (m *MorphTargets) Get(which Morph) *Target {
	if which == MorphA {
		return m.a
	}
	return m.b
}

// Len returns the per-target particle count.
func (m *MorphTargets) Len() int {
	return m.a.Len()
}
