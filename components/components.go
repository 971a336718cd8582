// Package components defines ECS components for the viewer scene.
package components

// Position represents a particle's position in particle space [-1, 1]².
type Position struct {
	X, Y float32
}

// Tint holds a particle's render opacity.
type Tint struct {
	Alpha float32
}

// Particle ties an entity to its slot in the particle buffers.
type Particle struct {
	Index int32
}

// Link is a line segment between two particles, by buffer index.
type Link struct {
	From, To int32
	Opacity  float32
}
