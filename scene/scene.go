// Package scene mirrors the particle buffers into an ECS world that the
// renderer and overlays query. The simulation itself never reads it.
package scene

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/morph/components"
	"github.com/pthm-cable/morph/systems"
)

// Scene owns the ECS world for one simulation.
type Scene struct {
	world *ecs.World
	rng   *rand.Rand

	particleMapper *ecs.Map3[components.Position, components.Tint, components.Particle]
	particleFilter *ecs.Filter3[components.Position, components.Tint, components.Particle]
	linkMapper     *ecs.Map1[components.Link]
	linkFilter     *ecs.Filter1[components.Link]
	posMap         *ecs.Map1[components.Position]

	// particles maps buffer index to entity.
	particles   []ecs.Entity
	links       []ecs.Entity
	linkOpacity float32
}

// New creates an empty scene.
func New(rng *rand.Rand) *Scene {
	world := ecs.NewWorld()
	return &Scene{
		world:          world,
		rng:            rng,
		particleMapper: ecs.NewMap3[components.Position, components.Tint, components.Particle](world),
		particleFilter: ecs.NewFilter3[components.Position, components.Tint, components.Particle](world),
		linkMapper:     ecs.NewMap1[components.Link](world),
		linkFilter:     ecs.NewFilter1[components.Link](world),
		posMap:         ecs.NewMap1[components.Position](world),
	}
}

// Sync copies frame positions onto particle entities. Entities are created on
// the first call and rebuilt if the particle count changes.
func (s *Scene) Sync(f *systems.Frame) {
	n := f.Len()
	if len(s.particles) != n {
		s.rebuild(f)
	}

	query := s.particleFilter.Query()
	for query.Next() {
		pos, _, p := query.Get()
		i := int(p.Index)
		pos.X = f.Positions[3*i]
		pos.Y = f.Positions[3*i+1]
	}
}

func (s *Scene) rebuild(f *systems.Frame) {
	for _, e := range s.particles {
		s.world.RemoveEntity(e)
	}
	s.particles = s.particles[:0]

	for i := 0; i < f.Len(); i++ {
		pos := components.Position{X: f.Positions[3*i], Y: f.Positions[3*i+1]}
		tint := components.Tint{Alpha: f.Alpha[i]}
		p := components.Particle{Index: int32(i)}
		s.particles = append(s.particles, s.particleMapper.NewEntity(&pos, &tint, &p))
	}

	// Old links may point past the new particle range.
	s.Relink(len(s.links), s.linkOpacity)
}

// Relink replaces the link set with count random particle pairs.
func (s *Scene) Relink(count int, opacity float32) {
	if len(s.particles) < 2 {
		count = 0
	}
	s.linkOpacity = opacity

	for len(s.links) > count {
		last := len(s.links) - 1
		s.world.RemoveEntity(s.links[last])
		s.links = s.links[:last]
	}
	for len(s.links) < count {
		l := components.Link{}
		s.links = append(s.links, s.linkMapper.NewEntity(&l))
	}

	n := len(s.particles)
	for _, e := range s.links {
		l := s.linkMapper.Get(e)
		l.From = int32(s.rng.Intn(n))
		l.To = int32(s.rng.Intn(n))
		l.Opacity = opacity
	}
}

// ParticleCount returns the number of particle entities.
func (s *Scene) ParticleCount() int {
	return len(s.particles)
}

// LinkCount returns the number of link entities.
func (s *Scene) LinkCount() int {
	return len(s.links)
}

// EachParticle calls fn for every particle.
func (s *Scene) EachParticle(fn func(pos components.Position, alpha float32)) {
	query := s.particleFilter.Query()
	for query.Next() {
		pos, tint, _ := query.Get()
		fn(*pos, tint.Alpha)
	}
}

// EachLink calls fn with the endpoints of every link.
func (s *Scene) EachLink(fn func(a, b components.Position, opacity float32)) {
	query := s.linkFilter.Query()
	for query.Next() {
		l := query.Get()
		a := s.posMap.Get(s.particles[l.From])
		b := s.posMap.Get(s.particles[l.To])
		fn(*a, *b, l.Opacity)
	}
}

// Nearest returns the buffer index of the particle closest to (x, y), or -1
// when the scene is empty.
func (s *Scene) Nearest(x, y float32) int {
	best, bestDist := -1, float32(0)
	query := s.particleFilter.Query()
	for query.Next() {
		pos, _, p := query.Get()
		dx, dy := pos.X-x, pos.Y-y
		if d := dx*dx + dy*dy; best < 0 || d < bestDist {
			best, bestDist = int(p.Index), d
		}
	}
	return best
}
