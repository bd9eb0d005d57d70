// Package entity models the movable objects of the simulation. Each
// entity owns the only piece of persistent mutable state in the system:
// its world index, updated exclusively by the transition engine as the
// entity moves through ambient space.
package entity

import (
	"github.com/hwen/knotsim/internal/geom"
	"github.com/hwen/knotsim/internal/portal"
)

// Entity follows a closed-form path through ambient space. Advance moves
// it along the path and folds any membrane crossings into World.
type Entity struct {
	Name  string
	Color [4]float64

	Path Path
	Pos  geom.Vec3
	T    float64

	// World is semantically mod 6; the transition engine keeps it
	// normalized into [0, 6) after every step.
	World int
}

// New places the entity at its path's t=0 point.
func New(name string, world int, path Path) *Entity {
	return &Entity{
		Name:  name,
		Path:  path,
		Pos:   path(0),
		World: world,
	}
}

// Advance moves the entity dt further along its path. Crossing
// computations for different entities are independent; the only ordering
// requirement is that each entity's steps are applied in sequence.
func (e *Entity) Advance(dt float64) {
	t := e.T + dt
	pos := e.Path(t)
	portal.Travel(&e.World, e.Pos, pos)
	e.T = t
	e.Pos = pos
}

// Mover is a free-steering entity (the viewer): it travels by explicit
// displacements instead of a path.
type Mover struct {
	Pos   geom.Vec3
	World int
}

// Move translates the mover by v, updating its world index.
func (m *Mover) Move(v geom.Vec3) {
	newPos := m.Pos.Add(v)
	portal.Travel(&m.World, m.Pos, newPos)
	m.Pos = newPos
}
