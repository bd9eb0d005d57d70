// Package metrics provides per-run observables over entity traces.
package metrics

import (
	"github.com/hwen/knotsim/internal/entity"
)

// Crossings counts world transitions across all observed entities.
type Crossings struct {
	name string
	prev map[string]int
	n    int
}

func NewCrossings() *Crossings {
	return &Crossings{name: "crossings", prev: make(map[string]int)}
}

func (c *Crossings) Name() string { return c.name }

func (c *Crossings) Observe(e *entity.Entity, t float64) {
	if w, ok := c.prev[e.Name]; ok && w != e.World {
		c.n++
	}
	c.prev[e.Name] = e.World
}

func (c *Crossings) Value() float64 { return float64(c.n) }

func (c *Crossings) Reset() {
	c.prev = make(map[string]int)
	c.n = 0
}
