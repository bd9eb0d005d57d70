package metrics

import (
	"github.com/hwen/knotsim/internal/entity"
	"github.com/hwen/knotsim/internal/knot"
)

// Occupancy measures the fraction of observations spent in one world.
type Occupancy struct {
	name    string
	world   int
	inWorld int
	samples int
}

func NewOccupancy(world int) *Occupancy {
	return &Occupancy{name: "occupancy", world: world}
}

func (o *Occupancy) Name() string { return o.name }

func (o *Occupancy) Observe(e *entity.Entity, t float64) {
	o.samples++
	if e.World == o.world {
		o.inWorld++
	}
}

func (o *Occupancy) Value() float64 {
	if o.samples == 0 {
		return 0
	}
	return float64(o.inWorld) / float64(o.samples)
}

func (o *Occupancy) Reset() {
	o.inWorld = 0
	o.samples = 0
}

// WorldHistogram tallies observations per world index.
type WorldHistogram struct {
	name   string
	counts [knot.Worlds]int
}

func NewWorldHistogram() *WorldHistogram {
	return &WorldHistogram{name: "world_spread"}
}

func (h *WorldHistogram) Name() string { return h.name }

func (h *WorldHistogram) Observe(e *entity.Entity, t float64) {
	if e.World >= 0 && e.World < knot.Worlds {
		h.counts[e.World]++
	}
}

// Value reports how many distinct worlds were visited.
func (h *WorldHistogram) Value() float64 {
	visited := 0
	for _, c := range h.counts {
		if c > 0 {
			visited++
		}
	}
	return float64(visited)
}

// Counts returns the per-world tallies.
func (h *WorldHistogram) Counts() [knot.Worlds]int { return h.counts }

func (h *WorldHistogram) Reset() {
	h.counts = [knot.Worlds]int{}
}
