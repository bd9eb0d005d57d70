package metrics

import (
	"testing"

	"github.com/hwen/knotsim/internal/entity"
	"github.com/hwen/knotsim/internal/geom"
)

func fixed(name string, world int) *entity.Entity {
	return entity.New(name, world, func(t float64) geom.Vec3 {
		return geom.V3(50, 50, 50)
	})
}

func TestCrossings(t *testing.T) {
	m := NewCrossings()
	e := fixed("a", 0)

	m.Observe(e, 0)
	if m.Value() != 0 {
		t.Errorf("initial observation counted as crossing")
	}

	e.World = 3
	m.Observe(e, 1)
	e.World = 3
	m.Observe(e, 2)
	e.World = 1
	m.Observe(e, 3)

	if m.Value() != 2 {
		t.Errorf("crossings = %v, want 2", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("reset failed: %v", m.Value())
	}
}

func TestCrossingsTracksEntitiesSeparately(t *testing.T) {
	m := NewCrossings()
	a := fixed("a", 0)
	b := fixed("b", 5)

	m.Observe(a, 0)
	m.Observe(b, 0)
	a.World = 5 // same value b already has; still a transition for a
	m.Observe(a, 1)
	m.Observe(b, 1)

	if m.Value() != 1 {
		t.Errorf("crossings = %v, want 1", m.Value())
	}
}

func TestOccupancy(t *testing.T) {
	m := NewOccupancy(2)
	e := fixed("a", 2)

	m.Observe(e, 0)
	m.Observe(e, 1)
	e.World = 4
	m.Observe(e, 2)
	m.Observe(e, 3)

	if m.Value() != 0.5 {
		t.Errorf("occupancy = %v, want 0.5", m.Value())
	}
}

func TestOccupancyEmpty(t *testing.T) {
	if v := NewOccupancy(0).Value(); v != 0 {
		t.Errorf("empty occupancy = %v, want 0", v)
	}
}

func TestWorldHistogram(t *testing.T) {
	m := NewWorldHistogram()
	e := fixed("a", 0)

	m.Observe(e, 0)
	e.World = 3
	m.Observe(e, 1)
	m.Observe(e, 2)

	if m.Value() != 2 {
		t.Errorf("distinct worlds = %v, want 2", m.Value())
	}

	counts := m.Counts()
	if counts[0] != 1 || counts[3] != 2 {
		t.Errorf("counts = %v", counts)
	}
}
