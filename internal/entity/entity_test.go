package entity

import (
	"math"
	"testing"

	"github.com/hwen/knotsim/internal/geom"
)

func TestNewPlacesEntityAtPathStart(t *testing.T) {
	path, err := NewPath("circle", 0)
	if err != nil {
		t.Fatal(err)
	}

	e := New("ball", 2, path)
	want := path(0)
	if e.Pos != want {
		t.Errorf("initial pos = %v, want %v", e.Pos, want)
	}
	if e.World != 2 {
		t.Errorf("initial world = %d, want 2", e.World)
	}
}

func TestAdvanceKeepsWorldNormalized(t *testing.T) {
	path, err := NewPath("circle", 0)
	if err != nil {
		t.Fatal(err)
	}

	e := New("ball", 0, path)
	for i := 0; i < 1000; i++ {
		e.Advance(0.02)
		if e.World < 0 || e.World >= 6 {
			t.Fatalf("step %d: world %d out of [0,6)", i, e.World)
		}
		if !e.Pos.IsValid() {
			t.Fatalf("step %d: invalid position %v", i, e.Pos)
		}
	}
}

func TestAdvanceReturnTripRestoresWorld(t *testing.T) {
	// A full circle returns to the start having crossed each membrane
	// stretch an even number of times pairwise, so the world must come
	// back to its initial value regardless of step size.
	for _, steps := range []int{100, 317, 1000} {
		path, err := NewPath("circle", 0)
		if err != nil {
			t.Fatal(err)
		}

		e := New("ball", 0, path)
		dt := 2 * math.Pi / float64(steps)
		for i := 0; i < steps; i++ {
			e.Advance(dt)
		}

		if d := e.Pos.Sub(path(2 * math.Pi)).Norm(); d > 1e-9 {
			t.Fatalf("steps=%d: did not return to start (off by %v)", steps, d)
		}
		if e.World != 0 {
			t.Errorf("steps=%d: world = %d after a closed loop, want 0", steps, e.World)
		}
	}
}

func TestMoverFarFromKnot(t *testing.T) {
	m := &Mover{Pos: geom.V3(50, 50, 50), World: 1}
	m.Move(geom.V3(1, 0, 0))
	if m.World != 1 {
		t.Errorf("world changed far from the knot: %d", m.World)
	}
	if m.Pos != geom.V3(51, 50, 50) {
		t.Errorf("pos = %v", m.Pos)
	}
}

func TestNewPathUnknown(t *testing.T) {
	if _, err := NewPath("zigzag", 0); err == nil {
		t.Error("expected error for unknown path")
	}
}

func TestPathNamesSorted(t *testing.T) {
	names := PathNames()
	if len(names) == 0 {
		t.Fatal("no registered paths")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted: %v", names)
		}
	}
}
