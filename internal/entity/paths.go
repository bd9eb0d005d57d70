package entity

import (
	"fmt"
	"math"
	"sort"

	"github.com/hwen/knotsim/internal/geom"
	"github.com/hwen/knotsim/internal/knot"
)

// Path is a closed-form trajectory through ambient space.
type Path func(t float64) geom.Vec3

// Named path constructors. Phase shifts the parameter so several
// entities can share a path without overlapping.
var paths = map[string]func(phase float64) Path{
	// Horizontal circle of radius 2 through the knot's inner lobes.
	"circle": func(phase float64) Path {
		return func(t float64) geom.Vec3 {
			s, c := math.Sincos(t + phase)
			return geom.Vec3{X: 2 * s, Y: -2 * c, Z: 0}
		}
	},
	// Vertical loop threading a single strand near the bottom lobe.
	"loop": func(phase float64) Path {
		return func(t float64) geom.Vec3 {
			s, c := math.Sincos(t + phase)
			return geom.Vec3{X: 0.1, Y: -3 + c, Z: s}
		}
	},
	// Shadow of the knot itself, offset so it weaves through the tube.
	"weave": func(phase float64) Path {
		return func(t float64) geom.Vec3 {
			p := knot.Curve(t + phase)
			return geom.Vec3{X: p.X, Y: p.Y + 0.1, Z: p.Z + 0.5}
		}
	},
	// Straight drift along x, for scenarios and tests.
	"line": func(phase float64) Path {
		return func(t float64) geom.Vec3 {
			return geom.Vec3{X: t - 4, Y: phase, Z: -0.5}
		}
	},
	// Stationary marker.
	"still": func(phase float64) Path {
		return func(t float64) geom.Vec3 {
			s, c := math.Sincos(phase)
			return geom.Vec3{X: 3 * c, Y: 3 * s, Z: 0}
		}
	},
}

// NewPath builds a named path with the given phase offset.
func NewPath(name string, phase float64) (Path, error) {
	ctor, ok := paths[name]
	if !ok {
		return nil, fmt.Errorf("unknown path: %s (available: %v)", name, PathNames())
	}
	return ctor(phase), nil
}

// PathNames lists the registered path names, sorted.
func PathNames() []string {
	names := make([]string, 0, len(paths))
	for name := range paths {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
