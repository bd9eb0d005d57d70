// Package portal implements the world transition engine. A straight-line
// motion segment either misses the knotted membrane or punches through it
// one or more times; each registered crossing reflects the entity's world
// index through the crossed arc's label.
package portal

import (
	"github.com/hwen/knotsim/internal/geom"
	"github.com/hwen/knotsim/internal/knot"
	"github.com/hwen/knotsim/internal/solve"
)

// Travel folds every membrane crossing along the segment start→end into
// *world, then normalizes it into [0, knot.Worlds). Pure function of its
// inputs: no I/O, fixed-size locals only.
//
// The segment is projected onto the xy-plane and reparameterized at unit
// speed over t ∈ [0, t_max]. Substituting the linear x(t), y(t) into the
// outline quartic gives a quartic in t whose real roots are the outline
// touches; roots strictly inside (0, t_max) are candidate crossings,
// processed in ascending order so that each reflection sees the world
// value left by the previous one. Segment endpoints never count.
//
// A zero-length projected segment yields NaN coefficients; the NaN roots
// fail the open-interval filter, so the world is only normalized. Same
// for any degenerate solver output.
func Travel(world *int, start, end geom.Vec3) {
	v := end.XY().Sub(start.XY())
	tMax := v.Norm()
	v = v.Scale(1 / tMax)

	poly := knot.ProjectionPoly(start.XY(), v)

	var roots [4]float64
	n := solve.Quartic(
		poly[3]/poly[4],
		poly[2]/poly[4],
		poly[1]/poly[4],
		poly[0]/poly[4],
		&roots,
	)

	for _, root := range roots[:n] {
		if !(0 < root && root < tMax) {
			continue
		}

		pos := start.Lerp(end, root/tMax)

		if arc, below := knot.Classify(pos); below {
			*world = arc - *world
		}
	}

	*world = mod(*world, knot.Worlds)
}

// mod is the Euclidean remainder: the result is in [0, m) even for
// negative w.
func mod(w, m int) int {
	w %= m
	if w < 0 {
		w += m
	}
	return w
}
