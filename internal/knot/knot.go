// Package knot holds the trefoil membrane geometry: the planar outline
// quartic, the four region tests, the height formula and the arc labels.
//
// The boundary of the membrane is the trefoil curve
//
//	(sin t + 2 sin 2t, cos t − 2 cos 2t, sin 3t)
//
// Its projection onto the xy-plane is the solution set of
//
//	4r⁴ − 12r²y + 16y³ − 27r² + 27 = 0,   r² = x² + y²
//
// and the curve lies on the topological torus z² = 1 − (r² − 5)²/16.
//
// Every constant below is part of the compatibility contract with the
// GPU-side replica (see FragmentLib): both sides must classify the same
// geometric input identically, so the formulas exist in exactly one
// place on the host and are emitted from here into the shader source.
package knot

import (
	"math"

	"github.com/hwen/knotsim/internal/geom"
)

// Worlds is the number of topological chambers glued along the membrane.
const Worlds = 6

// Projection outline coefficients: QuarticR4·r⁴ − QuadY·r²y + CubicY·y³ − RadSq·r² + RadSq.
const (
	QuarticR4 = 4.0
	QuadY     = 12.0
	CubicY    = 16.0
	RadSq     = 27.0
)

// Region test constants. Sqrt3 splits the plane into three 120° sectors;
// OuterRSq separates the inner lobes from the outer ring (r² > 1.5²).
const (
	Sqrt3    = 1.7320508075688772
	OuterRSq = 2.25
)

// Height band constants: on the membrane z² = 1 − (r² − HeightMid)²/HeightDiv,
// valid for r² ∈ [1, 9].
const (
	HeightMid = 5.0
	HeightDiv = 16.0
)

// Arc base values. The knot diagram has three symmetric strands; passing
// under a strand reflects the world index through its label. Inner
// segments of each strand carry the label offset by InnerOffset.
const (
	ArcA        = 1
	ArcB        = 5
	ArcC        = 3
	InnerOffset = 2
)

// Curve evaluates the trefoil parameterization at t.
func Curve(t float64) geom.Vec3 {
	return geom.Vec3{
		X: math.Sin(t) + 2*math.Sin(2*t),
		Y: math.Cos(t) - 2*math.Cos(2*t),
		Z: math.Sin(3 * t),
	}
}

// CurveDerivative evaluates d/dt of Curve.
func CurveDerivative(t float64) geom.Vec3 {
	return geom.Vec3{
		X: math.Cos(t) + 4*math.Cos(2*t),
		Y: -math.Sin(t) + 4*math.Sin(2*t),
		Z: 3 * math.Cos(3*t),
	}
}

// OutlineEval evaluates the projected outline quartic at a planar point.
// Zero means the point lies on the trefoil's planar outline.
func OutlineEval(p geom.Vec2) float64 {
	rr := p.X*p.X + p.Y*p.Y
	return QuarticR4*rr*rr - QuadY*rr*p.Y + CubicY*p.Y*p.Y*p.Y - RadSq*rr + RadSq
}

// Tests reports the four half-plane/disk tests for a planar point.
func Tests(p geom.Vec2) (t1, t2, t3, t4 bool) {
	rr := p.X*p.X + p.Y*p.Y
	t1 = p.X > 0
	t2 = p.X < p.Y*Sqrt3
	t3 = p.X < -p.Y*Sqrt3
	t4 = rr > OuterRSq
	return
}

// SurfaceZ returns the membrane height above (or below) a planar point
// whose projection lies on the outline. The sign is negative when an odd
// number of the four tests hold. The radicand is clamped at zero: it is
// nonnegative by construction for r² ∈ [1, 9], and the clamp only changes
// behavior for out-of-band callers.
func SurfaceZ(p geom.Vec2) float64 {
	rr := p.X*p.X + p.Y*p.Y
	t1, t2, t3, t4 := Tests(p)

	h := rr - HeightMid
	z := math.Sqrt(math.Max(0, 1-h*h/HeightDiv))

	if t1 != t2 != t3 != t4 {
		return -z
	}
	return z
}

// Arc returns the transition label for a point on the outline: one of
// {ArcA, ArcB, ArcC}, offset by InnerOffset when the point lies inside
// the outer-radius disk. The strand follows from the sector tests:
//
//	t2 holds, t1 doesn't: strand A (top left)
//	t1 holds, t3 doesn't: strand B (right)
//	t3 holds, t2 doesn't: strand C (bottom)
//
// folding the table and the inner/outer split into one of six integers.
func Arc(p geom.Vec2) int {
	t1, t2, t3, t4 := Tests(p)

	var arc int
	if t1 {
		if t3 {
			arc = ArcC
		} else {
			arc = ArcB
		}
	} else {
		if t2 {
			arc = ArcA
		} else {
			arc = ArcC
		}
	}
	if !t4 {
		arc += InnerOffset
	}
	return arc
}

// Classify decides whether a candidate point, already known to project
// onto the outline, actually passes under the membrane, and with which
// arc label. A crossing registers only when the point's z is strictly
// below the membrane height.
func Classify(p geom.Vec3) (arc int, below bool) {
	xy := p.XY()
	return Arc(xy), p.Z < SurfaceZ(xy)
}

// ProjectionPoly builds the quartic in t whose real roots are the
// parameters at which the unit-speed planar line start + t·dir touches
// the projected outline. Coefficients are returned lowest degree first;
// the caller normalizes by the leading coefficient before solving.
func ProjectionPoly(start, dir geom.Vec2) [5]float64 {
	x := [2]float64{start.X, dir.X}
	y := [2]float64{start.Y, dir.Y}

	// r²(t) as a quadratic in t.
	var rr [3]float64
	rr[0] = x[0]*x[0] + y[0]*y[0]
	rr[1] = 2*x[0]*x[1] + 2*y[0]*y[1]
	rr[2] = x[1]*x[1] + y[1]*y[1]

	var poly [5]float64
	poly[0] = QuarticR4*(rr[0]*rr[0]) - QuadY*(rr[0]*y[0]) + CubicY*y[0]*y[0]*y[0] - RadSq*rr[0] + RadSq
	poly[1] = QuarticR4*(2*rr[0]*rr[1]) - QuadY*(rr[1]*y[0]+rr[0]*y[1]) + 3*CubicY*y[0]*y[0]*y[1] - RadSq*rr[1]
	poly[2] = QuarticR4*(2*rr[0]*rr[2]+rr[1]*rr[1]) - QuadY*(rr[2]*y[0]+rr[1]*y[1]) + 3*CubicY*y[0]*y[1]*y[1] - RadSq*rr[2]
	poly[3] = QuarticR4*(2*rr[1]*rr[2]) - QuadY*(rr[2]*y[1]) + CubicY*y[1]*y[1]*y[1]
	poly[4] = QuarticR4 * (rr[2] * rr[2])
	return poly
}
