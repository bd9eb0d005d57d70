// Package solve provides closed-form real-root extraction for quadratic,
// cubic and quartic polynomials. No iteration, no allocation: every
// function does a bounded amount of arithmetic on its arguments.
//
// The algorithms follow Numerical Recipes in C, chapter 5.6, with the
// quartic factored through its resolvent cubic. These routines are the
// numeric contract shared with the GPU-side classification replica (see
// the knot package), so they must stay free of external dependencies.
package solve

import "math"

// Quadratic finds the real roots of x² + bx + c.
// Returns them in ascending order; ok is false when the discriminant is
// negative. The root pair is computed with the cancellation-safe split:
// the large-magnitude root directly, the other as c divided by it.
func Quadratic(b, c float64) (x1, x2 float64, ok bool) {
	disc := b*b - 4*c
	if disc < 0 {
		return 0, 0, false
	}

	q := -(b + math.Copysign(math.Sqrt(disc), b)) / 2
	r := c / q

	return math.Min(q, r), math.Max(q, r), true
}

// Cubic returns the largest real root of x³ + a1x² + a2x + a3.
// A real cubic always has at least one real root, so Cubic always
// succeeds mathematically. When all three roots are real (q³ ≥ r²) it
// evaluates the trigonometric form and takes the maximum; otherwise the
// single real root comes from Cardano's formula with the cube root sign
// handled explicitly.
//
// Precondition: coefficient combinations that drive q to zero in the
// one-real-root branch are not handled; callers in this module never
// produce them (see DESIGN.md).
func Cubic(a1, a2, a3 float64) float64 {
	a1 /= 3

	q := a1*a1 - a2/3
	r := a1*a1*a1 + (a3-a1*a2)/2

	if q*q*q >= r*r {
		theta := math.Acos(r / math.Sqrt(q*q*q))

		x1 := -2*math.Sqrt(q)*math.Cos(theta/3) - a1
		x2 := -2*math.Sqrt(q)*math.Cos((theta+2*math.Pi)/3) - a1
		x3 := -2*math.Sqrt(q)*math.Cos((theta-2*math.Pi)/3) - a1

		return math.Max(x1, math.Max(x2, x3))
	}

	tmp := math.Cbrt(math.Sqrt(r*r-q*q*q) + math.Abs(r))
	return -math.Copysign(1, r)*(tmp+q/tmp) - a1
}

// Quartic finds the real roots of x⁴ + ax³ + bx² + cx + d, writing them
// to roots in ascending order and returning how many there are: 0, 2 or 4.
//
// The quartic is factored as (x² + px + q)(x² + rx + s). With α = a/2 and
// t = (p − r)/2, eliminating p, q, r, s yields a cubic in t²:
//
//	0 = (t²)³ + (2·tmp1 − α²)(t²)² + (tmp1² − 2α·tmp2 − 4d)(t²) − tmp2²
//
// where tmp1 = b − α² and tmp2 = α·tmp1 − c. The largest real root of
// that cubic gives t, hence both quadratic factors.
//
// Precondition: a near-zero t (coincident factor pairs) divides by zero
// in the q−s recovery; callers never produce such quartics. If it does
// happen the NaNs propagate into the roots, where downstream interval
// filters reject them.
func Quartic(a, b, c, d float64, roots *[4]float64) int {
	alpha := a / 2

	tmp1 := b - alpha*alpha
	tmp2 := alpha*tmp1 - c

	t := math.Sqrt(Cubic(
		2*tmp1-alpha*alpha,
		tmp1*tmp1-2*alpha*tmp2-4*d,
		-tmp2*tmp2,
	))

	p := alpha + t
	r := alpha - t

	qPlusS := b - p*r
	qMinusS := (alpha*qPlusS - c) / t

	q := (qPlusS + qMinusS) / 2
	s := (qPlusS - qMinusS) / 2

	// The polynomial is now (x² + px + q)(x² + rx + s).
	lo1, hi1, ok1 := Quadratic(p, q)
	lo2, hi2, ok2 := Quadratic(r, s)

	switch {
	case ok1 && ok2:
		roots[0] = math.Min(lo1, lo2)
		x1 := math.Max(lo1, lo2)
		x2 := math.Min(hi1, hi2)
		roots[3] = math.Max(hi1, hi2)
		roots[1] = math.Min(x1, x2)
		roots[2] = math.Max(x1, x2)
		return 4
	case ok1:
		roots[0], roots[1] = lo1, hi1
		return 2
	case ok2:
		roots[0], roots[1] = lo2, hi2
		return 2
	default:
		return 0
	}
}
