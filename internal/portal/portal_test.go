package portal_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hwen/knotsim/internal/geom"
	"github.com/hwen/knotsim/internal/knot"
	"github.com/hwen/knotsim/internal/portal"
)

// On the +x axis the outline quartic reduces to 4r⁴ − 27r² + 27 = 0, so
// segments along the axis cross it at two analytically known radii. The
// inner crossing sits under a dipped stretch of membrane (z* ≈ −0.33,
// arc B inner = 7); the outer one under a raised stretch (z* ≈ +0.99,
// arc B outer = 5).
var (
	rInner = math.Sqrt((27 - math.Sqrt(27*27-4*4*27)) / (2 * 4))
	rOuter = math.Sqrt((27 + math.Sqrt(27*27-4*4*27)) / (2 * 4))
)

func travel(world int, start, end geom.Vec3) int {
	portal.Travel(&world, start, end)
	return world
}

var _ = Describe("Travel", func() {
	It("leaves the world unchanged for segments far from the knot", func() {
		Expect(travel(0, geom.V3(50, 50, 50), geom.V3(51, 50, 50))).To(Equal(0))
		Expect(travel(4, geom.V3(50, 50, 50), geom.V3(51, 50, 50))).To(Equal(4))
	})

	It("leaves the world unchanged for zero-length segments", func() {
		p := geom.V3(1, 1, 0)
		Expect(travel(3, p, p)).To(Equal(3))
	})

	It("sanity-checks the analytic crossing radii", func() {
		Expect(rInner).To(BeNumerically("~", 1.1048, 1e-3))
		Expect(rOuter).To(BeNumerically("~", 2.3514, 1e-3))
	})

	Context("single crossing", func() {
		// (0.5,0,−2) → (1.5,0,−2) passes under the inner-B stretch only.
		start := geom.V3(0.5, 0, -2)
		end := geom.V3(1.5, 0, -2)

		It("reflects the world through the arc label", func() {
			arcBInner := knot.ArcB + knot.InnerOffset // 7
			Expect(travel(0, start, end)).To(Equal((arcBInner - 0) % 6))
			Expect(travel(3, start, end)).To(Equal((arcBInner - 3) % 6))
		})

		It("keeps the result in [0, 6) when the raw reflection overflows", func() {
			for w := 0; w < 6; w++ {
				got := travel(w, start, end)
				Expect(got).To(BeNumerically(">=", 0))
				Expect(got).To(BeNumerically("<", 6))
			}
		})

		It("ignores outline touches above the membrane", func() {
			// Same planar path but at z = +2, above every possible z*.
			Expect(travel(0, geom.V3(0.5, 0, 2), geom.V3(1.5, 0, 2))).To(Equal(0))
		})

		It("gates each crossing by its own membrane height", func() {
			// At z = −0.1 the segment is above the dipped inner stretch
			// (z* ≈ −0.33) but below the raised outer one (z* ≈ +0.99):
			// extending to r = 3 must register only the outer crossing.
			Expect(travel(0, geom.V3(0.5, 0, -0.1), geom.V3(3, 0, -0.1))).To(Equal(knot.ArcB))
		})
	})

	Context("double crossing in one segment", func() {
		// (0.5,0,−2) → (3,0,−2) passes under inner B (arc 7) then outer
		// B (arc 5); the reflections compose in root order.
		start := geom.V3(0.5, 0, -2)
		end := geom.V3(3, 0, -2)

		It("applies crossings sequentially in ascending root order", func() {
			// 0 → 7−0 = 7 → 5−7 = −2 → mod 6 = 4.
			Expect(travel(0, start, end)).To(Equal(4))
		})

		It("is direction sensitive", func() {
			// Reversed: 0 → 5−0 = 5 → 7−5 = 2.
			Expect(travel(0, end, start)).To(Equal(2))
		})
	})

	Context("multi-leg paths", func() {
		It("composes reflections across legs", func() {
			mid := geom.V3(1.5, 0, -2)
			w := travel(0, geom.V3(0.5, 0, -2), mid)
			Expect(w).To(Equal(1)) // 7−0 mod 6
			w = travel(w, mid, geom.V3(3, 0, -2))
			Expect(w).To(Equal(4)) // 5−1
		})

		It("cancels out when the same arc is crossed twice", func() {
			a := geom.V3(0.5, 0, -2)
			b := geom.V3(1.5, 0, -2)
			for w0 := 0; w0 < 6; w0++ {
				w := travel(w0, a, b)
				w = travel(w, b, a)
				Expect(w).To(Equal(w0))
			}
		})

		It("does not cancel across different arcs in general", func() {
			// Under inner B then back out under outer B: 0 → 1 → 5−1 = 4.
			mid := geom.V3(1.5, 0, -2)
			w := travel(0, geom.V3(0.5, 0, -2), mid)
			w = travel(w, mid, geom.V3(3, 0, -2))
			Expect(w).NotTo(Equal(0))
		})
	})

	Context("segment endpoints", func() {
		It("does not register a touch beyond the segment end", func() {
			// Stop just short of the inner outline radius: the root sits
			// past t_max, outside the open interval.
			Expect(travel(0, geom.V3(0.5, 0, -2), geom.V3(rInner-1e-6, 0, -2))).To(Equal(0))
		})

		It("does not register a touch before the segment start", func() {
			Expect(travel(0, geom.V3(rInner+1e-6, 0, -2), geom.V3(2, 0, -2))).To(Equal(0))
		})
	})

	Context("consistency with the classifier", func() {
		It("matches arc − world mod 6 for curve-adjacent crossings", func() {
			// Drop a short vertical-ish segment through a point just
			// inside the membrane near several curve parameters.
			for i := 1; i < 12; i++ {
				t := float64(i) * 2 * math.Pi / 12
				p := knot.Curve(t)
				if math.Abs(p.Z) < 0.2 {
					continue // too close to a seam for a clean crossing
				}

				// Segment crossing the outline horizontally at depth
				// z* − 0.05, radially outward through the curve point.
				dir := p.XY()
				n := dir.Norm()
				dir = dir.Scale(1 / n)

				z := knot.SurfaceZ(p.XY()) - 0.05
				start := geom.V3(p.X-0.1*dir.X, p.Y-0.1*dir.Y, z)
				end := geom.V3(p.X+0.1*dir.X, p.Y+0.1*dir.Y, z)

				arc, below := knot.Classify(geom.V3(p.X, p.Y, z))
				if !below {
					continue
				}

				for w0 := 0; w0 < 6; w0++ {
					want := ((arc-w0)%6 + 6) % 6
					Expect(travel(w0, start, end)).To(Equal(want),
						"t=%v world=%d", t, w0)
				}
			}
		})
	})
})
