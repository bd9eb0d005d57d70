package solve

import (
	"math"
	"math/rand"
	"sort"
	"testing"
)

const tol = 1e-8

func evalQuadratic(b, c, x float64) float64 { return x*x + b*x + c }

func evalCubic(a1, a2, a3, x float64) float64 { return x*x*x + a1*x*x + a2*x + a3 }

func evalQuartic(a, b, c, d, x float64) float64 {
	return x*x*x*x + a*x*x*x + b*x*x + c*x + d
}

func TestQuadratic(t *testing.T) {
	tests := []struct {
		name  string
		b, c  float64
		roots []float64
	}{
		{"distinct", -3, 2, []float64{1, 2}},
		{"negative pair", 3, 2, []float64{-2, -1}},
		{"symmetric", 0, -4, []float64{-2, 2}},
		{"double root", -2, 1, []float64{1, 1}},
		{"zero root", -5, 0, []float64{0, 5}},
		{"no real roots", 0, 1, nil},
		{"no real roots shifted", 2, 5, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x1, x2, ok := Quadratic(tt.b, tt.c)
			if tt.roots == nil {
				if ok {
					t.Fatalf("expected no real roots, got %v, %v", x1, x2)
				}
				return
			}
			if !ok {
				t.Fatal("expected real roots")
			}
			if x1 > x2 {
				t.Errorf("roots not ascending: %v > %v", x1, x2)
			}
			if math.Abs(x1-tt.roots[0]) > tol || math.Abs(x2-tt.roots[1]) > tol {
				t.Errorf("roots = (%v, %v), want %v", x1, x2, tt.roots)
			}
		})
	}
}

func TestQuadraticResidualRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		b := rng.Float64()*20 - 10
		c := rng.Float64()*20 - 10

		x1, x2, ok := Quadratic(b, c)
		if b*b-4*c < 0 {
			if ok {
				t.Fatalf("b=%v c=%v: negative discriminant but ok", b, c)
			}
			continue
		}
		if !ok {
			t.Fatalf("b=%v c=%v: nonnegative discriminant but not ok", b, c)
		}
		for _, x := range []float64{x1, x2} {
			if res := evalQuadratic(b, c, x); math.Abs(res) > 1e-6 {
				t.Errorf("b=%v c=%v: residual %v at root %v", b, c, res, x)
			}
		}
	}
}

// Quadratic must avoid catastrophic cancellation when the roots differ
// wildly in magnitude.
func TestQuadraticCancellation(t *testing.T) {
	// (x - 1e-9)(x - 1e9): b = -(1e9 + 1e-9), c = 1.
	x1, x2, ok := Quadratic(-(1e9 + 1e-9), 1)
	if !ok {
		t.Fatal("expected real roots")
	}
	if math.Abs(x1-1e-9)/1e-9 > 1e-9 {
		t.Errorf("small root lost precision: got %v", x1)
	}
	if math.Abs(x2-1e9)/1e9 > 1e-9 {
		t.Errorf("large root lost precision: got %v", x2)
	}
}

func TestCubicLargestOfThree(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 500; i++ {
		r1 := rng.Float64()*10 - 5
		r2 := rng.Float64()*10 - 5
		r3 := rng.Float64()*10 - 5

		// (x-r1)(x-r2)(x-r3)
		a1 := -(r1 + r2 + r3)
		a2 := r1*r2 + r1*r3 + r2*r3
		a3 := -r1 * r2 * r3

		want := math.Max(r1, math.Max(r2, r3))
		got := Cubic(a1, a2, a3)

		if math.Abs(got-want) > 1e-6 {
			t.Fatalf("roots (%v, %v, %v): largest = %v, want %v", r1, r2, r3, got, want)
		}
	}
}

func TestCubicOneRealRoot(t *testing.T) {
	tests := []struct {
		name       string
		a1, a2, a3 float64
		want       float64
	}{
		// (x-2)(x²+1) = x³ - 2x² + x - 2
		{"positive real root", -2, 1, -2, 2},
		// (x+3)(x²+x+1) = x³ + 4x² + 4x + 3
		{"negative real root", 4, 4, 3, -3},
		// x³ - 1
		{"unit root", 0, 0, -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cubic(tt.a1, tt.a2, tt.a3)
			if math.Abs(got-tt.want) > tol {
				t.Errorf("Cubic(%v, %v, %v) = %v, want %v", tt.a1, tt.a2, tt.a3, got, tt.want)
			}
		})
	}
}

func TestCubicResidualRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 1000; i++ {
		a1 := rng.Float64()*10 - 5
		a2 := rng.Float64()*10 - 5
		a3 := rng.Float64()*10 - 5

		x := Cubic(a1, a2, a3)
		if res := evalCubic(a1, a2, a3, x); math.Abs(res) > 1e-5 {
			t.Errorf("Cubic(%v, %v, %v): residual %v at %v", a1, a2, a3, res, x)
		}
	}
}

func quarticFromRoots(rs []float64) (a, b, c, d float64) {
	// Expand (x-r1)(x-r2)(x-r3)(x-r4).
	coeff := []float64{1}
	for _, r := range rs {
		next := make([]float64, len(coeff)+1)
		for i, cv := range coeff {
			next[i] += cv
			next[i+1] -= cv * r
		}
		coeff = next
	}
	return coeff[1], coeff[2], coeff[3], coeff[4]
}

func TestQuarticFourRealRoots(t *testing.T) {
	tests := []struct {
		name string
		rs   []float64
	}{
		{"spread", []float64{-3, -1, 2, 5}},
		{"clustered", []float64{0.5, 0.6, 0.7, 0.8}},
		{"symmetric", []float64{-2, -1, 1, 2}},
		{"with zero", []float64{0, 1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b, c, d := quarticFromRoots(tt.rs)

			var roots [4]float64
			n := Quartic(a, b, c, d, &roots)
			if n != 4 {
				t.Fatalf("expected 4 roots, got %d", n)
			}

			want := append([]float64(nil), tt.rs...)
			sort.Float64s(want)

			for i := 0; i < 4; i++ {
				if math.Abs(roots[i]-want[i]) > 1e-6 {
					t.Errorf("root[%d] = %v, want %v", i, roots[i], want[i])
				}
			}
			for i := 0; i < 3; i++ {
				if roots[i] > roots[i+1] {
					t.Errorf("roots not ascending: %v", roots)
				}
			}
		})
	}
}

func TestQuarticTwoRealRoots(t *testing.T) {
	// (x-1)(x-4)(x²+1) = x⁴ - 5x³ + 5x² - 5x + 4
	var roots [4]float64
	n := Quartic(-5, 5, -5, 4, &roots)
	if n != 2 {
		t.Fatalf("expected 2 roots, got %d", n)
	}
	if math.Abs(roots[0]-1) > tol || math.Abs(roots[1]-4) > tol {
		t.Errorf("roots = (%v, %v), want (1, 4)", roots[0], roots[1])
	}
}

func TestQuarticNoRealRoots(t *testing.T) {
	// (x²+1)(x²+2x+2) = x⁴ + 2x³ + 3x² + 2x + 2
	var roots [4]float64
	if n := Quartic(2, 3, 2, 2, &roots); n != 0 {
		t.Fatalf("expected 0 roots, got %d", n)
	}
}

func TestQuarticResidualRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for i := 0; i < 500; i++ {
		rs := []float64{
			rng.Float64()*8 - 4,
			rng.Float64()*8 - 4,
			rng.Float64()*8 - 4,
			rng.Float64()*8 - 4,
		}
		a, b, c, d := quarticFromRoots(rs)

		var roots [4]float64
		n := Quartic(a, b, c, d, &roots)
		if n != 4 {
			t.Fatalf("roots %v: expected 4 real roots, got %d", rs, n)
		}
		for j := 0; j < n; j++ {
			if res := evalQuartic(a, b, c, d, roots[j]); math.Abs(res) > 1e-4 {
				t.Errorf("roots %v: residual %v at %v", rs, res, roots[j])
			}
		}
	}
}
