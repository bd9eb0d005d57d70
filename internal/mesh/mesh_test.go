package mesh

import (
	"math"
	"testing"

	"github.com/hwen/knotsim/internal/geom"
	"github.com/hwen/knotsim/internal/knot"
)

func TestTrefoilTubeShape(t *testing.T) {
	tris := TrefoilTube()

	// 96 segments, 12 sides, 2 triangles per quad.
	if len(tris) != 96*12*2 {
		t.Fatalf("triangle count = %d, want %d", len(tris), 96*12*2)
	}

	// Every vertex sits at tube radius from some point of the curve.
	samples := make([]geom.Vec3, 0, 960)
	for i := 0; i < 960; i++ {
		samples = append(samples, knot.Curve(float64(i)*2*math.Pi/960))
	}
	nearest := func(p geom.Vec3) float64 {
		best := math.Inf(1)
		for _, c := range samples {
			if d := p.Sub(c).Norm(); d < best {
				best = d
			}
		}
		return best
	}

	for i := 0; i < len(tris); i += 97 {
		for _, v := range tris[i].Vertices {
			d := nearest(v)
			if d > 0.25 {
				t.Errorf("triangle %d: vertex %.3f from curve, want ~0.2", i, d)
			}
		}
	}
}

func TestTrefoilTubeArcColors(t *testing.T) {
	tris := TrefoilTube()

	// Segment index a owns triangles [a*24, a*24+24). Check one segment
	// in each arc range against its expected world 0 color.
	red := [4]float64{1, 0, 0, 1}
	green := [4]float64{0, 1, 0, 1}
	blue := [4]float64{0, 0, 1, 1}

	tests := []struct {
		seg    int
		world0 [4]float64
	}{
		{0, green},   // Arc B
		{30, blue},   // Arc C
		{70, red},    // Arc A
		{95, green},  // Arc B again
	}

	for _, tt := range tests {
		got := tris[tt.seg*24].Colors[0]
		if got != tt.world0 {
			t.Errorf("segment %d world 0 color = %v, want %v", tt.seg, got, tt.world0)
		}
	}
}

func TestBall(t *testing.T) {
	center := geom.V3(1, 2, 3)
	color := [4]float64{1, 0.5, 0, 1}
	tris := Ball(center, 4, color)

	if len(tris) != 20 {
		t.Fatalf("face count = %d, want 20", len(tris))
	}

	// Icosahedron vertex radius is 0.1·sqrt(1+phi²).
	wantR := 0.1 * math.Sqrt(1+1.618034*1.618034)
	for _, tri := range tris {
		for _, v := range tri.Vertices {
			r := v.Sub(center).Norm()
			if math.Abs(r-wantR) > 1e-6 {
				t.Fatalf("vertex radius = %v, want %v", r, wantR)
			}
		}
		if tri.Colors[4] != color {
			t.Errorf("world 4 color = %v", tri.Colors[4])
		}
		for w := 0; w < knot.Worlds; w++ {
			if w != 4 && tri.Colors[w] != ([4]float64{}) {
				t.Errorf("world %d should be transparent, got %v", w, tri.Colors[w])
			}
		}
		if tri.Centroid() != center {
			t.Errorf("shading center = %v, want %v", tri.Centroid(), center)
		}
	}
}

func TestGroundNormalUp(t *testing.T) {
	for _, tri := range Ground() {
		n := tri.Normal()
		if n.Z < 0.999 {
			t.Errorf("ground normal = %v, want +z", n)
		}
	}
}

func TestSkybox(t *testing.T) {
	tris := Skybox()
	if len(tris) != 4 {
		t.Fatalf("face count = %d, want 4", len(tris))
	}
	for _, tri := range tris {
		if tri.AmbientFactor != 1.0 || tri.DiffuseFactor != 0.0 {
			t.Errorf("skybox shading = %v/%v", tri.AmbientFactor, tri.DiffuseFactor)
		}
	}
}

func TestPackLayout(t *testing.T) {
	if VertexFloats != 35 {
		t.Fatalf("VertexFloats = %d, want 35", VertexFloats)
	}

	tris := Ground()
	data := Pack(tris)
	if len(data) != len(tris)*3*VertexFloats {
		t.Fatalf("buffer length = %d, want %d", len(data), len(tris)*3*VertexFloats)
	}

	// First vertex: six gray colors, then position of v0.
	for w := 0; w < knot.Worlds; w++ {
		base := w * 4
		if data[base] != 0.5 || data[base+3] != 1.0 {
			t.Errorf("color %d = %v", w, data[base:base+4])
		}
	}
	pos := data[24:27]
	if pos[0] != -100 || pos[1] != -100 || pos[2] != -2 {
		t.Errorf("position = %v", pos)
	}
	// Normal occupies floats 27..30.
	if data[29] != 1.0 {
		t.Errorf("normal z = %v, want 1", data[29])
	}
	// Shading factors close out the vertex.
	if data[33] != 0.2 || data[34] != 0.8 {
		t.Errorf("factors = %v/%v", data[33], data[34])
	}
}
