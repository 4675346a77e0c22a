package geometry

import (
	"math"
	"testing"
)

func regularPolygon(n int, radius float64) []Point {
	pts := make([]Point, n)
	for k := range pts {
		angle := 2 * math.Pi * float64(k) / float64(n)
		pts[k] = Point{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
	}
	return pts
}

func reversed(pts []Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

func summedArea(pts []Point, tris []Triangle) float64 {
	var total float64
	for _, t := range tris {
		total += TriangleArea(pts[t[0]], pts[t[1]], pts[t[2]])
	}
	return total
}

func TestTriangulateConvex(t *testing.T) {
	for n := 3; n <= 12; n++ {
		for _, pts := range [][]Point{regularPolygon(n, 5), reversed(regularPolygon(n, 5))} {
			tris := Triangulate(pts)
			if len(tris) != n-2 {
				t.Fatalf("n=%d: expected %d triangles, got %d", n, n-2, len(tris))
			}
			want := math.Abs(SignedArea(pts))
			if got := summedArea(pts, tris); math.Abs(got-want) > 1e-9 {
				t.Errorf("n=%d: triangle area %f, polygon area %f", n, got, want)
			}
		}
	}
}

func TestTriangulateConcaveL(t *testing.T) {
	l := []Point{{0, 0}, {2, 0}, {2, 1}, {1, 1}, {1, 2}, {0, 2}}

	for _, pts := range [][]Point{l, reversed(l)} {
		tris := Triangulate(pts)
		if len(tris) != 4 {
			t.Fatalf("expected 4 triangles, got %d: %v", len(tris), tris)
		}

		for _, tri := range tris {
			a, b, c := pts[tri[0]], pts[tri[1]], pts[tri[2]]
			for i, p := range pts {
				if i == tri[0] || i == tri[1] || i == tri[2] {
					continue
				}
				if strictlyInside(a, b, c, p) {
					t.Errorf("triangle %v strictly contains vertex %d", tri, i)
				}
			}
		}

		if got, want := summedArea(pts, tris), 3.0; math.Abs(got-want) > 1e-9 {
			t.Errorf("triangle area %f, want %f", got, want)
		}
	}
}

func strictlyInside(a, b, c, p Point) bool {
	d1 := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
	d2 := (c.X-b.X)*(p.Y-b.Y) - (c.Y-b.Y)*(p.X-b.X)
	d3 := (a.X-c.X)*(p.Y-c.Y) - (a.Y-c.Y)*(p.X-c.X)
	return (d1 > 0 && d2 > 0 && d3 > 0) || (d1 < 0 && d2 < 0 && d3 < 0)
}

func TestTriangulateButtonShapes(t *testing.T) {
	left := []Point{{256, 48}, {96, 128}, {96, 256}, {256, 300}, {256, 238}, {222, 238}, {222, 110}, {256, 110}}
	tris := Triangulate(left)
	if len(tris) != len(left)-2 {
		t.Fatalf("expected %d triangles, got %d", len(left)-2, len(tris))
	}
	if got, want := summedArea(left, tris), math.Abs(SignedArea(left)); math.Abs(got-want) > 1e-6 {
		t.Errorf("triangle area %f, polygon area %f", got, want)
	}
}

func TestTriangulateDegenerate(t *testing.T) {
	tests := []struct {
		name string
		pts  []Point
	}{
		{"empty", nil},
		{"single point", []Point{{1, 1}}},
		{"segment", []Point{{0, 0}, {1, 1}}},
		{"collinear four", []Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}}},
		{"bowtie", []Point{{0, 0}, {2, 2}, {2, 0}, {0, 2}}},
		{"repeated point", []Point{{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tris := Triangulate(tt.pts)
			if len(tt.pts) >= 3 && len(tris) > len(tt.pts)-2 {
				t.Errorf("got %d triangles for %d points", len(tris), len(tt.pts))
			}
			for _, tri := range tris {
				for _, idx := range tri {
					if idx < 0 || idx >= len(tt.pts) {
						t.Fatalf("triangle %v indexes outside polygon", tri)
					}
				}
			}
		})
	}

	if tris := Triangulate([]Point{{0, 0}, {1, 0}}); tris != nil {
		t.Errorf("expected no triangles for two points, got %v", tris)
	}
}

func TestPointInTriangle(t *testing.T) {
	a, b, c := Point{0, 0}, Point{4, 0}, Point{0, 4}

	if !PointInTriangle(a, b, c, Point{1, 1}) {
		t.Error("expected interior point to be inside")
	}
	if PointInTriangle(a, b, c, Point{5, 5}) {
		t.Error("expected exterior point to be outside")
	}
	if PointInTriangle(Point{0, 0}, Point{1, 1}, Point{2, 2}, Point{1, 1}) {
		t.Error("degenerate triangle must contain nothing")
	}
}

func TestIsConvex(t *testing.T) {
	if !IsConvex(Point{0, 0}, Point{1, 0}, Point{1, 1}) {
		t.Error("expected left turn to be convex")
	}
	if IsConvex(Point{0, 0}, Point{1, 0}, Point{1, -1}) {
		t.Error("expected right turn to be reflex")
	}
	if IsConvex(Point{0, 0}, Point{1, 0}, Point{2, 0}) {
		t.Error("expected straight line to be rejected")
	}
}
