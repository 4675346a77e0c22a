// Package geometry provides polygon triangulation for filling concave shapes
// with a renderer that only accepts convex primitives.
package geometry

import "math"

// maxIterations bounds the ear search so malformed input always terminates.
const maxIterations = 10_000

// epsilon is the determinant tolerance of the point-in-triangle test.
const epsilon = 1e-6

// Point is a 2D vertex.
type Point struct {
	X, Y float64
}

// Triangle holds three indices into the polygon passed to Triangulate.
type Triangle [3]int

// SignedArea returns the shoelace area of the polygon. It is positive for
// counter-clockwise winding in a Y-up frame.
func SignedArea(points []Point) float64 {
	n := len(points)
	var acc float64
	for i, p := range points {
		q := points[(i+1)%n]
		acc += p.X*q.Y - q.X*p.Y
	}
	return acc / 2
}

// TriangleArea returns the unsigned area of the triangle abc.
func TriangleArea(a, b, c Point) float64 {
	return math.Abs((b.X-a.X)*(c.Y-a.Y)-(b.Y-a.Y)*(c.X-a.X)) / 2
}

// IsConvex reports whether b is a convex corner of the path a→b→c when the
// polygon is traversed counter-clockwise.
func IsConvex(a, b, c Point) bool {
	cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	return cross > 0
}

// PointInTriangle reports whether p lies inside triangle abc using
// barycentric coordinates. Degenerate triangles contain nothing.
func PointInTriangle(a, b, c, p Point) bool {
	v0 := Point{c.X - a.X, c.Y - a.Y}
	v1 := Point{b.X - a.X, b.Y - a.Y}
	v2 := Point{p.X - a.X, p.Y - a.Y}

	den := v0.X*v1.Y - v1.X*v0.Y
	if math.Abs(den) < epsilon {
		return false
	}
	u := (v2.X*v1.Y - v1.X*v2.Y) / den
	v := (v0.X*v2.Y - v2.X*v0.Y) / den
	return u >= 0 && v >= 0 && u+v <= 1
}

// Triangulate decomposes a simple polygon into triangles by ear clipping.
// The returned triangles index into points. If the polygon is malformed the
// search stops early and whatever triangles were found are returned.
func Triangulate(points []Point) []Triangle {
	n := len(points)
	if n < 3 {
		return nil
	}

	// Work list of vertex indices, always walked counter-clockwise.
	ccw := SignedArea(points) > 0
	active := make([]int, n)
	for i := range active {
		if ccw {
			active[i] = i
		} else {
			active[i] = n - 1 - i
		}
	}

	triangles := make([]Triangle, 0, n-2)

	for guard := 0; len(active) > 3 && guard < maxIterations; guard++ {
		ear := findEar(points, active)
		if ear < 0 {
			break
		}
		m := len(active)
		prev, curr, next := active[(ear+m-1)%m], active[ear], active[(ear+1)%m]
		triangles = append(triangles, Triangle{prev, curr, next})
		active = append(active[:ear], active[ear+1:]...)
	}

	if len(active) == 3 {
		triangles = append(triangles, Triangle{active[0], active[1], active[2]})
	}
	return triangles
}

// findEar returns the position in active of the first clippable vertex, or -1.
func findEar(points []Point, active []int) int {
	m := len(active)
	for i := 0; i < m; i++ {
		prev, curr, next := active[(i+m-1)%m], active[i], active[(i+1)%m]
		a, b, c := points[prev], points[curr], points[next]
		if !IsConvex(a, b, c) {
			continue
		}
		if !containsOther(points, active, prev, curr, next) {
			return i
		}
	}
	return -1
}

func containsOther(points []Point, active []int, prev, curr, next int) bool {
	a, b, c := points[prev], points[curr], points[next]
	for _, other := range active {
		if other == prev || other == curr || other == next {
			continue
		}
		if PointInTriangle(a, b, c, points[other]) {
			return true
		}
	}
	return false
}
