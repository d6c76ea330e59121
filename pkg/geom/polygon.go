package geom

import "math"

// DistanceToSegment returns the distance from p to the segment a-b.
// The projection parameter is clamped to [0,1]; a zero-length segment
// falls back to the distance between p and a.
func DistanceToSegment(p, a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return Distance(p, a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	proj := Point{X: a.X + t*dx, Y: a.Y + t*dy}
	return Distance(p, proj)
}

// NearestEdge returns the index i of the closed-polygon edge
// (points[i], points[(i+1)%n]) closest to p, together with its distance.
// Ties resolve to the lowest index. It returns -1 for fewer than two points.
func NearestEdge(points []Point, p Point) (int, float64) {
	n := len(points)
	if n < 2 {
		return -1, math.Inf(1)
	}
	best, bestDist := -1, math.Inf(1)
	for i := 0; i < n; i++ {
		d := DistanceToSegment(p, points[i], points[(i+1)%n])
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist
}

// NearestVertex returns the index of the vertex closest to p and its distance.
// It returns -1 for an empty slice.
func NearestVertex(points []Point, p Point) (int, float64) {
	best, bestDist := -1, math.Inf(1)
	for i, q := range points {
		if d := Distance(p, q); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist
}

// Bounds returns the axis-aligned bounding box of points.
// An empty slice yields the zero Rect.
func Bounds(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// RemapBounds maps each point's fractional position inside from to the same
// fraction inside to. A zero-width (or zero-height) source box pins the
// fraction on that axis to 0, so degenerate rooms collapse onto to's edge
// instead of producing NaN.
func RemapBounds(points []Point, from, to Rect) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		relX, relY := 0.0, 0.0
		if from.W != 0 {
			relX = (p.X - from.X) / from.W
		}
		if from.H != 0 {
			relY = (p.Y - from.Y) / from.H
		}
		out[i] = Point{X: to.X + relX*to.W, Y: to.Y + relY*to.H}
	}
	return out
}

// Translate returns a copy of points shifted by (dx, dy).
func Translate(points []Point, dx, dy float64) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = p.Add(dx, dy)
	}
	return out
}

// Centroid returns the arithmetic mean of points, or the origin when empty.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	var sx, sy float64
	for _, p := range points {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(points))
	return Point{X: sx / n, Y: sy / n}
}

// Contains reports whether p lies inside the closed polygon using the
// even-odd rule. Points exactly on an edge may land on either side.
func Contains(points []Point, p Point) bool {
	inside := false
	n := len(points)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := points[i], points[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// Clone returns a copy of points; nil stays nil.
func Clone(points []Point) []Point {
	if points == nil {
		return nil
	}
	out := make([]Point, len(points))
	copy(out, points)
	return out
}
