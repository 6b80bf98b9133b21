package component

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tankgame/common"
)

const epsilon = 1e-9

// SegmentIntersection intersects segments a1-a2 and b1-b2 by solving their
// line equations. Parallel and collinear segments report no intersection.
func SegmentIntersection(a1, a2, b1, b2 cp.Vector) (cp.Vector, bool) {
	aVertical := math.Abs(a2.X-a1.X) < epsilon
	bVertical := math.Abs(b2.X-b1.X) < epsilon

	var x, y float64
	switch {
	case aVertical && bVertical:
		return cp.Vector{}, false
	case aVertical:
		mb, cb := lineThrough(b1, b2)
		x = a1.X
		y = mb*x + cb
	case bVertical:
		ma, ca := lineThrough(a1, a2)
		x = b1.X
		y = ma*x + ca
	default:
		ma, ca := lineThrough(a1, a2)
		mb, cb := lineThrough(b1, b2)
		if math.Abs(ma-mb) < epsilon {
			return cp.Vector{}, false
		}
		x = (cb - ca) / (ma - mb)
		y = ma*x + ca
	}

	p := cp.Vector{X: x, Y: y}
	if !inSpan(p, a1, a2) || !inSpan(p, b1, b2) {
		return cp.Vector{}, false
	}
	return p, true
}

// lineThrough returns slope and intercept of the non-vertical line through
// two points.
func lineThrough(p1, p2 cp.Vector) (float64, float64) {
	m := (p2.Y - p1.Y) / (p2.X - p1.X)
	return m, p1.Y - m*p1.X
}

func inSpan(p, s1, s2 cp.Vector) bool {
	const slack = 1e-6
	return p.X >= math.Min(s1.X, s2.X)-slack && p.X <= math.Max(s1.X, s2.X)+slack &&
		p.Y >= math.Min(s1.Y, s2.Y)-slack && p.Y <= math.Max(s1.Y, s2.Y)+slack
}

// SegmentBoxIntersection returns the point where the segment from a to b
// first meets bb. A segment starting inside the box meets it at a.
func SegmentBoxIntersection(a, b cp.Vector, bb cp.BB) (cp.Vector, bool) {
	if common.Contains(bb, a) {
		return a, true
	}
	corners := [4]cp.Vector{
		{X: bb.L, Y: bb.B},
		{X: bb.R, Y: bb.B},
		{X: bb.R, Y: bb.T},
		{X: bb.L, Y: bb.T},
	}
	var best cp.Vector
	bestDist := math.Inf(1)
	for i := range corners {
		p, ok := SegmentIntersection(a, b, corners[i], corners[(i+1)%4])
		if !ok {
			continue
		}
		if d := a.Distance(p); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best, !math.IsInf(bestDist, 1)
}
