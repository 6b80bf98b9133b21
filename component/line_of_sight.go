package component

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tankgame/common"
	"github.com/milk9111/tankgame/obj"
)

// LineOfSight is a fixed-length sensor ray. Update points it, Truncate cuts
// it at the nearest wall.
type LineOfSight struct {
	Origin cp.Vector
	End    cp.Vector
	Length float64
	Angle  float64
}

func NewLineOfSight(length float64) *LineOfSight {
	return &LineOfSight{Length: length}
}

// Update re-aims the full-length ray from origin along angle (degrees).
func (l *LineOfSight) Update(origin cp.Vector, angle float64) {
	l.Origin = origin
	l.Angle = common.NormalizeDegrees(angle)
	l.End = origin.Add(common.Forward(l.Angle).Mult(l.Length))
}

// CheckCollision reports whether the ray touches bb.
func (l *LineOfSight) CheckCollision(bb cp.BB) bool {
	if common.Contains(bb, l.End) {
		return true
	}
	_, ok := SegmentBoxIntersection(l.Origin, l.End, bb)
	return ok
}

// Truncate moves the end point to the closest intersection with a
// sight-blocking tile of walls and reports whether the ray was cut.
func (l *LineOfSight) Truncate(walls *obj.Layer) bool {
	if walls == nil {
		return false
	}
	area := cp.BB{
		L: math.Min(l.Origin.X, l.End.X) - 0.5,
		B: math.Min(l.Origin.Y, l.End.Y) - 0.5,
		R: math.Max(l.Origin.X, l.End.X) + 0.5,
		T: math.Max(l.Origin.Y, l.End.Y) + 0.5,
	}
	nearest := l.End
	nearestDist := l.Origin.Distance(l.End)
	cut := false
	for _, t := range walls.TilesInArea(area) {
		if !t.BlocksSight() {
			continue
		}
		p, ok := SegmentBoxIntersection(l.Origin, l.End, t.Box())
		if !ok {
			continue
		}
		if d := l.Origin.Distance(p); d < nearestDist {
			nearest, nearestDist, cut = p, d, true
		}
	}
	l.End = nearest
	return cut
}

// Distance is the current length of the ray after truncation.
func (l *LineOfSight) Distance() float64 {
	return l.Origin.Distance(l.End)
}
