package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

const (
	// TileSize is the grid spacing every tile coordinate is aligned to.
	TileSize = 32

	BaseWidth  = 1024
	BaseHeight = 768

	// TPS is the simulation rate the world clock advances at.
	TPS = 60
)

// Snap floors v to the nearest multiple of TileSize at or below it.
func Snap(v float64) int {
	return int(math.Floor(v/TileSize)) * TileSize
}

// Cell returns the column/row containing p.
func Cell(p cp.Vector) (int, int) {
	return int(math.Floor(p.X / TileSize)), int(math.Floor(p.Y / TileSize))
}

func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// NormalizeDegrees maps a into [0, 360).
func NormalizeDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a = 0
	}
	return a
}

// AngleDiff returns the signed shortest rotation from one heading to
// another, in (-180, 180].
func AngleDiff(from, to float64) float64 {
	d := NormalizeDegrees(to - from)
	if d > 180 {
		d -= 360
	}
	return d
}

// AngleTo is the heading in degrees from one point to another. 0 points
// along +x and angles grow clockwise on screen.
func AngleTo(from, to cp.Vector) float64 {
	return NormalizeDegrees(Degrees(math.Atan2(to.Y-from.Y, to.X-from.X)))
}

// Forward is the unit vector for a heading in degrees.
func Forward(deg float64) cp.Vector {
	return cp.ForAngle(Radians(deg))
}
