package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tankgame/common"
)

const (
	DefaultTankHalfSize = 12
	DefaultBarrelLength = 20
)

// TankBody is the hull and turret shared by the player and enemy tanks.
// Heading is the hull direction and Tower the turret angle relative to it,
// both in degrees.
type TankBody struct {
	Pos          cp.Vector
	Heading      float64
	Tower        float64
	HalfSize     float64
	BarrelLength float64
	Texture      string
	TowerTexture string
}

func NewTankBody(pos cp.Vector, texture, towerTexture string) *TankBody {
	return &TankBody{
		Pos:          pos,
		HalfSize:     DefaultTankHalfSize,
		BarrelLength: DefaultBarrelLength,
		Texture:      texture,
		TowerTexture: towerTexture,
	}
}

func (b *TankBody) Box() cp.BB {
	return common.CenteredBox(b.Pos, b.HalfSize, b.HalfSize)
}

// TowerHeading is the turret direction in world terms.
func (b *TankBody) TowerHeading() float64 {
	return common.NormalizeDegrees(b.Heading + b.Tower)
}

// BarrelPoint is the muzzle position, where shots spawn and the sensor ray
// starts.
func (b *TankBody) BarrelPoint() cp.Vector {
	return b.Pos.Add(common.Forward(b.TowerHeading()).Mult(b.BarrelLength))
}

// Probe is the point dist ahead of the hull centre.
func (b *TankBody) Probe(dist float64) cp.Vector {
	return b.Pos.Add(common.Forward(b.Heading).Mult(dist))
}

func (b *TankBody) Turn(deg float64) {
	b.Heading = common.NormalizeDegrees(b.Heading + deg)
}

// TurnToward rotates the hull at most step degrees toward target and reports
// whether it is now within tolerance of it.
func (b *TankBody) TurnToward(target, step, tolerance float64) bool {
	diff := common.AngleDiff(b.Heading, target)
	if diff >= -tolerance && diff <= tolerance {
		return true
	}
	switch {
	case diff > step:
		b.Turn(step)
	case diff < -step:
		b.Turn(-step)
	default:
		b.Turn(diff)
	}
	diff = common.AngleDiff(b.Heading, target)
	return diff >= -tolerance && diff <= tolerance
}

// AimAt points the turret at p.
func (b *TankBody) AimAt(p cp.Vector) {
	b.SetTowerHeading(common.AngleTo(b.Pos, p))
}

// SetTowerHeading sets the turret to a world heading.
func (b *TankBody) SetTowerHeading(deg float64) {
	b.Tower = common.NormalizeDegrees(deg - b.Heading)
}

// Drive moves the hull dist along its heading and undoes the move if blocked
// reports the new position as impassable.
func (b *TankBody) Drive(dist float64, blocked func(cp.Vector) bool) bool {
	prev := b.Pos
	b.Pos = b.Pos.Add(common.Forward(b.Heading).Mult(dist))
	if blocked != nil && blocked(b.Pos) {
		b.Pos = prev
		return false
	}
	return true
}

func (b *TankBody) Shift(d cp.Vector) {
	b.Pos = b.Pos.Add(d)
}
