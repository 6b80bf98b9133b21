package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tankgame/system"
)

const (
	stickDeadZone = 0.3
	stickAimReach = 200
)

// Input polls keyboard, mouse and the first gamepad into a system.Input.
type Input struct{}

func NewInput() *Input {
	return &Input{}
}

func (i *Input) Poll() system.Input {
	var in system.Input
	in.Forward = ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp)
	in.Back = ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown)
	in.Left = ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft)
	in.Right = ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight)
	in.FirePrimary = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) || ebiten.IsKeyPressed(ebiten.KeySpace)
	in.FireSecondary = ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft)

	mx, my := ebiten.CursorPosition()
	cursor := cp.Vector{X: float64(mx), Y: float64(my)}
	in.Aim = cursor
	in.AimValid = true

	ids := ebiten.AppendGamepadIDs(nil)
	if len(ids) == 0 {
		return in
	}
	gid := ids[0]

	ly := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
	lx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
	in.Forward = in.Forward || ly < -stickDeadZone
	in.Back = in.Back || ly > stickDeadZone
	in.Left = in.Left || lx < -stickDeadZone
	in.Right = in.Right || lx > stickDeadZone

	in.FirePrimary = in.FirePrimary || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonFrontBottomRight)
	in.FireSecondary = in.FireSecondary || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonFrontBottomLeft)

	// the right stick aims relative to the cursor
	rx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisRightStickHorizontal)
	ry := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisRightStickVertical)
	if rx*rx+ry*ry > stickDeadZone*stickDeadZone {
		in.Aim = cursor.Add(cp.Vector{X: rx, Y: ry}.Normalize().Mult(stickAimReach))
		in.AimValid = true
	}
	return in
}
