package system

import "github.com/jakecoffman/cp"

// Input is one frame of player intent, already decoupled from the device.
type Input struct {
	Forward, Back bool
	Left, Right   bool

	Aim      cp.Vector
	AimValid bool

	FirePrimary   bool
	FireSecondary bool
}
