package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input holds the viewer's per-frame controls.
type Input struct {
	MoveX       float64
	JumpPressed bool
	Pause       bool
	Step        bool
	Reset       bool
	ToggleDebug bool
}

const stickDeadzone = 0.2

// Update polls keyboard and the first gamepad.
func (i *Input) Update() {
	moveX := 0.0
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		moveX += 1
	}

	gpJump := false
	if ids := ebiten.AppendGamepadIDs(nil); len(ids) > 0 {
		gid := ids[0]
		if ebiten.IsStandardGamepadLayoutAvailable(gid) {
			ax := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
			if ax > stickDeadzone || ax < -stickDeadzone {
				moveX = ax
			}
			if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftLeft) {
				moveX = -1
			}
			if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftRight) {
				moveX = 1
			}
			gpJump = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		}
	}

	i.MoveX = moveX
	// single-frame press so holding space doesn't stack impulses
	i.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || gpJump
	i.Pause = inpututil.IsKeyJustPressed(ebiten.KeyP)
	i.Step = inpututil.IsKeyJustPressed(ebiten.KeyPeriod)
	i.Reset = inpututil.IsKeyJustPressed(ebiten.KeyR)
	i.ToggleDebug = inpututil.IsKeyJustPressed(ebiten.KeyF3)
}
