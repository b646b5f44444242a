package main

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/thirdperson/input"
)

const (
	// mouseScale converts cursor pixels into look axis units.
	mouseScale = 0.1

	stickDeadZone = 0.2
)

// deviceSource reads keyboard, mouse and the first gamepad into input frames.
type deviceSource struct {
	tracker input.Tracker

	lastX, lastY int
	haveCursor   bool
}

func newDeviceSource() *deviceSource {
	return &deviceSource{}
}

// Reset forgets held buttons and the last cursor position so toggling the
// cursor mode does not produce a look jump.
func (d *deviceSource) Reset() {
	d.tracker.Reset()
	d.haveCursor = false
}

func (d *deviceSource) Poll(float64) (input.Frame, error) {
	var move mgl64.Vec2
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		move[0] -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		move[0] += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		move[1] += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		move[1] -= 1
	}

	look := d.cursorDelta()

	held := input.Buttons{
		Jump:   ebiten.IsKeyPressed(ebiten.KeySpace),
		Dash:   ebiten.IsKeyPressed(ebiten.KeyShiftLeft),
		Attack: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	}

	if ids := ebiten.AppendGamepadIDs(nil); len(ids) > 0 {
		gid := ids[0]
		if ebiten.IsStandardGamepadLayoutAvailable(gid) {
			lx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
			ly := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
			if stick := (mgl64.Vec2{lx, -ly}); stick.Len() > stickDeadZone {
				move = move.Add(stick)
			}
			rx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisRightStickHorizontal)
			ry := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisRightStickVertical)
			if stick := (mgl64.Vec2{rx, -ry}); stick.Len() > stickDeadZone {
				look = look.Add(stick)
			}
			held.Jump = held.Jump || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightBottom)
			held.Dash = held.Dash || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightLeft)
			held.Attack = held.Attack || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonFrontBottomRight)
		}
	}

	return d.tracker.Frame(move, look, held), nil
}

// cursorDelta returns the pointer motion since the last poll with screen y
// flipped so that moving the mouse up is positive.
func (d *deviceSource) cursorDelta() mgl64.Vec2 {
	x, y := ebiten.CursorPosition()
	if !d.haveCursor {
		d.lastX, d.lastY, d.haveCursor = x, y, true
		return mgl64.Vec2{}
	}
	dx, dy := x-d.lastX, y-d.lastY
	d.lastX, d.lastY = x, y
	return mgl64.Vec2{float64(dx) * mouseScale, -float64(dy) * mouseScale}
}
