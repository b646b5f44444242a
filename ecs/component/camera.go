package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/thirdperson/orbit"
)

type Camera struct {
	Orbit *orbit.Camera
	// TargetName is resolved lazily by the camera system; "player" means the
	// first entity tagged as the player.
	TargetName string
	// Look accumulates pointer deltas until the camera system consumes them.
	Look mgl64.Vec2
	// Snapped is set once the camera has been placed on its target.
	Snapped bool
}

var CameraComponent = NewComponent[Camera]()
