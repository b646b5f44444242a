package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is the world pose mirrored from whichever system owns the
// entity's motion. Position is at the feet for bodies.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

var TransformComponent = NewComponent[Transform]()
