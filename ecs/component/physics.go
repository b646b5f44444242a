package component

import "github.com/milk9111/thirdperson/physics"

type PhysicsBody struct {
	Body *physics.Body
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
