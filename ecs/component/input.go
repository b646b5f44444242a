package component

import "github.com/milk9111/thirdperson/input"

// Input holds the latest frame dispatched to the entity.
type Input struct {
	Frame input.Frame
	// Script names the tengo script that drives this entity, if any.
	Script string
}

var InputComponent = NewComponent[Input]()
