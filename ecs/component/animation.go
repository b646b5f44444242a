package component

import "github.com/milk9111/thirdperson/anim"

type Animation struct {
	Recorder *anim.Recorder
	// Recent is the triggers drained on the last frame, kept for debug draw.
	Recent []string
}

var AnimationComponent = NewComponent[Animation]()
