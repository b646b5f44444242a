package component

import "github.com/milk9111/thirdperson/locomotion"

type Player struct {
	Controller *locomotion.Controller
}

var PlayerComponent = NewComponent[Player]()
