package components

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/doomerang-brawl/fighter"
)

type ControllerData struct {
	fighter.Controller
	Held *fighter.HeldIntent // set for host-driven slots, nil for AI
}

var Controller = donburi.NewComponentType[ControllerData]()
