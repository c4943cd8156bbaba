package components

import "github.com/yohamta/donburi"

// SlotData is a combatant's player index, 0 or 1.
type SlotData struct {
	Index int
}

var Slot = donburi.NewComponentType[SlotData]()
