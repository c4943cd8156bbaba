package components

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/doomerang-brawl/fighter"
)

type CombatantData struct {
	*fighter.Combatant
	Stage fighter.Stage // where this combatant's location may go
}

var Combatant = donburi.NewComponentType[CombatantData]()
