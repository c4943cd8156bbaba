package tags

import "github.com/yohamta/donburi"

var (
	Combatant = donburi.NewTag().SetName("Combatant")
	Human     = donburi.NewTag().SetName("Human")
)

// Resolv tags for the broad-phase space
const (
	ResolvCombatant = "combatant"
)
