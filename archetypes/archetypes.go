package archetypes

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/doomerang-brawl/components"
	"github.com/automoto/doomerang-brawl/tags"
)

var (
	Combatant = newArchetype(
		tags.Combatant,
		components.Combatant,
		components.Controller,
		components.Object,
		components.Slot,
	)
	Match = newArchetype(
		components.Match,
		components.Space,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	e := w.Entry(w.Create(
		append(a.components, cs...)...,
	))
	return e
}
