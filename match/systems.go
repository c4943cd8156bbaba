package match

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/doomerang-brawl/components"
	"github.com/automoto/doomerang-brawl/fighter"
	"github.com/automoto/doomerang-brawl/hitbox"
	"github.com/automoto/doomerang-brawl/shared/messages"
	"github.com/automoto/doomerang-brawl/shared/simconfig"
	"github.com/automoto/doomerang-brawl/tags"
)

// updateControllers asks every controller for its intent. All of them see
// the combatants as they were at the end of the previous tick.
func updateControllers(s *Simulation, in messages.TickInput) [Slots]simconfig.Intent {
	var intents [Slots]simconfig.Intent
	for slot, entry := range s.slots {
		ctrl := components.Controller.Get(entry)
		if ctrl.Held != nil {
			ctrl.Held.Set(in.Intents[slot])
		}
		intents[slot] = ctrl.Decide(s.Combatant(slot), s.Combatant(1-slot))
	}
	return intents
}

func updateCombatants(s *Simulation, elapsedMs float64, intents [Slots]simconfig.Intent) {
	for slot, entry := range s.slots {
		cd := components.Combatant.Get(entry)
		fighter.Advance(cd.Combatant, cd.Stage, elapsedMs, intents[slot])
	}
}

// updateBroadphase moves each combatant's resolv object over its hitboxes
// and reports whether the two share a cell.
func updateBroadphase(s *Simulation) bool {
	tags.Combatant.Each(s.world, func(e *donburi.Entry) {
		c := components.Combatant.Get(e)
		components.Object.Get(e).Fit(c.WorldAABB(), spaceMargin)
	})
	if len(s.slots) < Slots {
		return false
	}

	a := components.Object.Get(s.slots[0])
	b := components.Object.Get(s.slots[1])
	check := a.Check(0, 0, tags.ResolvCombatant)
	if check == nil {
		return false
	}
	for _, o := range check.Objects {
		if o == b.Object {
			return true
		}
	}
	return false
}

// updateHitboxes runs the narrow phase when the broad phase found the
// combatants close. Otherwise every part is simply cleared, which is what the
// narrow phase would conclude anyway.
func updateHitboxes(s *Simulation, near bool) []hitbox.Contact {
	md := s.Data()
	if !near {
		for _, c := range s.Combatants() {
			c.CurrentPose().Reset()
		}
		md.RecordContacts(nil, [Slots]bool{})
		return nil
	}

	a, b := s.Combatant(0), s.Combatant(1)
	contacts := hitbox.CheckCollisions(a.Posed(), b.Posed(), s.pairs)
	md.RecordContacts(contacts, [Slots]bool{striking(a.Action), striking(b.Action)})
	return contacts
}

func striking(a simconfig.Action) bool {
	return a == simconfig.ActionPunch || a == simconfig.ActionKick
}

func updateRecorder(s *Simulation, in messages.TickInput) {
	if s.recorder != nil {
		s.recorder.Record(in)
	}
}
