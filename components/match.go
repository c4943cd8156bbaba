package components

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/doomerang-brawl/assets"
	"github.com/automoto/doomerang-brawl/hitbox"
)

// SlotStats tracks one slot's contact statistics over a match.
type SlotStats struct {
	Slot         int
	ContactTicks int // ticks spent touching the opponent
	Strikes      int // contacts that began while this slot was punching or kicking
}

// MatchData stores the running match.
// This is a singleton component - only one match exists per world.
type MatchData struct {
	Tick     uint64
	Stage    *assets.StageData
	Contacts []hitbox.Contact // last tick's contacts, A is slot 0
	Stats    []SlotStats      // indexed by slot
}

var Match = donburi.NewComponentType[MatchData]()

// GetSlotStats returns the stats of a slot, creating them if needed.
func (m *MatchData) GetSlotStats(slot int) *SlotStats {
	for len(m.Stats) <= slot {
		m.Stats = append(m.Stats, SlotStats{Slot: len(m.Stats)})
	}
	return &m.Stats[slot]
}

// RecordContacts stores a tick's contacts. A strike is credited when the
// fighters start touching while the slot's attack is out.
func (m *MatchData) RecordContacts(contacts []hitbox.Contact, striking [2]bool) {
	started := len(contacts) > 0 && len(m.Contacts) == 0
	m.Contacts = contacts
	if len(contacts) == 0 {
		return
	}
	for slot, s := range striking {
		stats := m.GetSlotStats(slot)
		stats.ContactTicks++
		if started && s {
			stats.Strikes++
		}
	}
}

// GetLeader returns the slot with the most strikes (-1 for tie, -2 for no
// stats).
func (m *MatchData) GetLeader() int {
	if len(m.Stats) == 0 {
		return -2
	}

	maxStrikes := -1
	leader := -1
	tied := false

	for _, s := range m.Stats {
		if s.Strikes > maxStrikes {
			maxStrikes = s.Strikes
			leader = s.Slot
			tied = false
		} else if s.Strikes == maxStrikes {
			tied = true
		}
	}

	if tied {
		return -1
	}
	return leader
}
