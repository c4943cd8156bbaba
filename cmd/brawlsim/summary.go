package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/tidwall/sjson"

	"github.com/automoto/doomerang-brawl/hitbox"
	"github.com/automoto/doomerang-brawl/match"
)

// contactLogger logs the contact list whenever it changes between ticks.
type contactLogger struct {
	last string
}

func (l *contactLogger) observe(res match.TickResult) {
	desc := describeContacts(res.Contacts)
	if desc == l.last {
		return
	}
	l.last = desc
	if desc == "" {
		log.Printf("[brawlsim] tick %d: apart", res.Tick)
		return
	}
	log.Printf("[brawlsim] tick %d: %s", res.Tick, desc)
}

func describeContacts(contacts []hitbox.Contact) string {
	parts := make([]string, len(contacts))
	for i, c := range contacts {
		parts[i] = fmt.Sprintf("P1 %s touches P2 %s", c.A, c.B)
	}
	return strings.Join(parts, ", ")
}

// summary describes the end of a match as JSON.
func summary(sim *match.Simulation, last match.TickResult) ([]byte, error) {
	md := sim.Data()
	out := []byte(`{}`)
	var err error

	set := func(path string, value interface{}) {
		if err != nil {
			return
		}
		out, err = sjson.SetBytes(out, path, value)
	}

	set("stage", md.Stage.Name)
	set("ticks", md.Tick)
	set("combatants", last.Combatants)
	for _, st := range md.Stats {
		set(fmt.Sprintf("stats.%d.slot", st.Slot), st.Slot)
		set(fmt.Sprintf("stats.%d.contactTicks", st.Slot), st.ContactTicks)
		set(fmt.Sprintf("stats.%d.strikes", st.Slot), st.Strikes)
	}
	set("leader", md.GetLeader())
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}
	return out, nil
}
