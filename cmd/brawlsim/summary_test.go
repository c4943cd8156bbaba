package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/automoto/doomerang-brawl/assets"
	"github.com/automoto/doomerang-brawl/fighter"
	"github.com/automoto/doomerang-brawl/hitbox"
	"github.com/automoto/doomerang-brawl/match"
	"github.com/automoto/doomerang-brawl/replay"
	"github.com/automoto/doomerang-brawl/shared/messages"
	"github.com/automoto/doomerang-brawl/shared/simconfig"
)

func TestDescribeContacts(t *testing.T) {
	assert.Equal(t, "", describeContacts(nil))
	assert.Equal(t, "P1 RightLeg touches P2 Body, P1 Body touches P2 Body",
		describeContacts([]hitbox.Contact{{A: hitbox.RightLeg, B: hitbox.Body}, {A: hitbox.Body, B: hitbox.Body}}))
}

func TestControllers(t *testing.T) {
	ctrls, err := controllers(assets.FS(), "easy", "hard", 1, 2, "")
	require.NoError(t, err)
	assert.IsType(t, &fighter.Bot{}, ctrls[0])
	assert.IsType(t, &fighter.Bot{}, ctrls[1])

	ctrls, err = controllers(assets.FS(), "easy", "hard", 1, 2, assets.DefaultScriptPath)
	require.NoError(t, err)
	assert.IsType(t, &fighter.Scripted{}, ctrls[1])

	_, err = controllers(assets.FS(), "brutal", "hard", 1, 2, "")
	assert.Error(t, err)
	_, err = controllers(assets.FS(), "easy", "hard", 1, 2, "scripts/missing.lua")
	assert.Error(t, err)
}

func TestSummary(t *testing.T) {
	fighters := [match.Slots]string{assets.DefaultFighterDir, assets.DefaultFighterDir}
	sim, err := newSimulation(assets.FS(), assets.DefaultStagePath, fighters, [match.Slots]fighter.Controller{})
	require.NoError(t, err)

	var last match.TickResult
	for i := uint32(0); i < 10; i++ {
		last = sim.Tick(messages.NewTickInput(i, simconfig.FrameTimeMs))
	}

	out, err := summary(sim, last)
	require.NoError(t, err)
	require.True(t, gjson.ValidBytes(out), string(out))

	doc := gjson.ParseBytes(out)
	assert.Equal(t, "dojo", doc.Get("stage").String())
	assert.Equal(t, int64(10), doc.Get("ticks").Int())
	assert.Equal(t, "P1", doc.Get("combatants.0.name").String())
	assert.Equal(t, 620.0, doc.Get("combatants.1.x").Float())
	assert.Equal(t, int64(0), doc.Get("stats.1.strikes").Int())
	assert.Equal(t, int64(-1), doc.Get("leader").Int())
}

func TestRecordThenReplayMatches(t *testing.T) {
	fsys := assets.FS()
	fighters := [match.Slots]string{assets.DefaultFighterDir, assets.DefaultFighterDir}
	ctrls, err := controllers(fsys, "hard", "hard", 3, 4, "")
	require.NoError(t, err)

	rec := replay.NewRecorder(assets.DefaultStagePath, fighters)
	sim, err := newSimulation(fsys, assets.DefaultStagePath, fighters, ctrls, match.WithRecorder(rec))
	require.NoError(t, err)

	var last match.TickResult
	for i := uint32(0); i < 240; i++ {
		last = sim.Tick(messages.NewTickInput(i, simconfig.FrameTimeMs))
	}

	path := t.TempDir() + "/match.replay"
	require.NoError(t, replay.SaveFile(path, rec.Recording()))

	loaded, err := replay.LoadFile(path)
	require.NoError(t, err)
	again, err := newSimulation(fsys, loaded.Stage, loaded.Fighters, [match.Slots]fighter.Controller{})
	require.NoError(t, err)
	got, err := replay.Play(again, loaded)
	require.NoError(t, err)

	assert.Equal(t, last.Combatants, got.Combatants)
	assert.Equal(t, sim.Data().Stats, again.Data().Stats)
}
