package replay

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/automoto/doomerang-brawl/assets"
	"github.com/automoto/doomerang-brawl/fighter"
	"github.com/automoto/doomerang-brawl/match"
	"github.com/automoto/doomerang-brawl/shared/messages"
	"github.com/automoto/doomerang-brawl/shared/simconfig"
)

var fighters = [match.Slots]string{assets.DefaultFighterDir, assets.DefaultFighterDir}

func newSim(t *testing.T, ctrls [match.Slots]fighter.Controller, opts ...match.Option) *match.Simulation {
	t.Helper()
	stage, err := assets.LoadDefaultStage()
	require.NoError(t, err)
	fd, err := assets.LoadDefaultFighter()
	require.NoError(t, err)

	sim := match.NewSimulation(stage, opts...)
	for i, ctrl := range ctrls {
		c, err := fd.NewCombatant(fd.Manifest.Name)
		require.NoError(t, err)
		_, err = sim.AddCombatant(c, ctrl)
		require.NoError(t, err, "slot %d", i)
	}
	return sim
}

func snapshots(sim *match.Simulation) []fighter.Snapshot {
	var out []fighter.Snapshot
	for _, c := range sim.Combatants() {
		out = append(out, c.Snapshot())
	}
	return out
}

// recordBotMatch plays two bots against each other for n ticks.
func recordBotMatch(t *testing.T, n int) (*Recording, []fighter.Snapshot) {
	t.Helper()
	rec := NewRecorder(assets.DefaultStagePath, fighters)
	sim := newSim(t, [match.Slots]fighter.Controller{
		fighter.NewBot(fighter.BotDifficultyHard, 1),
		fighter.NewBot(fighter.BotDifficultyNormal, 2),
	}, match.WithRecorder(rec))

	for i := 0; i < n; i++ {
		sim.Tick(messages.NewTickInput(uint32(i), simconfig.FrameTimeMs))
	}
	require.Equal(t, n, rec.Len())
	return rec.Recording(), snapshots(sim)
}

func TestPlayReproducesMatch(t *testing.T) {
	rec, want := recordBotMatch(t, 300)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, rec))
	decoded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, rec, decoded)

	for i := 0; i < 2; i++ {
		sim := newSim(t, [match.Slots]fighter.Controller{})
		last, err := Play(sim, decoded)
		require.NoError(t, err)
		assert.Equal(t, want, snapshots(sim), "playback %d", i)
		assert.Equal(t, want, last.Combatants)
		assert.Equal(t, uint64(300), last.Tick)
	}
}

func TestRecordingIsACopy(t *testing.T) {
	r := NewRecorder("s", fighters)
	r.Record(messages.NewTickInput(0, 1))
	rec := r.Recording()
	r.Record(messages.NewTickInput(1, 1))

	assert.Len(t, rec.Inputs, 1)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, Version, rec.Version)
}

func TestDecodeRejectsOtherVersions(t *testing.T) {
	data, err := msgpack.Marshal(&Recording{Version: Version + 1})
	require.NoError(t, err)

	_, err = Decode(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	_, err = Decode(bytes.NewReader([]byte{0xc1}))
	assert.Error(t, err)
}

func TestPlayErrors(t *testing.T) {
	sim := newSim(t, [match.Slots]fighter.Controller{})
	_, err := Play(sim, &Recording{Version: 0})
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	stage, err := assets.LoadDefaultStage()
	require.NoError(t, err)
	_, err = Play(match.NewSimulation(stage), &Recording{Version: Version})
	assert.Error(t, err)
}

func TestSaveAndLoadFile(t *testing.T) {
	rec, _ := recordBotMatch(t, 10)
	path := filepath.Join(t.TempDir(), "match.replay")

	require.NoError(t, SaveFile(path, rec))
	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, rec, loaded)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
