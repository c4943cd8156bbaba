package fighter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automoto/doomerang-brawl/hitbox"
	"github.com/automoto/doomerang-brawl/shared/gamemath"
	"github.com/automoto/doomerang-brawl/shared/simconfig"
)

const tickMs = 16.0

func testFrame(t *testing.T) Frame {
	t.Helper()
	rects := make(map[hitbox.BodyPart]hitbox.AuthoredRect)
	for part := hitbox.LeftLeg; part <= hitbox.Head; part++ {
		rects[part] = hitbox.AuthoredRect{Rect: hitbox.Rect{X: float64(part) * 20, Y: 100, Width: 20, Height: 40}}
	}
	fb, err := hitbox.NewFrameBounds(1, 1, rects)
	require.NoError(t, err)
	return Frame{Width: 300, Height: 400, Bounds: fb}
}

func testFrameSets(t *testing.T, frames int) map[simconfig.FrameSetID]FrameSet {
	t.Helper()
	sets := make(map[simconfig.FrameSetID]FrameSet)
	for _, id := range simconfig.AllFrameSets {
		var fs FrameSet
		for i := 0; i < frames; i++ {
			fs.Frames = append(fs.Frames, testFrame(t))
		}
		sets[id] = fs
	}
	return sets
}

func newTestCombatant(t *testing.T, opts ...Option) *Combatant {
	t.Helper()
	stage := DefaultStage()
	c, err := New("test", gamemath.Point{X: 300, Y: stage.Ground}, testFrameSets(t, 3), opts...)
	require.NoError(t, err)
	return c
}

func TestNewRequiresEveryFrameSet(t *testing.T) {
	sets := testFrameSets(t, 1)
	delete(sets, simconfig.FrameSetKicking)
	_, err := New("aaron", gamemath.Point{}, sets)
	assert.ErrorIs(t, err, ErrMissingFrameSet)

	sets = testFrameSets(t, 1)
	sets[simconfig.FrameSetIdle] = FrameSet{}
	_, err = New("aaron", gamemath.Point{}, sets)
	assert.ErrorIs(t, err, ErrMissingFrameSet)

	sets = testFrameSets(t, 1)
	sets[simconfig.FrameSetRunning] = FrameSet{Frames: []Frame{{Width: 300}}}
	_, err = New("aaron", gamemath.Point{}, sets)
	assert.ErrorIs(t, err, ErrMissingFrameSet)
}

func TestNewDefaults(t *testing.T) {
	c := newTestCombatant(t)
	assert.Equal(t, simconfig.AnimationIdle, c.State)
	assert.Equal(t, simconfig.ActionNone, c.Action)
	assert.Equal(t, simconfig.ModifierNone, c.Modifier)
	assert.Equal(t, simconfig.FacingLeft, c.Facing())
	assert.Equal(t, simconfig.FrameSetIdle, c.CurrentFrameSet)
	assert.Equal(t, simconfig.DefaultTunables(), c.Tunables)
	assert.Equal(t, 300.0, c.FrameWidth())

	custom := simconfig.DefaultTunables()
	custom.JumpPower = 10
	c = newTestCombatant(t, WithTunables(custom), WithFacing(simconfig.FacingRight))
	assert.Equal(t, 10.0, c.Tunables.JumpPower)
	assert.Equal(t, simconfig.FacingRight, c.Facing())
}

func TestUpdateStateJumpStart(t *testing.T) {
	c := newTestCombatant(t)
	c.CurrentFrame = 2
	c.Modifier = simconfig.ModifierCrouch

	UpdateState(c, simconfig.IntentJump)

	assert.Equal(t, simconfig.AnimationJump, c.State)
	assert.Equal(t, -c.Tunables.JumpPower, c.VelY)
	assert.Equal(t, 0, c.CurrentFrame)
	assert.Equal(t, simconfig.ModifierNone, c.Modifier)
}

func TestAdvanceJumpFromIdle(t *testing.T) {
	c := newTestCombatant(t)
	stage := DefaultStage()

	Advance(c, stage, tickMs, simconfig.IntentJump)

	dt := tickMs / 1000
	assert.Equal(t, simconfig.AnimationJump, c.State)
	assert.InDelta(t, -c.Tunables.JumpPower+simconfig.Gravity*dt, c.VelY, 1e-9)
	assert.Equal(t, 0, c.CurrentFrame)
	assert.Equal(t, simconfig.FrameSetJumping, c.CurrentFrameSet)
	assert.Less(t, c.Location().Y, stage.Ground)
}

func TestAdvanceJumpIgnoredWhileAirborne(t *testing.T) {
	c := newTestCombatant(t)
	stage := DefaultStage()
	Advance(c, stage, tickMs, simconfig.IntentJump)
	velY := c.VelY

	Advance(c, stage, tickMs, simconfig.IntentJump)
	assert.InDelta(t, velY+simconfig.Gravity*tickMs/1000, c.VelY, 1e-9)
}

func TestAdvanceLeftRun(t *testing.T) {
	c := newTestCombatant(t, WithFacing(simconfig.FacingRight))

	Advance(c, DefaultStage(), tickMs, simconfig.IntentLeft|simconfig.IntentRun)

	assert.Equal(t, -c.Tunables.RunModifier*c.Tunables.MovementSpeed, c.VelX)
	assert.Equal(t, simconfig.FacingLeft, c.Facing())
	assert.Equal(t, simconfig.AnimationMove, c.State)
	assert.Equal(t, simconfig.ModifierRun, c.Modifier)
	assert.Equal(t, simconfig.FrameSetRunning, c.CurrentFrameSet)
	assert.InDelta(t, 300-400*tickMs/1000, c.Location().X, 1e-9)
}

func TestAdvanceStopFromMove(t *testing.T) {
	c := newTestCombatant(t)
	stage := DefaultStage()

	Advance(c, stage, tickMs, simconfig.IntentRight)
	require.Equal(t, simconfig.AnimationMove, c.State)
	require.Equal(t, simconfig.FrameSetWalking, c.CurrentFrameSet)

	Advance(c, stage, tickMs, simconfig.IntentNone)
	assert.Equal(t, simconfig.AnimationIdle, c.State)
	assert.Equal(t, 0.0, c.VelX)
	assert.Equal(t, simconfig.FacingRight, c.Facing(), "facing is sticky")
	assert.Equal(t, simconfig.FrameSetIdle, c.CurrentFrameSet)
}

func TestUpdateStateHorizontal(t *testing.T) {
	speed := simconfig.DefaultTunables().MovementSpeed
	tests := []struct {
		name       string
		intent     simconfig.Intent
		wantVelX   float64
		wantFacing simconfig.Facing
		wantMod    simconfig.MovementModifier
	}{
		{"right", simconfig.IntentRight, speed, simconfig.FacingRight, simconfig.ModifierNone},
		{"left wins over right", simconfig.IntentLeft | simconfig.IntentRight, -speed, simconfig.FacingLeft, simconfig.ModifierNone},
		{"crouch walk", simconfig.IntentRight | simconfig.IntentCrouch, speed * 0.5, simconfig.FacingRight, simconfig.ModifierCrouch},
		{"crouch beats run", simconfig.IntentRight | simconfig.IntentCrouch | simconfig.IntentRun, speed * 0.5, simconfig.FacingRight, simconfig.ModifierCrouch},
		{"run", simconfig.IntentRight | simconfig.IntentRun, speed * 2, simconfig.FacingRight, simconfig.ModifierRun},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCombatant(t)
			UpdateState(c, tt.intent)
			assert.Equal(t, tt.wantVelX, c.VelX)
			assert.Equal(t, tt.wantFacing, c.Facing())
			assert.Equal(t, tt.wantMod, c.Modifier)
			assert.Equal(t, simconfig.AnimationMove, c.State)
		})
	}
}

func TestUpdateStateCrouchSuppressedWhileJumping(t *testing.T) {
	c := newTestCombatant(t)
	UpdateState(c, simconfig.IntentJump|simconfig.IntentCrouch)
	assert.Equal(t, simconfig.ModifierNone, c.Modifier)

	UpdateState(c, simconfig.IntentCrouch|simconfig.IntentRun|simconfig.IntentRight)
	assert.Equal(t, simconfig.ModifierRun, c.Modifier)
	assert.Equal(t, simconfig.AnimationJump, c.State, "moving in the air keeps the jump state")
	assert.Equal(t, 2*c.Tunables.MovementSpeed, c.VelX)
}

func TestUpdateStateJumpKeepsRun(t *testing.T) {
	c := newTestCombatant(t)
	UpdateState(c, simconfig.IntentRun|simconfig.IntentRight)
	require.Equal(t, simconfig.ModifierRun, c.Modifier)

	UpdateState(c, simconfig.IntentJump|simconfig.IntentRun|simconfig.IntentRight)
	assert.Equal(t, simconfig.AnimationJump, c.State)
	assert.Equal(t, simconfig.ModifierRun, c.Modifier)
}

func TestUpdateStateActionPriority(t *testing.T) {
	tests := []struct {
		intent simconfig.Intent
		want   simconfig.Action
	}{
		{simconfig.IntentPunch, simconfig.ActionPunch},
		{simconfig.IntentKick | simconfig.IntentPunch, simconfig.ActionKick},
		{simconfig.IntentBlock | simconfig.IntentKick | simconfig.IntentPunch, simconfig.ActionBlock},
		{simconfig.IntentRun, simconfig.ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.intent.String(), func(t *testing.T) {
			c := newTestCombatant(t)
			c.ActionFrame = 3
			UpdateState(c, tt.intent)
			assert.Equal(t, tt.want, c.Action)
			if tt.want != simconfig.ActionNone {
				assert.Equal(t, 0, c.ActionFrame)
			}
		})
	}
}

func TestUpdateStateActionNotInterrupted(t *testing.T) {
	c := newTestCombatant(t)
	UpdateState(c, simconfig.IntentPunch)
	c.ActionFrame = 2
	UpdateState(c, simconfig.IntentBlock)
	assert.Equal(t, simconfig.ActionPunch, c.Action)
	assert.Equal(t, 2, c.ActionFrame)
}

func TestUpdatePositionLandsOnGround(t *testing.T) {
	stage := DefaultStage()
	c := newTestCombatant(t)
	c.State = simconfig.AnimationJump
	c.SetLocation(gamemath.Point{X: 300, Y: stage.Ground - 5})
	c.VelY = 500

	UpdatePosition(c, stage, tickMs)

	assert.Equal(t, stage.Ground, c.Location().Y)
	assert.Equal(t, 0.0, c.VelY)
	assert.Equal(t, simconfig.AnimationIdle, c.State)
}

func TestUpdatePositionAirborne(t *testing.T) {
	stage := DefaultStage()
	c := newTestCombatant(t)
	c.State = simconfig.AnimationJump
	c.SetLocation(gamemath.Point{X: 300, Y: 200})
	c.VelY = -100

	UpdatePosition(c, stage, 100)

	assert.InDelta(t, 0.0, c.VelY, 1e-9)
	assert.InDelta(t, 200.0, c.Location().Y, 1e-9)
	assert.Equal(t, simconfig.AnimationJump, c.State)
}

func TestUpdatePositionGroundedDoesNotFall(t *testing.T) {
	stage := DefaultStage()
	c := newTestCombatant(t)
	c.SetLocation(gamemath.Point{X: 300, Y: 100})

	UpdatePosition(c, stage, 500)
	assert.Equal(t, 100.0, c.Location().Y)
	assert.Equal(t, 0.0, c.VelY)
}

func TestUpdatePositionClampsToStage(t *testing.T) {
	stage := DefaultStage()
	c := newTestCombatant(t)

	c.VelX = -1e6
	UpdatePosition(c, stage, tickMs)
	assert.Equal(t, 0.0, c.Location().X)

	c.VelX = 1e6
	UpdatePosition(c, stage, tickMs)
	assert.Equal(t, stage.Width, c.Location().X)

	c.VelY = -1e6
	UpdatePosition(c, stage, tickMs)
	assert.Equal(t, 0.0, c.Location().Y)
}

func TestAdvanceKickLifecycle(t *testing.T) {
	c := newTestCombatant(t)
	stage := DefaultStage()
	half := simconfig.FrameTimeMs / 2

	Advance(c, stage, half, simconfig.IntentKick)
	require.Equal(t, simconfig.ActionKick, c.Action)
	require.Equal(t, simconfig.FrameSetKicking, c.CurrentFrameSet)

	cadenceTicks := 0
	for i := 0; i < 100 && c.Action != simconfig.ActionNone; i++ {
		before := c.ActionFrame
		Advance(c, stage, half, simconfig.IntentNone)
		if c.ActionFrame != before || c.Action == simconfig.ActionNone {
			cadenceTicks++
		}
	}

	assert.Equal(t, 7, cadenceTicks)
	assert.Equal(t, simconfig.ActionNone, c.Action)
	assert.Equal(t, 0, c.ActionFrame)

	Advance(c, stage, half, simconfig.IntentNone)
	assert.Equal(t, simconfig.FrameSetIdle, c.CurrentFrameSet)
}

func TestAdvanceKickClearsAfterSevenFrames(t *testing.T) {
	c := newTestCombatant(t)
	stage := DefaultStage()

	Advance(c, stage, simconfig.FrameTimeMs, simconfig.IntentKick)
	assert.Equal(t, 1, c.ActionFrame)
	for i := 2; i <= 6; i++ {
		Advance(c, stage, simconfig.FrameTimeMs, simconfig.IntentNone)
		assert.Equal(t, simconfig.ActionKick, c.Action)
		assert.Equal(t, i, c.ActionFrame)
	}
	Advance(c, stage, simconfig.FrameTimeMs, simconfig.IntentNone)
	assert.Equal(t, simconfig.ActionNone, c.Action)
	assert.Equal(t, 0, c.ActionFrame)
}

func TestAdvanceFrameCadenceWraps(t *testing.T) {
	c := newTestCombatant(t)
	stage := DefaultStage()

	Advance(c, stage, simconfig.FrameTimeMs-1, simconfig.IntentNone)
	assert.Equal(t, 0, c.CurrentFrame, "below the frame time")

	Advance(c, stage, 1, simconfig.IntentNone)
	assert.Equal(t, 1, c.CurrentFrame)
	assert.Equal(t, 0.0, c.FrameElapsed)

	Advance(c, stage, simconfig.FrameTimeMs, simconfig.IntentNone)
	assert.Equal(t, 2, c.CurrentFrame)
	Advance(c, stage, simconfig.FrameTimeMs, simconfig.IntentNone)
	assert.Equal(t, 0, c.CurrentFrame, "wraps at the frameset length")
}

func TestFrameSetSwitchResetsFrame(t *testing.T) {
	c := newTestCombatant(t)
	c.CurrentFrame = 2

	Advance(c, DefaultStage(), 1, simconfig.IntentRight)
	assert.Equal(t, simconfig.FrameSetWalking, c.CurrentFrameSet)
	assert.Equal(t, 0, c.CurrentFrame)
}

func TestSelectFrameSet(t *testing.T) {
	tests := []struct {
		name     string
		state    simconfig.AnimationState
		action   simconfig.Action
		modifier simconfig.MovementModifier
		want     simconfig.FrameSetID
	}{
		{"idle", simconfig.AnimationIdle, simconfig.ActionNone, simconfig.ModifierNone, simconfig.FrameSetIdle},
		{"walk", simconfig.AnimationMove, simconfig.ActionNone, simconfig.ModifierNone, simconfig.FrameSetWalking},
		{"run", simconfig.AnimationMove, simconfig.ActionNone, simconfig.ModifierRun, simconfig.FrameSetRunning},
		{"run held while idle", simconfig.AnimationIdle, simconfig.ActionNone, simconfig.ModifierRun, simconfig.FrameSetIdle},
		{"crouch", simconfig.AnimationIdle, simconfig.ActionNone, simconfig.ModifierCrouch, simconfig.FrameSetCrouching},
		{"jump", simconfig.AnimationJump, simconfig.ActionNone, simconfig.ModifierRun, simconfig.FrameSetJumping},
		{"punch in the air", simconfig.AnimationJump, simconfig.ActionPunch, simconfig.ModifierNone, simconfig.FrameSetPunching},
		{"kick", simconfig.AnimationMove, simconfig.ActionKick, simconfig.ModifierNone, simconfig.FrameSetKicking},
		{"block", simconfig.AnimationIdle, simconfig.ActionBlock, simconfig.ModifierCrouch, simconfig.FrameSetBlocking},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCombatant(t)
			c.State, c.Action, c.Modifier = tt.state, tt.action, tt.modifier
			assert.Equal(t, tt.want, SelectFrameSet(c))
		})
	}
}

func TestCurrentPosePanicsOnInvalidFrame(t *testing.T) {
	c := newTestCombatant(t)
	c.CurrentFrame = 3
	assert.Panics(t, func() { c.CurrentPose() })

	c.CurrentFrame = 0
	assert.NotPanics(t, func() { c.CurrentPose() })
}

func TestPosedCollision(t *testing.T) {
	a := newTestCombatant(t, WithFacing(simconfig.FacingRight))
	b := newTestCombatant(t, WithFacing(simconfig.FacingRight))

	contacts := hitbox.CheckCollisions(a.Posed(), b.Posed(), hitbox.FullPairs)
	assert.NotEmpty(t, contacts)

	b.SetLocation(gamemath.Point{X: 900, Y: a.Location().Y})
	assert.Empty(t, hitbox.CheckCollisions(a.Posed(), b.Posed(), hitbox.FullPairs))
	assert.False(t, a.CurrentPose().Colliding())
}

func TestSnapshot(t *testing.T) {
	c := newTestCombatant(t)
	Advance(c, DefaultStage(), tickMs, simconfig.IntentRight|simconfig.IntentPunch)

	s := c.Snapshot()
	assert.Equal(t, "test", s.Name)
	assert.Equal(t, simconfig.ActionPunch, s.Action)
	assert.Equal(t, simconfig.FacingRight, s.Facing)
	assert.Equal(t, simconfig.FrameSetPunching, s.FrameSet)
	assert.Equal(t, c.Location().X, s.X)
}
