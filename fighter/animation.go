package fighter

import "github.com/automoto/doomerang-brawl/shared/simconfig"

// Advance runs one simulation tick for c: state machine, integrator,
// frameset selection and animation cadence, in that order.
func Advance(c *Combatant, stage Stage, elapsedMs float64, intent simconfig.Intent) {
	c.FrameElapsed += elapsedMs

	UpdateState(c, intent)
	UpdatePosition(c, stage, elapsedMs)
	c.setFrameSet(SelectFrameSet(c))
	advanceFrame(c)
}

// SelectFrameSet picks the animation for the current state. Actions take
// precedence over movement.
func SelectFrameSet(c *Combatant) simconfig.FrameSetID {
	switch c.Action {
	case simconfig.ActionBlock:
		return simconfig.FrameSetBlocking
	case simconfig.ActionKick:
		return simconfig.FrameSetKicking
	case simconfig.ActionPunch:
		return simconfig.FrameSetPunching
	}

	switch {
	case c.State == simconfig.AnimationJump:
		return simconfig.FrameSetJumping
	case c.Modifier == simconfig.ModifierCrouch:
		return simconfig.FrameSetCrouching
	case c.State == simconfig.AnimationMove && c.Modifier == simconfig.ModifierRun:
		return simconfig.FrameSetRunning
	case c.State == simconfig.AnimationMove:
		return simconfig.FrameSetWalking
	default:
		return simconfig.FrameSetIdle
	}
}

// setFrameSet switches animation. The new set starts at its first frame so
// the frame index is always valid for the active set.
func (c *Combatant) setFrameSet(id simconfig.FrameSetID) {
	if id == c.CurrentFrameSet {
		return
	}
	c.CurrentFrameSet = id
	c.CurrentFrame = 0
}

func advanceFrame(c *Combatant) {
	if c.FrameElapsed < simconfig.FrameTimeMs {
		return
	}
	c.FrameElapsed = 0

	c.CurrentFrame++
	if c.CurrentFrame >= c.FrameSets[c.CurrentFrameSet].Len() {
		c.CurrentFrame = 0
	}

	if c.Action == simconfig.ActionNone {
		return
	}
	c.ActionFrame++
	if c.ActionFrame >= c.Tunables.ActionFrames[c.Action] {
		c.ActionFrame = 0
		c.Action = simconfig.ActionNone
	}
}
