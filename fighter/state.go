package fighter

import "github.com/automoto/doomerang-brawl/shared/simconfig"

// UpdateState applies one tick of intent to the discrete state. The rules
// run in a fixed order and later rules see the results of earlier ones.
func UpdateState(c *Combatant, intent simconfig.Intent) {
	// Jump start. Clearing the modifier here lets a held Run be re-applied
	// below in the same tick.
	if intent.Has(simconfig.IntentJump) && c.State != simconfig.AnimationJump {
		c.Modifier = simconfig.ModifierNone
		c.State = simconfig.AnimationJump
		c.CurrentFrame = 0
		c.VelY = -c.Tunables.JumpPower
	}

	// Only one action at a time. Block beats Kick beats Punch.
	if c.Action == simconfig.ActionNone {
		switch {
		case intent.Has(simconfig.IntentBlock):
			c.startAction(simconfig.ActionBlock)
		case intent.Has(simconfig.IntentKick):
			c.startAction(simconfig.ActionKick)
		case intent.Has(simconfig.IntentPunch):
			c.startAction(simconfig.ActionPunch)
		}
	}

	jumping := c.State == simconfig.AnimationJump
	switch {
	case intent.Has(simconfig.IntentCrouch) && !jumping:
		c.Modifier = simconfig.ModifierCrouch
	case intent.Has(simconfig.IntentRun):
		c.Modifier = simconfig.ModifierRun
	default:
		c.Modifier = simconfig.ModifierNone
	}

	if intent.Has(simconfig.IntentMoving) {
		if !jumping {
			c.State = simconfig.AnimationMove
		}
		direction := 1.0
		if intent.Has(simconfig.IntentLeft) {
			direction = -1
		}
		c.VelX = direction * c.speedMultiplier() * c.Tunables.MovementSpeed
	} else {
		c.VelX = 0
		if !jumping {
			c.State = simconfig.AnimationIdle
		}
	}

	// Facing is sticky while no direction is held.
	if intent.Has(simconfig.IntentLeft) {
		c.facing = simconfig.FacingLeft
	} else if intent.Has(simconfig.IntentRight) {
		c.facing = simconfig.FacingRight
	}
}

func (c *Combatant) startAction(a simconfig.Action) {
	c.Action = a
	c.ActionFrame = 0
}

func (c *Combatant) speedMultiplier() float64 {
	switch c.Modifier {
	case simconfig.ModifierCrouch:
		return c.Tunables.CrouchModifier
	case simconfig.ModifierRun:
		return c.Tunables.RunModifier
	default:
		return 1
	}
}
