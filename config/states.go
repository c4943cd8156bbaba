package config

import "github.com/automoto/doomerang-brawl/shared/simconfig"

// Type aliases so viewer code can stay on config.* names.
type Intent = simconfig.Intent
type AnimationState = simconfig.AnimationState
type Action = simconfig.Action
type Facing = simconfig.Facing

// Re-export intent bits.
const (
	IntentNone   = simconfig.IntentNone
	IntentLeft   = simconfig.IntentLeft
	IntentRight  = simconfig.IntentRight
	IntentJump   = simconfig.IntentJump
	IntentCrouch = simconfig.IntentCrouch
	IntentPunch  = simconfig.IntentPunch
	IntentKick   = simconfig.IntentKick
	IntentBlock  = simconfig.IntentBlock
	IntentRun    = simconfig.IntentRun
)
