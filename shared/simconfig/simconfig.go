// Package simconfig defines the lightweight enums and tunable defaults shared
// by the simulation kernel, the headless runner and the viewer. It must have
// zero dependencies on ebiten or any graphics library so the kernel stays
// headless.
package simconfig

// Intent is a bitmask of the inputs held by one combatant for one tick.
// Bits are independent and may be combined freely.
type Intent uint16

const (
	IntentNone   Intent = 0x0000
	IntentLeft   Intent = 0x0001
	IntentRight  Intent = 0x0002
	IntentJump   Intent = 0x0004
	IntentCrouch Intent = 0x0008
	IntentPunch  Intent = 0x0010
	IntentKick   Intent = 0x0020
	IntentBlock  Intent = 0x0040
	IntentRun    Intent = 0x0080

	// IntentMoving is set when either horizontal direction is held.
	IntentMoving = IntentLeft | IntentRight
)

// Has reports whether any bit of flag is held.
func (i Intent) Has(flag Intent) bool {
	return i&flag != 0
}

var intentNames = []struct {
	bit  Intent
	name string
}{
	{IntentLeft, "Left"},
	{IntentRight, "Right"},
	{IntentJump, "Jump"},
	{IntentCrouch, "Crouch"},
	{IntentPunch, "Punch"},
	{IntentKick, "Kick"},
	{IntentBlock, "Block"},
	{IntentRun, "Run"},
}

func (i Intent) String() string {
	if i == IntentNone {
		return "None"
	}
	s := ""
	for _, n := range intentNames {
		if i&n.bit == 0 {
			continue
		}
		if s != "" {
			s += "|"
		}
		s += n.name
	}
	return s
}

// ParseIntent maps a single intent name (as produced by String) to its bit.
func ParseIntent(name string) (Intent, bool) {
	for _, n := range intentNames {
		if n.name == name {
			return n.bit, true
		}
	}
	return IntentNone, false
}

// AnimationState is the coarse movement state of a combatant.
type AnimationState int

const (
	AnimationIdle AnimationState = iota
	AnimationMove
	AnimationJump
)

var animationStateNames = map[AnimationState]string{
	AnimationIdle: "Idle",
	AnimationMove: "Move",
	AnimationJump: "Jump",
}

func (s AnimationState) String() string {
	if name, ok := animationStateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Action is a timed attack or defense. Only one runs at a time.
type Action int

const (
	ActionNone Action = iota
	ActionPunch
	ActionKick
	ActionBlock
	// ActionProjectile is reserved; nothing starts it yet.
	ActionProjectile
)

var actionNames = map[Action]string{
	ActionNone:       "None",
	ActionPunch:      "Punch",
	ActionKick:       "Kick",
	ActionBlock:      "Block",
	ActionProjectile: "Projectile",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAction maps an action name (as produced by String) to the action.
func ParseAction(name string) (Action, bool) {
	for a, n := range actionNames {
		if n == name {
			return a, true
		}
	}
	return ActionNone, false
}

// MovementModifier scales horizontal speed. Crouch and Run are exclusive.
type MovementModifier int

const (
	ModifierNone MovementModifier = iota
	ModifierRun
	ModifierCrouch
)

var modifierNames = map[MovementModifier]string{
	ModifierNone:   "None",
	ModifierRun:    "Run",
	ModifierCrouch: "Crouch",
}

func (m MovementModifier) String() string {
	if name, ok := modifierNames[m]; ok {
		return name
	}
	return "unknown"
}

// Facing is the direction the sprite is drawn in. Left-facing sprites are
// mirrored horizontally within their frame.
type Facing int

const (
	FacingLeft Facing = iota
	FacingRight
)

func (f Facing) String() string {
	if f == FacingLeft {
		return "Left"
	}
	return "Right"
}

// Sign returns -1 for Left and 1 for Right.
func (f Facing) Sign() float64 {
	if f == FacingLeft {
		return -1
	}
	return 1
}

// FrameSetID names an animation frameset of a fighter.
type FrameSetID string

const (
	FrameSetIdle      FrameSetID = "Idle"
	FrameSetWalking   FrameSetID = "Walking"
	FrameSetRunning   FrameSetID = "Running"
	FrameSetJumping   FrameSetID = "Jumping"
	FrameSetPunching  FrameSetID = "Punching"
	FrameSetKicking   FrameSetID = "Kicking"
	FrameSetBlocking  FrameSetID = "Blocking"
	FrameSetCrouching FrameSetID = "Crouching"
)

// AllFrameSets lists every frameset a fighter must provide.
var AllFrameSets = []FrameSetID{
	FrameSetIdle,
	FrameSetWalking,
	FrameSetRunning,
	FrameSetJumping,
	FrameSetPunching,
	FrameSetKicking,
	FrameSetBlocking,
	FrameSetCrouching,
}

// Valid reports whether id names a known frameset.
func (id FrameSetID) Valid() bool {
	for _, known := range AllFrameSets {
		if id == known {
			return true
		}
	}
	return false
}
