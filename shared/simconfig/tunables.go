package simconfig

// Animation cadence and physics constants.
const (
	// AnimationFPS is the rate at which animation frames advance,
	// independent of the tick rate.
	AnimationFPS = 15
	// FrameTimeMs is the time one animation frame is shown.
	FrameTimeMs = 1000.0 / AnimationFPS

	// Gravity is applied to airborne combatants, in world units per second².
	Gravity = 1000.0

	// DefaultFighterWidth is the world width every posed frame is scaled to.
	DefaultFighterWidth = 300.0

	DefaultStageWidth  = 1024.0
	DefaultStageHeight = 576.0
)

// Tunables holds the per-combatant movement and action parameters.
type Tunables struct {
	MovementSpeed  float64        // world units per second
	RunModifier    float64        // multiplier while running
	CrouchModifier float64        // multiplier while crouching
	JumpPower      float64        // initial upward speed of a jump
	ActionFrames   map[Action]int // animation frames each action lasts
}

// DefaultTunables returns a fresh copy of the default tunables.
func DefaultTunables() Tunables {
	return Tunables{
		MovementSpeed:  200,
		RunModifier:    2,
		CrouchModifier: 0.5,
		JumpPower:      750,
		ActionFrames: map[Action]int{
			ActionPunch: 5,
			ActionKick:  7,
			ActionBlock: 1,
		},
	}
}

// Clone returns a deep copy so combatants never share the frame-count map.
func (t Tunables) Clone() Tunables {
	out := t
	out.ActionFrames = make(map[Action]int, len(t.ActionFrames))
	for k, v := range t.ActionFrames {
		out.ActionFrames[k] = v
	}
	return out
}
