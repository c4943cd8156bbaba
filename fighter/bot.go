package fighter

import (
	"math"
	"math/rand"

	"github.com/automoto/doomerang-brawl/shared/simconfig"
)

// BotDifficulty affects reaction time and decision quality
type BotDifficulty int

const (
	BotDifficultyEasy BotDifficulty = iota
	BotDifficultyNormal
	BotDifficultyHard
)

var botDifficultyNames = map[BotDifficulty]string{
	BotDifficultyEasy:   "easy",
	BotDifficultyNormal: "normal",
	BotDifficultyHard:   "hard",
}

func (d BotDifficulty) String() string {
	if name, ok := botDifficultyNames[d]; ok {
		return name
	}
	return "unknown"
}

// ParseBotDifficulty maps "easy", "normal" or "hard" to a difficulty.
func ParseBotDifficulty(s string) (BotDifficulty, bool) {
	for d, name := range botDifficultyNames {
		if name == s {
			return d, true
		}
	}
	return BotDifficultyNormal, false
}

// BotProfile holds tuning values for bot behavior at a specific difficulty
type BotProfile struct {
	ReactionDelay  int     // Ticks between re-evaluations
	AttackRange    float64 // Distance to start attacking
	RunRange       float64 // Distance beyond which the bot runs
	AttackCooldown int     // Ticks between attack attempts
	RetreatTicks   int     // Ticks spent backing off after an attack
	BlockChance    float64 // Chance to block an incoming attack
	JumpChance     float64 // Chance per decision to jump while chasing
}

// BotProfiles maps each difficulty to its tuning.
var BotProfiles = map[BotDifficulty]BotProfile{
	BotDifficultyEasy: {
		ReactionDelay:  20,
		AttackRange:    140,
		RunRange:       500,
		AttackCooldown: 45,
		RetreatTicks:   30,
		BlockChance:    0.1,
		JumpChance:     0.05,
	},
	BotDifficultyNormal: {
		ReactionDelay:  10,
		AttackRange:    160,
		RunRange:       400,
		AttackCooldown: 25,
		RetreatTicks:   15,
		BlockChance:    0.35,
		JumpChance:     0.1,
	},
	BotDifficultyHard: {
		ReactionDelay:  3,
		AttackRange:    180,
		RunRange:       300,
		AttackCooldown: 12,
		RetreatTicks:   8,
		BlockChance:    0.7,
		JumpChance:     0.15,
	},
}

// BotState is the high-level plan of a bot.
type BotState int

const (
	BotStateIdle BotState = iota
	BotStateChase
	BotStateAttack
	BotStateRetreat
)

// Bot is a computer opponent. It chases, attacks when in range, blocks some
// incoming attacks and backs off after striking. All randomness comes from
// its own seeded source so a match is reproducible.
type Bot struct {
	Profile BotProfile
	State   BotState

	rng            *rand.Rand
	decisionTimer  int
	attackCooldown int
	retreatTimer   int
	plan           simconfig.Intent
}

// NewBot creates a bot with the profile for d.
func NewBot(d BotDifficulty, seed int64) *Bot {
	return &Bot{
		Profile: BotProfiles[d],
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Decide implements Controller.
func (b *Bot) Decide(self, opponent *Combatant) simconfig.Intent {
	if b.attackCooldown > 0 {
		b.attackCooldown--
	}
	if b.retreatTimer > 0 {
		b.retreatTimer--
	}
	if opponent == nil {
		b.State = BotStateIdle
		return simconfig.IntentNone
	}

	dx := centerX(opponent) - centerX(self)
	dist := math.Abs(dx)
	toward, away := simconfig.IntentRight, simconfig.IntentLeft
	if dx < 0 {
		toward, away = away, toward
	}

	// React to an incoming attack regardless of the decision timer.
	if self.Action == simconfig.ActionNone && isAttacking(opponent) && dist < b.Profile.AttackRange {
		if b.rng.Float64() < b.Profile.BlockChance {
			return simconfig.IntentBlock
		}
	}

	if b.decisionTimer > 0 {
		b.decisionTimer--
		return b.plan
	}
	b.decisionTimer = b.Profile.ReactionDelay
	b.updateState(dist)

	switch b.State {
	case BotStateRetreat:
		b.plan = away
	case BotStateAttack:
		// Strikes are pressed for a single tick; only turning is held.
		intent := b.attack(self, toward)
		b.plan = intent &^ (simconfig.IntentPunch | simconfig.IntentKick)
		return intent
	case BotStateChase:
		b.plan = toward
		if dist > b.Profile.RunRange {
			b.plan |= simconfig.IntentRun
		}
		if self.State != simconfig.AnimationJump && b.rng.Float64() < b.Profile.JumpChance {
			b.plan |= simconfig.IntentJump
		}
	default:
		b.plan = simconfig.IntentNone
	}
	return b.plan
}

func (b *Bot) updateState(dist float64) {
	switch {
	case b.retreatTimer > 0:
		b.State = BotStateRetreat
	case dist < b.Profile.AttackRange:
		b.State = BotStateAttack
	default:
		b.State = BotStateChase
	}
}

func (b *Bot) attack(self *Combatant, toward simconfig.Intent) simconfig.Intent {
	// Turn to face the opponent before striking.
	if facingIntent(self.Facing()) != toward {
		return toward
	}
	if b.attackCooldown > 0 || self.Action != simconfig.ActionNone {
		return simconfig.IntentNone
	}
	b.attackCooldown = b.Profile.AttackCooldown
	b.retreatTimer = b.Profile.RetreatTicks + b.Profile.ReactionDelay
	if b.rng.Intn(2) == 0 {
		return simconfig.IntentPunch
	}
	return simconfig.IntentKick
}

func centerX(c *Combatant) float64 {
	return c.Location().X + c.FrameWidth()/2
}

func isAttacking(c *Combatant) bool {
	return c.Action == simconfig.ActionPunch || c.Action == simconfig.ActionKick
}

func facingIntent(f simconfig.Facing) simconfig.Intent {
	if f == simconfig.FacingLeft {
		return simconfig.IntentLeft
	}
	return simconfig.IntentRight
}
