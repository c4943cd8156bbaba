package fighter

import (
	"github.com/automoto/doomerang-brawl/shared/gamemath"
	"github.com/automoto/doomerang-brawl/shared/simconfig"
)

// UpdatePosition integrates velocity over elapsedMs. Gravity only acts while
// jumping, and landing is detected on the predicted position so a combatant
// never sinks below the ground line for a frame.
func UpdatePosition(c *Combatant, stage Stage, elapsedMs float64) {
	dt := gamemath.MsToSeconds(elapsedMs)

	if c.State == simconfig.AnimationJump {
		c.VelY += simconfig.Gravity * dt
		predictedY := c.location.Y + c.VelY*dt
		if predictedY >= stage.Ground {
			c.VelY = 0
			c.location.Y = stage.Ground
			c.State = simconfig.AnimationIdle
		}
	}

	c.location.X = gamemath.ClampToRange(c.location.X+c.VelX*dt, 0, stage.Width)
	c.location.Y = gamemath.ClampToRange(c.location.Y+c.VelY*dt, 0, stage.Ground)
}
