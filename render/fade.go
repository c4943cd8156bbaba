package render

import (
	"image/color"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// contactFade is the highlight of one body part: full while the part
// collides, then fading out over a fixed time once it stops.
type contactFade struct {
	duration  float32
	colliding bool
	tween     *gween.Tween
	value     float32
}

func (f *contactFade) update(colliding bool, dt float32) float32 {
	switch {
	case colliding:
		f.tween = nil
		f.value = 1
	case f.colliding:
		f.tween = gween.New(1, 0, f.duration, ease.Linear)
		f.value = 1
	case f.tween != nil:
		v, done := f.tween.Update(dt)
		f.value = v
		if done {
			f.tween = nil
			f.value = 0
		}
	}
	f.colliding = colliding
	return f.value
}

// mix blends a toward b by t in [0, 1].
func mix(a, b color.RGBA, t float32) color.RGBA {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	lerp := func(x, y uint8) uint8 {
		return uint8(float32(x) + (float32(y)-float32(x))*t + 0.5)
	}
	return color.RGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: lerp(a.A, b.A)}
}
