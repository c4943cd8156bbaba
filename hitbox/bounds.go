// Package hitbox holds the posed hitbox geometry of a fighter and the
// separating-axis test used to decide which body parts of two fighters touch.
package hitbox

import (
	"errors"
	"fmt"
	"strings"

	"github.com/automoto/doomerang-brawl/shared/gamemath"
)

var (
	// ErrDegenerateBounds is returned when an authored rectangle collapses to
	// zero width or height after its transform and scale are applied.
	ErrDegenerateBounds = errors.New("hitbox: degenerate bounds")
	// ErrMissingPart is returned when a frame lacks one of the six body parts.
	ErrMissingPart = errors.New("hitbox: missing body part")
)

// BodyPart identifies one of the six hitboxes of a posed frame.
type BodyPart int

const (
	None BodyPart = iota
	LeftLeg
	RightLeg
	LeftArm
	RightArm
	Body
	Head
)

// NumParts is the number of real body parts in a frame.
const NumParts = 6

var bodyPartNames = map[BodyPart]string{
	None:     "None",
	LeftLeg:  "LeftLeg",
	RightLeg: "RightLeg",
	LeftArm:  "LeftArm",
	RightArm: "RightArm",
	Body:     "Body",
	Head:     "Head",
}

func (p BodyPart) String() string {
	if name, ok := bodyPartNames[p]; ok {
		return name
	}
	return "unknown"
}

// ParseBodyPart accepts "LeftLeg" as well as the lower-case ids used in
// bounds files ("leftleg").
func ParseBodyPart(s string) (BodyPart, bool) {
	for part, name := range bodyPartNames {
		if part != None && strings.EqualFold(name, s) {
			return part, true
		}
	}
	return None, false
}

// Rect is an authored rectangle in artwork units.
type Rect struct {
	X, Y, Width, Height float64
}

// AuthoredRect is a rectangle plus the optional transform it was drawn with.
type AuthoredRect struct {
	Rect      Rect
	Transform *gamemath.Affine
}

// Bounds is a single oriented hitbox. The geometry is computed once from the
// authored rectangle and is frame-local: it becomes world geometry only when
// projected through its owner (see WorldVertices).
//
// Only rectangles are supported. Opposite edges are parallel, so the two
// normals are the only separating axes the box contributes.
type Bounds struct {
	Part      BodyPart
	Rect      Rect
	Transform *gamemath.Affine

	Vertices [4]gamemath.Point // TL, TR, BR, BL after transform and scale
	Normal1  gamemath.Vector   // unit normal of edge 0→1
	Normal2  gamemath.Vector   // unit normal of edge 1→2

	CollisionStatus bool
	CollidingPart   BodyPart
}

// NewBounds builds the frame-local geometry of part. A nil transform means
// identity.
func NewBounds(part BodyPart, r Rect, transform *gamemath.Affine, xScale, yScale float64) (*Bounds, error) {
	corners := [4]gamemath.Point{
		{X: r.X, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y + r.Height},
		{X: r.X, Y: r.Y + r.Height},
	}

	b := &Bounds{Part: part, Rect: r, Transform: transform}
	for i, c := range corners {
		if transform != nil {
			c = gamemath.Transform(c, *transform)
		}
		b.Vertices[i] = gamemath.Scale(c, xScale, yScale)
	}

	e1 := gamemath.Sub(b.Vertices[0], b.Vertices[1])
	e2 := gamemath.Sub(b.Vertices[1], b.Vertices[2])
	if gamemath.Dot(e1, e1) == 0 || gamemath.Dot(e2, e2) == 0 {
		return nil, fmt.Errorf("%s %+v: %w", part, r, ErrDegenerateBounds)
	}
	b.Normal1 = gamemath.Normalize(gamemath.Normal(e1))
	b.Normal2 = gamemath.Normalize(gamemath.Normal(e2))
	return b, nil
}

// Reset clears the collision result of the previous pass.
func (b *Bounds) Reset() {
	b.CollisionStatus = false
	b.CollidingPart = None
}
