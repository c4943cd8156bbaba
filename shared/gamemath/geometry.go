package gamemath

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Point is a position in some coordinate space (artwork units, frame-local
// world units or stage units depending on the caller).
type Point struct {
	X, Y float64
}

// Add translates p by v.
func (p Point) Add(v Vector) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Vector is a free 2D vector.
type Vector struct {
	X, Y float64
}

func (v Vector) vec2() mgl64.Vec2 {
	return mgl64.Vec2{v.X, v.Y}
}

// Affine is a 2x3 matrix as authored in SVG: x' = a·x + c·y + e and
// y' = b·x + d·y + f.
type Affine struct {
	A, B, C, D, E, F float64
}

// Identity leaves points unchanged.
var Identity = Affine{A: 1, D: 1}

// IsIdentity reports whether a maps every point onto itself.
func (a Affine) IsIdentity() bool {
	return a == Identity
}

func (a Affine) mat3() mgl64.Mat3 {
	// mgl64 matrices are column-major.
	return mgl64.Mat3{
		a.A, a.B, 0,
		a.C, a.D, 0,
		a.E, a.F, 1,
	}
}

// Mul returns the affine that applies b first, then a. This matches SVG,
// where "transform=\"A B\"" maps a point through B before A.
func (a Affine) Mul(b Affine) Affine {
	m := a.mat3().Mul3(b.mat3())
	return Affine{A: m[0], B: m[1], C: m[3], D: m[4], E: m[6], F: m[7]}
}

// Transform applies the affine matrix to p.
func Transform(p Point, a Affine) Point {
	out := a.mat3().Mul3x1(mgl64.Vec3{p.X, p.Y, 1})
	return Point{X: out.X(), Y: out.Y()}
}

// Scale multiplies p elementwise.
func Scale(p Point, sx, sy float64) Point {
	return Point{X: p.X * sx, Y: p.Y * sy}
}

// Sub returns the vector from b to a.
func Sub(a, b Point) Vector {
	return Vector{X: a.X - b.X, Y: a.Y - b.Y}
}

// Dot returns the dot product of a and b.
func Dot(a, b Vector) float64 {
	return a.vec2().Dot(b.vec2())
}

// Normal rotates v by a fixed 90°. It is not an outward normal; only the
// shared sign convention between compared edges matters.
func Normal(v Vector) Vector {
	return Vector{X: -v.Y, Y: v.X}
}

// Normalize scales v to unit length. A zero vector has no direction and
// indicates a degenerate edge upstream, so it panics.
func Normalize(v Vector) Vector {
	vec := v.vec2()
	if vec.Len() == 0 {
		panic(fmt.Sprintf("gamemath: normalize zero-length vector %+v", v))
	}
	n := vec.Normalize()
	return Vector{X: n.X(), Y: n.Y()}
}
