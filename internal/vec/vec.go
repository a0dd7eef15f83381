package vec

import "math"

// Vector3 is a 3-component real vector with value semantics. All operations
// return a new vector and leave the receiver untouched.
type Vector3 struct {
	X, Y, Z float64
}

var Zero = Vector3{}

func New(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// AddScaled returns v + o*s, the fused update the integrators use for
// position and velocity advances.
func (v Vector3) AddScaled(o Vector3, s float64) Vector3 {
	return Vector3{v.X + o.X*s, v.Y + o.Y*s, v.Z + o.Z*s}
}

func (v Vector3) Invert() Vector3 {
	return Vector3{-v.X, -v.Y, -v.Z}
}

func (v Vector3) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

func (v Vector3) SquareMagnitude() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Normalized returns the unit vector in the direction of v, or the zero
// vector when v has no magnitude.
func (v Vector3) Normalized() Vector3 {
	mag := v.Magnitude()
	if mag > 0 {
		return v.Scale(1.0 / mag)
	}
	return Vector3{}
}

func (v Vector3) Dot(o Vector3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vector3) ComponentProduct(o Vector3) Vector3 {
	return Vector3{v.X * o.X, v.Y * o.Y, v.Z * o.Z}
}

func (v Vector3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

func (v Vector3) IsValid() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
