package photonmap

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var zAxis = Vec3{0, 0, 1}

// norm returns a unit-length copy; the zero vector is returned unchanged.
func norm(v Vec3) Vec3 {
	l2 := v.Dot(v)
	if l2 == 0 {
		return v
	}
	return v.Mul(1 / math.Sqrt(l2))
}

// reflect mirrors d about the plane with unit normal n.
func reflect(d, n Vec3) Vec3 {
	return d.Sub(n.Mul(2 * d.Dot(n)))
}

// rotateFromZ applies a rotation taking +Z onto axis to v.
// Axes in the lower half start with a half-turn about X, since QuatBetweenVectors
// guesses a fixed axis when its inputs are within 0.001 of antiparallel.
func rotateFromZ(v, axis Vec3) Vec3 {
	if axis[2] < 0 {
		return mgl64.QuatBetweenVectors(Vec3{0, 0, -1}, axis).Rotate(Vec3{v[0], -v[1], -v[2]})
	}
	return mgl64.QuatBetweenVectors(zAxis, axis).Rotate(v)
}

// circleAxes returns two unit vectors spanning the plane orthogonal to n.
func circleAxes(n Vec3) (Vec3, Vec3) {
	n = norm(n)
	// cross with the axis of the smallest component for stability
	e := Vec3{1, 0, 0}
	ax, ay, az := math.Abs(n[0]), math.Abs(n[1]), math.Abs(n[2])
	if ay < ax && ay <= az {
		e = Vec3{0, 1, 0}
	} else if az < ax && az < ay {
		e = Vec3{0, 0, 1}
	}
	a1 := norm(n.Cross(e))
	a2 := norm(n.Cross(a1))
	return a1, a2
}

func distSq(a, b Vec3) Real {
	d := a.Sub(b)
	return d.Dot(d)
}

func minV(a, b Vec3) Vec3 {
	return Vec3{math.Min(a[0], b[0]), math.Min(a[1], b[1]), math.Min(a[2], b[2])}
}

func maxV(a, b Vec3) Vec3 {
	return Vec3{math.Max(a[0], b[0]), math.Max(a[1], b[1]), math.Max(a[2], b[2])}
}
