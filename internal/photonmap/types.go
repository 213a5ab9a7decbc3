package photonmap

import "github.com/go-gl/mathgl/mgl64"

type Real = float64

// Vec3 is used for both points and directions.
type Vec3 = mgl64.Vec3

// Rand is the uniform [0,1) source consumed by every sampler; *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

type Ray struct {
	Origin Vec3
	Dir    Vec3 // unit
}

func (r Ray) At(t Real) Vec3 { return r.Origin.Add(r.Dir.Mul(t)) }
