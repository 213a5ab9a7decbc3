package photonmap

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// RGB stores color, power or radiance per channel; components are non-negative.
type RGB struct {
	R, G, B Real
}

func (c RGB) Add(o RGB) RGB     { return RGB{c.R + o.R, c.G + o.G, c.B + o.B} }
func (c RGB) Mul(o RGB) RGB     { return RGB{c.R * o.R, c.G * o.G, c.B * o.B} }
func (c RGB) Scale(s Real) RGB  { return RGB{c.R * s, c.G * s, c.B * s} }
func (c RGB) Max() Real         { return math.Max(c.R, math.Max(c.G, c.B)) }
func (c RGB) IsZero() bool      { return c.R == 0 && c.G == 0 && c.B == 0 }
func (c RGB) Sum() Real         { return c.R + c.G + c.B }
func (c RGB) Vec() Vec3         { return Vec3{c.R, c.G, c.B} }
func (c RGB) nonNegative() bool { return c.R >= 0 && c.G >= 0 && c.B >= 0 }

// Ch returns channel i (ChR, ChG, ChB).
func (c RGB) Ch(i int) Real {
	switch i {
	case ChR:
		return c.R
	case ChG:
		return c.G
	}
	return c.B
}

// yiqToRGB maps YIQ to RGB; the first row of its inverse gives the luminance weights.
var yiqToRGB = mgl64.Mat3FromRows(
	Vec3{1.0, 0.956, 0.621},
	Vec3{1.0, -0.272, -0.647},
	Vec3{1.0, -1.106, 1.703},
)

// LuminanceCoeffs ≈ (0.2989, 0.5870, 0.1140).
var LuminanceCoeffs = yiqToRGB.Inv().Row(0)

func (c RGB) Luminance() Real { return LuminanceCoeffs.Dot(c.Vec()) }

// clamp01 clamps each channel to [0,1].
func (c RGB) clamp01() RGB {
	return RGB{mgl64.Clamp(c.R, 0, 1), mgl64.Clamp(c.G, 0, 1), mgl64.Clamp(c.B, 0, 1)}
}
