package photonmap

import (
	"math"
)

// lobeDir builds the direction with polar cosine z and azimuth phi around +Z.
func lobeDir(z, phi Real) Vec3 {
	s := math.Sqrt(math.Max(0, 1-z*z))
	return Vec3{s * math.Cos(phi), s * math.Sin(phi), z}
}

// sampleCosineHemisphere returns a cosine-weighted unit direction on the hemisphere around unit n.
// z = sqrt(ξ1), φ = 2πξ2, then +Z is rotated onto n.
func sampleCosineHemisphere(n Vec3, rng Rand) Vec3 {
	z := math.Sqrt(rng.Float64())
	phi := 2 * math.Pi * rng.Float64()
	return norm(rotateFromZ(lobeDir(z, phi), n))
}

// sampleLobe draws z = ξ^(1/exponent) around axis (Phong lobe, spot bias).
func sampleLobe(axis Vec3, exponent Real, rng Rand) Vec3 {
	z := math.Pow(rng.Float64(), 1/exponent)
	phi := 2 * math.Pi * rng.Float64()
	return norm(rotateFromZ(lobeDir(z, phi), axis))
}

// sampleUnitSphere picks a point in the unit cube until it falls inside the unit ball, then projects it.
func sampleUnitSphere(rng Rand) Vec3 {
	for {
		v := Vec3{2*rng.Float64() - 1, 2*rng.Float64() - 1, 2*rng.Float64() - 1}
		if l2 := v.Dot(v); l2 <= 1 && l2 > 1e-12 {
			return v.Mul(1 / math.Sqrt(l2))
		}
	}
}

// sampleUnitDisk returns a uniform point in the unit disk by rejection from the square.
func sampleUnitDisk(rng Rand) (Real, Real) {
	for {
		x, y := 2*rng.Float64()-1, 2*rng.Float64()-1
		if x*x+y*y <= 1 {
			return x, y
		}
	}
}

// sampleDisk returns a uniform point on the disk (center, radius) spanned by axes a1, a2.
func sampleDisk(center, a1, a2 Vec3, radius Real, rng Rand) Vec3 {
	x, y := sampleUnitDisk(rng)
	return center.Add(a1.Mul(x * radius)).Add(a2.Mul(y * radius))
}
