package photonmap

import (
	"math"
)

// Outcome of a surface interaction.
type Outcome uint8

const (
	Absorbed        Outcome = iota // photon/ray absorbed
	Diffuse                        // cosine-weighted diffuse bounce
	SpecularReflect                // Phong lobe around the mirror direction
	Transmit                       // refracted (or TIR-reflected) through the surface
)

func (o Outcome) String() string {
	switch o {
	case Diffuse:
		return "diffuse"
	case SpecularReflect:
		return "specular"
	case Transmit:
		return "transmit"
	}
	return "absorbed"
}

// Interaction is the sampled result of Interact.
type Interaction struct {
	Outcome Outcome
	Dir     Vec3 // unit, zero when absorbed
	Power   RGB  // zero when absorbed
	IOR     Real // index of refraction of the medium the outgoing direction travels in
	TIR     bool // transmission fell back to mirror reflection
}

func (in Interaction) Absorbed() bool { return in.Outcome == Absorbed }

// interactionProbability is max_ch(power⊙coeff) / max_ch(power).
func interactionProbability(power, coeff RGB) Real {
	den := power.Max()
	if den <= 0 {
		return 0
	}
	return power.Mul(coeff).Max() / den
}

// InteractionProbs returns the diffuse, specular, transmission and absorption probabilities.
// When the first three exceed 1 they are rescaled to sum to 1 and absorb is 0.
// diff+spec+trans+absorb == 1 holds in all cases.
func InteractionProbs(power RGB, b *BRDF) (diff, spec, trans, absorb Real) {
	diff = interactionProbability(power, b.Diffuse)
	spec = interactionProbability(power, b.Specular)
	trans = interactionProbability(power, b.Transmission)
	if sum := diff + spec + trans; sum > 1 {
		s := 1 / sum
		diff *= s
		spec *= s
		trans = 1 - (diff + spec)
		if trans < 0 {
			trans = 0
			spec = 1 - diff
		}
	}
	absorb = 1 - (diff + spec + trans)
	return diff, spec, trans, absorb
}

// Interact samples what happens to power arriving along dir at a surface with geometric normal.
// priorIOR is the index of the medium dir travels in; cameraIOR is the surrounding medium.
func Interact(b *BRDF, power RGB, dir, normal Vec3, priorIOR, cameraIOR Real, rng Rand) Interaction {
	diff, spec, trans, _ := InteractionProbs(power, b)
	absorbed := Interaction{Outcome: Absorbed, IOR: priorIOR}

	xi := rng.Float64()
	switch {
	case xi < diff:
		// bounce back to the side the photon came from
		n := normal
		if dir.Dot(n) > 0 {
			n = n.Mul(-1)
		}
		return Interaction{
			Outcome: Diffuse,
			Dir:     sampleCosineHemisphere(n, rng),
			Power:   power.Mul(b.Diffuse).Scale(1 / diff),
			IOR:     priorIOR,
		}

	case xi < diff+spec:
		ideal := norm(reflect(dir, normal))
		if ideal.Dot(normal) < 0 {
			return absorbed
		}
		var d Vec3
		for {
			d = sampleLobe(ideal, b.Shininess, rng)
			if d.Dot(normal) >= 0 {
				break
			}
		}
		return Interaction{
			Outcome: SpecularReflect,
			Dir:     d,
			Power:   power.Mul(b.Specular).Scale(1 / spec),
			IOR:     priorIOR,
		}

	case xi < diff+spec+trans:
		d, ior, tir := transmit(dir, normal, priorIOR, b.IOR, cameraIOR)
		return Interaction{
			Outcome: Transmit,
			Dir:     d,
			Power:   power.Mul(b.Transmission).Scale(1 / trans),
			IOR:     ior,
			TIR:     tir,
		}
	}
	return absorbed
}

// transmit refracts d through a surface with outward normal n.
// Entering goes priorIOR -> matIOR; exiting goes matIOR -> cameraIOR with the normal flipped.
// On total internal reflection it returns the mirror direction and the unchanged IOR.
func transmit(d, n Vec3, priorIOR, matIOR, cameraIOR Real) (Vec3, Real, bool) {
	cosI := -d.Dot(n)
	eta := priorIOR / matIOR
	newIOR := matIOR
	if cosI < 0 {
		n = n.Mul(-1)
		cosI = -cosI
		eta = matIOR / cameraIOR
		newIOR = cameraIOR
	}
	sin2T := eta * eta * (1 - cosI*cosI)
	if sin2T >= 1 {
		return norm(reflect(d, n)), priorIOR, true
	}
	out := d.Mul(eta).Add(n.Mul(eta*cosI - math.Sqrt(1-sin2T)))
	return norm(out), newIOR, false
}
