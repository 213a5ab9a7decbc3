package photonmap

import (
	"fmt"
	"math"
)

// Emitter draws initial photons from lights.
type Emitter struct {
	scene     Scene
	cameraIOR Real
	center    Vec3 // scene bounding sphere
	radius    Real
}

func NewEmitter(scene Scene, s Settings) *Emitter {
	c, r := scene.Bounds()
	return &Emitter{scene: scene, cameraIOR: s.CameraIOR, center: c, radius: r}
}

// PhotonsPerIntensity is total / Σ intensity; 0 when no light has intensity.
func PhotonsPerIntensity(lights []Light, total int) Real {
	sum := 0.0
	for _, l := range lights {
		if l != nil {
			sum += l.LightIntensity()
		}
	}
	if sum <= 0 || total <= 0 {
		return 0
	}
	return Real(total) / sum
}

// LightBudget returns the photon count and per-photon power of every light.
func LightBudget(lights []Light, total int) ([]int, []RGB, error) {
	ppi := PhotonsPerIntensity(lights, total)
	counts := make([]int, len(lights))
	powers := make([]RGB, len(lights))
	for i, l := range lights {
		if l == nil {
			return nil, nil, fmt.Errorf("light #%d: %w", i, ErrUnknownLightType)
		}
		if ppi == 0 {
			continue
		}
		counts[i] = int(math.Round(ppi * l.LightIntensity()))
		powers[i] = l.LightColor().Scale(1 / ppi)
	}
	return counts, powers, nil
}

// Emit draws the photons of all lights for a budget of total photons.
// With causticOnly, only candidates whose first interaction is specular or transmissive are kept.
func (e *Emitter) Emit(lights []Light, total int, causticOnly bool, rng Rand) ([]Photon, error) {
	counts, powers, err := LightBudget(lights, total)
	if err != nil {
		return nil, err
	}
	var out []Photon
	for i, l := range lights {
		err := e.EmitEach(l, counts[i], powers[i], causticOnly, rng, func(p Photon) {
			out = append(out, p)
		})
		if err != nil {
			return nil, fmt.Errorf("light #%d: %w", i, err)
		}
	}
	return out, nil
}

// EmitEach draws n candidates from l and passes the retained ones to fn.
func (e *Emitter) EmitEach(l Light, n int, power RGB, causticOnly bool, rng Rand, fn func(Photon)) error {
	if l == nil {
		return ErrUnknownLightType
	}
	if n <= 0 {
		return nil
	}
	return l.Accept(&emitVisitor{e: e, n: n, power: power, causticOnly: causticOnly, rng: rng, fn: fn})
}

type emitVisitor struct {
	e           *Emitter
	n           int
	power       RGB
	causticOnly bool
	rng         Rand
	fn          func(Photon)
}

func (v *emitVisitor) emit(origin, dir Vec3) {
	if v.causticOnly && !v.e.isSpecularStart(Ray{Origin: origin, Dir: dir}, v.rng) {
		return
	}
	v.fn(Photon{Origin: origin, Dir: dir, Power: v.power})
}

func (v *emitVisitor) VisitPoint(l *PointLight) error {
	for i := 0; i < v.n; i++ {
		v.emit(l.Position, sampleUnitSphere(v.rng))
	}
	return nil
}

// spotBias is the exponent of the cosine lobe that concentrates spot photons near the axis.
const spotBias = 3

func (v *emitVisitor) VisitSpot(l *SpotLight) error {
	cosCut := math.Cos(l.CutOff)
	for i := 0; i < v.n; i++ {
		var d Vec3
		for {
			d = sampleLobe(l.Direction, spotBias, v.rng)
			if d.Dot(l.Direction) >= cosCut {
				break
			}
		}
		v.emit(l.Position, d)
	}
	return nil
}

func (v *emitVisitor) VisitDirectional(l *DirectionalLight) error {
	R := v.e.radius
	base := v.e.center.Sub(l.Direction.Mul(R))
	a1, a2 := circleAxes(l.Direction)
	for i := 0; i < v.n; i++ {
		v.emit(sampleDisk(base, a1, a2, R, v.rng), l.Direction)
	}
	return nil
}

func (v *emitVisitor) VisitArea(l *AreaLight) error {
	for i := 0; i < v.n; i++ {
		v.emit(l.samplePoint(v.rng), sampleCosineHemisphere(l.Direction, v.rng))
	}
	return nil
}

// isSpecularStart simulates the first interaction of ray with unit power; the result is discarded.
func (e *Emitter) isSpecularStart(ray Ray, rng Rand) bool {
	hit, ok := e.scene.Intersect(ray)
	if !ok {
		return false
	}
	in := Interact(brdfOf(hit.Element), RGB{1, 1, 1}, ray.Dir, hit.Normal, e.cameraIOR, e.cameraIOR, rng)
	return in.Outcome == SpecularReflect || in.Outcome == Transmit
}
