package photonmap

import (
	"fmt"
	"math"
)

// shadowTol is the relative slack allowed between the shadow hit and the shaded point.
const shadowTol = 1e-5

// DirectLighting estimates direct illumination at diffuse hits.
// A light of color C and intensity I radiates total power Φ = C·I, matching the photon budget.
type DirectLighting struct {
	scene  Scene
	lights []Light
	center Vec3
	radius Real
}

func NewDirectLighting(scene Scene, lights []Light) *DirectLighting {
	c, r := scene.Bounds()
	return &DirectLighting{scene: scene, lights: lights, center: c, radius: r}
}

// Estimate returns Σ_lights diffBRDF ⊙ E, E being the irradiance estimate of each light at hit.
// hit.Normal must face the viewer.
func (d *DirectLighting) Estimate(hit SurfaceHit, diffBRDF RGB, rng Rand) (RGB, error) {
	v := &directVisitor{d: d, hit: hit, brdf: diffBRDF, rng: rng}
	for i, l := range d.lights {
		if l == nil {
			return RGB{}, fmt.Errorf("light #%d: %w", i, ErrUnknownLightType)
		}
		if err := l.Accept(v); err != nil {
			return RGB{}, err
		}
	}
	return v.sum, nil
}

// visible reports whether the segment from → hit.Point reaches the same element unobstructed.
func (d *DirectLighting) visible(from Vec3, hit SurfaceHit) bool {
	toP := hit.Point.Sub(from)
	dist := toP.Len()
	if dist < epsDist {
		return false
	}
	sh, ok := d.scene.Intersect(Ray{Origin: from, Dir: toP.Mul(1 / dist)})
	if !ok || sh.Element != hit.Element {
		return false
	}
	return sh.T >= dist-shadowTol*(1+dist)
}

func lightPower(l Light) RGB { return l.LightColor().Scale(l.LightIntensity()) }

type directVisitor struct {
	d    *DirectLighting
	hit  SurfaceHit
	brdf RGB
	rng  Rand
	sum  RGB
}

func (v *directVisitor) add(e RGB) { v.sum = v.sum.Add(v.brdf.Mul(e)) }

// pointIrradiance is I(ω)/d² · N·L for a light at pos; zero when the surface faces away or is shadowed.
func (v *directVisitor) pointIrradiance(pos Vec3, intensity RGB) {
	L := pos.Sub(v.hit.Point)
	d2 := L.Dot(L)
	if d2 < epsDist {
		return
	}
	NL := v.hit.Normal.Dot(L.Mul(1 / math.Sqrt(d2)))
	if NL <= 0 || !v.d.visible(pos, v.hit) {
		return
	}
	v.add(intensity.Scale(NL / d2))
}

func (v *directVisitor) VisitPoint(l *PointLight) error {
	v.pointIrradiance(l.Position, lightPower(l).Scale(1/(4*math.Pi)))
	return nil
}

func (v *directVisitor) VisitSpot(l *SpotLight) error {
	if !l.inCone(v.hit.Point) {
		return nil
	}
	z := norm(v.hit.Point.Sub(l.Position)).Dot(l.Direction)
	v.pointIrradiance(l.Position, lightPower(l).Scale(spotPDF(z, l.CutOff)))
	return nil
}

// spotPDF is the solid-angle density of the biased spot lobe z = ξ^(1/spotBias) truncated to the cone.
func spotPDF(z, cutOff Real) Real {
	c := math.Max(math.Cos(cutOff), 0)
	if z < c {
		return 0
	}
	mass := 1 - math.Pow(c, spotBias)
	if mass <= 0 {
		return 0
	}
	return spotBias * math.Pow(z, spotBias-1) / (2 * math.Pi * mass)
}

func (v *directVisitor) VisitDirectional(l *DirectionalLight) error {
	NL := v.hit.Normal.Dot(l.Direction.Mul(-1))
	if NL <= 0 || v.d.radius <= 0 {
		return nil
	}
	from := v.hit.Point.Sub(l.Direction.Mul(2 * v.d.radius))
	if !v.d.visible(from, v.hit) {
		return nil
	}
	// power spread over the emitting disk of radius R
	v.add(lightPower(l).Scale(NL / (math.Pi * v.d.radius * v.d.radius)))
	return nil
}

func (v *directVisitor) VisitArea(l *AreaLight) error {
	src := l.samplePoint(v.rng).Add(l.Direction.Mul(bumpShift))
	toP := v.hit.Point.Sub(src)
	d2 := toP.Dot(toP)
	if d2 < epsDist {
		return nil
	}
	w := toP.Mul(1 / math.Sqrt(d2))
	cosLight := w.Dot(l.Direction)
	cosPoint := v.hit.Normal.Dot(w.Mul(-1))
	if cosLight <= 0 || cosPoint <= 0 || !v.d.visible(src, v.hit) {
		return nil
	}
	area := math.Pi * l.Radius * l.Radius
	pdf := 1 / area
	radiance := lightPower(l).Scale(1 / (math.Pi * area))
	v.add(radiance.Scale(cosLight * cosPoint / d2 / pdf))
	return nil
}
