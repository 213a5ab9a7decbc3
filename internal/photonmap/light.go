package photonmap

import (
	"errors"
	"fmt"
	"math"
)

// Light is the closed set {*PointLight, *SpotLight, *DirectionalLight, *AreaLight}.
// Consumers dispatch through LightVisitor, so adding a variant breaks every visitor at compile time.
type Light interface {
	Accept(v LightVisitor) error
	LightColor() RGB
	LightIntensity() Real
	isLight()
}

type LightVisitor interface {
	VisitPoint(*PointLight) error
	VisitSpot(*SpotLight) error
	VisitDirectional(*DirectionalLight) error
	VisitArea(*AreaLight) error
}

// PointLight emits uniformly over the sphere.
type PointLight struct {
	Position  Vec3
	Color     RGB
	Intensity Real
}

// SpotLight emits inside a cone of half-angle CutOff around Direction.
type SpotLight struct {
	Position  Vec3
	Direction Vec3 // unit
	CutOff    Real // radians, (0, π]
	Color     RGB
	Intensity Real
}

// DirectionalLight illuminates the whole scene along Direction.
type DirectionalLight struct {
	Direction Vec3 // unit
	Color     RGB
	Intensity Real
}

// AreaLight is a one-sided disk facing Direction.
type AreaLight struct {
	Position  Vec3
	Direction Vec3 // unit
	Radius    Real
	Color     RGB
	Intensity Real

	// cached circle axes
	axis1, axis2 Vec3
}

func (l *PointLight) Accept(v LightVisitor) error       { return v.VisitPoint(l) }
func (l *SpotLight) Accept(v LightVisitor) error        { return v.VisitSpot(l) }
func (l *DirectionalLight) Accept(v LightVisitor) error { return v.VisitDirectional(l) }
func (l *AreaLight) Accept(v LightVisitor) error        { return v.VisitArea(l) }

func (l *PointLight) LightColor() RGB       { return l.Color }
func (l *SpotLight) LightColor() RGB        { return l.Color }
func (l *DirectionalLight) LightColor() RGB { return l.Color }
func (l *AreaLight) LightColor() RGB        { return l.Color }

func (l *PointLight) LightIntensity() Real       { return l.Intensity }
func (l *SpotLight) LightIntensity() Real        { return l.Intensity }
func (l *DirectionalLight) LightIntensity() Real { return l.Intensity }
func (l *AreaLight) LightIntensity() Real        { return l.Intensity }

func (*PointLight) isLight()       {}
func (*SpotLight) isLight()        {}
func (*DirectionalLight) isLight() {}
func (*AreaLight) isLight()        {}

func validateEmission(color RGB, intensity Real) error {
	if !color.nonNegative() {
		return fmt.Errorf("light color must be non-negative, got %+v", color)
	}
	if intensity < 0 || !isFinite(intensity) {
		return fmt.Errorf("light intensity must be finite and >= 0, got %g", intensity)
	}
	return nil
}

func unitDirection(d Vec3) (Vec3, error) {
	if d.Len() < 1e-12 {
		return Vec3{}, errors.New("light direction must be non-zero")
	}
	return norm(d), nil
}

func NewPointLight(pos Vec3, color RGB, intensity Real) (*PointLight, error) {
	if err := validateEmission(color, intensity); err != nil {
		return nil, err
	}
	L := &PointLight{Position: pos, Color: color, Intensity: intensity}
	DebugLog("Created light %+v", L)
	return L, nil
}

func NewSpotLight(pos, dir Vec3, cutOff Real, color RGB, intensity Real) (*SpotLight, error) {
	if err := validateEmission(color, intensity); err != nil {
		return nil, err
	}
	d, err := unitDirection(dir)
	if err != nil {
		return nil, err
	}
	if !(cutOff > 0 && cutOff <= math.Pi) {
		return nil, fmt.Errorf("spot cutoff must be in (0, π], got %g", cutOff)
	}
	L := &SpotLight{Position: pos, Direction: d, CutOff: cutOff, Color: color, Intensity: intensity}
	DebugLog("Created light %+v", L)
	return L, nil
}

func NewDirectionalLight(dir Vec3, color RGB, intensity Real) (*DirectionalLight, error) {
	if err := validateEmission(color, intensity); err != nil {
		return nil, err
	}
	d, err := unitDirection(dir)
	if err != nil {
		return nil, err
	}
	L := &DirectionalLight{Direction: d, Color: color, Intensity: intensity}
	DebugLog("Created light %+v", L)
	return L, nil
}

func NewAreaLight(pos, dir Vec3, radius Real, color RGB, intensity Real) (*AreaLight, error) {
	if err := validateEmission(color, intensity); err != nil {
		return nil, err
	}
	d, err := unitDirection(dir)
	if err != nil {
		return nil, err
	}
	if radius <= 0 {
		return nil, fmt.Errorf("area light radius must be > 0, got %g", radius)
	}
	L := &AreaLight{Position: pos, Direction: d, Radius: radius, Color: color, Intensity: intensity}
	L.axis1, L.axis2 = circleAxes(d)
	DebugLog("Created light %+v", L)
	return L, nil
}

// inCone reports whether p is lit by the spot cone.
func (l *SpotLight) inCone(p Vec3) bool {
	return norm(p.Sub(l.Position)).Dot(l.Direction) >= math.Cos(l.CutOff)
}

// samplePoint returns a uniform point on the disk.
func (l *AreaLight) samplePoint(rng Rand) Vec3 {
	a1, a2 := l.axes()
	return sampleDisk(l.Position, a1, a2, l.Radius, rng)
}

// axes tolerates literals built without NewAreaLight.
func (l *AreaLight) axes() (Vec3, Vec3) {
	if l.axis1 == (Vec3{}) {
		return circleAxes(l.Direction)
	}
	return l.axis1, l.axis2
}
