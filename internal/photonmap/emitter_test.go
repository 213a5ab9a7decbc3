package photonmap

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func mustPoint(t *testing.T, pos Vec3, c RGB, I Real) *PointLight {
	t.Helper()
	l, err := NewPointLight(pos, c, I)
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestLightBudget_ProportionalToIntensity(t *testing.T) {
	lights := []Light{
		mustPoint(t, Vec3{}, RGB{1, 1, 1}, 1),
		mustPoint(t, Vec3{}, RGB{2, 0, 0}, 3),
	}
	if ppi := PhotonsPerIntensity(lights, 1000); ppi != 250 {
		t.Fatalf("ppi=%g, want 250", ppi)
	}
	counts, powers, err := LightBudget(lights, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if counts[0] != 250 || counts[1] != 750 {
		t.Fatalf("counts=%v", counts)
	}
	if !approxRGB(powers[0], RGB{1.0 / 250, 1.0 / 250, 1.0 / 250}, 1e-15) || !approxRGB(powers[1], RGB{2.0 / 250, 0, 0}, 1e-15) {
		t.Fatalf("powers=%v", powers)
	}
	// total emitted power is color·intensity
	if got := powers[1].Scale(Real(counts[1])); !approxRGB(got, RGB{6, 0, 0}, 1e-12) {
		t.Fatalf("light power %v, want {6 0 0}", got)
	}
}

func TestLightBudget_ZeroIntensityIsRecoverable(t *testing.T) {
	lights := []Light{mustPoint(t, Vec3{}, RGB{1, 1, 1}, 0)}
	counts, _, err := LightBudget(lights, 1000)
	if err != nil || counts[0] != 0 {
		t.Fatalf("counts=%v err=%v", counts, err)
	}
	e := NewEmitter(NewWorld([]*Element{floorAt(-1, 1, nil)}), testSettings())
	ph, err := e.Emit(lights, 1000, false, rand.New(rand.NewSource(1)))
	if err != nil || len(ph) != 0 {
		t.Fatalf("expected no photons, got %d (%v)", len(ph), err)
	}
}

func TestEmit_UnknownLightAborts(t *testing.T) {
	e := NewEmitter(NewWorld([]*Element{floorAt(-1, 1, nil)}), testSettings())
	lights := []Light{mustPoint(t, Vec3{}, RGB{1, 1, 1}, 1), nil}
	if _, err := e.Emit(lights, 100, false, rand.New(rand.NewSource(1))); !errors.Is(err, ErrUnknownLightType) {
		t.Fatalf("expected ErrUnknownLightType, got %v", err)
	}
	if _, err := (LightCfg{Type: "laser"}).Build(); !errors.Is(err, ErrUnknownLightType) {
		t.Fatalf("expected ErrUnknownLightType for config type, got %v", err)
	}
}

func TestEmit_PerLightGeometry(t *testing.T) {
	world := NewWorld([]*Element{floorAt(-1, 2, whiteDiffuse)})
	center, R := world.Bounds()
	e := NewEmitter(world, testSettings())
	rng := rand.New(rand.NewSource(7))

	spot, err := NewSpotLight(Vec3{0, 1, 0}, Vec3{0, -1, 0}, math.Pi/8, RGB{1, 1, 1}, 1)
	if err != nil {
		t.Fatal(err)
	}
	dir, _ := NewDirectionalLight(Vec3{1, -2, 0}, RGB{1, 1, 1}, 1)
	area, _ := NewAreaLight(Vec3{0, 1, 0}, Vec3{0, -1, 0}, 0.25, RGB{1, 1, 1}, 1)
	point := mustPoint(t, Vec3{0, 1, 0}, RGB{1, 1, 1}, 1)

	check := func(l Light, f func(p Photon)) {
		n := 0
		err := e.EmitEach(l, 2000, RGB{1, 1, 1}, false, rng, func(p Photon) {
			n++
			if !approxEqual(p.Dir.Len(), 1, 1e-9) {
				t.Fatalf("%s: non-unit direction %v", DescribeLight(l), p.Dir)
			}
			f(p)
		})
		if err != nil || n != 2000 {
			t.Fatalf("%s: emitted %d, err %v", DescribeLight(l), n, err)
		}
	}
	check(point, func(p Photon) {
		if p.Origin != point.Position {
			t.Fatalf("point origin %v", p.Origin)
		}
	})
	cosCut := math.Cos(spot.CutOff)
	check(spot, func(p Photon) {
		if p.Dir.Dot(spot.Direction) < cosCut-1e-12 {
			t.Fatalf("spot photon outside cone: %v", p.Dir)
		}
	})
	base := center.Sub(dir.Direction.Mul(R))
	check(dir, func(p Photon) {
		if p.Dir != dir.Direction {
			t.Fatalf("directional photon dir %v", p.Dir)
		}
		rel := p.Origin.Sub(base)
		if !approxEqual(rel.Dot(dir.Direction), 0, 1e-9) || rel.Len() > R+1e-9 {
			t.Fatalf("directional origin %v off the emitting disk", p.Origin)
		}
	})
	check(area, func(p Photon) {
		if distSq(p.Origin, area.Position) > area.Radius*area.Radius+1e-12 {
			t.Fatalf("area origin %v outside disk", p.Origin)
		}
		if p.Dir.Dot(area.Direction) < 0 {
			t.Fatalf("area photon behind the light: %v", p.Dir)
		}
	})
}

func TestEmit_CausticFilter(t *testing.T) {
	light := []Light{mustPoint(t, Vec3{}, RGB{1, 1, 1}, 1)}
	rng := rand.New(rand.NewSource(3))
	const N = 10000

	diffuse := NewEmitter(NewWorld([]*Element{floorAt(-1, 100, whiteDiffuse)}), testSettings())
	ph, err := diffuse.Emit(light, N, true, rng)
	if err != nil || len(ph) != 0 {
		t.Fatalf("diffuse-only scene seeded %d caustic photons (%v)", len(ph), err)
	}

	specular := NewEmitter(NewWorld([]*Element{floorAt(-1, 100, mirror)}), testSettings())
	ph, err = specular.Emit(light, N, true, rng)
	if err != nil {
		t.Fatal(err)
	}
	// about half the sphere reaches the mirror
	if f := Real(len(ph)) / N; f < 0.45 || f > 0.51 {
		t.Fatalf("caustic fraction %g, want ≈0.5", f)
	}
	for _, p := range ph {
		if p.Dir[1] >= 0 {
			t.Fatalf("kept a photon that misses the mirror: %v", p.Dir)
		}
	}
}
