package photonmap

import (
	"math"
	"math/rand"
	"testing"
)

func TestInteractionProbs_SumToOne(t *testing.T) {
	cases := []struct {
		power RGB
		b     BRDF
	}{
		{RGB{1, 1, 1}, BRDF{Diffuse: RGB{0.5, 0.5, 0.5}}},
		{RGB{1, 0.5, 0}, BRDF{Diffuse: RGB{0.2, 0.9, 1}, Specular: RGB{0.1, 0.1, 0.1}}},
		{RGB{1, 1, 1}, BRDF{Diffuse: RGB{0.8, 0.8, 0.8}, Specular: RGB{0.5, 0.5, 0.5}, Transmission: RGB{0.3, 0.3, 0.3}}},
		{RGB{0.2, 3, 0.1}, BRDF{Specular: RGB{1, 1, 1}, Transmission: RGB{1, 1, 1}}},
		{RGB{}, BRDF{Diffuse: RGB{1, 1, 1}}},
	}
	for i, c := range cases {
		d, s, tr, a := InteractionProbs(c.power, &c.b)
		for _, p := range []Real{d, s, tr, a} {
			if p < 0 || p > 1 {
				t.Fatalf("case %d: probability out of range: %g %g %g %g", i, d, s, tr, a)
			}
		}
		if sum := d + s + tr + a; !approxEqual(sum, 1, 1e-12) {
			t.Fatalf("case %d: probabilities sum to %.15g", i, sum)
		}
	}
}

func TestInteractionProbs_MaxChannelRatio(t *testing.T) {
	d, s, tr, a := InteractionProbs(RGB{1, 0.5, 0}, &BRDF{Diffuse: RGB{0.2, 0.9, 1}})
	if !approxEqual(d, 0.45, 1e-12) || s != 0 || tr != 0 || !approxEqual(a, 0.55, 1e-12) {
		t.Fatalf("unexpected split: %g %g %g %g", d, s, tr, a)
	}
}

func TestInteractionProbs_Rescaled(t *testing.T) {
	b := &BRDF{Diffuse: RGB{0.8, 0.8, 0.8}, Specular: RGB{0.5, 0.5, 0.5}, Transmission: RGB{0.3, 0.3, 0.3}}
	d, s, tr, a := InteractionProbs(RGB{1, 1, 1}, b)
	if !approxEqual(d, 0.5, 1e-12) || !approxEqual(s, 0.3125, 1e-12) || !approxEqual(tr, 0.1875, 1e-12) || a != 0 {
		t.Fatalf("unexpected rescale: %g %g %g %g", d, s, tr, a)
	}
}

func TestInteract_BlackSurfaceAbsorbs(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := &BRDF{Shininess: 1, IOR: 1}
	for i := 0; i < 1000; i++ {
		in := Interact(b, RGB{1, 1, 1}, Vec3{0, -1, 0}, Vec3{0, 1, 0}, 1, 1, rng)
		if !in.Absorbed() || !in.Power.IsZero() {
			t.Fatalf("black surface did not absorb: %+v", in)
		}
	}
}

func TestInteract_DiffuseStaysOnIncomingSide(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	grey := &BRDF{Diffuse: RGB{0.5, 0.5, 0.5}, Shininess: 1, IOR: 1}
	n := Vec3{0, 1, 0}
	for i := 0; i < 5000; i++ {
		in := Interact(grey, RGB{1, 1, 1}, Vec3{0, -1, 0}, n, 1, 1, rng)
		if in.Absorbed() {
			continue
		}
		if in.Outcome != Diffuse || in.Dir[1] < -1e-12 {
			t.Fatalf("from above: %+v", in)
		}
		if !approxRGB(in.Power, RGB{1, 1, 1}, 1e-12) {
			t.Fatalf("diffuse power should be coeff/prob = 1, got %+v", in.Power)
		}
		in = Interact(grey, RGB{1, 1, 1}, Vec3{0, 1, 0}, n, 1, 1, rng)
		if !in.Absorbed() && in.Dir[1] > 1e-12 {
			t.Fatalf("from below went up: %+v", in)
		}
	}
}

func TestInteract_SpecularMirror(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	d := norm(Vec3{1, -1, 0})
	want := norm(Vec3{1, 1, 0})
	for i := 0; i < 1000; i++ {
		in := Interact(mirror, RGB{1, 1, 1}, d, Vec3{0, 1, 0}, 1, 1, rng)
		if in.Outcome != SpecularReflect {
			t.Fatalf("expected specular, got %v", in.Outcome)
		}
		if !approxVec(in.Dir, want, 1e-3) {
			t.Fatalf("mirror direction %v, want %v", in.Dir, want)
		}
	}
}

func TestInteract_SpecularBelowSurfaceAbsorbs(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	in := Interact(mirror, RGB{1, 1, 1}, Vec3{0, 1, 0}, Vec3{0, 1, 0}, 1, 1, rng)
	if !in.Absorbed() {
		t.Fatalf("ideal reflection below the surface must absorb, got %+v", in)
	}
}

func TestTransmit_Snell(t *testing.T) {
	th := math.Pi / 6
	d := Vec3{math.Sin(th), -math.Cos(th), 0}
	out, ior, tir := transmit(d, Vec3{0, 1, 0}, 1, 1.5, 1)
	if tir || ior != 1.5 {
		t.Fatalf("entering: tir=%t ior=%g", tir, ior)
	}
	if !approxEqual(out[0], math.Sin(th)/1.5, 1e-12) || out[1] >= 0 {
		t.Fatalf("refracted direction %v", out)
	}
	if !approxEqual(out.Len(), 1, 1e-12) {
		t.Fatalf("not unit: %v", out)
	}
}

func TestTransmit_ExitAndTIR(t *testing.T) {
	n := Vec3{0, 1, 0}
	th := 20 * math.Pi / 180
	out, ior, tir := transmit(Vec3{math.Sin(th), math.Cos(th), 0}, n, 1.5, 1.5, 1)
	if tir || ior != 1 || out[1] <= 0 {
		t.Fatalf("exiting: out=%v ior=%g tir=%t", out, ior, tir)
	}
	if !approxEqual(out[0], 1.5*math.Sin(th), 1e-12) {
		t.Fatalf("exit angle wrong: %v", out)
	}

	th = math.Pi / 3
	d := Vec3{math.Sin(th), math.Cos(th), 0}
	out, ior, tir = transmit(d, n, 1.5, 1.5, 1)
	if !tir || ior != 1.5 {
		t.Fatalf("expected TIR keeping ior, got ior=%g tir=%t", ior, tir)
	}
	if !approxVec(out, Vec3{math.Sin(th), -math.Cos(th), 0}, 1e-12) {
		t.Fatalf("TIR should mirror: %v", out)
	}
}

func TestInteract_TransmitReportsTIR(t *testing.T) {
	glass := &BRDF{Transmission: RGB{1, 1, 1}, Shininess: 1, IOR: 1.5}
	th := math.Pi / 3
	in := Interact(glass, RGB{1, 1, 1}, Vec3{math.Sin(th), math.Cos(th), 0}, Vec3{0, 1, 0}, 1.5, 1, &seqRand{vals: []float64{0.5}})
	if in.Outcome != Transmit || !in.TIR || in.IOR != 1.5 {
		t.Fatalf("unexpected interaction: %+v", in)
	}
}

func TestInteract_PowerNonNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	rc := func() RGB { return RGB{rng.Float64(), rng.Float64(), rng.Float64()} }
	for i := 0; i < 20000; i++ {
		b := &BRDF{Diffuse: rc(), Specular: rc(), Transmission: rc(), Shininess: 1 + 50*rng.Float64(), IOR: 1 + rng.Float64()}
		dir := sampleUnitSphere(rng)
		in := Interact(b, rc().Add(RGB{0.01, 0.01, 0.01}), dir, Vec3{0, 0, 1}, 1, 1, rng)
		if !in.Power.nonNegative() || !isFinite(in.Power.Sum()) {
			t.Fatalf("bad power %+v for %+v", in.Power, b)
		}
		if !in.Absorbed() && !approxEqual(in.Dir.Len(), 1, 1e-9) {
			t.Fatalf("non-unit direction %v", in.Dir)
		}
	}
}

func TestOutcomeString(t *testing.T) {
	if Diffuse.String() != "diffuse" || Absorbed.String() != "absorbed" || Transmit.String() != "transmit" {
		t.Fatal("outcome names changed")
	}
}
