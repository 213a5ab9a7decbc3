package photonmap

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
)

// LightProbe summarizes probe photons drawn from one light.
type LightProbe struct {
	Light    int
	Emitted  int
	Hits     int // reached any surface
	Specular int // first interaction specular or transmissive, i.e. would seed the caustic map
}

func (p LightProbe) HitFraction() Real {
	if p.Emitted == 0 {
		return 0
	}
	return Real(p.Hits) / Real(p.Emitted)
}

func (p LightProbe) CausticFraction() Real {
	if p.Emitted == 0 {
		return 0
	}
	return Real(p.Specular) / Real(p.Emitted)
}

// probeOne draws n candidates from l and classifies their first interaction.
func (e *Emitter) probeOne(l Light, n int, rng Rand) (hits, specular int, err error) {
	err = e.EmitEach(l, n, l.LightColor(), false, rng, func(p Photon) {
		ray := Ray{Origin: p.Origin, Dir: p.Dir}
		hit, ok := e.scene.Intersect(ray)
		if !ok {
			return
		}
		hits++
		in := Interact(brdfOf(hit.Element), RGB{1, 1, 1}, ray.Dir, hit.Normal, e.cameraIOR, e.cameraIOR, rng)
		if in.Outcome == SpecularReflect || in.Outcome == Transmit {
			specular++
		}
	})
	return hits, specular, err
}

// ProbeLight estimates, with trials photons split over workers, how often l reaches the scene.
func (e *Emitter) ProbeLight(l Light, trials, workers int, seed int64) (LightProbe, error) {
	res := LightProbe{Emitted: trials}
	if trials <= 0 {
		return res, nil
	}
	workers = imax(workers, 1)
	if workers > trials {
		workers = trials
	}

	type partial struct {
		hits, specular int
		err            error
	}
	var wg sync.WaitGroup
	ch := make(chan partial, workers)
	for w, n := range splitEven(trials, workers) {
		if n == 0 {
			continue
		}
		wg.Add(1)
		go func(wid, n int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(workerSeed(seed, wid)))
			h, s, err := e.probeOne(l, n, rng)
			ch <- partial{h, s, err}
		}(w, n)
	}
	wg.Wait()
	close(ch)

	for p := range ch {
		if p.err != nil {
			return res, p.err
		}
		res.Hits += p.hits
		res.Specular += p.specular
	}
	return res, nil
}

// ProbeLights runs ProbeLight for every light and logs one line per light.
func ProbeLights(scene Scene, lights []Light, s Settings, log Logger) ([]LightProbe, error) {
	if log == nil {
		log = NopLogger
	}
	e := NewEmitter(scene, s)
	out := make([]LightProbe, 0, len(lights))
	for i, l := range lights {
		if l == nil {
			return nil, fmt.Errorf("light #%d: %w", i, ErrUnknownLightType)
		}
		p, err := e.ProbeLight(l, s.ProbePhotons, s.Workers, workerSeed(s.Seed, -1-i))
		if err != nil {
			return nil, fmt.Errorf("light #%d: %w", i, err)
		}
		p.Light = i
		log.Printf("Light #%d %s: hit %.2f%%, caustic seed %.2f%%\n", i, DescribeLight(l), 100*p.HitFraction(), 100*p.CausticFraction())
		if p.Hits == 0 && p.Emitted > 0 {
			log.Printf("Warning: light #%d reaches no surface\n", i)
		}
		out = append(out, p)
	}
	return out, nil
}

// DescribeLight is a one-line human description of l.
func DescribeLight(l Light) string {
	v := &describeVisitor{}
	if l == nil || l.Accept(v) != nil {
		return "unknown"
	}
	return v.s
}

type describeVisitor struct{ s string }

func (v *describeVisitor) VisitPoint(l *PointLight) error {
	v.s = fmt.Sprintf("point at %v, intensity %g", l.Position, l.Intensity)
	return nil
}

func (v *describeVisitor) VisitSpot(l *SpotLight) error {
	v.s = fmt.Sprintf("spot at %v toward %v, cutoff %.1f°, intensity %g", l.Position, l.Direction, l.CutOff*180/math.Pi, l.Intensity)
	return nil
}

func (v *describeVisitor) VisitDirectional(l *DirectionalLight) error {
	v.s = fmt.Sprintf("directional toward %v, intensity %g", l.Direction, l.Intensity)
	return nil
}

func (v *describeVisitor) VisitArea(l *AreaLight) error {
	v.s = fmt.Sprintf("area disk at %v facing %v, radius %g, intensity %g", l.Position, l.Direction, l.Radius, l.Intensity)
	return nil
}
