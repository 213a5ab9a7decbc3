package photonmap

import (
	"context"
	"math/rand"

	"golang.org/x/sync/errgroup"
)

const traceChunk = 4096

// Tracer propagates photons through the scene.
type Tracer struct {
	scene       Scene
	emitter     *Emitter
	termination Real
	maxBounces  int // < 0 ⇒ unbounded
	cameraIOR   Real
	workers     int
	log         Logger
}

func NewTracer(scene Scene, s Settings, log Logger) *Tracer {
	if log == nil {
		log = NopLogger
	}
	return &Tracer{
		scene:       scene,
		emitter:     NewEmitter(scene, s),
		termination: s.PhotonTermination,
		maxBounces:  s.MaxBounces,
		cameraIOR:   s.CameraIOR,
		workers:     imax(s.Workers, 1),
		log:         log,
	}
}

// Trace follows p until it is absorbed, escapes, is terminated, or (caustic) lands on a diffuse surface.
// Deposited photons are appended to sink, which is returned.
// Roulette runs before every segment and each survivor's power is scaled by 1/(1-r) at that step,
// rather than once before tracing starts.
func (t *Tracer) Trace(p Photon, sink []Photon, caustic bool, rng Rand, st *TraceStats) []Photon {
	ior := t.cameraIOR
	survive := 1 / (1 - t.termination)
	for {
		// Russian roulette; survivors carry the compensation.
		if rng.Float64() < t.termination {
			st.add(Roulette, p.Bounces)
			return sink
		}
		p.Power = p.Power.Scale(survive)

		if t.maxBounces >= 0 && p.Bounces >= t.maxBounces {
			st.add(BounceLimit, p.Bounces)
			return sink
		}
		hit, ok := t.scene.Intersect(Ray{Origin: p.Origin, Dir: p.Dir})
		if !ok {
			st.add(Escape, p.Bounces)
			return sink
		}
		p.HitPos = hit.Point
		p.HitNormal = norm(hit.Normal)

		in := Interact(brdfOf(hit.Element), p.Power, p.Dir, p.HitNormal, ior, t.cameraIOR, rng)
		switch in.Outcome {
		case Absorbed:
			st.add(Absorb, p.Bounces)
			return sink
		case Diffuse:
			// The segment straight from the light is direct lighting, not stored.
			if p.Bounces > 0 {
				sink = append(sink, p)
				st.add(Deposit, p.Bounces)
			} else {
				st.add(Bounce, p.Bounces)
			}
			if caustic {
				return sink
			}
		case SpecularReflect:
			st.add(Reflect, p.Bounces)
		case Transmit:
			if in.TIR {
				st.add(TIR, p.Bounces)
			} else {
				st.add(Refract, p.Bounces)
			}
		}

		ior = in.IOR
		p = Photon{
			Origin:  hit.Point.Add(in.Dir.Mul(bumpShift)),
			Dir:     in.Dir,
			Power:   in.Power,
			Bounces: p.Bounces + 1,
		}
	}
}

// TraceAll emits the photons of a total budget and traces them in parallel.
// Every worker owns its RNG and its deposit buffer; buffers are merged after all workers finish.
func (t *Tracer) TraceAll(ctx context.Context, lights []Light, total int, caustic bool, seed int64) ([]Photon, error) {
	counts, powers, err := LightBudget(lights, total)
	if err != nil {
		return nil, err
	}
	emitted := 0
	per := make([][]int, len(lights)) // [light][worker] -> count
	for li, n := range counts {
		per[li] = splitEven(n, t.workers)
		emitted += n
	}
	if emitted == 0 {
		return nil, nil
	}

	name := "general"
	if caustic {
		name = "caustic"
	}
	prog := newProgress(t.log, "PROGRESS", emitted)

	buffers := make([][]Photon, t.workers)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(t.workers)
	for w := 0; w < t.workers; w++ {
		wid := w
		g.Go(func() error {
			rng := rand.New(rand.NewSource(workerSeed(seed, wid)))
			var st *TraceStats
			if Debug {
				st = &TraceStats{}
			}
			var local []Photon
			trace := func(p Photon) { local = t.Trace(p, local, caustic, rng, st) }
			for li, L := range lights {
				// chunks keep progress and cancellation responsive
				for left := per[li][wid]; left > 0; left -= traceChunk {
					n := min(left, traceChunk)
					if err := t.emitter.EmitEach(L, n, powers[li], caustic, rng, trace); err != nil {
						return err
					}
					prog.add(int64(n))
					if err := ctx.Err(); err != nil {
						return err
					}
				}
			}
			buffers[wid] = local
			if st != nil {
				logTrace(name, st)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	n := 0
	for _, b := range buffers {
		n += len(b)
	}
	out := make([]Photon, 0, n)
	for _, b := range buffers {
		out = append(out, b...)
	}
	DebugLog("Traced %s map: %d candidates, %d deposits", name, emitted, len(out))
	return out, nil
}
