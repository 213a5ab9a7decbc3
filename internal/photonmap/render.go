package photonmap

import (
	"context"
	"math"
	"math/rand"

	"golang.org/x/sync/errgroup"
)

// renderSalt separates the camera RNG streams from the photon streams of the same seed.
const renderSalt = 0x5bd1e995

// Renderer turns eye rays into pixel radiance using the two photon maps and direct lighting.
type Renderer struct {
	scene     Scene
	camera    *Camera
	tracer    *CameraTracer
	direct    *DirectLighting
	general   PhotonMap
	caustic   PhotonMap
	generalR  Real // absolute search radii
	causticR  Real
	estimate  int
	samples   int
	workers   int
	cameraIOR Real
	log       Logger
}

func NewRenderer(scene Scene, lights []Light, camera *Camera, general, caustic PhotonMap, s Settings, log Logger) *Renderer {
	if log == nil {
		log = NopLogger
	}
	_, radius := scene.Bounds()
	return &Renderer{
		scene:     scene,
		camera:    camera,
		tracer:    NewCameraTracer(scene, s),
		direct:    NewDirectLighting(scene, lights),
		general:   general,
		caustic:   caustic,
		generalR:  s.GeneralRange * radius,
		causticR:  s.CausticRange * radius,
		estimate:  s.PhotonEstimate,
		samples:   imax(s.Samples, 1),
		workers:   imax(s.Workers, 1),
		cameraIOR: s.CameraIOR,
		log:       log,
	}
}

// Sample returns one radiance sample along ray; paths that never reach a diffuse surface give zero.
func (r *Renderer) Sample(ray Ray, rng Rand, st *TraceStats) (RGB, error) {
	hit, mult, ok := r.tracer.TraceToDiffuse(ray, r.cameraIOR, rng, st)
	if !ok {
		return RGB{}, nil
	}
	diff := mult.Scale(1 / math.Pi)
	L := EstimateFlux(r.general, hit.Point, r.estimate, r.generalR, diff)
	L = L.Add(EstimateFlux(r.caustic, hit.Point, r.estimate, r.causticR, diff))
	L = L.Add(brdfOf(hit.Element).Emission)
	d, err := r.direct.Estimate(hit, diff, rng)
	if err != nil {
		return RGB{}, err
	}
	return L.Add(d), nil
}

// Pixel averages the samples of pixel (i, j).
func (r *Renderer) Pixel(i, j int, rng Rand, st *TraceStats) (RGB, error) {
	var sum RGB
	for s := 0; s < r.samples; s++ {
		c, err := r.Sample(r.camera.Ray(i, j, rng), rng, st)
		if err != nil {
			return RGB{}, err
		}
		sum = sum.Add(c)
	}
	return sum.Scale(1 / Real(r.samples)), nil
}

// Render fills a radiance buffer row by row; each row is written by exactly one task.
func (r *Renderer) Render(ctx context.Context, seed int64) (*RadianceBuffer, error) {
	W, H := r.camera.Width, r.camera.Height
	buf := NewRadianceBuffer(W, H)
	prog := newProgress(r.log, "RENDER", H)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for j := 0; j < H; j++ {
		row := j
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewSource(workerSeed(seed^renderSalt, row)))
			var st *TraceStats
			if Debug {
				st = &TraceStats{}
			}
			for i := 0; i < W; i++ {
				c, err := r.Pixel(i, row, rng, st)
				if err != nil {
					return err
				}
				buf.Set(i, row, c)
			}
			if st != nil {
				logTrace("camera", st)
			}
			prog.add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return buf, nil
}
