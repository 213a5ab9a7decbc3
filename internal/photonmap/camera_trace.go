package photonmap

// CameraTracer follows eye rays through specular and transmissive surfaces to the first diffuse hit.
type CameraTracer struct {
	scene       Scene
	termination Real
	maxBounces  int // < 0 ⇒ unbounded
	cameraIOR   Real
}

func NewCameraTracer(scene Scene, s Settings) *CameraTracer {
	return &CameraTracer{
		scene:       scene,
		termination: s.CameraTermination,
		maxBounces:  s.MaxBounces,
		cameraIOR:   s.CameraIOR,
	}
}

// TraceToDiffuse returns the diffuse hit reached by ray and the power multiplier accumulated on the way.
// The returned normal faces the side the ray arrived from.
// Specular bounces apply the lobe correction (n+2)/(n+1); transmissions leave the multiplier unchanged.
// The photon tracer does not apply the lobe correction; the asymmetry is kept on purpose.
func (c *CameraTracer) TraceToDiffuse(ray Ray, priorIOR Real, rng Rand, st *TraceStats) (SurfaceHit, RGB, bool) {
	mult := RGB{1, 1, 1}
	ior := priorIOR
	survive := 1 / (1 - c.termination)
	for bounce := 0; ; bounce++ {
		if rng.Float64() < c.termination {
			st.add(Roulette, bounce)
			return SurfaceHit{}, RGB{}, false
		}
		mult = mult.Scale(survive)
		if c.maxBounces >= 0 && bounce >= c.maxBounces {
			st.add(BounceLimit, bounce)
			return SurfaceHit{}, RGB{}, false
		}

		hit, ok := c.scene.Intersect(ray)
		if !ok {
			st.add(Escape, bounce)
			return SurfaceHit{}, RGB{}, false
		}
		hit.Normal = norm(hit.Normal)
		b := brdfOf(hit.Element)
		in := Interact(b, RGB{1, 1, 1}, ray.Dir, hit.Normal, ior, c.cameraIOR, rng)
		switch in.Outcome {
		case Absorbed:
			st.add(Absorb, bounce)
			return SurfaceHit{}, RGB{}, false
		case Diffuse:
			st.add(Deposit, bounce)
			if hit.Normal.Dot(ray.Dir) > 0 {
				hit.Normal = hit.Normal.Mul(-1)
			}
			return hit, mult.Mul(in.Power), true
		case SpecularReflect:
			st.add(Reflect, bounce)
			mult = mult.Mul(in.Power).Scale((b.Shininess + 2) / (b.Shininess + 1))
		case Transmit:
			if in.TIR {
				st.add(TIR, bounce)
			} else {
				st.add(Refract, bounce)
			}
		}
		ior = in.IOR
		ray = Ray{Origin: hit.Point.Add(in.Dir.Mul(bumpShift)), Dir: in.Dir}
	}
}
