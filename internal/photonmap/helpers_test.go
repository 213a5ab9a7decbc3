package photonmap

import (
	"math"
	"sort"
)

func approxEqual(a, b Real, tol Real) bool {
	if a > b {
		return a-b <= tol
	}
	return b-a <= tol
}

func approxVec(a, b Vec3, tol Real) bool {
	return approxEqual(a[0], b[0], tol) && approxEqual(a[1], b[1], tol) && approxEqual(a[2], b[2], tol)
}

func approxRGB(a, b RGB, tol Real) bool {
	return approxEqual(a.R, b.R, tol) && approxEqual(a.G, b.G, tol) && approxEqual(a.B, b.B, tol)
}

// KS statistic for a continuous target CDF F on sorted samples xs.
func ksD(xs []float64, F func(float64) float64) float64 {
	sort.Float64s(xs)
	n := len(xs)
	var d float64
	for i, x := range xs {
		Fi := F(x)
		empUpper := float64(i+1) / float64(n)
		empLower := float64(i) / float64(n)
		di := math.Max(Fi-empLower, empUpper-Fi)
		if di > d {
			d = di
		}
	}
	return d
}

// ksCrit is the 1% critical value of the one-sample KS test.
func ksCrit(n int) float64 { return 1.63 / math.Sqrt(float64(n)) }

// seqRand replays vals cyclically.
type seqRand struct {
	vals []float64
	i    int
}

func (s *seqRand) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

var (
	whiteDiffuse = &BRDF{Diffuse: RGB{1, 1, 1}, Shininess: 1, IOR: 1}
	mirror       = &BRDF{Specular: RGB{1, 1, 1}, Shininess: 1e9, IOR: 1}
)

// floorAt is a square of half-size L in the plane y=h facing +Y.
func floorAt(h, L Real, m *BRDF) *Element {
	return &Element{
		Name:     "floor",
		Shape:    &Quad{Corner: Vec3{-L, h, -L}, U: Vec3{0, 0, 2 * L}, V: Vec3{2 * L, 0, 0}},
		Material: m,
	}
}

// ceilingAt is a square of half-size L in the plane y=h facing -Y.
func ceilingAt(h, L Real, m *BRDF) *Element {
	return &Element{
		Name:     "ceiling",
		Shape:    &Quad{Corner: Vec3{-L, h, -L}, U: Vec3{2 * L, 0, 0}, V: Vec3{0, 0, 2 * L}},
		Material: m,
	}
}

// testSettings are small, deterministic and roulette-free.
func testSettings() Settings {
	s := DefaultSettings()
	s.Workers = 2
	s.GeneralPhotons = 2000
	s.CausticPhotons = 2000
	s.Samples = 2
	s.PhotonEstimate = 20
	s.PhotonTermination = 0
	s.CameraTermination = 0
	s.ProbePhotons = 200
	s.Seed = 42
	return s
}
