package photonmap

import "math"

// EstimateFlux is the disk-area density estimate over the k nearest photons within maxR:
// Σ power ⊙ albedo / (π·d_max²), d_max being the distance to the farthest returned photon.
// No photons in range gives exactly zero.
func EstimateFlux(m PhotonMap, p Vec3, k int, maxR Real, albedo RGB) RGB {
	if m == nil {
		return RGB{}
	}
	nearby := m.QueryNearest(p, 0, maxR, k)
	if len(nearby) == 0 {
		return RGB{}
	}
	var sum RGB
	for _, n := range nearby {
		sum = sum.Add(n.Photon.Power)
	}
	dMax := nearby[len(nearby)-1].Dist
	area := math.Pi * dMax * dMax
	if area <= 0 {
		// every neighbor sits exactly on p; no meaningful disk
		return RGB{}
	}
	return sum.Mul(albedo).Scale(1 / area)
}
