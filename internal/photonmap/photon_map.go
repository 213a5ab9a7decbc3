package photonmap

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
)

// Neighbor is a photon returned by a nearest-neighbor query.
type Neighbor struct {
	Photon *Photon
	Dist   Real
}

// PhotonMap is the read-only spatial index over deposited photons.
type PhotonMap interface {
	// QueryNearest returns up to k photons with minR <= dist <= maxR, nearest first.
	QueryNearest(p Vec3, minR, maxR Real, k int) []Neighbor
	Len() int
}

// photonEntry adapts a stored photon to rtreego.Spatial.
type photonEntry struct {
	p    *Photon
	rect rtreego.Rect
}

func (e *photonEntry) Bounds() rtreego.Rect { return e.rect }

// RTreePhotonMap indexes photons by hit position in an R-tree.
type RTreePhotonMap struct {
	photons []Photon
	tree    *rtreego.Rtree
}

// BuildPhotonMap takes ownership of photons; it must not be mutated afterwards.
func BuildPhotonMap(photons []Photon) *RTreePhotonMap {
	objs := make([]rtreego.Spatial, len(photons))
	for i := range photons {
		p := &photons[i]
		pt := rtreego.Point{p.HitPos[0], p.HitPos[1], p.HitPos[2]}
		objs[i] = &photonEntry{p: p, rect: pt.ToRect(photonBox)}
	}
	m := &RTreePhotonMap{
		photons: photons,
		tree:    rtreego.NewTree(3, RTreeMinChildren, RTreeMaxChildren, objs...),
	}
	DebugLog("Built photon map: %d photons, depth %d", len(photons), m.tree.Depth())
	return m
}

func (m *RTreePhotonMap) Len() int { return len(m.photons) }

func (m *RTreePhotonMap) QueryNearest(p Vec3, minR, maxR Real, k int) []Neighbor {
	if k <= 0 || len(m.photons) == 0 {
		return nil
	}
	q := rtreego.Point{p[0], p[1], p[2]}
	// box query around the sphere of radius maxR, then exact distances
	found := m.tree.SearchIntersect(q.ToRect(maxR))
	out := collectNeighbors(found, p, minR, maxR)
	if len(out) > k {
		out = out[:k]
	}
	return out
}

func collectNeighbors(found []rtreego.Spatial, p Vec3, minR, maxR Real) []Neighbor {
	out := make([]Neighbor, 0, len(found))
	for _, s := range found {
		e, ok := s.(*photonEntry)
		if !ok || e == nil {
			continue
		}
		d := math.Sqrt(distSq(e.p.HitPos, p))
		if d < minR || d > maxR {
			continue
		}
		out = append(out, Neighbor{Photon: e.p, Dist: d})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Dist < out[j].Dist })
	return out
}

// SlicePhotonMap is the brute-force reference index.
type SlicePhotonMap []Photon

func (m SlicePhotonMap) Len() int { return len(m) }

func (m SlicePhotonMap) QueryNearest(p Vec3, minR, maxR Real, k int) []Neighbor {
	if k <= 0 {
		return nil
	}
	var out []Neighbor
	for i := range m {
		d := math.Sqrt(distSq(m[i].HitPos, p))
		if d >= minR && d <= maxR {
			out = append(out, Neighbor{Photon: &m[i], Dist: d})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Dist < out[j].Dist })
	if len(out) > k {
		out = out[:k]
	}
	return out
}
