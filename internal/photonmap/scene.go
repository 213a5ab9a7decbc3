package photonmap

import (
	"math"
)

// Element is one surface of the scene; identity is the pointer.
type Element struct {
	Name     string
	Shape    Shape
	Material *BRDF // nil ⇒ DefaultBRDF
}

// SurfaceHit is the nearest intersection along a ray.
type SurfaceHit struct {
	Element *Element
	Point   Vec3
	Normal  Vec3 // geometric, unit
	T       Real
}

// Scene is the intersection service consumed by the tracers.
type Scene interface {
	Intersect(r Ray) (SurfaceHit, bool)
	// Bounds returns the center and radius of the sphere around the scene bounding box.
	Bounds() (Vec3, Real)
}

// World is the Scene over a flat element list, accelerated by a BVH once it is large enough.
type World struct {
	Elements []*Element
	Min, Max Vec3
	center   Vec3
	radius   Real
	root     *BVHNode
}

func NewWorld(elems []*Element) *World {
	w := &World{Elements: elems}
	leaves := collectLeaves(elems)
	if len(leaves) > 0 {
		w.Min, w.Max = leaves[0].min, leaves[0].max
		for _, l := range leaves[1:] {
			w.Min, w.Max = aabbUnion(w.Min, w.Max, l.min, l.max)
		}
		w.center = w.Min.Add(w.Max).Mul(0.5)
		w.radius = w.Max.Sub(w.Min).Len() * 0.5
	}
	useBVH := len(leaves) >= BVHFromNObjects
	if AlwaysBVH {
		useBVH = len(leaves) > 0
	} else if NeverBVH {
		useBVH = false
	}
	if useBVH {
		w.root = buildBVH(leaves)
	}
	DebugLog("Created world: %d elements, center=%v, radius=%.4f, bvh=%t", len(elems), w.center, w.radius, w.root != nil)
	return w
}

func (w *World) Bounds() (Vec3, Real) { return w.center, w.radius }

func (w *World) Intersect(r Ray) (SurfaceHit, bool) {
	if w.root != nil {
		return traverseNearest(w.root, r, math.Inf(1))
	}
	return w.intersectAll(r)
}

// intersectAll tests every element; used for small scenes and as the BVH reference in tests.
func (w *World) intersectAll(r Ray) (SurfaceHit, bool) {
	bestT := math.Inf(1)
	var best SurfaceHit
	found := false
	for _, e := range w.Elements {
		if e == nil || e.Shape == nil {
			continue
		}
		if t, n, ok := e.Shape.Intersect(r); ok && t < bestT {
			bestT = t
			best = SurfaceHit{Element: e, T: t, Normal: n}
			found = true
		}
	}
	if !found {
		return SurfaceHit{}, false
	}
	best.Point = r.At(bestT)
	return best, true
}
