package photonmap

import (
	"math"
	"sort"
)

type bvhLeaf struct {
	min, max Vec3
	elem     *Element
}

type BVHNode struct {
	min, max Vec3
	left     *BVHNode
	right    *BVHNode
	leafObjs []bvhLeaf // non-nil ⇒ leaf
}

func collectLeaves(elems []*Element) []bvhLeaf {
	out := make([]bvhLeaf, 0, len(elems))
	for _, e := range elems {
		if e == nil || e.Shape == nil {
			continue
		}
		lo, hi := e.Shape.Bounds()
		out = append(out, bvhLeaf{min: lo, max: hi, elem: e})
	}
	return out
}

func buildBVH(objs []bvhLeaf) *BVHNode {
	n := len(objs)
	if n == 0 {
		return nil
	}
	minP, maxP := objs[0].min, objs[0].max
	for i := 1; i < n; i++ {
		minP, maxP = aabbUnion(minP, maxP, objs[i].min, objs[i].max)
	}
	if n <= BVHMaxLeafSize {
		return &BVHNode{min: minP, max: maxP, leafObjs: objs}
	}

	// Widest centroid spread picks the split axis.
	var cmin, cmax Vec3
	for i := range objs {
		var c Vec3
		for a := 0; a < 3; a++ {
			c[a] = centroid(objs[i].min[a], objs[i].max[a])
		}
		if i == 0 {
			cmin, cmax = c, c
			continue
		}
		cmin, cmax = minV(cmin, c), maxV(cmax, c)
	}
	spread := cmax.Sub(cmin)
	axis := 0
	if spread[1] > spread[axis] {
		axis = 1
	}
	if spread[2] > spread[axis] {
		axis = 2
	}
	// If all centroids coincide (degenerate), fall back to longest box extent axis.
	if spread[axis] <= 1e-18 {
		ext := maxP.Sub(minP)
		axis = 0
		if ext[1] > ext[axis] {
			axis = 1
		}
		if ext[2] > ext[axis] {
			axis = 2
		}
	}

	// Sort by chosen centroid axis, split at median
	sort.SliceStable(objs, func(i, j int) bool {
		return centroid(objs[i].min[axis], objs[i].max[axis]) < centroid(objs[j].min[axis], objs[j].max[axis])
	})
	mid := n / 2
	return &BVHNode{
		min:   minP,
		max:   maxP,
		left:  buildBVH(objs[:mid]),
		right: buildBVH(objs[mid:]),
	}
}

// traverseNearest is the iterative near-to-far traversal; it prunes by the current best t.
func traverseNearest(root *BVHNode, r Ray, tMax Real) (SurfaceHit, bool) {
	if root == nil {
		return SurfaceHit{}, false
	}
	bestT := tMax
	var best SurfaceHit
	found := false
	rr := computeRayRecips(r.Dir)

	type entry struct {
		n    *BVHNode
		tmin Real
	}
	stack := []entry{{n: root, tmin: 0}}
	for len(stack) > 0 {
		// pop
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		ok, tmin := rayAABB(r.Origin, e.n.min, e.n.max, rr)
		if !ok || tmin > bestT {
			continue
		}

		if e.n.leafObjs != nil {
			for i := range e.n.leafObjs {
				l := &e.n.leafObjs[i]
				if t, nrm, ok := l.elem.Shape.Intersect(r); ok && t < bestT {
					bestT = t
					best = SurfaceHit{Element: l.elem, T: t, Normal: nrm}
					found = true
				}
			}
			continue
		}

		// order children near→far (push far first so near is processed next)
		var lOK, rOK bool
		var lT, rT Real
		if e.n.left != nil {
			lOK, lT = rayAABB(r.Origin, e.n.left.min, e.n.left.max, rr)
			lOK = lOK && lT <= bestT
		}
		if e.n.right != nil {
			rOK, rT = rayAABB(r.Origin, e.n.right.min, e.n.right.max, rr)
			rOK = rOK && rT <= bestT
		}
		if lOK && rOK {
			if lT < rT {
				stack = append(stack, entry{e.n.right, rT}, entry{e.n.left, lT})
			} else {
				stack = append(stack, entry{e.n.left, lT}, entry{e.n.right, rT})
			}
		} else if lOK {
			stack = append(stack, entry{e.n.left, lT})
		} else if rOK {
			stack = append(stack, entry{e.n.right, rT})
		}
	}

	if found && bestT < math.Inf(1) {
		best.Point = r.At(best.T)
		return best, true
	}
	return SurfaceHit{}, false
}
