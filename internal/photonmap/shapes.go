package photonmap

import (
	"math"
)

// Shape is the ray–geometry collaborator behind an Element.
type Shape interface {
	// Intersect returns the nearest t > epsDist and the geometric (outward) unit normal there.
	Intersect(r Ray) (Real, Vec3, bool)
	Bounds() (Vec3, Vec3)
}

// boundsPad keeps flat shapes from producing zero-thickness boxes.
const boundsPad = 1e-7

func padBounds(lo, hi Vec3) (Vec3, Vec3) {
	p := Vec3{boundsPad, boundsPad, boundsPad}
	return lo.Sub(p), hi.Add(p)
}

// --- sphere ---

type Sphere struct {
	Center Vec3
	Radius Real
}

func (s *Sphere) Intersect(r Ray) (Real, Vec3, bool) {
	oc := r.Origin.Sub(s.Center)
	b := oc.Dot(r.Dir)
	c := oc.Dot(oc) - s.Radius*s.Radius
	disc := b*b - c
	if disc < 0 {
		return 0, Vec3{}, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t <= epsDist {
		t = -b + sq
		if t <= epsDist {
			return 0, Vec3{}, false
		}
	}
	n := r.At(t).Sub(s.Center).Mul(1 / s.Radius)
	return t, n, true
}

func (s *Sphere) Bounds() (Vec3, Vec3) {
	rv := Vec3{s.Radius, s.Radius, s.Radius}
	return padBounds(s.Center.Sub(rv), s.Center.Add(rv))
}

// --- triangle ---

// Triangle normal follows (B-A)×(C-A).
type Triangle struct {
	A, B, C Vec3
}

func (tr *Triangle) Intersect(r Ray) (Real, Vec3, bool) {
	e1 := tr.B.Sub(tr.A)
	e2 := tr.C.Sub(tr.A)
	p := r.Dir.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < 1e-14 {
		return 0, Vec3{}, false
	}
	inv := 1 / det
	s := r.Origin.Sub(tr.A)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, Vec3{}, false
	}
	q := s.Cross(e1)
	v := r.Dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, Vec3{}, false
	}
	t := e2.Dot(q) * inv
	if t <= epsDist {
		return 0, Vec3{}, false
	}
	return t, norm(e1.Cross(e2)), true
}

func (tr *Triangle) Bounds() (Vec3, Vec3) {
	return padBounds(minV(tr.A, minV(tr.B, tr.C)), maxV(tr.A, maxV(tr.B, tr.C)))
}

// --- quad ---

// Quad is the parallelogram Corner + s·U + t·V, s,t ∈ [0,1]; normal follows U×V.
type Quad struct {
	Corner, U, V Vec3
}

func (q *Quad) Intersect(r Ray) (Real, Vec3, bool) {
	n := q.U.Cross(q.V)
	den := n.Dot(r.Dir)
	if math.Abs(den) < 1e-14 {
		return 0, Vec3{}, false
	}
	t := n.Dot(q.Corner.Sub(r.Origin)) / den
	if t <= epsDist {
		return 0, Vec3{}, false
	}
	// plane coordinates of the hit
	rel := r.At(t).Sub(q.Corner)
	nn := n.Dot(n)
	a := n.Dot(rel.Cross(q.V)) / nn
	b := n.Dot(q.U.Cross(rel)) / nn
	if a < 0 || a > 1 || b < 0 || b > 1 {
		return 0, Vec3{}, false
	}
	return t, norm(n), true
}

func (q *Quad) Bounds() (Vec3, Vec3) {
	c0 := q.Corner
	c1 := q.Corner.Add(q.U)
	c2 := q.Corner.Add(q.V)
	c3 := c1.Add(q.V)
	return padBounds(minV(minV(c0, c1), minV(c2, c3)), maxV(maxV(c0, c1), maxV(c2, c3)))
}

// --- disk ---

type Disk struct {
	Center Vec3
	Normal Vec3 // unit
	Radius Real
}

func (d *Disk) Intersect(r Ray) (Real, Vec3, bool) {
	den := d.Normal.Dot(r.Dir)
	if math.Abs(den) < 1e-14 {
		return 0, Vec3{}, false
	}
	t := d.Normal.Dot(d.Center.Sub(r.Origin)) / den
	if t <= epsDist {
		return 0, Vec3{}, false
	}
	if distSq(r.At(t), d.Center) > d.Radius*d.Radius {
		return 0, Vec3{}, false
	}
	return t, d.Normal, true
}

func (d *Disk) Bounds() (Vec3, Vec3) {
	// per-axis extent of a disk: r·sqrt(1 - n_a²)
	var e Vec3
	for a := 0; a < 3; a++ {
		e[a] = d.Radius * math.Sqrt(math.Max(0, 1-d.Normal[a]*d.Normal[a]))
	}
	return padBounds(d.Center.Sub(e), d.Center.Add(e))
}
