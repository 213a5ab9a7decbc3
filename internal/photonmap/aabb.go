package photonmap

type rayRecips struct {
	inv [3]Real
	par [3]bool // parallel flags (|D| < eps)
}

func computeRayRecips(d Vec3) rayRecips {
	const eps = 1e-18
	rr := rayRecips{}
	for a := 0; a < 3; a++ {
		if x := d[a]; x > eps || x < -eps {
			rr.inv[a] = 1 / x
		} else {
			rr.par[a] = true
		}
	}
	return rr
}

// rayAABB is the slab test; it returns the entry distance clamped at 0 when O is inside the box.
func rayAABB(O Vec3, minP, maxP Vec3, rr rayRecips) (bool, Real) {
	tmin, tmax := -1e300, 1e300
	for a := 0; a < 3; a++ {
		if rr.par[a] {
			if O[a] < minP[a] || O[a] > maxP[a] {
				return false, 0
			}
			continue
		}
		t1 := (minP[a] - O[a]) * rr.inv[a]
		t2 := (maxP[a] - O[a]) * rr.inv[a]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}
	if tmax < 0 || tmin > tmax {
		return false, 0
	}
	if tmin < 0 {
		tmin = 0
	}
	return true, tmin
}

func aabbUnion(minA, maxA, minB, maxB Vec3) (Vec3, Vec3) {
	return minV(minA, minB), maxV(maxA, maxB)
}

func centroid(a, b Real) Real { return 0.5 * (a + b) }
