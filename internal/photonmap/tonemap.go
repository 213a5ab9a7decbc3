package photonmap

import "math"

// ToneMap compresses buf in place with the extended Reinhard operator on luminance,
// then normalizes by the largest channel so every value lands in [0,1].
func ToneMap(buf *RadianceBuffer, a Real) {
	n := buf.Width * buf.Height
	if n == 0 {
		return
	}
	lum := make([]Real, n)
	logSum := 0.0
	for p := 0; p < n; p++ {
		k := p * 3
		L := RGB{buf.Pix[k], buf.Pix[k+1], buf.Pix[k+2]}.Luminance()
		lum[p] = L
		logSum += math.Log(lumEpsilon + math.Max(L, 0))
	}
	lAvg := math.Exp(logSum / Real(n))

	tmax := 0.0
	for p := range lum {
		if t := a * lum[p] / lAvg; t > tmax {
			tmax = t
		}
	}

	peak := 0.0
	for p := 0; p < n; p++ {
		k := p * 3
		scale := 1.0
		if L := lum[p]; L > 0 && tmax > 0 {
			t := a * L / lAvg
			scale = t * (1 + t/(tmax*tmax)) / (1 + t) / L
		}
		for c := 0; c < 3; c++ {
			v := buf.Pix[k+c] * scale
			buf.Pix[k+c] = v
			if v > peak {
				peak = v
			}
		}
	}
	if peak > 0 {
		inv := 1 / peak
		for k := range buf.Pix {
			buf.Pix[k] *= inv
		}
	}
	DebugLog("Tone map: Lavg=%g tmax=%g peak=%g", lAvg, tmax, peak)
}
