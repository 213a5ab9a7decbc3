package photonmap

import (
	"math"
)

func isFinite(x Real) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }

func imax(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// splitEven distributes n items across k workers, remainder spread over the first ones.
func splitEven(n, k int) []int {
	if k < 1 {
		k = 1
	}
	out := make([]int, k)
	base, rem := n/k, n%k
	for w := 0; w < k; w++ {
		out[w] = base
		if w < rem {
			out[w]++
		}
	}
	return out
}

// workerSeed derives an independent RNG seed per worker.
func workerSeed(seed int64, wid int) int64 {
	return seed ^ int64(uint64(wid+1)*0x9e3779b97f4a7c15)
}
