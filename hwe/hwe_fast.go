package hwe

import "github.com/BenLubar/memoize"

var memoizedApproximate = memoize.Memoize(Approximate)

// Fast screens a site with the chi square approximation and only computes the
// exact P value when the approximate one falls below cutoff. Counts are
// truncated to integers for the exact test.
func Fast(AA, Aa, aa, cutoff float64) (p float64) {
	p = memoizedApproximate.(func(float64, float64, float64) float64)(AA, Aa, aa)

	if p < cutoff {
		return Exact(int64(AA), int64(Aa), int64(aa))
	}

	return p
}
