package hwe

import "math"

// zeroCount stands in for empty genotype classes so that every log term of
// the G statistic is defined.
const zeroCount = 0.00000001

// LikelihoodRatio returns the likelihood-ratio (G) statistic for departure
// from Hardy-Weinberg proportions at a biallelic site, and its P value under
// a chi square distribution with 1 degree of freedom. A statistic that is not
// positive is reported as chi = 0, p = 1.
func LikelihoodRatio(AA, Aa, aa float64) (chi, p float64) {
	if AA == 0 {
		AA = zeroCount
	}
	if Aa == 0 {
		Aa = zeroCount
	}
	if aa == 0 {
		aa = zeroCount
	}

	N := AA + Aa + aa
	A := 2*AA + Aa
	a := 2*aa + Aa

	chi = -2 * (N*math.Log(N) + A*math.Log(A) + a*math.Log(a) + Aa*math.Ln2 -
		2*N*math.Log(2*N) - AA*math.Log(AA) - Aa*math.Log(Aa) - aa*math.Log(aa))

	if chi <= 0 || math.IsNaN(chi) {
		return 0, 1
	}

	return chi, chiSquareTail(chi)
}
