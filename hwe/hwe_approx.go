package hwe

import (
	"math"

	"github.com/tokenme/probab/dst"
)

// Approximate returns the P value of the Pearson chi square test (1 degree of
// freedom) for Hardy-Weinberg proportions at a biallelic site.
func Approximate(AA, Aa, aa float64) (p float64) {
	_, p = Pearson(AA, Aa, aa)
	return p
}

// Pearson returns the Pearson chi square statistic comparing the observed
// genotype counts against those expected from the observed allele frequencies,
// and its P value. It is more often used to flag genotyping error than as a
// formal test, for which Exact is preferred.
func Pearson(AA, Aa, aa float64) (chi, p float64) {
	A := AA*2 + Aa
	a := aa*2 + Aa

	// A monomorphic site is trivially at equilibrium; return chi = 0 rather
	// than NaN.
	if A == 0 || a == 0 {
		return 0, 1
	}

	N := AA + Aa + aa
	pA := A / (A + a)
	pa := a / (A + a)

	eAA := pA * pA * N
	eAa := 2.0 * pA * pa * N
	eaa := pa * pa * N

	chi = math.Pow(eAA-AA, 2)/eAA +
		math.Pow(eAa-Aa, 2)/eAa +
		math.Pow(eaa-aa, 2)/eaa

	return chi, chiSquareTail(chi)
}

// chiSquareTail is the upper tail of the chi square distribution with 1
// degree of freedom. dst panics on some degenerate input; those yield 1.
func chiSquareTail(chi float64) (p float64) {
	p = 1
	if chi <= 0 || math.IsNaN(chi) {
		return
	}
	defer func() { recover() }()

	p = 1.0 - dst.ChiSquareCDF(1)(chi)

	return
}
