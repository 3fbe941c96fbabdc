package hwe

import (
	"math"

	"github.com/BenLubar/memoize"
)

var memoizedExactFor = memoize.Memoize(exactFor)
var memoizedLogFactorial = memoize.Memoize(logFactorial)

// tieTolerance is the relative slack under which two heterozygote counts are
// treated as equally probable. Equiprobable counts computed through Lgamma
// can differ by a few ulps.
const tieTolerance = 1e-7

// Exact computes the exact Hardy-Weinberg P value of a biallelic site
// (Wigginton, Cutler and Abecasis 2005): the summed probability of every
// heterozygote count, at the observed allele counts, that is no more probable
// than the observed one. Exact is safe to call from concurrent goroutines.
// See http://courses.washington.edu/b516/lectures_2009/HWE_Lecture.pdf slides
// 21-22, and https://www.cog-genomics.org/software/stats for reference values.
func Exact(AA, Aa, aa int64) (p float64) {
	// AA is the common homozygote.
	if aa > AA {
		AA, aa = aa, AA
	}

	exact := memoizedExactFor.(func(int64, int64, int64) float64)
	baseP := exact(AA, Aa, aa)
	sumP := baseP
	threshold := baseP * (1 + tieTolerance)

	// Walk away from the observed heterozygote count in both directions. Each
	// step moves two alleles between the homozygote classes and the
	// heterozygotes, keeping the allele counts fixed.
	for _, dir := range []int64{1, -1} {
		for nAA, nAa, naa := AA-dir, Aa+2*dir, aa-dir; nAA >= 0 && nAa >= 0 && naa >= 0; nAA, nAa, naa = nAA-dir, nAa+2*dir, naa-dir {
			newest := exact(nAA, nAa, naa)

			if newest > threshold {
				continue
			}

			if newest <= math.SmallestNonzeroFloat64 {
				break
			}

			sumP += newest
		}
	}

	if sumP > 1 {
		sumP = 1
	}

	return sumP
}

// exactFor yields the probability of observing exactly Aa heterozygotes in a
// sample of AA+Aa+aa individuals with 2*AA+Aa and 2*aa+Aa copies of the two
// alleles:
//
//	2^Aa N! A! a! / ((2N)! AA! Aa! aa!)
func exactFor(AA, Aa, aa int64) float64 {
	lf := memoizedLogFactorial.(func(int64) float64)

	A := AA*2 + Aa
	a := aa*2 + Aa
	N := AA + Aa + aa

	lnP := float64(Aa)*math.Ln2 + lf(N) + lf(A) + lf(a) -
		lf(2*N) - lf(AA) - lf(Aa) - lf(aa)

	return math.Exp(lnP)
}

func logFactorial(n int64) float64 {
	v, _ := math.Lgamma(float64(n) + 1)
	return v
}
