package main

import (
	"math"

	"github.com/carbocation/bgen"
	"github.com/carbocation/popgen/hwemc"
)

// ExpectedGenotypeCounts sums the genotype probabilities of the counted
// diploid samples. The result is indexed like hwemc cells: BGEN orders
// unphased diploid genotypes colexicographically (11, 12, 22, 13, 23, 33, ...),
// which is the row-by-row lower triangle. Missing, phased and non-diploid
// samples are skipped.
func ExpectedGenotypeCounts(samples []bgen.SampleProbability, nAlleles int, subset bool, shouldCount []bool) []float64 {
	size := hwemc.TriangleSize(nAlleles)
	counts := make([]float64, size)

	for i, v := range samples {
		if subset && !shouldCount[i] {
			continue
		}
		if v.Missing || v.Ploidy != 2 {
			continue
		}

		switch len(v.Probabilities) {
		case size:
			for g, p := range v.Probabilities {
				counts[g] += p
			}
		case size - 1:
			// The final probability is implied.
			rest := 1.0
			for g, p := range v.Probabilities {
				counts[g] += p
				rest -= p
			}
			if rest > 0 {
				counts[size-1] += rest
			}
		}
	}

	return counts
}

// RoundCounts rounds expected counts to the nearest integer.
func RoundCounts(expected []float64) []int {
	out := make([]int, len(expected))
	for i, v := range expected {
		out[i] = int(math.Round(v))
	}
	return out
}

// ObservedAlleles returns the indices of the alleles present in the
// lower-triangular genotype counts of a nAlleles-allele site.
func ObservedAlleles(cells []int, nAlleles int) []int {
	copies := make([]int, nAlleles)
	g := 0
	for a := 0; a < nAlleles; a++ {
		for b := 0; b <= a; b++ {
			copies[a] += cells[g]
			copies[b] += cells[g]
			g++
		}
	}

	out := make([]int, 0, nAlleles)
	for a, n := range copies {
		if n > 0 {
			out = append(out, a)
		}
	}
	return out
}

// Restrict keeps the genotypes among the listed alleles, in the same
// lower-triangular layout.
func Restrict(cells []int, alleles []int) []int {
	out := make([]int, 0, hwemc.TriangleSize(len(alleles)))
	for i, a := range alleles {
		for _, b := range alleles[:i+1] {
			out = append(out, cells[a*(a+1)/2+b])
		}
	}
	return out
}

// MinorAlleleFrequency is one minus the frequency of the most common allele.
func MinorAlleleFrequency(expected []float64, nAlleles int) float64 {
	copies := make([]float64, nAlleles)
	total := 0.0
	g := 0
	for a := 0; a < nAlleles; a++ {
		for b := 0; b <= a; b++ {
			copies[a] += expected[g]
			copies[b] += expected[g]
			total += 2 * expected[g]
			g++
		}
	}
	if total == 0 {
		return math.NaN()
	}

	major := 0.0
	for _, n := range copies {
		if n > major {
			major = n
		}
	}
	return 1 - major/total
}
