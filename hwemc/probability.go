package hwemc

import (
	"math"

	"github.com/BenLubar/memoize"
)

var memoizedLogFactorial = memoize.Memoize(logFactorial)

func logFactorial(n int) float64 {
	lg, _ := math.Lgamma(float64(n) + 1)
	return lg
}

// LogFactorial returns log(n!) through the log-gamma function, so it costs
// the same for any n. Results are memoized. Safe for concurrent use.
func LogFactorial(n int) float64 {
	return memoizedLogFactorial.(func(int) float64)(n)
}

// LogConstant is the part of the table probability that only depends on the
// margins: log N! - log (2N)! + sum_i log n(i)!. Every table the chain visits
// shares it.
func LogConstant(t *Table) float64 {
	total := t.Total()
	constant := LogFactorial(total) - LogFactorial(2*total)
	for _, n := range t.AlleleCounts() {
		constant += LogFactorial(n)
	}

	return constant
}

// LnProbability is the log-probability of t under Hardy-Weinberg
// proportions, conditional on its allele counts.
func LnProbability(t *Table) float64 {
	lnP := LogConstant(t)

	for a := 0; a < t.NAlleles(); a++ {
		for b := 0; b <= a; b++ {
			lnP -= LogFactorial(t.Get(a, b))
		}
	}

	return lnP + float64(t.Heterozygotes())*math.Ln2
}
