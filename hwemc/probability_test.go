package hwemc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogFactorial(t *testing.T) {
	for _, v := range []struct {
		n    int
		want float64
	}{
		{0, 0},
		{1, 0},
		{2, math.Log(2)},
		{5, math.Log(120)},
		{10, math.Log(3628800)},
	} {
		assert.InDelta(t, v.want, LogFactorial(v.n), 1e-10, "n=%d", v.n)
	}

	// Large arguments must not be a problem.
	assert.False(t, math.IsInf(LogFactorial(1_000_000), 0))
}

// The probabilities of all tables sharing a set of allele counts sum to one.
func TestLnProbabilityIsADistribution(t *testing.T) {
	observed, err := NewTable(3, []int{1, 1, 0, 0, 1, 1})
	require.NoError(t, err)
	margins := observed.AlleleCounts()
	total := observed.Total()

	sum := 0.0
	tables := 0
	cells := make([]int, TriangleSize(3))
	var walk func(i, left int)
	walk = func(i, left int) {
		if i == len(cells)-1 {
			cells[i] = left
			tab, err := NewTable(3, cells)
			require.NoError(t, err)
			if assert.ObjectsAreEqual(margins, tab.AlleleCounts()) {
				sum += math.Exp(LnProbability(tab))
				tables++
			}
			return
		}
		for v := 0; v <= left; v++ {
			cells[i] = v
			walk(i+1, left-v)
		}
	}
	walk(0, total)

	assert.Greater(t, tables, 1)
	assert.InDelta(t, 1.0, sum, 1e-10)
}

func TestLnProbabilityTwoAlleleAnalog(t *testing.T) {
	// A three-allele table whose third allele is absent reduces to the
	// biallelic case: P(Aa = 2 | N = 2, nA = 2, na = 2) = 2/3.
	tab, err := NewTable(3, []int{0, 2, 0, 0, 0, 0})
	require.NoError(t, err)
	assert.InDelta(t, math.Log(2.0/3), LnProbability(tab), 1e-12)
}
