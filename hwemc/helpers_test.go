package hwemc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// scriptedSource replays a fixed list of draws, cycling when exhausted.
type scriptedSource struct {
	draws []float64
	i     int
}

func (s *scriptedSource) Next() float64 {
	v := s.draws[s.i%len(s.draws)]
	s.i++
	return v
}

// exampleCells is the three-allele table
//
//	5
//	2 5
//	1 1 5
var exampleCells = []int{5, 2, 5, 1, 1, 5}

func exampleTable(t *testing.T) *Table {
	t.Helper()
	tab, err := NewTable(3, exampleCells)
	require.NoError(t, err)
	return tab
}
