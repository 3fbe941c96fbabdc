package hwemc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomSourceIsReproducible(t *testing.T) {
	a, b := NewRandomSource(7), NewRandomSource(7)
	for i := 0; i < 1000; i++ {
		x := a.Next()
		require.Equal(t, x, b.Next())
		require.True(t, x >= 0 && x < 1)
	}
}

func TestSources(t *testing.T) {
	sources, seeds, err := Sources(5, 3)
	require.NoError(t, err)
	assert.Equal(t, []uint64{5, 6, 7}, seeds)
	require.Len(t, sources, 3)

	ref := NewRandomSource(6)
	for i := 0; i < 10; i++ {
		assert.Equal(t, ref.Next(), sources[1].Next())
	}

	_, seeds, err = Sources(0, 2)
	require.NoError(t, err)
	assert.Equal(t, seeds[0]+1, seeds[1])
}
