package hwemc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReplicates(t *testing.T) {
	observed := exampleTable(t)
	params := Parameters{Steps: 200, Batches: 10, BatchSize: 100}

	sources := []RandomSource{NewRandomSource(1), NewRandomSource(2), NewRandomSource(3)}
	combined, each, err := RunReplicates(context.Background(), observed, params, sources)
	require.NoError(t, err)
	require.Len(t, each, 3)

	assert.Len(t, combined.BatchPValues, 30)
	assert.Equal(t, 3*params.Iterations(), combined.Iterations)
	assert.Equal(t, exampleCells, observed.Cells())

	eligible := 0
	for _, n := range combined.Eligible {
		eligible += n
	}
	assert.Equal(t, combined.Iterations, eligible)

	single, err := Test(context.Background(), observed, params, NewRandomSource(2))
	require.NoError(t, err)
	assert.Equal(t, single, each[1])
}

func TestRunReplicatesRejectsBadInput(t *testing.T) {
	observed := exampleTable(t)

	_, _, err := RunReplicates(context.Background(), observed, Parameters{Steps: 1, Batches: 1, BatchSize: 1}, []RandomSource{NewRandomSource(1)})
	require.ErrorIs(t, err, ErrMalformedParameters)

	_, _, err = RunReplicates(context.Background(), observed, Parameters{Steps: 1, Batches: 2, BatchSize: 1}, nil)
	require.Error(t, err)
}

func TestCombineOutcomesOfOne(t *testing.T) {
	observed := exampleTable(t)
	out, err := Test(context.Background(), observed, Parameters{Steps: 100, Batches: 8, BatchSize: 50}, NewRandomSource(7))
	require.NoError(t, err)

	combined := CombineOutcomes([]Outcome{out})
	assert.Equal(t, out.PValue, combined.PValue)
	assert.Equal(t, out.StdErr, combined.StdErr)
	assert.Equal(t, out.Eligible, combined.Eligible)
	assert.InDelta(t, out.LnPStdDev, combined.LnPStdDev, 1e-9)
}

func TestCombineOutcomesLeavesFinalLnPUnset(t *testing.T) {
	combined := CombineOutcomes([]Outcome{
		{LnPObserved: -4, LnPFinal: -3, BatchPValues: []float64{0.25, 0.75}},
		{LnPObserved: -4, LnPFinal: -6, BatchPValues: []float64{0.5, 0.5}},
	})

	assert.Equal(t, -4.0, combined.LnPObserved)
	assert.Zero(t, combined.LnPFinal)
	assert.Equal(t, 0.5, combined.PValue)
	assert.Len(t, combined.BatchPValues, 4)
}
