package hwemc

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTableReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTableReport(&buf, exampleTable(t), Parameters{Steps: 2000, Batches: 1000, BatchSize: 1000}))

	want := "Observed genotype frequencies: \n\n" +
		"------\n" +
		"|   5|\n" +
		"-----------\n" +
		"|   2|   5|\n" +
		"----------------\n" +
		"|   1|   1|   5|\n" +
		"----------------\n\n" +
		"Total number of alleles:  3\n" +
		"Total number of individuals: 19\n\n" +
		"Number of initial steps: 2000\n" +
		"Number of chunks: 1000\n" +
		"Size of each chunk: 1000\n\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteOutcomeReport(t *testing.T) {
	o := Outcome{
		PValue:      0.0123,
		StdErr:      0.0004,
		LnPObserved: -10.5,
		Iterations:  100,
		Eligible:    [3]int{50, 30, 20},
		Accepted:    [3]int{0, 10, 5},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteOutcomeReport(&buf, o))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "Randomization test P-value:  0.0123  ( 0.0004) \n"), out)
	assert.Contains(t, out, "Percentage of partial switches:  30.00 \n")
	assert.Contains(t, out, "Percentage of full switches:  20.00 \n")
	assert.Contains(t, out, "Percentage of all switches:  50.00 \n")
	assert.Contains(t, out, "Percentage of all switches accepted:  15.00 \n")
	assert.Contains(t, out, "Observed ln P: -10.500000\n")
}

func TestWriteTimeStamp(t *testing.T) {
	now := time.Date(2022, time.March, 4, 15, 4, 5, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, WriteTimeStamp(&buf, 1500*time.Millisecond, now))
	assert.Equal(t, "\nTotal elapsed time: 1.5s\nDate and time: Fri Mar  4 15:04:05 2022\n", buf.String())
}

func TestWriteBatchHistogram(t *testing.T) {
	o := Outcome{BatchPValues: []float64{0.1, 0.2, 0.2, 0.3, 0.4, 0.4, 0.4, 0.9}}

	var buf bytes.Buffer
	require.NoError(t, WriteBatchHistogram(&buf, o, 5))
	assert.True(t, strings.HasPrefix(buf.String(), "\nBatch P-values: median 0.35, quartiles 0.2 - 0.4\n"), buf.String())
	assert.Greater(t, strings.Count(buf.String(), "\n"), 5)

	require.Error(t, WriteBatchHistogram(&buf, Outcome{}, 5))
}
