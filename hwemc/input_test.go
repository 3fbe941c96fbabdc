package hwemc

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadInput(t *testing.T) {
	in := `3
5
2 5
1 1 5
2000 1000 1000
`
	tab, params, err := ReadInput(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, 3, tab.NAlleles())
	assert.Equal(t, exampleCells, tab.Cells())
	assert.Equal(t, Parameters{Steps: 2000, Batches: 1000, BatchSize: 1000}, params)
}

func TestReadInputIsFreeFormat(t *testing.T) {
	tab, params, err := ReadInput(strings.NewReader("3 5 2 5\t1 1\n\n 5 10 2 7"))
	require.NoError(t, err)

	assert.Equal(t, exampleCells, tab.Cells())
	assert.Equal(t, Parameters{Steps: 10, Batches: 2, BatchSize: 7}, params)
}

func TestReadInputMalformed(t *testing.T) {
	tableErrors := map[string]string{
		"empty":              "",
		"two alleles":        "2 1 1 1 10 10 10",
		"too many alleles":   "41",
		"fractional count":   "3 5 2 1.5 1 1 5 10 10 10",
		"negative count":     "3 5 2 -5 1 1 5 10 10 10",
		"truncated triangle": "3 5 2 5 1",
		"word for alleles":   "three",
	}
	for name, in := range tableErrors {
		_, _, err := ReadInput(strings.NewReader(in))
		assert.ErrorIs(t, err, ErrMalformedTable, name)
		assert.ErrorIs(t, err, ErrMalformedInput, name)
	}

	paramErrors := map[string]string{
		"missing parameters": "3 5 2 5 1 1 5",
		"missing batch size": "3 5 2 5 1 1 5 10 10",
		"zero steps":         "3 5 2 5 1 1 5 0 10 10",
		"single batch":       "3 5 2 5 1 1 5 10 1 10",
		"fractional steps":   "3 5 2 5 1 1 5 2.5 10 10",
	}
	for name, in := range paramErrors {
		_, _, err := ReadInput(strings.NewReader(in))
		assert.ErrorIs(t, err, ErrMalformedParameters, name)
		assert.ErrorIs(t, err, ErrMalformedInput, name)
		assert.NotErrorIs(t, err, ErrMalformedTable, name)
	}
}

func TestReadInputReportsReadErrors(t *testing.T) {
	errDisk := errors.New("disk on fire")

	for name, r := range map[string]io.Reader{
		"before alleles":    iotest.ErrReader(errDisk),
		"inside triangle":   io.MultiReader(strings.NewReader("3 5 2 "), iotest.ErrReader(errDisk)),
		"inside parameters": io.MultiReader(strings.NewReader("3 5 2 5 1 1 5 10 "), iotest.ErrReader(errDisk)),
	} {
		_, _, err := ReadInput(r)
		assert.ErrorIs(t, err, errDisk, name)
		assert.NotErrorIs(t, err, ErrMalformedInput, name)
	}

	_, _, err := ReadInput(strings.NewReader("3 5 2 " + strings.Repeat("1", bufio.MaxScanTokenSize+1)))
	assert.ErrorIs(t, err, bufio.ErrTooLong)
	assert.NotErrorIs(t, err, ErrMalformedTable)
}

func TestWriteInputReadsBack(t *testing.T) {
	tab, err := NewTable(4, []int{3, 0, 2, 1, 4, 6, 0, 2, 1, 9})
	require.NoError(t, err)
	params := Parameters{Steps: 100, Batches: 5, BatchSize: 50}

	var buf bytes.Buffer
	require.NoError(t, WriteInput(&buf, tab, params))

	got, gotParams, err := ReadInput(&buf)
	require.NoError(t, err)
	assert.Equal(t, tab.Cells(), got.Cells())
	assert.Equal(t, params, gotParams)
}
