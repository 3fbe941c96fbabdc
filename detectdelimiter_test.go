package popgen

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineDelimiter(t *testing.T) {
	snps := "rs1\t19\nrs22\t2\nrs333\t19\nrs4444\t7\nrs55555\tX\n"

	delim, r := DetermineDelimiter(strings.NewReader(snps))
	assert.Equal(t, '\t', delim)

	// The sampled bytes are replayed.
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, snps, string(data))
}

func TestExpandHome(t *testing.T) {
	for _, path := range []string{"hwe.in", "/tmp/hwe.in", "gs://bucket/hwe.in"} {
		got, err := ExpandHome(path)
		require.NoError(t, err)
		assert.Equal(t, path, got)
	}

	got, err := ExpandHome("~/hwe.in")
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(got, "~"))
	assert.True(t, strings.HasSuffix(got, "hwe.in"))
}
