package popgen

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hweInput = "3\n5\n2 5\n1 1 5\n2000 1000 1000\n"

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func readAll(t *testing.T, path string) string {
	t.Helper()
	rc, err := OpenInput(context.Background(), path, nil)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(data)
}

func TestOpenInputPlain(t *testing.T) {
	assert.Equal(t, hweInput, readAll(t, writeFile(t, "hwe.in", []byte(hweInput))))

	// Shorter than any compression signature.
	assert.Equal(t, "3\n", readAll(t, writeFile(t, "short.in", []byte("3\n"))))
}

func TestOpenInputGzip(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(hweInput))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	assert.Equal(t, hweInput, readAll(t, writeFile(t, "hwe.in.gz", buf.Bytes())))
}

func TestOpenInputErrors(t *testing.T) {
	_, err := OpenInput(context.Background(), writeFile(t, "hwe.in.Z", []byte{0x1f, 0x9d, 0x90, 0x33}), nil)
	require.Error(t, err)


	_, err = OpenInput(context.Background(), filepath.Join(t.TempDir(), "missing.in"), nil)
	require.Error(t, err)

	_, err = OpenInput(context.Background(), "gs://bucket/hwe.in", nil)
	require.Error(t, err)
}

func TestDetectDataType(t *testing.T) {
	for _, v := range []struct {
		data     []byte
		expected DataType
	}{
		{[]byte{0x1f, 0x8b, 0x08, 0, 0, 0}, DataTypeGzip},
		{[]byte{0x50, 0x4b, 0x03, 0x04, 0, 0}, DataTypeZip},
		{[]byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}, DataTypeXZ},
		{[]byte{0x42, 0x5a, 0x68, 0x39, 0, 0}, DataTypeBZip2},
		{[]byte{0x1f, 0x9d, 0x90}, DataTypeZ},
		{[]byte(hweInput), DataTypeNoCompression},
		{[]byte("3"), DataTypeNoCompression},
	} {
		dt, err := DetectDataType(bytes.NewReader(v.data))
		require.NoError(t, err)
		assert.Equal(t, v.expected, dt, "%x", v.data)
	}

	dt, err := DetectDataType(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Equal(t, DataTypeNoCompression, dt)
}

func TestSplitGSPath(t *testing.T) {
	bucket, object, err := SplitGSPath("gs://my-bucket/runs/hwe.in.gz")
	require.NoError(t, err)
	assert.Equal(t, "my-bucket", bucket)
	assert.Equal(t, "runs/hwe.in.gz", object)

	_, _, err = SplitGSPath("gs://my-bucket")
	require.Error(t, err)
}
