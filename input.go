package popgen

import (
	"context"
	"io"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// OpenInput opens a local (~/ is expanded) or gs:// path and decompresses it if it is gzip,
// zip, xz, zlib or bzip2. client may be nil when no gs:// paths are used.
func OpenInput(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, error) {
	path, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}

	rs, _, err := MaybeOpenSeekerFromGoogleStorage(ctx, path, client)
	if err != nil {
		return nil, err
	}

	rc, err := MaybeDecompressReadCloser(rs)
	if err != nil {
		rs.Close()
		return nil, pfx.Err(err)
	}

	return rc, nil
}
