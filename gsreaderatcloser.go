package plinkbed

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// GSReaderAtCloser decorates a Google Storage object handle with ReadAt,
// so a BED file in a bucket can back a BEDReader without being
// downloaded.
type GSReaderAtCloser struct {
	storage.ObjectHandle
	Context context.Context
}

// ReadAt satisfies io.ReaderAt with one ranged request per call. The
// range reader may deliver the range in several chunks, so it is drained
// with ReadFull rather than a single Read.
func (o *GSReaderAtCloser) ReadAt(p []byte, offset int64) (n int, err error) {
	rdr, err := o.NewRangeReader(o.Context, offset, int64(len(p)))
	if err != nil {
		return 0, pfx.Err(err)
	}
	defer rdr.Close()

	n, err = io.ReadFull(rdr, p)
	if err == io.ErrUnexpectedEOF {
		// ReadAt convention for a read truncated by end-of-object.
		err = io.EOF
	}
	return n, err
}

// Close satisfies io.Closer. Each ReadAt closes its own range reader, so
// there is nothing left to release.
func (o *GSReaderAtCloser) Close() error {
	return nil
}

// openGoogleStorage opens gs://bucket/path for random access and reports
// the object size from its attributes.
func openGoogleStorage(path string, client *storage.Client) (ReaderAtCloser, int64, error) {
	pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
	if len(pathParts) != 2 {
		return nil, 0, pfx.Err(fmt.Errorf("gs:// path %q does not contain a bucket and an object name", path))
	}

	wrapped := &GSReaderAtCloser{
		ObjectHandle: *client.Bucket(pathParts[0]).Object(pathParts[1]),
		Context:      context.Background(),
	}

	attrs, err := wrapped.Attrs(wrapped.Context)
	if err != nil {
		return nil, 0, pfx.Err(fmt.Errorf("%s: %v", path, err))
	}
	return wrapped, attrs.Size, nil
}
