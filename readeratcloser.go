package plinkbed

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"golang.org/x/exp/mmap"
)

// ReaderAtCloser is all a genotype byte source has to provide: stateless
// random access and release. Every decode is a ReadAt over an immutable
// region, which is what makes concurrent readers safe without locking.
type ReaderAtCloser interface {
	io.ReaderAt
	io.Closer
}

// openPath opens a local or gs:// path for random access and reports its
// total size. Local files are memory-mapped, so a multi-gigabyte matrix
// is paged in on demand rather than loaded.
func openPath(path string, client *storage.Client) (ReaderAtCloser, int64, error) {
	if strings.HasPrefix(path, "gs://") {
		if client == nil {
			return nil, 0, pfx.Err(fmt.Errorf("%s: a storage client is required for gs:// paths", path))
		}
		return openGoogleStorage(path, client)
	}

	r, err := mmap.Open(path)
	if err != nil {
		return nil, 0, pfx.Err(err)
	}
	return r, int64(r.Len()), nil
}

// countLines reports the number of lines in a sidecar file. PLINK writes
// one sample per .fam line and one variant per .bim line, so the line
// counts are the matrix dimensions.
func countLines(path string, client *storage.Client) (int, error) {
	src, size, err := openPath(path, client)
	if err != nil {
		return 0, pfx.Err(err)
	}
	defer src.Close()

	count := 0
	scanner := bufio.NewScanner(io.NewSectionReader(src, 0, size))
	for scanner.Scan() {
		count++
	}
	if err := scanner.Err(); err != nil {
		return 0, pfx.Err(fmt.Errorf("%s: %v", path, err))
	}
	return count, nil
}
