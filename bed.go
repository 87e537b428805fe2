// Package plinkbed reads PLINK 1.x BED files, the packed binary genotype
// matrices produced by plink --make-bed. It validates the 3-byte header,
// resolves the storage orientation (SNP-major or individual-major), and
// decodes 2-bit genotype calls on demand so that a matrix of millions of
// SNPs never has to be materialized. Local files are memory-mapped;
// gs:// paths are read with ranged requests.
package plinkbed

import (
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// BED header constants from the PLINK 1.9 format reference
// (https://www.cog-genomics.org/plink/1.9/formats#bed).
const (
	magicByte1   = 0x6C
	magicByte2   = 0x1B
	headerLength = 3

	modeByteIndividualMajor = 0x00
	modeByteSNPMajor        = 0x01
)

// BEDMode is the storage orientation of a BED file. The zero value,
// ModeAuto, is only meaningful as an OpenOptions field and means "accept
// whatever the header says".
type BEDMode int

const (
	ModeAuto BEDMode = iota
	SNPMajor
	IndividualMajor
)

func (m BEDMode) String() string {
	switch m {
	case SNPMajor:
		return "SNP-major"
	case IndividualMajor:
		return "individual-major"
	case ModeAuto:
		return "auto"
	}
	return fmt.Sprintf("BEDMode(%d)", int(m))
}

// resolveHeader reads the 3-byte header at the start of src, returning
// the storage orientation and the offset where packed genotypes begin.
// If expected is not ModeAuto and disagrees with the header, the open is
// refused rather than silently overridden.
func resolveHeader(src io.ReaderAt, expected BEDMode) (BEDMode, int64, error) {
	var header [headerLength]byte
	if n, err := src.ReadAt(header[:], 0); err != nil && n < headerLength {
		if err == io.EOF {
			return 0, 0, fmt.Errorf("%w: file is shorter than the %d-byte header", ErrInvalidFormat, headerLength)
		}
		return 0, 0, pfx.Err(err)
	}

	if header[0] != magicByte1 || header[1] != magicByte2 {
		return 0, 0, fmt.Errorf("%w: magic bytes 0x%02x 0x%02x, want 0x%02x 0x%02x",
			ErrInvalidFormat, header[0], header[1], magicByte1, magicByte2)
	}

	var mode BEDMode
	switch header[2] {
	case modeByteSNPMajor:
		mode = SNPMajor
	case modeByteIndividualMajor:
		mode = IndividualMajor
	default:
		return 0, 0, fmt.Errorf("%w: unrecognized mode byte 0x%02x", ErrInvalidFormat, header[2])
	}

	if expected != ModeAuto && expected != mode {
		return 0, 0, fmt.Errorf("%w: expected %v but the file is %v", ErrModeMismatch, expected, mode)
	}

	return mode, headerLength, nil
}

// OpenOptions adjusts OpenWithOptions. The zero value infers everything
// from the .bed path and its sidecars.
type OpenOptions struct {
	// Mode, when not ModeAuto, is a sanity check: opening fails with
	// ErrModeMismatch if the file header disagrees.
	Mode BEDMode

	// FAMPath and BIMPath override the sidecar locations, which default
	// to the .bed path with its extension swapped.
	FAMPath string
	BIMPath string

	// SampleCount and SNPCount are trusted when positive; a missing one
	// is derived by line-counting the corresponding sidecar file.
	SampleCount int
	SNPCount    int

	// Offset and Count restrict the visible window along the SNP axis:
	// SNP 0 of the reader is SNP Offset of the file, and Count SNPs are
	// visible (0 means all remaining).
	Offset int
	Count  int

	// RowCacheSize is the number of decoded SNP rows to retain (LRU).
	// Zero disables caching. Mostly useful for individual-major files,
	// where each SNP row is a strided gather.
	RowCacheSize int

	// Client is required to open gs:// paths.
	Client *storage.Client
}

// BEDReader is a read-only view over one BED file's genotype matrix,
// indexed by SNP regardless of the file's storage orientation. All
// accessors are pure reads over the immutable byte source and are safe
// for concurrent use; Close is not safe concurrently with reads.
type BEDReader struct {
	src  ReaderAtCloser
	mode BEDMode

	sampleCount int
	snpCount    int // visible SNPs, after windowing
	snpOffset   int // first visible SNP in file coordinates

	rowBytes      int64 // packed bytes per major-axis row
	payloadOffset int64

	cache  *rowCache
	closed bool
}

// Open opens a BED file along with its .fam and .bim sidecars, which are
// line-counted to size the matrix. The path may omit the .bed extension.
func Open(bedPath string) (*BEDReader, error) {
	return OpenWithOptions(bedPath, OpenOptions{})
}

// OpenWithOptions opens a BED file. The header is validated and the
// declared shape checked against the payload size before the reader is
// returned, so a malformed file fails here rather than mid-read.
func OpenWithOptions(bedPath string, opts OpenOptions) (*BEDReader, error) {
	prefix := strings.TrimSuffix(bedPath, ".bed")

	sampleCount, snpCount := opts.SampleCount, opts.SNPCount
	if sampleCount <= 0 {
		famPath := opts.FAMPath
		if famPath == "" {
			famPath = prefix + ".fam"
		}

		var err error
		if sampleCount, err = countLines(famPath, opts.Client); err != nil {
			return nil, pfx.Err(err)
		}
	}
	if snpCount <= 0 {
		bimPath := opts.BIMPath
		if bimPath == "" {
			bimPath = prefix + ".bim"
		}

		var err error
		if snpCount, err = countLines(bimPath, opts.Client); err != nil {
			return nil, pfx.Err(err)
		}
	}

	src, size, err := openPath(prefix+".bed", opts.Client)
	if err != nil {
		return nil, pfx.Err(err)
	}

	r, err := newBEDReader(src, size, opts, snpCount, sampleCount)
	if err != nil {
		src.Close()
		return nil, err
	}
	return r, nil
}

// newBEDReader validates the header and shape and assembles the view.
// size is the total byte length of src, header included.
func newBEDReader(src ReaderAtCloser, size int64, opts OpenOptions, snpCount, sampleCount int) (*BEDReader, error) {
	mode, payloadOffset, err := resolveHeader(src, opts.Mode)
	if err != nil {
		return nil, err
	}

	if snpCount <= 0 || sampleCount <= 0 {
		return nil, fmt.Errorf("%w: %d SNPs x %d samples", ErrShapeMismatch, snpCount, sampleCount)
	}

	// One addressing decision per file: everything downstream works in
	// terms of the major (row) axis stride and the minor (column) axis
	// element count.
	majorCount, minorCount := snpCount, sampleCount
	if mode == IndividualMajor {
		majorCount, minorCount = sampleCount, snpCount
	}
	rowBytes := packedRowBytes(minorCount)

	if need := int64(majorCount) * rowBytes; size-payloadOffset < need {
		return nil, fmt.Errorf("%w: %d SNPs x %d samples (%v) needs %d packed bytes, file has %d",
			ErrShapeMismatch, snpCount, sampleCount, mode, need, size-payloadOffset)
	}

	offset, count := opts.Offset, opts.Count
	if offset < 0 || offset > snpCount {
		return nil, fmt.Errorf("%w: SNP window offset %d of %d", ErrIndexOutOfRange, offset, snpCount)
	}
	if count == 0 {
		count = snpCount - offset
	}
	if count < 0 || offset+count > snpCount {
		return nil, fmt.Errorf("%w: SNP window [%d, %d) of %d", ErrIndexOutOfRange, offset, offset+count, snpCount)
	}

	r := &BEDReader{
		src:           src,
		mode:          mode,
		sampleCount:   sampleCount,
		snpCount:      count,
		snpOffset:     offset,
		rowBytes:      rowBytes,
		payloadOffset: payloadOffset,
	}
	if opts.RowCacheSize > 0 {
		r.cache = newRowCache(opts.RowCacheSize)
	}
	return r, nil
}

// SNPCount is the number of SNPs visible through this reader.
func (r *BEDReader) SNPCount() int { return r.snpCount }

// SampleCount is the number of samples in the file.
func (r *BEDReader) SampleCount() int { return r.sampleCount }

// MajorMode is the storage orientation resolved from the file header.
func (r *BEDReader) MajorMode() BEDMode { return r.mode }

// Close releases the underlying mapped file or object handle. Further
// access fails with ErrClosed. Close is idempotent.
func (r *BEDReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.src.Close()
}

// cell locates the packed byte holding (snp, sample) in file coordinates
// and the bit-pair position within it.
func (r *BEDReader) cell(fileSNP, sample int) (byteOffset int64, pos int) {
	row, col := fileSNP, sample
	if r.mode == IndividualMajor {
		row, col = sample, fileSNP
	}
	return r.payloadOffset + int64(row)*r.rowBytes + int64(col/genotypesPerByte), col % genotypesPerByte
}

// At returns the genotype of one sample at one SNP.
func (r *BEDReader) At(snp, sample int) (Genotype, error) {
	if r.closed {
		return 0, ErrClosed
	}
	if snp < 0 || snp >= r.snpCount {
		return 0, fmt.Errorf("%w: SNP %d of %d", ErrIndexOutOfRange, snp, r.snpCount)
	}
	if sample < 0 || sample >= r.sampleCount {
		return 0, fmt.Errorf("%w: sample %d of %d", ErrIndexOutOfRange, sample, r.sampleCount)
	}

	byteOffset, pos := r.cell(r.snpOffset+snp, sample)
	var b [1]byte
	if n, err := r.src.ReadAt(b[:], byteOffset); err != nil && n < 1 {
		return 0, pfx.Err(err)
	}
	return unpackByte(b[0], pos), nil
}

// Row decodes every sample's genotype at one SNP. For SNP-major files
// this is a single contiguous read; for individual-major files the calls
// live in sampleCount distinct rows, so the gather costs one byte read
// per sample. The slower path is a property of the file layout, not an
// error.
func (r *BEDReader) Row(snp int) ([]Genotype, error) {
	if r.closed {
		return nil, ErrClosed
	}
	if snp < 0 || snp >= r.snpCount {
		return nil, fmt.Errorf("%w: SNP %d of %d", ErrIndexOutOfRange, snp, r.snpCount)
	}

	if r.cache != nil {
		if row, ok := r.cache.get(snp); ok {
			return append([]Genotype(nil), row...), nil
		}
	}

	row, err := r.decodeRow(r.snpOffset + snp)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		// The cache keeps its own copy so later mutation of the returned
		// slice cannot corrupt repeated reads.
		r.cache.put(snp, append([]Genotype(nil), row...))
	}
	return row, nil
}

func (r *BEDReader) decodeRow(fileSNP int) ([]Genotype, error) {
	row := make([]Genotype, r.sampleCount)

	if r.mode == SNPMajor {
		packed := make([]byte, r.rowBytes)
		off := r.payloadOffset + int64(fileSNP)*r.rowBytes
		if n, err := r.src.ReadAt(packed, off); err != nil && n < len(packed) {
			return nil, pfx.Err(err)
		}
		unpackRow(packed, row)
		return row, nil
	}

	var b [1]byte
	for sample := range row {
		byteOffset, pos := r.cell(fileSNP, sample)
		if n, err := r.src.ReadAt(b[:], byteOffset); err != nil && n < 1 {
			return nil, pfx.Err(err)
		}
		row[sample] = unpackByte(b[0], pos)
	}
	return row, nil
}

// Slice decodes the SNP rows in [start, stop) taking every step-th row.
// Out-of-range bounds are clamped to [0, SNPCount] rather than rejected,
// matching sequence-slicing convention, so Slice(0, 1<<30, 1) is simply
// "all rows". The step must be at least 1.
func (r *BEDReader) Slice(start, stop, step int) ([][]Genotype, error) {
	if r.closed {
		return nil, ErrClosed
	}
	if step < 1 {
		return nil, fmt.Errorf("%w: slice step %d, want >= 1", ErrIndexOutOfRange, step)
	}

	if start < 0 {
		start = 0
	}
	if stop > r.snpCount {
		stop = r.snpCount
	}
	if start >= stop {
		return nil, nil
	}

	rows := make([][]Genotype, 0, (stop-start+step-1)/step)
	for i := start; i < stop; i += step {
		row, err := r.Row(i)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
