package plinkbed

import "errors"

// Sentinel errors returned by this package. All errors surfaced by Open,
// At, Row, and Slice wrap one of these, so callers can classify failures
// with errors.Is regardless of the added context.
var (
	// ErrInvalidFormat means the file is not a PLINK 1.x BED file: it is
	// shorter than the 3-byte header, its magic bytes are wrong, or its
	// mode byte is unrecognized.
	ErrInvalidFormat = errors.New("plinkbed: invalid BED file")

	// ErrModeMismatch means the caller declared an expected major mode
	// and the file header disagrees.
	ErrModeMismatch = errors.New("plinkbed: major mode mismatch")

	// ErrShapeMismatch means the declared SNP and sample counts require
	// more packed bytes than the file provides.
	ErrShapeMismatch = errors.New("plinkbed: genotype payload does not match declared shape")

	// ErrIndexOutOfRange means a SNP or sample index fell outside the
	// matrix, or a slice step was not a positive integer.
	ErrIndexOutOfRange = errors.New("plinkbed: index out of range")

	// ErrClosed means the reader was used after Close.
	ErrClosed = errors.New("plinkbed: reader is closed")
)
