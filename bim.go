package plinkbed

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
)

// Columns of a PLINK .bim file, in order.
const (
	bimChromosome = iota
	bimVariantID
	bimMorgans
	bimCoordinate
	bimAllele1
	bimAllele2
	bimColumns
)

// BIMRow is one variant from a .bim sidecar. Its row index in the file
// is the SNP index used by BEDReader.
type BIMRow struct {
	Chromosome string
	Coordinate uint32 // Labeled "position" by most applications
	VariantID  string // E.g., RSID
	Allele1    string // Can contain > 1 character
	Allele2    string // Can contain > 1 character
	// The genetic distance (morgans) column is excluded intentionally;
	// plink itself writes 0 there in almost all pipelines.
}

// BIM reads .bim sidecar rows one at a time.
type BIM struct {
	path    string
	file    *os.File
	scanner *bufio.Scanner
	err     error
}

func OpenBIM(path string) (*BIM, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return &BIM{
		path:    path,
		file:    file,
		scanner: bufio.NewScanner(file),
	}, nil
}

func (b *BIM) Close() error {
	return b.file.Close()
}

func (b *BIM) Err() error {
	if b.err != nil {
		return b.err
	}

	return b.scanner.Err()
}

// Read returns the next variant, or nil at end of input or on error
// (check Err after a nil).
func (b *BIM) Read() *BIMRow {
	if !b.scanner.Scan() {
		return nil
	}

	cols := strings.Fields(b.scanner.Text())
	if len(cols) < bimColumns {
		b.err = fmt.Errorf("%s: .bim row has %d columns, want %d", b.path, len(cols), bimColumns)
		return nil
	}

	row := &BIMRow{
		Chromosome: cols[bimChromosome],
		VariantID:  cols[bimVariantID],
		Allele1:    cols[bimAllele1],
		Allele2:    cols[bimAllele2],
	}

	coord64, err := strconv.ParseUint(cols[bimCoordinate], 10, 32)
	if err != nil {
		b.err = fmt.Errorf("%s: variant %s: %v", b.path, row.VariantID, err)
		return nil
	}
	row.Coordinate = uint32(coord64)

	return row
}

// Count drains the remaining rows and reports how many there were. On a
// fresh reader this is the file's SNP count.
func (b *BIM) Count() (int, error) {
	n := 0
	for b.Read() != nil {
		n++
	}
	return n, b.Err()
}
