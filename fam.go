package plinkbed

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/carbocation/pfx"
)

// Columns of a PLINK .fam file, in order.
const (
	famFamilyID = iota
	famSampleID
	famPaternalID
	famMaternalID
	famSex
	famPhenotype
	famColumns
)

// FAMRow is one sample from a .fam sidecar. Its row index in the file is
// the sample index used by BEDReader.
type FAMRow struct {
	FamilyID   string
	SampleID   string
	PaternalID string // "0" when unknown
	MaternalID string // "0" when unknown
	Sex        string // "1" male, "2" female, "0" unknown
	Phenotype  string // case/control or quantitative; "-9" when missing
}

// FAM reads .fam sidecar rows one at a time.
type FAM struct {
	path    string
	file    *os.File
	scanner *bufio.Scanner
	err     error
}

func OpenFAM(path string) (*FAM, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return &FAM{
		path:    path,
		file:    file,
		scanner: bufio.NewScanner(file),
	}, nil
}

func (f *FAM) Close() error {
	return f.file.Close()
}

func (f *FAM) Err() error {
	if f.err != nil {
		return f.err
	}

	return f.scanner.Err()
}

// Read returns the next sample, or nil at end of input or on error
// (check Err after a nil).
func (f *FAM) Read() *FAMRow {
	if !f.scanner.Scan() {
		return nil
	}

	cols := strings.Fields(f.scanner.Text())
	if len(cols) < famColumns {
		f.err = fmt.Errorf("%s: .fam row has %d columns, want %d", f.path, len(cols), famColumns)
		return nil
	}

	return &FAMRow{
		FamilyID:   cols[famFamilyID],
		SampleID:   cols[famSampleID],
		PaternalID: cols[famPaternalID],
		MaternalID: cols[famMaternalID],
		Sex:        cols[famSex],
		Phenotype:  cols[famPhenotype],
	}
}

// Count drains the remaining rows and reports how many there were. On a
// fresh reader this is the file's sample count.
func (f *FAM) Count() (int, error) {
	n := 0
	for f.Read() != nil {
		n++
	}
	return n, f.Err()
}
