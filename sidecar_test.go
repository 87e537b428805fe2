package plinkbed

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSidecar(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBIMRead(t *testing.T) {
	path := writeSidecar(t, "v.bim",
		"1 rs123 0 1000 A G\n"+
			"2\trs456\t0\t2000\tAC\tT\n")

	b, err := OpenBIM(path)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	first := b.Read()
	if first == nil {
		t.Fatalf("first row: %v", b.Err())
	}
	if first.Chromosome != "1" || first.VariantID != "rs123" || first.Coordinate != 1000 ||
		first.Allele1 != "A" || first.Allele2 != "G" {
		t.Fatalf("first row mismatch: %+v", first)
	}

	second := b.Read()
	if second == nil {
		t.Fatalf("second row: %v", b.Err())
	}
	if second.Allele1 != "AC" {
		t.Fatalf("multi-character allele: got %q", second.Allele1)
	}

	if b.Read() != nil {
		t.Fatal("expected end of input")
	}
	if err := b.Err(); err != nil {
		t.Fatal(err)
	}
}

func TestBIMBadRows(t *testing.T) {
	for _, v := range []struct {
		name     string
		contents string
	}{
		{"short row", "1 rs123 0 1000 A\n"},
		{"bad coordinate", "1 rs123 0 pos A G\n"},
	} {
		b, err := OpenBIM(writeSidecar(t, "bad.bim", v.contents))
		if err != nil {
			t.Fatal(err)
		}

		if row := b.Read(); row != nil {
			t.Fatalf("%s: got row %+v, want nil", v.name, row)
		}
		if b.Err() == nil {
			t.Fatalf("%s: expected an error", v.name)
		}

		b.Close()
	}
}

func TestBIMCount(t *testing.T) {
	b, err := OpenBIM(writeSidecar(t, "v.bim",
		"1 rs1 0 100 A G\n1 rs2 0 200 C T\n1 rs3 0 300 G A\n"))
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	n, err := b.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("got %d variants, want 3", n)
	}
}

func TestFAMRead(t *testing.T) {
	f, err := OpenFAM(writeSidecar(t, "s.fam",
		"fam1 kid dad mom 1 -9\n"+
			"fam2 solo 0 0 2 1\n"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	first := f.Read()
	if first == nil {
		t.Fatalf("first row: %v", f.Err())
	}
	if first.FamilyID != "fam1" || first.SampleID != "kid" || first.PaternalID != "dad" ||
		first.MaternalID != "mom" || first.Sex != "1" || first.Phenotype != "-9" {
		t.Fatalf("first row mismatch: %+v", first)
	}

	second := f.Read()
	if second == nil {
		t.Fatalf("second row: %v", f.Err())
	}
	if second.Phenotype != "1" {
		t.Fatalf("phenotype: got %q", second.Phenotype)
	}

	if f.Read() != nil {
		t.Fatal("expected end of input")
	}
	if err := f.Err(); err != nil {
		t.Fatal(err)
	}
}

func TestFAMShortRow(t *testing.T) {
	f, err := OpenFAM(writeSidecar(t, "s.fam", "fam1 kid 0 0 1\n"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if row := f.Read(); row != nil {
		t.Fatalf("got row %+v, want nil", row)
	}
	if f.Err() == nil {
		t.Fatal("expected an error")
	}
}

func TestFAMCount(t *testing.T) {
	f, err := OpenFAM(writeSidecar(t, "s.fam",
		"fam1 a 0 0 1 -9\nfam1 b 0 0 2 -9\n"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	n, err := f.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("got %d samples, want 2", n)
	}
}

func TestCountLines(t *testing.T) {
	n, err := countLines(writeSidecar(t, "s.fam", "a\nb\nc\n"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("got %d lines, want 3", n)
	}

	if _, err := countLines(filepath.Join(t.TempDir(), "absent.fam"), nil); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
