package plinkbed

import "testing"

func TestUnpackByte(t *testing.T) {
	// 0b01001011: pairs from the least-significant end are 11, 10, 00, 01.
	for pos, want := range []Genotype{HomozygousA2, Heterozygous, HomozygousA1, Missing} {
		if got := unpackByte(0b01001011, pos); got != want {
			t.Fatalf("position %d: got %v, want %v", pos, got, want)
		}
	}
}

func TestUnpackRowPartialByte(t *testing.T) {
	dst := make([]Genotype, 6)
	unpackRow([]byte{0b11100100, 0b00001101}, dst)

	want := []Genotype{HomozygousA1, Missing, Heterozygous, HomozygousA2, Missing, HomozygousA2}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("call %d: got %v, want %v", i, dst[i], want[i])
		}
	}
}

func TestPackedRowBytes(t *testing.T) {
	for _, v := range []struct {
		n     int
		bytes int64
	}{
		{0, 0}, {1, 1}, {3, 1}, {4, 1}, {5, 2}, {8, 2}, {9, 3},
	} {
		if got := packedRowBytes(v.n); got != v.bytes {
			t.Fatalf("%d calls: got %d bytes, want %d", v.n, got, v.bytes)
		}
	}
}

func TestGenotypeString(t *testing.T) {
	for _, v := range []struct {
		g    Genotype
		want string
	}{
		{HomozygousA1, "A1/A1"},
		{Missing, "./."},
		{Heterozygous, "A1/A2"},
		{HomozygousA2, "A2/A2"},
		{Genotype(4), "invalid"},
	} {
		if got := v.g.String(); got != v.want {
			t.Fatalf("%d: got %q, want %q", uint8(v.g), got, v.want)
		}
	}
}
