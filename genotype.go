package plinkbed

// Genotype is one decoded bi-allelic call. The numeric value of each
// constant equals the raw 2-bit code from the BED payload, so decoding is
// a mask and shift with no translation table.
//
// Per the PLINK 1.9 format reference (cog-genomics), A1 is the first
// allele listed in the .bim file (usually the minor allele) and A2 the
// second (usually the major allele).
type Genotype uint8

const (
	HomozygousA1 Genotype = 0b00 // two copies of the first .bim allele
	Missing      Genotype = 0b01
	Heterozygous Genotype = 0b10
	HomozygousA2 Genotype = 0b11 // two copies of the second .bim allele
)

var genotypeNames = [4]string{
	HomozygousA1: "A1/A1",
	Missing:      "./.",
	Heterozygous: "A1/A2",
	HomozygousA2: "A2/A2",
}

func (g Genotype) String() string {
	if g > HomozygousA2 {
		return "invalid"
	}
	return genotypeNames[g]
}

// genotypesPerByte is fixed by the format: 2 bits per call, packed
// least-significant pair first.
const genotypesPerByte = 4

// unpackByte extracts the genotype at position pos (0..3) within a packed
// byte.
func unpackByte(b byte, pos int) Genotype {
	return Genotype(b>>(2*pos)) & 0b11
}

// unpackRow decodes a packed major-axis row into dst, which determines how
// many calls are read. Zero-padded trailing bits of a partial final byte
// are never visited because dst stops at the true element count.
func unpackRow(packed []byte, dst []Genotype) {
	for i := range dst {
		dst[i] = unpackByte(packed[i/genotypesPerByte], i%genotypesPerByte)
	}
}

// packedRowBytes is the packed size of one major-axis row holding n calls.
func packedRowBytes(n int) int64 {
	return int64((n + genotypesPerByte - 1) / genotypesPerByte)
}
