package plinkbed

import "testing"

func TestRowCacheEviction(t *testing.T) {
	c := newRowCache(2)

	c.put(0, []Genotype{HomozygousA1})
	c.put(1, []Genotype{Heterozygous})

	// Touch 0 so 1 becomes the eviction candidate.
	if _, ok := c.get(0); !ok {
		t.Fatal("row 0 should be cached")
	}

	c.put(2, []Genotype{HomozygousA2})

	if _, ok := c.get(1); ok {
		t.Fatal("row 1 should have been evicted")
	}
	if _, ok := c.get(0); !ok {
		t.Fatal("row 0 should have survived")
	}
	if row, ok := c.get(2); !ok || row[0] != HomozygousA2 {
		t.Fatalf("row 2: ok=%v row=%v", ok, row)
	}
}

func TestRowCacheDuplicatePut(t *testing.T) {
	c := newRowCache(2)

	c.put(0, []Genotype{Missing})
	c.put(0, []Genotype{HomozygousA1}) // same decode racing in twice

	row, ok := c.get(0)
	if !ok {
		t.Fatal("row 0 should be cached")
	}
	if row[0] != Missing {
		t.Fatalf("resident value replaced: got %v", row[0])
	}
}

// A caller mutating a returned row must not poison later reads.
func TestCachedRowsAreIsolated(t *testing.T) {
	r, err := OpenWithOptions(writeFileset(t, modeByteIndividualMajor, testMatrix), OpenOptions{RowCacheSize: 4})
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	row, err := r.Row(0)
	if err != nil {
		t.Fatal(err)
	}
	for j := range row {
		row[j] = Missing
	}

	again, err := r.Row(0)
	if err != nil {
		t.Fatal(err)
	}
	for j := range again {
		if again[j] != testMatrix[0][j] {
			t.Fatalf("call %d: got %v, want %v after caller mutation", j, again[j], testMatrix[0][j])
		}
	}
}

// Cached and uncached readers must agree everywhere.
func TestCacheDoesNotChangeValues(t *testing.T) {
	bedPath := writeFileset(t, modeByteIndividualMajor, testMatrix)

	cached, err := OpenWithOptions(bedPath, OpenOptions{RowCacheSize: 1})
	if err != nil {
		t.Fatal(err)
	}
	defer cached.Close()

	plain, err := Open(bedPath)
	if err != nil {
		t.Fatal(err)
	}
	defer plain.Close()

	// Two passes so the second pass mixes cache hits and evictions.
	for pass := 0; pass < 2; pass++ {
		for i := range testMatrix {
			a, err := cached.Row(i)
			if err != nil {
				t.Fatal(err)
			}
			b, err := plain.Row(i)
			if err != nil {
				t.Fatal(err)
			}
			for j := range a {
				if a[j] != b[j] {
					t.Fatalf("pass %d, (%d, %d): cached %v, plain %v", pass, i, j, a[j], b[j])
				}
			}
		}
	}
}
