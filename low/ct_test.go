package low

import "testing"

func TestCtEqualIdenticalSlices(t *testing.T) {
	a := []byte{1, 2, 3, 4, 5}
	b := []byte{1, 2, 3, 4, 5}
	if !CtEqual(a, b) {
		t.Fatalf("CtEqual reported identical slices as unequal")
	}
}

func TestCtEqualDiffersAtEveryPosition(t *testing.T) {
	base := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	for i := range base {
		other := append([]byte(nil), base...)
		other[i] ^= 1
		if CtEqual(base, other) {
			t.Fatalf("CtEqual reported slices differing at index %d as equal", i)
		}
	}
}

func TestCtEqualDifferentLengths(t *testing.T) {
	if CtEqual([]byte{1, 2, 3}, []byte{1, 2}) {
		t.Fatalf("CtEqual reported slices of different length as equal")
	}
}

func TestCtEqualEmptySlices(t *testing.T) {
	if !CtEqual(nil, []byte{}) {
		t.Fatalf("CtEqual reported two empty slices as unequal")
	}
}
