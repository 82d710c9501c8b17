package low

import "testing"

func TestZeroizeClearsBytes(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	Zeroize(buf)
	for _, b := range buf {
		if b != 0 {
			t.Fatalf("Zeroize left a nonzero byte: %v", buf)
		}
	}
}

func TestZeroizeU64ClearsWords(t *testing.T) {
	words := []uint64{1, 2, 3}
	ZeroizeU64(words)
	for _, w := range words {
		if w != 0 {
			t.Fatalf("ZeroizeU64 left a nonzero word: %v", words)
		}
	}
}

func TestZeroizeU32ClearsWords(t *testing.T) {
	words := []uint32{1, 2, 3}
	ZeroizeU32(words)
	for _, w := range words {
		if w != 0 {
			t.Fatalf("ZeroizeU32 left a nonzero word: %v", words)
		}
	}
}
