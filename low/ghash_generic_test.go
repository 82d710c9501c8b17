package low

import "testing"

func TestGhashZeroBlocksProduceZeroState(t *testing.T) {
	h := make([]byte, 16)
	h[0] = 0x80
	g := NewGhash(h)
	g.Update(make([]byte, 16))
	g.Update(make([]byte, 16))
	sum := g.Sum()
	for _, b := range sum {
		if b != 0 {
			t.Fatalf("GHASH of all-zero blocks was nonzero: %x", sum)
		}
	}
}

func TestGhashUpdatePaddedMatchesManualPadding(t *testing.T) {
	h := make([]byte, 16)
	h[3] = 0x5a
	h[15] = 0x01

	data := []byte("seventeen-byte!!!xy") // 19 bytes: one full block + a partial block
	data = data[:19]

	g1 := NewGhash(h)
	g1.UpdatePadded(data)

	var padded [32]byte
	copy(padded[:], data)
	g2 := NewGhash(h)
	g2.Update(padded[0:16])
	g2.Update(padded[16:32])

	if g1.Sum() != g2.Sum() {
		t.Fatalf("UpdatePadded disagreed with manual zero-padding")
	}
}

func TestGhashDifferentKeysDifferentState(t *testing.T) {
	block := bytes16(0xab)

	h1 := make([]byte, 16)
	h1[0] = 0x80
	g1 := NewGhash(h1)
	g1.Update(block)

	h2 := make([]byte, 16)
	h2[0] = 0x40
	g2 := NewGhash(h2)
	g2.Update(block)

	if g1.Sum() == g2.Sum() {
		t.Fatalf("distinct GHASH keys produced the same state for the same block")
	}
}

func bytes16(b byte) []byte {
	out := make([]byte, 16)
	for i := range out {
		out[i] = b
	}
	return out
}
