package low

import "testing"

// TestSha256CompressBlocksEmptyMessagePadding compresses the single padded
// block for the empty message (0x80 followed by zero bytes and a 64-bit
// zero length) directly, checking the resulting state words against the
// well-known SHA-256("") digest without going through any higher-level
// padding/finalization code.
func TestSha256CompressBlocksEmptyMessagePadding(t *testing.T) {
	var block [64]byte
	block[0] = 0x80

	got := Sha256CompressBlocks(Sha256IV, block[:])
	want := [8]uint32{
		0xe3b0c442, 0x98fc1c14, 0x9afbf4c8, 0x996fb924,
		0x27ae41e4, 0x649b934c, 0xa495991b, 0x7852b855,
	}
	if got != want {
		t.Fatalf("compressed state = %08x, want %08x", got, want)
	}
}

func TestSha256CompressBlocksMultiBlockMatchesSequential(t *testing.T) {
	var blocks [128]byte
	for i := range blocks {
		blocks[i] = byte(i)
	}

	oneShot := Sha256CompressBlocks(Sha256IV, blocks[:])

	sequential := Sha256CompressBlocks(Sha256IV, blocks[:64])
	sequential = Sha256CompressBlocks(sequential, blocks[64:])

	if oneShot != sequential {
		t.Fatalf("compressing two blocks at once disagreed with compressing sequentially")
	}
}
