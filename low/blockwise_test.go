package low

import (
	"bytes"
	"testing"
)

func TestBlockwiseProcessesCompleteBlocksOnly(t *testing.T) {
	b := NewBlockwise(8)
	var processed [][]byte
	process := func(block []byte) {
		processed = append(processed, append([]byte(nil), block...))
	}

	b.Update([]byte("01234567890123"), process) // 14 bytes: one full block + 6 pending
	if len(processed) != 1 {
		t.Fatalf("expected 1 block processed, got %d", len(processed))
	}
	if !bytes.Equal(processed[0], []byte("01234567")) {
		t.Fatalf("first block = %q, want %q", processed[0], "01234567")
	}
	if !bytes.Equal(b.Pending(), []byte("890123")) {
		t.Fatalf("pending = %q, want %q", b.Pending(), "890123")
	}
}

func TestBlockwiseCompletesPendingBlockAcrossCalls(t *testing.T) {
	b := NewBlockwise(4)
	var processed [][]byte
	process := func(block []byte) {
		processed = append(processed, append([]byte(nil), block...))
	}

	b.Update([]byte("ab"), process)
	b.Update([]byte("cd"), process)
	if len(processed) != 1 || !bytes.Equal(processed[0], []byte("abcd")) {
		t.Fatalf("expected a single block \"abcd\", got %v", processed)
	}
	if len(b.Pending()) != 0 {
		t.Fatalf("expected no pending bytes after an exact block boundary")
	}
}

func TestBlockwiseResetClearsPending(t *testing.T) {
	b := NewBlockwise(8)
	b.Update([]byte("abc"), func([]byte) {})
	if len(b.Pending()) == 0 {
		t.Fatalf("expected pending bytes before Reset")
	}
	b.Reset()
	if len(b.Pending()) != 0 {
		t.Fatalf("expected no pending bytes after Reset")
	}
}

func TestBlockwiseBlockSize(t *testing.T) {
	b := NewBlockwise(64)
	if b.BlockSize() != 64 {
		t.Fatalf("BlockSize() = %d, want 64", b.BlockSize())
	}
}
