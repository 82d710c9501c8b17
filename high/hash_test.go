package high

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestSumSha256EmptyKnownAnswer(t *testing.T) {
	want, _ := hex.DecodeString("e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855")
	got := Sum(SHA256, nil)
	if !bytes.Equal(got, want) {
		t.Fatalf("Sum(SHA256, nil) = %x, want %x", got, want)
	}
}

func TestHasherCloneDiverges(t *testing.T) {
	h := New(SHA256)
	h.Update([]byte("shared prefix"))
	clone := h.Clone()

	h.Update([]byte("-a"))
	clone.Update([]byte("-b"))

	if bytes.Equal(h.Sum(), clone.Sum()) {
		t.Fatalf("cloned hashers diverging by input produced identical digests")
	}
}

func TestHasherUpdateSplitMatchesOneShot(t *testing.T) {
	data := bytes.Repeat([]byte("corecrypt"), 50)
	oneShot := Sum(SHA256, data)

	h := New(SHA256)
	for i := 0; i < len(data); i += 7 {
		end := i + 7
		if end > len(data) {
			end = len(data)
		}
		h.Update(data[i:end])
	}
	split := h.Sum()

	if !bytes.Equal(oneShot, split) {
		t.Fatalf("split updates disagreed with one-shot digest")
	}
}

// TestHmacSha256Rfc4231Case1 is RFC 4231 test case 1.
func TestHmacSha256Rfc4231Case1(t *testing.T) {
	key := bytes.Repeat([]byte{0x0b}, 20)
	data := []byte("Hi There")
	want, _ := hex.DecodeString("b0344c61d8db38535ca8afceaf0bf12b881dc200c9833da726e9376c2e32cff7")

	got := Hmac(SHA256, key, data)
	if !bytes.Equal(got, want) {
		t.Fatalf("Hmac(SHA256) = %x, want %x", got, want)
	}
}

func TestHmacKeyLongerThanBlockIsHashedFirst(t *testing.T) {
	shortKey := bytes.Repeat([]byte{0x42}, 10)
	longKey := bytes.Repeat([]byte{0x42}, 200) // longer than SHA-256's 64-byte block size
	data := []byte("payload")

	if bytes.Equal(Hmac(SHA256, shortKey, data), Hmac(SHA256, longKey, data)) {
		t.Fatalf("distinct keys produced identical HMACs")
	}
}

func TestSha384And512Distinct(t *testing.T) {
	data := []byte("corecrypt")
	d384 := Sum(SHA384, data)
	d512 := Sum(SHA512, data)
	if len(d384) != 48 {
		t.Fatalf("SHA-384 digest length = %d, want 48", len(d384))
	}
	if len(d512) != 64 {
		t.Fatalf("SHA-512 digest length = %d, want 64", len(d512))
	}
	if bytes.Equal(d384, d512[:48]) {
		t.Fatalf("SHA-384 and truncated SHA-512 agree, but they use distinct IVs")
	}
}
