package low

import (
	"encoding/hex"
	"testing"
)

// TestAes128EncryptBlockFips197Vector is FIPS 197 Appendix B's worked
// example.
func TestAes128EncryptBlockFips197Vector(t *testing.T) {
	key, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	pt, _ := hex.DecodeString("00112233445566778899aabbccddeeff")
	want, _ := hex.DecodeString("69c4e0d86a7b0430d8cdb78070b4c55a")

	k := NewAesKey128(key)
	got := make([]byte, 16)
	k.EncryptBlock(got, pt)
	if hex.EncodeToString(got) != hex.EncodeToString(want) {
		t.Fatalf("EncryptBlock = %x, want %x", got, want)
	}
}

func TestAes256EncryptBlockKnownAnswer(t *testing.T) {
	key, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
	pt, _ := hex.DecodeString("00112233445566778899aabbccddeeff")
	want, _ := hex.DecodeString("8ea2b7ca516745bfeafc49904b496089")

	k := NewAesKey256(key)
	got := make([]byte, 16)
	k.EncryptBlock(got, pt)
	if hex.EncodeToString(got) != hex.EncodeToString(want) {
		t.Fatalf("EncryptBlock = %x, want %x", got, want)
	}
}

func TestAesKeyZeroizeClearsSchedule(t *testing.T) {
	key, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	k := NewAesKey128(key)
	k.Zeroize()
	for _, rk := range k.roundKeys {
		if rk != ([4]uint32{}) {
			t.Fatalf("Zeroize left a nonzero round key word")
		}
	}
}
