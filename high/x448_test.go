package high

import (
	"bytes"
	"testing"
)

func TestX448DiffieHellmanAgreesAtHighLevel(t *testing.T) {
	var alice, bob X448PrivateKey
	copy(alice.scalar[:], bytes.Repeat([]byte{0x0a}, 56))
	copy(bob.scalar[:], bytes.Repeat([]byte{0x0b}, 56))

	alicePub, err := alice.PublicKey()
	if err != nil {
		t.Fatalf("alice.PublicKey: %v", err)
	}
	bobPub, err := bob.PublicKey()
	if err != nil {
		t.Fatalf("bob.PublicKey: %v", err)
	}

	aliceShared, err := alice.DiffieHellman(bobPub)
	if err != nil {
		t.Fatalf("alice.DiffieHellman: %v", err)
	}
	bobShared, err := bob.DiffieHellman(alicePub)
	if err != nil {
		t.Fatalf("bob.DiffieHellman: %v", err)
	}
	if !bytes.Equal(aliceShared, bobShared) {
		t.Fatalf("shared secrets disagree")
	}
}

func TestX448DiffieHellmanRejectsWrongLengthPeerKey(t *testing.T) {
	var k X448PrivateKey
	copy(k.scalar[:], bytes.Repeat([]byte{0x01}, 56))
	if _, err := k.DiffieHellman(make([]byte, 32)); err == nil {
		t.Fatalf("expected a 32-byte peer key to be rejected")
	}
}

func TestX448ZeroizeClearsScalar(t *testing.T) {
	k, err := GenerateX448Key()
	if err != nil {
		t.Fatalf("GenerateX448Key: %v", err)
	}
	k.Zeroize()
	for _, b := range k.scalar {
		if b != 0 {
			t.Fatalf("Zeroize left a nonzero byte in the scalar")
		}
	}
}
