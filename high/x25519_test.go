package high

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func mustHexX25519(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("decode %q: %v", s, err)
	}
	return b
}

// TestX25519KnownAnswer pins independently computed public keys and shared
// secret for two fixed scalars (repeated 0x11 / 0x22 bytes), cross-checked
// against an external X25519 implementation before being recorded here.
func TestX25519KnownAnswer(t *testing.T) {
	var alice, bob X25519PrivateKey
	copy(alice.scalar[:], bytes.Repeat([]byte{0x11}, 32))
	copy(bob.scalar[:], bytes.Repeat([]byte{0x22}, 32))

	alicePub, err := alice.PublicKey()
	if err != nil {
		t.Fatalf("alice.PublicKey: %v", err)
	}
	wantAlicePub := mustHexX25519(t, "7b4e909bbe7ffe44c465a220037d608ee35897d31ef972f07f74892cb0f73f13")
	if !bytes.Equal(alicePub, wantAlicePub) {
		t.Fatalf("alice public key = %x, want %x", alicePub, wantAlicePub)
	}

	bobPub, err := bob.PublicKey()
	if err != nil {
		t.Fatalf("bob.PublicKey: %v", err)
	}
	wantBobPub := mustHexX25519(t, "0faa684ed28867b97f4a6a2dee5df8ce974e76b7018e3f22a1c4cf2678570f20")
	if !bytes.Equal(bobPub, wantBobPub) {
		t.Fatalf("bob public key = %x, want %x", bobPub, wantBobPub)
	}

	aliceShared, err := alice.DiffieHellman(bobPub)
	if err != nil {
		t.Fatalf("alice.DiffieHellman: %v", err)
	}
	bobShared, err := bob.DiffieHellman(alicePub)
	if err != nil {
		t.Fatalf("bob.DiffieHellman: %v", err)
	}
	want := mustHexX25519(t, "9e004098efc091d4ec2663b4e9f5cfd4d7064571690b4bea97ab146ab9f35056")
	if !bytes.Equal(aliceShared, want) || !bytes.Equal(bobShared, want) {
		t.Fatalf("shared secret mismatch: alice=%x bob=%x want=%x", aliceShared, bobShared, want)
	}
}

func TestX25519ZeroizeClearsScalar(t *testing.T) {
	k, err := GenerateX25519Key()
	if err != nil {
		t.Fatalf("GenerateX25519Key: %v", err)
	}
	k.Zeroize()
	for _, b := range k.scalar {
		if b != 0 {
			t.Fatalf("Zeroize left a nonzero byte in the scalar")
		}
	}
}
