package high

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"testing"
)

// TestEd25519KnownAnswer pins a seed, its derived public key, and a
// signature over a fixed message, all independently computed and
// cross-checked against an external Ed25519 implementation before being
// recorded here.
func TestEd25519KnownAnswer(t *testing.T) {
	seed, _ := hex.DecodeString("3333333333333333333333333333333333333333333333333333333333333333")
	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)

	wantPub, _ := hex.DecodeString("17cb79fb2b4120f2b1ec65e4198d6e08b28e813feb01e4a400839b85e18080ce")
	if !bytes.Equal(pub, wantPub) {
		t.Fatalf("public key = %x, want %x", pub, wantPub)
	}

	message := []byte("sign this ed25519 message")
	sig := SignEd25519(priv, message)
	wantSig, _ := hex.DecodeString("724c6d4b8d3911294c7bb9a0076e91a1966721ab0a53f91fc65ad195fe25d2042be4b2406c63151594e4b3cab0c37a1f3ae6572fcfe3469ea6cfd51c66b52907")
	if !bytes.Equal(sig, wantSig) {
		t.Fatalf("signature = %x, want %x", sig, wantSig)
	}

	if err := VerifyEd25519(pub, message, sig); err != nil {
		t.Fatalf("VerifyEd25519: %v", err)
	}
}

func TestEd25519VerifyRejectsTamperedMessage(t *testing.T) {
	pub, priv, err := GenerateEd25519Key()
	if err != nil {
		t.Fatalf("GenerateEd25519Key: %v", err)
	}
	message := []byte("original")
	sig := SignEd25519(priv, message)

	if err := VerifyEd25519(pub, []byte("tampered"), sig); err == nil {
		t.Fatalf("VerifyEd25519 accepted a signature over a different message")
	}
}
