package high

import (
	"bytes"
	"testing"

	"github.com/corecrypt/corecrypt/mid"
)

func TestGenerateP256KeyProducesUsableKey(t *testing.T) {
	priv, err := GenerateP256Key()
	if err != nil {
		t.Fatalf("GenerateP256Key: %v", err)
	}
	digest := bytes.Repeat([]byte{0xab}, 32)
	r, s, err := SignP256(&priv, digest)
	if err != nil {
		t.Fatalf("SignP256: %v", err)
	}
	pub := priv.PublicKey()
	if err := pub.Verify(digest, r, s); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestGenerateP256KeyIsNonDeterministic(t *testing.T) {
	a, err := GenerateP256Key()
	if err != nil {
		t.Fatalf("GenerateP256Key: %v", err)
	}
	b, err := GenerateP256Key()
	if err != nil {
		t.Fatalf("GenerateP256Key: %v", err)
	}
	aKey, bKey := a.PublicKey(), b.PublicKey()
	aPub, _ := aKey.Export()
	bPub, _ := bKey.Export()
	if bytes.Equal(aPub, bPub) {
		t.Fatalf("two independently generated P-256 keys collided")
	}
}

func TestGenerateP384KeyProducesUsableKey(t *testing.T) {
	priv, err := GenerateP384Key()
	if err != nil {
		t.Fatalf("GenerateP384Key: %v", err)
	}
	digest := bytes.Repeat([]byte{0xcd}, 48)
	r, s, err := SignP384(&priv, digest)
	if err != nil {
		t.Fatalf("SignP384: %v", err)
	}
	pub := priv.PublicKey()
	if err := pub.Verify(digest, r, s); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestSignP256DistinctNoncesProduceVerifiableSignatures(t *testing.T) {
	priv, err := mid.NewP256PrivateKey(bytes.Repeat([]byte{0x07}, 32))
	if err != nil {
		t.Fatalf("NewP256PrivateKey: %v", err)
	}
	digest := bytes.Repeat([]byte{0x11}, 32)

	r1, s1, err := SignP256(&priv, digest)
	if err != nil {
		t.Fatalf("SignP256: %v", err)
	}
	r2, s2, err := SignP256(&priv, digest)
	if err != nil {
		t.Fatalf("SignP256: %v", err)
	}
	// Per-call fresh random nonces should (overwhelmingly) produce distinct
	// signatures over the same digest.
	if bytes.Equal(r1, r2) && bytes.Equal(s1, s2) {
		t.Fatalf("two independent signing calls produced identical (r,s)")
	}

	pub := priv.PublicKey()
	if err := pub.Verify(digest, r1, s1); err != nil {
		t.Fatalf("Verify(sig1): %v", err)
	}
	if err := pub.Verify(digest, r2, s2); err != nil {
		t.Fatalf("Verify(sig2): %v", err)
	}
}
