package high

import (
	"crypto/rand"

	"golang.org/x/crypto/curve25519"

	"github.com/corecrypt/corecrypt/errs"
)

// X25519PrivateKey is a 32-byte Curve25519 scalar, stored unclamped;
// x/crypto/curve25519 clamps it on each use.
type X25519PrivateKey struct {
	scalar [32]byte
}

// GenerateX25519Key draws a fresh private scalar via the RNG external
// collaborator; x/crypto/curve25519 performs RFC 7748's clamping
// internally on use, matching this module's preference for the pack's
// existing golang.org/x/crypto dependency over a from-scratch Curve25519
// field-arithmetic port (X25519's Montgomery-ladder engine is not part of
// THE CORE's P-256/P-384 scope).
func GenerateX25519Key() (X25519PrivateKey, error) {
	var k X25519PrivateKey
	if _, err := rand.Read(k.scalar[:]); err != nil {
		return X25519PrivateKey{}, errs.RngFailed
	}
	return k, nil
}

// PublicKey derives the public key X25519(scalar, basepoint).
func (k *X25519PrivateKey) PublicKey() ([]byte, error) {
	pub, err := curve25519.X25519(k.scalar[:], curve25519.Basepoint)
	if err != nil {
		return nil, errs.OutOfRange
	}
	return pub, nil
}

// DiffieHellman computes the X25519 shared secret with a peer's public
// key, not yet passed through any KDF (spec.md's composition boundary).
func (k *X25519PrivateKey) DiffieHellman(peerPublic []byte) ([]byte, error) {
	shared, err := curve25519.X25519(k.scalar[:], peerPublic)
	if err != nil {
		return nil, errs.OutOfRange
	}
	return shared, nil
}

// Zeroize clears the private scalar.
func (k *X25519PrivateKey) Zeroize() {
	for i := range k.scalar {
		k.scalar[i] = 0
	}
}
