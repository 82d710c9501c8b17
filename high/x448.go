package high

import (
	"crypto/rand"

	"github.com/corecrypt/corecrypt/errs"
	"github.com/corecrypt/corecrypt/mid"
)

// X448PrivateKey is an unclamped 56-byte Curve448 scalar; clamping per
// RFC 7748 section 5 is applied by mid.X448 at use.
type X448PrivateKey struct {
	scalar [56]byte
}

// GenerateX448Key draws a fresh private scalar via the RNG external
// collaborator.
func GenerateX448Key() (X448PrivateKey, error) {
	var k X448PrivateKey
	if _, err := rand.Read(k.scalar[:]); err != nil {
		return X448PrivateKey{}, errs.RngFailed
	}
	return k, nil
}

// PublicKey derives the public point X448(scalar, basepoint).
func (k *X448PrivateKey) PublicKey() ([]byte, error) {
	out, err := mid.X448(k.scalar, mid.X448Basepoint)
	if err != nil {
		return nil, err
	}
	return out[:], nil
}

// DiffieHellman computes the X448 shared secret with a peer's public
// point, not yet passed through any KDF.
func (k *X448PrivateKey) DiffieHellman(peerPublic []byte) ([]byte, error) {
	if len(peerPublic) != 56 {
		return nil, errs.WrongLength
	}
	var u [56]byte
	copy(u[:], peerPublic)
	out, err := mid.X448(k.scalar, u)
	if err != nil {
		return nil, err
	}
	return out[:], nil
}

// Zeroize clears the private scalar.
func (k *X448PrivateKey) Zeroize() {
	for i := range k.scalar {
		k.scalar[i] = 0
	}
}
