package crypto

import (
	"math/big"

	"github.com/corecrypt/corecrypt/mid"
)

// P256Verify verifies a raw ECDSA signature on the P-256 curve against a
// public key given as affine coordinates. It is the entry point other
// P-256 helpers in this package build on.
//
// Parameters:
//   - hash: the 32-byte message digest
//   - r, s: the signature components
//   - x, y: the public key coordinates
//
// Returns true if the signature is valid.
func P256Verify(hash []byte, r, s, x, y *big.Int) bool {
	if x == nil || y == nil || r == nil || s == nil {
		return false
	}
	if x.Sign() < 0 || y.Sign() < 0 || r.Sign() <= 0 || s.Sign() <= 0 {
		return false
	}

	xBytes := fixedBytes(x, 32)
	yBytes := fixedBytes(y, 32)
	rBytes := fixedBytes(r, 32)
	sBytes := fixedBytes(s, 32)
	if xBytes == nil || yBytes == nil || rBytes == nil || sBytes == nil {
		return false
	}

	point := make([]byte, 65)
	point[0] = 0x04
	copy(point[1:33], xBytes)
	copy(point[33:65], yBytes)

	pub, err := mid.ImportP256PublicKey(point)
	if err != nil {
		return false
	}
	return pub.Verify(hash, rBytes, sBytes) == nil
}
