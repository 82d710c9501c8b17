package mid

import (
	"github.com/corecrypt/corecrypt/errs"
	"github.com/corecrypt/corecrypt/low"
)

// MaxPublicModulusBytes bounds the largest RSA modulus this module
// supports (8192 bits), sizing caller-owned output buffers.
const MaxPublicModulusBytes = 1024

// RsaPublicKey holds a public modulus and exponent plus the Montgomery
// helpers derived from the modulus once at construction time.
type RsaPublicKey struct {
	n         low.PosInt
	e         uint32
	montifier low.PosInt
	n0        uint64
}

// NewRsaPublicKey constructs a public key from a modulus already decoded
// into a PosInt and a public exponent.
func NewRsaPublicKey(n low.PosInt, e uint32) (RsaPublicKey, error) {
	if e == 0 || e%2 == 0 {
		return RsaPublicKey{}, errs.OutOfRange
	}
	if n.IsEven() {
		return RsaPublicKey{}, errs.OutOfRange
	}
	return RsaPublicKey{
		n:         n,
		e:         e,
		montifier: n.Montifier(),
		n0:        n.MontNegInverse(),
	}, nil
}

// ModulusLenBytes returns the modulus's encoded byte length.
func (k *RsaPublicKey) ModulusLenBytes() int {
	return k.n.LenBytes()
}

// Modulus returns the public modulus.
func (k *RsaPublicKey) Modulus() low.PosInt {
	return k.n
}

// PublicOp computes c^e mod n. The exponent is public (typically 65537),
// so this uses an ordinary square-and-multiply rather than the
// fixed-window, table-scanning exponentiation the private operation uses:
// there is no secret to protect here.
func (k *RsaPublicKey) PublicOp(c low.PosInt) (low.PosInt, error) {
	if !c.LessThan(k.n) {
		return low.PosInt{}, errs.OutOfRange
	}

	width := k.n.Width()
	base := k.n.ToMontgomery(c, k.montifier, k.n0)
	result := k.n.ToMontgomery(low.One(width), k.montifier, k.n0)

	e := k.e
	for e > 0 {
		if e&1 == 1 {
			result = k.n.MontMul(result, base, k.n0)
		}
		base = k.n.MontSqr(base, k.n0)
		e >>= 1
	}

	return k.n.FromMontgomery(result, k.n0), nil
}
