package mid

import (
	"github.com/corecrypt/corecrypt/errs"
	"github.com/corecrypt/corecrypt/low"
)

// hashToScalar reduces a message digest to a scalar mod the curve's group
// order, per FIPS 186-4: the leftmost bits of the digest, up to the
// order's bit length, interpreted as an integer and reduced once if that
// still leaves it out of range. For the pairings this module supports
// (P-256/SHA-256, P-384/SHA-384) the digest and order have equal bit
// length, so at most one conditional subtraction is ever needed.
func (c *Curve) hashToScalar(hash []byte) low.PosInt {
	n := c.width * 8
	if len(hash) > n {
		hash = hash[:n]
	}
	e, _ := low.FromBytes(c.width, hash)
	if !e.LessThan(c.n) {
		e, _ = e.Sub(c.n)
	}
	return e
}

// RawEcdsaSign computes a raw (r, s) signature over a digest that has
// already been reduced from the message by the caller, given a per-
// signature secret nonce k supplied by the caller's RNG. It reports
// ok=false (not an error: this is an expected, low-probability condition
// every ECDSA implementation must retry on) when k produces a degenerate
// r or s of zero, in which case the caller must draw a fresh k and retry.
func (c *Curve) RawEcdsaSign(priv low.PosInt, digest []byte, k low.PosInt) (r, s low.PosInt, ok bool) {
	z := c.hashToScalar(digest)

	R := c.ScalarBaseMult(k)
	affineR, isPoint := c.AffineFromJacobian(R)
	if !isPoint {
		return low.PosInt{}, low.PosInt{}, false
	}

	rOrdinary := c.p.FromMontgomery(affineR.X, c.p0)
	rWidened := rOrdinary
	if !rWidened.LessThan(c.n) {
		rWidened, _ = rWidened.Sub(c.n)
	}
	if isZero(rWidened) {
		return low.PosInt{}, low.PosInt{}, false
	}

	kInv := c.ScalarInverseModOrder(k)
	rd := c.ScalarMulModOrder(rWidened, priv)
	zPlusRd := c.ScalarAddModOrder(z, rd)
	sVal := c.ScalarMulModOrder(kInv, zPlusRd)
	if isZero(sVal) {
		return low.PosInt{}, low.PosInt{}, false
	}

	return rWidened, sVal, true
}

// RawEcdsaVerify checks a raw (r, s) signature over a digest against a
// public key, both already decoded/validated to lie on the curve.
func (c *Curve) RawEcdsaVerify(pub AffineMontPoint, digest []byte, r, s low.PosInt) bool {
	if isZero(r) || isZero(s) || !r.LessThan(c.n) || !s.LessThan(c.n) {
		return false
	}

	z := c.hashToScalar(digest)

	w := c.ScalarInverseModOrder(s)
	u1 := c.ScalarMulModOrder(z, w)
	u2 := c.ScalarMulModOrder(r, w)

	p1 := c.ScalarBaseMult(u1)
	p2 := c.ScalarMultVariableBase(u2, c.JacobianFromAffine(pub))
	sum := c.addOrDouble(p1, p2)

	affineSum, isPoint := c.AffineFromJacobian(sum)
	if !isPoint {
		return false
	}

	x := c.p.FromMontgomery(affineSum.X, c.p0)
	if !x.LessThan(c.n) {
		x, _ = x.Sub(c.n)
	}

	return x.PubEquals(r)
}

func isZero(p low.PosInt) bool {
	zero := low.NewPosInt(p.Width())
	return p.Equals(zero)
}

// DiffieHellman computes the x-coordinate of priv*peerPub, the shared
// secret of a non-interactive ECDH exchange, encoded big-endian at the
// field-element width. The caller is responsible for passing the result
// through a KDF; this module composes no key-derivation function of its
// own.
func (c *Curve) DiffieHellman(priv low.PosInt, peerPub AffineMontPoint) ([]byte, error) {
	shared := c.ScalarMultVariableBase(priv, c.JacobianFromAffine(peerPub))
	affine, isPoint := c.AffineFromJacobian(shared)
	if !isPoint {
		return nil, errs.OutOfRange
	}
	x := c.p.FromMontgomery(affine.X, c.p0)
	out := make([]byte, c.width*8)
	_, err := x.ToBytes(out)
	return out, err
}
