package mid

import (
	"github.com/corecrypt/corecrypt/errs"
	"github.com/corecrypt/corecrypt/low"
)

// P256Width is the P-256 field and scalar width in 64-bit limbs.
const P256Width = 4

var p256Curve = newCurve(P256Width,
	"ffffffff00000001000000000000000000000000ffffffffffffffffffffffff",
	"5ac635d8aa3a93e7b3ebbd55769886bc651d06b0cc53b0f63bce3c3e27d2604b",
	"6b17d1f2e12c4247f8bce6e563a440f277037d812deb33a0f4a13945d898c296",
	"4fe342e2fe1a7f9b8ee7eb4a7c0f9e162bce33576b315ececbb6406837bf51f5",
	"ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551",
)

// P256 returns the shared P-256 curve parameters.
func P256() *Curve { return &p256Curve }

// P256PublicKey is a P-256 public key, held as an affine point in
// Montgomery form so every operation that consumes it (ECDSA verify, ECDH)
// skips the field-element domain conversion.
type P256PublicKey struct {
	point AffineMontPoint
}

// ImportP256PublicKey decodes an ANSI X9.62 uncompressed encoding
// (0x04 || X || Y, 65 bytes) and validates it lies on the curve.
func ImportP256PublicKey(data []byte) (P256PublicKey, error) {
	p, err := p256Curve.ImportUncompressedPoint(data)
	if err != nil {
		return P256PublicKey{}, err
	}
	return P256PublicKey{point: p}, nil
}

// Export encodes the key as an uncompressed point.
func (k *P256PublicKey) Export() ([]byte, error) {
	return p256Curve.ExportUncompressedPoint(k.point)
}

// AffinePoint returns the underlying Montgomery-form affine point, for
// callers building further curve operations directly on top of Curve.
func (k *P256PublicKey) AffinePoint() AffineMontPoint {
	return k.point
}

// Verify checks a raw (r, s) signature (each a big-endian 32-byte scalar)
// over a 32-byte SHA-256 digest.
func (k *P256PublicKey) Verify(digest, rBytes, sBytes []byte) error {
	r, s, err := decodeSignature(P256Width, rBytes, sBytes)
	if err != nil {
		return err
	}
	if !p256Curve.RawEcdsaVerify(k.point, digest, r, s) {
		return errs.BadSignature
	}
	return nil
}

func decodeSignature(width int, rBytes, sBytes []byte) (r, s low.PosInt, err error) {
	if len(rBytes) != width*8 || len(sBytes) != width*8 {
		return low.PosInt{}, low.PosInt{}, errs.WrongLength
	}
	r, err = low.FromBytes(width, rBytes)
	if err != nil {
		return low.PosInt{}, low.PosInt{}, err
	}
	s, err = low.FromBytes(width, sBytes)
	if err != nil {
		return low.PosInt{}, low.PosInt{}, err
	}
	return r, s, nil
}

// P256PrivateKey is a P-256 private scalar plus its derived public key.
type P256PrivateKey struct {
	scalar low.PosInt
	public P256PublicKey
}

// NewP256PrivateKey builds a private key from a big-endian 32-byte scalar
// in [1, n-1]. Key generation (rejection sampling against the order) is a
// façade concern layered on the external RNG collaborator, not this
// module's responsibility; see high/ecdsa.go.
func NewP256PrivateKey(scalarBytes []byte) (P256PrivateKey, error) {
	if len(scalarBytes) != P256Width*8 {
		return P256PrivateKey{}, errs.WrongLength
	}
	d, err := low.FromBytes(P256Width, scalarBytes)
	if err != nil {
		return P256PrivateKey{}, err
	}
	if isZero(d) || !d.LessThan(p256Curve.Order()) {
		return P256PrivateKey{}, errs.OutOfRange
	}

	pubPoint := p256Curve.ScalarBaseMult(d)
	affine, ok := p256Curve.AffineFromJacobian(pubPoint)
	if !ok {
		return P256PrivateKey{}, errs.OutOfRange
	}

	return P256PrivateKey{scalar: d, public: P256PublicKey{point: affine}}, nil
}

// PublicKey returns the paired public key.
func (k *P256PrivateKey) PublicKey() P256PublicKey {
	return k.public
}

// Sign produces a raw (r, s) signature, each a big-endian 32-byte scalar,
// over a 32-byte digest using the caller-supplied secret nonce k (from the
// external RNG collaborator). Callers must retry with a fresh k when ok is
// false.
func (k *P256PrivateKey) Sign(digest, nonceBytes []byte) (rBytes, sBytes []byte, ok bool, err error) {
	if len(nonceBytes) != P256Width*8 {
		return nil, nil, false, errs.WrongLength
	}
	nonce, err := low.FromBytes(P256Width, nonceBytes)
	if err != nil {
		return nil, nil, false, err
	}
	if isZero(nonce) || !nonce.LessThan(p256Curve.Order()) {
		return nil, nil, false, errs.OutOfRange
	}

	r, s, signed := p256Curve.RawEcdsaSign(k.scalar, digest, nonce)
	if !signed {
		return nil, nil, false, nil
	}

	rOut := make([]byte, P256Width*8)
	sOut := make([]byte, P256Width*8)
	if _, err := r.ToBytes(rOut); err != nil {
		return nil, nil, false, err
	}
	if _, err := s.ToBytes(sOut); err != nil {
		return nil, nil, false, err
	}
	return rOut, sOut, true, nil
}

// DiffieHellman computes the shared secret x-coordinate with peer's public
// key, 32 bytes big-endian, not yet passed through any KDF.
func (k *P256PrivateKey) DiffieHellman(peer P256PublicKey) ([]byte, error) {
	return p256Curve.DiffieHellman(k.scalar, peer.point)
}

// Zeroize clears the private scalar.
func (k *P256PrivateKey) Zeroize() {
	k.scalar.Zeroize()
}
