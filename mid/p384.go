package mid

import (
	"github.com/corecrypt/corecrypt/errs"
	"github.com/corecrypt/corecrypt/low"
)

// P384Width is the P-384 field and scalar width in 64-bit limbs.
const P384Width = 6

var p384Curve = newCurve(P384Width,
	"fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffeffffffff0000000000000000ffffffff",
	"b3312fa7e23ee7e4988e056be3f82d19181d9c6efe8141120314088f5013875ac656398d8a2ed19d2a85c8edd3ec2aef",
	"aa87ca22be8b05378eb1c71ef320ad746e1d3b628ba79b9859f741e082542a385502f25dbf55296c3a545e3872760ab7",
	"3617de4a96262c6f5d9e98bf9292dc29f8f41dbd289a147ce9da3113b5f0b8c00a60b1ce1d7e819d7a431d7c90ea0e5f",
	"ffffffffffffffffffffffffffffffffffffffffffffffffc7634d81f4372ddf581a0db248b0a77aecec196accc52973",
)

// P384 returns the shared P-384 curve parameters.
func P384() *Curve { return &p384Curve }

// P384PublicKey is a P-384 public key, held as an affine point in
// Montgomery form.
type P384PublicKey struct {
	point AffineMontPoint
}

// ImportP384PublicKey decodes an ANSI X9.62 uncompressed encoding
// (0x04 || X || Y, 97 bytes) and validates it lies on the curve.
func ImportP384PublicKey(data []byte) (P384PublicKey, error) {
	p, err := p384Curve.ImportUncompressedPoint(data)
	if err != nil {
		return P384PublicKey{}, err
	}
	return P384PublicKey{point: p}, nil
}

// Export encodes the key as an uncompressed point.
func (k *P384PublicKey) Export() ([]byte, error) {
	return p384Curve.ExportUncompressedPoint(k.point)
}

// Verify checks a raw (r, s) signature (each a big-endian 48-byte scalar)
// over a 48-byte SHA-384 digest.
func (k *P384PublicKey) Verify(digest, rBytes, sBytes []byte) error {
	r, s, err := decodeSignature(P384Width, rBytes, sBytes)
	if err != nil {
		return err
	}
	if !p384Curve.RawEcdsaVerify(k.point, digest, r, s) {
		return errs.BadSignature
	}
	return nil
}

// P384PrivateKey is a P-384 private scalar plus its derived public key.
type P384PrivateKey struct {
	scalar low.PosInt
	public P384PublicKey
}

// NewP384PrivateKey builds a private key from a big-endian 48-byte scalar
// in [1, n-1].
func NewP384PrivateKey(scalarBytes []byte) (P384PrivateKey, error) {
	if len(scalarBytes) != P384Width*8 {
		return P384PrivateKey{}, errs.WrongLength
	}
	d, err := low.FromBytes(P384Width, scalarBytes)
	if err != nil {
		return P384PrivateKey{}, err
	}
	if isZero(d) || !d.LessThan(p384Curve.Order()) {
		return P384PrivateKey{}, errs.OutOfRange
	}

	pubPoint := p384Curve.ScalarBaseMult(d)
	affine, ok := p384Curve.AffineFromJacobian(pubPoint)
	if !ok {
		return P384PrivateKey{}, errs.OutOfRange
	}

	return P384PrivateKey{scalar: d, public: P384PublicKey{point: affine}}, nil
}

// PublicKey returns the paired public key.
func (k *P384PrivateKey) PublicKey() P384PublicKey {
	return k.public
}

// Sign produces a raw (r, s) signature, each a big-endian 48-byte scalar,
// over a 48-byte digest using the caller-supplied secret nonce k. Callers
// must retry with a fresh k when ok is false.
func (k *P384PrivateKey) Sign(digest, nonceBytes []byte) (rBytes, sBytes []byte, ok bool, err error) {
	if len(nonceBytes) != P384Width*8 {
		return nil, nil, false, errs.WrongLength
	}
	nonce, err := low.FromBytes(P384Width, nonceBytes)
	if err != nil {
		return nil, nil, false, err
	}
	if isZero(nonce) || !nonce.LessThan(p384Curve.Order()) {
		return nil, nil, false, errs.OutOfRange
	}

	r, s, signed := p384Curve.RawEcdsaSign(k.scalar, digest, nonce)
	if !signed {
		return nil, nil, false, nil
	}

	rOut := make([]byte, P384Width*8)
	sOut := make([]byte, P384Width*8)
	if _, err := r.ToBytes(rOut); err != nil {
		return nil, nil, false, err
	}
	if _, err := s.ToBytes(sOut); err != nil {
		return nil, nil, false, err
	}
	return rOut, sOut, true, nil
}

// DiffieHellman computes the shared secret x-coordinate with peer's public
// key, 48 bytes big-endian.
func (k *P384PrivateKey) DiffieHellman(peer P384PublicKey) ([]byte, error) {
	return p384Curve.DiffieHellman(k.scalar, peer.point)
}

// Zeroize clears the private scalar.
func (k *P384PrivateKey) Zeroize() {
	k.scalar.Zeroize()
}
