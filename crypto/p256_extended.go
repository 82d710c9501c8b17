package crypto

// Full P-256 (secp256r1/NIST P-256) ECDSA operations: key generation,
// signing, verification, public key recovery, DER encoding, compressed
// key handling, and point arithmetic, all backed by the corecrypt
// low/mid engine rather than the standard library's P-256 implementation.
// The crypto/ecdsa.PrivateKey/PublicKey types are kept only as the
// caller-facing shape (and the elliptic.P256 value they carry is never
// used for arithmetic): every computation here goes through mid.P256().

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/asn1"
	"errors"
	"math/big"

	"github.com/corecrypt/corecrypt/low"
	"github.com/corecrypt/corecrypt/mid"
)

var (
	p256Curve  = elliptic.P256()
	p256Params = p256Curve.Params()
	p256N      = p256Params.N
	p256HalfN  = new(big.Int).Rsh(p256N, 1)
)

var (
	errP256InvalidKey    = errors.New("p256: invalid key")
	errP256InvalidSig    = errors.New("p256: invalid signature")
	errP256InvalidDER    = errors.New("p256: invalid DER encoding")
	errP256RecoveryFail  = errors.New("p256: public key recovery failed")
	errP256OffCurve      = errors.New("p256: point not on curve")
	errP256InvalidPubKey = errors.New("p256: invalid public key encoding")
)

// P256GenerateKey generates a new P-256 ECDSA private key by rejection
// sampling a scalar against the group order and deriving the matching
// public point via mid.P256().
func P256GenerateKey() (*ecdsa.PrivateKey, error) {
	for {
		var dBytes [32]byte
		if _, err := rand.Read(dBytes[:]); err != nil {
			return nil, err
		}
		priv, err := mid.NewP256PrivateKey(dBytes[:])
		if err != nil {
			continue
		}
		return p256ToEcdsaPrivateKey(priv, dBytes[:])
	}
}

func p256ToEcdsaPrivateKey(priv mid.P256PrivateKey, dBytes []byte) (*ecdsa.PrivateKey, error) {
	pub := priv.PublicKey()
	encoded, err := pub.Export()
	if err != nil {
		return nil, err
	}
	return &ecdsa.PrivateKey{
		PublicKey: ecdsa.PublicKey{
			Curve: p256Curve,
			X:     new(big.Int).SetBytes(encoded[1:33]),
			Y:     new(big.Int).SetBytes(encoded[33:65]),
		},
		D: new(big.Int).SetBytes(dBytes),
	}, nil
}

// P256Sign signs a 32-byte hash using ECDSA on P-256. Returns a 64-byte
// signature [R(32) || S(32)] with S normalized to the lower half of the
// curve order (for signature malleability prevention).
func P256Sign(hash []byte, prv *ecdsa.PrivateKey) ([]byte, error) {
	if len(hash) != 32 {
		return nil, errors.New("p256: hash must be 32 bytes")
	}
	if prv == nil || prv.Curve != p256Curve {
		return nil, errP256InvalidKey
	}

	dBytes := fixedBytes(prv.D, 32)
	if dBytes == nil {
		return nil, errP256InvalidKey
	}
	priv, err := mid.NewP256PrivateKey(dBytes)
	if err != nil {
		return nil, errP256InvalidKey
	}

	var rBytes, sBytes []byte
	var ok bool
	for !ok {
		var nonce [32]byte
		if _, err := rand.Read(nonce[:]); err != nil {
			return nil, err
		}
		rBytes, sBytes, ok, err = priv.Sign(hash, nonce[:])
		if err != nil {
			return nil, err
		}
	}

	s := new(big.Int).SetBytes(sBytes)
	if s.Cmp(p256HalfN) > 0 {
		s = new(big.Int).Sub(p256N, s)
		sBytes = fixedBytes(s, 32)
	}

	sig := make([]byte, 64)
	copy(sig[:32], rBytes)
	copy(sig[32:], sBytes)
	return sig, nil
}

// P256VerifyCompact verifies a 64-byte compact P-256 ECDSA signature.
func P256VerifyCompact(hash, sig []byte, pub *ecdsa.PublicKey) bool {
	if len(hash) != 32 || len(sig) != 64 || pub == nil {
		return false
	}
	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:64])
	return P256Verify(hash, r, s, pub.X, pub.Y)
}

// p256ECDSASig is the ASN.1 structure for DER-encoded ECDSA signatures.
// Encoding/decoding ASN.1 DER is exactly the "external collaborator" the
// design notes carve out of the core engine, so this is the only place in
// the P-256 façade that reaches for encoding/asn1.
type p256ECDSASig struct {
	R, S *big.Int
}

// P256SignDER signs a hash using P-256 and returns a DER-encoded signature.
func P256SignDER(hash []byte, prv *ecdsa.PrivateKey) ([]byte, error) {
	if len(hash) != 32 {
		return nil, errors.New("p256: hash must be 32 bytes")
	}
	sig, err := P256Sign(hash, prv)
	if err != nil {
		return nil, err
	}
	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:64])
	return asn1.Marshal(p256ECDSASig{R: r, S: s})
}

// P256VerifyDER verifies a DER-encoded P-256 ECDSA signature.
func P256VerifyDER(hash, derSig []byte, pub *ecdsa.PublicKey) bool {
	if len(hash) != 32 || pub == nil || len(derSig) == 0 {
		return false
	}
	var sig p256ECDSASig
	rest, err := asn1.Unmarshal(derSig, &sig)
	if err != nil || len(rest) > 0 {
		return false
	}
	if sig.R == nil || sig.S == nil {
		return false
	}
	if sig.R.Sign() <= 0 || sig.S.Sign() <= 0 {
		return false
	}
	return P256Verify(hash, sig.R, sig.S, pub.X, pub.Y)
}

// P256MarshalDER encodes an ECDSA signature (r, s) in DER format.
func P256MarshalDER(r, s *big.Int) ([]byte, error) {
	if r == nil || s == nil || r.Sign() <= 0 || s.Sign() <= 0 {
		return nil, errP256InvalidSig
	}
	return asn1.Marshal(p256ECDSASig{R: r, S: s})
}

// P256UnmarshalDER decodes a DER-encoded ECDSA signature into (r, s).
func P256UnmarshalDER(der []byte) (r, s *big.Int, err error) {
	var sig p256ECDSASig
	rest, err := asn1.Unmarshal(der, &sig)
	if err != nil {
		return nil, nil, errP256InvalidDER
	}
	if len(rest) > 0 {
		return nil, nil, errP256InvalidDER
	}
	if sig.R == nil || sig.S == nil || sig.R.Sign() <= 0 || sig.S.Sign() <= 0 {
		return nil, nil, errP256InvalidSig
	}
	return sig.R, sig.S, nil
}

// P256CompressPubkey compresses a P-256 public key to 33 bytes.
// Returns [0x02 || X] if Y is even, [0x03 || X] if Y is odd.
func P256CompressPubkey(pub *ecdsa.PublicKey) ([]byte, error) {
	if pub == nil || pub.X == nil || pub.Y == nil || pub.Curve != p256Curve {
		return nil, errP256InvalidKey
	}
	xBytes := fixedBytes(pub.X, 32)
	yBytes := fixedBytes(pub.Y, 32)
	if xBytes == nil || yBytes == nil {
		return nil, errP256InvalidKey
	}
	point := make([]byte, 65)
	point[0] = 0x04
	copy(point[1:33], xBytes)
	copy(point[33:65], yBytes)
	if _, err := mid.ImportP256PublicKey(point); err != nil {
		return nil, errP256OffCurve
	}

	compressed := make([]byte, 33)
	if pub.Y.Bit(0) == 0 {
		compressed[0] = 0x02
	} else {
		compressed[0] = 0x03
	}
	copy(compressed[1:], xBytes)
	return compressed, nil
}

// P256DecompressPubkey decompresses a 33-byte compressed P-256 public key.
func P256DecompressPubkey(compressed []byte) (*ecdsa.PublicKey, error) {
	if len(compressed) != 33 {
		return nil, errP256InvalidPubKey
	}
	prefix := compressed[0]
	if prefix != 0x02 && prefix != 0x03 {
		return nil, errP256InvalidPubKey
	}

	point, ok := mid.P256().RecoverYFromX(compressed[1:33], prefix == 0x03)
	if !ok {
		return nil, errP256OffCurve
	}
	xy, err := mid.P256().ExportUncompressedPoint(point)
	if err != nil {
		return nil, errP256OffCurve
	}

	return &ecdsa.PublicKey{
		Curve: p256Curve,
		X:     new(big.Int).SetBytes(xy[1:33]),
		Y:     new(big.Int).SetBytes(xy[33:65]),
	}, nil
}

// P256MarshalUncompressed returns the 65-byte uncompressed representation
// [0x04 || X(32) || Y(32)].
func P256MarshalUncompressed(pub *ecdsa.PublicKey) ([]byte, error) {
	if pub == nil || pub.X == nil || pub.Y == nil {
		return nil, errP256InvalidKey
	}
	xBytes := fixedBytes(pub.X, 32)
	yBytes := fixedBytes(pub.Y, 32)
	if xBytes == nil || yBytes == nil {
		return nil, errP256InvalidKey
	}
	ret := make([]byte, 65)
	ret[0] = 0x04
	copy(ret[1:33], xBytes)
	copy(ret[33:65], yBytes)
	return ret, nil
}

// P256UnmarshalPubkey parses a P-256 public key from either compressed
// (33 bytes) or uncompressed (65 bytes) encoding.
func P256UnmarshalPubkey(data []byte) (*ecdsa.PublicKey, error) {
	switch len(data) {
	case 33:
		return P256DecompressPubkey(data)
	case 65:
		point, err := mid.ImportP256PublicKey(data)
		if err != nil {
			return nil, errP256InvalidPubKey
		}
		xy, _ := point.Export()
		return &ecdsa.PublicKey{
			Curve: p256Curve,
			X:     new(big.Int).SetBytes(xy[1:33]),
			Y:     new(big.Int).SetBytes(xy[33:65]),
		}, nil
	default:
		return nil, errP256InvalidPubKey
	}
}

// P256RecoverPubkey attempts to recover the P-256 public key from a hash,
// compact signature [R(32)||S(32)], and recovery ID (0 or 1):
//  1. Reconstruct the candidate point R from r (as R.x) and recID (R.y's
//     parity).
//  2. Compute Q = r^-1 * (s*R - e*G).
func P256RecoverPubkey(hash []byte, sig []byte, recID byte) (*ecdsa.PublicKey, error) {
	if len(hash) != 32 || len(sig) != 64 || recID > 1 {
		return nil, errP256RecoveryFail
	}

	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:64])
	if r.Sign() <= 0 || s.Sign() <= 0 {
		return nil, errP256RecoveryFail
	}
	if r.Cmp(p256N) >= 0 || s.Cmp(p256N) >= 0 {
		return nil, errP256RecoveryFail
	}

	curve := mid.P256()
	R, ok := curve.RecoverYFromX(sig[:32], recID == 1)
	if !ok {
		return nil, errP256RecoveryFail
	}

	rScalar, err := posIntFromBigInt(r, mid.P256Width)
	if err != nil {
		return nil, errP256RecoveryFail
	}
	sScalar, err := posIntFromBigInt(s, mid.P256Width)
	if err != nil {
		return nil, errP256RecoveryFail
	}
	eScalar, err := posIntFromBigInt(new(big.Int).SetBytes(hash), mid.P256Width)
	if err != nil {
		return nil, errP256RecoveryFail
	}

	sR, ok := curve.ScalarMult(sScalar, R)
	if !ok {
		return nil, errP256RecoveryFail
	}
	eG, ok := curve.ScalarMult(eScalar, curve.GeneratorAffine())
	if !ok {
		return nil, errP256RecoveryFail
	}
	diff, ok := curve.AddPoints(sR, curve.NegatePoint(eG))
	if !ok {
		return nil, errP256RecoveryFail
	}

	rInv := curve.ScalarInverseModOrder(rScalar)
	q, ok := curve.ScalarMult(rInv, diff)
	if !ok {
		return nil, errP256RecoveryFail
	}

	encoded, err := curve.ExportUncompressedPoint(q)
	if err != nil {
		return nil, errP256RecoveryFail
	}
	return &ecdsa.PublicKey{
		Curve: p256Curve,
		X:     new(big.Int).SetBytes(encoded[1:33]),
		Y:     new(big.Int).SetBytes(encoded[33:65]),
	}, nil
}

// P256ValidateSignatureValues checks that r and s are in valid range for
// P-256 ECDSA. If lowS is true, also checks that S is in the lower half.
func P256ValidateSignatureValues(r, s *big.Int, lowS bool) bool {
	if r == nil || s == nil {
		return false
	}
	if r.Sign() <= 0 || s.Sign() <= 0 {
		return false
	}
	if r.Cmp(p256N) >= 0 || s.Cmp(p256N) >= 0 {
		return false
	}
	if lowS && s.Cmp(p256HalfN) > 0 {
		return false
	}
	return true
}

// P256ScalarBaseMult computes k*G on P-256 and returns the resulting point.
func P256ScalarBaseMult(k *big.Int) (x, y *big.Int) {
	scalar, err := posIntFromBigInt(k, mid.P256Width)
	if err != nil {
		return nil, nil
	}
	point, ok := mid.P256().ScalarMult(scalar, mid.P256().GeneratorAffine())
	if !ok {
		return new(big.Int), new(big.Int)
	}
	return affineToBigInts(point)
}

// P256ScalarMult computes k*P on P-256 for point (px, py).
func P256ScalarMult(px, py, k *big.Int) (x, y *big.Int) {
	point, ok := bigIntsToAffine(px, py)
	if !ok {
		return nil, nil
	}
	scalar, err := posIntFromBigInt(k, mid.P256Width)
	if err != nil {
		return nil, nil
	}
	result, ok := mid.P256().ScalarMult(scalar, point)
	if !ok {
		return new(big.Int), new(big.Int)
	}
	return affineToBigInts(result)
}

// P256PointAdd adds two points on P-256.
func P256PointAdd(x1, y1, x2, y2 *big.Int) (x, y *big.Int) {
	p, ok1 := bigIntsToAffine(x1, y1)
	q, ok2 := bigIntsToAffine(x2, y2)
	if !ok1 || !ok2 {
		return nil, nil
	}
	result, ok := mid.P256().AddPoints(p, q)
	if !ok {
		return new(big.Int), new(big.Int)
	}
	return affineToBigInts(result)
}

// P256IsOnCurve checks if (x, y) is on the P-256 curve.
func P256IsOnCurve(x, y *big.Int) bool {
	_, ok := bigIntsToAffine(x, y)
	return ok
}

// posIntFromBigInt decodes a non-negative big.Int into a PosInt of the
// given width, reducing it modulo nothing: callers that need a scalar
// reduced mod the curve order do so explicitly (ScalarMult and friends
// only require the exponent fit the declared width, same as the
// underlying MontExp).
func posIntFromBigInt(v *big.Int, width int) (low.PosInt, error) {
	b := v.Bytes()
	if len(b) > width*8 {
		return low.PosInt{}, errP256InvalidKey
	}
	padded := make([]byte, width*8)
	copy(padded[width*8-len(b):], b)
	return low.FromBytes(width, padded)
}

func bigIntsToAffine(x, y *big.Int) (mid.AffineMontPoint, bool) {
	if x == nil || y == nil || x.Sign() < 0 || y.Sign() < 0 {
		return mid.AffineMontPoint{}, false
	}
	xBytes := fixedBytes(x, 32)
	yBytes := fixedBytes(y, 32)
	if xBytes == nil || yBytes == nil {
		return mid.AffineMontPoint{}, false
	}
	point := make([]byte, 65)
	point[0] = 0x04
	copy(point[1:33], xBytes)
	copy(point[33:65], yBytes)
	p, err := mid.ImportP256PublicKey(point)
	if err != nil {
		return mid.AffineMontPoint{}, false
	}
	return p.AffinePoint(), true
}

func affineToBigInts(p mid.AffineMontPoint) (x, y *big.Int) {
	encoded, err := mid.P256().ExportUncompressedPoint(p)
	if err != nil {
		return new(big.Int), new(big.Int)
	}
	return new(big.Int).SetBytes(encoded[1:33]), new(big.Int).SetBytes(encoded[33:65])
}
