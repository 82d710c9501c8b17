package high

import (
	"crypto/subtle"
	"encoding/asn1"
	"math/big"

	"github.com/corecrypt/corecrypt/errs"
	"github.com/corecrypt/corecrypt/low"
	"github.com/corecrypt/corecrypt/mid"
)

// pkcs1PrivateKey mirrors the ASN.1 shape of a PKCS#1 RSAPrivateKey,
// RFC 8017 Appendix A.1.2. ASN.1 decoding is the external collaborator
// spec.md names; ParsePKCS1PrivateKeyDER decodes the DER bytes into this
// shape with encoding/asn1 and hands the resulting field tuple to mid.
type pkcs1PrivateKey struct {
	Version int
	N       *big.Int
	E       int
	D       *big.Int
	P       *big.Int
	Q       *big.Int
	Dp      *big.Int
	Dq      *big.Int
	Qinv    *big.Int
}

// RsaPrivateSigningKey wraps mid's CRT private key with PKCS#1 v1.5
// signature padding.
type RsaPrivateSigningKey struct {
	inner mid.RsaPrivateKey
}

// RsaPublicVerificationKey wraps mid's RSA public key with PKCS#1 v1.5
// signature padding.
type RsaPublicVerificationKey struct {
	inner mid.RsaPublicKey
}

func bigIntToPosInt(v *big.Int, width int) (low.PosInt, error) {
	if v.Sign() < 0 {
		return low.PosInt{}, errs.OutOfRange
	}
	return low.FromBytes(width, v.Bytes())
}

// ParsePKCS1PrivateKeyDER decodes a PKCS#1 RSAPrivateKey DER blob (the
// ASN.1 external collaborator) into a usable signing key.
func ParsePKCS1PrivateKeyDER(der []byte) (RsaPrivateSigningKey, error) {
	var key pkcs1PrivateKey
	if _, err := asn1.Unmarshal(der, &key); err != nil {
		return RsaPrivateSigningKey{}, errs.Asn1Error
	}
	if key.E <= 0 || key.E > 0x7fffffff {
		return RsaPrivateSigningKey{}, errs.Asn1Error
	}

	modulusBits := key.N.BitLen()
	modulusWidth := (modulusBits + 63) / 64
	if modulusWidth%2 != 0 {
		modulusWidth++
	}
	primeWidth := modulusWidth / 2

	n, err := bigIntToPosInt(key.N, modulusWidth)
	if err != nil {
		return RsaPrivateSigningKey{}, err
	}
	p, err := bigIntToPosInt(key.P, primeWidth)
	if err != nil {
		return RsaPrivateSigningKey{}, err
	}
	q, err := bigIntToPosInt(key.Q, primeWidth)
	if err != nil {
		return RsaPrivateSigningKey{}, err
	}
	dp, err := bigIntToPosInt(key.Dp, primeWidth)
	if err != nil {
		return RsaPrivateSigningKey{}, err
	}
	dq, err := bigIntToPosInt(key.Dq, primeWidth)
	if err != nil {
		return RsaPrivateSigningKey{}, err
	}
	iqmp, err := bigIntToPosInt(key.Qinv, primeWidth)
	if err != nil {
		return RsaPrivateSigningKey{}, err
	}

	inner, err := mid.NewRsaPrivateKey(p, q, dp, dq, iqmp, n, uint32(key.E))
	if err != nil {
		return RsaPrivateSigningKey{}, err
	}
	return RsaPrivateSigningKey{inner: inner}, nil
}

// NewRsaPrivateSigningKey builds a signing key directly from decoded CRT
// components, bypassing DER, for callers (and tests) that already hold the
// field tuple.
func NewRsaPrivateSigningKey(p, q, dp, dq, iqmp, n low.PosInt, e uint32) (RsaPrivateSigningKey, error) {
	inner, err := mid.NewRsaPrivateKey(p, q, dp, dq, iqmp, n, e)
	if err != nil {
		return RsaPrivateSigningKey{}, err
	}
	return RsaPrivateSigningKey{inner: inner}, nil
}

// PublicKey returns the paired verification key.
func (k *RsaPrivateSigningKey) PublicKey() RsaPublicVerificationKey {
	return RsaPublicVerificationKey{inner: k.inner.PublicKey()}
}

// pkcs1v15DigestInfo prefixes are the DER encodings of the AlgorithmIdentifier
// for each hash, per RFC 8017 Appendix A.2.4's DigestInfo ASN.1 type, needed
// to build a PKCS#1 v1.5 padded representative.
var pkcs1v15DigestInfoPrefix = map[Algorithm][]byte{
	SHA256: {0x30, 0x31, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x01, 0x05, 0x00, 0x04, 0x20},
	SHA384: {0x30, 0x41, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x02, 0x05, 0x00, 0x04, 0x30},
	SHA512: {0x30, 0x51, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x03, 0x05, 0x00, 0x04, 0x40},
}

// pkcs1v15Pad builds the PKCS#1 v1.5 padded representative EM = 0x00 || 0x01
// || PS || 0x00 || DigestInfo, RFC 8017 §9.2, the other external
// collaborator spec.md names.
func pkcs1v15Pad(alg Algorithm, digest []byte, emLen int) ([]byte, error) {
	prefix, ok := pkcs1v15DigestInfoPrefix[alg]
	if !ok {
		return nil, errs.Asn1Error
	}
	tLen := len(prefix) + len(digest)
	if emLen < tLen+11 {
		return nil, errs.OutOfRange
	}
	em := make([]byte, emLen)
	em[0] = 0x00
	em[1] = 0x01
	psLen := emLen - tLen - 3
	for i := 0; i < psLen; i++ {
		em[2+i] = 0xff
	}
	em[2+psLen] = 0x00
	copy(em[3+psLen:], prefix)
	copy(em[3+psLen+len(prefix):], digest)
	return em, nil
}

// Sign produces a PKCS#1 v1.5 signature of digest (already hashed with
// alg), fixed-width big-endian, the modulus length.
func (k *RsaPrivateSigningKey) Sign(alg Algorithm, digest []byte) ([]byte, error) {
	emLen := k.inner.ModulusLenBytes()
	em, err := pkcs1v15Pad(alg, digest, emLen)
	if err != nil {
		return nil, err
	}
	width := (emLen + 7) / 8
	if width%2 != 0 {
		width++
	}
	m, err := low.FromBytes(width, em)
	if err != nil {
		return nil, err
	}
	s, err := k.inner.PrivateOp(m)
	if err != nil {
		return nil, err
	}
	out := make([]byte, emLen)
	_, err = s.ToBytes(out)
	return out, err
}

// Verify checks a PKCS#1 v1.5 signature against digest (already hashed
// with alg). Constant-time comparison guards the padding check: a
// timing leak here would be a padding oracle.
func (k *RsaPublicVerificationKey) Verify(alg Algorithm, digest, sig []byte) error {
	emLen := k.inner.ModulusLenBytes()
	if len(sig) != emLen {
		return errs.WrongLength
	}
	width := (emLen + 7) / 8
	if width%2 != 0 {
		width++
	}
	s, err := low.FromBytes(width, sig)
	if err != nil {
		return errs.WrongLength
	}
	m, err := k.inner.PublicOp(s)
	if err != nil {
		return errs.BadSignature
	}
	em := make([]byte, emLen)
	if _, err := m.ToBytes(em); err != nil {
		return errs.BadSignature
	}
	want, err := pkcs1v15Pad(alg, digest, emLen)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare(em, want) != 1 {
		return errs.BadSignature
	}
	return nil
}
