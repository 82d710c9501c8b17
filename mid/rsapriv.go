package mid

import (
	"github.com/corecrypt/corecrypt/errs"
	"github.com/corecrypt/corecrypt/low"
)

// RsaPrivateKey holds the CRT key components plus the Montgomery helpers
// derived from p and q once at construction time, and the public key used
// for the fault-verification re-exponentiation.
type RsaPrivateKey struct {
	p, q, dp, dq, iqmp low.PosInt
	pMontifier         low.PosInt
	qMontifier         low.PosInt
	p0, q0             uint64
	n                  low.PosInt
	pub                RsaPublicKey
}

// NewRsaPrivateKey constructs a private key from its decoded CRT
// components. p and q must share a width exactly half of n's.
func NewRsaPrivateKey(p, q, dp, dq, iqmp, n low.PosInt, e uint32) (RsaPrivateKey, error) {
	if p.Width() != q.Width() || 2*p.Width() != n.Width() {
		return RsaPrivateKey{}, errs.OutOfRange
	}
	if p.IsEven() || q.IsEven() {
		return RsaPrivateKey{}, errs.OutOfRange
	}

	pub, err := NewRsaPublicKey(n, e)
	if err != nil {
		return RsaPrivateKey{}, err
	}

	return RsaPrivateKey{
		p: p, q: q, dp: dp, dq: dq, iqmp: iqmp,
		pMontifier: p.Montifier(),
		qMontifier: q.Montifier(),
		p0:         p.MontNegInverse(),
		q0:         q.MontNegInverse(),
		n:          n,
		pub:        pub,
	}, nil
}

// PublicKey returns the paired public key.
func (k *RsaPrivateKey) PublicKey() RsaPublicKey {
	return k.pub
}

// ModulusLenBytes returns the modulus's encoded byte length.
func (k *RsaPrivateKey) ModulusLenBytes() int {
	return k.n.LenBytes()
}

// modExpCRT computes c^d mod m for one CRT prime, returning the result in
// ordinary (non-Montgomery) form.
func modExpCRT(c []uint64, m, d, montifier low.PosInt, m0 uint64) low.PosInt {
	reduced := m.Reduce(c, montifier, m0)
	base := m.ToMontgomery(reduced, montifier, m0)
	resultMont := m.MontExp(base, d, montifier, m0)
	return m.FromMontgomery(resultMont, m0)
}

// PrivateOp performs the CRT private-key operation (signature generation,
// or decryption of an RSA-encrypted value): reduce modulo each prime,
// exponentiate with the matching CRT exponent, recombine, and verify by
// re-deriving c from the candidate m with the public exponent. Any
// inconsistency between the stored key components, or a transient fault
// during either CRT exponentiation, is caught by that verification step
// and reported as DecryptFailed rather than returning a wrong value.
func (k *RsaPrivateKey) PrivateOp(c low.PosInt) (low.PosInt, error) {
	if !c.LessThan(k.n) {
		return low.PosInt{}, errs.OutOfRange
	}

	cWide := c.Limbs()

	m1 := modExpCRT(cWide, k.p, k.dp, k.pMontifier, k.p0)
	m2 := modExpCRT(cWide, k.q, k.dq, k.qMontifier, k.q0)

	// m2 is only known to be < q, not < p; SubMod's single conditional add
	// on borrow is only correct when both operands are already reduced mod
	// p. For a balanced key with q > p, m2 can exceed p, so it is reduced
	// mod p here via the same Reduce helper the modulus-width recombination
	// below uses, rather than assumed already in range.
	m2WideForP := append(m2.Limbs(), make([]uint64, k.p.Width())...)
	m2ModP := k.p.Reduce(m2WideForP, k.pMontifier, k.p0)

	h := m1.SubMod(m2ModP, k.p)

	hMont := k.p.ToMontgomery(h, k.pMontifier, k.p0)
	iqmpMont := k.p.ToMontgomery(k.iqmp, k.pMontifier, k.p0)
	hiqmpMont := k.p.MontMul(hMont, iqmpMont, k.p0)
	hFinal := k.p.FromMontgomery(hiqmpMont, k.p0)

	qh := low.Mul(k.q, hFinal)
	m2Wide := m2.Widen(k.n.Width())
	qhFull := low.FromLimbs(qh)
	m, _ := m2Wide.Add(qhFull)

	c2, err := k.pub.PublicOp(m)
	if err != nil || !c2.Equals(c) {
		m.Zeroize()
		return low.PosInt{}, errs.DecryptFailed
	}

	return m, nil
}

// Zeroize clears the private CRT components.
func (k *RsaPrivateKey) Zeroize() {
	k.p.Zeroize()
	k.q.Zeroize()
	k.dp.Zeroize()
	k.dq.Zeroize()
	k.iqmp.Zeroize()
}
