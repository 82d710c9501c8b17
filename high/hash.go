// Package high provides the thin algorithm façades on top of mid: hashing
// convenience wrappers, RSA PKCS#1 key handling, ECDSA key generation,
// Ed25519, X25519, X448, and QUIC header protection. Nothing in this
// package implements arithmetic itself; it composes mid and delegates to
// the external collaborators spec.md names (ASN.1/PKCS#1 padding, the RNG
// source).
package high

import (
	"github.com/corecrypt/corecrypt/mid"
)

// Algorithm identifies a supported hash function.
type Algorithm int

const (
	SHA256 Algorithm = iota
	SHA384
	SHA512
)

// Hasher is a cloneable, incremental hash computation.
type Hasher interface {
	Update(data []byte)
	Sum() []byte
	Clone() Hasher
}

type sha256Hasher struct{ ctx mid.Sha256Context }

func (h *sha256Hasher) Update(data []byte) { h.ctx.Update(data) }
func (h *sha256Hasher) Sum() []byte        { d := h.ctx.Finish(); return d[:] }
func (h *sha256Hasher) Clone() Hasher      { return &sha256Hasher{ctx: h.ctx.Clone()} }

type sha512Hasher struct {
	ctx    mid.Sha512Context
	is384  bool
}

func (h *sha512Hasher) Update(data []byte) { h.ctx.Update(data) }
func (h *sha512Hasher) Sum() []byte {
	if h.is384 {
		d := h.ctx.FinishSha384()
		return d[:]
	}
	d := h.ctx.Finish()
	return d[:]
}
func (h *sha512Hasher) Clone() Hasher { return &sha512Hasher{ctx: h.ctx.Clone(), is384: h.is384} }

// New starts a new incremental hash computation.
func New(alg Algorithm) Hasher {
	switch alg {
	case SHA256:
		return &sha256Hasher{ctx: mid.NewSha256()}
	case SHA384:
		return &sha512Hasher{ctx: mid.NewSha384(), is384: true}
	case SHA512:
		return &sha512Hasher{ctx: mid.NewSha512()}
	default:
		panic("high: unknown hash algorithm")
	}
}

// Sum computes a one-shot digest.
func Sum(alg Algorithm, data []byte) []byte {
	h := New(alg)
	h.Update(data)
	return h.Sum()
}

// blockSize returns the compression block size for alg, needed by HMAC's
// key-padding step.
func blockSize(alg Algorithm) int {
	if alg == SHA256 {
		return mid.Sha256BlockSize
	}
	return mid.Sha512BlockSize
}

// Hmac computes HMAC(key, data) per RFC 2104, built as the composition of
// two hash invocations over padded keys — the "KDF suites beyond
// composition" spec.md excludes are multi-primitive constructions like
// HKDF/PBKDF2; a bare HMAC is the composition primitive itself.
func Hmac(alg Algorithm, key, data []byte) []byte {
	bs := blockSize(alg)
	if len(key) > bs {
		key = Sum(alg, key)
	}
	padded := make([]byte, bs)
	copy(padded, key)

	ipad := make([]byte, bs)
	opad := make([]byte, bs)
	for i := 0; i < bs; i++ {
		ipad[i] = padded[i] ^ 0x36
		opad[i] = padded[i] ^ 0x5c
	}

	inner := New(alg)
	inner.Update(ipad)
	inner.Update(data)
	innerSum := inner.Sum()

	outer := New(alg)
	outer.Update(opad)
	outer.Update(innerSum)
	return outer.Sum()
}
