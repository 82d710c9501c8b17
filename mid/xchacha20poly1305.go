package mid

import (
	"github.com/corecrypt/corecrypt/errs"
	"github.com/corecrypt/corecrypt/low"
)

// XChaCha20Poly1305 is ChaCha20-Poly1305 with a 24-byte extended nonce:
// HChaCha20 derives a fresh subkey from the key and the nonce's first 16
// bytes, and the remaining 8 nonce bytes (prefixed with 4 zero bytes)
// become an ordinary ChaCha20-Poly1305 nonce.
type XChaCha20Poly1305 struct {
	key [32]byte
}

// NewXChaCha20Poly1305 constructs an instance from a 32-byte key.
func NewXChaCha20Poly1305(key []byte) XChaCha20Poly1305 {
	if len(key) != 32 {
		panic("low: XChaCha20-Poly1305 key must be 32 bytes")
	}
	var x XChaCha20Poly1305
	copy(x.key[:], key)
	return x
}

func (x *XChaCha20Poly1305) inner(nonce []byte) (ChaCha20Poly1305, []byte) {
	if len(nonce) != 24 {
		panic("low: XChaCha20-Poly1305 nonce must be 24 bytes")
	}
	subkey := low.HChaCha20(x.key[:], nonce[:16])
	innerNonce := make([]byte, 12)
	copy(innerNonce[4:], nonce[16:24])
	return NewChaCha20Poly1305(subkey[:]), innerNonce
}

// Seal encrypts plaintext with a 24-byte nonce and returns (ciphertext,
// tag).
func (x *XChaCha20Poly1305) Seal(nonce, aad, plaintext []byte) ([]byte, [16]byte) {
	inner, innerNonce := x.inner(nonce)
	return inner.Seal(innerNonce, aad, plaintext)
}

// Open decrypts ciphertext and verifies tag, returning DecryptFailed and a
// zeroed buffer on mismatch.
func (x *XChaCha20Poly1305) Open(nonce, aad, ciphertext []byte, tag [16]byte) ([]byte, error) {
	inner, innerNonce := x.inner(nonce)
	pt, err := inner.Open(innerNonce, aad, ciphertext, tag)
	if err != nil {
		return pt, errs.DecryptFailed
	}
	return pt, nil
}

// Zeroize clears the raw key.
func (x *XChaCha20Poly1305) Zeroize() {
	low.Zeroize(x.key[:])
}
