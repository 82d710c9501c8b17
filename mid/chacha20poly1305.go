package mid

import (
	"encoding/binary"

	"github.com/corecrypt/corecrypt/errs"
	"github.com/corecrypt/corecrypt/low"
)

// ChaCha20Poly1305 holds the raw 32-byte AEAD key; unlike AES-GCM there is
// no expanded schedule to precompute.
type ChaCha20Poly1305 struct {
	key [32]byte
}

// NewChaCha20Poly1305 constructs an instance from a 32-byte key.
func NewChaCha20Poly1305(key []byte) ChaCha20Poly1305 {
	if len(key) != 32 {
		panic("low: ChaCha20-Poly1305 key must be 32 bytes")
	}
	var c ChaCha20Poly1305
	copy(c.key[:], key)
	return c
}

// polyKey derives the one-time Poly1305 key: the first 32 bytes of the
// ChaCha20 keystream block at counter 0, per RFC 7539 section 2.6.
func (c *ChaCha20Poly1305) polyKey(nonce []byte) [32]byte {
	cc := low.NewChaCha20(c.key[:], nonce, 0)
	block := cc.KeystreamBlock()
	var key [32]byte
	copy(key[:], block[:32])
	return key
}

func poly1305Mac(key [32]byte, aad, ciphertext []byte) [16]byte {
	p := low.NewPoly1305(key[:])

	p.Update(aad)
	if pad := len(aad) % 16; pad != 0 {
		p.Update(make([]byte, 16-pad))
	}

	p.Update(ciphertext)
	if pad := len(ciphertext) % 16; pad != 0 {
		p.Update(make([]byte, 16-pad))
	}

	var lengths [16]byte
	binary.LittleEndian.PutUint64(lengths[0:8], uint64(len(aad)))
	binary.LittleEndian.PutUint64(lengths[8:16], uint64(len(ciphertext)))
	p.Update(lengths[:])

	return p.Finish()
}

// Seal encrypts plaintext with a 12-byte nonce and returns (ciphertext,
// tag). The counter starts at 1: counter 0's block was spent deriving the
// Poly1305 key.
func (c *ChaCha20Poly1305) Seal(nonce, aad, plaintext []byte) ([]byte, [16]byte) {
	polyKey := c.polyKey(nonce)

	cc := low.NewChaCha20(c.key[:], nonce, 1)
	ciphertext := make([]byte, len(plaintext))
	cc.XORKeyStream(ciphertext, plaintext)

	tag := poly1305Mac(polyKey, aad, ciphertext)
	return ciphertext, tag
}

// Open decrypts ciphertext and verifies tag, returning DecryptFailed and a
// zeroed buffer on mismatch.
func (c *ChaCha20Poly1305) Open(nonce, aad, ciphertext []byte, tag [16]byte) ([]byte, error) {
	polyKey := c.polyKey(nonce)
	wantTag := poly1305Mac(polyKey, aad, ciphertext)

	plaintext := make([]byte, len(ciphertext))
	if !low.CtEqual(wantTag[:], tag[:]) {
		low.Zeroize(plaintext)
		return plaintext, errs.DecryptFailed
	}

	cc := low.NewChaCha20(c.key[:], nonce, 1)
	cc.XORKeyStream(plaintext, ciphertext)
	return plaintext, nil
}

// Zeroize clears the raw key.
func (c *ChaCha20Poly1305) Zeroize() {
	low.Zeroize(c.key[:])
}
