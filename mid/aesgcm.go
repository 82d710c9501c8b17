package mid

import (
	"encoding/binary"

	"github.com/corecrypt/corecrypt/errs"
	"github.com/corecrypt/corecrypt/low"
)

// AesGcm holds an expanded AES key schedule plus the GHASH table derived
// from it (the encryption of the all-zero block). Both are fixed for the
// lifetime of the key; only the per-call nonce and counter vary.
type AesGcm struct {
	key low.AesKey
	h   [16]byte
}

// NewAesGcm128 constructs an AES-128-GCM instance from a 16-byte key.
func NewAesGcm128(key []byte) AesGcm {
	return newAesGcm(low.NewAesKey128(key))
}

// NewAesGcm256 constructs an AES-256-GCM instance from a 32-byte key.
func NewAesGcm256(key []byte) AesGcm {
	return newAesGcm(low.NewAesKey256(key))
}

func newAesGcm(k low.AesKey) AesGcm {
	var zero, h [16]byte
	k.EncryptBlock(h[:], zero[:])
	return AesGcm{key: k, h: h}
}

// nonceToY0 derives the initial counter block Y0 from a 12-byte nonce: the
// nonce followed by a 32-bit counter starting at 1 (Y0 is reserved for the
// tag mask and is never used to encrypt payload bytes).
func nonceToY0(nonce []byte) [16]byte {
	if len(nonce) != 12 {
		panic("low: AES-GCM nonce must be 12 bytes")
	}
	var y0 [16]byte
	copy(y0[:12], nonce)
	y0[15] = 1
	return y0
}

func incrementCounter(y *[16]byte) {
	ctr := binary.BigEndian.Uint32(y[12:16])
	ctr++
	binary.BigEndian.PutUint32(y[12:16], ctr)
}

func (a *AesGcm) ctrXOR(y0 [16]byte, dst, src []byte) {
	counter := y0
	incrementCounter(&counter)

	var ks [16]byte
	for len(src) > 0 {
		a.key.EncryptBlock(ks[:], counter[:])
		n := len(src)
		if n > 16 {
			n = 16
		}
		for i := 0; i < n; i++ {
			dst[i] = src[i] ^ ks[i]
		}
		dst = dst[n:]
		src = src[n:]
		incrementCounter(&counter)
	}
}

func lengthBlock(aadBits, ctBits uint64) [16]byte {
	var b [16]byte
	binary.BigEndian.PutUint64(b[0:8], aadBits)
	binary.BigEndian.PutUint64(b[8:16], ctBits)
	return b
}

// Seal encrypts plaintext and returns (ciphertext, tag). The AAD is
// authenticated but not encrypted.
func (a *AesGcm) Seal(nonce, aad, plaintext []byte) ([]byte, [16]byte) {
	y0 := nonceToY0(nonce)

	ciphertext := make([]byte, len(plaintext))
	a.ctrXOR(y0, ciphertext, plaintext)

	g := low.NewGhash(a.h[:])
	g.UpdatePadded(aad)
	g.UpdatePadded(ciphertext)
	lb := lengthBlock(uint64(len(aad))*8, uint64(len(plaintext))*8)
	g.Update(lb[:])
	sum := g.Sum()

	var tagMask [16]byte
	a.key.EncryptBlock(tagMask[:], y0[:])

	var tag [16]byte
	for i := range tag {
		tag[i] = sum[i] ^ tagMask[i]
	}

	return ciphertext, tag
}

// Open decrypts ciphertext and verifies tag. On mismatch it returns
// DecryptFailed and an all-zero plaintext buffer, never the partially
// decrypted bytes.
func (a *AesGcm) Open(nonce, aad, ciphertext []byte, tag [16]byte) ([]byte, error) {
	y0 := nonceToY0(nonce)

	g := low.NewGhash(a.h[:])
	g.UpdatePadded(aad)
	g.UpdatePadded(ciphertext)
	lb := lengthBlock(uint64(len(aad))*8, uint64(len(ciphertext))*8)
	g.Update(lb[:])
	sum := g.Sum()

	var tagMask [16]byte
	a.key.EncryptBlock(tagMask[:], y0[:])

	var wantTag [16]byte
	for i := range wantTag {
		wantTag[i] = sum[i] ^ tagMask[i]
	}

	plaintext := make([]byte, len(ciphertext))
	if !low.CtEqual(wantTag[:], tag[:]) {
		low.Zeroize(plaintext)
		return plaintext, errs.DecryptFailed
	}

	a.ctrXOR(y0, plaintext, ciphertext)
	return plaintext, nil
}

// Zeroize clears the key schedule. The GHASH table is derived public data
// (an encrypted zero block) but is cleared alongside it for uniformity.
func (a *AesGcm) Zeroize() {
	a.key.Zeroize()
	low.Zeroize(a.h[:])
}
