package low

import "encoding/binary"

const chachaConstant0, chachaConstant1, chachaConstant2, chachaConstant3 = 0x61707865, 0x3320646e, 0x79622d32, 0x6b206574

// ChaCha20 is the ChaCha20 stream cipher state: a fixed 32-byte key, a
// 12-byte nonce, and the running block counter. Generic kernel: operates
// one 64-byte block at a time with the reference quarter-round schedule,
// rather than a SIMD-parallel implementation.
type ChaCha20 struct {
	key     [8]uint32
	nonce   [3]uint32
	counter uint32
}

// NewChaCha20 constructs cipher state from a 32-byte key, 12-byte nonce and
// initial block counter (0 for RFC 7539 ChaCha20-Poly1305).
func NewChaCha20(key, nonce []byte, counter uint32) ChaCha20 {
	if len(key) != 32 {
		panic("low: ChaCha20 key must be 32 bytes")
	}
	if len(nonce) != 12 {
		panic("low: ChaCha20 nonce must be 12 bytes")
	}
	var c ChaCha20
	for i := 0; i < 8; i++ {
		c.key[i] = binary.LittleEndian.Uint32(key[4*i:])
	}
	for i := 0; i < 3; i++ {
		c.nonce[i] = binary.LittleEndian.Uint32(nonce[4*i:])
	}
	c.counter = counter
	return c
}

func (c *ChaCha20) initialState() [16]uint32 {
	var s [16]uint32
	s[0], s[1], s[2], s[3] = chachaConstant0, chachaConstant1, chachaConstant2, chachaConstant3
	copy(s[4:12], c.key[:])
	s[12] = c.counter
	s[13], s[14], s[15] = c.nonce[0], c.nonce[1], c.nonce[2]
	return s
}

func rotl32(x uint32, n uint) uint32 {
	return x<<n | x>>(32-n)
}

func quarterRound(s *[16]uint32, a, b, cIdx, d int) {
	s[a] += s[b]
	s[d] ^= s[a]
	s[d] = rotl32(s[d], 16)

	s[cIdx] += s[d]
	s[b] ^= s[cIdx]
	s[b] = rotl32(s[b], 12)

	s[a] += s[b]
	s[d] ^= s[a]
	s[d] = rotl32(s[d], 8)

	s[cIdx] += s[d]
	s[b] ^= s[cIdx]
	s[b] = rotl32(s[b], 7)
}

// block computes one 64-byte keystream block at the current counter value.
func (c *ChaCha20) block() [64]byte {
	working := c.initialState()
	start := working

	for round := 0; round < 10; round++ {
		quarterRound(&working, 0, 4, 8, 12)
		quarterRound(&working, 1, 5, 9, 13)
		quarterRound(&working, 2, 6, 10, 14)
		quarterRound(&working, 3, 7, 11, 15)
		quarterRound(&working, 0, 5, 10, 15)
		quarterRound(&working, 1, 6, 11, 12)
		quarterRound(&working, 2, 7, 8, 13)
		quarterRound(&working, 3, 4, 9, 14)
	}

	var out [64]byte
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(out[4*i:], working[i]+start[i])
	}
	return out
}

// KeystreamBlock returns the keystream block for the current counter and
// advances the counter by one.
func (c *ChaCha20) KeystreamBlock() [64]byte {
	b := c.block()
	c.counter++
	return b
}

// XORKeyStream encrypts (or decrypts) src into dst using the keystream
// starting at the current counter value, advancing the counter by the
// number of blocks consumed.
func (c *ChaCha20) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("low: ChaCha20 dst shorter than src")
	}
	for len(src) > 0 {
		ks := c.KeystreamBlock()
		n := len(src)
		if n > 64 {
			n = 64
		}
		for i := 0; i < n; i++ {
			dst[i] = src[i] ^ ks[i]
		}
		dst = dst[n:]
		src = src[n:]
	}
}

// HChaCha20 derives a pseudorandom 32-byte key from a 32-byte key and a
// 16-byte nonce by running the ChaCha20 permutation and returning the
// first and last rows unmixed with the counter/nonce addition step (RFC
// draft-irtf-cfrg-xchacha), used to expand XChaCha20's 24-byte nonce.
func HChaCha20(key, nonce []byte) [32]byte {
	if len(key) != 32 {
		panic("low: HChaCha20 key must be 32 bytes")
	}
	if len(nonce) != 16 {
		panic("low: HChaCha20 nonce must be 16 bytes")
	}

	var s [16]uint32
	s[0], s[1], s[2], s[3] = chachaConstant0, chachaConstant1, chachaConstant2, chachaConstant3
	for i := 0; i < 8; i++ {
		s[4+i] = binary.LittleEndian.Uint32(key[4*i:])
	}
	for i := 0; i < 4; i++ {
		s[12+i] = binary.LittleEndian.Uint32(nonce[4*i:])
	}

	for round := 0; round < 10; round++ {
		quarterRound(&s, 0, 4, 8, 12)
		quarterRound(&s, 1, 5, 9, 13)
		quarterRound(&s, 2, 6, 10, 14)
		quarterRound(&s, 3, 7, 11, 15)
		quarterRound(&s, 0, 5, 10, 15)
		quarterRound(&s, 1, 6, 11, 12)
		quarterRound(&s, 2, 7, 8, 13)
		quarterRound(&s, 3, 4, 9, 14)
	}

	var out [32]byte
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint32(out[4*i:], s[i])
	}
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint32(out[16+4*i:], s[12+i])
	}
	return out
}

// NewXChaCha20 constructs a ChaCha20 instance for XChaCha20: the 24-byte
// nonce's first 16 bytes key HChaCha20, whose output becomes the subkey;
// the last 8 nonce bytes become the inner ChaCha20 nonce, prefixed with
// four zero bytes per the XChaCha20 construction.
func NewXChaCha20(key, nonce []byte, counter uint32) ChaCha20 {
	if len(key) != 32 {
		panic("low: XChaCha20 key must be 32 bytes")
	}
	if len(nonce) != 24 {
		panic("low: XChaCha20 nonce must be 24 bytes")
	}
	subkey := HChaCha20(key, nonce[:16])
	var innerNonce [12]byte
	copy(innerNonce[4:], nonce[16:24])
	return NewChaCha20(subkey[:], innerNonce[:], counter)
}
