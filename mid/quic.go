package mid

import "github.com/corecrypt/corecrypt/low"

// HeaderProtectionMask produces a 5-byte mask (RFC 9001 section 5.4): the
// first byte masks the packet's form-dependent bits, the remaining four
// mask up to a 4-byte packet number.
type HeaderProtectionMask [5]byte

// AesHeaderProtection implements RFC 9001's AES-based header protection:
// the mask is AES-ECB-encrypting the 16-byte sample under the header
// protection key.
type AesHeaderProtection struct {
	key low.AesKey
}

// NewAesHeaderProtection128 builds an AES-128 header protection instance.
func NewAesHeaderProtection128(key []byte) AesHeaderProtection {
	return AesHeaderProtection{key: low.NewAesKey128(key)}
}

// NewAesHeaderProtection256 builds an AES-256 header protection instance.
func NewAesHeaderProtection256(key []byte) AesHeaderProtection {
	return AesHeaderProtection{key: low.NewAesKey256(key)}
}

// Mask computes the 5-byte mask for a 16-byte sample.
func (a *AesHeaderProtection) Mask(sample []byte) HeaderProtectionMask {
	if len(sample) != 16 {
		panic("low: QUIC header-protection sample must be 16 bytes")
	}
	var out [16]byte
	a.key.EncryptBlock(out[:], sample)
	var m HeaderProtectionMask
	copy(m[:], out[:5])
	return m
}

// ChaCha20HeaderProtection implements RFC 9001's ChaCha20-based header
// protection: the sample's first 4 bytes (little-endian) are the block
// counter and its last 12 bytes are the nonce, and the mask is the first 5
// bytes of that keystream block.
type ChaCha20HeaderProtection struct {
	key [32]byte
}

// NewChaCha20HeaderProtection builds a ChaCha20 header protection instance.
func NewChaCha20HeaderProtection(key []byte) ChaCha20HeaderProtection {
	if len(key) != 32 {
		panic("low: ChaCha20 header-protection key must be 32 bytes")
	}
	var c ChaCha20HeaderProtection
	copy(c.key[:], key)
	return c
}

// Mask computes the 5-byte mask for a 16-byte sample.
func (c *ChaCha20HeaderProtection) Mask(sample []byte) HeaderProtectionMask {
	if len(sample) != 16 {
		panic("low: QUIC header-protection sample must be 16 bytes")
	}
	counter := uint32(sample[0]) | uint32(sample[1])<<8 | uint32(sample[2])<<16 | uint32(sample[3])<<24
	cc := low.NewChaCha20(c.key[:], sample[4:16], counter)
	block := cc.KeystreamBlock()
	var m HeaderProtectionMask
	copy(m[:], block[:5])
	return m
}

// longHeaderFormMask and shortHeaderFormMask are the bits of packet[0] that header
// protection covers, per RFC 9001 section 5.4.1.
const (
	longHeaderFormMask  = 0x0f
	shortHeaderFormMask = 0x1f
)

// ApplyHeaderProtection XORs mask into packet[0] (using the form-dependent
// bit mask) and the pnLength bytes of the packet number starting at
// pnOffset, in place. The same function serves both protect and
// unprotect: XOR is its own inverse, and RFC 9001 requires the packet
// number length to be read from the now-unprotected low two bits of
// packet[0] before unprotecting, which callers handle by calling this
// twice (once with an assumed max length, if needed) or by tracking
// pnLength out of band as sender/receiver state requires.
func ApplyHeaderProtection(packet []byte, isLongHeader bool, pnOffset, pnLength int, mask HeaderProtectionMask) {
	if pnLength < 1 || pnLength > 4 {
		panic("low: QUIC packet number length must be 1..4")
	}
	formMask := byte(shortHeaderFormMask)
	if isLongHeader {
		formMask = longHeaderFormMask
	}
	packet[0] ^= mask[0] & formMask
	for i := 0; i < pnLength; i++ {
		packet[pnOffset+i] ^= mask[1+i]
	}
}
