// Package mid composes the low-level kernels (PosInt, AES, ChaCha20,
// Poly1305, GHASH, SHA-2 compression) into the stateful operations the
// high-level façades call: hash contexts, AEAD encrypt/decrypt, EC group
// law, and RSA's CRT private operation.
package mid

import (
	"encoding/binary"

	"github.com/corecrypt/corecrypt/low"
)

// Sha256Context is a SHA-256 hash-in-progress.
type Sha256Context struct {
	state    [8]uint32
	buf      low.Blockwise
	nbytes   uint64
}

// Sha256BlockSize is SHA-256's compression block size.
const Sha256BlockSize = 64

// NewSha256 starts a new SHA-256 computation.
func NewSha256() Sha256Context {
	return Sha256Context{state: low.Sha256IV, buf: low.NewBlockwise(Sha256BlockSize)}
}

// Clone forks the computation so two different continuations can be hashed
// from a common prefix without reprocessing it (exposed as high's
// Hasher.Clone).
func (c Sha256Context) Clone() Sha256Context {
	return c
}

// Update absorbs message bytes.
func (c *Sha256Context) Update(data []byte) {
	c.nbytes += uint64(len(data))
	c.buf.Update(data, func(block []byte) {
		c.state = low.Sha256CompressBlocks(c.state, block)
	})
}

// Finish completes the computation, applying Merkle-Damgard padding
// (single 0x80 byte, zero padding, then the big-endian bit length), and
// returns the 32-byte digest.
func (c Sha256Context) Finish() [32]byte {
	bitLen := c.nbytes * 8
	pending := append([]byte(nil), c.buf.Pending()...)

	pending = append(pending, 0x80)
	for (len(pending)+8)%Sha256BlockSize != 0 {
		pending = append(pending, 0)
	}
	var lenBytes [8]byte
	binary.BigEndian.PutUint64(lenBytes[:], bitLen)
	pending = append(pending, lenBytes[:]...)

	state := low.Sha256CompressBlocks(c.state, pending)

	var out [32]byte
	for i, v := range state {
		binary.BigEndian.PutUint32(out[4*i:], v)
	}
	return out
}

// Sha512Context is a SHA-512 hash-in-progress; SHA-384 reuses it with a
// different IV and a truncated digest.
type Sha512Context struct {
	state  [8]uint64
	buf    low.Blockwise
	nbytes uint64
	// nbytesHi is the high 64 bits of the total byte count, since SHA-512's
	// length field is 128 bits. In practice no real input approaches
	// 2^64 bytes, but the field exists so Finish's arithmetic is honest
	// about the spec's u128 length rather than silently truncating.
	nbytesHi uint64
}

// Sha512BlockSize is SHA-512/384's compression block size.
const Sha512BlockSize = 128

// NewSha512 starts a new SHA-512 computation.
func NewSha512() Sha512Context {
	return Sha512Context{state: low.Sha512IV, buf: low.NewBlockwise(Sha512BlockSize)}
}

// NewSha384 starts a new SHA-384 computation (SHA-512 machinery, SHA-384's
// IV, 48-byte truncated digest).
func NewSha384() Sha512Context {
	return Sha512Context{state: low.Sha384IV, buf: low.NewBlockwise(Sha512BlockSize)}
}

// Clone forks the computation.
func (c Sha512Context) Clone() Sha512Context {
	return c
}

// Update absorbs message bytes.
func (c *Sha512Context) Update(data []byte) {
	old := c.nbytes
	c.nbytes += uint64(len(data))
	if c.nbytes < old {
		c.nbytesHi++
	}
	c.buf.Update(data, func(block []byte) {
		c.state = low.Sha512CompressBlocks(c.state, block)
	})
}

func (c Sha512Context) finishState() [8]uint64 {
	bitLen := c.nbytes * 8
	bitLenHi := (c.nbytesHi << 3) | (c.nbytes >> 61)
	pending := append([]byte(nil), c.buf.Pending()...)

	pending = append(pending, 0x80)
	for (len(pending)+16)%Sha512BlockSize != 0 {
		pending = append(pending, 0)
	}
	var lenBytes [16]byte
	binary.BigEndian.PutUint64(lenBytes[0:8], bitLenHi)
	binary.BigEndian.PutUint64(lenBytes[8:16], bitLen)
	pending = append(pending, lenBytes[:]...)

	return low.Sha512CompressBlocks(c.state, pending)
}

// Finish completes a SHA-512 computation and returns the 64-byte digest.
func (c Sha512Context) Finish() [64]byte {
	state := c.finishState()
	var out [64]byte
	for i, v := range state {
		binary.BigEndian.PutUint64(out[8*i:], v)
	}
	return out
}

// FinishSha384 completes a SHA-384 computation (a Sha512Context started
// with NewSha384) and returns the 48-byte truncated digest.
func (c Sha512Context) FinishSha384() [48]byte {
	state := c.finishState()
	var full [64]byte
	for i, v := range state {
		binary.BigEndian.PutUint64(full[8*i:], v)
	}
	var out [48]byte
	copy(out[:], full[:48])
	return out
}
