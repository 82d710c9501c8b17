package low

import "encoding/binary"

// Poly1305 computes the RFC 7539 one-time MAC. The accumulator is kept as
// five 26-bit limbs (the classic reference-implementation radix), which
// keeps every intermediate product within a uint64 without a bignum
// dependency; this is the standard generic-kernel shape so it is what this
// module uses rather than inventing another internal representation.
type Poly1305 struct {
	r     [5]uint32
	h     [5]uint32
	pad   [4]uint32
	buf   [16]byte
	used  int
	final bool
}

// NewPoly1305 constructs a one-time MAC from a 32-byte one-time key: the
// first 16 bytes are clamped into r, the last 16 are the pad added at the
// end.
func NewPoly1305(key []byte) Poly1305 {
	if len(key) != 32 {
		panic("low: Poly1305 key must be 32 bytes")
	}
	var p Poly1305

	t0 := binary.LittleEndian.Uint32(key[0:4])
	t1 := binary.LittleEndian.Uint32(key[4:8])
	t2 := binary.LittleEndian.Uint32(key[8:12])
	t3 := binary.LittleEndian.Uint32(key[12:16])

	p.r[0] = t0 & 0x3ffffff
	p.r[1] = ((t0 >> 26) | (t1 << 6)) & 0x3ffff03
	p.r[2] = ((t1 >> 20) | (t2 << 12)) & 0x3ffc0ff
	p.r[3] = ((t2 >> 14) | (t3 << 18)) & 0x3f03fff
	p.r[4] = (t3 >> 8) & 0x00fffff

	p.pad[0] = binary.LittleEndian.Uint32(key[16:20])
	p.pad[1] = binary.LittleEndian.Uint32(key[20:24])
	p.pad[2] = binary.LittleEndian.Uint32(key[24:28])
	p.pad[3] = binary.LittleEndian.Uint32(key[28:32])

	return p
}

// Update absorbs message bytes, buffering any trailing partial 16-byte
// block between calls.
func (p *Poly1305) Update(data []byte) {
	if p.used > 0 {
		n := copy(p.buf[p.used:16], data)
		p.used += n
		data = data[n:]
		if p.used == 16 {
			p.block(p.buf[:], true)
			p.used = 0
		}
	}
	for len(data) >= 16 {
		p.block(data[:16], true)
		data = data[16:]
	}
	if len(data) > 0 {
		p.used = copy(p.buf[:], data)
	}
}

// block absorbs one 16-byte (or, for the final short block, shorter with
// the high bit set per RFC 7539) message block.
func (p *Poly1305) block(m []byte, hibit bool) {
	var t0, t1, t2, t3 uint32
	var hibitVal uint32
	if hibit {
		hibitVal = 1 << 24
	}

	if len(m) == 16 {
		t0 = binary.LittleEndian.Uint32(m[0:4])
		t1 = binary.LittleEndian.Uint32(m[4:8])
		t2 = binary.LittleEndian.Uint32(m[8:12])
		t3 = binary.LittleEndian.Uint32(m[12:16])
	} else {
		var padded [16]byte
		copy(padded[:], m)
		padded[len(m)] = 1
		t0 = binary.LittleEndian.Uint32(padded[0:4])
		t1 = binary.LittleEndian.Uint32(padded[4:8])
		t2 = binary.LittleEndian.Uint32(padded[8:12])
		t3 = binary.LittleEndian.Uint32(padded[12:16])
		hibitVal = 0
	}

	h0 := uint64(p.h[0]) + uint64(t0&0x3ffffff)
	h1 := uint64(p.h[1]) + uint64(((t0>>26)|(t1<<6))&0x3ffffff)
	h2 := uint64(p.h[2]) + uint64(((t1>>20)|(t2<<12))&0x3ffffff)
	h3 := uint64(p.h[3]) + uint64(((t2>>14)|(t3<<18))&0x3ffffff)
	h4 := uint64(p.h[4]) + uint64(t3>>8) + uint64(hibitVal)

	r0, r1, r2, r3, r4 := uint64(p.r[0]), uint64(p.r[1]), uint64(p.r[2]), uint64(p.r[3]), uint64(p.r[4])
	s1, s2, s3, s4 := r1*5, r2*5, r3*5, r4*5

	d0 := h0*r0 + h1*s4 + h2*s3 + h3*s2 + h4*s1
	d1 := h0*r1 + h1*r0 + h2*s4 + h3*s3 + h4*s2
	d2 := h0*r2 + h1*r1 + h2*r0 + h3*s4 + h4*s3
	d3 := h0*r3 + h1*r2 + h2*r1 + h3*r0 + h4*s4
	d4 := h0*r4 + h1*r3 + h2*r2 + h3*r1 + h4*r0

	c := d0 >> 26
	h0o := uint32(d0 & 0x3ffffff)
	d1 += c
	c = d1 >> 26
	h1o := uint32(d1 & 0x3ffffff)
	d2 += c
	c = d2 >> 26
	h2o := uint32(d2 & 0x3ffffff)
	d3 += c
	c = d3 >> 26
	h3o := uint32(d3 & 0x3ffffff)
	d4 += c
	c = d4 >> 26
	h4o := uint32(d4 & 0x3ffffff)
	h0o += uint32(c) * 5
	c = uint64(h0o) >> 26
	h0o &= 0x3ffffff
	h1o += uint32(c)

	p.h[0], p.h[1], p.h[2], p.h[3], p.h[4] = h0o, h1o, h2o, h3o, h4o
}

// Finish finalizes the MAC, absorbing any trailing partial block and
// returning the 16-byte tag. The receiver is consumed: a Poly1305 instance
// is one-shot per RFC 7539.
func (p *Poly1305) Finish() [16]byte {
	if p.used > 0 {
		p.block(p.buf[:p.used], true)
	}

	c := p.h[1] >> 26
	p.h[1] &= 0x3ffffff
	p.h[2] += c
	c = p.h[2] >> 26
	p.h[2] &= 0x3ffffff
	p.h[3] += c
	c = p.h[3] >> 26
	p.h[3] &= 0x3ffffff
	p.h[4] += c
	c = p.h[4] >> 26
	p.h[4] &= 0x3ffffff
	p.h[0] += c * 5
	c = p.h[0] >> 26
	p.h[0] &= 0x3ffffff
	p.h[1] += c

	g0 := p.h[0] + 5
	c = g0 >> 26
	g0 &= 0x3ffffff
	g1 := p.h[1] + c
	c = g1 >> 26
	g1 &= 0x3ffffff
	g2 := p.h[2] + c
	c = g2 >> 26
	g2 &= 0x3ffffff
	g3 := p.h[3] + c
	c = g3 >> 26
	g3 &= 0x3ffffff
	g4 := p.h[4] + c - (1 << 26)

	mask := (g4 >> 31) - 1
	g0 &= mask
	g1 &= mask
	g2 &= mask
	g3 &= mask
	g4 &= mask
	nmask := ^mask
	h0 := (p.h[0] & nmask) | g0
	h1 := (p.h[1] & nmask) | g1
	h2 := (p.h[2] & nmask) | g2
	h3 := (p.h[3] & nmask) | g3
	h4 := (p.h[4] & nmask) | g4

	h0o := h0 | (h1 << 26)
	h1o := (h1 >> 6) | (h2 << 20)
	h2o := (h2 >> 12) | (h3 << 14)
	h3o := (h3 >> 18) | (h4 << 8)

	f0 := uint64(h0o) + uint64(p.pad[0])
	f1 := uint64(h1o) + uint64(p.pad[1]) + (f0 >> 32)
	f2 := uint64(h2o) + uint64(p.pad[2]) + (f1 >> 32)
	f3 := uint64(h3o) + uint64(p.pad[3]) + (f2 >> 32)

	var tag [16]byte
	binary.LittleEndian.PutUint32(tag[0:4], uint32(f0))
	binary.LittleEndian.PutUint32(tag[4:8], uint32(f1))
	binary.LittleEndian.PutUint32(tag[8:12], uint32(f2))
	binary.LittleEndian.PutUint32(tag[12:16], uint32(f3))

	return tag
}
