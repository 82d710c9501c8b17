package low

import (
	"math/bits"

	"github.com/corecrypt/corecrypt/errs"
)

// PosInt is a fixed-width, non-negative multi-precision integer stored as
// little-endian 64-bit limbs. The width (limb count) is fixed when the
// value is constructed and every binary operation requires its operands to
// share that width; this is the runtime stand-in for the compile-time
// `PosInt<const N: usize>` this engine is modelled on; Go has no const
// generics over array length, so the width is a field checked by panics at
// operation boundaries instead of the compiler. A width mismatch is always
// a programmer error (RSA/EC code picks widths from fixed key sizes), never
// attacker input, so panicking rather than returning an error is the right
// failure mode.
type PosInt struct {
	w []uint64
}

// NewPosInt returns the zero value at the given width (in 64-bit limbs).
func NewPosInt(width int) PosInt {
	return PosInt{w: make([]uint64, width)}
}

// One returns 1 at the given width.
func One(width int) PosInt {
	p := NewPosInt(width)
	if width > 0 {
		p.w[0] = 1
	}
	return p
}

// Width returns the number of 64-bit limbs this value was constructed
// with.
func (p PosInt) Width() int { return len(p.w) }

func (p PosInt) requireSameWidth(q PosInt) {
	if len(p.w) != len(q.w) {
		panic("low: PosInt width mismatch")
	}
}

// Clone returns an independent copy.
func (p PosInt) Clone() PosInt {
	w := make([]uint64, len(p.w))
	copy(w, p.w)
	return PosInt{w: w}
}

// Limbs returns a copy of p's little-endian limbs, for callers (the RSA
// CRT path) that need to reinterpret one PosInt's storage as the wide
// input to another width's Montgomery reduction.
func (p PosInt) Limbs() []uint64 {
	w := make([]uint64, len(p.w))
	copy(w, p.w)
	return w
}

// FromLimbs builds a PosInt directly from little-endian limbs, taking
// ownership of a copy of limbs.
func FromLimbs(limbs []uint64) PosInt {
	w := make([]uint64, len(limbs))
	copy(w, limbs)
	return PosInt{w: w}
}

// Zeroize overwrites the backing limbs. Callers holding a PosInt derived
// from private-key material must call this once it is no longer needed.
func (p PosInt) Zeroize() {
	ZeroizeU64(p.w)
}

// FromBytes decodes a big-endian byte string into a PosInt of the given
// width, rejecting inputs wider than width*8 bytes.
func FromBytes(width int, b []byte) (PosInt, error) {
	if len(b) > width*8 {
		return PosInt{}, errs.OutOfRange
	}
	p := NewPosInt(width)
	idx := 0
	for end := len(b); end > 0; end -= 8 {
		start := end - 8
		if start < 0 {
			start = 0
		}
		var v uint64
		for _, c := range b[start:end] {
			v = v<<8 | uint64(c)
		}
		p.w[idx] = v
		idx++
	}
	return p, nil
}

// ToBytes writes the full width*8-byte big-endian encoding of p into buf,
// which must be exactly that length, and returns buf. A buf of any other
// length, shorter or longer, is rejected with WrongLength; leading zero
// bytes are always written, never dropped.
func (p PosInt) ToBytes(buf []byte) ([]byte, error) {
	width := len(p.w) * 8
	if len(buf) != width {
		return nil, errs.WrongLength
	}
	for i := range buf {
		buf[i] = 0
	}
	for limb := 0; limb < len(p.w); limb++ {
		v := p.w[limb]
		base := width - (limb+1)*8
		for j := 0; j < 8; j++ {
			buf[base+j] = byte(v >> uint(56-8*j))
		}
	}
	return buf, nil
}

// LenBytes returns the number of bytes needed to hold the significant
// (non-leading-zero) value of p.
func (p PosInt) LenBytes() int {
	for i := len(p.w) - 1; i >= 0; i-- {
		if p.w[i] == 0 {
			continue
		}
		v := p.w[i]
		n := 8
		for n > 0 && (v>>uint((n-1)*8))&0xff == 0 {
			n--
		}
		return i*8 + n
	}
	return 0
}

// IsEven reports whether p is even.
func (p PosInt) IsEven() bool {
	if len(p.w) == 0 {
		return true
	}
	return p.w[0]&1 == 0
}

// Equals is a constant-time equality check between two values of the same
// width.
func (p PosInt) Equals(q PosInt) bool {
	p.requireSameWidth(q)
	var diff uint64
	for i := range p.w {
		diff |= p.w[i] ^ q.w[i]
	}
	return diff == 0
}

// PubEquals compares p and q after trimming high zero limbs from each,
// allowing values of different widths to compare equal if their numeric
// value is the same. It is not constant-time and must only be used on
// already-public values (moduli, public keys).
func (p PosInt) PubEquals(q PosInt) bool {
	i := len(p.w) - 1
	for i >= 0 && p.w[i] == 0 {
		i--
	}
	j := len(q.w) - 1
	for j >= 0 && q.w[j] == 0 {
		j--
	}
	if i != j {
		return false
	}
	for ; i >= 0; i-- {
		if p.w[i] != q.w[i] {
			return false
		}
	}
	return true
}

// LessThan reports whether p < q. Both must share a width.
func (p PosInt) LessThan(q PosInt) bool {
	p.requireSameWidth(q)
	for i := len(p.w) - 1; i >= 0; i-- {
		if p.w[i] < q.w[i] {
			return true
		}
		if p.w[i] > q.w[i] {
			return false
		}
	}
	return false
}

// Add returns p+q and the final carry-out (0 or 1).
func (p PosInt) Add(q PosInt) (PosInt, uint64) {
	p.requireSameWidth(q)
	r := NewPosInt(len(p.w))
	var carry uint64
	for i := range p.w {
		sum, c := bits.Add64(p.w[i], q.w[i], carry)
		r.w[i] = sum
		carry = c
	}
	return r, carry
}

// Sub returns p-q and the final borrow-out (0 or 1, 1 meaning p<q).
func (p PosInt) Sub(q PosInt) (PosInt, uint64) {
	p.requireSameWidth(q)
	r := NewPosInt(len(p.w))
	var borrow uint64
	for i := range p.w {
		diff, b := bits.Sub64(p.w[i], q.w[i], borrow)
		r.w[i] = diff
		borrow = b
	}
	return r, borrow
}

// SubMod returns (p-q) mod m, assuming 0<=p,q<m.
func (p PosInt) SubMod(q, m PosInt) PosInt {
	d, borrow := p.Sub(q)
	if borrow != 0 {
		d, _ = d.Add(m)
	}
	return d
}

// Widen returns p zero-extended to newWidth limbs.
func (p PosInt) Widen(newWidth int) PosInt {
	if newWidth < len(p.w) {
		panic("low: widen to smaller width")
	}
	r := NewPosInt(newWidth)
	copy(r.w, p.w)
	return r
}

// Narrow returns p truncated to newWidth limbs, failing if any of the
// dropped high limbs were non-zero.
func (p PosInt) Narrow(newWidth int) (PosInt, error) {
	for i := newWidth; i < len(p.w); i++ {
		if p.w[i] != 0 {
			return PosInt{}, errs.OutOfRange
		}
	}
	r := NewPosInt(newWidth)
	copy(r.w, p.w[:newWidth])
	return r, nil
}

// Mul computes the full double-width product of a and b, both of width N,
// returning 2*N limbs.
func Mul(a, b PosInt) []uint64 {
	a.requireSameWidth(b)
	width := len(a.w)
	result := make([]uint64, 2*width)
	for i := 0; i < width; i++ {
		ai := a.w[i]
		if ai == 0 {
			continue
		}
		var carry uint64
		for j := 0; j < width; j++ {
			hi, lo := bits.Mul64(ai, b.w[j])
			lo, c1 := bits.Add64(lo, carry, 0)
			hi += c1
			lo, c2 := bits.Add64(result[i+j], lo, 0)
			hi += c2
			result[i+j] = lo
			carry = hi
		}
		k := i + width
		for carry != 0 {
			sum, c := bits.Add64(result[k], carry, 0)
			result[k] = sum
			carry = c
			k++
		}
	}
	return result
}

// doubleMod returns (2*x) mod n, where x < n.
func (n PosInt) doubleMod(x PosInt) PosInt {
	width := len(x.w)
	r := NewPosInt(width)
	var carry uint64
	for i := 0; i < width; i++ {
		newCarry := x.w[i] >> 63
		r.w[i] = (x.w[i] << 1) | carry
		carry = newCarry
	}
	if carry != 0 || !r.LessThan(n) {
		r, _ = r.Sub(n)
	}
	return r
}

// Montifier computes R^2 mod n, where R = 2^(64*width(n)). This is the
// multiplier used to carry ordinary values into Montgomery form.
func (n PosInt) Montifier() PosInt {
	width := len(n.w)
	r := NewPosInt(width)
	if width == 0 {
		return r
	}
	r.w[0] = 1
	for i := 0; i < 2*64*width; i++ {
		r = n.doubleMod(r)
	}
	return r
}

// MontNegInverse computes -n^-1 mod 2^64 via Newton-Raphson refinement of
// the inverse of n's low limb, which is the per-modulus constant every
// Montgomery reduction needs.
func (n PosInt) MontNegInverse() uint64 {
	n0 := n.w[0]
	x := n0
	for i := 0; i < 5; i++ {
		x = x * (2 - n0*x)
	}
	return -x
}

// MontRedc performs Montgomery REDC reduction of a 2*width-limb value
// modulo n, consuming wide in place as scratch space.
func (n PosInt) MontRedc(wide []uint64, n0 uint64) PosInt {
	width := len(n.w)
	if len(wide) != 2*width {
		panic("low: MontRedc: wrong wide length")
	}
	var top uint64
	for i := 0; i < width; i++ {
		m := wide[i] * n0
		var carry uint64
		for j := 0; j < width; j++ {
			hi, lo := bits.Mul64(m, n.w[j])
			lo, c1 := bits.Add64(lo, carry, 0)
			hi += c1
			lo, c2 := bits.Add64(wide[i+j], lo, 0)
			hi += c2
			wide[i+j] = lo
			carry = hi
		}
		k := i + width
		for carry != 0 && k < 2*width {
			sum, c := bits.Add64(wide[k], carry, 0)
			wide[k] = sum
			carry = c
			k++
		}
		top += carry
	}

	result := PosInt{w: append([]uint64(nil), wide[width:2*width]...)}
	if top != 0 || !result.LessThan(n) {
		result, _ = result.Sub(n)
	}
	return result
}

// MontMul computes (a*b)/R mod n, the Montgomery product, where a and b
// are themselves in Montgomery form.
func (n PosInt) MontMul(a, b PosInt, n0 uint64) PosInt {
	wide := Mul(a, b)
	return n.MontRedc(wide, n0)
}

// MontSqr computes the Montgomery square of a.
func (n PosInt) MontSqr(a PosInt, n0 uint64) PosInt {
	return n.MontMul(a, a, n0)
}

// ToMontgomery carries the ordinary value a into Montgomery form, given
// n's montifier.
func (n PosInt) ToMontgomery(a, montifier PosInt, n0 uint64) PosInt {
	return n.MontMul(a, montifier, n0)
}

// FromMontgomery carries a Montgomery-form value back to its ordinary
// representation.
func (n PosInt) FromMontgomery(a PosInt, n0 uint64) PosInt {
	width := len(n.w)
	wide := make([]uint64, 2*width)
	copy(wide, a.w)
	return n.MontRedc(wide, n0)
}

// Reduce computes wide mod n, where wide holds 2*width(n) limbs
// representing an ordinary (non-Montgomery) value less than R*n, with
// R=2^(64*width(n)). It combines a Montgomery REDC pass (which yields
// wide*R^-1 mod n) with a Montgomery multiply by n's montifier (R^2 mod n)
// to cancel the R^-1 back out, leaving the plain residue. This is how the
// RSA CRT path reduces a signature/ciphertext of the full modulus width
// down into each half-width prime's field.
func (n PosInt) Reduce(wide []uint64, montifier PosInt, n0 uint64) PosInt {
	redced := n.MontRedc(append([]uint64(nil), wide...), n0)
	return n.MontMul(redced, montifier, n0)
}

func ctEqMask64(a, b uint64) uint64 {
	x := a ^ b
	nz := (x | (-x)) >> 63
	return nz - 1
}

// selectFromTable does a constant-time table lookup: it touches every
// entry and masks in the one matching idx, so the access pattern does not
// reveal which table row was used. This replaces bignum_copy_row_from_table
// from the assembly original.
func selectFromTable(table []PosInt, idx int) PosInt {
	width := len(table[0].w)
	out := NewPosInt(width)
	for i, entry := range table {
		mask := ctEqMask64(uint64(i), uint64(idx))
		for j := 0; j < width; j++ {
			out.w[j] |= entry.w[j] & mask
		}
	}
	return out
}

func extractNibble(e PosInt, bitpos int) int {
	limb := bitpos / 64
	shift := uint(bitpos % 64)
	if limb >= len(e.w) {
		return 0
	}
	return int((e.w[limb] >> shift) & 0xF)
}

// MontExp computes base^e mod n, where base is already in Montgomery form
// and the result is returned in Montgomery form too. It uses a fixed
// 4-bit window: the 16-entry table is built unconditionally and every
// squaring/multiply step runs regardless of the corresponding exponent
// bits, so the instruction trace and memory access pattern depend only on
// the bit-lengths of base, e and n, never on their values. e's bit-length
// (not n's) determines how many windows are processed.
func (n PosInt) MontExp(base, e, montifier PosInt, n0 uint64) PosInt {
	width := len(n.w)
	oneMont := n.ToMontgomery(One(width), montifier, n0)

	table := make([]PosInt, 16)
	table[0] = oneMont
	table[1] = base
	for i := 2; i < 16; i++ {
		table[i] = n.MontMul(table[i-1], base, n0)
	}

	acc := oneMont
	bitLen := len(e.w) * 64
	for bitpos := bitLen - 4; bitpos >= 0; bitpos -= 4 {
		for k := 0; k < 4; k++ {
			acc = n.MontSqr(acc, n0)
		}
		nib := extractNibble(e, bitpos)
		sel := selectFromTable(table, nib)
		acc = n.MontMul(acc, sel, n0)
	}
	return acc
}
