package mid

import (
	"strings"

	"github.com/corecrypt/corecrypt/errs"
	"github.com/corecrypt/corecrypt/low"
)

// X448Width is the X448 field width in 64-bit limbs (448 bits exactly).
const X448Width = 7

// x448a24 is (A-2)/4 for the Curve448 Montgomery coefficient A = 156326,
// RFC 7748 section 5.
const x448a24 = 39081

// x448P is the field modulus 2^448 - 2^224 - 1, RFC 7748 section 5. It is
// built from a repeated-digit pattern rather than transcribed as a single
// 112-hex-digit literal: 2^448-1 has every bit set, and subtracting 2^224
// (a single bit) only clears bit 224 with no borrow propagation, leaving
// 27 bytes of 0xff, one byte of 0xfe, then 28 more bytes of 0xff.
var x448P = buildX448Modulus()
var x448PMontifier = x448P.Montifier()
var x448P0 = x448P.MontNegInverse()

func buildX448Modulus() low.PosInt {
	hexStr := strings.Repeat("f", 54) + "fe" + strings.Repeat("f", 56)
	return mustFieldElement(X448Width, hexStr)
}

func x448FieldMul(a, b low.PosInt) low.PosInt { return x448P.MontMul(a, b, x448P0) }
func x448FieldSqr(a low.PosInt) low.PosInt    { return x448P.MontSqr(a, x448P0) }
func x448FieldAdd(a, b low.PosInt) low.PosInt {
	sum, carry := a.Add(b)
	if carry != 0 {
		sum, _ = sum.Sub(x448P)
		return sum
	}
	if !sum.LessThan(x448P) {
		sum, _ = sum.Sub(x448P)
	}
	return sum
}
func x448FieldSub(a, b low.PosInt) low.PosInt { return a.SubMod(b, x448P) }

func x448FieldInverse(a low.PosInt) low.PosInt {
	two := low.FromLimbs([]uint64{2}).Widen(X448Width)
	pMinus2, _ := x448P.Sub(two)
	return x448P.MontExp(a, pMinus2, x448PMontifier, x448P0)
}

// x448CondSwap conditionally swaps a and b's limbs in constant time when
// swap is 1, leaving them unchanged when swap is 0.
func x448CondSwap(swap uint64, a, b low.PosInt) (low.PosInt, low.PosInt) {
	mask := uint64(0) - (swap & 1)
	aw := a.Limbs()
	bw := b.Limbs()
	for i := range aw {
		t := mask & (aw[i] ^ bw[i])
		aw[i] ^= t
		bw[i] ^= t
	}
	return low.FromLimbs(aw), low.FromLimbs(bw)
}

// x448Ladder runs the RFC 7748 section 5 Montgomery ladder, all field
// elements held in Montgomery form throughout; only the initial u and the
// final result cross the Montgomery-domain boundary.
func x448Ladder(scalarBytes [56]byte, uBytes [56]byte) ([56]byte, error) {
	x1Ord, err := low.FromBytes(X448Width, reverseBytesCopy(uBytes[:]))
	if err != nil {
		return [56]byte{}, errs.OutOfRange
	}
	x1 := x448P.ToMontgomery(x1Ord, x448PMontifier, x448P0)

	zero := low.NewPosInt(X448Width)
	one := x448P.ToMontgomery(low.One(X448Width), x448PMontifier, x448P0)
	a24 := x448P.ToMontgomery(low.FromLimbs([]uint64{x448a24}).Widen(X448Width), x448PMontifier, x448P0)

	x2, z2 := one, zero
	x3, z3 := x1, one

	var swap uint64
	for t := 447; t >= 0; t-- {
		kt := uint64((scalarBytes[t/8] >> uint(t%8)) & 1)
		swap ^= kt
		x2, x3 = x448CondSwap(swap, x2, x3)
		z2, z3 = x448CondSwap(swap, z2, z3)
		swap = kt

		A := x448FieldAdd(x2, z2)
		AA := x448FieldSqr(A)
		B := x448FieldSub(x2, z2)
		BB := x448FieldSqr(B)
		E := x448FieldSub(AA, BB)
		C := x448FieldAdd(x3, z3)
		D := x448FieldSub(x3, z3)
		DA := x448FieldMul(D, A)
		CB := x448FieldMul(C, B)

		sum := x448FieldAdd(DA, CB)
		x3 = x448FieldSqr(sum)
		diff := x448FieldSub(DA, CB)
		z3 = x448FieldMul(x1, x448FieldSqr(diff))
		x2 = x448FieldMul(AA, BB)
		z2 = x448FieldMul(E, x448FieldAdd(AA, x448FieldMul(a24, E)))
	}
	x2, x3 = x448CondSwap(swap, x2, x3)
	z2, z3 = x448CondSwap(swap, z2, z3)

	zInv := x448FieldInverse(z2)
	resultMont := x448FieldMul(x2, zInv)
	result := x448P.FromMontgomery(resultMont, x448P0)

	var out [56]byte
	buf := make([]byte, X448Width*8)
	if _, err := result.ToBytes(buf); err != nil {
		return [56]byte{}, err
	}
	copy(out[:], reverseBytesCopy(buf))
	return out, nil
}

func reverseBytesCopy(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

// ClampX448Scalar applies RFC 7748 section 5's decodeScalar448 clamping.
func ClampX448Scalar(k [56]byte) [56]byte {
	k[0] &= 252
	k[55] |= 128
	return k
}

// X448Basepoint is the Curve448 base point u-coordinate, RFC 7748 §4.2.
var X448Basepoint = [56]byte{5}

// X448 computes the Curve448 Montgomery-ladder scalar multiplication
// scalar*u, used both for key generation (u = X448Basepoint) and
// Diffie-Hellman (u = peer's public point).
func X448(scalar, u [56]byte) ([56]byte, error) {
	return x448Ladder(ClampX448Scalar(scalar), u)
}
