package mid

import "github.com/holiman/uint256"

// DecodePacketNumber reconstructs a full packet number from its truncated
// wire encoding and the largest packet number processed so far, per RFC
// 9000 Appendix A.3. The window and mask are derived via uint256.Int's
// fixed-width shift rather than a native uint64 shift, matching this
// module's general preference for explicit-width arithmetic at protocol
// boundaries (see mid/ecc.go, low/posint.go for the same discipline
// applied to cryptographic arithmetic).
func DecodePacketNumber(largestPn int64, truncatedPn uint64, pnLen int) int64 {
	if pnLen < 1 || pnLen > 4 {
		panic("mid: QUIC packet number length must be 1..4")
	}
	pnNbits := uint(pnLen * 8)

	pnWin256 := new(uint256.Int).Lsh(uint256.NewInt(1), pnNbits)
	pnWin := int64(pnWin256.Uint64())
	pnHwin := pnWin / 2
	pnMask256 := new(uint256.Int).Sub(pnWin256, uint256.NewInt(1))
	pnMask := pnMask256.Uint64()

	expectedPn := largestPn + 1
	candidate := (expectedPn &^ int64(pnMask)) | int64(truncatedPn)

	switch {
	case candidate <= expectedPn-pnHwin && candidate < (int64(1)<<62)-pnWin:
		return candidate + pnWin
	case candidate > expectedPn+pnHwin && candidate >= pnWin:
		return candidate - pnWin
	default:
		return candidate
	}
}

// EncodePacketNumber picks the minimal packet-number length (in bytes, 1..4)
// that round-trips through DecodePacketNumber given the largest packet
// number acknowledged by the peer, per RFC 9000 Appendix A.2, and returns
// the truncated wire value for that length.
func EncodePacketNumber(pn, largestAcked int64) (truncated uint64, length int) {
	numUnacked := pn - largestAcked
	if largestAcked < 0 {
		numUnacked = pn + 1
	}
	minBits := uint(64 - leadingZerosInt64(numUnacked*2-1))
	length = int((minBits + 7) / 8)
	if length < 1 {
		length = 1
	}
	if length > 4 {
		length = 4
	}
	mask := (uint64(1) << uint(length*8)) - 1
	return uint64(pn) & mask, length
}

func leadingZerosInt64(v int64) int {
	if v <= 0 {
		return 64
	}
	n := 0
	for u := uint64(v); u&0x8000000000000000 == 0; u <<= 1 {
		n++
	}
	return n
}
