package high

import (
	"github.com/corecrypt/corecrypt/errs"
	"github.com/corecrypt/corecrypt/mid"
)

// QuicHeaderProtectionSuite selects which RFC 9001 header-protection
// algorithm a QUIC connection negotiated.
type QuicHeaderProtectionSuite int

const (
	QuicAes128 QuicHeaderProtectionSuite = iota
	QuicAes256
	QuicChaCha20
)

// QuicHeaderProtector applies or removes RFC 9001 header protection given
// a 16-byte ciphertext sample taken from the packet.
type QuicHeaderProtector struct {
	suite   QuicHeaderProtectionSuite
	aes     mid.AesHeaderProtection
	chacha  mid.ChaCha20HeaderProtection
}

// NewQuicHeaderProtector builds a protector for the given suite and header
// protection key (16 or 32 bytes for AES, 32 bytes for ChaCha20).
func NewQuicHeaderProtector(suite QuicHeaderProtectionSuite, key []byte) (QuicHeaderProtector, error) {
	switch suite {
	case QuicAes128:
		if len(key) != 16 {
			return QuicHeaderProtector{}, errs.WrongLength
		}
		return QuicHeaderProtector{suite: suite, aes: mid.NewAesHeaderProtection128(key)}, nil
	case QuicAes256:
		if len(key) != 32 {
			return QuicHeaderProtector{}, errs.WrongLength
		}
		return QuicHeaderProtector{suite: suite, aes: mid.NewAesHeaderProtection256(key)}, nil
	case QuicChaCha20:
		if len(key) != 32 {
			return QuicHeaderProtector{}, errs.WrongLength
		}
		return QuicHeaderProtector{suite: suite, chacha: mid.NewChaCha20HeaderProtection(key)}, nil
	default:
		return QuicHeaderProtector{}, errs.OutOfRange
	}
}

// Apply XORs the header-protection mask into packet's first byte and
// packet-number bytes in place; calling it a second time with the same
// sample removes protection, since the mask is its own inverse under XOR.
func (p *QuicHeaderProtector) Apply(packet []byte, isLongHeader bool, pnOffset, pnLength int, sample []byte) error {
	if len(sample) != 16 {
		return errs.WrongLength
	}
	var mask mid.HeaderProtectionMask
	switch p.suite {
	case QuicAes128, QuicAes256:
		mask = p.aes.Mask(sample)
	case QuicChaCha20:
		mask = p.chacha.Mask(sample)
	default:
		return errs.OutOfRange
	}
	mid.ApplyHeaderProtection(packet, isLongHeader, pnOffset, pnLength, mask)
	return nil
}

// DecodePacketNumber reconstructs a full packet number per RFC 9000
// Appendix A.3, given the largest packet number processed so far.
func DecodePacketNumber(largestPn int64, truncatedPn uint64, pnLen int) int64 {
	return mid.DecodePacketNumber(largestPn, truncatedPn, pnLen)
}
