package crypto

import "math/big"

// fixedBytes encodes v as a big-endian byte string of exactly n bytes,
// left-padding with zeros. v must be non-negative and fit in n bytes.
func fixedBytes(v *big.Int, n int) []byte {
	out := make([]byte, n)
	b := v.Bytes()
	if len(b) > n {
		return nil
	}
	copy(out[n-len(b):], b)
	return out
}
