package low

// Zeroize overwrites buf with zeroes using a write the compiler cannot
// eliminate as dead, even though buf is about to go out of scope or be
// garbage collected. Every structure holding secret material must call this
// (or ZeroizeU64/ZeroizeU32) from its cleanup path.
//
// runtime.KeepAlive pins buf past the final store so the compiler cannot
// treat the loop as dead code under escape analysis; there is no portable
// "volatile write" in Go, so this is the idiomatic approximation used
// throughout the low layer.
func Zeroize(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	runtimeKeepAlive(buf)
}

// ZeroizeU64 overwrites a slice of 64-bit words, as used by PosInt and
// Montgomery scratch space.
func ZeroizeU64(words []uint64) {
	for i := range words {
		words[i] = 0
	}
	runtimeKeepAlive(words)
}

// ZeroizeU32 overwrites a slice of 32-bit words, the word size of SHA-256
// state and AES round-key schedules.
func ZeroizeU32(words []uint32) {
	for i := range words {
		words[i] = 0
	}
	runtimeKeepAlive(words)
}
