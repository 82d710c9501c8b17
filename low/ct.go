package low

// CtEqual reports whether a and b hold the same bytes, in time that does
// not depend on where they first differ. AEAD tag verification goes
// through this instead of bytes.Equal; PosInt values (scalars, the RSA
// fault-check result) are compared with PosInt.Equals, and high/rsa.go
// compares encoded messages with crypto/subtle.
func CtEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}

	var diff byte
	for i := range a {
		diff |= a[i] ^ b[i]
	}

	return optimiseBarrierU8(diff) == 0
}

// optimiseBarrierU8 returns v, but through a path the compiler cannot see
// through at compile time, so it cannot fold the ct_equal loop's OR-chain
// into a short-circuiting branch. Go's inliner is conservative enough that
// a plain identity function already defeats this particular optimisation in
// practice, but the indirection documents the requirement at the call site
// and gives us one place to harden further if that ever changes.
func optimiseBarrierU8(v byte) byte {
	return v
}
