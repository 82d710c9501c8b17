// Package errs defines the single error taxonomy shared by the low, mid and
// high packages of corecrypt. Every boundary, verification, or randomness
// failure those packages surface is one of the sentinels below; none of them
// defines its own parallel error type. The crypto front-door package is the
// exception: it returns its own errors.New values.
package errs

// Error is a sentinel crypto error. All low/mid/high failures are one of these
// values, never a wrapped or dynamically-constructed error, so callers can
// use errors.Is without needing to unwrap anything.
type Error struct {
	kind string
}

func (e *Error) Error() string { return e.kind }

var (
	// OutOfRange is returned when an integer, scalar or key component does
	// not fit the capacity or range required by the operation (e.g. a
	// ciphertext integer >= the RSA modulus, or a byte string wider than
	// the target PosInt width).
	OutOfRange = &Error{"corecrypt: value out of range"}

	// WrongLength is returned when a fixed-size input (a hash, a tag, an
	// encoded point) does not have the length the operation requires.
	WrongLength = &Error{"corecrypt: wrong length"}

	// NotUncompressed is returned when an EC public key is not encoded as
	// ANSI X9.62 uncompressed (leading 0x04) form.
	NotUncompressed = &Error{"corecrypt: point is not in uncompressed form"}

	// NotOnCurve is returned when an imported point does not satisfy the
	// curve equation.
	NotOnCurve = &Error{"corecrypt: point is not on curve"}

	// BadSignature is returned by signature verification that fails,
	// whether due to a malformed, expired, or simply incorrect signature.
	BadSignature = &Error{"corecrypt: bad signature"}

	// DecryptFailed is returned when AEAD tag verification fails, or when
	// the RSA private-operation fault check fails. In both cases any
	// output buffer has already been zeroed.
	DecryptFailed = &Error{"corecrypt: decryption failed"}

	// RngFailed is returned when the configured randomness source could
	// not supply the requested bytes.
	RngFailed = &Error{"corecrypt: random generation failed"}

	// Asn1Error is returned by the external ASN.1/PKCS#1 collaborators
	// used by the high-level RSA façade.
	Asn1Error = &Error{"corecrypt: malformed ASN.1/PKCS#1 encoding"}
)
