package high

import (
	"crypto/rand"

	"github.com/corecrypt/corecrypt/errs"
	"github.com/corecrypt/corecrypt/mid"
)

// GenerateP256Key draws a uniformly random private scalar via the RNG
// external collaborator, rejection-sampling against the group order so the
// result is uniform over [1, n-1] rather than biased by a naive modular
// reduction.
func GenerateP256Key() (mid.P256PrivateKey, error) {
	for {
		var buf [mid.P256Width * 8]byte
		if _, err := rand.Read(buf[:]); err != nil {
			return mid.P256PrivateKey{}, errs.RngFailed
		}
		priv, err := mid.NewP256PrivateKey(buf[:])
		if err == nil {
			return priv, nil
		}
		if err != errs.OutOfRange {
			return mid.P256PrivateKey{}, err
		}
	}
}

// GenerateP384Key is GenerateP256Key's P-384 counterpart.
func GenerateP384Key() (mid.P384PrivateKey, error) {
	for {
		var buf [mid.P384Width * 8]byte
		if _, err := rand.Read(buf[:]); err != nil {
			return mid.P384PrivateKey{}, errs.RngFailed
		}
		priv, err := mid.NewP384PrivateKey(buf[:])
		if err == nil {
			return priv, nil
		}
		if err != errs.OutOfRange {
			return mid.P384PrivateKey{}, err
		}
	}
}

// SignP256 draws fresh per-message nonces until mid's raw ECDSA sign
// succeeds (the s == 0 / r == 0 degenerate cases spec.md §8 requires
// rejecting are vanishingly rare but must be retried rather than ignored).
func SignP256(priv *mid.P256PrivateKey, digest []byte) (r, s []byte, err error) {
	for {
		var nonce [mid.P256Width * 8]byte
		if _, err := rand.Read(nonce[:]); err != nil {
			return nil, nil, errs.RngFailed
		}
		r, s, ok, err := priv.Sign(digest, nonce[:])
		if err != nil {
			return nil, nil, err
		}
		if ok {
			return r, s, nil
		}
	}
}

// SignP384 is SignP256's P-384 counterpart.
func SignP384(priv *mid.P384PrivateKey, digest []byte) (r, s []byte, err error) {
	for {
		var nonce [mid.P384Width * 8]byte
		if _, err := rand.Read(nonce[:]); err != nil {
			return nil, nil, errs.RngFailed
		}
		r, s, ok, err := priv.Sign(digest, nonce[:])
		if err != nil {
			return nil, nil, err
		}
		if ok {
			return r, s, nil
		}
	}
}
