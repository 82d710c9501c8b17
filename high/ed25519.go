package high

import (
	"crypto/ed25519"
	"crypto/rand"

	"github.com/corecrypt/corecrypt/errs"
)

// GenerateEd25519Key draws a fresh Ed25519 key pair via the RNG external
// collaborator. Ed25519's field arithmetic is not part of THE CORE (spec.md
// §1 scopes the hard bignum/EC engineering to P-256/P-384); this module
// relies on the standard library's constant-time curve25519/ed25519
// implementation the way golang.org/x/crypto/ed25519 itself does since Go
// 1.13 folded it in (x/crypto/ed25519 is now a thin deprecated alias over
// crypto/ed25519, so there is no separate third-party implementation in
// this pack's dependency set to prefer over it — see DESIGN.md).
func GenerateEd25519Key() (ed25519.PublicKey, ed25519.PrivateKey, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, errs.RngFailed
	}
	return pub, priv, nil
}

// SignEd25519 signs message with priv.
func SignEd25519(priv ed25519.PrivateKey, message []byte) []byte {
	return ed25519.Sign(priv, message)
}

// VerifyEd25519 checks sig over message under pub.
func VerifyEd25519(pub ed25519.PublicKey, message, sig []byte) error {
	if !ed25519.Verify(pub, message, sig) {
		return errs.BadSignature
	}
	return nil
}
