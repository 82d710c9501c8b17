package mid

import (
	"bytes"
	"encoding/hex"
	"testing"
)

// TestChaCha20Poly1305Rfc7539Vector is the RFC 7539 section 2.8.2 worked
// example, spec.md's designated concrete scenario 4.
func TestChaCha20Poly1305Rfc7539Vector(t *testing.T) {
	key, _ := hex.DecodeString("808182838485868788898a8b8c8d8e8f909192939495969798999a9b9c9d9e9f")
	nonce, _ := hex.DecodeString("070000004041424344454647")
	aad, _ := hex.DecodeString("50515253c0c1c2c3c4c5c6c7")
	plaintext := []byte("Ladies and Gentlemen of the class of '99: If I could offer you only one tip for the future, sunscreen would be it.")

	aead := NewChaCha20Poly1305(key)
	ciphertext, tag := aead.Seal(nonce, aad, plaintext)

	wantCiphertext, _ := hex.DecodeString("d31a8d34648e60db7b86afbc53ef7ec2a4aded51296e08fea9e2b5a736ee62d63dbea45e8ca9671282fafb69da92728b1a71de0a9e060b2905d6a5b67ecd3b3692ddbd7f2d778b8c9803aee328091b58fab324e4fad675945585808b4831d7bc3ff4def08e4b7a9de576d26586cec64b6116")
	wantTag, _ := hex.DecodeString("1ae10b594f09e26a7e902ecbd0600691")

	if !bytes.Equal(ciphertext, wantCiphertext) {
		t.Fatalf("ciphertext = %x, want %x", ciphertext, wantCiphertext)
	}
	if !bytes.Equal(tag[:], wantTag) {
		t.Fatalf("tag = %x, want %x", tag, wantTag)
	}

	got, err := aead.Open(nonce, aad, ciphertext, tag)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("decrypted plaintext mismatch")
	}
}

func TestChaCha20Poly1305TamperedCiphertextRejected(t *testing.T) {
	key := bytes.Repeat([]byte{0x09}, 32)
	nonce := bytes.Repeat([]byte{0x01}, 12)
	plaintext := []byte("authenticate me")

	aead := NewChaCha20Poly1305(key)
	ciphertext, tag := aead.Seal(nonce, nil, plaintext)
	ciphertext[0] ^= 1

	if _, err := aead.Open(nonce, nil, ciphertext, tag); err == nil {
		t.Fatalf("expected tampered ciphertext to be rejected")
	}
}

func TestChaCha20Poly1305EmptyPlaintextNonzeroTag(t *testing.T) {
	key := bytes.Repeat([]byte{0x05}, 32)
	nonce := bytes.Repeat([]byte{0x06}, 12)

	aead := NewChaCha20Poly1305(key)
	_, tag := aead.Seal(nonce, nil, nil)

	zero := [16]byte{}
	if tag == zero {
		t.Fatalf("empty AAD + empty plaintext produced an all-zero tag")
	}
}
