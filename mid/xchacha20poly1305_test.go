package mid

import (
	"bytes"
	"testing"
)

func TestXChaCha20Poly1305RoundTrip(t *testing.T) {
	key := bytes.Repeat([]byte{0x2a}, 32)
	nonce := bytes.Repeat([]byte{0x3b}, 24)
	aad := []byte("xchacha aad")
	plaintext := []byte("a 24-byte nonce means callers can use random nonces safely")

	aead := NewXChaCha20Poly1305(key)
	ciphertext, tag := aead.Seal(nonce, aad, plaintext)

	got, err := aead.Open(nonce, aad, ciphertext, tag)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("roundtrip mismatch: got %q, want %q", got, plaintext)
	}
}

func TestXChaCha20Poly1305DistinctNoncesDistinctCiphertext(t *testing.T) {
	key := bytes.Repeat([]byte{0x11}, 32)
	plaintext := []byte("same plaintext, different nonce")

	aead1 := NewXChaCha20Poly1305(key)
	c1, _ := aead1.Seal(bytes.Repeat([]byte{0x01}, 24), nil, plaintext)

	aead2 := NewXChaCha20Poly1305(key)
	c2, _ := aead2.Seal(bytes.Repeat([]byte{0x02}, 24), nil, plaintext)

	if bytes.Equal(c1, c2) {
		t.Fatalf("different nonces produced identical ciphertext")
	}
}

func TestXChaCha20Poly1305TamperedTagRejected(t *testing.T) {
	key := bytes.Repeat([]byte{0x33}, 32)
	nonce := bytes.Repeat([]byte{0x44}, 24)
	plaintext := []byte("tamper check")

	aead := NewXChaCha20Poly1305(key)
	ciphertext, tag := aead.Seal(nonce, nil, plaintext)
	tag[15] ^= 1

	if _, err := aead.Open(nonce, nil, ciphertext, tag); err == nil {
		t.Fatalf("expected tampered tag to be rejected")
	}
}
