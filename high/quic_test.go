package high

import (
	"bytes"
	"testing"
)

func TestQuicHeaderProtectorRoundTripAes128(t *testing.T) {
	key := bytes.Repeat([]byte{0x2b}, 16)
	protector, err := NewQuicHeaderProtector(QuicAes128, key)
	if err != nil {
		t.Fatalf("NewQuicHeaderProtector: %v", err)
	}

	packet := make([]byte, 21)
	packet[0] = 0xc1
	for i := range packet[1:17] {
		packet[1+i] = byte(i * 3)
	}
	original := append([]byte(nil), packet...)
	sample := bytes.Repeat([]byte{0x5a}, 16)

	if err := protector.Apply(packet, true, 17, 4, sample); err != nil {
		t.Fatalf("Apply (protect): %v", err)
	}
	if bytes.Equal(packet, original) {
		t.Fatalf("protection did not modify the packet")
	}
	if err := protector.Apply(packet, true, 17, 4, sample); err != nil {
		t.Fatalf("Apply (unprotect): %v", err)
	}
	if !bytes.Equal(packet, original) {
		t.Fatalf("unprotecting did not restore the original packet")
	}
}

func TestQuicHeaderProtectorRoundTripChaCha20(t *testing.T) {
	key := bytes.Repeat([]byte{0x17}, 32)
	protector, err := NewQuicHeaderProtector(QuicChaCha20, key)
	if err != nil {
		t.Fatalf("NewQuicHeaderProtector: %v", err)
	}

	packet := make([]byte, 9)
	packet[0] = 0x41
	original := append([]byte(nil), packet...)
	sample := bytes.Repeat([]byte{0x9c}, 16)

	if err := protector.Apply(packet, false, 1, 2, sample); err != nil {
		t.Fatalf("Apply (protect): %v", err)
	}
	if bytes.Equal(packet, original) {
		t.Fatalf("protection did not modify the packet")
	}
	if err := protector.Apply(packet, false, 1, 2, sample); err != nil {
		t.Fatalf("Apply (unprotect): %v", err)
	}
	if !bytes.Equal(packet, original) {
		t.Fatalf("unprotecting did not restore the original packet")
	}
}

func TestNewQuicHeaderProtectorRejectsWrongKeyLength(t *testing.T) {
	if _, err := NewQuicHeaderProtector(QuicAes128, make([]byte, 32)); err == nil {
		t.Fatalf("expected AES-128 header protection to reject a 32-byte key")
	}
	if _, err := NewQuicHeaderProtector(QuicChaCha20, make([]byte, 16)); err == nil {
		t.Fatalf("expected ChaCha20 header protection to reject a 16-byte key")
	}
}

func TestDecodePacketNumberDelegatesToMid(t *testing.T) {
	got := DecodePacketNumber(0xa82f30ea, 0x9b32, 2)
	want := int64(0xa82f9b32)
	if got != want {
		t.Fatalf("DecodePacketNumber = %#x, want %#x", got, want)
	}
}
