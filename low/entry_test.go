package low

import "testing"

func TestNewEntrySnapshotsProcessWideFeatures(t *testing.T) {
	e := NewEntry()
	if e.Features() != CurrentFeatures() {
		t.Fatalf("Entry's feature snapshot disagreed with CurrentFeatures()")
	}
}

func TestUseAESNIRequiresBothAESAndPCLMULQDQ(t *testing.T) {
	e := Entry{features: Features{HasAESNI: true, HasPCLMULQDQ: false}}
	if e.UseAESNI() {
		t.Fatalf("UseAESNI should require PCLMULQDQ alongside AES-NI")
	}
	e = Entry{features: Features{HasAESNI: true, HasPCLMULQDQ: true}}
	if !e.UseAESNI() {
		t.Fatalf("UseAESNI should report true when both features are present")
	}
}
