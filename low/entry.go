package low

import "golang.org/x/sys/cpu"

// Features summarizes which architecture-specific kernels this process may
// use. It is computed once at init time from golang.org/x/sys/cpu and never
// changes afterwards, so every Entry built during the process's lifetime
// observes the same dispatch decision.
type Features struct {
	HasAESNI    bool
	HasPCLMULQDQ bool
	HasAVX2     bool
	HasARMAES   bool
	HasARMPMULL bool
}

var features = detectFeatures()

func detectFeatures() Features {
	return Features{
		HasAESNI:     cpu.X86.HasAES,
		HasPCLMULQDQ: cpu.X86.HasPCLMULQDQ,
		HasAVX2:      cpu.X86.HasAVX2,
		HasARMAES:    cpu.ARM64.HasAES,
		HasARMPMULL:  cpu.ARM64.HasPMULL,
	}
}

// CurrentFeatures returns the process-wide detected CPU feature set.
func CurrentFeatures() Features {
	return features
}

// Entry marks entry into a secret-handling region: a single AEAD
// encrypt/decrypt call, a signing operation, an RSA private-key operation.
// Constructing one fixes the kernel set for that region's whole duration
// (so a single operation can't observe a feature flag changing mid-flight)
// and gives a single place to hang domain-separation defenses (e.g.
// discarding speculative state on entry). No operation in low, mid or high
// constructs an Entry; only this package's tests call NewEntry. Entry does
// no hardening beyond holding the feature snapshot.
type Entry struct {
	features Features
}

// NewEntry opens a secret-handling entry guard for the calling goroutine.
func NewEntry() Entry {
	return Entry{features: features}
}

// Features returns the kernel dispatch decision fixed for this Entry.
func (e Entry) Features() Features {
	return e.features
}

// UseAESNI reports whether this Entry should dispatch AES-related kernels
// to the AES-NI path rather than the generic one. This module ships only
// the generic kernels, and no call site consults this flag.
func (e Entry) UseAESNI() bool {
	return e.features.HasAESNI && e.features.HasPCLMULQDQ
}
