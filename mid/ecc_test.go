package mid

import (
	"bytes"
	"testing"

	"github.com/corecrypt/corecrypt/low"
)

func repeatByte(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}

func TestP256SignAndVerify(t *testing.T) {
	priv, err := NewP256PrivateKey(repeatByte(0x11, 32))
	if err != nil {
		t.Fatalf("NewP256PrivateKey: %v", err)
	}
	digest := repeatByte(0xab, 32)
	nonce := repeatByte(0x22, 32)

	r, s, ok, err := priv.Sign(digest, nonce)
	if err != nil || !ok {
		t.Fatalf("Sign: ok=%v err=%v", ok, err)
	}

	pub := priv.PublicKey()
	if err := pub.Verify(digest, r, s); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	tamperedDigest := append([]byte(nil), digest...)
	tamperedDigest[0] ^= 1
	if err := pub.Verify(tamperedDigest, r, s); err == nil {
		t.Fatalf("Verify accepted a signature over a different digest")
	}
}

func TestP256RejectsZeroAndOutOfRangeScalar(t *testing.T) {
	if _, err := NewP256PrivateKey(repeatByte(0x00, 32)); err == nil {
		t.Fatalf("expected zero scalar to be rejected")
	}
	if _, err := NewP256PrivateKey(repeatByte(0xff, 32)); err == nil {
		t.Fatalf("expected scalar >= n to be rejected")
	}
}

func TestP256ExportImportRoundTrip(t *testing.T) {
	priv, err := NewP256PrivateKey(repeatByte(0x33, 32))
	if err != nil {
		t.Fatalf("NewP256PrivateKey: %v", err)
	}
	pub := priv.PublicKey()
	encoded, err := pub.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(encoded) != 65 || encoded[0] != 0x04 {
		t.Fatalf("Export: got %d bytes, form byte %#x", len(encoded), encoded[0])
	}

	imported, err := ImportP256PublicKey(encoded)
	if err != nil {
		t.Fatalf("ImportP256PublicKey: %v", err)
	}
	reExported, err := imported.Export()
	if err != nil {
		t.Fatalf("Export (re-imported): %v", err)
	}
	if !bytes.Equal(encoded, reExported) {
		t.Fatalf("import/export roundtrip mismatch")
	}
}

func TestP256ImportRejectsOffCurvePoint(t *testing.T) {
	bad := make([]byte, 65)
	bad[0] = 0x04
	bad[1] = 1 // x=2^248, y=0 is not on the curve for P-256's b
	if _, err := ImportP256PublicKey(bad); err == nil {
		t.Fatalf("expected off-curve point to be rejected")
	}
}

func TestP256DiffieHellmanAgrees(t *testing.T) {
	alice, err := NewP256PrivateKey(repeatByte(0x01, 32))
	if err != nil {
		t.Fatalf("NewP256PrivateKey(alice): %v", err)
	}
	bob, err := NewP256PrivateKey(repeatByte(0x02, 32))
	if err != nil {
		t.Fatalf("NewP256PrivateKey(bob): %v", err)
	}

	aliceShared, err := alice.DiffieHellman(bob.PublicKey())
	if err != nil {
		t.Fatalf("alice DiffieHellman: %v", err)
	}
	bobShared, err := bob.DiffieHellman(alice.PublicKey())
	if err != nil {
		t.Fatalf("bob DiffieHellman: %v", err)
	}
	if !bytes.Equal(aliceShared, bobShared) {
		t.Fatalf("shared secrets disagree: %x vs %x", aliceShared, bobShared)
	}
}

func TestP384SignAndVerify(t *testing.T) {
	priv, err := NewP384PrivateKey(repeatByte(0x44, 48))
	if err != nil {
		t.Fatalf("NewP384PrivateKey: %v", err)
	}
	digest := repeatByte(0xcd, 48)
	nonce := repeatByte(0x55, 48)

	r, s, ok, err := priv.Sign(digest, nonce)
	if err != nil || !ok {
		t.Fatalf("Sign: ok=%v err=%v", ok, err)
	}
	pub := priv.PublicKey()
	if err := pub.Verify(digest, r, s); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestP384DiffieHellmanAgrees(t *testing.T) {
	alice, err := NewP384PrivateKey(repeatByte(0x07, 48))
	if err != nil {
		t.Fatalf("NewP384PrivateKey(alice): %v", err)
	}
	bob, err := NewP384PrivateKey(repeatByte(0x09, 48))
	if err != nil {
		t.Fatalf("NewP384PrivateKey(bob): %v", err)
	}
	aliceShared, err := alice.DiffieHellman(bob.PublicKey())
	if err != nil {
		t.Fatalf("alice DiffieHellman: %v", err)
	}
	bobShared, err := bob.DiffieHellman(alice.PublicKey())
	if err != nil {
		t.Fatalf("bob DiffieHellman: %v", err)
	}
	if !bytes.Equal(aliceShared, bobShared) {
		t.Fatalf("shared secrets disagree")
	}
}

// TestAddOrDoubleHandlesSelfNegation exercises the Jacobian addition
// incompleteness path directly: adding a point to its own negation must
// produce the point at infinity rather than the general formula's
// division-by-zero-in-disguise result.
func TestAddOrDoubleHandlesSelfNegation(t *testing.T) {
	c := P256()
	g := c.GeneratorAffine()
	negG := c.NegatePoint(g)

	jg := c.JacobianFromAffine(g)
	jNegG := c.JacobianFromAffine(negG)

	sum := c.addOrDouble(jg, jNegG)
	if !isInfinity(sum) {
		t.Fatalf("P + (-P) did not produce the point at infinity")
	}
}

// TestAddOrDoubleHandlesDoubling exercises the other degenerate case: P + P
// must route to the doubling formula and agree with ScalarMultVariableBase
// computing 2*P independently.
func TestAddOrDoubleHandlesDoubling(t *testing.T) {
	c := P256()
	g := c.GeneratorAffine()
	jg := c.JacobianFromAffine(g)

	two := low.FromLimbs([]uint64{2}).Widen(P256Width)
	viaAdd := c.addOrDouble(jg, jg)
	viaScalar := c.ScalarMultVariableBase(two, jg)

	affineAdd, ok1 := c.AffineFromJacobian(viaAdd)
	affineScalar, ok2 := c.AffineFromJacobian(viaScalar)
	if !ok1 || !ok2 {
		t.Fatalf("expected both doublings to produce finite points")
	}
	if !affineAdd.X.Equals(affineScalar.X) || !affineAdd.Y.Equals(affineScalar.Y) {
		t.Fatalf("addOrDouble(P,P) disagreed with scalar multiplication by 2")
	}
}
