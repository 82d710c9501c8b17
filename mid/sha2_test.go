package mid

import (
	"encoding/hex"
	"strings"
	"testing"
)

func TestSha256KnownAnswers(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"hello", "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"},
	}
	for _, c := range cases {
		ctx := NewSha256()
		ctx.Update([]byte(c.in))
		got := ctx.Finish()
		if hex.EncodeToString(got[:]) != c.want {
			t.Errorf("SHA-256(%q) = %x, want %s", c.in, got, c.want)
		}
	}
}

func TestSha256UpdateSplitMatchesOneShot(t *testing.T) {
	msg := []byte(strings.Repeat("corecrypt", 50))

	oneShot := NewSha256()
	oneShot.Update(msg)
	want := oneShot.Finish()

	split := NewSha256()
	for i := 0; i < len(msg); i += 7 {
		end := i + 7
		if end > len(msg) {
			end = len(msg)
		}
		split.Update(msg[i:end])
	}
	got := split.Finish()

	if got != want {
		t.Errorf("split update disagreed with one-shot update")
	}
}

func TestSha512And384(t *testing.T) {
	empty512 := NewSha512().Finish()
	want512 := "cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e"
	if hex.EncodeToString(empty512[:]) != want512 {
		t.Errorf("SHA-512(\"\") = %x, want %s", empty512, want512)
	}

	empty384 := NewSha384().FinishSha384()
	want384 := "38b060a751ac96384cd9327eb1b1e36a21fdb71114be07434c0cc7bf63f6e1da274edebfe76f65fbd51ad2f14898b95b"
	if hex.EncodeToString(empty384[:]) != want384 {
		t.Errorf("SHA-384(\"\") = %x, want %s", empty384, want384)
	}
}

func TestSha256Clone(t *testing.T) {
	prefix := NewSha256()
	prefix.Update([]byte("shared-prefix-"))

	a := prefix.Clone()
	a.Update([]byte("a"))
	b := prefix.Clone()
	b.Update([]byte("b"))

	if a.Finish() == b.Finish() {
		t.Errorf("cloned contexts diverging by one update byte produced the same digest")
	}
}
