// Command corecrypt-selftest runs the known-answer-test vectors the
// corecrypt core is built against and reports pass/fail for each, so the
// core's byte-for-byte behavior can be checked on a new platform without
// pulling in the full test suite.
package main

import (
	"bytes"
	"encoding/hex"
	"flag"
	"log/slog"
	"os"

	corelog "github.com/corecrypt/corecrypt/log"
	"github.com/corecrypt/corecrypt/mid"
)

type vector struct {
	name string
	run  func() (ok bool, detail string)
}

func hexBytes(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("corecrypt-selftest: bad hex literal in vector table: " + err.Error())
	}
	return b
}

func vectors() []vector {
	return []vector{
		{
			name: "sha256-empty",
			run: func() (bool, string) {
				ctx := mid.NewSha256()
				got := ctx.Finish()
				want := hexBytes("e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855")
				return bytes.Equal(got[:], want), hex.EncodeToString(got[:])
			},
		},
		{
			name: "sha256-hello",
			run: func() (bool, string) {
				ctx := mid.NewSha256()
				ctx.Update([]byte("hello"))
				got := ctx.Finish()
				want := hexBytes("2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824")
				return bytes.Equal(got[:], want), hex.EncodeToString(got[:])
			},
		},
		{
			name: "aes128gcm-zero",
			run: func() (bool, string) {
				aead := mid.NewAesGcm128(make([]byte, 16))
				_, tag := aead.Seal(make([]byte, 12), nil, nil)
				want := hexBytes("58e2fccefa7e3061367f1d57a4e7455a")
				return bytes.Equal(tag[:], want), hex.EncodeToString(tag[:])
			},
		},
		{
			name: "chacha20poly1305-rfc7539",
			run: func() (bool, string) {
				key := hexBytes("808182838485868788898a8b8c8d8e8f909192939495969798999a9b9c9d9e9f")
				nonce := hexBytes("070000004041424344454647")
				aad := hexBytes("50515253c0c1c2c3c4c5c6c7")
				plaintext := []byte("Ladies and Gentlemen of the class of '99: If I could offer you only one tip for the future, sunscreen would be it.")

				aead := mid.NewChaCha20Poly1305(key)
				ciphertext, tag := aead.Seal(nonce, aad, plaintext)

				wantCiphertext := hexBytes("d31a8d34648e60db7b86afbc53ef7ec2a4aded51296e08fea9e2b5a736ee62d63dbea45e8ca9671282fafb69da92728b1a71de0a9e060b2905d6a5b67ecd3b3692ddbd7f2d778b8c9803aee328091b58fab324e4fad675945585808b4831d7bc3ff4def08e4b7a9de576d26586cec64b6116")
				wantTag := hexBytes("1ae10b594f09e26a7e902ecbd0600691")
				return bytes.Equal(ciphertext, wantCiphertext) && bytes.Equal(tag[:], wantTag[:]),
					hex.EncodeToString(ciphertext) + "/" + hex.EncodeToString(tag[:])
			},
		},
		{
			name: "ecdsa-p256-roundtrip",
			run: func() (bool, string) {
				d := hexBytes("1f5545230850e1ca010101010101010101010101010101010101010101010101")
				priv, err := mid.NewP256PrivateKey(d)
				if err != nil {
					return false, "key rejected: " + err.Error()
				}
				digest := hexBytes("e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855")
				nonce := hexBytes("010101010101010101010101010101010101010101010101010101010101010a")
				r, s, ok, err := priv.Sign(digest, nonce)
				if err != nil || !ok {
					return false, "sign failed"
				}
				pub := priv.PublicKey()
				verifyErr := pub.Verify(digest, r, s)
				return verifyErr == nil, "verify: " + errString(verifyErr)
			},
		},
	}
}

func errString(err error) string {
	if err == nil {
		return "ok"
	}
	return err.Error()
}

func main() {
	level := flag.String("level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	var slvl slog.Level
	switch *level {
	case "debug":
		slvl = slog.LevelDebug
	case "warn":
		slvl = slog.LevelWarn
	case "error":
		slvl = slog.LevelError
	default:
		slvl = slog.LevelInfo
	}
	logger := corelog.New(slvl)

	failures := 0
	for _, v := range vectors() {
		ok, detail := v.run()
		if ok {
			logger.Info("selftest vector passed", "name", v.name)
		} else {
			failures++
			logger.Error("selftest vector failed", "name", v.name, "detail", detail)
		}
	}

	if failures > 0 {
		os.Exit(1)
	}
}
