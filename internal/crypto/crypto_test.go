package crypto_test

import (
	"testing"

	"yatra/internal/crypto"
)

func TestFingerprint_StableAndShort(t *testing.T) {
	a := crypto.Fingerprint("token-a")
	if len(a) != 12 {
		t.Fatalf("want 12 hex chars, got %d (%q)", len(a), a)
	}
	if a != crypto.Fingerprint("token-a") {
		t.Fatal("fingerprint not stable")
	}
	if a == crypto.Fingerprint("token-b") {
		t.Fatal("distinct secrets share a fingerprint")
	}
	if crypto.Fingerprint("") != "" {
		t.Fatal("empty secret should have empty fingerprint")
	}
}

func TestWipe(t *testing.T) {
	b := []byte("secret")
	crypto.Wipe(b)
	for i, c := range b {
		if c != 0 {
			t.Fatalf("byte %d not wiped", i)
		}
	}
}
