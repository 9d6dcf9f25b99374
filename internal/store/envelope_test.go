package store

import (
	"bytes"
	"testing"

	"yatra/internal/domain"
)

func countDerivations(t *testing.T) *int {
	t.Helper()
	calls := 0
	orig := deriveKey
	deriveKey = func(password, salt []byte, N, r, p, keyLen int) ([]byte, error) {
		calls++
		return orig(password, salt, N, r, p, keyLen)
	}
	t.Cleanup(func() { deriveKey = orig })
	return &calls
}

func TestEncryptedFileStore_DerivesKeyOnce(t *testing.T) {
	calls := countDerivations(t)
	s := NewEncryptedFileStore(t.TempDir(), "p", "pw")

	for i := 0; i < 3; i++ {
		if err := s.Set(domain.SlotAccess, "acc"); err != nil {
			t.Fatalf("set: %v", err)
		}
		if _, _, err := s.Get(domain.SlotAccess); err != nil {
			t.Fatalf("get: %v", err)
		}
	}
	if err := s.Set(domain.SlotRefresh, "ref"); err != nil {
		t.Fatalf("set refresh: %v", err)
	}
	if *calls != 1 {
		t.Fatalf("want 1 key derivation, got %d", *calls)
	}
}

func TestSealer_FreshNoncePerWrite(t *testing.T) {
	sl := newSealer("pw")
	a, err := sl.seal([]byte(`{"p":{}}`))
	if err != nil {
		t.Fatal(err)
	}
	b, err := sl.seal([]byte(`{"p":{}}`))
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(a, b) {
		t.Fatal("identical ciphertext for two writes")
	}
	for _, blob := range [][]byte{a, b} {
		pt, err := newSealer("pw").open(blob)
		if err != nil || string(pt) != `{"p":{}}` {
			t.Fatalf("open = %q, %v", pt, err)
		}
	}
}

func TestSealer_RejectsTamperedVersion(t *testing.T) {
	sl := newSealer("pw")
	blob, err := sl.seal([]byte("{}"))
	if err != nil {
		t.Fatal(err)
	}
	tampered := bytes.Replace(blob, []byte(`"v":1`), []byte(`"v":2`), 1)
	if _, err := newSealer("pw").open(tampered); err == nil {
		t.Fatal("open accepted a rewritten version")
	}
	if _, err := newSealer("other").open(blob); err != ErrWrongPassphrase {
		t.Fatalf("want ErrWrongPassphrase, got %v", err)
	}
}
