package store

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"yatra/internal/crypto"
)

const (
	// The current supported version of the encrypted file format.
	envelopeFormatVersion = 1
	saltSize              = 16
)

var (
	// ErrWrongPassphrase is returned when the passphrase is incorrect or the
	// ciphertext has been modified / corrupted.
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted credentials")
	// ErrPassphraseRequired is returned when an encrypted credentials file is
	// opened without a passphrase.
	ErrPassphraseRequired = errors.New("credentials are encrypted; passphrase required")
)

// deriveKey is swapped in tests to count derivations.
var deriveKey = scrypt.Key

// envelope is the on-disk form of an encrypted credentials file.
type envelope struct {
	V      int       `json:"v"`
	KDF    kdfParams `json:"kdf"`
	Nonce  []byte    `json:"nonce"`
	Cipher []byte    `json:"cipher"`
}

type kdfParams struct {
	Salt []byte `json:"salt"`
	N    int    `json:"n"`
	R    int    `json:"r"`
	P    int    `json:"p"`
}

func (k kdfParams) equal(o kdfParams) bool {
	return bytes.Equal(k.Salt, o.Salt) && k.N == o.N && k.R == o.R && k.P == o.P
}

// defaultKDF holds the scrypt cost for newly created files.
func defaultKDF() kdfParams { return kdfParams{N: 1 << 15, R: 8, P: 1} }

// additionalData binds the ciphertext to the file format it was written in.
func additionalData(version int) []byte {
	return []byte(fmt.Sprintf("yatra-credentials/v%d", version))
}

// sealer encrypts credential files under one passphrase. The derived key is
// reused for as long as the file keeps the same salt and cost, so a run of
// reads and writes pays for scrypt once. Nonces are random per write.
// Callers serialize access.
type sealer struct {
	passphrase []byte
	kdf        kdfParams
	key        []byte
}

func newSealer(passphrase string) *sealer {
	return &sealer{passphrase: []byte(passphrase)}
}

func (s *sealer) keyFor(kdf kdfParams) ([]byte, error) {
	if s.key != nil && s.kdf.equal(kdf) {
		return s.key, nil
	}
	key, err := deriveKey(s.passphrase, kdf.Salt, kdf.N, kdf.R, kdf.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	if s.key != nil {
		crypto.Wipe(s.key)
	}
	s.kdf, s.key = kdf, key
	return key, nil
}

// seal encrypts raw, keeping the current salt when a key is already derived.
func (s *sealer) seal(raw []byte) ([]byte, error) {
	kdf := s.kdf
	if s.key == nil {
		kdf = defaultKDF()
		kdf.Salt = make([]byte, saltSize)
		if _, err := rand.Read(kdf.Salt); err != nil {
			return nil, err
		}
	}
	key, err := s.keyFor(kdf)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return json.Marshal(envelope{
		V:      envelopeFormatVersion,
		KDF:    kdf,
		Nonce:  nonce,
		Cipher: aead.Seal(nil, nonce, raw, additionalData(envelopeFormatVersion)),
	})
}

// open decrypts an envelope written by seal.
func (s *sealer) open(b []byte) ([]byte, error) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, ErrWrongPassphrase
	}
	if env.V == 0 || len(env.Cipher) == 0 || len(env.Nonce) != chacha20poly1305.NonceSizeX {
		return nil, ErrWrongPassphrase
	}
	if env.V != envelopeFormatVersion {
		return nil, fmt.Errorf("unsupported credentials format version %d", env.V)
	}

	key, err := s.keyFor(env.KDF)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	pt, err := aead.Open(nil, env.Nonce, env.Cipher, additionalData(env.V))
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}

// isEnvelope reports whether b looks like an encrypted file.
func isEnvelope(b []byte) bool {
	var head struct {
		V      int    `json:"v"`
		Cipher []byte `json:"cipher"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return false
	}
	return head.V > 0 && len(head.Cipher) > 0
}
