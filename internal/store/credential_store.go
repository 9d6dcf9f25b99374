package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"yatra/internal/domain"
)

const credentialsFile = "credentials.json"

// ErrCorrupt is returned when the credentials file decodes to nothing usable.
var ErrCorrupt = errors.New("credentials file is corrupt")

// credentialFile maps profile -> slot -> token.
type credentialFile map[string]map[domain.CredentialSlot]string

func (c credentialFile) clone() credentialFile {
	out := make(credentialFile, len(c))
	for profile, slots := range c {
		cp := make(map[domain.CredentialSlot]string, len(slots))
		for k, v := range slots {
			cp[k] = v
		}
		out[profile] = cp
	}
	return out
}

// FileStore persists credentials for one profile to disk. Several profiles
// (one per API base URL) share a single file under dir.
//
// The decoded file is kept in memory and reused until the file on disk is
// replaced, so repeated reads do not re-derive the encryption key.
type FileStore struct {
	dir     string
	profile string
	sealer  *sealer

	mu     sync.Mutex
	cached credentialFile
	stamp  os.FileInfo
}

// NewFileStore returns a plaintext FileStore rooted at dir for profile.
func NewFileStore(dir, profile string) *FileStore {
	return &FileStore{dir: dir, profile: profile}
}

// NewEncryptedFileStore returns a FileStore that seals the whole file with a
// key derived from passphrase.
func NewEncryptedFileStore(dir, profile, passphrase string) *FileStore {
	return &FileStore{dir: dir, profile: profile, sealer: newSealer(passphrase)}
}

// Path returns the credentials file location.
func (s *FileStore) Path() string { return filepath.Join(s.dir, credentialsFile) }

// Get returns the token stored in slot for the store's profile.
func (s *FileStore) Get(slot domain.CredentialSlot) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := creds[s.profile][slot]
	if !ok || v == "" {
		return "", false, nil
	}
	return v, true, nil
}

// Set stores value in slot. An empty value removes the slot.
func (s *FileStore) Set(slot domain.CredentialSlot, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.load()
	if err != nil {
		return err
	}
	slots := creds[s.profile]
	if slots == nil {
		slots = make(map[domain.CredentialSlot]string)
		creds[s.profile] = slots
	}
	if value == "" {
		delete(slots, slot)
	} else {
		slots[slot] = value
	}
	return s.save(creds)
}

// Clear removes every credential of the store's profile. Other profiles are
// left untouched; the file is deleted once no profile remains.
//
// A file this store cannot decrypt is left alone and the error returned. A
// file that does not decode at all is removed.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.load()
	switch {
	case errors.Is(err, ErrCorrupt):
		s.forget()
		return removeFile(s.Path())
	case err != nil:
		return err
	}
	delete(creds, s.profile)
	return s.save(creds)
}

// load returns a copy of the decoded file.
func (s *FileStore) load() (credentialFile, error) {
	info, err := statFile(s.Path())
	if err != nil {
		return nil, err
	}
	if info == nil {
		s.forget()
		return make(credentialFile), nil
	}
	if s.cached != nil && sameVersion(s.stamp, info) {
		return s.cached.clone(), nil
	}

	b, err := readFile(s.Path())
	if err != nil {
		return nil, err
	}
	creds := make(credentialFile)
	if b == nil {
		s.forget()
		return creds, nil
	}
	if s.sealer != nil {
		if b, err = s.sealer.open(b); err != nil {
			return nil, err
		}
	} else if isEnvelope(b) {
		return nil, ErrPassphraseRequired
	}
	if err := json.Unmarshal(b, &creds); err != nil {
		return nil, fmt.Errorf("decode %s: %w: %v", credentialsFile, ErrCorrupt, err)
	}
	s.cached, s.stamp = creds.clone(), info
	return creds, nil
}

func (s *FileStore) save(creds credentialFile) error {
	for profile, slots := range creds {
		if len(slots) == 0 {
			delete(creds, profile)
		}
	}
	if len(creds) == 0 {
		s.forget()
		return removeFile(s.Path())
	}
	b, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}
	if s.sealer != nil {
		if b, err = s.sealer.seal(b); err != nil {
			return err
		}
	}
	if err := writeFile(s.Path(), b, 0o600); err != nil {
		s.forget()
		return err
	}
	if info, err := statFile(s.Path()); err == nil && info != nil {
		s.cached, s.stamp = creds.clone(), info
	} else {
		s.forget()
	}
	return nil
}

func (s *FileStore) forget() {
	s.cached, s.stamp = nil, nil
}

// sameVersion reports whether two stats describe the same written file.
// Writes replace the file by rename, so each write has a new inode.
func sameVersion(a, b os.FileInfo) bool {
	return a != nil && b != nil && os.SameFile(a, b) &&
		a.ModTime().Equal(b.ModTime()) && a.Size() == b.Size()
}

// Compile-time assertion that FileStore implements domain.CredentialStore.
var _ domain.CredentialStore = (*FileStore)(nil)
