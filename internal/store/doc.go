// Package store provides persistence for yatra's local credentials.
//
// It contains concrete implementations of domain.CredentialStore:
//   - FileStore, a JSON file under the user's home directory (mode 0600,
//     atomic temp-file-then-rename writes), keyed by profile so sessions for
//     several API servers can coexist.
//   - An encrypted FileStore variant that seals the whole file with
//     scrypt + XChaCha20-Poly1305 when a passphrase is configured. A file that
//     cannot be decrypted is never rewritten or removed.
//   - MemoryStore, for tests and one-shot runs.
//
// All methods are concurrency-safe via internal locking.
package store
