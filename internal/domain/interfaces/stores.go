package interfaces

import domaintypes "yatra/internal/domain/types"

// CredentialStore persists the access and refresh tokens between runs.
type CredentialStore interface {
	// Get returns the value in slot and whether it was present.
	Get(slot domaintypes.CredentialSlot) (string, bool, error)
	// Set stores value in slot, replacing any previous value.
	Set(slot domaintypes.CredentialSlot, value string) error
	// Clear removes every stored credential.
	Clear() error
}
