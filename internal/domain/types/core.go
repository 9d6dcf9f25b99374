package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Username identifies an account on the transit API.
type Username string

// String returns the string form of the username.
func (u Username) String() string { return string(u) }

// CredentialSlot names one of the locally stored credentials.
type CredentialSlot string

const (
	// SlotAccess holds the short-lived bearer token.
	SlotAccess CredentialSlot = "access"
	// SlotRefresh holds the token exchanged for a new access token.
	SlotRefresh CredentialSlot = "refresh"
)

// String returns the slot name as stored on disk.
func (s CredentialSlot) String() string { return string(s) }

// Amount is a monetary value. The API renders decimals either as JSON
// numbers or as strings such as "20.00"; both decode into Amount.
type Amount float64

// Float returns the amount as a float64.
func (a Amount) Float() float64 { return float64(a) }

// String formats the amount with two decimals.
func (a Amount) String() string { return strconv.FormatFloat(float64(a), 'f', 2, 64) }

// UnmarshalJSON accepts a number, a numeric string, or null.
func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*a = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*a = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("amount %q: %w", s, err)
		}
		*a = Amount(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}

// LatLng is a [latitude, longitude] pair as the API encodes coordinates.
type LatLng [2]float64

// Lat returns the latitude.
func (p LatLng) Lat() float64 { return p[0] }

// Lng returns the longitude.
func (p LatLng) Lng() float64 { return p[1] }
