// Package uuid generates the identifiers used as primary keys across the
// application. UUIDv7 is time-ordered, which keeps installment rows created in
// bulk roughly clustered in index order.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New generates a new UUIDv7 string. If the random source is exhausted it
// falls back to a UUIDv4 so callers never have to handle an error for ID
// generation.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		return googleuuid.New().String()
	}
	return id.String()
}

// Parse validates and canonicalizes a UUID string.
func Parse(s string) (string, error) {
	parsed, err := googleuuid.Parse(s)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

// IsValid checks if a string is a valid UUID.
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
