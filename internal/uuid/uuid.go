// Package uuid generates time-ordered identifiers for database records
// and stored objects.
package uuid

import googleuuid "github.com/google/uuid"

// New returns a UUIDv7 string. UUIDv7 is time-ordered, which keeps primary
// key indexes append-mostly. Falls back to a random UUIDv4 if the system
// entropy source is unavailable.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		return googleuuid.New().String()
	}
	return id.String()
}

// IsValid checks if a string is a valid UUID.
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
