// Package security provides identifier generation and session token utilities.
package security

import (
	"github.com/oklog/ulid/v2"
)

// GenerateULID returns a new lexicographically sortable unique identifier.
// Sessions and report records are keyed by ULIDs so that the string-matched
// name/email identity stays isolated behind a single generation point.
func GenerateULID() string {
	return ulid.Make().String()
}
