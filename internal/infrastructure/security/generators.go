// Package security provides token signing and identifier generation.
package security

import (
	"github.com/oklog/ulid/v2"
)

// GenerateSnapshotID generates a new opaque snapshot identifier. ULIDs are
// collision-resistant and lexicographically sortable by creation time.
func GenerateSnapshotID() string {
	return ulid.Make().String()
}
