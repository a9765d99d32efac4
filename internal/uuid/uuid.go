// Package uuid generates the time-ordered identifiers used for import
// batches.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New returns a UUIDv7 string. IDs sort by creation time, which keeps batch
// listings and index pages in import order. A v4 UUID is returned if the
// random source fails.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		return googleuuid.New().String()
	}
	return id.String()
}
