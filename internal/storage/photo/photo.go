// Package photo stores profile-photo assets. Each asset is owned by
// exactly one profile record; the profile service drives the lifecycle
// (save on create/update, remove on replace/delete).
package photo

import "context"

// Store persists photo payloads and returns the path the profile
// record should reference.
type Store interface {
	// Save writes the payload under a name derived from the record key
	// and the original filename, and returns the stored path.
	Save(ctx context.Context, key, filename string, data []byte) (string, error)
	// Remove deletes a previously stored asset. Removing a path that no
	// longer exists is not an error.
	Remove(ctx context.Context, path string) error
}
