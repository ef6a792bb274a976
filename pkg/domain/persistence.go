package domain

import "context"

// OverrideStore abstracts the locally persisted override document. The engine
// reads it once at merge time; writing it back is the editing surface's
// responsibility.
type OverrideStore interface {
	// Load returns the persisted override document and whether one exists.
	Load(ctx context.Context) (OverrideDocument, bool, error)
	// Save replaces the persisted override document.
	Save(ctx context.Context, doc OverrideDocument) error
	// Close releases any underlying resources.
	Close() error
}
