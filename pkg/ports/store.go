package ports

import "context"

// SaveStore defines the interface for persisting serialized game state.
// The store is a dumb key-value surface: one slot holds one opaque JSON
// payload. Validation and merging happen above the store, so a corrupted
// payload can be rejected without touching live state.
type SaveStore interface {
	// Save persists the payload for a given slot name.
	Save(ctx context.Context, slot string, data []byte) error

	// Load retrieves the payload for a given slot name.
	// Returns domain.ErrSlotNotFound if the slot does not exist.
	Load(ctx context.Context, slot string) ([]byte, error)

	// Delete removes the slot.
	Delete(ctx context.Context, slot string) error

	// List returns the names of existing slots.
	List(ctx context.Context) ([]string, error)
}
