package model

import (
	"context"
	"errors"
)

// DefaultSlotKey names the single persisted slot holding the timeline.
const DefaultSlotKey = "x_like_posts"

var (
	// ErrNotFound is returned by a Slot that holds no value yet.
	ErrNotFound = errors.New("slot is empty")
	// ErrCorrupt marks a stored payload that cannot be read as a timeline.
	ErrCorrupt = errors.New("stored timeline is corrupt")
	// ErrEmptyContent rejects a post whose content is blank after trimming.
	ErrEmptyContent = errors.New("post content is empty")
	// ErrDuplicateID rejects a list in which two posts share an id.
	ErrDuplicateID = errors.New("duplicate post id")
	// ErrPostNotFound is returned when no post has the requested id.
	ErrPostNotFound = errors.New("post not found")
	// ErrPersist wraps slot write failures. The in-memory state is kept.
	ErrPersist = errors.New("could not persist timeline")
)

// Slot defines the persistence backend: one key holding the serialized
// timeline. Write always replaces the whole value. Read returns ErrNotFound
// when nothing was written yet and an error wrapping ErrCorrupt when the
// stored value is unusable.
type Slot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, payload []byte) error
}
