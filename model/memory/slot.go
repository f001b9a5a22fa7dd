// Package memory provides an in-process Slot, used for tests and for
// running without persistence.
package memory

import (
	"context"
	"sync"

	"timeline/model"
)

// Slot keeps the payload in memory. Setting WriteErr makes every write fail
// with that error.
type Slot struct {
	mu       sync.Mutex
	payload  []byte
	present  bool
	writes   int
	WriteErr error
}

// New returns an empty slot.
func New() *Slot {
	return &Slot{}
}

// NewWithPayload returns a slot already holding payload.
func NewWithPayload(payload string) *Slot {
	return &Slot{payload: []byte(payload), present: true}
}

func (s *Slot) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.present {
		return nil, model.ErrNotFound
	}
	out := make([]byte, len(s.payload))
	copy(out, s.payload)
	return out, nil
}

func (s *Slot) Write(ctx context.Context, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.payload = make([]byte, len(payload))
	copy(s.payload, payload)
	s.present = true
	s.writes++
	return nil
}

// Payload returns the stored value as a string.
func (s *Slot) Payload() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.payload)
}

// Writes counts successful writes.
func (s *Slot) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
