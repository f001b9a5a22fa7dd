package boltdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"timeline/model"
)

func openTestSlot(t *testing.T, path string) *Slot {
	t.Helper()
	s, err := Open(path, model.DefaultSlotKey)
	if err != nil {
		t.Fatalf("Could not open slot: %s", err)
	}
	return s
}

func TestSlot(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "timeline.db")
	s := openTestSlot(t, path)

	_, err := s.Read(ctx)
	assert.ErrorIs(err, model.ErrNotFound)
	assert.NoError(s.Write(ctx, []byte(`[]`)))
	assert.NoError(s.Close())

	s = openTestSlot(t, path)
	defer s.Close()
	b, err := s.Read(ctx)
	assert.NoError(err)
	assert.Equal(`[]`, string(b))
}

func TestOpenValidation(t *testing.T) {
	_, err := Open("", model.DefaultSlotKey)
	assert.Error(t, err)
	_, err = Open(filepath.Join(t.TempDir(), "x.db"), "")
	assert.Error(t, err)
}

func TestCloseNil(t *testing.T) {
	var s *Slot
	assert.NoError(t, s.Close())
}
