package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"timeline/model"
)

func TestSlot(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "timeline.sqlite")
	s, err := Open(path, model.DefaultSlotKey)
	if err != nil {
		t.Fatalf("Could not open slot: %s", err)
	}

	_, err = s.Read(ctx)
	assert.ErrorIs(err, model.ErrNotFound)
	assert.NoError(s.Write(ctx, []byte(`[]`)))
	assert.NoError(s.Write(ctx, []byte(`[{"id":2}]`)))
	assert.NoError(s.Close())

	s, err = Open(path, model.DefaultSlotKey)
	if err != nil {
		t.Fatalf("Could not reopen slot: %s", err)
	}
	defer s.Close()
	b, err := s.Read(ctx)
	assert.NoError(err)
	assert.Equal(`[{"id":2}]`, string(b))

	other, err := Open(path, "other")
	if err != nil {
		t.Fatalf("Could not open second slot: %s", err)
	}
	defer other.Close()
	_, err = other.Read(ctx)
	assert.ErrorIs(err, model.ErrNotFound)
}
