package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"timeline/model"
)

func TestSlot(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	s := New()
	_, err := s.Read(ctx)
	assert.ErrorIs(err, model.ErrNotFound)

	assert.NoError(s.Write(ctx, []byte(`[]`)))
	b, err := s.Read(ctx)
	assert.NoError(err)
	assert.Equal(`[]`, string(b))
	assert.Equal(1, s.Writes())

	s.WriteErr = errors.New("full")
	assert.Error(s.Write(ctx, []byte(`[1]`)))
	assert.Equal(`[]`, s.Payload())
}

func TestSlotCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewWithPayload(`[]`)
	_, err := s.Read(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.Write(ctx, nil), context.Canceled)
}
