package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestTracker(t *testing.T) {
	tracker := NewRequestTracker()

	firstCtx, first := tracker.Begin(context.Background(), 1)
	secondCtx, second := tracker.Begin(context.Background(), 1)
	otherCtx, other := tracker.Begin(context.Background(), 2)

	assert.ErrorIs(t, firstCtx.Err(), context.Canceled)
	assert.NoError(t, secondCtx.Err())
	assert.NoError(t, otherCtx.Err())

	assert.False(t, tracker.Finish(1, first))
	assert.True(t, tracker.Finish(1, second))
	assert.ErrorIs(t, secondCtx.Err(), context.Canceled)
	assert.False(t, tracker.Finish(1, second))

	tracker.Cancel(2)
	assert.ErrorIs(t, otherCtx.Err(), context.Canceled)
	assert.False(t, tracker.Finish(2, other))
}
