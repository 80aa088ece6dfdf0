package handler

import (
	"context"
	"testing"

	"vocabdash/internal/domain"
	"vocabdash/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func newTestHandler() *Handler {
	return NewHandler(context.Background(), nil, nil, nil, nil, nil, Options{TopWords: 10}, testutil.NewTestLogger())
}

func TestGetStateDefaultsToIdle(t *testing.T) {
	h := newTestHandler()

	state := h.GetState(1)
	assert.Equal(t, domain.StateIdle, state.State)
	assert.False(t, h.IsAnonymousState(1))
}

func TestGetStateReturnsCopy(t *testing.T) {
	h := newTestHandler()
	h.SetState(1, &domain.StateData{State: domain.StateIdle, Page: 2})

	state := h.GetState(1)
	state.Page = 5

	assert.Equal(t, 2, h.GetState(1).Page)
}

func TestUpdateState(t *testing.T) {
	h := newTestHandler()

	updated := h.UpdateState(1, func(s *domain.StateData) {
		s.State = domain.StateWaitingLoginPassword
		s.Email = "reader@example.com"
	})

	assert.Equal(t, domain.StateWaitingLoginPassword, updated.State)
	assert.Equal(t, "reader@example.com", h.GetState(1).Email)
	assert.True(t, h.IsAnonymousState(1))

	h.ResetState(1)
	assert.Equal(t, domain.StateIdle, h.GetState(1).State)
	assert.Empty(t, h.GetState(1).Email)
}

func TestUserLockIsPerUser(t *testing.T) {
	h := newTestHandler()

	assert.Same(t, h.userLock(1), h.userLock(1))
	assert.NotSame(t, h.userLock(1), h.userLock(2))
}

func TestCommandsAreRegisteredNames(t *testing.T) {
	for _, cmd := range Commands() {
		assert.NotEmpty(t, cmd.Description, cmd.Text)
		assert.NotContains(t, cmd.Text, "/")
	}
}
