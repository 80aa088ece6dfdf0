package service

import (
	"fmt"
	"testing"
	"time"

	"vocabdash/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestCleanupService_CleanupExpiredSessions(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		removed       int64
		mockError     error
		expectedError bool
	}{
		{
			name:    "successful cleanup",
			removed: 3,
		},
		{
			name:          "database error",
			mockError:     fmt.Errorf("db error"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockSessionRepository)
			mockRepo.On("CleanExpired", now).Return(tt.removed, tt.mockError)

			service := NewCleanupService(mockRepo, testutil.NewTestLogger())
			service.now = func() time.Time { return now }

			err := service.CleanupExpiredSessions()

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
