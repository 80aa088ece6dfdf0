package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"vocabdash/internal/client"
	"vocabdash/internal/domain"
	"vocabdash/internal/service"
	"vocabdash/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestHandler(repo *testutil.MockSessionRepository) *Handler {
	authService := service.NewAuthService(new(testutil.MockAPI), repo, testutil.NewTestLogger())
	return NewHandler(context.Background(), nil, authService, nil, nil, nil, Options{}, testutil.NewTestLogger())
}

func TestHandleAPIError(t *testing.T) {
	unauthorized := fmt.Errorf("list documents: %w", &client.APIError{
		StatusCode: http.StatusUnauthorized,
		Detail:     "Could not validate credentials",
		Method:     http.MethodGet,
		Path:       "/documents/",
	})
	conflict := &client.APIError{
		StatusCode: http.StatusBadRequest,
		Detail:     "Document already processed",
		Method:     http.MethodPost,
		Path:       "/documents/1/process",
	}

	tests := []struct {
		name         string
		err          error
		callback     bool
		expectLogout bool
		expectState  domain.UserState
		expectSent   string
		expectAlert  string
	}{
		{
			name:         "rejected token signs out and asks for login",
			err:          unauthorized,
			expectLogout: true,
			expectState:  domain.StateWaitingLoginEmail,
			expectSent:   msgSessionExpired + "\n\n📧 Send your email:",
		},
		{
			name:         "rejected token on a button press",
			err:          unauthorized,
			callback:     true,
			expectLogout: true,
			expectState:  domain.StateWaitingLoginEmail,
			expectSent:   msgSessionExpired + "\n\n📧 Send your email:",
		},
		{
			name:        "other failures show the backend detail",
			err:         conflict,
			callback:    true,
			expectState: domain.StateWaitingTranslation,
			expectAlert: "Document already processed",
		},
		{
			name:        "failures without detail use the fallback",
			err:         fmt.Errorf("client: connection refused"),
			expectState: domain.StateWaitingTranslation,
			expectSent:  "Export failed.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(testutil.MockSessionRepository)
			if tt.expectLogout {
				repo.On("Delete", int64(1)).Return(nil)
			}
			h := newAuthTestHandler(repo)
			h.SetState(1, &domain.StateData{State: domain.StateWaitingTranslation})

			c := testutil.NewTestContext(1, "")
			if tt.callback {
				c = testutil.NewTestCallbackContext(1, "\fexport_csv")
			}

			err := h.handleAPIError(c, tt.err, "Export failed.")
			require.NoError(t, err)

			assert.Equal(t, tt.expectState, h.GetState(1).State)
			assert.Equal(t, tt.expectSent, c.LastSent())
			if tt.expectAlert != "" {
				require.Len(t, c.Responses, 1)
				assert.Equal(t, tt.expectAlert, c.Responses[0].Text)
				assert.True(t, c.Responses[0].ShowAlert)
			}

			repo.AssertExpectations(t)
			if !tt.expectLogout {
				repo.AssertNotCalled(t, "Delete", int64(1))
			}
		})
	}
}
