package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"vocabdash/internal/client"
	"vocabdash/internal/domain"
	"vocabdash/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		token         string
		loginErr      error
		saveErr     error
		errIs       error
		errContains string
		expectSave  bool
	}{
		{
			name:       "successful login",
			email:      " reader@example.com ",
			password:   "secret",
			token:      "opaque-token",
			expectSave: true,
		},
		{
			name:  "missing password",
			email: "reader@example.com",
			errIs: ErrMissingCredentials,
		},
		{
			name:     "wrong credentials",
			email:    "reader@example.com",
			password: "wrong",
			loginErr: &client.APIError{StatusCode: 401, Detail: "Incorrect email or password"},
			errIs:    client.ErrUnauthorized,
		},
		{
			name:        "session not stored",
			email:       "reader@example.com",
			password:    "secret",
			token:       "opaque-token",
			saveErr:     errors.New("db down"),
			errContains: "db down",
			expectSave:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := new(testutil.MockAPI)
			repo := new(testutil.MockSessionRepository)

			if tt.password != "" {
				api.On("Login", mock.Anything, "reader@example.com", tt.password).Return(tt.token, tt.loginErr)
			}
			if tt.expectSave {
				repo.On("Save", mock.MatchedBy(func(s *domain.Session) bool {
					return s.UserID == 42 && s.Email == "reader@example.com" && s.AccessToken == tt.token
				})).Return(tt.saveErr)
			}

			svc := NewAuthService(api, repo, testutil.NewTestLogger())
			sess, err := svc.Login(context.Background(), 42, tt.email, tt.password)

			switch {
			case tt.errIs != nil:
				assert.ErrorIs(t, err, tt.errIs)
				assert.Nil(t, sess)
			case tt.errContains != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				assert.Nil(t, sess)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.token, sess.AccessToken)
				assert.Nil(t, sess.ExpiresAt)
			}

			api.AssertExpectations(t)
			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Signup(t *testing.T) {
	api := new(testutil.MockAPI)
	repo := new(testutil.MockSessionRepository)
	account := &domain.Account{ID: 7, Email: "new@example.com"}
	api.On("Signup", mock.Anything, "new@example.com", "secret").Return(account, nil)

	svc := NewAuthService(api, repo, testutil.NewTestLogger())
	got, err := svc.Signup(context.Background(), "new@example.com", "secret")

	require.NoError(t, err)
	assert.Equal(t, account, got)
	repo.AssertNotCalled(t, "Save", mock.Anything)
	api.AssertExpectations(t)
}

func TestAuthService_Signup_Rejected(t *testing.T) {
	api := new(testutil.MockAPI)
	api.On("Signup", mock.Anything, "taken@example.com", "secret").
		Return(nil, &client.APIError{StatusCode: 400, Detail: "Email already registered"})

	svc := NewAuthService(api, new(testutil.MockSessionRepository), testutil.NewTestLogger())
	_, err := svc.Signup(context.Background(), "taken@example.com", "secret")

	require.Error(t, err)
	assert.Equal(t, "Email already registered", client.DetailOf(err, "Failed to create account. Please try again."))
}

func TestAuthService_CurrentSession(t *testing.T) {
	tests := []struct {
		name         string
		stored       *domain.Session
		expectNil    bool
		expectLogout bool
	}{
		{
			name:   "live session",
			stored: testutil.NewTestSession(1, "token", time.Hour),
		},
		{
			name:   "session without expiry",
			stored: testutil.NewTestSession(1, "token", 0),
		},
		{
			name:         "expired session",
			stored:       testutil.NewTestSession(1, "token", -time.Minute),
			expectNil:    true,
			expectLogout: true,
		},
		{
			name:      "signed out",
			stored:    nil,
			expectNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(testutil.MockSessionRepository)
			repo.On("Get", int64(1)).Return(tt.stored, nil)
			if tt.expectLogout {
				repo.On("Delete", int64(1)).Return(nil)
			}

			svc := NewAuthService(new(testutil.MockAPI), repo, testutil.NewTestLogger())
			sess, err := svc.CurrentSession(1)

			require.NoError(t, err)
			if tt.expectNil {
				assert.Nil(t, sess)
			} else {
				assert.Equal(t, tt.stored, sess)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_CurrentSession_Error(t *testing.T) {
	repo := new(testutil.MockSessionRepository)
	repo.On("Get", int64(1)).Return(nil, errors.New("db error"))

	svc := NewAuthService(new(testutil.MockAPI), repo, testutil.NewTestLogger())
	sess, err := svc.CurrentSession(1)

	assert.Error(t, err)
	assert.Nil(t, sess)
}

func TestAuthService_Logout(t *testing.T) {
	repo := new(testutil.MockSessionRepository)
	repo.On("Delete", int64(5)).Return(nil).Once()
	repo.On("Delete", int64(6)).Return(errors.New("db error")).Once()

	svc := NewAuthService(new(testutil.MockAPI), repo, testutil.NewTestLogger())

	assert.NoError(t, svc.Logout(5))
	assert.Error(t, svc.Logout(6))
	repo.AssertExpectations(t)
}
