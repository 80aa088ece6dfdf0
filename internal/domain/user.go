package domain

import "time"

// Session is the signed-in state of a chat user
type Session struct {
	UserID      int64
	Email       string
	AccessToken string
	ExpiresAt   *time.Time
	CreatedAt   time.Time
}

// Expired reports whether the access token is past its expiry.
// Tokens without a known expiry never expire locally; the backend decides.
func (s *Session) Expired(now time.Time) bool {
	if s == nil || s.AccessToken == "" {
		return true
	}
	if s.ExpiresAt == nil {
		return false
	}
	return !now.Before(*s.ExpiresAt)
}

// UserState represents user's current interaction state
type UserState string

const (
	StateIdle                  UserState = "idle"
	StateWaitingLoginEmail     UserState = "waiting_login_email"
	StateWaitingLoginPassword  UserState = "waiting_login_password"
	StateWaitingSignupEmail    UserState = "waiting_signup_email"
	StateWaitingSignupPassword UserState = "waiting_signup_password"
	StateWaitingTranslation    UserState = "waiting_translation"
	StateWaitingWordSearch     UserState = "waiting_word_search"
	StateWaitingDictSearch     UserState = "waiting_dictionary_search"
)

// Anonymous reports whether the state belongs to the login or signup prompts
func (s UserState) Anonymous() bool {
	switch s {
	case StateWaitingLoginEmail, StateWaitingLoginPassword,
		StateWaitingSignupEmail, StateWaitingSignupPassword:
		return true
	}
	return false
}

// StateData holds temporary data for user's current state
type StateData struct {
	State UserState
	Email string

	Documents     []Document
	DocumentsPage int

	// Dashboard view of the selected document
	Document *Document
	Words    RequestState[[]WordStat]
	Query    TableQuery
	Page     int

	Translation *TranslationFlow

	DictionaryQuery string
	DictionaryPage  int
}
