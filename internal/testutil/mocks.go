package testutil

import (
	"context"
	"io"
	"time"

	"vocabdash/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockSessionRepository is a mock for SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Save(session *domain.Session) error {
	args := m.Called(session)
	return args.Error(0)
}

func (m *MockSessionRepository) Get(userID int64) (*domain.Session, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) Delete(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockSessionRepository) CleanExpired(before time.Time) (int64, error) {
	args := m.Called(before)
	return args.Get(0).(int64), args.Error(1)
}

// MockAPI is a mock for the backend client
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockAPI) Signup(ctx context.Context, email, password string) (*domain.Account, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAPI) ListDocuments(ctx context.Context, token string) ([]domain.Document, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockAPI) UploadDocument(ctx context.Context, token, filename, contentType string, r io.Reader) (*domain.Document, error) {
	args := m.Called(ctx, token, filename, contentType, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockAPI) ProcessDocument(ctx context.Context, token string, documentID int64) error {
	args := m.Called(ctx, token, documentID)
	return args.Error(0)
}

func (m *MockAPI) DocumentWords(ctx context.Context, token string, documentID int64) ([]domain.WordStat, error) {
	args := m.Called(ctx, token, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WordStat), args.Error(1)
}

func (m *MockAPI) DeleteDocument(ctx context.Context, token string, documentID int64) error {
	args := m.Called(ctx, token, documentID)
	return args.Error(0)
}

func (m *MockAPI) ExportDocument(ctx context.Context, token string, doc domain.Document, format domain.ExportFormat) (*domain.ExportFile, error) {
	args := m.Called(ctx, token, doc, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExportFile), args.Error(1)
}

func (m *MockAPI) Suggestions(ctx context.Context, token, word string) (*domain.Suggestions, error) {
	args := m.Called(ctx, token, word)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Suggestions), args.Error(1)
}

func (m *MockAPI) SaveTranslation(ctx context.Context, token, word, translation string) (*domain.DictionaryEntry, error) {
	args := m.Called(ctx, token, word, translation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DictionaryEntry), args.Error(1)
}

func (m *MockAPI) BatchTranslate(ctx context.Context, token string, words []string) error {
	args := m.Called(ctx, token, words)
	return args.Error(0)
}

func (m *MockAPI) UserTranslations(ctx context.Context, token string) ([]domain.DictionaryEntry, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DictionaryEntry), args.Error(1)
}

func (m *MockAPI) DeleteTranslation(ctx context.Context, token string, entryID int64) error {
	args := m.Called(ctx, token, entryID)
	return args.Error(0)
}
