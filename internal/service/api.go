package service

import (
	"context"
	"io"

	"vocabdash/internal/domain"
)

// API is the backend surface the services depend on.
// *client.Client implements it.
type API interface {
	Login(ctx context.Context, email, password string) (string, error)
	Signup(ctx context.Context, email, password string) (*domain.Account, error)

	ListDocuments(ctx context.Context, token string) ([]domain.Document, error)
	UploadDocument(ctx context.Context, token, filename, contentType string, r io.Reader) (*domain.Document, error)
	ProcessDocument(ctx context.Context, token string, documentID int64) error
	DocumentWords(ctx context.Context, token string, documentID int64) ([]domain.WordStat, error)
	DeleteDocument(ctx context.Context, token string, documentID int64) error
	ExportDocument(ctx context.Context, token string, doc domain.Document, format domain.ExportFormat) (*domain.ExportFile, error)

	Suggestions(ctx context.Context, token, word string) (*domain.Suggestions, error)
	SaveTranslation(ctx context.Context, token, word, translation string) (*domain.DictionaryEntry, error)
	BatchTranslate(ctx context.Context, token string, words []string) error
	UserTranslations(ctx context.Context, token string) ([]domain.DictionaryEntry, error)
	DeleteTranslation(ctx context.Context, token string, entryID int64) error
}
