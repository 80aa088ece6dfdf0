package service

import (
	"context"
	"errors"
	"fmt"

	"vocabdash/internal/analysis"
	"vocabdash/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrNothingToTranslate = errors.New("all words are already translated")

// Overview is the content of the dashboard stat tiles
type Overview struct {
	Documents      []domain.Document
	DictionarySize int
}

// DocumentService handles the dashboard's document operations
type DocumentService struct {
	api        API
	tracker    *RequestTracker
	batchLimit int
	logger     *zap.Logger
}

// NewDocumentService creates a new document service.
// batchLimit caps the words sent in one batch translation.
func NewDocumentService(api API, batchLimit int, logger *zap.Logger) *DocumentService {
	return &DocumentService{
		api:        api,
		tracker:    NewRequestTracker(),
		batchLimit: batchLimit,
		logger:     logger,
	}
}

// Overview fetches the document list and the dictionary size concurrently
func (s *DocumentService) Overview(ctx context.Context, token string) (*Overview, error) {
	var docs []domain.Document
	var entries []domain.DictionaryEntry

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		docs, err = s.api.ListDocuments(gctx, token)
		if err != nil {
			return fmt.Errorf("list documents: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		entries, err = s.api.UserTranslations(gctx, token)
		if err != nil {
			return fmt.Errorf("list translations: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Overview{Documents: docs, DictionarySize: len(entries)}, nil
}

// ListDocuments returns the user's documents
func (s *DocumentService) ListDocuments(ctx context.Context, token string) ([]domain.Document, error) {
	docs, err := s.api.ListDocuments(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// Words fetches a document's word statistics for a user.
// A newer call for the same user cancels this one, which then returns ErrStaleResponse.
func (s *DocumentService) Words(ctx context.Context, userID int64, token string, documentID int64) ([]domain.WordStat, error) {
	fetchCtx, id := s.tracker.Begin(ctx, userID)

	words, err := s.api.DocumentWords(fetchCtx, token, documentID)

	if !s.tracker.Finish(userID, id) {
		s.logger.Debug("Discarding stale word list",
			zap.Int64("user_id", userID),
			zap.Int64("document_id", documentID),
		)
		return nil, ErrStaleResponse
	}
	if err != nil {
		return nil, fmt.Errorf("document words: %w", err)
	}

	return words, nil
}

// DeleteDocument removes a document
func (s *DocumentService) DeleteDocument(ctx context.Context, userID int64, token string, documentID int64) error {
	s.tracker.Cancel(userID)
	if err := s.api.DeleteDocument(ctx, token, documentID); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	s.logger.Info("Document deleted",
		zap.Int64("user_id", userID),
		zap.Int64("document_id", documentID),
	)
	return nil
}

// Export downloads a report of the document
func (s *DocumentService) Export(ctx context.Context, token string, doc domain.Document, format domain.ExportFormat) (*domain.ExportFile, error) {
	file, err := s.api.ExportDocument(ctx, token, doc, format)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", format, err)
	}
	return file, nil
}

// BatchTranslate requests translations for the untranslated words, at most batchLimit of them.
// It returns the number of words sent.
func (s *DocumentService) BatchTranslate(ctx context.Context, token string, words []domain.WordStat) (int, error) {
	pending := analysis.Untranslated(words, s.batchLimit)
	if len(pending) == 0 {
		return 0, ErrNothingToTranslate
	}

	if err := s.api.BatchTranslate(ctx, token, pending); err != nil {
		return 0, fmt.Errorf("batch translate: %w", err)
	}
	return len(pending), nil
}
