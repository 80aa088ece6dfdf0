package service

import (
	"context"
	"fmt"

	"vocabdash/internal/analysis"
	"vocabdash/internal/domain"

	"go.uber.org/zap"
)

// TranslationService handles the translation flow and the user's dictionary
type TranslationService struct {
	api    API
	logger *zap.Logger
}

// NewTranslationService creates a new translation service
func NewTranslationService(api API, logger *zap.Logger) *TranslationService {
	return &TranslationService{api: api, logger: logger}
}

// Open starts a translation flow for word and fetches suggestions.
// A failed fetch leaves the suggestions empty and is kept on the flow as SuggestionErr.
func (s *TranslationService) Open(ctx context.Context, token, word string, documentID int64) *domain.TranslationFlow {
	flow := domain.NewTranslationFlow(word, documentID)

	suggestions, err := s.api.Suggestions(ctx, token, word)
	if err != nil {
		s.logger.Warn("Failed to fetch suggestions", zap.String("word", word), zap.Error(err))
		flow.Suggested(nil, fmt.Errorf("suggestions: %w", err))
		return flow
	}

	flow.Suggested(suggestions.Suggestions, nil)
	return flow
}

// Save stores the translation typed into the flow.
// On success the flow closes; on failure it returns to editing.
func (s *TranslationService) Save(ctx context.Context, token string, flow *domain.TranslationFlow, input string) (*domain.DictionaryEntry, error) {
	translation, err := flow.BeginSave(input)
	if err != nil {
		return nil, err
	}

	entry, err := s.api.SaveTranslation(ctx, token, flow.Word, translation)
	flow.FinishSave(err)
	if err != nil {
		return nil, fmt.Errorf("save translation: %w", err)
	}

	s.logger.Info("Translation saved",
		zap.String("word", flow.Word),
		zap.Int64("document_id", flow.DocumentID),
	)
	return entry, nil
}

// Dictionary returns the user's entries matching term, and the unfiltered total
func (s *TranslationService) Dictionary(ctx context.Context, token, term string) ([]domain.DictionaryEntry, int, error) {
	entries, err := s.api.UserTranslations(ctx, token)
	if err != nil {
		return nil, 0, fmt.Errorf("list translations: %w", err)
	}
	return analysis.FilterDictionary(entries, term), len(entries), nil
}

// DeleteEntry removes an entry from the dictionary
func (s *TranslationService) DeleteEntry(ctx context.Context, token string, entryID int64) error {
	if err := s.api.DeleteTranslation(ctx, token, entryID); err != nil {
		return fmt.Errorf("delete translation: %w", err)
	}
	return nil
}
