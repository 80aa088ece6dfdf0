package service

import (
	"context"
	"errors"
	"testing"

	"vocabdash/internal/client"
	"vocabdash/internal/domain"
	"vocabdash/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTranslationService_Open(t *testing.T) {
	api := new(testutil.MockAPI)
	api.On("Suggestions", mock.Anything, "token", "people").
		Return(&domain.Suggestions{Word: "people", Suggestions: []string{"জনগণ", "মানুষ"}, IsCommon: true}, nil)

	svc := NewTranslationService(api, testutil.NewTestLogger())
	flow := svc.Open(context.Background(), "token", "people", 3)

	assert.Equal(t, domain.PhaseEditing, flow.CurrentPhase())
	assert.Equal(t, []string{"জনগণ", "মানুষ"}, flow.Suggestions)
	assert.NoError(t, flow.SuggestionErr)
	assert.Equal(t, int64(3), flow.DocumentID)
}

func TestTranslationService_Open_SuggestionFailure(t *testing.T) {
	api := new(testutil.MockAPI)
	api.On("Suggestions", mock.Anything, "token", "zeitgeist").Return(nil, errors.New("timeout"))

	svc := NewTranslationService(api, testutil.NewTestLogger())
	flow := svc.Open(context.Background(), "token", "zeitgeist", 3)

	assert.Equal(t, domain.PhaseEditing, flow.CurrentPhase())
	assert.Empty(t, flow.Suggestions)
	assert.Error(t, flow.SuggestionErr)
}

func TestTranslationService_Save(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		apiErr      error
		errIs       error
		expectCall  bool
		expectPhase domain.TranslationPhase
	}{
		{
			name:        "saved",
			input:       "  জনগণ ",
			expectCall:  true,
			expectPhase: domain.PhaseClosed,
		},
		{
			name:        "empty input",
			input:       "   ",
			errIs:       domain.ErrEmptyTranslation,
			expectPhase: domain.PhaseEditing,
		},
		{
			name:        "backend rejects",
			input:       "জনগণ",
			apiErr:      &client.APIError{StatusCode: 400, Detail: "Invalid word"},
			expectCall:  true,
			expectPhase: domain.PhaseEditing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := new(testutil.MockAPI)
			if tt.expectCall {
				if tt.apiErr != nil {
					api.On("SaveTranslation", mock.Anything, "token", "people", "জনগণ").Return(nil, tt.apiErr)
				} else {
					api.On("SaveTranslation", mock.Anything, "token", "people", "জনগণ").
						Return(&domain.DictionaryEntry{ID: 1, Word: "people", Translation: "জনগণ"}, nil)
				}
			}

			svc := NewTranslationService(api, testutil.NewTestLogger())
			flow := domain.NewTranslationFlow("people", 3)
			flow.Suggested(nil, nil)

			entry, err := svc.Save(context.Background(), "token", flow, tt.input)

			switch {
			case tt.errIs != nil:
				assert.ErrorIs(t, err, tt.errIs)
			case tt.apiErr != nil:
				require.Error(t, err)
				assert.Equal(t, "Invalid word", client.DetailOf(err, "Failed to save"))
			default:
				require.NoError(t, err)
				assert.Equal(t, "জনগণ", entry.Translation)
			}
			assert.Equal(t, tt.expectPhase, flow.CurrentPhase())
			api.AssertExpectations(t)
		})
	}
}

func TestTranslationService_Save_ClosedFlow(t *testing.T) {
	api := new(testutil.MockAPI)
	svc := NewTranslationService(api, testutil.NewTestLogger())
	flow := domain.NewTranslationFlow("people", 3)
	flow.Close()

	_, err := svc.Save(context.Background(), "token", flow, "জনগণ")

	assert.ErrorIs(t, err, domain.ErrFlowClosed)
	api.AssertNotCalled(t, "SaveTranslation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTranslationService_Dictionary(t *testing.T) {
	entries := []domain.DictionaryEntry{
		{ID: 1, Word: "government", Translation: "সরকার"},
		{ID: 2, Word: "people", Translation: "জনগণ"},
		{ID: 3, Word: "policy", Translation: "নীতি"},
	}

	tests := []struct {
		term     string
		expected []int64
	}{
		{"", []int64{1, 2, 3}},
		{"PO", []int64{3}},
		{"জনগণ", []int64{2}},
		{"zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			api := new(testutil.MockAPI)
			api.On("UserTranslations", mock.Anything, "token").Return(entries, nil)

			svc := NewTranslationService(api, testutil.NewTestLogger())
			got, total, err := svc.Dictionary(context.Background(), "token", tt.term)

			require.NoError(t, err)
			assert.Equal(t, 3, total)
			var ids []int64
			for _, e := range got {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestTranslationService_DeleteEntry(t *testing.T) {
	api := new(testutil.MockAPI)
	api.On("DeleteTranslation", mock.Anything, "token", int64(4)).
		Return(&client.APIError{StatusCode: 404, Detail: "Translation not found"})

	svc := NewTranslationService(api, testutil.NewTestLogger())
	err := svc.DeleteEntry(context.Background(), "token", 4)

	assert.ErrorIs(t, err, client.ErrNotFound)
	assert.Equal(t, "Translation not found", client.DetailOf(err, "Please try again."))
}
