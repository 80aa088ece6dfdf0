package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"vocabdash/internal/domain"
)

type translationRequest struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
}

type batchRequest struct {
	Words []string `json:"words"`
}

// Suggestions returns translation suggestions for a word
func (c *Client) Suggestions(ctx context.Context, token, word string) (*domain.Suggestions, error) {
	var s domain.Suggestions
	if err := c.call(ctx, http.MethodGet, "/translations/suggestions/"+url.PathEscape(word), token, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SaveTranslation creates or replaces the user's translation of a word
func (c *Client) SaveTranslation(ctx context.Context, token, word, translation string) (*domain.DictionaryEntry, error) {
	var entry domain.DictionaryEntry
	err := c.call(ctx, http.MethodPost, "/translations/", token,
		translationRequest{Word: word, Translation: translation}, &entry)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// BatchTranslate asks the backend to translate words on the user's behalf
func (c *Client) BatchTranslate(ctx context.Context, token string, words []string) error {
	return c.call(ctx, http.MethodPost, "/translations/batch", token, batchRequest{Words: words}, nil)
}

// UserTranslations returns the user's dictionary
func (c *Client) UserTranslations(ctx context.Context, token string) ([]domain.DictionaryEntry, error) {
	entries := []domain.DictionaryEntry{}
	if err := c.call(ctx, http.MethodGet, "/translations/user", token, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteTranslation removes an entry from the user's dictionary
func (c *Client) DeleteTranslation(ctx context.Context, token string, entryID int64) error {
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("/translations/delete/%d", entryID), token, nil, nil)
}
