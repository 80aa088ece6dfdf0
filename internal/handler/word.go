package handler

import (
	"errors"
	"strings"

	"vocabdash/internal/client"
	"vocabdash/internal/domain"
	"vocabdash/internal/view"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	state := h.GetState(userID)
	if state.State.Anonymous() {
		return h.handleCredentials(c, state, text)
	}

	switch state.State {
	case domain.StateWaitingTranslation:
		return h.withUserLock(func(c tele.Context) error {
			return h.saveTranslation(c, text)
		})(c)

	case domain.StateWaitingWordSearch:
		return h.handleWordSearch(c, text)

	case domain.StateWaitingDictSearch:
		return h.handleDictionarySearch(c, text)

	default:
		return c.Send("🏠 Main menu\n\nChoose an action:", mainMenuMarkup())
	}
}

// handleWordSelection opens the translation flow for a table row
func (h *Handler) handleWordSelection(c tele.Context, data string) error {
	userID := c.Sender().ID

	state, ok := h.readyWords(c)
	if !ok {
		return nil
	}

	idx, ok := parseSuffix(data, cbWord)
	if !ok || idx < 0 || int(idx) >= len(state.Words.Data) {
		return c.Respond(&tele.CallbackResponse{Text: "This word is no longer in the table"})
	}
	word := state.Words.Data[idx].Word

	if state.Translation != nil {
		state.Translation.Close()
	}

	flow := h.translationService.Open(h.ctx, h.token(c), word, state.Document.ID)
	if isUnauthorized(flow.SuggestionErr) {
		return h.handleAPIError(c, flow.SuggestionErr, "")
	}

	h.UpdateState(userID, func(s *domain.StateData) {
		s.State = domain.StateWaitingTranslation
		s.Translation = flow
	})

	return h.show(c, view.TranslationPrompt(flow), suggestionMarkup(flow))
}

// handleSuggestionPick saves a suggested translation
func (h *Handler) handleSuggestionPick(c tele.Context, data string) error {
	flow := h.GetState(c.Sender().ID).Translation
	if flow == nil {
		return c.Respond(&tele.CallbackResponse{Text: "Pick a word first"})
	}

	idx, ok := parseSuffix(data, cbSuggestion)
	if !ok || idx < 0 || int(idx) >= len(flow.Suggestions) {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown suggestion"})
	}

	return h.saveTranslation(c, flow.Suggestions[idx])
}

// handleTranslationClose abandons the translation flow
func (h *Handler) handleTranslationClose(c tele.Context) error {
	h.UpdateState(c.Sender().ID, func(s *domain.StateData) {
		if s.Translation != nil {
			s.Translation.Close()
			s.Translation = nil
		}
		s.State = domain.StateIdle
	})
	return h.showTable(c)
}

// saveTranslation stores input for the open flow and refreshes the table
func (h *Handler) saveTranslation(c tele.Context, input string) error {
	userID := c.Sender().ID

	state := h.GetState(userID)
	flow := state.Translation
	if flow == nil {
		h.ResetState(userID)
		return c.Send("🏠 Main menu\n\nChoose an action:", mainMenuMarkup())
	}

	_, err := h.translationService.Save(h.ctx, h.token(c), flow, input)
	switch {
	case errors.Is(err, domain.ErrEmptyTranslation):
		return h.alert(c, "Translation can't be empty")
	case errors.Is(err, domain.ErrSaveInFlight):
		return h.alert(c, "⏳ Saving, please wait…")
	case errors.Is(err, domain.ErrFlowClosed):
		return h.alert(c, "This translation was closed. Pick the word again.")
	case isUnauthorized(err):
		return h.handleAPIError(c, err, "")
	case err != nil:
		h.logger.Error("Failed to save translation",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("word", flow.Word),
		)
		return h.alert(c, "❌ "+client.DetailOf(err, "Failed to save translation."))
	}

	h.UpdateState(userID, func(s *domain.StateData) {
		if s.Translation == flow {
			s.Translation = nil
			s.State = domain.StateIdle
		}
	})

	if c.Callback() != nil {
		_ = c.Respond(&tele.CallbackResponse{Text: "✅ Saved!"})
	} else {
		_ = c.Send("✅ Saved!")
	}

	if err := h.loadWords(c, flow.DocumentID); err != nil && isUnauthorized(err) {
		return h.handleAPIError(c, err, "")
	}
	return h.showTable(c)
}
