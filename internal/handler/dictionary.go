package handler

import (
	"fmt"

	"vocabdash/internal/client"
	"vocabdash/internal/domain"
	"vocabdash/internal/view"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleDictionary shows the first page of the user's dictionary
func (h *Handler) handleDictionary(c tele.Context) error {
	h.UpdateState(c.Sender().ID, func(s *domain.StateData) {
		s.State = domain.StateIdle
		s.DictionaryPage = 0
	})
	return h.showDictionary(c)
}

// handleDictionaryPage switches the dictionary page
func (h *Handler) handleDictionaryPage(c tele.Context, data string) error {
	page, ok := parseSuffix(data, cbDictPage)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid page"})
	}
	h.UpdateState(c.Sender().ID, func(s *domain.StateData) { s.DictionaryPage = int(page) })
	return h.showDictionary(c)
}

// handleDictionarySearchPrompt asks for a dictionary search term
func (h *Handler) handleDictionarySearchPrompt(c tele.Context) error {
	h.UpdateState(c.Sender().ID, func(s *domain.StateData) { s.State = domain.StateWaitingDictSearch })

	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(btnDictionary))
	return h.show(c, "🔍 Send a word or a translation to look for:", menu)
}

// handleDictionarySearch applies a typed dictionary search term
func (h *Handler) handleDictionarySearch(c tele.Context, term string) error {
	h.UpdateState(c.Sender().ID, func(s *domain.StateData) {
		s.State = domain.StateIdle
		s.DictionaryQuery = term
		s.DictionaryPage = 0
	})
	return h.showDictionary(c)
}

// handleDictionarySearchClear drops the dictionary search term
func (h *Handler) handleDictionarySearchClear(c tele.Context) error {
	h.UpdateState(c.Sender().ID, func(s *domain.StateData) {
		s.DictionaryQuery = ""
		s.DictionaryPage = 0
	})
	return h.showDictionary(c)
}

// showDictionary fetches the dictionary and renders the current page
func (h *Handler) showDictionary(c tele.Context) error {
	userID := c.Sender().ID
	state := h.GetState(userID)

	entries, total, err := h.translationService.Dictionary(h.ctx, h.token(c), state.DictionaryQuery)
	if err != nil {
		if isUnauthorized(err) {
			return h.handleAPIError(c, err, "")
		}
		h.logger.Error("Failed to load dictionary", zap.Error(err), zap.Int64("user_id", userID))
		menu := &tele.ReplyMarkup{}
		menu.Inline(menu.Row(btnDictionary), menu.Row(btnDashboard))
		return h.show(c, "⚠️ Could not load your dictionary. Please try again.", menu)
	}

	pageEntries, page, pages := view.Paginate(entries, state.DictionaryPage, view.TablePageSize)
	h.UpdateState(userID, func(s *domain.StateData) { s.DictionaryPage = page })

	text := view.Dictionary(pageEntries, total, state.DictionaryQuery)
	if pages > 1 {
		text += fmt.Sprintf("\n\nPage %d/%d", page+1, pages)
	}
	return h.show(c, text, dictionaryMarkup(pageEntries, state.DictionaryQuery, page, pages))
}

// handleDictionaryDeletePrompt asks to confirm removing an entry
func (h *Handler) handleDictionaryDeletePrompt(c tele.Context, data string) error {
	id, ok := parseSuffix(data, cbDictDelete)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown entry"})
	}

	return h.show(c,
		"🗑 Are you sure you want to remove this word from your dictionary?",
		confirmMarkup(fmt.Sprintf("%s%d", cbDictDeleteOK, id), btnDictionary),
	)
}

// handleDictionaryDeleteConfirmed removes an entry and shows the dictionary again
func (h *Handler) handleDictionaryDeleteConfirmed(c tele.Context, data string) error {
	id, ok := parseSuffix(data, cbDictDeleteOK)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown entry"})
	}

	if err := h.translationService.DeleteEntry(h.ctx, h.token(c), id); err != nil {
		if isUnauthorized(err) {
			return h.handleAPIError(c, err, "")
		}
		h.logger.Error("Failed to delete dictionary entry", zap.Error(err), zap.Int64("entry_id", id))
		return h.alert(c, "Failed to delete: "+client.DetailOf(err, "Please try again."))
	}

	_ = c.Respond(&tele.CallbackResponse{Text: "Removed"})
	return h.showDictionary(c)
}
