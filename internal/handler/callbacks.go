package handler

import (
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// parseSuffix extracts the integer following prefix
func parseSuffix(data, prefix string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimPrefix(data, prefix), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	// If message is not modified, it means it was already edited by another callback
	// Just acknowledge and return nil - don't send new message
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		_ = c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	// Always acknowledge callback before sending new message
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	// Clean data from all non-printable characters
	data := cleanCallbackData(callback.Data)
	h.logger.Debug("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("id", callback.ID),
		zap.Int64("user_id", c.Sender().ID),
	)

	// Static buttons
	switch data {
	case btnDashboard.Unique:
		return h.handleDashboard(c)
	case btnUpload.Unique:
		return h.handleUploadPrompt(c)
	case btnDictionary.Unique:
		return h.handleDictionary(c)
	case btnLogin.Unique:
		return h.handleLoginPrompt(c)
	case btnSignup.Unique:
		return h.handleSignupPrompt(c)
	case btnLogout.Unique:
		return h.handleLogout(c)
	case btnCancel.Unique:
		return h.handleCancel(c)
	case btnBackToDocument.Unique:
		return h.handleDocumentBack(c)
	case cbSearch:
		return h.handleSearchPrompt(c)
	case cbSearchClear:
		return h.handleSearchClear(c)
	case cbDictSearch:
		return h.handleDictionarySearchPrompt(c)
	case cbDictSearchDrop:
		return h.handleDictionarySearchClear(c)
	case cbCloud:
		return h.handleCloud(c)
	case cbBatch:
		return h.withUserLock(h.handleBatchTranslate)(c)
	case cbTranslateClose:
		return h.handleTranslationClose(c)
	}

	// Dynamic buttons, longer prefixes first
	switch {
	case strings.HasPrefix(data, cbDeleteConfirm):
		return h.withUserLock(func(c tele.Context) error { return h.handleDeleteConfirmed(c, data) })(c)
	case strings.HasPrefix(data, cbDelete):
		return h.handleDeletePrompt(c, data)
	case strings.HasPrefix(data, cbDictDeleteOK):
		return h.withUserLock(func(c tele.Context) error { return h.handleDictionaryDeleteConfirmed(c, data) })(c)
	case strings.HasPrefix(data, cbDictDelete):
		return h.handleDictionaryDeletePrompt(c, data)
	case strings.HasPrefix(data, cbDictPage):
		return h.handleDictionaryPage(c, data)
	case strings.HasPrefix(data, cbDashboardPage):
		return h.handleDashboardPage(c, data)
	case strings.HasPrefix(data, cbDocument):
		return h.handleDocumentSelection(c, data)
	case strings.HasPrefix(data, cbTable):
		return h.handleTablePage(c, data)
	case strings.HasPrefix(data, cbSort):
		return h.handleSort(c, data)
	case strings.HasPrefix(data, cbWord):
		return h.handleWordSelection(c, data)
	case strings.HasPrefix(data, cbSuggestion):
		return h.withUserLock(func(c tele.Context) error { return h.handleSuggestionPick(c, data) })(c)
	case strings.HasPrefix(data, cbExport):
		return h.handleExport(c, data)
	}

	// If it's not handled, acknowledge it anyway
	h.logger.Warn("Unhandled callback in handleCallback", zap.String("data", data))
	return c.Respond()
}
