package handler

import (
	"errors"

	"vocabdash/internal/client"
	"vocabdash/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	msgGenericError   = "Something went wrong. Please try again later."
	msgSessionExpired = "🔒 Your session has expired. Please sign in again."
)

// handleAPIError reports a failed action to the user.
// A rejected token signs the user out and leads to the login prompt.
func (h *Handler) handleAPIError(c tele.Context, err error, fallback string) error {
	userID := c.Sender().ID

	if errors.Is(err, client.ErrUnauthorized) {
		h.logger.Info("Backend rejected token, signing out", zap.Int64("user_id", userID))
		if logoutErr := h.authService.Logout(userID); logoutErr != nil {
			h.logger.Error("Failed to sign out", zap.Error(logoutErr), zap.Int64("user_id", userID))
		}
		h.SetState(userID, &domain.StateData{State: domain.StateWaitingLoginEmail})
		if c.Callback() != nil {
			_ = c.Respond()
		}
		return c.Send(msgSessionExpired+"\n\n📧 Send your email:", cancelMarkup())
	}

	h.logger.Warn("Backend call failed", zap.Error(err), zap.Int64("user_id", userID))
	return h.alert(c, client.DetailOf(err, fallback))
}

func isUnauthorized(err error) bool {
	return errors.Is(err, client.ErrUnauthorized)
}
