package middleware

import (
	"strings"

	"vocabdash/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// SessionKey is the context key holding the sender's *domain.Session
const SessionKey = "session"

const msgGenericError = "Something went wrong. Please try again later."

const msgSignInRequired = "🔒 Please sign in first.\n\nUse /login or /signup to continue."

var publicCommands = map[string]bool{
	"/start":  true,
	"/login":  true,
	"/signup": true,
	"/cancel": true,
}

var publicCallbacks = map[string]bool{
	"login":  true,
	"signup": true,
	"cancel": true,
}

// isPublic reports whether an update may run without a session
func isPublic(text, callbackData string) bool {
	if callbackData != "" {
		return publicCallbacks[strings.TrimSpace(strings.TrimPrefix(callbackData, "\f"))]
	}
	command, _, _ := strings.Cut(strings.TrimSpace(text), " ")
	// Group chats address commands as /cmd@botname
	command, _, _ = strings.Cut(command, "@")
	return publicCommands[command]
}

// AuthGate creates authentication middleware.
// Updates from signed-in users carry their session under SessionKey;
// anonymous reports whether a user is inside the login or signup prompts.
func AuthGate(authService *service.AuthService, anonymous func(userID int64) bool, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender() == nil {
				return nil
			}
			userID := c.Sender().ID

			sess, err := authService.CurrentSession(userID)
			if err != nil {
				logger.Error("Failed to load session in middleware", zap.Error(err), zap.Int64("user_id", userID))
				if c.Callback() != nil {
					return c.Respond(&tele.CallbackResponse{Text: msgGenericError, ShowAlert: true})
				}
				return c.Send(msgGenericError)
			}
			if sess != nil {
				c.Set(SessionKey, sess)
				return next(c)
			}

			data := ""
			if cb := c.Callback(); cb != nil {
				data = cb.Data
				if data == "" {
					data = cb.Unique
				}
			}
			if isPublic(c.Text(), data) || anonymous(userID) {
				return next(c)
			}

			logger.Debug("Rejected update without session", zap.Int64("user_id", userID))
			if c.Callback() != nil {
				_ = c.Respond(&tele.CallbackResponse{Text: "Please sign in first", ShowAlert: true})
				return nil
			}
			return c.Send(msgSignInRequired)
		}
	}
}
