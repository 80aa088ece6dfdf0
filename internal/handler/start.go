package handler

import (
	"strings"

	"vocabdash/internal/client"
	"vocabdash/internal/domain"
	"vocabdash/internal/middleware"
	"vocabdash/internal/view"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const msgWelcome = "👋 Welcome to VocabDash!\n\nUpload documents, see which words matter most and build your own dictionary.\n\nSign in or create an account to start."

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	sess := h.session(c)
	if sess == nil {
		h.ResetState(userID)
		return h.show(c, msgWelcome, guestMenuMarkup())
	}

	return h.handleDashboard(c)
}

// handleDashboard shows the stat tiles and the first page of the document list
func (h *Handler) handleDashboard(c tele.Context) error {
	return h.showDashboard(c, 0)
}

// handleDashboardPage switches the page of the document list
func (h *Handler) handleDashboardPage(c tele.Context, data string) error {
	page, ok := parseSuffix(data, cbDashboardPage)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid page"})
	}
	return h.showDashboard(c, int(page))
}

// showDashboard fetches the overview and renders one page of it
func (h *Handler) showDashboard(c tele.Context, page int) error {
	userID := c.Sender().ID
	sess := h.session(c)
	if sess == nil {
		return h.show(c, msgWelcome, guestMenuMarkup())
	}

	overview, err := h.documentService.Overview(h.ctx, sess.AccessToken)
	if err != nil {
		if isUnauthorized(err) {
			return h.handleAPIError(c, err, "")
		}
		h.logger.Error("Failed to load dashboard", zap.Error(err), zap.Int64("user_id", userID))
		menu := &tele.ReplyMarkup{}
		menu.Inline(menu.Row(btnDashboard), menu.Row(btnUpload, btnDictionary))
		return h.show(c, "⚠️ Could not load your dashboard. Please try again.", menu)
	}

	pageDocs, page, pages := view.Paginate(overview.Documents, page, view.DashboardPageSize)
	h.SetState(userID, &domain.StateData{
		State:         domain.StateIdle,
		Documents:     overview.Documents,
		DocumentsPage: page,
	})

	return h.show(c,
		view.Dashboard(sess.Email, overview.Documents, overview.DictionarySize, page),
		dashboardMarkup(pageDocs, page, pages),
	)
}

// handleCancel cancels current operation and resets state
func (h *Handler) handleCancel(c tele.Context) error {
	userID := c.Sender().ID

	if flow := h.GetState(userID).Translation; flow != nil {
		flow.Close()
	}
	h.ResetState(userID)

	if h.session(c) == nil {
		return h.show(c, msgWelcome, guestMenuMarkup())
	}
	return h.show(c, "🏠 Main menu\n\nChoose an action:", mainMenuMarkup())
}

// handleLoginPrompt starts the login conversation
func (h *Handler) handleLoginPrompt(c tele.Context) error {
	h.SetState(c.Sender().ID, &domain.StateData{State: domain.StateWaitingLoginEmail})
	return h.show(c, "🔑 Sign in\n\n📧 Send your email:", cancelMarkup())
}

// handleSignupPrompt starts the signup conversation
func (h *Handler) handleSignupPrompt(c tele.Context) error {
	h.SetState(c.Sender().ID, &domain.StateData{State: domain.StateWaitingSignupEmail})
	return h.show(c, "✨ Create an account\n\n📧 Send your email:", cancelMarkup())
}

// handleLogout signs the user out
func (h *Handler) handleLogout(c tele.Context) error {
	userID := c.Sender().ID

	if err := h.authService.Logout(userID); err != nil {
		h.logger.Error("Failed to logout", zap.Error(err), zap.Int64("user_id", userID))
		return h.alert(c, msgGenericError)
	}
	h.ResetState(userID)

	return h.show(c, "👋 You are signed out.", guestMenuMarkup())
}

// handleCredentials processes the email and password prompts of login and signup
func (h *Handler) handleCredentials(c tele.Context, state *domain.StateData, text string) error {
	userID := c.Sender().ID

	switch state.State {
	case domain.StateWaitingLoginEmail, domain.StateWaitingSignupEmail:
		next := domain.StateWaitingLoginPassword
		if state.State == domain.StateWaitingSignupEmail {
			next = domain.StateWaitingSignupPassword
		}
		h.SetState(userID, &domain.StateData{State: next, Email: strings.TrimSpace(text)})
		return c.Send("🔒 Now send your password. The message will be deleted right after reading.", cancelMarkup())

	case domain.StateWaitingLoginPassword:
		h.deletePassword(c)

		sess, err := h.authService.Login(h.ctx, userID, state.Email, text)
		if err != nil {
			h.logger.Info("Login failed", zap.Int64("user_id", userID), zap.Error(err))
			h.SetState(userID, &domain.StateData{State: domain.StateWaitingLoginEmail})
			msg := client.DetailOf(err, "Failed to login. Please check your credentials.")
			return c.Send("❌ "+msg+"\n\n📧 Send your email to try again:", cancelMarkup())
		}

		h.ResetState(userID)
		c.Set(middleware.SessionKey, sess)
		return h.handleDashboard(c)

	case domain.StateWaitingSignupPassword:
		h.deletePassword(c)

		if _, err := h.authService.Signup(h.ctx, state.Email, text); err != nil {
			h.logger.Info("Signup failed", zap.Int64("user_id", userID), zap.Error(err))
			h.SetState(userID, &domain.StateData{State: domain.StateWaitingSignupEmail})
			msg := client.DetailOf(err, "Failed to create account. Please try again.")
			return c.Send("❌ "+msg+"\n\n📧 Send your email to try again:", cancelMarkup())
		}

		h.SetState(userID, &domain.StateData{State: domain.StateWaitingLoginEmail})
		return c.Send("✅ Account created! Please sign in.\n\n📧 Send your email:", cancelMarkup())
	}

	return nil
}

// deletePassword removes the message holding a password from the chat
func (h *Handler) deletePassword(c tele.Context) {
	if err := c.Delete(); err != nil {
		h.logger.Warn("Failed to delete password message", zap.Error(err), zap.Int64("user_id", c.Sender().ID))
	}
}
