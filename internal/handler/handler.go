package handler

import (
	"context"
	"sync"

	"vocabdash/internal/domain"
	"vocabdash/internal/middleware"
	"vocabdash/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Options are the display and upload limits of the handler
type Options struct {
	TopWords       int
	MaxUploadBytes int64
}

// Handler manages all bot interactions
type Handler struct {
	ctx                context.Context
	bot                *tele.Bot
	authService        *service.AuthService
	documentService    *service.DocumentService
	uploadService      *service.UploadService
	translationService *service.TranslationService
	opts               Options
	logger             *zap.Logger

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex

	// Serializes mutating actions per user
	callbackLocks map[int64]*sync.Mutex
	callbackMux   sync.Mutex
}

// NewHandler creates a new handler instance.
// ctx bounds every backend call made on behalf of a user.
func NewHandler(
	ctx context.Context,
	bot *tele.Bot,
	authService *service.AuthService,
	documentService *service.DocumentService,
	uploadService *service.UploadService,
	translationService *service.TranslationService,
	opts Options,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		ctx:                ctx,
		bot:                bot,
		authService:        authService,
		documentService:    documentService,
		uploadService:      uploadService,
		translationService: translationService,
		opts:               opts,
		logger:             logger,
		states:             make(map[int64]*domain.StateData),
		callbackLocks:      make(map[int64]*sync.Mutex),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/dashboard", h.handleDashboard)
	h.bot.Handle("/upload", h.handleUploadPrompt)
	h.bot.Handle("/dictionary", h.handleDictionary)
	h.bot.Handle("/translations", h.handleDictionary)
	h.bot.Handle("/login", h.handleLoginPrompt)
	h.bot.Handle("/signup", h.handleSignupPrompt)
	h.bot.Handle("/logout", h.handleLogout)
	h.bot.Handle("/cancel", h.handleCancel)

	// Text messages and files
	h.bot.Handle(tele.OnText, h.handleText)
	h.bot.Handle(tele.OnDocument, h.withUserLock(h.handleDocumentUpload))

	// Generic callback handler for all inline buttons
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// Commands returns the command menu shown by Telegram clients
func Commands() []tele.Command {
	return []tele.Command{
		{Text: "dashboard", Description: "Your documents and stats"},
		{Text: "upload", Description: "Analyze a new document"},
		{Text: "dictionary", Description: "Your saved translations"},
		{Text: "login", Description: "Sign in"},
		{Text: "signup", Description: "Create an account"},
		{Text: "logout", Description: "Sign out"},
	}
}

// GetState returns a copy of user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	copied := *state
	return &copied
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// UpdateState applies fn to user's state under the state lock
func (h *Handler) UpdateState(userID int64, fn func(state *domain.StateData)) *domain.StateData {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()

	state, exists := h.states[userID]
	if !exists {
		state = &domain.StateData{State: domain.StateIdle}
		h.states[userID] = state
	}
	fn(state)
	copied := *state
	return &copied
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}

// IsAnonymousState reports whether the user is inside the login or signup prompts
func (h *Handler) IsAnonymousState(userID int64) bool {
	return h.GetState(userID).State.Anonymous()
}

func (h *Handler) userLock(userID int64) *sync.Mutex {
	h.callbackMux.Lock()
	defer h.callbackMux.Unlock()

	lock, exists := h.callbackLocks[userID]
	if !exists {
		lock = &sync.Mutex{}
		h.callbackLocks[userID] = lock
	}
	return lock
}

// withUserLock runs next while holding the sender's lock
func (h *Handler) withUserLock(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		lock := h.userLock(c.Sender().ID)
		lock.Lock()
		defer lock.Unlock()
		return next(c)
	}
}

// show edits the message behind a callback, or sends a new one for commands and text
func (h *Handler) show(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	opts := []interface{}{}
	if markup != nil {
		opts = append(opts, markup)
	}

	if c.Callback() != nil {
		if err := c.Edit(text, opts...); err != nil {
			if handleErr := h.handleEditError(err, c, c.Sender().ID); handleErr == nil {
				return nil // Message was already modified, just acknowledged
			}
			return c.Send(text, opts...)
		}
		// The callback may already have been answered with a notice
		_ = c.Respond()
		return nil
	}
	return c.Send(text, opts...)
}

// alert answers a callback with a popup, or sends a plain message otherwise
func (h *Handler) alert(c tele.Context, text string) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
	}
	return c.Send(text)
}

// session returns the session the auth gate attached to the update
func (h *Handler) session(c tele.Context) *domain.Session {
	if s, ok := c.Get(middleware.SessionKey).(*domain.Session); ok {
		return s
	}
	s, err := h.authService.CurrentSession(c.Sender().ID)
	if err != nil {
		h.logger.Error("Failed to load session", zap.Error(err), zap.Int64("user_id", c.Sender().ID))
		return nil
	}
	return s
}

// token returns the sender's access token, or "" when signed out
func (h *Handler) token(c tele.Context) string {
	if s := h.session(c); s != nil {
		return s.AccessToken
	}
	return ""
}
