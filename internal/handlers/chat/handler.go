// internal/handlers/chat/handler.go
package chat

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	chatcore "support-chat-backend/internal/chat"
	"support-chat-backend/internal/common/errors"
	"support-chat-backend/internal/common/logger"
	"support-chat-backend/internal/common/observability"
	"support-chat-backend/internal/common/validation"
	"support-chat-backend/internal/models"
	"support-chat-backend/pkg/utils"
)

// Handler serves the chat-turn endpoint.
type Handler struct {
	manager *chatcore.Manager
	obs     *observability.Observability
	log     logger.Logger
}

func NewHandler(manager *chatcore.Manager, obs *observability.Observability, log logger.Logger) *Handler {
	return &Handler{
		manager: manager,
		obs:     obs,
		log:     log,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
	r.Post("/chat/language", h.handleLanguageSwitch)
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, errors.NewValidationError("failed to read request body"))
		return
	}

	result, err := validation.ValidateJSON(body, requestSchema)
	if err != nil || !result.Valid {
		details := "invalid request body"
		if result != nil {
			details = strings.Join(result.GetErrorMessages(), "; ")
		}
		utils.RespondError(w, http.StatusBadRequest, errors.NewValidationError(details))
		return
	}

	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, errors.NewValidationError(err.Error()))
		return
	}

	// Callers that cannot persist a session id get a volatile one for this
	// turn only.
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = models.NewFallbackSessionID()
	}

	session := h.manager.Get(ctx, sessionID, req.Language)
	session.SeedThread(req.ConversationID, req.ParentMessageID)
	bot, err := session.Send(ctx, req.Message)

	switch {
	case stderrors.Is(err, chatcore.ErrTurnInFlight):
		h.obs.RecordTurnProcessed(ctx, "rejected")
		utils.RespondError(w, http.StatusConflict, errors.NewValidationError("a turn is already in flight for this session"))
		return
	case errors.IsValidation(err):
		utils.RespondError(w, http.StatusBadRequest, err)
		return
	case err != nil:
		h.obs.RecordTurnProcessed(ctx, "error")
		h.obs.RecordTurnDuration(ctx, time.Since(start), "error")
		utils.RespondError(w, http.StatusInternalServerError, err)
		return
	}

	// Fallback messages carry the original question; trusted answers never do.
	outcome := "trusted"
	if bot.OriginalQuestion != "" {
		outcome = "fallback"
	}
	h.obs.RecordTurnProcessed(ctx, outcome)
	h.obs.RecordTurnDuration(ctx, time.Since(start), outcome)

	snapshot := session.Snapshot()
	citations := bot.Citations
	if citations == nil {
		citations = []models.Citation{}
	}

	utils.RespondJSON(w, http.StatusOK, Response{
		SystemMessage:      bot.Text,
		ConversationID:     snapshot.ThreadID,
		SystemMessageID:    snapshot.LastBotMessageID,
		SourceAttributions: citations,
		ConfidenceScore:    bot.ConfidenceScore,
		SessionID:          sessionID,
		IsNoAnswerFound:    bot.IsNoAnswerFound,
	})
}

// handleLanguageSwitch clears the conversation and seeds a welcome message
// in the new language.
func (h *Handler) handleLanguageSwitch(w http.ResponseWriter, r *http.Request) {
	var req LanguageSwitchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, errors.NewValidationError("invalid request body"))
		return
	}
	if req.SessionID == "" || req.Language == "" {
		utils.RespondError(w, http.StatusBadRequest, errors.NewValidationError("sessionId and language are required"))
		return
	}

	session := h.manager.Get(r.Context(), req.SessionID, req.Language)
	welcome := session.ResetLanguage(r.Context(), req.Language)

	utils.RespondJSON(w, http.StatusOK, LanguageSwitchResponse{
		SessionID:      req.SessionID,
		Language:       req.Language,
		WelcomeMessage: welcome.Text,
	})
}
