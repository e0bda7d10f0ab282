// internal/handlers/email/handler.go
package email

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	chatcore "support-chat-backend/internal/chat"
	"support-chat-backend/internal/common/errors"
	"support-chat-backend/internal/common/logger"
	"support-chat-backend/internal/escalation"
	"support-chat-backend/pkg/utils"
)

// Handler serves the escalation endpoint.
type Handler struct {
	service *escalation.Service
	manager *chatcore.Manager
	log     logger.Logger
}

func NewHandler(service *escalation.Service, manager *chatcore.Manager, log logger.Logger) *Handler {
	return &Handler{
		service: service,
		manager: manager,
		log:     log,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/email", h.handleSubmit)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, errors.NewValidationError("invalid request body"))
		return
	}

	result, err := h.service.Submit(r.Context(), &escalation.Request{
		Email:      req.Email,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		Question:   req.Question,
		ThreadID:   req.ConversationID,
		Transcript: req.ChatHistory,
		CCEmail:    req.CCEmail,
	})
	if err != nil {
		utils.RespondError(w, utils.StatusForError(err), err)
		return
	}

	// Announce the submission in the conversation itself, bypassing the
	// gateway and classifier.
	if req.SessionID != "" {
		session := h.manager.Get(r.Context(), req.SessionID, "")
		session.RecordEscalation(r.Context())
	}

	utils.RespondJSON(w, http.StatusOK, result)
}
