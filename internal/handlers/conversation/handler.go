// internal/handlers/conversation/handler.go
package conversation

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	chatcore "support-chat-backend/internal/chat"
	"support-chat-backend/internal/common/errors"
	"support-chat-backend/internal/common/logger"
	"support-chat-backend/internal/store"
	"support-chat-backend/pkg/utils"
)

// Handler serves conversation retrieval and teardown.
type Handler struct {
	stores  *store.Resolver
	manager *chatcore.Manager
	log     logger.Logger
}

func NewHandler(stores *store.Resolver, manager *chatcore.Manager, log logger.Logger) *Handler {
	return &Handler{
		stores:  stores,
		manager: manager,
		log:     log,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/conversation", h.handleGet)
	r.Delete("/conversation", h.handleDelete)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, errors.NewValidationError("sessionId query parameter is required"))
		return
	}

	thread := h.stores.Load(r.Context(), sessionID)
	if thread == nil {
		utils.RespondJSON(w, http.StatusOK, Response{Conversation: nil})
		return
	}

	utils.RespondJSON(w, http.StatusOK, Response{
		Conversation: &Record{
			ConversationID:      thread.ThreadID,
			LastSystemMessageID: thread.LastBotMessageID,
			ChatHistory:         thread.History(),
			LastUpdated:         thread.LastUpdated.UnixMilli(),
		},
	})
}

// handleDelete tears the session down on explicit widget close.
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, errors.NewValidationError("sessionId query parameter is required"))
		return
	}

	h.manager.Close(r.Context(), sessionID)
	utils.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
