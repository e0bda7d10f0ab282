// internal/handlers/translation/handler.go
package translation

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"support-chat-backend/internal/common/errors"
	"support-chat-backend/internal/common/logger"
	"support-chat-backend/internal/translate"
	"support-chat-backend/pkg/utils"
)

type Request struct {
	Text           string `json:"text"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
}

type Response struct {
	TranslatedText string `json:"translatedText"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
}

// Handler serves the translation endpoint.
type Handler struct {
	service *translate.Service
	log     logger.Logger
}

func NewHandler(service *translate.Service, log logger.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/translate", h.handleTranslate)
}

func (h *Handler) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, errors.NewValidationError("invalid request body"))
		return
	}
	if req.Text == "" || req.SourceLanguage == "" || req.TargetLanguage == "" {
		utils.RespondError(w, http.StatusBadRequest, errors.NewValidationError("text, sourceLanguage and targetLanguage are required"))
		return
	}

	translated, err := h.service.Translate(r.Context(), req.Text, req.SourceLanguage, req.TargetLanguage)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, Response{
		TranslatedText: translated,
		SourceLanguage: req.SourceLanguage,
		TargetLanguage: req.TargetLanguage,
	})
}
