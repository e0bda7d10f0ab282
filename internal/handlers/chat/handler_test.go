// internal/handlers/chat/handler_test.go
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chatcore "support-chat-backend/internal/chat"
	"support-chat-backend/internal/common/errors"
	"support-chat-backend/internal/common/logger"
	"support-chat-backend/internal/common/observability"
	"support-chat-backend/internal/models"
	"support-chat-backend/internal/store"
)

type fakeSender struct {
	results []*chatcore.Result
	errs    []error
	calls   int
	lastReq chatcore.SendRequest
	// block holds the call inside the gateway; entered, when set, is closed
	// as the first call arrives so tests can wait for the in-flight state.
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeSender) Send(ctx context.Context, req chatcore.SendRequest) (*chatcore.Result, error) {
	f.lastReq = req
	if f.block != nil {
		if f.entered != nil {
			close(f.entered)
			f.entered = nil
		}
		<-f.block
	}
	i := f.calls
	f.calls++
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	var result *chatcore.Result
	if i < len(f.results) {
		result = f.results[i]
	}
	return result, err
}

func createTestRouter(t *testing.T, sender chatcore.Sender) http.Handler {
	server := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: server.Addr()})
	cache := store.NewRedisStore(client, 30*24*time.Hour)
	resolver := store.NewResolver(cache, nil, logger.NewTestLogger(t))
	manager := chatcore.NewManager(sender, resolver, nil, "en", logger.NewTestLogger(t))

	r := chi.NewRouter()
	NewHandler(manager, &observability.Observability{}, logger.NewTestLogger(t)).RegisterRoutes(r)
	return r
}

func postJSON(t *testing.T, router http.Handler, path string, payload interface{}) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleChat_TrustedAnswer(t *testing.T) {
	sender := &fakeSender{
		results: []*chatcore.Result{{
			AnswerText:       "Crohn's disease is a chronic inflammatory bowel disease.",
			ConfidenceScore:  95,
			ThreadID:         "conv-1",
			LastBotMessageID: "msg-1",
			Citations: []models.Citation{
				{Title: "CCF", URL: "https://crohnscolitisfoundation.org/a"},
			},
		}},
	}
	router := createTestRouter(t, sender)

	rec := postJSON(t, router, "/chat", Request{
		Message:   "What is Crohn's disease?",
		SessionID: "session-1",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Crohn's disease is a chronic inflammatory bowel disease.", resp.SystemMessage)
	assert.Equal(t, "conv-1", resp.ConversationID)
	assert.Equal(t, "msg-1", resp.SystemMessageID)
	assert.Equal(t, 95, resp.ConfidenceScore)
	assert.Equal(t, "session-1", resp.SessionID)
	assert.False(t, resp.IsNoAnswerFound)
	require.Len(t, resp.SourceAttributions, 1)
	assert.Equal(t, "CCF", resp.SourceAttributions[0].Title)
}

func TestHandleChat_NoAnswerFallback(t *testing.T) {
	sender := &fakeSender{
		results: []*chatcore.Result{{
			AnswerText:       "No answer is found for this question.",
			ConfidenceScore:  30,
			ThreadID:         "conv-1",
			LastBotMessageID: "msg-1",
		}},
	}
	router := createTestRouter(t, sender)

	rec := postJSON(t, router, "/chat", Request{
		Message:   "Something obscure?",
		SessionID: "session-1",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.IsNoAnswerFound)
	assert.Equal(t, 50, resp.ConfidenceScore)
	assert.Empty(t, resp.SourceAttributions)
	// Identifiers still advance on a classified fallback.
	assert.Equal(t, "conv-1", resp.ConversationID)
}

func TestHandleChat_MissingMessage(t *testing.T) {
	router := createTestRouter(t, &fakeSender{})

	rec := postJSON(t, router, "/chat", map[string]string{"sessionId": "session-1"})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.NotEmpty(t, payload["error"])
}

func TestHandleChat_GeneratesFallbackSessionID(t *testing.T) {
	sender := &fakeSender{
		results: []*chatcore.Result{{AnswerText: "An answer.", ConfidenceScore: 90}},
	}
	router := createTestRouter(t, sender)

	rec := postJSON(t, router, "/chat", Request{Message: "hello"})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.SessionID, "fallback_")
}

func TestHandleChat_UpstreamError(t *testing.T) {
	sender := &fakeSender{
		errs: []error{errors.NewUpstreamError("qbusiness", assert.AnError)},
	}
	router := createTestRouter(t, sender)

	rec := postJSON(t, router, "/chat", Request{
		Message:   "hello",
		SessionID: "session-1",
	})

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.NotEmpty(t, payload["error"])
	assert.Contains(t, payload, "stack")
}

func TestHandleChat_RejectsConcurrentTurn(t *testing.T) {
	sender := &fakeSender{
		block:   make(chan struct{}),
		entered: make(chan struct{}),
		results: []*chatcore.Result{{AnswerText: "An answer.", ConfidenceScore: 90}},
	}
	router := createTestRouter(t, sender)

	entered := sender.entered
	done := make(chan struct{})
	go func() {
		defer close(done)
		rec := postJSON(t, router, "/chat", Request{Message: "first", SessionID: "session-1"})
		assert.Equal(t, http.StatusOK, rec.Code)
	}()

	// Probe only once the first turn is observably inside the gateway call.
	<-entered
	rec := postJSON(t, router, "/chat", Request{Message: "second", SessionID: "session-1"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	close(sender.block)
	<-done
}

func TestHandleChat_ContinuationIdentifiersAccepted(t *testing.T) {
	sender := &fakeSender{
		results: []*chatcore.Result{{
			AnswerText:       "A follow-up answer.",
			ConfidenceScore:  90,
			ThreadID:         "conv-widget",
			LastBotMessageID: "msg-next",
		}},
	}
	router := createTestRouter(t, sender)

	rec := postJSON(t, router, "/chat", Request{
		Message:         "Tell me more",
		SessionID:       "session-1",
		ConversationID:  "conv-widget",
		ParentMessageID: "msg-widget",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	// The widget-supplied identifiers seeded the fresh session and reached
	// the gateway.
	assert.Equal(t, "conv-widget", sender.lastReq.ThreadID)
	assert.Equal(t, "msg-widget", sender.lastReq.LastBotMessageID)
}

func TestHandleLanguageSwitch(t *testing.T) {
	router := createTestRouter(t, &fakeSender{})

	rec := postJSON(t, router, "/chat/language", LanguageSwitchRequest{
		SessionID: "session-1",
		Language:  "es",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp LanguageSwitchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "es", resp.Language)
	assert.Equal(t, "¡Hola! Soy Gutsy. ¿Cómo puedo ayudarte hoy?", resp.WelcomeMessage)
}

func TestHandleLanguageSwitch_MissingFields(t *testing.T) {
	router := createTestRouter(t, &fakeSender{})

	rec := postJSON(t, router, "/chat/language", LanguageSwitchRequest{Language: "es"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
