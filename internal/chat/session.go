// internal/chat/session.go
package chat

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"
	"time"

	"support-chat-backend/internal/common/errors"
	"support-chat-backend/internal/common/logger"
	"support-chat-backend/internal/common/metrics"
	"support-chat-backend/internal/models"
	"support-chat-backend/internal/store"
)

// State is the per-turn lifecycle of a session.
type State string

const (
	StateIdle             State = "IDLE"
	StateAwaitingResponse State = "AWAITING_RESPONSE"
)

// ErrTurnInFlight is returned when a send arrives while a previous turn for
// the same session has not completed. Turns are serialized per session.
var ErrTurnInFlight = stderrors.New("a turn is already in flight for this session")

// Sender is the gateway surface the session drives.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (*Result, error)
}

// Translator converts text between languages. Implementations short-circuit
// when source and target match.
type Translator interface {
	Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error)
}

// Session orchestrates one conversation: it owns the message list and thread
// identifiers, drives the request/classify/persist cycle per user turn, and
// guarantees a single in-flight turn.
type Session struct {
	mu         sync.Mutex
	state      State
	thread     *models.ConversationThread
	language   string
	threshold  int
	gateway    Sender
	stores     *store.Resolver
	translator Translator
	log        logger.Logger
}

// Send runs one full user turn: append the user message, call the gateway,
// classify the answer, append the resulting bot message and persist the
// snapshot. The returned error is non-nil only for rejected sends and
// gateway failures; in the failure case the localized error bubble has
// already been appended and persisted, and the session is back in IDLE.
func (s *Session) Send(ctx context.Context, text string) (models.Message, error) {
	// Blank input blocks only this submission; nothing is appended or
	// persisted and the session stays in IDLE.
	if strings.TrimSpace(text) == "" {
		return models.Message{}, errors.NewValidationError("message must not be empty")
	}

	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return models.Message{}, ErrTurnInFlight
	}
	s.state = StateAwaitingResponse
	s.thread.Append(models.NewUserMessage(text))
	threadID := s.thread.ThreadID
	lastBotMessageID := s.thread.LastBotMessageID
	language := s.language
	s.mu.Unlock()

	start := time.Now()
	utterance := s.toEnglish(ctx, text, language)
	result, err := s.gateway.Send(ctx, SendRequest{
		Utterance:        utterance,
		ThreadID:         threadID,
		LastBotMessageID: lastBotMessageID,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.state = StateIdle }()

	if err != nil {
		bot := models.NewBotMessage(stringsFor(language).Error, 0)
		s.thread.Append(bot)
		s.stores.Save(ctx, s.thread)
		s.recordTurn(metrics.OutcomeError, start)
		metrics.ChatTurnsFailed.WithLabelValues("UPSTREAM_ERROR").Inc()
		return bot, err
	}

	// Thread identifiers from a successful call always overwrite the
	// session's current values, trusted or not.
	s.thread.ThreadID = result.ThreadID
	s.thread.LastBotMessageID = result.LastBotMessageID

	classification := classifyWithThreshold(result.AnswerText, result.ConfidenceScore, s.threshold)

	var bot models.Message
	outcome := metrics.OutcomeTrusted
	if classification.Trusted {
		answer := s.fromEnglish(ctx, result.AnswerText, language)
		bot = models.NewBotMessage(answer, classification.EffectiveConfidence)
		bot.Citations = FilterCitations(result.Citations)
		bot.ThreadID = result.ThreadID
	} else {
		outcome = metrics.OutcomeFallback
		bot = models.NewBotMessage(stringsFor(language).LowConfidence, classification.EffectiveConfidence)
		bot.Citations = []models.Citation{}
		bot.ThreadID = result.ThreadID
		bot.OriginalQuestion = text
		bot.IsNoAnswerFound = classification.NoAnswer
	}

	s.thread.Append(bot)
	s.stores.Save(ctx, s.thread)
	s.recordTurn(outcome, start)
	return bot, nil
}

// SeedThread adopts threading identifiers supplied by the caller, but only
// when the session has none of its own. A session that already holds a thread
// keeps it; the server-side state is authoritative.
func (s *Session) SeedThread(threadID, lastBotMessageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.thread.ThreadID != "" || threadID == "" {
		return
	}
	s.thread.ThreadID = threadID
	s.thread.LastBotMessageID = lastBotMessageID
}

// ResetLanguage clears the transcript and thread identifiers and seeds a
// welcome message in the new language. The upstream service cannot switch
// languages mid-thread.
func (s *Session) ResetLanguage(ctx context.Context, language string) models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.language = language
	s.thread.Reset()
	welcome := models.NewBotMessage(stringsFor(language).Welcome, 0)
	s.thread.Append(welcome)
	s.stores.Save(ctx, s.thread)

	s.log.Info("Conversation reset on language switch", map[string]interface{}{
		"session_id": s.thread.SessionID,
		"language":   language,
	})
	return welcome
}

// RecordEscalation appends the synthetic submission-confirmed bot message,
// bypassing the gateway and classifier.
func (s *Session) RecordEscalation(ctx context.Context) models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	confirmation := models.NewBotMessage(stringsFor(s.language).EmailSuccess, 0)
	s.thread.Append(confirmation)
	s.stores.Save(ctx, s.thread)
	return confirmation
}

// Snapshot returns a copy of the current conversation state.
func (s *Session) Snapshot() models.ConversationThread {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := *s.thread
	snapshot.Messages = append([]models.Message(nil), s.thread.Messages...)
	return snapshot
}

// Language returns the session's active language.
func (s *Session) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

func (s *Session) toEnglish(ctx context.Context, text, language string) string {
	return s.translate(ctx, text, language, "en")
}

func (s *Session) fromEnglish(ctx context.Context, text, language string) string {
	return s.translate(ctx, text, "en", language)
}

// translate is best-effort; on failure the original text is used.
func (s *Session) translate(ctx context.Context, text, source, target string) string {
	if s.translator == nil || source == target {
		return text
	}
	translated, err := s.translator.Translate(ctx, text, source, target)
	if err != nil {
		s.log.Warn("Translation failed, using original text", map[string]interface{}{
			"source": source,
			"target": target,
			"error":  err.Error(),
		})
		return text
	}
	return translated
}

func (s *Session) recordTurn(outcome string, start time.Time) {
	metrics.ChatTurnsCompleted.WithLabelValues(outcome).Inc()
	metrics.ChatTurnDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
}

// Manager hands out Sessions by session id, restoring state from the
// conversation stores on first access. Sessions are cached so the in-flight
// guard holds across requests.
type Manager struct {
	mu              sync.Mutex
	sessions        map[string]*Session
	gateway         Sender
	stores          *store.Resolver
	translator      Translator
	defaultLanguage string
	threshold       int
	log             logger.Logger
}

func NewManager(gateway Sender, stores *store.Resolver, translator Translator, defaultLanguage string, log logger.Logger) *Manager {
	if defaultLanguage == "" {
		defaultLanguage = "en"
	}
	return &Manager{
		sessions:        make(map[string]*Session),
		gateway:         gateway,
		stores:          stores,
		translator:      translator,
		defaultLanguage: defaultLanguage,
		threshold:       trustThreshold,
		log:             log,
	}
}

// SetConfidenceThreshold overrides the default trust threshold for new
// sessions.
func (m *Manager) SetConfidenceThreshold(threshold int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if threshold > 0 {
		m.threshold = threshold
	}
}

// Get returns the session for an id, restoring it from the stores or
// initializing a fresh one with a welcome message. An empty language keeps
// the default.
func (m *Manager) Get(ctx context.Context, sessionID, language string) *Session {
	if language == "" {
		language = m.defaultLanguage
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[sessionID]; ok {
		return session
	}

	thread := m.stores.Load(ctx, sessionID)
	fresh := thread == nil
	if fresh {
		thread = models.NewThread(sessionID)
		thread.Append(models.NewBotMessage(stringsFor(language).Welcome, 0))
	}

	session := &Session{
		state:      StateIdle,
		thread:     thread,
		language:   language,
		threshold:  m.threshold,
		gateway:    m.gateway,
		stores:     m.stores,
		translator: m.translator,
		log:        m.log,
	}
	m.sessions[sessionID] = session

	if fresh {
		m.stores.Save(ctx, thread)
	}
	return session
}

// Close drops the session from the manager and clears its persisted state.
// Used on explicit widget close.
func (m *Manager) Close(ctx context.Context, sessionID string) {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()

	m.stores.Clear(ctx, sessionID)
}
