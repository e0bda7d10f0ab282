// internal/models/conversation.go
package models

import (
	"fmt"
	"math/rand"
	"time"
)

// ConversationThread is the full per-session conversation snapshot: the
// ordered message list plus the upstream threading identifiers.
//
// ThreadID correlates turns into one logical upstream conversation;
// LastBotMessageID is the trailing-message identifier handed back on the next
// call to keep conversational context.
type ConversationThread struct {
	SessionID        string    `json:"sessionId"`
	ThreadID         string    `json:"conversationId,omitempty"`
	LastBotMessageID string    `json:"lastSystemMessageId,omitempty"`
	Messages         []Message `json:"messageList"`
	LastUpdated      time.Time `json:"lastUpdated"`
}

// NewThread returns an empty conversation for a session.
func NewThread(sessionID string) *ConversationThread {
	return &ConversationThread{
		SessionID:   sessionID,
		Messages:    []Message{},
		LastUpdated: time.Now().UTC(),
	}
}

// Append adds a message and bumps LastUpdated.
func (t *ConversationThread) Append(msg Message) {
	t.Messages = append(t.Messages, msg)
	t.LastUpdated = time.Now().UTC()
}

// Reset clears the transcript and both threading identifiers. Used on
// language switch and widget close; the upstream service cannot switch
// languages mid-thread without inconsistent answers.
func (t *ConversationThread) Reset() {
	t.Messages = []Message{}
	t.ThreadID = ""
	t.LastBotMessageID = ""
	t.LastUpdated = time.Now().UTC()
}

// HistoryEntry is the wire/storage format for one transcript line, matching
// the durable store's chatHistory encoding.
type HistoryEntry struct {
	Type            Sender `json:"type"`
	Message         string `json:"message"`
	Timestamp       int64  `json:"timestamp"`
	ConversationID  string `json:"conversationId,omitempty"`
	SystemMessageID string `json:"systemMessageId,omitempty"`
}

// History flattens the transcript into wire entries.
func (t *ConversationThread) History() []HistoryEntry {
	entries := make([]HistoryEntry, 0, len(t.Messages))
	for _, msg := range t.Messages {
		entry := HistoryEntry{
			Type:      msg.Sender,
			Message:   msg.Text,
			Timestamp: msg.SentAt.UnixMilli(),
		}
		if msg.Sender == SenderBot {
			entry.ConversationID = msg.ThreadID
			entry.SystemMessageID = msg.ID
		}
		entries = append(entries, entry)
	}
	return entries
}

// ThreadFromHistory rebuilds a conversation from wire entries. Restored BOT
// messages default to full confidence; the score only gates citation display
// on the turn that produced it.
func ThreadFromHistory(sessionID, threadID, lastBotMessageID string, entries []HistoryEntry, lastUpdated time.Time) *ConversationThread {
	thread := &ConversationThread{
		SessionID:        sessionID,
		ThreadID:         threadID,
		LastBotMessageID: lastBotMessageID,
		Messages:         make([]Message, 0, len(entries)),
		LastUpdated:      lastUpdated,
	}

	for i, entry := range entries {
		ts := time.UnixMilli(entry.Timestamp).UTC()
		if entry.Type == SenderUser {
			thread.Messages = append(thread.Messages, Message{
				ID:     fmt.Sprintf("user_%d_%d", entry.Timestamp, i),
				Sender: SenderUser,
				Text:   entry.Message,
				SentAt: ts,
				State:  StateSent,
			})
			continue
		}

		id := entry.SystemMessageID
		if id == "" {
			id = fmt.Sprintf("bot_%d_%d", entry.Timestamp, i)
		}
		thread.Messages = append(thread.Messages, Message{
			ID:              id,
			Sender:          SenderBot,
			Text:            entry.Message,
			SentAt:          ts,
			State:           StateReceived,
			ThreadID:        entry.ConversationID,
			Citations:       []Citation{},
			ConfidenceScore: 100,
		})
	}

	return thread
}

const sessionIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = sessionIDAlphabet[rand.Intn(len(sessionIDAlphabet))]
	}
	return string(b)
}

// NewSessionID generates a browser-session identifier. Stable storage of the
// id is the caller's concern; the format matches the widget's cookie value.
func NewSessionID() string {
	return fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), randomSuffix(9))
}

// NewFallbackSessionID generates a volatile id for callers that cannot
// persist one. Valid for a single page load only.
func NewFallbackSessionID() string {
	return fmt.Sprintf("fallback_%d_%s", time.Now().UnixMilli(), randomSuffix(9))
}
