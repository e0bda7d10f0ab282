// internal/models/message.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Sender identifies who produced a message.
type Sender string

const (
	SenderUser Sender = "USER"
	SenderBot  Sender = "BOT"
)

// MessageState tracks delivery status of a message within a turn.
type MessageState string

const (
	StateSent       MessageState = "SENT"
	StateReceived   MessageState = "RECEIVED"
	StateProcessing MessageState = "PROCESSING"
)

// Citation is an externally navigable source reference attached to an answer.
type Citation struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Message is one entry in a conversation transcript.
//
// USER messages never carry citations or a confidence score. BOT messages
// always carry a confidence score; 100 when the upstream did not report one.
type Message struct {
	ID               string       `json:"messageId"`
	Sender           Sender       `json:"sentBy"`
	Text             string       `json:"message"`
	SentAt           time.Time    `json:"timestamp"`
	State            MessageState `json:"state"`
	Citations        []Citation   `json:"citations,omitempty"`
	ConfidenceScore  int          `json:"confidenceScore,omitempty"`
	ThreadID         string       `json:"conversationId,omitempty"`
	OriginalQuestion string       `json:"originalQuestion,omitempty"`
	IsNoAnswerFound  bool         `json:"isNoAnswerFound,omitempty"`
}

// NewUserMessage builds a transcript entry for an outgoing user utterance.
func NewUserMessage(text string) Message {
	return Message{
		ID:     uuid.NewString(),
		Sender: SenderUser,
		Text:   text,
		SentAt: time.Now().UTC(),
		State:  StateSent,
	}
}

// NewBotMessage builds a transcript entry for a received answer. A zero
// confidence is normalized to 100 so BOT messages always carry a score.
func NewBotMessage(text string, confidence int) Message {
	if confidence == 0 {
		confidence = 100
	}
	return Message{
		ID:              uuid.NewString(),
		Sender:          SenderBot,
		Text:            text,
		SentAt:          time.Now().UTC(),
		State:           StateReceived,
		ConfidenceScore: confidence,
	}
}
