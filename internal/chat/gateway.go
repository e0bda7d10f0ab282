// internal/chat/gateway.go
package chat

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/qbusiness"

	"support-chat-backend/internal/common/errors"
	"support-chat-backend/internal/common/logger"
	"support-chat-backend/internal/models"
)

// QBusinessAPI abstracts the conversational answer service for mocking
type QBusinessAPI interface {
	ChatSync(ctx context.Context, params *qbusiness.ChatSyncInput, optFns ...func(*qbusiness.Options)) (*qbusiness.ChatSyncOutput, error)
}

// SendRequest carries one user turn to the remote answer service. ThreadID
// and LastBotMessageID continue an existing conversation; both empty starts
// a new one.
type SendRequest struct {
	Utterance        string
	ThreadID         string
	LastBotMessageID string
}

// Result is a successful gateway response. Citations are unfiltered here;
// callers run FilterCitations only for trusted answers.
type Result struct {
	AnswerText       string
	ConfidenceScore  int
	Citations        []models.Citation
	ThreadID         string
	LastBotMessageID string
}

// Gateway is the stateless adapter in front of the remote answer service.
type Gateway struct {
	api           QBusinessAPI
	applicationID string
	log           logger.Logger
}

func NewGateway(api QBusinessAPI, applicationID string, log logger.Logger) *Gateway {
	return &Gateway{
		api:           api,
		applicationID: applicationID,
		log:           log,
	}
}

// Send forwards one utterance and returns the answer with threading
// identifiers. Each turn is at-most-once against the remote service; callers
// must not retry on UpstreamError.
func (g *Gateway) Send(ctx context.Context, req SendRequest) (*Result, error) {
	if strings.TrimSpace(req.Utterance) == "" {
		return nil, errors.NewValidationError("utterance must not be empty")
	}

	input := &qbusiness.ChatSyncInput{
		ApplicationId: aws.String(g.applicationID),
		UserMessage:   aws.String(req.Utterance),
	}
	if req.ThreadID != "" {
		input.ConversationId = aws.String(req.ThreadID)
	}
	if req.LastBotMessageID != "" {
		input.ParentMessageId = aws.String(req.LastBotMessageID)
	}

	output, err := g.api.ChatSync(ctx, input)
	if err != nil {
		g.log.Error("Chat service call failed", map[string]interface{}{
			"conversation_id": req.ThreadID,
			"error":           err.Error(),
		})
		if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, context.Canceled) {
			return nil, errors.NewNetworkError("qbusiness", err)
		}
		return nil, errors.NewUpstreamError("qbusiness", err)
	}

	result := &Result{
		AnswerText:       aws.ToString(output.SystemMessage),
		ThreadID:         aws.ToString(output.ConversationId),
		LastBotMessageID: aws.ToString(output.SystemMessageId),
		Citations:        make([]models.Citation, 0, len(output.SourceAttributions)),
	}
	for _, attribution := range output.SourceAttributions {
		if attribution == nil {
			continue
		}
		result.Citations = append(result.Citations, models.Citation{
			Title: aws.ToString(attribution.Title),
			URL:   aws.ToString(attribution.Url),
		})
	}

	result.ConfidenceScore = scoreAnswer(result.AnswerText, len(result.Citations))

	g.log.Debug("Chat turn completed", map[string]interface{}{
		"conversation_id": result.ThreadID,
		"confidence":      result.ConfidenceScore,
		"citations":       len(result.Citations),
	})

	return result, nil
}

// scoreAnswer derives a confidence score for answers whose upstream reports
// none. Starts at 100, penalized for missing source attributions and for
// hedging language, clamped to 0..100.
func scoreAnswer(answerText string, citationCount int) int {
	score := 100
	if citationCount == 0 {
		score -= 30
	}
	if containsAny(strings.ToLower(answerText), lowConfidenceMarkers) {
		score -= 50
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}
