// internal/escalation/service.go
package escalation

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"support-chat-backend/internal/common/errors"
	"support-chat-backend/internal/common/logger"
	"support-chat-backend/internal/common/metrics"
	"support-chat-backend/internal/models"
)

// SESAPI abstracts the email service for mocking
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SNSAPI abstracts the notification topic for mocking
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Config holds the escalation channel settings.
type Config struct {
	SourceEmail string
	HelpDesk    string
	CCRequester bool
	TopicARN    string
}

// Service hands low-confidence interactions off to the human-staffed help
// desk: one email per submission, with an optional topic notification.
type Service struct {
	sesAPI SESAPI
	snsAPI SNSAPI
	config Config
	log    logger.Logger
}

func NewService(sesAPI SESAPI, snsAPI SNSAPI, config Config, log logger.Logger) *Service {
	return &Service{
		sesAPI: sesAPI,
		snsAPI: snsAPI,
		config: config,
		log:    log,
	}
}

// Submit validates the contact details and sends the transcript digest to
// the help desk. Exactly one attempt; on failure the caller may resubmit the
// same request, nothing is partially recorded.
func (s *Service) Submit(ctx context.Context, req *Request) (*Result, error) {
	if err := validate(req); err != nil {
		metrics.EscalationsSubmitted.WithLabelValues("rejected").Inc()
		return nil, err
	}

	requestID := newRequestID()
	fullName := fmt.Sprintf("%s %s", req.FirstName, req.LastName)

	s.log.Info("Submitting follow-up escalation", map[string]interface{}{
		"request_id":      requestID,
		"conversation_id": req.ThreadID,
		"transcript_len":  len(req.Transcript),
	})

	cc := []string{req.Email}
	if req.CCEmail != "" {
		cc = append(cc, req.CCEmail)
	}
	if !s.config.CCRequester {
		cc = cc[1:]
	}

	input := &ses.SendEmailInput{
		Source: aws.String(s.config.SourceEmail),
		Destination: &sestypes.Destination{
			ToAddresses: []string{s.config.HelpDesk},
			CcAddresses: cc,
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{
				Data:    aws.String(subjectLine(fullName, req.Question)),
				Charset: aws.String("UTF-8"),
			},
			Body: &sestypes.Body{
				Text: &sestypes.Content{
					Data:    aws.String(s.buildBody(req, fullName, requestID)),
					Charset: aws.String("UTF-8"),
				},
			},
		},
	}

	output, err := s.sesAPI.SendEmail(ctx, input)
	if err != nil {
		metrics.EscalationsSubmitted.WithLabelValues("failed").Inc()
		s.log.Error("Escalation email failed", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		return nil, errors.NewUpstreamError("ses", err)
	}

	s.notifyTopic(ctx, requestID, fullName, req.Question)
	metrics.EscalationsSubmitted.WithLabelValues("success").Inc()

	return &Result{
		Success:   true,
		RequestID: requestID,
		MessageID: aws.ToString(output.MessageId),
	}, nil
}

// notifyTopic mirrors the escalation to the operations topic when one is
// configured. Best-effort; a publish failure never fails the submission.
func (s *Service) notifyTopic(ctx context.Context, requestID, fullName, question string) {
	if s.snsAPI == nil || s.config.TopicARN == "" {
		return
	}

	_, err := s.snsAPI.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(s.config.TopicARN),
		Subject:  aws.String("Chat follow-up escalation"),
		Message:  aws.String(fmt.Sprintf("Request %s from %s: %s", requestID, fullName, question)),
	})
	if err != nil {
		s.log.Warn("Escalation topic publish failed", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
	}
}

func subjectLine(fullName, question string) string {
	// Truncate on runes so a multi-byte character is never split.
	preview := []rune(question)
	if len(preview) > 40 {
		preview = preview[:40]
	}
	return fmt.Sprintf("Follow-up Request from %s - %s...", fullName, string(preview))
}

func (s *Service) buildBody(req *Request, fullName, requestID string) string {
	phone := req.Phone
	if phone == "" {
		phone = "Not provided"
	}
	threadID := req.ThreadID
	if threadID == "" {
		threadID = "N/A"
	}

	var builder strings.Builder
	builder.WriteString("Follow-up Request Details:\n\n")
	builder.WriteString(fmt.Sprintf("User Name: %s\n", fullName))
	builder.WriteString(fmt.Sprintf("User Email: %s\n", req.Email))
	builder.WriteString(fmt.Sprintf("User Phone: %s\n", phone))
	builder.WriteString(fmt.Sprintf("Original Question: %s\n", req.Question))
	builder.WriteString(fmt.Sprintf("Conversation ID: %s\n", threadID))
	builder.WriteString(fmt.Sprintf("Timestamp: %s\n", time.Now().UTC().Format(time.RFC3339)))
	builder.WriteString(fmt.Sprintf("Request ID: %s\n", requestID))
	builder.WriteString("\n--- FULL CONVERSATION HISTORY ---\n\n")
	builder.WriteString(transcriptDigest(req.Transcript))
	builder.WriteString("\n\n--- END OF CONVERSATION ---")
	return builder.String()
}

// transcriptDigest renders the conversation as numbered human-readable lines.
func transcriptDigest(transcript []models.Message) string {
	if len(transcript) == 0 {
		return "No conversation history available"
	}

	lines := make([]string, 0, len(transcript))
	for i, msg := range transcript {
		sender := "Assistant"
		if msg.Sender == models.SenderUser {
			sender = "User"
		}
		lines = append(lines, fmt.Sprintf("%d. %s: %s", i+1, sender, msg.Text))
	}
	return strings.Join(lines, "\n\n")
}

const requestIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func newRequestID() string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = requestIDAlphabet[rand.Intn(len(requestIDAlphabet))]
	}
	return fmt.Sprintf("req_%d_%s", time.Now().UnixMilli(), suffix)
}
