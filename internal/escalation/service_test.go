// internal/escalation/service_test.go
package escalation

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"support-chat-backend/internal/common/errors"
	"support-chat-backend/internal/common/logger"
	"support-chat-backend/internal/models"
)

type mockSES struct {
	output    *ses.SendEmailOutput
	err       error
	calls     int
	lastInput *ses.SendEmailInput
}

func (m *mockSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.calls++
	m.lastInput = params
	return m.output, m.err
}

type mockSNS struct {
	err       error
	calls     int
	lastInput *sns.PublishInput
}

func (m *mockSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.calls++
	m.lastInput = params
	return &sns.PublishOutput{MessageId: aws.String("sns-1")}, m.err
}

func createTestConfig() Config {
	return Config{
		SourceEmail: "bot@example.org",
		HelpDesk:    "helpdesk@example.org",
		CCRequester: true,
	}
}

func createTestRequest() *Request {
	return &Request{
		Email:     "user@example.org",
		FirstName: "Jamie",
		LastName:  "Rivera",
		Question:  "What dietary restrictions apply during a flare?",
		ThreadID:  "conv-1",
		Transcript: []models.Message{
			{Sender: models.SenderUser, Text: "What can I eat during a flare?"},
			{Sender: models.SenderBot, Text: "I apologize; I am not able to answer this question."},
		},
	}
}

func TestService_Submit_Success(t *testing.T) {
	sesMock := &mockSES{output: &ses.SendEmailOutput{MessageId: aws.String("ses-msg-1")}}
	service := NewService(sesMock, nil, createTestConfig(), logger.NewTestLogger(t))

	result, err := service.Submit(context.Background(), createTestRequest())

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "ses-msg-1", result.MessageID)
	assert.True(t, strings.HasPrefix(result.RequestID, "req_"))

	input := sesMock.lastInput
	assert.Equal(t, "bot@example.org", aws.ToString(input.Source))
	assert.Equal(t, []string{"helpdesk@example.org"}, input.Destination.ToAddresses)
	assert.Equal(t, []string{"user@example.org"}, input.Destination.CcAddresses)

	body := aws.ToString(input.Message.Body.Text.Data)
	assert.Contains(t, body, "User Name: Jamie Rivera")
	assert.Contains(t, body, "1. User: What can I eat during a flare?")
	assert.Contains(t, body, "2. Assistant: I apologize; I am not able to answer this question.")
	assert.Contains(t, body, "Conversation ID: conv-1")
	assert.Contains(t, body, "User Phone: Not provided")
}

func TestService_Submit_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "missing email", mutate: func(r *Request) { r.Email = "" }},
		{name: "malformed email", mutate: func(r *Request) { r.Email = "not-an-email" }},
		{name: "missing first name", mutate: func(r *Request) { r.FirstName = "  " }},
		{name: "missing last name", mutate: func(r *Request) { r.LastName = "" }},
		{name: "missing question", mutate: func(r *Request) { r.Question = "" }},
		{name: "malformed phone", mutate: func(r *Request) { r.Phone = "abc" }},
		{name: "malformed cc email", mutate: func(r *Request) { r.CCEmail = "broken@" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sesMock := &mockSES{output: &ses.SendEmailOutput{MessageId: aws.String("ses-msg-1")}}
			service := NewService(sesMock, nil, createTestConfig(), logger.NewTestLogger(t))

			req := createTestRequest()
			tt.mutate(req)

			result, err := service.Submit(context.Background(), req)

			assert.Nil(t, result)
			assert.True(t, errors.IsValidation(err))
			assert.Zero(t, sesMock.calls, "no email may be sent for invalid input")
		})
	}
}

func TestService_Submit_UpstreamFailureAllowsResubmit(t *testing.T) {
	sesMock := &mockSES{err: stderrors.New("ses throttled")}
	service := NewService(sesMock, nil, createTestConfig(), logger.NewTestLogger(t))

	result, err := service.Submit(context.Background(), createTestRequest())
	assert.Nil(t, result)
	assert.True(t, errors.IsUpstream(err))

	// Resubmission succeeds once the upstream recovers.
	sesMock.err = nil
	sesMock.output = &ses.SendEmailOutput{MessageId: aws.String("ses-msg-2")}

	result, err = service.Submit(context.Background(), createTestRequest())
	require.NoError(t, err)
	assert.Equal(t, "ses-msg-2", result.MessageID)
	assert.Equal(t, 2, sesMock.calls)
}

func TestService_Submit_NoCCWhenDisabled(t *testing.T) {
	sesMock := &mockSES{output: &ses.SendEmailOutput{MessageId: aws.String("ses-msg-1")}}
	config := createTestConfig()
	config.CCRequester = false
	service := NewService(sesMock, nil, config, logger.NewTestLogger(t))

	_, err := service.Submit(context.Background(), createTestRequest())

	require.NoError(t, err)
	assert.Empty(t, sesMock.lastInput.Destination.CcAddresses)
}

func TestService_Submit_TopicNotification(t *testing.T) {
	t.Run("publishes when configured", func(t *testing.T) {
		sesMock := &mockSES{output: &ses.SendEmailOutput{MessageId: aws.String("ses-msg-1")}}
		snsMock := &mockSNS{}
		config := createTestConfig()
		config.TopicARN = "arn:aws:sns:us-east-1:123456789012:escalations"
		service := NewService(sesMock, snsMock, config, logger.NewTestLogger(t))

		_, err := service.Submit(context.Background(), createTestRequest())

		require.NoError(t, err)
		assert.Equal(t, 1, snsMock.calls)
		assert.Contains(t, aws.ToString(snsMock.lastInput.Message), "Jamie Rivera")
	})

	t.Run("publish failure does not fail the submission", func(t *testing.T) {
		sesMock := &mockSES{output: &ses.SendEmailOutput{MessageId: aws.String("ses-msg-1")}}
		snsMock := &mockSNS{err: stderrors.New("topic gone")}
		config := createTestConfig()
		config.TopicARN = "arn:aws:sns:us-east-1:123456789012:escalations"
		service := NewService(sesMock, snsMock, config, logger.NewTestLogger(t))

		result, err := service.Submit(context.Background(), createTestRequest())

		require.NoError(t, err)
		assert.True(t, result.Success)
	})
}

func TestTranscriptDigest_Empty(t *testing.T) {
	assert.Equal(t, "No conversation history available", transcriptDigest(nil))
}

func TestSubjectLine_Truncation(t *testing.T) {
	short := subjectLine("Jamie Rivera", "Short question?")
	assert.Equal(t, "Follow-up Request from Jamie Rivera - Short question?...", short)

	// Multi-byte questions truncate on rune boundaries, never mid-character.
	long := subjectLine("Jamie Rivera", strings.Repeat("¿", 45))
	assert.True(t, utf8.ValidString(long))
	assert.Contains(t, long, strings.Repeat("¿", 40)+"...")
	assert.NotContains(t, long, strings.Repeat("¿", 41))
}
