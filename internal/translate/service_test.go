// internal/translate/service_test.go
package translate

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awstranslate "github.com/aws/aws-sdk-go-v2/service/translate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"support-chat-backend/internal/common/errors"
	"support-chat-backend/internal/common/logger"
)

type mockTranslate struct {
	output    *awstranslate.TranslateTextOutput
	err       error
	calls     int
	lastInput *awstranslate.TranslateTextInput
}

func (m *mockTranslate) TranslateText(ctx context.Context, params *awstranslate.TranslateTextInput, optFns ...func(*awstranslate.Options)) (*awstranslate.TranslateTextOutput, error) {
	m.calls++
	m.lastInput = params
	return m.output, m.err
}

func TestService_Translate(t *testing.T) {
	mock := &mockTranslate{
		output: &awstranslate.TranslateTextOutput{
			TranslatedText: aws.String("¿Qué es la enfermedad de Crohn?"),
		},
	}
	service := NewService(mock, logger.NewTestLogger(t))

	translated, err := service.Translate(context.Background(), "What is Crohn's disease?", "en", "es")

	require.NoError(t, err)
	assert.Equal(t, "¿Qué es la enfermedad de Crohn?", translated)
	assert.Equal(t, "en", aws.ToString(mock.lastInput.SourceLanguageCode))
	assert.Equal(t, "es", aws.ToString(mock.lastInput.TargetLanguageCode))
}

func TestService_Translate_SameLanguageShortCircuit(t *testing.T) {
	mock := &mockTranslate{}
	service := NewService(mock, logger.NewTestLogger(t))

	translated, err := service.Translate(context.Background(), "hello", "en", "en")

	require.NoError(t, err)
	assert.Equal(t, "hello", translated)
	assert.Zero(t, mock.calls)
}

func TestService_Translate_BlankTextShortCircuit(t *testing.T) {
	mock := &mockTranslate{}
	service := NewService(mock, logger.NewTestLogger(t))

	translated, err := service.Translate(context.Background(), "   ", "en", "es")

	require.NoError(t, err)
	assert.Equal(t, "   ", translated)
	assert.Zero(t, mock.calls)
}

func TestService_Translate_UpstreamFailure(t *testing.T) {
	mock := &mockTranslate{err: stderrors.New("unsupported language pair")}
	service := NewService(mock, logger.NewTestLogger(t))

	_, err := service.Translate(context.Background(), "hello", "en", "xx")

	assert.True(t, errors.IsUpstream(err))
}
