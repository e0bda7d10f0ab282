// internal/translate/service.go
package translate

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awstranslate "github.com/aws/aws-sdk-go-v2/service/translate"

	"support-chat-backend/internal/common/errors"
	"support-chat-backend/internal/common/logger"
)

// TranslateAPI abstracts the translation service for mocking
type TranslateAPI interface {
	TranslateText(ctx context.Context, params *awstranslate.TranslateTextInput, optFns ...func(*awstranslate.Options)) (*awstranslate.TranslateTextOutput, error)
}

type Service struct {
	api TranslateAPI
	log logger.Logger
}

func NewService(api TranslateAPI, log logger.Logger) *Service {
	return &Service{
		api: api,
		log: log,
	}
}

// Translate converts text between languages. Same-language requests and
// blank text echo the input without a remote call.
func (s *Service) Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error) {
	if sourceLanguage == targetLanguage || strings.TrimSpace(text) == "" {
		return text, nil
	}

	output, err := s.api.TranslateText(ctx, &awstranslate.TranslateTextInput{
		Text:               aws.String(text),
		SourceLanguageCode: aws.String(sourceLanguage),
		TargetLanguageCode: aws.String(targetLanguage),
	})
	if err != nil {
		s.log.Error("Translation call failed", map[string]interface{}{
			"source": sourceLanguage,
			"target": targetLanguage,
			"error":  err.Error(),
		})
		return "", errors.NewUpstreamError("translate", err)
	}

	return aws.ToString(output.TranslatedText), nil
}
