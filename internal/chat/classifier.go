// internal/chat/classifier.go
package chat

import "strings"

// fallbackConfidence is the score shown alongside the fallback affordance.
// Clamping avoids rendering a "70% confident" label next to an answer the
// service itself flagged as unreliable.
const fallbackConfidence = 50

// trustThreshold is the minimum reported score for an answer to be rendered
// with citations.
const trustThreshold = 80

// noAnswerMarkers indicate the upstream explicitly failed to find an answer,
// as opposed to merely hedging. They are a subset of lowConfidenceMarkers.
var noAnswerMarkers = []string{
	"no answer is found",
	"i apologize; i am not able to answer",
	"not confident in this answer",
	"would you like to be connected to someone in our help center",
}

// lowConfidenceMarkers are hedging phrases whose presence forces the fallback
// path regardless of the reported score. Matching is case-insensitive
// substring; any single match is sufficient.
var lowConfidenceMarkers = append([]string{
	"i don't have",
	"i cannot find",
	"no information",
	"unable to provide",
	"not sure",
	"i'm sorry",
}, noAnswerMarkers...)

// Classification is the trust decision for one answer.
type Classification struct {
	Trusted             bool
	EffectiveConfidence int
	NoAnswer            bool
}

// Classify decides whether an answer is trustworthy enough to show citations.
// A zero reportedConfidence means the upstream did not report one and is
// treated as 100.
func Classify(answerText string, reportedConfidence int) Classification {
	return classifyWithThreshold(answerText, reportedConfidence, trustThreshold)
}

func classifyWithThreshold(answerText string, reportedConfidence, threshold int) Classification {
	score := reportedConfidence
	if score == 0 {
		score = 100
	}
	if threshold <= 0 {
		threshold = trustThreshold
	}

	lowered := strings.ToLower(strings.TrimSpace(answerText))

	noAnswer := containsAny(lowered, noAnswerMarkers)
	hedged := noAnswer || containsAny(lowered, lowConfidenceMarkers)

	if lowered == "" || hedged || score < threshold {
		return Classification{
			Trusted:             false,
			EffectiveConfidence: fallbackConfidence,
			NoAnswer:            noAnswer,
		}
	}

	return Classification{
		Trusted:             true,
		EffectiveConfidence: score,
	}
}

func containsAny(text string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
