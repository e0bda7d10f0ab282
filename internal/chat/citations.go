// internal/chat/citations.go
package chat

import (
	"regexp"
	"strings"

	"support-chat-backend/internal/models"
)

// documentExtensionPattern matches document-store file extensions at the end
// of a url or title. Such links point at raw source documents rather than
// navigable pages.
var documentExtensionPattern = regexp.MustCompile(`(?i)\.(docx?|pdf|txt|rtf|pptx?)$`)

// internalStorageMarkers identify object-storage locations that must never
// leak to end users.
var internalStorageMarkers = []string{
	"s3://",
	"amazonaws.com",
	"s3.",
}

// FilterCitations keeps only externally navigable citations: http(s) links
// that do not reference internal object storage and do not end in a document
// file extension. Results are deduplicated by title, first occurrence wins,
// relative order preserved. The function is idempotent.
func FilterCitations(citations []models.Citation) []models.Citation {
	filtered := make([]models.Citation, 0, len(citations))
	seenTitles := make(map[string]struct{}, len(citations))

	for _, citation := range citations {
		if !isExternalLink(citation) {
			continue
		}
		if _, seen := seenTitles[citation.Title]; seen {
			continue
		}
		seenTitles[citation.Title] = struct{}{}
		filtered = append(filtered, citation)
	}

	return filtered
}

func isExternalLink(citation models.Citation) bool {
	url := strings.ToLower(citation.URL)

	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return false
	}
	for _, marker := range internalStorageMarkers {
		if strings.Contains(url, marker) {
			return false
		}
	}
	if documentExtensionPattern.MatchString(citation.URL) || documentExtensionPattern.MatchString(citation.Title) {
		return false
	}
	return true
}
