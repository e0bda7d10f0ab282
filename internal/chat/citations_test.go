// internal/chat/citations_test.go
package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"support-chat-backend/internal/models"
)

func TestFilterCitations(t *testing.T) {
	tests := []struct {
		name     string
		input    []models.Citation
		expected []models.Citation
	}{
		{
			name: "internal document link dropped, external kept",
			input: []models.Citation{
				{Title: "Doc", URL: "https://internal-store.example.com/doc.pdf"},
				{Title: "CCF", URL: "https://crohnscolitisfoundation.org/a"},
			},
			expected: []models.Citation{
				{Title: "CCF", URL: "https://crohnscolitisfoundation.org/a"},
			},
		},
		{
			name: "non-http schemes dropped",
			input: []models.Citation{
				{Title: "Bucket", URL: "s3://support-docs/guide.html"},
				{Title: "FTP", URL: "ftp://example.com/file"},
				{Title: "Site", URL: "https://example.org/page"},
			},
			expected: []models.Citation{
				{Title: "Site", URL: "https://example.org/page"},
			},
		},
		{
			name: "object storage domains dropped",
			input: []models.Citation{
				{Title: "Raw", URL: "https://support-docs.s3.amazonaws.com/guide.html"},
				{Title: "Site", URL: "https://example.org/page"},
			},
			expected: []models.Citation{
				{Title: "Site", URL: "https://example.org/page"},
			},
		},
		{
			name: "document extensions dropped case-insensitively",
			input: []models.Citation{
				{Title: "Guide", URL: "https://example.org/guide.PDF"},
				{Title: "Notes", URL: "https://example.org/notes.docx"},
				{Title: "Slides", URL: "https://example.org/deck.pptx"},
				{Title: "Page", URL: "https://example.org/page"},
			},
			expected: []models.Citation{
				{Title: "Page", URL: "https://example.org/page"},
			},
		},
		{
			name: "document extension in title dropped",
			input: []models.Citation{
				{Title: "handbook.pdf", URL: "https://example.org/handbook"},
				{Title: "Handbook", URL: "https://example.org/handbook"},
			},
			expected: []models.Citation{
				{Title: "Handbook", URL: "https://example.org/handbook"},
			},
		},
		{
			name: "duplicate titles keep first occurrence in order",
			input: []models.Citation{
				{Title: "CCF", URL: "https://crohnscolitisfoundation.org/a"},
				{Title: "Other", URL: "https://example.org/b"},
				{Title: "CCF", URL: "https://crohnscolitisfoundation.org/c"},
			},
			expected: []models.Citation{
				{Title: "CCF", URL: "https://crohnscolitisfoundation.org/a"},
				{Title: "Other", URL: "https://example.org/b"},
			},
		},
		{
			name:     "empty input",
			input:    []models.Citation{},
			expected: []models.Citation{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FilterCitations(tt.input))
		})
	}
}

func TestFilterCitations_Idempotent(t *testing.T) {
	input := []models.Citation{
		{Title: "Doc", URL: "https://internal-store.example.com/doc.pdf"},
		{Title: "CCF", URL: "https://crohnscolitisfoundation.org/a"},
		{Title: "CCF", URL: "https://crohnscolitisfoundation.org/b"},
		{Title: "Bucket", URL: "s3://support-docs/guide"},
	}

	once := FilterCitations(input)
	twice := FilterCitations(once)

	assert.Equal(t, once, twice)
}

func TestFilterCitations_OnlyHTTPSchemes(t *testing.T) {
	input := []models.Citation{
		{Title: "A", URL: "http://example.org/a"},
		{Title: "B", URL: "https://example.org/b"},
		{Title: "C", URL: "javascript:alert(1)"},
		{Title: "D", URL: ""},
	}

	for _, citation := range FilterCitations(input) {
		assert.Regexp(t, `^https?://`, citation.URL)
	}
}
