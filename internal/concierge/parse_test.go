package concierge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/reserveapp/reserve-server/internal/errors"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{
			name:   "bare object",
			text:   `{"title":"x"}`,
			want:   `{"title":"x"}`,
			wantOK: true,
		},
		{
			name:   "object wrapped in prose",
			text:   "Here you go:\n```json\n{\"title\":\"x\"}\n```\nEnjoy!",
			want:   `{"title":"x"}`,
			wantOK: true,
		},
		{
			name:   "nested braces balance",
			text:   `note {"a":{"b":[1,2]}} trailing`,
			want:   `{"a":{"b":[1,2]}}`,
			wantOK: true,
		},
		{
			name:   "array fragment",
			text:   `sure: [{"bookId":"b1"}]`,
			want:   `[{"bookId":"b1"}]`,
			wantOK: true,
		},
		{
			name:   "no opening token",
			text:   "sorry, I cannot help with that",
			wantOK: false,
		},
		{
			name:   "unbalanced fragment",
			text:   `{"title": "cut off`,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSON(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSuggestions(t *testing.T) {
	result, err := ParseSuggestions(`{"title":"For you","suggestions":[{"bookId":"b1","rationale":"r"}]}`)
	require.NoError(t, err)
	assert.Equal(t, "For you", result.Title)
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "b1", result.Suggestions[0].BookID)
}

func TestParseSuggestionsEmbeddedInProse(t *testing.T) {
	text := "Based on your mood, here are my picks:\n" +
		`{"title":"Quiet picks","suggestions":[{"bookId":"b2","rationale":"calm"}]}` +
		"\nLet me know if you want more."
	result, err := ParseSuggestions(text)
	require.NoError(t, err)
	assert.Equal(t, "Quiet picks", result.Title)
}

func TestParseSuggestionsBareArray(t *testing.T) {
	result, err := ParseSuggestions(`here: [{"bookId":"b1","rationale":"r"},{"bookId":"b2","rationale":"r2"}]`)
	require.NoError(t, err)
	assert.Empty(t, result.Title)
	assert.Len(t, result.Suggestions, 2)
}

func TestParseSuggestionsRejectsNonList(t *testing.T) {
	_, err := ParseSuggestions("I would recommend reading more poetry.")
	assert.ErrorIs(t, err, domainerrors.ErrUnparsableOutput)
}

func TestParseDiscovery(t *testing.T) {
	result, err := ParseDiscovery(`{"title":"Learning picks","books":[{"title":"T","author":"A","rationale":"r","year":2007}]}`)
	require.NoError(t, err)
	require.Len(t, result.Books, 1)
	assert.Equal(t, 2007, result.Books[0].Year)

	_, err = ParseDiscovery(`{"title":"empty"}`)
	assert.ErrorIs(t, err, domainerrors.ErrUnparsableOutput)
}

func TestParseEdition(t *testing.T) {
	result, err := ParseEdition(`{"theme":"Clear Days","description":"d","books":[{"id":"b1","title":"T","author":"A"}]}`)
	require.NoError(t, err)
	assert.Equal(t, "Clear Days", result.Theme)

	_, err = ParseEdition(`{"theme":"no books","books":[]}`)
	assert.ErrorIs(t, err, domainerrors.ErrUnparsableOutput)
}

func TestParseSummary(t *testing.T) {
	result := ParseSummary(`{"author":"A","summary":"s"}`)
	assert.Equal(t, "A", result.Author)
	assert.Equal(t, "s", result.Summary)

	// Plain prose replies become the summary verbatim.
	result = ParseSummary("  A quiet book about a pond.  ")
	assert.Empty(t, result.Author)
	assert.Equal(t, "A quiet book about a pond.", result.Summary)
}
