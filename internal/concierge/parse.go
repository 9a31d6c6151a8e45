package concierge

import (
	"encoding/json/v2"
	"strings"

	"github.com/reserveapp/reserve-server/internal/domain"
	"github.com/reserveapp/reserve-server/internal/errors"
)

// RawSuggestion is a backend-chosen candidate reference before
// reconciliation.
type RawSuggestion struct {
	BookID    string `json:"bookId"`
	Rationale string `json:"rationale"`
}

// RawResult is the expected shape of a catalog-constrained backend reply.
type RawResult struct {
	Title       string          `json:"title"`
	Suggestions []RawSuggestion `json:"suggestions"`
}

// DiscoveryBook is a book the backend invented from world knowledge.
type DiscoveryBook struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Rationale string `json:"rationale"`
	Year      int    `json:"year,omitempty"`
}

// DiscoveryResult is the expected shape of a discovery-mode reply.
type DiscoveryResult struct {
	Title string          `json:"title"`
	Books []DiscoveryBook `json:"books"`
}

// EditionResult is the expected shape of a monthly curation reply.
type EditionResult struct {
	Theme       string               `json:"theme"`
	Description string               `json:"description"`
	Books       []domain.EditionBook `json:"books"`
}

// SummaryResult is the expected shape of a book-summary reply.
type SummaryResult struct {
	Author  string `json:"author"`
	Summary string `json:"summary"`
}

// ExtractJSON locates the first balanced JSON object or array embedded in
// free text. Returns the fragment and true, or "" and false when no
// plausible opening token exists or the text ends before it balances.
// The scan counts delimiters without string awareness, which matches the
// tolerance the backend output needs in practice.
func ExtractJSON(text string) (string, bool) {
	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return "", false
	}

	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// decodeFlex parses backend text into v: strict parse first, then a
// bracket-scan recovery of an embedded fragment. Returns
// ErrUnparsableOutput when both fail.
func decodeFlex(text string, v any) error {
	if err := json.Unmarshal([]byte(text), v); err == nil {
		return nil
	}
	fragment, ok := ExtractJSON(text)
	if !ok {
		return errors.UnparsableOutput("no JSON found in backend output")
	}
	if err := json.Unmarshal([]byte(fragment), v); err != nil {
		return errors.ErrUnparsableOutput.WithCause(err)
	}
	return nil
}

// ParseSuggestions parses a catalog-constrained reply. A bare suggestion
// array embedded in prose is accepted with an empty title.
func ParseSuggestions(text string) (*RawResult, error) {
	var result RawResult
	if err := decodeFlex(text, &result); err == nil && result.Suggestions != nil {
		return &result, nil
	}

	// The backend occasionally returns the suggestion array alone.
	fragment, ok := ExtractJSON(text)
	if ok && strings.HasPrefix(fragment, "[") {
		var suggestions []RawSuggestion
		if err := json.Unmarshal([]byte(fragment), &suggestions); err == nil && len(suggestions) > 0 {
			return &RawResult{Suggestions: suggestions}, nil
		}
	}

	return nil, errors.UnparsableOutput("backend output is not a suggestion list")
}

// ParseDiscovery parses a discovery-mode reply.
func ParseDiscovery(text string) (*DiscoveryResult, error) {
	var result DiscoveryResult
	if err := decodeFlex(text, &result); err != nil {
		return nil, err
	}
	if result.Books == nil {
		return nil, errors.UnparsableOutput("backend output has no books list")
	}
	return &result, nil
}

// ParseEdition parses a monthly curation reply.
func ParseEdition(text string) (*EditionResult, error) {
	var result EditionResult
	if err := decodeFlex(text, &result); err != nil {
		return nil, err
	}
	if len(result.Books) == 0 {
		return nil, errors.UnparsableOutput("backend output has no books list")
	}
	return &result, nil
}

// ParseSummary parses a book-summary reply. When the text is not JSON at
// all the trimmed text itself serves as the summary, mirroring how the
// client treated plain-prose replies.
func ParseSummary(text string) SummaryResult {
	var result SummaryResult
	if err := decodeFlex(text, &result); err == nil && result.Summary != "" {
		return result
	}
	return SummaryResult{Summary: strings.TrimSpace(text)}
}
