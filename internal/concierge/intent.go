package concierge

import (
	"strings"

	"github.com/reserveapp/reserve-server/internal/domain"
)

// Intent is a coarse classification of a request used only to pick a
// canned fallback response.
type Intent string

// Intents.
const (
	IntentTravel   Intent = "travel"
	IntentLight    Intent = "light"
	IntentHeavy    Intent = "heavy"
	IntentNextBook Intent = "next_book"
)

// ClassifyIntent buckets a message by keyword. First match wins, in
// travel, light, heavy order; everything else is the default next-book
// intent.
func ClassifyIntent(message string) Intent {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "travel") || strings.Contains(lower, "commute"):
		return IntentTravel
	case strings.Contains(lower, "light") || strings.Contains(lower, "gentle"):
		return IntentLight
	case strings.Contains(lower, "heavy") || strings.Contains(lower, "dense"):
		return IntentHeavy
	default:
		return IntentNextBook
	}
}

// Fallback builds a deterministic suggestion list when the backend is
// unavailable or its output is unusable. The canned response for the
// message's intent is resolved against the edition set; canned entries
// whose book is missing from the edition are dropped so every returned ID
// resolves.
func Fallback(message string, responses []domain.CannedResponse, edition domain.Edition) domain.ConciergeResult {
	if len(responses) == 0 {
		return domain.ConciergeResult{Title: "A few quiet suggestions", Suggestions: []domain.Suggestion{}}
	}

	intent := ClassifyIntent(message)
	response := responses[0]
	for _, candidate := range responses {
		if candidate.Intent == string(intent) {
			response = candidate
			break
		}
	}

	suggestions := make([]domain.Suggestion, 0, len(response.Suggestions))
	for _, canned := range response.Suggestions {
		book := edition.BookByID(canned.BookID)
		if book == nil {
			continue
		}
		suggestions = append(suggestions, domain.Suggestion{
			BookID:    book.ID,
			Title:     book.Title,
			Author:    book.Author,
			Rationale: canned.Rationale,
		})
	}

	return domain.ConciergeResult{
		Title:       response.Title,
		Suggestions: suggestions,
	}
}
