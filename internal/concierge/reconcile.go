package concierge

import (
	"github.com/reserveapp/reserve-server/internal/domain"
	"github.com/reserveapp/reserve-server/internal/slug"
)

// Substitute rationales used when the reconciler synthesizes or swaps
// suggestions itself.
const (
	rationaleCalmFit     = "Chosen for a calm fit with your request."
	rationaleComplements = "A thoughtful choice that complements your request."
	rationaleResonates   = "A thoughtful choice that resonates with your request."
)

// Reconciler maps backend-chosen identifiers back onto the candidate pool
// and enforces the representation target on the final short list. It never
// returns an error; every branch terminates in a suggestion list.
type Reconciler struct {
	classifier OriginClassifier
}

// NewReconciler creates a reconciler with the given origin classifier.
func NewReconciler(classifier OriginClassifier) *Reconciler {
	return &Reconciler{classifier: classifier}
}

// Reconcile resolves raw suggestions against the candidates, applies the
// candidate-exhaustion fallback, and hard-enforces the representation
// requirement by swapping against unused candidates. An empty candidate
// pool yields an empty list.
func (r *Reconciler) Reconcile(raw []RawSuggestion, candidates []domain.BookRecord, origin OriginRequirement) []domain.Suggestion {
	byID := make(map[string]domain.BookRecord, len(candidates))
	for _, book := range candidates {
		byID[book.ID] = book
	}

	// Step 1: exact-ID mapping. The backend sometimes invents IDs that
	// were never in the prompt; those are dropped silently.
	suggestions := make([]domain.Suggestion, 0, len(raw))
	for _, item := range raw {
		book, ok := byID[item.BookID]
		if !ok {
			continue
		}
		suggestions = append(suggestions, domain.Suggestion{
			BookID:    book.ID,
			Title:     book.Title,
			Author:    book.Author,
			Rationale: item.Rationale,
		})
	}

	// Step 2: candidate-exhaustion fallback.
	if len(suggestions) == 0 {
		for _, book := range head(candidates, 3) {
			suggestions = append(suggestions, domain.Suggestion{
				BookID:    book.ID,
				Title:     book.Title,
				Author:    book.Author,
				Rationale: rationaleCalmFit,
			})
		}
		if len(suggestions) == 0 {
			return []domain.Suggestion{}
		}
	}

	// Step 3: hard representation enforcement.
	switch origin {
	case OriginNone:
		return suggestions
	case OriginRequired:
		return r.keepMatching(suggestions)
	default:
		return r.enforceBalance(suggestions, candidates)
	}
}

func (r *Reconciler) keepMatching(suggestions []domain.Suggestion) []domain.Suggestion {
	out := suggestions[:0:0]
	for _, s := range suggestions {
		if r.classifier.Matches(s.Author) {
			out = append(out, s)
		}
	}
	if out == nil {
		return []domain.Suggestion{}
	}
	return out
}

// enforceBalance pins the matching-author count of the final list to
// ceil(len/2) by swapping against unused candidates. When the pool holds
// too few alternates the shortfall is accepted rather than failed.
func (r *Reconciler) enforceBalance(suggestions []domain.Suggestion, candidates []domain.BookRecord) []domain.Suggestion {
	var matching, other []domain.Suggestion
	for _, s := range suggestions {
		if r.classifier.Matches(s.Author) {
			matching = append(matching, s)
		} else {
			other = append(other, s)
		}
	}

	total := len(suggestions)
	targetMatching := (total + 1) / 2
	targetOther := total - targetMatching

	used := make(map[string]bool, total)
	for _, s := range suggestions {
		used[s.BookID] = true
	}

	switch {
	case len(matching) > targetMatching:
		excess := len(matching) - targetMatching
		replacements := r.pickAlternates(candidates, used, excess, false, rationaleComplements)
		if len(replacements) < excess {
			return suggestions
		}
		out := make([]domain.Suggestion, 0, total)
		out = append(out, matching[:targetMatching]...)
		out = append(out, other...)
		out = append(out, replacements...)
		return out

	case len(matching) < targetMatching:
		needed := targetMatching - len(matching)
		replacements := r.pickAlternates(candidates, used, needed, true, rationaleResonates)
		if len(replacements) < needed {
			return suggestions
		}
		out := make([]domain.Suggestion, 0, total)
		out = append(out, matching...)
		out = append(out, headSuggestions(other, targetOther)...)
		out = append(out, replacements...)
		return out

	default:
		return suggestions
	}
}

// pickAlternates pulls up to n unused candidates whose origin match equals
// wantMatching, stamped with the substitute rationale.
func (r *Reconciler) pickAlternates(candidates []domain.BookRecord, used map[string]bool, n int, wantMatching bool, rationale string) []domain.Suggestion {
	var out []domain.Suggestion
	for _, book := range candidates {
		if len(out) >= n {
			break
		}
		if used[book.ID] || r.classifier.Matches(book.Author) != wantMatching {
			continue
		}
		out = append(out, domain.Suggestion{
			BookID:    book.ID,
			Title:     book.Title,
			Author:    book.Author,
			Rationale: rationale,
		})
	}
	return out
}

func headSuggestions(suggestions []domain.Suggestion, n int) []domain.Suggestion {
	if n > len(suggestions) {
		n = len(suggestions)
	}
	return suggestions[:n]
}

// ReconcileDiscovery turns invented discovery books into suggestions with
// synthesized identifiers. IDs are stable for a given title; two distinct
// books sharing a title collide, which callers accept.
func (r *Reconciler) ReconcileDiscovery(result *DiscoveryResult, origin OriginRequirement) domain.ConciergeResult {
	suggestions := make([]domain.Suggestion, 0, len(result.Books))
	for _, book := range result.Books {
		if origin == OriginRequired && !r.classifier.Matches(book.Author) {
			continue
		}
		suggestions = append(suggestions, domain.Suggestion{
			BookID:    "discovered-" + slug.Slugify(book.Title),
			Title:     book.Title,
			Author:    book.Author,
			Rationale: book.Rationale,
			Year:      book.Year,
		})
	}

	title := result.Title
	if title == "" {
		title = "Handpicked for you"
	}
	return domain.ConciergeResult{
		Title:         title,
		Suggestions:   suggestions,
		DiscoveryMode: true,
	}
}
