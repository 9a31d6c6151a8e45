// Package domain contains the core business entities and domain logic for the Reserve reading concierge.
package domain

// BookRecord represents a catalog book with its tag metadata.
type BookRecord struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Author         string   `json:"author"`
	Genres         []string `json:"genres"`
	Moods          []string `json:"moods"`
	Subjects       []string `json:"subjects"`
	Description    string   `json:"description,omitempty"`
	Source         string   `json:"source"`
	OpenLibraryKey string   `json:"open_library_key"`
}

// Taxonomy enumerates the tag vocabulary the catalog is indexed under.
type Taxonomy struct {
	Genres   []string `json:"genres"`
	Moods    []string `json:"moods"`
	Contexts []string `json:"contexts"`
}

// Tags is a derived bag of mood and genre tags. Duplicates are allowed;
// matching is any-overlap so repeats are harmless.
type Tags struct {
	Moods  []string `json:"moods"`
	Genres []string `json:"genres"`
}

// IsEmpty reports whether no tags were derived.
func (t Tags) IsEmpty() bool {
	return len(t.Moods) == 0 && len(t.Genres) == 0
}

// Suggestion is the externally visible recommendation unit.
type Suggestion struct {
	BookID    string `json:"bookId"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Rationale string `json:"rationale"`
	Year      int    `json:"year,omitempty"`
}

// ConciergeResult is a titled suggestion list returned to the client.
type ConciergeResult struct {
	Title         string       `json:"title"`
	Suggestions   []Suggestion `json:"suggestions"`
	DiscoveryMode bool         `json:"discoveryMode,omitempty"`
}

// CannedResponse is a static fallback entry keyed by coarse intent.
type CannedResponse struct {
	Intent      string             `json:"intent"`
	Title       string             `json:"title"`
	Suggestions []CannedSuggestion `json:"suggestions"`
}

// CannedSuggestion references an edition book by ID with a prewritten rationale.
type CannedSuggestion struct {
	BookID    string `json:"bookId"`
	Rationale string `json:"rationale"`
}
