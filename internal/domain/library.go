package domain

import "time"

// LibraryBook is a book saved to a client's personal library.
// Discovery-mode suggestions can be saved too, so the BookID may not
// refer to a catalog entry.
type LibraryBook struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	BookID    string    `json:"book_id"`
	Title     string    `json:"title"`
	Author    string    `json:"author,omitempty"`
	Summary   string    `json:"summary,omitempty"`
	AddedAt   time.Time `json:"added_at"`
	IsCurrent bool      `json:"is_current"`
}

// Preferences holds a client's persisted concierge settings.
type Preferences struct {
	ClientID string `json:"client_id"`
	// ExcludeBookIDs accumulates books the client has already been
	// offered or has dismissed.
	ExcludeBookIDs []string `json:"exclude_book_ids,omitempty"`
	// OriginPreference overrides origin handling: "", "required",
	// "excluded", or "balanced".
	OriginPreference string    `json:"origin_preference,omitempty"`
	Location         string    `json:"location,omitempty"`
	UpdatedAt        time.Time `json:"updated_at"`
}
