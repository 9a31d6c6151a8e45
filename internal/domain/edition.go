package domain

import "time"

// MaxEditionBooks caps the active monthly edition.
const MaxEditionBooks = 7

// EditionBook is a curated, higher-trust entry with narrative fields.
type EditionBook struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Author            string   `json:"author"`
	WhyThisBook       string   `json:"why_this_book"`
	BestContext       string   `json:"best_context"`
	EstimatedSessions int      `json:"estimated_sessions"`
	Genres            []string `json:"genres,omitempty"`
}

// Edition is the hand-curated monthly selection.
type Edition struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	StartDate     string        `json:"start_date"`
	EndDate       string        `json:"end_date"`
	EditorialNote EditorialNote `json:"editorial_note"`
	Books         []EditionBook `json:"books"`
}

// EditorialNote introduces the edition.
type EditorialNote struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Clamp returns the edition with its book list capped at MaxEditionBooks.
func (e Edition) Clamp() Edition {
	if len(e.Books) <= MaxEditionBooks {
		return e
	}
	clamped := e
	clamped.Books = e.Books[:MaxEditionBooks]
	return clamped
}

// BookByID finds an edition book by ID, or nil.
func (e Edition) BookByID(id string) *EditionBook {
	for i := range e.Books {
		if e.Books[i].ID == id {
			return &e.Books[i]
		}
	}
	return nil
}

// ActiveAt reports whether the edition window covers the given date.
func (e Edition) ActiveAt(t time.Time) bool {
	start, err := time.Parse("2006-01-02", e.StartDate)
	if err != nil {
		return false
	}
	end, err := time.Parse("2006-01-02", e.EndDate)
	if err != nil {
		return false
	}
	end = end.Add(24*time.Hour - time.Second)
	return !t.Before(start) && !t.After(end)
}

// AIEdition is a generated 20-book monthly listing, cached by month key.
type AIEdition struct {
	Theme       string        `json:"theme"`
	Description string        `json:"description"`
	Books       []EditionBook `json:"books"`
	Month       string        `json:"month"`
}

// MonthKey formats a time as the YYYY-MM cache key.
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}
