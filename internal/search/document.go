// Package search provides full-text search over the book catalog using
// Bleve, with fuzzy matching and exact genre/mood filtering.
package search

import (
	"github.com/reserveapp/reserve-server/internal/domain"
)

// Document is the indexed representation of a catalog book.
type Document struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Description string   `json:"description,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	Moods       []string `json:"moods,omitempty"`
	Subjects    []string `json:"subjects,omitempty"`
}

// ToMap converts the document to a map with lowercase field names so they
// match the index mapping. Bleve would otherwise index Go's capitalized
// struct field names.
func (d *Document) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":     d.ID,
		"title":  d.Title,
		"author": d.Author,
	}

	if d.Description != "" {
		m["description"] = d.Description
	}
	if len(d.Genres) > 0 {
		m["genres"] = d.Genres
	}
	if len(d.Moods) > 0 {
		m["moods"] = d.Moods
	}
	if len(d.Subjects) > 0 {
		m["subjects"] = d.Subjects
	}

	return m
}

// FromBook converts a catalog book to a search document.
func FromBook(book domain.BookRecord) *Document {
	return &Document{
		ID:          book.ID,
		Title:       book.Title,
		Author:      book.Author,
		Description: book.Description,
		Genres:      book.Genres,
		Moods:       book.Moods,
		Subjects:    book.Subjects,
	}
}
