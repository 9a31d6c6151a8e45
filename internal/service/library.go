package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/reserveapp/reserve-server/internal/domain"
	domainerrors "github.com/reserveapp/reserve-server/internal/errors"
	"github.com/reserveapp/reserve-server/internal/id"
	"github.com/reserveapp/reserve-server/internal/logger"
	"github.com/reserveapp/reserve-server/internal/store"
	"github.com/reserveapp/reserve-server/internal/validation"
)

// AddLibraryBookInput carries the fields for saving a book to a library.
type AddLibraryBookInput struct {
	BookID  string `json:"book_id" validate:"omitempty,max=100"`
	Title   string `json:"title" validate:"required,max=500"`
	Author  string `json:"author" validate:"omitempty,max=500"`
	Summary string `json:"summary" validate:"omitempty,max=2000"`
}

// LibraryService manages per-client saved books and preferences.
type LibraryService struct {
	store    *store.Store
	validate *validation.Validator
	logger   *logger.Logger
}

// NewLibraryService creates the library service.
func NewLibraryService(st *store.Store, log *logger.Logger) *LibraryService {
	return &LibraryService{
		store:    st,
		validate: validation.New(),
		logger:   log,
	}
}

// AddBook saves a book to the client's library. Discovery suggestions are
// allowed, so the book ID is not checked against the catalog.
func (s *LibraryService) AddBook(ctx context.Context, clientID string, input AddLibraryBookInput) (*domain.LibraryBook, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if clientID == "" {
		return nil, domainerrors.Validation("client id cannot be empty")
	}
	if err := s.validate.Validate(input); err != nil {
		return nil, err
	}
	// "required" accepts whitespace, trim before checking.
	if strings.TrimSpace(input.Title) == "" {
		return nil, domainerrors.Validation("title cannot be empty")
	}

	entryID, err := id.Generate("lib")
	if err != nil {
		return nil, fmt.Errorf("generate entry ID: %w", err)
	}

	entry := &domain.LibraryBook{
		ID:       entryID,
		ClientID: clientID,
		BookID:   input.BookID,
		Title:    strings.TrimSpace(input.Title),
		Author:   strings.TrimSpace(input.Author),
		Summary:  input.Summary,
		AddedAt:  time.Now(),
	}

	if err := s.store.Library.Create(ctx, store.LibraryKey(clientID, entryID), entry); err != nil {
		return nil, fmt.Errorf("save library book: %w", err)
	}

	s.logger.Info("book saved to library", "client_id", clientID, "entry_id", entryID, "title", entry.Title)
	return entry, nil
}

// ListBooks returns the client's library, newest first.
func (s *LibraryService) ListBooks(ctx context.Context, clientID string) ([]*domain.LibraryBook, error) {
	if clientID == "" {
		return nil, domainerrors.Validation("client id cannot be empty")
	}

	books := []*domain.LibraryBook{}
	for _, entry := range s.store.Library.ListPrefix(ctx, clientID+":") {
		books = append(books, entry)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(books, func(i, j int) bool {
		return books[i].AddedAt.After(books[j].AddedAt)
	})
	return books, nil
}

// RemoveBook deletes a library entry.
func (s *LibraryService) RemoveBook(ctx context.Context, clientID, entryID string) error {
	if clientID == "" || entryID == "" {
		return domainerrors.Validation("client id and entry id are required")
	}

	// Get first so a missing entry surfaces as not found rather than a
	// silent no-op delete.
	if _, err := s.store.Library.Get(ctx, store.LibraryKey(clientID, entryID)); err != nil {
		return err
	}
	if err := s.store.Library.Delete(ctx, store.LibraryKey(clientID, entryID)); err != nil {
		return fmt.Errorf("delete library book: %w", err)
	}

	s.logger.Info("book removed from library", "client_id", clientID, "entry_id", entryID)
	return nil
}

// SetCurrent marks one library entry as the client's current read and
// clears the flag everywhere else.
func (s *LibraryService) SetCurrent(ctx context.Context, clientID, entryID string) (*domain.LibraryBook, error) {
	if clientID == "" || entryID == "" {
		return nil, domainerrors.Validation("client id and entry id are required")
	}

	var target *domain.LibraryBook
	for _, entry := range s.store.Library.ListPrefix(ctx, clientID+":") {
		updated := entry.ID == entryID
		if entry.IsCurrent != updated {
			entry.IsCurrent = updated
			if err := s.store.Library.Set(ctx, store.LibraryKey(clientID, entry.ID), entry); err != nil {
				return nil, fmt.Errorf("update library book: %w", err)
			}
		}
		if updated {
			target = entry
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domainerrors.NotFoundf("library entry %s not found", entryID)
	}

	s.logger.Info("current read updated", "client_id", clientID, "entry_id", entryID)
	return target, nil
}

// GetPreferences returns the client's stored preferences, or an empty
// record when none exist yet.
func (s *LibraryService) GetPreferences(ctx context.Context, clientID string) (*domain.Preferences, error) {
	if clientID == "" {
		return nil, domainerrors.Validation("client id cannot be empty")
	}

	prefs, err := s.store.Preferences.Get(ctx, clientID)
	if err != nil {
		if domainerrors.Is(err, domainerrors.ErrNotFound) {
			return &domain.Preferences{ClientID: clientID}, nil
		}
		return nil, err
	}
	return prefs, nil
}

// UpdatePreferencesInput carries a partial preferences update. Nil fields
// keep their stored value.
type UpdatePreferencesInput struct {
	ExcludeBookIDs   *[]string `json:"exclude_book_ids"`
	OriginPreference *string   `json:"origin_preference" validate:"omitempty,oneof=required excluded balanced"`
	Location         *string   `json:"location"`
}

// UpdatePreferences applies a partial update to the client's preferences.
func (s *LibraryService) UpdatePreferences(ctx context.Context, clientID string, input UpdatePreferencesInput) (*domain.Preferences, error) {
	if err := s.validate.Validate(input); err != nil {
		return nil, err
	}
	prefs, err := s.GetPreferences(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if input.ExcludeBookIDs != nil {
		prefs.ExcludeBookIDs = *input.ExcludeBookIDs
	}
	if input.OriginPreference != nil {
		prefs.OriginPreference = *input.OriginPreference
	}
	if input.Location != nil {
		prefs.Location = strings.TrimSpace(*input.Location)
	}
	prefs.UpdatedAt = time.Now()

	if err := s.store.Preferences.Set(ctx, clientID, prefs); err != nil {
		return nil, fmt.Errorf("save preferences: %w", err)
	}

	s.logger.Info("preferences updated", "client_id", clientID)
	return prefs, nil
}
