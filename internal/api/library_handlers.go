package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/reserveapp/reserve-server/internal/domain"
	"github.com/reserveapp/reserve-server/internal/service"
)

func (s *Server) registerLibraryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "addLibraryBook",
		Method:      http.MethodPost,
		Path:        "/api/v1/library",
		Summary:     "Save book to library",
		Description: "Saves a book to the client's personal library; discovery suggestions are accepted too",
		Tags:        []string{"Library"},
	}, s.handleAddLibraryBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "listLibraryBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/library",
		Summary:     "List library",
		Description: "Returns the client's saved books, newest first",
		Tags:        []string{"Library"},
	}, s.handleListLibraryBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeLibraryBook",
		Method:      http.MethodDelete,
		Path:        "/api/v1/library/{id}",
		Summary:     "Remove library book",
		Description: "Deletes a saved book from the client's library",
		Tags:        []string{"Library"},
	}, s.handleRemoveLibraryBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "setCurrentRead",
		Method:      http.MethodPost,
		Path:        "/api/v1/library/{id}/current",
		Summary:     "Set current read",
		Description: "Marks one library entry as the current read and clears the flag everywhere else",
		Tags:        []string{"Library"},
	}, s.handleSetCurrentRead)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPreferences",
		Method:      http.MethodGet,
		Path:        "/api/v1/preferences",
		Summary:     "Get preferences",
		Description: "Returns the client's stored concierge preferences",
		Tags:        []string{"Preferences"},
	}, s.handleGetPreferences)

	huma.Register(s.api, huma.Operation{
		OperationID: "updatePreferences",
		Method:      http.MethodPatch,
		Path:        "/api/v1/preferences",
		Summary:     "Update preferences",
		Description: "Applies a partial update to the client's stored preferences",
		Tags:        []string{"Preferences"},
	}, s.handleUpdatePreferences)
}

// === DTOs ===

// AddLibraryBookAPIInput contains the book to save.
type AddLibraryBookAPIInput struct {
	ClientID string `header:"X-Client-ID" doc:"Client identity that owns the library"`
	Body     struct {
		BookID  string `json:"book_id,omitempty" maxLength:"100" doc:"Catalog or discovery book ID"`
		Title   string `json:"title" minLength:"1" maxLength:"500" doc:"Book title"`
		Author  string `json:"author,omitempty" maxLength:"500" doc:"Author name"`
		Summary string `json:"summary,omitempty" maxLength:"2000" doc:"Optional saved summary"`
	}
}

// LibraryBookOutput wraps a single library entry for Huma.
type LibraryBookOutput struct {
	Body domain.LibraryBook
}

// ListLibraryInput identifies the client whose library to list.
type ListLibraryInput struct {
	ClientID string `header:"X-Client-ID" doc:"Client identity that owns the library"`
}

// ListLibraryResponse contains library entries in API responses.
type ListLibraryResponse struct {
	Books []*domain.LibraryBook `json:"books" doc:"Saved books, newest first"`
	Total int                   `json:"total" doc:"Number of saved books"`
}

// ListLibraryOutput wraps the library listing for Huma.
type ListLibraryOutput struct {
	Body ListLibraryResponse
}

// LibraryEntryInput identifies one library entry.
type LibraryEntryInput struct {
	ClientID string `header:"X-Client-ID" doc:"Client identity that owns the library"`
	ID       string `path:"id" maxLength:"100" doc:"Library entry ID"`
}

// PreferencesInput identifies the client whose preferences to read.
type PreferencesInput struct {
	ClientID string `header:"X-Client-ID" doc:"Client identity"`
}

// PreferencesOutput wraps stored preferences for Huma.
type PreferencesOutput struct {
	Body domain.Preferences
}

// UpdatePreferencesAPIInput contains a partial preferences update.
// Absent fields keep their stored value.
type UpdatePreferencesAPIInput struct {
	ClientID string `header:"X-Client-ID" doc:"Client identity"`
	Body     struct {
		ExcludeBookIDs   *[]string `json:"exclude_book_ids,omitempty" doc:"Replacement exclusion list"`
		OriginPreference *string   `json:"origin_preference,omitempty" doc:"Origin handling override: required, excluded, balanced, or empty"`
		Location         *string   `json:"location,omitempty" doc:"Default location for the reading context"`
	}
}

func (s *Server) handleAddLibraryBook(ctx context.Context, input *AddLibraryBookAPIInput) (*LibraryBookOutput, error) {
	entry, err := s.services.Library.AddBook(ctx, input.ClientID, service.AddLibraryBookInput{
		BookID:  input.Body.BookID,
		Title:   input.Body.Title,
		Author:  input.Body.Author,
		Summary: input.Body.Summary,
	})
	if err != nil {
		return nil, err
	}
	return &LibraryBookOutput{Body: *entry}, nil
}

func (s *Server) handleListLibraryBooks(ctx context.Context, input *ListLibraryInput) (*ListLibraryOutput, error) {
	books, err := s.services.Library.ListBooks(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}
	return &ListLibraryOutput{
		Body: ListLibraryResponse{
			Books: books,
			Total: len(books),
		},
	}, nil
}

func (s *Server) handleRemoveLibraryBook(ctx context.Context, input *LibraryEntryInput) (*struct{}, error) {
	if err := s.services.Library.RemoveBook(ctx, input.ClientID, input.ID); err != nil {
		return nil, err
	}
	return &struct{}{}, nil
}

func (s *Server) handleSetCurrentRead(ctx context.Context, input *LibraryEntryInput) (*LibraryBookOutput, error) {
	entry, err := s.services.Library.SetCurrent(ctx, input.ClientID, input.ID)
	if err != nil {
		return nil, err
	}
	return &LibraryBookOutput{Body: *entry}, nil
}

func (s *Server) handleGetPreferences(ctx context.Context, input *PreferencesInput) (*PreferencesOutput, error) {
	prefs, err := s.services.Library.GetPreferences(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}
	return &PreferencesOutput{Body: *prefs}, nil
}

func (s *Server) handleUpdatePreferences(ctx context.Context, input *UpdatePreferencesAPIInput) (*PreferencesOutput, error) {
	prefs, err := s.services.Library.UpdatePreferences(ctx, input.ClientID, service.UpdatePreferencesInput{
		ExcludeBookIDs:   input.Body.ExcludeBookIDs,
		OriginPreference: input.Body.OriginPreference,
		Location:         input.Body.Location,
	})
	if err != nil {
		return nil, err
	}
	return &PreferencesOutput{Body: *prefs}, nil
}
