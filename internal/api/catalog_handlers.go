package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/reserveapp/reserve-server/internal/domain"
	domainerrors "github.com/reserveapp/reserve-server/internal/errors"
	"github.com/reserveapp/reserve-server/internal/search"
	"github.com/reserveapp/reserve-server/internal/service"
)

func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "browseBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books",
		Summary:     "Browse books",
		Description: "Filters the catalog by genre and mood tags with an optional substring query",
		Tags:        []string{"Books"},
	}, s.handleBrowseBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}",
		Summary:     "Get book",
		Description: "Returns a single catalog book by ID",
		Tags:        []string{"Books"},
	}, s.handleGetBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search books",
		Description: "Runs a ranked full-text query over the catalog with typo tolerance and highlights",
		Tags:        []string{"Search"},
	}, s.handleSearchBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTaxonomy",
		Method:      http.MethodGet,
		Path:        "/api/v1/taxonomy",
		Summary:     "Get taxonomy",
		Description: "Returns the genre, mood, and context vocabulary the catalog is tagged under",
		Tags:        []string{"Books"},
	}, s.handleGetTaxonomy)
}

// === DTOs ===

// BrowseBooksInput contains catalog browse filters.
type BrowseBooksInput struct {
	Genres []string `query:"genres" doc:"Genre slugs, any-overlap"`
	Moods  []string `query:"moods" doc:"Mood slugs, any-overlap"`
	Query  string   `query:"q" maxLength:"200" doc:"Substring match over title, author, description, and subjects"`
	Limit  int      `query:"limit" minimum:"1" maximum:"200" default:"50" doc:"Maximum books returned"`
}

// BrowseBooksResponse contains browse results in API responses.
type BrowseBooksResponse struct {
	Books []domain.BookRecord `json:"books" doc:"Matching catalog books in storage order"`
	Total int                 `json:"total" doc:"Number of books returned"`
}

// BrowseBooksOutput wraps browse results for Huma.
type BrowseBooksOutput struct {
	Body BrowseBooksResponse
}

// GetBookInput contains the book ID path parameter.
type GetBookInput struct {
	ID string `path:"id" maxLength:"100" doc:"Catalog book ID"`
}

// GetBookOutput wraps a single book for Huma.
type GetBookOutput struct {
	Body domain.BookRecord
}

// SearchBooksInput contains full-text search parameters.
type SearchBooksInput struct {
	Query     string   `query:"q" maxLength:"200" doc:"Search query; empty matches everything"`
	Genres    []string `query:"genres" doc:"Genre slugs to filter by"`
	Moods     []string `query:"moods" doc:"Mood slugs to filter by"`
	Limit     int      `query:"limit" minimum:"1" maximum:"100" default:"20" doc:"Maximum hits returned"`
	Offset    int      `query:"offset" minimum:"0" default:"0" doc:"Hits to skip for pagination"`
	Highlight bool     `query:"highlight" default:"true" doc:"Include match highlights"`
}

// SearchBooksOutput wraps search results for Huma.
type SearchBooksOutput struct {
	Body search.Result
}

// TaxonomyOutput wraps the tag vocabulary for Huma.
type TaxonomyOutput struct {
	Body domain.Taxonomy
}

func (s *Server) handleBrowseBooks(_ context.Context, input *BrowseBooksInput) (*BrowseBooksOutput, error) {
	books := s.services.Catalog.Browse(service.BrowseOptions{
		Genres: input.Genres,
		Moods:  input.Moods,
		Query:  input.Query,
		Limit:  input.Limit,
	})
	return &BrowseBooksOutput{
		Body: BrowseBooksResponse{
			Books: books,
			Total: len(books),
		},
	}, nil
}

func (s *Server) handleGetBook(_ context.Context, input *GetBookInput) (*GetBookOutput, error) {
	book := s.services.Catalog.Book(input.ID)
	if book == nil {
		return nil, domainerrors.NotFoundf("book %s not found", input.ID)
	}
	return &GetBookOutput{Body: *book}, nil
}

func (s *Server) handleSearchBooks(ctx context.Context, input *SearchBooksInput) (*SearchBooksOutput, error) {
	result, err := s.services.Catalog.Search(ctx, search.Params{
		Query:     input.Query,
		Genres:    input.Genres,
		Moods:     input.Moods,
		Limit:     input.Limit,
		Offset:    input.Offset,
		Highlight: input.Highlight,
	})
	if err != nil {
		return nil, err
	}
	return &SearchBooksOutput{Body: *result}, nil
}

func (s *Server) handleGetTaxonomy(_ context.Context, _ *struct{}) (*TaxonomyOutput, error) {
	return &TaxonomyOutput{Body: s.services.Catalog.Taxonomy()}, nil
}
