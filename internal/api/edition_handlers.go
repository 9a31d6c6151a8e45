package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/reserveapp/reserve-server/internal/domain"
)

func (s *Server) registerEditionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCuratedEdition",
		Method:      http.MethodGet,
		Path:        "/api/v1/edition",
		Summary:     "Get curated edition",
		Description: "Returns the hand-curated monthly edition from the corpus",
		Tags:        []string{"Edition"},
	}, s.handleGetCuratedEdition)

	huma.Register(s.api, huma.Operation{
		OperationID: "getAIEdition",
		Method:      http.MethodGet,
		Path:        "/api/v1/edition/ai",
		Summary:     "Get AI edition",
		Description: "Returns this month's generated edition, regenerating it once per month",
		Tags:        []string{"Edition"},
	}, s.handleGetAIEdition)

	huma.Register(s.api, huma.Operation{
		OperationID: "getGenreShelf",
		Method:      http.MethodGet,
		Path:        "/api/v1/edition/shelf",
		Summary:     "Get genre shelf",
		Description: "Returns a deterministic shelf for a genre, stable within the month",
		Tags:        []string{"Edition"},
	}, s.handleGetGenreShelf)
}

// === DTOs ===

// CuratedEditionOutput wraps the curated edition for Huma.
type CuratedEditionOutput struct {
	Body domain.Edition
}

// AIEditionInput contains parameters for the generated edition.
type AIEditionInput struct {
	Location string `query:"location" maxLength:"200" doc:"Optional location used to season the curation prompt"`
}

// AIEditionOutput wraps the generated edition for Huma.
type AIEditionOutput struct {
	Body domain.AIEdition
}

// GenreShelfInput contains parameters for a genre shelf.
type GenreShelfInput struct {
	Genre string `query:"genre" maxLength:"100" doc:"Genre slug; empty or 'all' yields an empty shelf"`
}

// GenreShelfResponse contains a genre shelf in API responses.
type GenreShelfResponse struct {
	Genre string               `json:"genre" doc:"Requested genre slug"`
	Books []domain.EditionBook `json:"books" doc:"Shelf entries with narrative fields"`
}

// GenreShelfOutput wraps the genre shelf for Huma.
type GenreShelfOutput struct {
	Body GenreShelfResponse
}

func (s *Server) handleGetCuratedEdition(_ context.Context, _ *struct{}) (*CuratedEditionOutput, error) {
	return &CuratedEditionOutput{Body: s.services.Edition.Curated()}, nil
}

func (s *Server) handleGetAIEdition(ctx context.Context, input *AIEditionInput) (*AIEditionOutput, error) {
	var readingCtx *domain.ReadingContext
	if input.Location != "" {
		current := s.services.Context.Current(ctx, input.Location)
		readingCtx = &current
	}

	edition, err := s.services.Edition.AIEdition(ctx, readingCtx, time.Now())
	if err != nil {
		return nil, err
	}
	return &AIEditionOutput{Body: *edition}, nil
}

func (s *Server) handleGetGenreShelf(_ context.Context, input *GenreShelfInput) (*GenreShelfOutput, error) {
	books := s.services.Edition.GenreShelf(input.Genre, time.Now())
	return &GenreShelfOutput{
		Body: GenreShelfResponse{
			Genre: input.Genre,
			Books: books,
		},
	}, nil
}
