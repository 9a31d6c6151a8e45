package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/reserveapp/reserve-server/internal/domain"
)

func (s *Server) registerContextRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getReadingContext",
		Method:      http.MethodGet,
		Path:        "/api/v1/context",
		Summary:     "Get reading context",
		Description: "Returns the current reading context: season, time of day, mood, and weather when available",
		Tags:        []string{"Context"},
	}, s.handleGetReadingContext)
}

// === DTOs ===

// ReadingContextInput contains parameters for the reading context.
type ReadingContextInput struct {
	Location string `query:"location" maxLength:"200" doc:"Free-text location for the weather lookup"`
}

// ReadingContextOutput wraps the reading context for Huma.
type ReadingContextOutput struct {
	Body domain.ReadingContext
}

func (s *Server) handleGetReadingContext(ctx context.Context, input *ReadingContextInput) (*ReadingContextOutput, error) {
	return &ReadingContextOutput{Body: s.services.Context.Current(ctx, input.Location)}, nil
}
