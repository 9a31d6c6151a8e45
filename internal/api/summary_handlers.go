package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/reserveapp/reserve-server/internal/service"
)

func (s *Server) registerSummaryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "summarizeBook",
		Method:      http.MethodPost,
		Path:        "/api/v1/books/summary",
		Summary:     "Summarize a book",
		Description: "Generates a short evocative summary for a single title",
		Tags:        []string{"Books"},
	}, s.handleSummarizeBook)
}

// === DTOs ===

// SummarizeInput contains the book to summarize.
type SummarizeInput struct {
	Body struct {
		Title  string `json:"title" minLength:"1" maxLength:"500" doc:"Book title"`
		Author string `json:"author,omitempty" maxLength:"500" doc:"Author name, used to disambiguate"`
	}
}

// SummarizeOutput wraps the generated summary for Huma.
type SummarizeOutput struct {
	Body service.BookSummary
}

func (s *Server) handleSummarizeBook(ctx context.Context, input *SummarizeInput) (*SummarizeOutput, error) {
	summary, err := s.services.Summary.Summarize(ctx, input.Body.Title, input.Body.Author)
	if err != nil {
		return nil, err
	}
	return &SummarizeOutput{Body: *summary}, nil
}
