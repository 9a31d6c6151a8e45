package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/reserveapp/reserve-server/internal/domain"
	"github.com/reserveapp/reserve-server/internal/service"
)

func (s *Server) registerConciergeRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "recommendBooks",
		Method:      http.MethodPost,
		Path:        "/api/v1/concierge",
		Summary:     "Recommend books",
		Description: "Turns a free-text reading mood into a short titled suggestion list",
		Tags:        []string{"Concierge"},
	}, s.handleRecommend)
}

// === DTOs ===

// RecommendInput contains one concierge turn.
type RecommendInput struct {
	ClientID string `header:"X-Client-ID" doc:"Optional client identity for stored preferences"`
	Body     struct {
		Message        string   `json:"message" minLength:"1" maxLength:"2000" doc:"Free-text description of what to read next"`
		ExcludeBookIDs []string `json:"exclude_book_ids,omitempty" maxItems:"200" doc:"Books already offered in this session"`
		Location       string   `json:"location,omitempty" maxLength:"200" doc:"Free-text location used to color suggestions with weather and season"`
	}
}

// RecommendOutput wraps the concierge result for Huma.
type RecommendOutput struct {
	Body domain.ConciergeResult
}

func (s *Server) handleRecommend(ctx context.Context, input *RecommendInput) (*RecommendOutput, error) {
	var readingCtx *domain.ReadingContext
	if input.Body.Location != "" {
		current := s.services.Context.Current(ctx, input.Body.Location)
		readingCtx = &current
	}

	result, err := s.services.Concierge.Recommend(ctx, service.RecommendRequest{
		Message:        input.Body.Message,
		ClientID:       input.ClientID,
		ExcludeBookIDs: input.Body.ExcludeBookIDs,
		Context:        readingCtx,
	})
	if err != nil {
		return nil, err
	}

	return &RecommendOutput{Body: *result}, nil
}
