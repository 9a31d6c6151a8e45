package service

import (
	"context"
	"strings"

	"github.com/reserveapp/reserve-server/internal/concierge"
	domainerrors "github.com/reserveapp/reserve-server/internal/errors"
	"github.com/reserveapp/reserve-server/internal/llm"
	"github.com/reserveapp/reserve-server/internal/logger"
)

// BookSummary is a generated two-sentence summary for a single title.
type BookSummary struct {
	Title   string `json:"title"`
	Author  string `json:"author,omitempty"`
	Summary string `json:"summary"`
}

// SummaryService generates evocative book summaries on demand.
type SummaryService struct {
	backend llm.Client
	logger  *logger.Logger
}

// NewSummaryService creates the summary service.
func NewSummaryService(backend llm.Client, log *logger.Logger) *SummaryService {
	return &SummaryService{backend: backend, logger: log}
}

// Summarize asks the backend for a short summary of the given book. Unlike
// the concierge there is no canned fallback; an unconfigured or failing
// backend surfaces as an error.
func (s *SummaryService) Summarize(ctx context.Context, title, author string) (*BookSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domainerrors.Validation("title cannot be empty")
	}
	if !s.backend.Configured() {
		return nil, domainerrors.BackendUnavailable("generative backend not configured")
	}

	text, err := s.backend.Complete(ctx, llm.Request{
		System:      concierge.SummarySystem,
		Prompt:      concierge.BuildSummaryPrompt(title, author),
		MaxTokens:   concierge.SamplingSummary.MaxTokens,
		Temperature: concierge.SamplingSummary.Temperature,
	})
	if err != nil {
		return nil, err
	}

	parsed := concierge.ParseSummary(text)
	resolvedAuthor := parsed.Author
	if resolvedAuthor == "" {
		resolvedAuthor = author
	}

	s.logger.Debug("book summary generated", "title", title)
	return &BookSummary{
		Title:   title,
		Author:  resolvedAuthor,
		Summary: parsed.Summary,
	}, nil
}
