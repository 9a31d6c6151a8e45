// Package service orchestrates the recommendation pipeline, edition
// curation, and client state on top of the catalog, store, and outbound
// clients.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/reserveapp/reserve-server/internal/catalog"
	"github.com/reserveapp/reserve-server/internal/concierge"
	"github.com/reserveapp/reserve-server/internal/config"
	"github.com/reserveapp/reserve-server/internal/domain"
	domainerrors "github.com/reserveapp/reserve-server/internal/errors"
	"github.com/reserveapp/reserve-server/internal/llm"
	"github.com/reserveapp/reserve-server/internal/logger"
	"github.com/reserveapp/reserve-server/internal/store"
)

// RecommendRequest carries one concierge turn.
type RecommendRequest struct {
	Message string
	// ClientID scopes stored preferences; empty means anonymous.
	ClientID string
	// ExcludeBookIDs are books already offered in this session.
	ExcludeBookIDs []string
	// Context optionally colors the prompt with weather and season.
	Context *domain.ReadingContext
}

// ConciergeService turns a free-text mood into a short suggestion list.
// Every internal failure past request validation degrades to a canned
// fallback; the client always receives a usable list.
type ConciergeService struct {
	catalog    *catalog.Catalog
	store      *store.Store
	backend    llm.Client
	logger     *logger.Logger
	cfg        config.ConciergeConfig
	builder    *concierge.PoolBuilder
	shaper     *concierge.PoolShaper
	reconciler *concierge.Reconciler
	classifier concierge.OriginClassifier
}

// NewConciergeService creates the concierge pipeline.
func NewConciergeService(cat *catalog.Catalog, st *store.Store, backend llm.Client, cfg config.ConciergeConfig, log *logger.Logger) *ConciergeService {
	classifier := concierge.NewDefaultClassifier()
	return &ConciergeService{
		catalog: cat,
		store:   st,
		backend: backend,
		logger:  log,
		cfg:     cfg,
		builder: concierge.NewPoolBuilder(cat, concierge.Mode(cfg.Mode), concierge.PoolLimits{
			CatalogLimit:     cfg.CatalogLimit,
			RawFallbackLimit: cfg.RawFallbackLimit,
			BlendLimit:       cfg.BlendLimit,
		}),
		shaper:     concierge.NewPoolShaper(classifier, cfg.BalancedMinMatches),
		reconciler: concierge.NewReconciler(classifier),
		classifier: classifier,
	}
}

// Recommend runs the full pipeline for one message.
func (s *ConciergeService) Recommend(ctx context.Context, req RecommendRequest) (*domain.ConciergeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, domainerrors.Validation("message cannot be empty")
	}

	profile := concierge.AnalyzeMessage(message)
	excludeIDs := s.mergeStoredPreferences(ctx, req.ClientID, req.ExcludeBookIDs, &profile)

	var result domain.ConciergeResult
	if profile.Discovery {
		result = s.recommendDiscovery(ctx, profile)
	} else {
		result = s.recommendFromCatalog(ctx, profile, excludeIDs, req.Context)
	}

	s.rememberOffered(ctx, req.ClientID, result.Suggestions)

	s.logger.Info("concierge request served",
		"discovery", result.DiscoveryMode,
		"suggestions", len(result.Suggestions),
		"origin", string(profile.Origin),
		"child_safety", profile.ChildSafety,
	)
	return &result, nil
}

// mergeStoredPreferences folds the client's persisted exclusions into the
// request and lets a stored origin preference stand in when the message
// itself carried no explicit origin signal.
func (s *ConciergeService) mergeStoredPreferences(ctx context.Context, clientID string, excludeIDs []string, profile *concierge.Profile) []string {
	if clientID == "" || s.store == nil {
		return excludeIDs
	}

	prefs, err := s.store.Preferences.Get(ctx, clientID)
	if err != nil {
		if !domainerrors.Is(err, domainerrors.ErrNotFound) {
			s.logger.Warn("failed to load preferences", "client_id", clientID, "error", err)
		}
		return excludeIDs
	}

	merged := append([]string{}, excludeIDs...)
	merged = append(merged, prefs.ExcludeBookIDs...)

	if profile.Origin == concierge.OriginBalanced {
		switch prefs.OriginPreference {
		case "required":
			profile.Origin = concierge.OriginRequired
		case "excluded":
			profile.Origin = concierge.OriginNone
		}
	}
	return merged
}

func (s *ConciergeService) recommendDiscovery(ctx context.Context, profile concierge.Profile) domain.ConciergeResult {
	if !s.backend.Configured() {
		return s.fallback(profile.Message, "backend not configured")
	}

	prompt := concierge.BuildDiscoveryPrompt(profile.Message, concierge.PromptConstraints{
		ChildSafety: profile.ChildSafety,
		Origin:      profile.Origin,
		AgeHint:     profile.AgeHint,
	})

	text, err := s.backend.Complete(ctx, llm.Request{
		Prompt:      prompt,
		MaxTokens:   concierge.SamplingDiscovery.MaxTokens,
		Temperature: concierge.SamplingDiscovery.Temperature,
	})
	if err != nil {
		return s.fallback(profile.Message, "discovery completion failed")
	}

	parsed, err := concierge.ParseDiscovery(text)
	if err != nil {
		return s.fallback(profile.Message, "discovery output unparsable")
	}

	return s.reconciler.ReconcileDiscovery(parsed, profile.Origin)
}

func (s *ConciergeService) recommendFromCatalog(ctx context.Context, profile concierge.Profile, excludeIDs []string, readingCtx *domain.ReadingContext) domain.ConciergeResult {
	pool := s.builder.Build(profile.Message)
	pool = concierge.ApplyExclusions(pool, excludeIDs)

	// The shaper's balanced expansion draws on the wider catalog, so the
	// expansion slice needs the same exclusion and safety filters as the
	// pool itself.
	expansion := concierge.ApplyExclusions(s.catalog.Books(), excludeIDs)
	if profile.ChildSafety {
		pool = concierge.FilterChildSafe(pool, profile.AgeHint)
		expansion = concierge.FilterChildSafe(expansion, profile.AgeHint)
	}
	pool = s.shaper.Shape(pool, expansion, profile.Origin)

	if len(pool) == 0 {
		return s.fallback(profile.Message, "empty candidate pool")
	}
	if !s.backend.Configured() {
		return s.fallback(profile.Message, "backend not configured")
	}

	prompt := concierge.BuildCatalogPrompt(profile.Message, pool, concierge.PromptConstraints{
		ChildSafety: profile.ChildSafety,
		Origin:      profile.Origin,
		AgeHint:     profile.AgeHint,
	}, len(excludeIDs), readingCtx)

	text, err := s.backend.Complete(ctx, llm.Request{
		System:      concierge.CatalogSystem,
		Prompt:      prompt,
		MaxTokens:   concierge.SamplingCatalog.MaxTokens,
		Temperature: concierge.SamplingCatalog.Temperature,
	})
	if err != nil {
		return s.fallback(profile.Message, "catalog completion failed")
	}

	parsed, err := concierge.ParseSuggestions(text)
	if err != nil {
		return s.fallback(profile.Message, "catalog output unparsable")
	}

	suggestions := s.reconciler.Reconcile(parsed.Suggestions, pool, profile.Origin)
	if len(suggestions) > s.cfg.FinalListSize {
		suggestions = suggestions[:s.cfg.FinalListSize]
	}

	title := strings.TrimSpace(parsed.Title)
	if title == "" {
		title = "Picked for this moment"
	}
	return domain.ConciergeResult{Title: title, Suggestions: suggestions}
}

func (s *ConciergeService) fallback(message, reason string) domain.ConciergeResult {
	s.logger.Warn("serving fallback suggestions", "reason", reason)
	return concierge.Fallback(message, s.catalog.Responses(), s.catalog.Edition())
}

// rememberOffered appends the served book IDs to the client's stored
// exclusions so follow-up requests vary. Best effort.
func (s *ConciergeService) rememberOffered(ctx context.Context, clientID string, suggestions []domain.Suggestion) {
	if clientID == "" || s.store == nil || len(suggestions) == 0 {
		return
	}

	prefs, err := s.store.Preferences.Get(ctx, clientID)
	if err != nil {
		if !domainerrors.Is(err, domainerrors.ErrNotFound) {
			s.logger.Warn("failed to load preferences", "client_id", clientID, "error", err)
			return
		}
		prefs = &domain.Preferences{ClientID: clientID}
	}

	seen := make(map[string]bool, len(prefs.ExcludeBookIDs))
	for _, id := range prefs.ExcludeBookIDs {
		seen[id] = true
	}
	for _, suggestion := range suggestions {
		if !seen[suggestion.BookID] {
			prefs.ExcludeBookIDs = append(prefs.ExcludeBookIDs, suggestion.BookID)
			seen[suggestion.BookID] = true
		}
	}
	prefs.UpdatedAt = time.Now()

	if err := s.store.Preferences.Set(ctx, clientID, prefs); err != nil {
		s.logger.Warn("failed to persist offered books", "client_id", clientID, "error", err)
	}
}
