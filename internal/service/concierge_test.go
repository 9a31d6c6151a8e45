package service

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/reserveapp/reserve-server/internal/catalog"
	"github.com/reserveapp/reserve-server/internal/config"
	"github.com/reserveapp/reserve-server/internal/domain"
	domainerrors "github.com/reserveapp/reserve-server/internal/errors"
	"github.com/reserveapp/reserve-server/internal/llm"
	"github.com/reserveapp/reserve-server/internal/logger"
	"github.com/reserveapp/reserve-server/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend is a scripted llm.Client for pipeline tests.
type fakeBackend struct {
	configured bool
	response   string
	err        error
	lastPrompt string
	calls      int
}

func (f *fakeBackend) Complete(_ context.Context, req llm.Request) (string, error) {
	f.calls++
	f.lastPrompt = req.Prompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeBackend) Configured() bool { return f.configured }

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Writer: io.Discard, Format: "json", Level: slog.LevelError})
}

func testCatalog() *catalog.Catalog {
	books := []domain.BookRecord{
		{ID: "bk-guide", Title: "The Guide", Author: "R.K. Narayan", Genres: []string{"fiction", "classics"}, Moods: []string{"warm"}},
		{ID: "bk-gitanjali", Title: "Gitanjali", Author: "Rabindranath Tagore", Genres: []string{"poetry"}, Moods: []string{"quiet", "meditative"}},
		{ID: "bk-clearlight", Title: "Clear Light of Day", Author: "Anita Desai", Genres: []string{"literary"}, Moods: []string{"contemplative", "quiet"}},
		{ID: "bk-walden", Title: "Walden", Author: "Henry David Thoreau", Genres: []string{"nature"}, Moods: []string{"quiet", "meditative"}},
		{ID: "bk-gilead", Title: "Gilead", Author: "Marilynne Robinson", Genres: []string{"literary"}, Moods: []string{"contemplative", "gentle"}},
		{ID: "bk-wind", Title: "The Wind in the Willows", Author: "Kenneth Grahame", Genres: []string{"childrens"}, Moods: []string{"warm", "gentle"}},
	}
	taxonomy := domain.Taxonomy{
		Genres:   []string{"fiction", "poetry", "literary", "nature", "childrens", "classics"},
		Moods:    []string{"warm", "quiet", "meditative", "contemplative", "gentle"},
		Contexts: []string{"slow mornings", "late evenings", "quiet nights"},
	}
	edition := domain.Edition{
		ID:    "ed-1",
		Title: "A Slow Month",
		Books: []domain.EditionBook{
			{ID: "e-guide", Title: "The Guide", Author: "R.K. Narayan", WhyThisBook: "A warm classic."},
			{ID: "e-walden", Title: "Walden", Author: "Henry David Thoreau", WhyThisBook: "Stillness on every page."},
			{ID: "e-gitanjali", Title: "Gitanjali", Author: "Rabindranath Tagore", WhyThisBook: "Songs for quiet hours."},
		},
	}
	responses := []domain.CannedResponse{
		{
			Intent: "next_book",
			Title:  "A few quiet suggestions",
			Suggestions: []domain.CannedSuggestion{
				{BookID: "e-guide", Rationale: "A gentle place to land."},
				{BookID: "e-walden", Rationale: "For slowing down."},
			},
		},
		{
			Intent: "travel",
			Title:  "For the road",
			Suggestions: []domain.CannedSuggestion{
				{BookID: "e-gitanjali", Rationale: "Small enough for any bag."},
			},
		},
	}
	return catalog.New(books, taxonomy, edition, responses)
}

func testConciergeConfig() config.ConciergeConfig {
	return config.ConciergeConfig{
		Mode:               "blend",
		FinalListSize:      3,
		CatalogLimit:       120,
		RawFallbackLimit:   40,
		BlendLimit:         60,
		BalancedMinMatches: 20,
		EditionMinShare:    0.4,
	}
}

func newConciergeService(t *testing.T, backend llm.Client, st *store.Store) *ConciergeService {
	t.Helper()
	return NewConciergeService(testCatalog(), st, backend, testConciergeConfig(), testLogger())
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.New(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, st.Close()) })
	return st
}

func TestRecommendRejectsEmptyMessage(t *testing.T) {
	svc := newConciergeService(t, &fakeBackend{}, nil)

	_, err := svc.Recommend(context.Background(), RecommendRequest{Message: "   "})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestRecommendFallsBackWhenBackendUnconfigured(t *testing.T) {
	svc := newConciergeService(t, &fakeBackend{configured: false}, nil)

	result, err := svc.Recommend(context.Background(), RecommendRequest{Message: "something quiet please"})
	require.NoError(t, err)

	assert.Equal(t, "A few quiet suggestions", result.Title)
	require.Len(t, result.Suggestions, 2)
	for _, s := range result.Suggestions {
		assert.Contains(t, []string{"e-guide", "e-walden"}, s.BookID)
	}
}

func TestRecommendFallbackMatchesTravelIntent(t *testing.T) {
	svc := newConciergeService(t, &fakeBackend{configured: false}, nil)

	result, err := svc.Recommend(context.Background(), RecommendRequest{Message: "a book for my daily commute"})
	require.NoError(t, err)

	assert.Equal(t, "For the road", result.Title)
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "e-gitanjali", result.Suggestions[0].BookID)
}

func TestRecommendFallsBackOnUnparsableOutput(t *testing.T) {
	backend := &fakeBackend{configured: true, response: "not json at all"}
	svc := newConciergeService(t, backend, nil)

	result, err := svc.Recommend(context.Background(), RecommendRequest{Message: "something quiet please"})
	require.NoError(t, err)

	assert.Equal(t, 1, backend.calls)
	assert.Equal(t, "A few quiet suggestions", result.Title)
	assert.NotEmpty(t, result.Suggestions)
}

func TestRecommendParsesBackendSuggestions(t *testing.T) {
	backend := &fakeBackend{
		configured: true,
		response:   `{"title":"For quiet evenings","suggestions":[{"bookId":"bk-gitanjali","rationale":"Songs that settle the mind."},{"bookId":"bk-walden","rationale":"Stillness by the pond."}]}`,
	}
	svc := newConciergeService(t, backend, nil)

	result, err := svc.Recommend(context.Background(), RecommendRequest{Message: "something quiet please"})
	require.NoError(t, err)

	assert.Equal(t, "For quiet evenings", result.Title)
	require.Len(t, result.Suggestions, 2)
	assert.Equal(t, "bk-gitanjali", result.Suggestions[0].BookID)
	assert.Equal(t, "Gitanjali", result.Suggestions[0].Title)
	assert.False(t, result.DiscoveryMode)
}

func TestRecommendRecoversArrayEmbeddedInProse(t *testing.T) {
	backend := &fakeBackend{
		configured: true,
		response:   "Here are my picks: [{\"bookId\":\"bk-gitanjali\",\"rationale\":\"Quiet verse.\"}] Enjoy!",
	}
	svc := newConciergeService(t, backend, nil)

	result, err := svc.Recommend(context.Background(), RecommendRequest{Message: "something quiet please"})
	require.NoError(t, err)

	assert.Equal(t, "Picked for this moment", result.Title)
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "bk-gitanjali", result.Suggestions[0].BookID)
}

func TestRecommendDropsInventedBookIDs(t *testing.T) {
	backend := &fakeBackend{
		configured: true,
		response:   `{"title":"Picks","suggestions":[{"bookId":"bk-gitanjali","rationale":"Real."},{"bookId":"bk-made-up","rationale":"Invented."}]}`,
	}
	svc := newConciergeService(t, backend, nil)

	result, err := svc.Recommend(context.Background(), RecommendRequest{Message: "something quiet please"})
	require.NoError(t, err)

	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "bk-gitanjali", result.Suggestions[0].BookID)
}

func TestRecommendExcludesOfferedBooks(t *testing.T) {
	backend := &fakeBackend{configured: true, response: "not json at all"}
	svc := newConciergeService(t, backend, nil)

	_, err := svc.Recommend(context.Background(), RecommendRequest{
		Message:        "something quiet please",
		ExcludeBookIDs: []string{"bk-gitanjali", "bk-walden"},
	})
	require.NoError(t, err)

	assert.NotContains(t, backend.lastPrompt, "bk-gitanjali |")
	assert.NotContains(t, backend.lastPrompt, "bk-walden |")
	assert.Contains(t, backend.lastPrompt, "already suggested")
}

func TestRecommendExclusionsSurviveBalancedExpansion(t *testing.T) {
	// The balanced shaper tops up Indian authors from the wider catalog;
	// books the client has already seen must not ride back in with them.
	backend := &fakeBackend{configured: true, response: "not json at all"}
	svc := newConciergeService(t, backend, nil)

	_, err := svc.Recommend(context.Background(), RecommendRequest{
		Message:        "something quiet please",
		ExcludeBookIDs: []string{"bk-gitanjali", "bk-guide"},
	})
	require.NoError(t, err)

	assert.NotContains(t, backend.lastPrompt, "bk-gitanjali |")
	assert.NotContains(t, backend.lastPrompt, "bk-guide |")
	// Unexcluded matching authors still reach the candidate list.
	assert.Contains(t, backend.lastPrompt, "bk-clearlight |")
}

func TestRecommendRoutesDiscoveryForChildRequest(t *testing.T) {
	backend := &fakeBackend{
		configured: true,
		response:   `{"title":"For a curious seven-year-old","books":[{"title":"The Lemonade War","author":"Jacqueline Davies","rationale":"Money lessons inside a sibling story.","year":2007}]}`,
	}
	svc := newConciergeService(t, backend, nil)

	result, err := svc.Recommend(context.Background(), RecommendRequest{Message: "teach my 7-year-old about money"})
	require.NoError(t, err)

	assert.True(t, result.DiscoveryMode)
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "discovered-the-lemonade-war", result.Suggestions[0].BookID)
	assert.Equal(t, 2007, result.Suggestions[0].Year)
	assert.Contains(t, backend.lastPrompt, "Age: 7")
}

func TestRecommendPersistsOfferedBooks(t *testing.T) {
	st := newTestStore(t)
	backend := &fakeBackend{
		configured: true,
		response:   `{"title":"Picks","suggestions":[{"bookId":"bk-gitanjali","rationale":"r"},{"bookId":"bk-walden","rationale":"r"}]}`,
	}
	svc := newConciergeService(t, backend, st)

	_, err := svc.Recommend(context.Background(), RecommendRequest{
		Message:  "something quiet please",
		ClientID: "client-1",
	})
	require.NoError(t, err)

	prefs, err := st.Preferences.Get(context.Background(), "client-1")
	require.NoError(t, err)
	assert.Subset(t, prefs.ExcludeBookIDs, []string{"bk-gitanjali", "bk-walden"})
}

func TestRecommendAppliesStoredExclusions(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.Preferences.Set(context.Background(), "client-1", &domain.Preferences{
		ClientID:       "client-1",
		ExcludeBookIDs: []string{"bk-gitanjali"},
	}))

	backend := &fakeBackend{configured: true, response: "not json"}
	svc := newConciergeService(t, backend, st)

	_, err := svc.Recommend(context.Background(), RecommendRequest{
		Message:  "something quiet please",
		ClientID: "client-1",
	})
	require.NoError(t, err)
	assert.NotContains(t, backend.lastPrompt, "bk-gitanjali |")
}

func TestRecommendHonorsStoredOriginPreference(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.Preferences.Set(context.Background(), "client-1", &domain.Preferences{
		ClientID:         "client-1",
		OriginPreference: "required",
	}))

	backend := &fakeBackend{configured: true, response: "not json"}
	svc := newConciergeService(t, backend, st)

	_, err := svc.Recommend(context.Background(), RecommendRequest{
		Message:  "something quiet please",
		ClientID: "client-1",
	})
	require.NoError(t, err)
	assert.Contains(t, backend.lastPrompt, "INDIAN AUTHORS EXPLICITLY REQUESTED")
	// Required origin keeps only matching authors in the candidate list.
	assert.NotContains(t, backend.lastPrompt, "bk-walden |")
}

func TestRecommendCapsFinalListSize(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(`{"title":"Many","suggestions":[`)
	ids := []string{"bk-guide", "bk-gitanjali", "bk-clearlight", "bk-walden", "bk-gilead"}
	for i, id := range ids {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(`{"bookId":"` + id + `","rationale":"r"}`)
	}
	sb.WriteString(`]}`)

	backend := &fakeBackend{configured: true, response: sb.String()}
	svc := newConciergeService(t, backend, nil)

	result, err := svc.Recommend(context.Background(), RecommendRequest{Message: "something quiet please"})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(result.Suggestions), 3)
}
