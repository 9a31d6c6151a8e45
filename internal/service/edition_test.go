package service

import (
	"context"
	"testing"
	"time"

	"github.com/reserveapp/reserve-server/internal/domain"
	domainerrors "github.com/reserveapp/reserve-server/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEditionService(t *testing.T, backend *fakeBackend) *EditionService {
	t.Helper()
	return NewEditionService(testCatalog(), newTestStore(t), backend, testConciergeConfig(), testLogger())
}

func TestGenreShelfIsDeterministicWithinMonth(t *testing.T) {
	svc := newEditionService(t, &fakeBackend{})
	now := time.Date(2026, time.September, 10, 12, 0, 0, 0, time.UTC)

	first := svc.GenreShelf("literary", now)
	second := svc.GenreShelf("literary", now.Add(48*time.Hour))

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
	assert.LessOrEqual(t, len(first), domain.MaxEditionBooks)

	for _, book := range first {
		assert.NotEmpty(t, book.WhyThisBook)
		assert.NotEmpty(t, book.BestContext)
		assert.GreaterOrEqual(t, book.EstimatedSessions, 3)
		assert.LessOrEqual(t, book.EstimatedSessions, 7)
	}
}

func TestGenreShelfEmptyOrAllGenre(t *testing.T) {
	svc := newEditionService(t, &fakeBackend{})
	now := time.Now()

	assert.Empty(t, svc.GenreShelf("", now))
	assert.Empty(t, svc.GenreShelf("all", now))
	assert.Empty(t, svc.GenreShelf("nonexistent-genre", now))
}

func TestAIEditionServesCachedMonth(t *testing.T) {
	backend := &fakeBackend{configured: false}
	svc := newEditionService(t, backend)
	now := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	cached := &domain.AIEdition{
		Theme: "Monsoon Reading",
		Month: domain.MonthKey(now),
		Books: []domain.EditionBook{{ID: "bk-gitanjali", Title: "Gitanjali", Author: "Rabindranath Tagore"}},
	}
	require.NoError(t, svc.store.Editions.Set(context.Background(), cached.Month, cached))

	got, err := svc.AIEdition(context.Background(), nil, now)
	require.NoError(t, err)
	assert.Equal(t, "Monsoon Reading", got.Theme)
	assert.Equal(t, 0, backend.calls)
}

func TestAIEditionRequiresConfiguredBackend(t *testing.T) {
	svc := newEditionService(t, &fakeBackend{configured: false})

	_, err := svc.AIEdition(context.Background(), nil, time.Now())
	assert.ErrorIs(t, err, domainerrors.ErrBackendUnavailable)
}

func TestAIEditionEnforcesMatchingAuthorShare(t *testing.T) {
	backend := &fakeBackend{
		configured: true,
		response: `{"theme":"Clear Days","description":"Bright reads.","books":[
			{"id":"bk-walden","title":"Walden","author":"Henry David Thoreau","why_this_book":"w","best_context":"c","estimated_sessions":4},
			{"id":"bk-gilead","title":"Gilead","author":"Marilynne Robinson","why_this_book":"w","best_context":"c","estimated_sessions":5},
			{"id":"bk-wind","title":"The Wind in the Willows","author":"Kenneth Grahame","why_this_book":"w","best_context":"c","estimated_sessions":3}
		]}`,
	}
	svc := newEditionService(t, backend)
	now := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	got, err := svc.AIEdition(context.Background(), nil, now)
	require.NoError(t, err)
	require.Len(t, got.Books, 3)

	matching := 0
	for _, book := range got.Books {
		if svc.classifier.Matches(book.Author) {
			matching++
		}
	}
	// ceil(3 * 0.4) = 2 matching authors minimum.
	assert.GreaterOrEqual(t, matching, 2)
	assert.Equal(t, domain.MonthKey(now), got.Month)

	// Regeneration result is cached for the month.
	cached, err := svc.store.Editions.Get(context.Background(), got.Month)
	require.NoError(t, err)
	assert.Equal(t, got.Theme, cached.Theme)
}

func TestAIEditionUnparsableOutput(t *testing.T) {
	backend := &fakeBackend{configured: true, response: "definitely not json"}
	svc := newEditionService(t, backend)

	_, err := svc.AIEdition(context.Background(), nil, time.Now())
	assert.ErrorIs(t, err, domainerrors.ErrUnparsableOutput)
}

func TestCuratedEditionFromCorpus(t *testing.T) {
	svc := newEditionService(t, &fakeBackend{})

	edition := svc.Curated()
	assert.Equal(t, "A Slow Month", edition.Title)
	assert.Len(t, edition.Books, 3)
}
