package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reserveapp/reserve-server/internal/domain"
	"github.com/reserveapp/reserve-server/internal/service"
)

func TestCuratedEditionEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/edition")
	require.Equal(t, http.StatusOK, resp.Code)

	var edition domain.Edition
	decodeBody(t, resp.Body.Bytes(), &edition)

	assert.Equal(t, "A Slow Month", edition.Title)
	assert.Len(t, edition.Books, 3)
}

func TestGenreShelfEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/edition/shelf?genre=poetry")
	require.Equal(t, http.StatusOK, resp.Code)

	var shelf GenreShelfResponse
	decodeBody(t, resp.Body.Bytes(), &shelf)

	assert.Equal(t, "poetry", shelf.Genre)
	require.NotEmpty(t, shelf.Books)
	for _, book := range shelf.Books {
		assert.NotEmpty(t, book.WhyThisBook)
		assert.NotEmpty(t, book.BestContext)
	}
}

func TestGenreShelfEndpointEmptyGenre(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/edition/shelf")
	require.Equal(t, http.StatusOK, resp.Code)

	var shelf GenreShelfResponse
	decodeBody(t, resp.Body.Bytes(), &shelf)
	assert.Empty(t, shelf.Books)
}

func TestAIEditionEndpointRequiresBackend(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/edition/ai")
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)

	var apiErr APIError
	decodeBody(t, resp.Body.Bytes(), &apiErr)
	assert.Equal(t, "BACKEND_UNAVAILABLE", apiErr.Code)
}

func TestAIEditionEndpointGenerates(t *testing.T) {
	ts := setupTestServer(t)
	ts.backend.configured = true
	ts.backend.response = `{"theme":"Clear Days","description":"Bright reads.","books":[
		{"id":"bk-walden","title":"Walden","author":"Henry David Thoreau","why_this_book":"w","best_context":"c","estimated_sessions":4},
		{"id":"bk-gilead","title":"Gilead","author":"Marilynne Robinson","why_this_book":"w","best_context":"c","estimated_sessions":5},
		{"id":"bk-wind","title":"The Wind in the Willows","author":"Kenneth Grahame","why_this_book":"w","best_context":"c","estimated_sessions":3}
	]}`

	resp := ts.api.Get("/api/v1/edition/ai")
	require.Equal(t, http.StatusOK, resp.Code)

	var edition domain.AIEdition
	decodeBody(t, resp.Body.Bytes(), &edition)

	assert.Equal(t, "Clear Days", edition.Theme)
	assert.Len(t, edition.Books, 3)
	assert.NotEmpty(t, edition.Month)

	// A second request serves the cached month without another call.
	calls := ts.backend.calls
	resp = ts.api.Get("/api/v1/edition/ai")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, calls, ts.backend.calls)
}

func TestSummaryEndpointRequiresBackend(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/books/summary", map[string]any{
		"title": "Walden",
	})
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
}

func TestSummaryEndpointGenerates(t *testing.T) {
	ts := setupTestServer(t)
	ts.backend.configured = true
	ts.backend.response = `{"author":"Henry David Thoreau","summary":"A quiet year beside a pond."}`

	resp := ts.api.Post("/api/v1/books/summary", map[string]any{
		"title": "Walden",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var summary service.BookSummary
	decodeBody(t, resp.Body.Bytes(), &summary)

	assert.Equal(t, "Walden", summary.Title)
	assert.Equal(t, "Henry David Thoreau", summary.Author)
	assert.Contains(t, summary.Summary, "pond")
}

func TestReadingContextEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/context?location=Mumbai")
	require.Equal(t, http.StatusOK, resp.Code)

	var readingCtx domain.ReadingContext
	decodeBody(t, resp.Body.Bytes(), &readingCtx)

	assert.Equal(t, "Mumbai", readingCtx.Location)
	assert.NotEmpty(t, readingCtx.Season)
	assert.NotEmpty(t, readingCtx.TimeOfDay)
	assert.NotEmpty(t, readingCtx.ReadingMood)
	assert.Nil(t, readingCtx.Weather)
}
