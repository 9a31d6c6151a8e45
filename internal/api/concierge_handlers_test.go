package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reserveapp/reserve-server/internal/domain"
)

func TestRecommendEndpointServesFallback(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/concierge", map[string]any{
		"message": "something quiet please",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var result domain.ConciergeResult
	decodeBody(t, resp.Body.Bytes(), &result)

	assert.Equal(t, "A few quiet suggestions", result.Title)
	assert.NotEmpty(t, result.Suggestions)
	assert.Equal(t, 0, ts.backend.calls)
}

func TestRecommendEndpointParsesBackendSuggestions(t *testing.T) {
	ts := setupTestServer(t)
	ts.backend.configured = true
	ts.backend.response = `{"title":"For quiet evenings","suggestions":[{"bookId":"bk-gitanjali","rationale":"Songs that settle the mind."}]}`

	resp := ts.api.Post("/api/v1/concierge",
		"X-Client-ID: client-1",
		map[string]any{"message": "something quiet please"})
	require.Equal(t, http.StatusOK, resp.Code)

	var result domain.ConciergeResult
	decodeBody(t, resp.Body.Bytes(), &result)

	assert.Equal(t, "For quiet evenings", result.Title)
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "bk-gitanjali", result.Suggestions[0].BookID)
	assert.Equal(t, "Gitanjali", result.Suggestions[0].Title)

	// Offered books are remembered against the client.
	prefs, err := ts.store.Preferences.Get(context.Background(), "client-1")
	require.NoError(t, err)
	assert.Contains(t, prefs.ExcludeBookIDs, "bk-gitanjali")
}

func TestRecommendEndpointRejectsMissingMessage(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/concierge", map[string]any{
		"message": "",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	var apiErr APIError
	decodeBody(t, resp.Body.Bytes(), &apiErr)
	assert.Equal(t, "VALIDATION", apiErr.Code)
}

func TestRecommendEndpointRejectsBlankMessage(t *testing.T) {
	ts := setupTestServer(t)

	// Whitespace passes the schema but fails service validation.
	resp := ts.api.Post("/api/v1/concierge", map[string]any{
		"message": "   ",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var apiErr APIError
	decodeBody(t, resp.Body.Bytes(), &apiErr)
	assert.Equal(t, "VALIDATION", apiErr.Code)
}

func TestRecommendEndpointDiscoveryMode(t *testing.T) {
	ts := setupTestServer(t)
	ts.backend.configured = true
	ts.backend.response = `{"title":"For a curious seven-year-old","books":[{"title":"The Lemonade War","author":"Jacqueline Davies","rationale":"Money lessons inside a sibling story.","year":2007}]}`

	resp := ts.api.Post("/api/v1/concierge", map[string]any{
		"message": "teach my 7-year-old about money",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var result domain.ConciergeResult
	decodeBody(t, resp.Body.Bytes(), &result)

	assert.True(t, result.DiscoveryMode)
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "discovered-the-lemonade-war", result.Suggestions[0].BookID)
}
