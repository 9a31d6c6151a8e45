package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reserveapp/reserve-server/internal/domain"
	"github.com/reserveapp/reserve-server/internal/search"
)

func TestBrowseBooksByGenre(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/books?genres=poetry")
	require.Equal(t, http.StatusOK, resp.Code)

	var body BrowseBooksResponse
	decodeBody(t, resp.Body.Bytes(), &body)

	require.Equal(t, 1, body.Total)
	assert.Equal(t, "bk-gitanjali", body.Books[0].ID)
}

func TestBrowseBooksBySubstringQuery(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/books?q=walden")
	require.Equal(t, http.StatusOK, resp.Code)

	var body BrowseBooksResponse
	decodeBody(t, resp.Body.Bytes(), &body)

	require.Equal(t, 1, body.Total)
	assert.Equal(t, "Walden", body.Books[0].Title)
}

func TestGetBookByID(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/books/bk-gilead")
	require.Equal(t, http.StatusOK, resp.Code)

	var book domain.BookRecord
	decodeBody(t, resp.Body.Bytes(), &book)
	assert.Equal(t, "Marilynne Robinson", book.Author)
}

func TestGetBookNotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/books/bk-missing")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	var apiErr APIError
	decodeBody(t, resp.Body.Bytes(), &apiErr)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
}

func TestSearchBooksToleratesTypos(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/search?q=waldan")
	require.Equal(t, http.StatusOK, resp.Code)

	var result search.Result
	decodeBody(t, resp.Body.Bytes(), &result)

	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "bk-walden", result.Hits[0].ID)
}

func TestSearchBooksFiltersByMood(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/search?moods=gentle")
	require.Equal(t, http.StatusOK, resp.Code)

	var result search.Result
	decodeBody(t, resp.Body.Bytes(), &result)

	ids := make([]string, 0, len(result.Hits))
	for _, hit := range result.Hits {
		ids = append(ids, hit.ID)
	}
	assert.ElementsMatch(t, []string{"bk-gilead", "bk-wind"}, ids)
}

func TestGetTaxonomy(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/taxonomy")
	require.Equal(t, http.StatusOK, resp.Code)

	var taxonomy domain.Taxonomy
	decodeBody(t, resp.Body.Bytes(), &taxonomy)
	assert.Contains(t, taxonomy.Genres, "poetry")
	assert.Contains(t, taxonomy.Moods, "quiet")
}
