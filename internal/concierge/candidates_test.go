package concierge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reserveapp/reserve-server/internal/catalog"
	"github.com/reserveapp/reserve-server/internal/domain"
)

func poolTestCatalog() *catalog.Catalog {
	books := []domain.BookRecord{
		{ID: "bk-1", Title: "Gitanjali", Author: "Rabindranath Tagore", Genres: []string{"poetry"}, Moods: []string{"quiet", "meditative"}},
		{ID: "bk-2", Title: "Walden", Author: "Henry David Thoreau", Genres: []string{"nature"}, Moods: []string{"quiet"}},
		{ID: "bk-3", Title: "The Guide", Author: "R.K. Narayan", Genres: []string{"fiction"}, Moods: []string{"warm"}},
		{ID: "bk-4", Title: "Gilead", Author: "Marilynne Robinson", Genres: []string{"literary"}, Moods: []string{"gentle"}},
	}
	edition := domain.Edition{
		ID:    "ed-1",
		Title: "A Slow Month",
		Books: []domain.EditionBook{
			{ID: "e-1", Title: "Gitanjali", Author: "Rabindranath Tagore", WhyThisBook: "Songs for quiet hours."},
			{ID: "e-2", Title: "Meditations", Author: "Marcus Aurelius", WhyThisBook: "Notes on staying upright."},
		},
	}
	return catalog.New(books, domain.Taxonomy{}, edition, nil)
}

func TestBuildEditionMode(t *testing.T) {
	b := NewPoolBuilder(poolTestCatalog(), ModeEdition, PoolLimits{})
	pool := b.Build("something quiet")

	require.Len(t, pool, 2)
	assert.Equal(t, "e-1", pool[0].ID)
	// The narrative field becomes the description.
	assert.Equal(t, "Songs for quiet hours.", pool[0].Description)
}

func TestBuildCatalogModeFiltersByTags(t *testing.T) {
	b := NewPoolBuilder(poolTestCatalog(), ModeCatalog, PoolLimits{})
	pool := b.Build("something quiet")

	ids := make([]string, 0, len(pool))
	for _, book := range pool {
		ids = append(ids, book.ID)
	}
	assert.ElementsMatch(t, []string{"bk-1", "bk-2"}, ids)
}

func TestBuildCatalogModeFallsBackToPrefix(t *testing.T) {
	b := NewPoolBuilder(poolTestCatalog(), ModeCatalog, PoolLimits{RawFallbackLimit: 2})
	// No tag rule fires, so the prefix slice serves as the pool.
	pool := b.Build("xylophone maintenance")

	require.Len(t, pool, 2)
	assert.Equal(t, "bk-1", pool[0].ID)
	assert.Equal(t, "bk-2", pool[1].ID)
}

func TestBuildBlendModeAppendsEdition(t *testing.T) {
	b := NewPoolBuilder(poolTestCatalog(), ModeBlend, PoolLimits{})
	pool := b.Build("something quiet")

	require.Len(t, pool, 4)
	// Catalog entries lead, edition entries follow.
	assert.Equal(t, "bk-1", pool[0].ID)
	assert.Equal(t, "e-1", pool[2].ID)
	assert.Equal(t, "e-2", pool[3].ID)
}

func TestBuildEmptyCorpusYieldsEmptyPool(t *testing.T) {
	empty := catalog.New(nil, domain.Taxonomy{}, domain.Edition{}, nil)
	b := NewPoolBuilder(empty, ModeBlend, PoolLimits{})
	assert.Empty(t, b.Build("anything"))
}

func TestApplyExclusions(t *testing.T) {
	pool := []domain.BookRecord{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	out := ApplyExclusions(pool, []string{"b"})
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "c", out[1].ID)

	assert.Equal(t, pool, ApplyExclusions(pool, nil))
}

func TestFilterChildSafe(t *testing.T) {
	pool := []domain.BookRecord{
		{ID: "safe", Title: "Charlotte's Web", Author: "E.B. White"},
		{ID: "adult", Title: "The Kama Sutra", Author: "Vatsyayana"},
		{ID: "academic", Title: "The Norton Anthology of Poetry", Author: "Various"},
		{ID: "dense", Title: "Ulysses", Author: "James Joyce"},
	}

	out := FilterChildSafe(pool, 0)
	require.Len(t, out, 1)
	assert.Equal(t, "safe", out[0].ID)
}

func TestFilterChildSafeYoungReadersDropVolumes(t *testing.T) {
	pool := []domain.BookRecord{
		{ID: "safe", Title: "The Wind in the Willows", Author: "Kenneth Grahame"},
		{ID: "volume", Title: "Collected Stories, Volume II", Author: "Somebody"},
	}

	out := FilterChildSafe(pool, 7)
	require.Len(t, out, 1)
	assert.Equal(t, "safe", out[0].ID)

	// Older readers keep multi-volume works.
	assert.Len(t, FilterChildSafe(pool, 10), 2)
}
