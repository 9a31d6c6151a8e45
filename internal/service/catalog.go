package service

import (
	"context"

	"github.com/reserveapp/reserve-server/internal/catalog"
	"github.com/reserveapp/reserve-server/internal/domain"
	"github.com/reserveapp/reserve-server/internal/logger"
	"github.com/reserveapp/reserve-server/internal/search"
)

// CatalogService answers browse and search queries over the static corpus.
type CatalogService struct {
	catalog *catalog.Catalog
	index   *search.Index
	logger  *logger.Logger
}

// NewCatalogService creates the catalog service.
func NewCatalogService(cat *catalog.Catalog, index *search.Index, log *logger.Logger) *CatalogService {
	return &CatalogService{catalog: cat, index: index, logger: log}
}

// BrowseOptions constrain a catalog browse.
type BrowseOptions struct {
	Genres []string
	Moods  []string
	Query  string
	Limit  int
}

// Browse filters the catalog by tags and an optional substring query.
func (s *CatalogService) Browse(opts BrowseOptions) []domain.BookRecord {
	books := s.catalog.FilterByTags(catalog.FilterOptions{
		Genres: opts.Genres,
		Moods:  opts.Moods,
		Query:  opts.Query,
		Limit:  opts.Limit,
	})
	if books == nil {
		books = []domain.BookRecord{}
	}
	return books
}

// Search runs a ranked full-text query over the indexed catalog.
func (s *CatalogService) Search(ctx context.Context, params search.Params) (*search.Result, error) {
	return s.index.Search(ctx, params)
}

// Taxonomy returns the tag vocabulary.
func (s *CatalogService) Taxonomy() domain.Taxonomy {
	return s.catalog.Taxonomy()
}

// Book returns a single catalog book by ID, or nil.
func (s *CatalogService) Book(id string) *domain.BookRecord {
	return s.catalog.BookByID(id)
}
