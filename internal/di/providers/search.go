package providers

import (
	"github.com/samber/do/v2"

	"github.com/reserveapp/reserve-server/internal/catalog"
	"github.com/reserveapp/reserve-server/internal/logger"
	"github.com/reserveapp/reserve-server/internal/search"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.Index
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the Bleve search index built from the catalog.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cat := do.MustInvoke[*catalog.Catalog](i)
	log := do.MustInvoke[*logger.Logger](i)

	index, err := search.NewIndex(cat.Books(), log)
	if err != nil {
		return nil, err
	}

	docCount, _ := index.DocumentCount()
	log.Info("Search index initialized", "documents", docCount)

	return &SearchIndexHandle{Index: index}, nil
}
