package concierge

import (
	"strings"

	"github.com/reserveapp/reserve-server/internal/catalog"
	"github.com/reserveapp/reserve-server/internal/domain"
)

// Mode selects the candidate pool source.
type Mode string

// Pool modes.
const (
	ModeEdition Mode = "edition"
	ModeCatalog Mode = "catalog"
	ModeBlend   Mode = "blend"
)

// maxPoolSize is the hard bound on any candidate pool.
const maxPoolSize = 200

// PoolBuilder assembles request-scoped candidate pools from the catalog
// and the curated edition.
type PoolBuilder struct {
	catalog *catalog.Catalog

	mode             Mode
	catalogLimit     int
	rawFallbackLimit int
	blendLimit       int
}

// PoolLimits bound the catalog slices feeding a pool. Zero values fall
// back to the defaults (120, 40, 60).
type PoolLimits struct {
	CatalogLimit     int
	RawFallbackLimit int
	BlendLimit       int
}

// NewPoolBuilder creates a builder for the given mode.
func NewPoolBuilder(cat *catalog.Catalog, mode Mode, limits PoolLimits) *PoolBuilder {
	if limits.CatalogLimit <= 0 {
		limits.CatalogLimit = 120
	}
	if limits.RawFallbackLimit <= 0 {
		limits.RawFallbackLimit = 40
	}
	if limits.BlendLimit <= 0 {
		limits.BlendLimit = 60
	}
	return &PoolBuilder{
		catalog:          cat,
		mode:             mode,
		catalogLimit:     limits.CatalogLimit,
		rawFallbackLimit: limits.RawFallbackLimit,
		blendLimit:       limits.BlendLimit,
	}
}

// Build assembles the pool for a message. The result is deduplicated by ID
// and never exceeds maxPoolSize. An empty result means catalog and edition
// are both empty; callers propagate that as an empty suggestion list.
func (b *PoolBuilder) Build(message string) []domain.BookRecord {
	tags := DeriveTags(message)

	switch b.mode {
	case ModeEdition:
		return dedupe(b.editionCandidates())

	case ModeCatalog:
		filtered := b.catalog.FilterAnyTag(tags, b.catalogLimit)
		if len(filtered) > 0 {
			return dedupe(filtered)
		}
		if b.catalog.Len() > 0 {
			return dedupe(b.catalog.Prefix(b.rawFallbackLimit))
		}
		return dedupe(b.editionCandidates())

	default:
		// Blend: catalog entries lead, edition entries are appended after
		// them. Leading with the catalog gives more variety than always
		// starting with the same small edition.
		catalogBooks := b.catalog.FilterAnyTag(tags, b.blendLimit)
		if len(catalogBooks) == 0 {
			catalogBooks = b.catalog.Prefix(b.blendLimit)
		}
		blend := make([]domain.BookRecord, 0, len(catalogBooks)+domain.MaxEditionBooks)
		blend = append(blend, catalogBooks...)
		blend = append(blend, b.editionCandidates()...)
		if len(blend) == 0 {
			return nil
		}
		return dedupe(blend)
	}
}

// editionCandidates maps edition books into BookRecord shape. Edition
// entries are not tag-indexed, so genres and moods stay empty and the
// narrative why_this_book doubles as the description.
func (b *PoolBuilder) editionCandidates() []domain.BookRecord {
	edition := b.catalog.Edition()
	records := make([]domain.BookRecord, 0, len(edition.Books))
	for _, book := range edition.Books {
		records = append(records, domain.BookRecord{
			ID:             book.ID,
			Title:          book.Title,
			Author:         book.Author,
			Genres:         []string{},
			Moods:          []string{},
			Subjects:       []string{},
			Description:    book.WhyThisBook,
			Source:         "openlibrary",
			OpenLibraryKey: book.ID,
		})
	}
	return records
}

func dedupe(pool []domain.BookRecord) []domain.BookRecord {
	seen := make(map[string]bool, len(pool))
	out := pool[:0:0]
	for _, book := range pool {
		if seen[book.ID] {
			continue
		}
		seen[book.ID] = true
		out = append(out, book)
		if len(out) >= maxPoolSize {
			break
		}
	}
	return out
}

// ApplyExclusions removes excluded IDs from the pool.
func ApplyExclusions(pool []domain.BookRecord, excludeIDs []string) []domain.BookRecord {
	if len(excludeIDs) == 0 {
		return pool
	}
	excluded := make(map[string]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}
	out := pool[:0:0]
	for _, book := range pool {
		if !excluded[book.ID] {
			out = append(out, book)
		}
	}
	return out
}

// unsafeKeywords disqualify a book from any child-safety context when they
// appear in its combined title, author, and description text.
var unsafeKeywords = []string{
	// Adult content
	"kama sutra", "kamasutra", "erotic", "adult", "mature", "explicit", "sex",
	// Academic and advanced texts
	"anthology", "essays", "grammar", "philosophy", "critique", "theory",
	"norton", "oxford companion", "encyclopedia", "dictionary", "handbook",
	"montaigne", "nietzsche", "kafka", "joyce", "woolf",
	// Demanding literary works
	"ulysses", "finnegans wake", "being and time", "capital",
}

// FilterChildSafe removes books unsuitable for a child-safety context.
// For readers under 8 it additionally drops titles that look like
// multi-volume academic works.
func FilterChildSafe(pool []domain.BookRecord, ageHint int) []domain.BookRecord {
	out := pool[:0:0]
	for _, book := range pool {
		combined := strings.ToLower(book.Title + " " + book.Author + " " + book.Description)
		if containsAny(combined, unsafeKeywords) {
			continue
		}
		if ageHint > 0 && ageHint < 8 {
			title := strings.ToLower(book.Title)
			if strings.Contains(title, "volume") || strings.Contains(title, "part i") {
				continue
			}
		}
		out = append(out, book)
	}
	return out
}
