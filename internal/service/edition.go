package service

import (
	"context"
	"math"
	"sort"
	"strconv"
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

// sampleSideSize bounds each half of the balanced catalog sample offered
// to the backend for monthly curation.
const sampleSideSize = 50

// fallbackContexts stand in when the taxonomy defines no reading contexts.
var fallbackContexts = []string{
	"slow mornings",
	"late evenings",
	"travel days",
	"weekend afternoons",
	"quiet nights",
	"by a window",
	"with tea",
	"between meetings",
}

// whyTemplates generate deterministic shelf rationales.
var whyTemplates = []string{
	"A {mood} {genre} pick meant for unhurried sessions and quiet return.",
	"A {genre} work with a {mood} tone, best read in measured sittings.",
	"A {mood} selection that rewards slow attention and a steady ritual.",
	"A {genre} companion for a calmer pace and longer, attentive reads.",
}

// EditionService serves the hand-curated edition, deterministic genre
// shelves, and the month-cached AI edition.
type EditionService struct {
	catalog    *catalog.Catalog
	store      *store.Store
	backend    llm.Client
	logger     *logger.Logger
	classifier concierge.OriginClassifier
	minShare   float64
}

// NewEditionService creates the edition service.
func NewEditionService(cat *catalog.Catalog, st *store.Store, backend llm.Client, cfg config.ConciergeConfig, log *logger.Logger) *EditionService {
	minShare := cfg.EditionMinShare
	if minShare <= 0 {
		minShare = 0.4
	}
	return &EditionService{
		catalog:    cat,
		store:      st,
		backend:    backend,
		logger:     log,
		classifier: concierge.NewDefaultClassifier(),
		minShare:   minShare,
	}
}

// Curated returns the hand-curated monthly edition from the corpus.
func (s *EditionService) Curated() domain.Edition {
	return s.catalog.Edition()
}

// AIEdition returns this month's generated edition, serving the cached one
// when its month key matches. Regeneration requires a configured backend.
func (s *EditionService) AIEdition(ctx context.Context, readingCtx *domain.ReadingContext, now time.Time) (*domain.AIEdition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	month := domain.MonthKey(now)
	if cached, err := s.store.Editions.Get(ctx, month); err == nil {
		return cached, nil
	}

	if !s.backend.Configured() {
		return nil, domainerrors.BackendUnavailable("generative backend not configured")
	}

	indian, international := s.partitionCatalog()
	sample := make([]domain.BookRecord, 0, 2*sampleSideSize)
	sample = append(sample, headRecords(indian, sampleSideSize)...)
	sample = append(sample, headRecords(international, sampleSideSize)...)

	monthName := now.UTC().Format("January 2006")
	prompt := concierge.BuildEditionPrompt(sample, readingCtx, monthName)

	text, err := s.backend.Complete(ctx, llm.Request{
		Prompt:      prompt,
		MaxTokens:   concierge.SamplingEdition.MaxTokens,
		Temperature: concierge.SamplingEdition.Temperature,
	})
	if err != nil {
		return nil, err
	}

	parsed, err := concierge.ParseEdition(text)
	if err != nil {
		return nil, err
	}

	books := parsed.Books
	if len(books) > 20 {
		books = books[:20]
	}
	books = s.enforceOriginShare(books, indian)

	edition := &domain.AIEdition{
		Theme:       parsed.Theme,
		Description: parsed.Description,
		Books:       books,
		Month:       month,
	}

	if err := s.store.Editions.Set(ctx, month, edition); err != nil {
		s.logger.Warn("failed to cache monthly edition", "month", month, "error", err)
	}

	s.logger.Info("monthly edition generated", "month", month, "theme", edition.Theme, "books", len(edition.Books))
	return edition, nil
}

func (s *EditionService) partitionCatalog() (indian, international []domain.BookRecord) {
	for _, book := range s.catalog.Books() {
		if book.Title == "" || book.Author == "" {
			continue
		}
		if s.classifier.Matches(book.Author) {
			indian = append(indian, book)
		} else {
			international = append(international, book)
		}
	}
	return indian, international
}

// enforceOriginShare tops the selection up to the minimum matching-author
// share by swapping unselected matching catalog books in for international
// tail entries. A shortfall in the catalog itself is accepted.
func (s *EditionService) enforceOriginShare(books []domain.EditionBook, available []domain.BookRecord) []domain.EditionBook {
	if len(books) == 0 {
		return books
	}

	var matching, other []domain.EditionBook
	for _, book := range books {
		if s.classifier.Matches(book.Author) {
			matching = append(matching, book)
		} else {
			other = append(other, book)
		}
	}

	target := int(math.Ceil(float64(len(books)) * s.minShare))
	needed := target - len(matching)
	if needed <= 0 {
		return books
	}

	s.logger.Warn("edition below matching-author minimum, adjusting",
		"matching", len(matching),
		"target", target,
		"total", len(books),
	)

	selected := make(map[string]bool, len(books))
	for _, book := range books {
		selected[book.ID] = true
	}

	var additions []domain.EditionBook
	for _, book := range available {
		if len(additions) >= needed {
			break
		}
		if selected[book.ID] {
			continue
		}
		genre := "literary"
		if len(book.Genres) > 0 {
			genre = book.Genres[0]
		}
		additions = append(additions, domain.EditionBook{
			ID:                book.ID,
			Title:             book.Title,
			Author:            book.Author,
			WhyThisBook:       "A thoughtful " + genre + " work that fits the contemplative mood of the season.",
			BestContext:       "quiet reading moments",
			EstimatedSessions: 5,
			Genres:            headStrings(book.Genres, 2),
		})
	}
	if len(additions) == 0 {
		return books
	}

	keepOther := len(books) - target
	if keepOther > len(other) {
		keepOther = len(other)
	}

	out := make([]domain.EditionBook, 0, len(books))
	out = append(out, matching...)
	out = append(out, additions...)
	out = append(out, other[:keepOther]...)
	return out
}

// GenreShelf returns a deterministic seven-book shelf for a genre. The
// window into the sorted genre slice rotates monthly via a string hash, so
// the shelf is stable within a month and fresh across months.
func (s *EditionService) GenreShelf(genre string, now time.Time) []domain.EditionBook {
	genre = strings.ToLower(strings.TrimSpace(genre))
	if genre == "" || genre == "all" || s.catalog.Len() == 0 {
		return []domain.EditionBook{}
	}

	filtered := s.catalog.FilterByTags(catalog.FilterOptions{
		Genres: []string{genre},
		Limit:  200,
	})
	shelf := pickShelf(filtered, genre, now)

	books := make([]domain.EditionBook, 0, len(shelf))
	for i, book := range shelf {
		books = append(books, s.buildShelfBook(book, i))
	}
	return books
}

func pickShelf(filtered []domain.BookRecord, genre string, now time.Time) []domain.BookRecord {
	if len(filtered) == 0 {
		return nil
	}
	sorted := append([]domain.BookRecord{}, filtered...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	if len(sorted) <= domain.MaxEditionBooks {
		return sorted
	}
	offsetMax := len(sorted) - domain.MaxEditionBooks + 1
	offset := hashString(genre+"-"+domain.MonthKey(now)) % offsetMax
	return sorted[offset : offset+domain.MaxEditionBooks]
}

func (s *EditionService) buildShelfBook(book domain.BookRecord, index int) domain.EditionBook {
	genre := "literary"
	if len(book.Genres) > 0 {
		genre = book.Genres[0]
	}
	mood := "quiet"
	if len(book.Moods) > 0 {
		mood = book.Moods[0]
	}

	contexts := s.catalog.Taxonomy().Contexts
	if len(contexts) == 0 {
		contexts = fallbackContexts
	}

	idx := strconv.Itoa(index)
	readingContext := pickFrom(contexts, book.ID+"-"+idx)
	template := pickFrom(whyTemplates, book.ID+"-"+genre+"-"+idx)

	why := strings.Replace(template, "{genre}", normalizeGenre(genre), 1)
	why = strings.Replace(why, "{mood}", normalizeGenre(mood), 1)

	return domain.EditionBook{
		ID:                book.ID,
		Title:             book.Title,
		Author:            book.Author,
		WhyThisBook:       why,
		BestContext:       readingContext,
		EstimatedSessions: 3 + hashString(book.ID)%5,
		Genres:            book.Genres,
	}
}

func normalizeGenre(genre string) string {
	return strings.ReplaceAll(genre, "-", " ")
}

// hashString is a small deterministic string hash used only for stable
// shelf rotation and template picks; not for security.
func hashString(input string) int {
	var hash int32
	for _, r := range input {
		hash = (hash << 5) - hash + int32(r)
	}
	if hash < 0 {
		hash = -hash
	}
	return int(hash)
}

func pickFrom(items []string, seed string) string {
	if len(items) == 0 {
		return ""
	}
	return items[hashString(seed)%len(items)]
}

func headRecords(books []domain.BookRecord, n int) []domain.BookRecord {
	if n > len(books) {
		n = len(books)
	}
	return books[:n]
}

func headStrings(items []string, n int) []string {
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
