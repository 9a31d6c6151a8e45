// Package catalog loads the static book corpus and answers tag queries over it.
//
// The corpus is read once at startup from four JSON files (books, taxonomy,
// the curated edition, and canned concierge responses) and is immutable for
// the life of the process.
package catalog

import (
	"encoding/json/v2"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/reserveapp/reserve-server/internal/domain"
)

// Corpus file names expected under the data path.
const (
	booksFile     = "books.json"
	taxonomyFile  = "taxonomy.json"
	editionFile   = "edition.json"
	responsesFile = "concierge-responses.json"
)

// Catalog is the read-only book corpus.
type Catalog struct {
	books     []domain.BookRecord
	taxonomy  domain.Taxonomy
	edition   domain.Edition
	responses []domain.CannedResponse
}

// Load reads the corpus from dataPath. A missing books or responses file is
// an error; the edition file may be absent, leaving an empty edition.
func Load(dataPath string) (*Catalog, error) {
	c := &Catalog{}

	if err := readJSONFile(filepath.Join(dataPath, booksFile), &c.books); err != nil {
		return nil, fmt.Errorf("load books: %w", err)
	}
	if err := readJSONFile(filepath.Join(dataPath, taxonomyFile), &c.taxonomy); err != nil {
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}

	if err := readJSONFile(filepath.Join(dataPath, editionFile), &c.edition); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load edition: %w", err)
		}
	}
	c.edition = c.edition.Clamp()

	var wrapper struct {
		Responses []domain.CannedResponse `json:"responses"`
	}
	if err := readJSONFile(filepath.Join(dataPath, responsesFile), &wrapper); err != nil {
		return nil, fmt.Errorf("load concierge responses: %w", err)
	}
	c.responses = wrapper.Responses

	return c, nil
}

// New builds a catalog directly from in-memory data. Used by tests and by
// callers that assemble a corpus without the data directory.
func New(books []domain.BookRecord, taxonomy domain.Taxonomy, edition domain.Edition, responses []domain.CannedResponse) *Catalog {
	return &Catalog{
		books:     books,
		taxonomy:  taxonomy,
		edition:   edition.Clamp(),
		responses: responses,
	}
}

func readJSONFile(path string, v any) error {
	f, err := os.Open(path) //#nosec G304 -- Corpus path comes from server config
	if err != nil {
		return err
	}
	defer f.Close()
	return json.UnmarshalRead(f, v)
}

// Books returns the full catalog in load order.
func (c *Catalog) Books() []domain.BookRecord {
	return c.books
}

// Len returns the catalog size.
func (c *Catalog) Len() int {
	return len(c.books)
}

// Taxonomy returns the tag vocabulary.
func (c *Catalog) Taxonomy() domain.Taxonomy {
	return c.taxonomy
}

// Edition returns the curated monthly edition, capped at its maximum size.
func (c *Catalog) Edition() domain.Edition {
	return c.edition
}

// Responses returns the canned concierge fallback responses.
func (c *Catalog) Responses() []domain.CannedResponse {
	return c.responses
}

// BookByID finds a catalog book by ID, or nil.
func (c *Catalog) BookByID(id string) *domain.BookRecord {
	for i := range c.books {
		if c.books[i].ID == id {
			return &c.books[i]
		}
	}
	return nil
}

// FilterOptions constrain a tag query.
type FilterOptions struct {
	Genres []string
	Moods  []string
	Query  string
	Limit  int
}

// FilterByTags returns catalog books matching the options. Genre and mood
// lists use any-overlap semantics; the query is a substring match over
// title, author, description, and subjects. Limit defaults to 50.
func (c *Catalog) FilterByTags(opts FilterOptions) []domain.BookRecord {
	if len(c.books) == 0 {
		return nil
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	query := strings.ToLower(strings.TrimSpace(opts.Query))

	var out []domain.BookRecord
	for _, book := range c.books {
		if len(opts.Genres) > 0 && !anyOverlap(opts.Genres, book.Genres) {
			continue
		}
		if len(opts.Moods) > 0 && !anyOverlap(opts.Moods, book.Moods) {
			continue
		}
		if query != "" {
			haystack := strings.ToLower(book.Title + " " + book.Author + " " + book.Description + " " + strings.Join(book.Subjects, " "))
			if !strings.Contains(haystack, query) {
				continue
			}
		}
		out = append(out, book)
		if len(out) >= limit {
			break
		}
	}
	return out
}

// FilterAnyTag returns catalog books sharing at least one mood or at least
// one genre with the derived tags, in storage order, up to limit. Books with
// no overlap at all are excluded; there is no relevance ranking.
func (c *Catalog) FilterAnyTag(tags domain.Tags, limit int) []domain.BookRecord {
	if tags.IsEmpty() || len(c.books) == 0 {
		return nil
	}
	if limit <= 0 {
		limit = 50
	}

	var out []domain.BookRecord
	for _, book := range c.books {
		if anyOverlap(tags.Moods, book.Moods) || anyOverlap(tags.Genres, book.Genres) {
			out = append(out, book)
			if len(out) >= limit {
				break
			}
		}
	}
	return out
}

// Prefix returns the first n catalog books.
func (c *Catalog) Prefix(n int) []domain.BookRecord {
	if n > len(c.books) {
		n = len(c.books)
	}
	return c.books[:n]
}

func anyOverlap(wanted, have []string) bool {
	for _, w := range wanted {
		for _, h := range have {
			if w == h {
				return true
			}
		}
	}
	return false
}
