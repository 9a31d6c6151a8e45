package concierge

import (
	"regexp"
	"strings"

	"github.com/reserveapp/reserve-server/internal/domain"
	"github.com/reserveapp/reserve-server/internal/slug"
)

// OriginClassifier decides whether an author belongs to the designated
// origin category for representation purposes.
type OriginClassifier interface {
	Matches(author string) bool
}

// DefaultOriginNames is the built-in author name list for the designated
// origin category (Indian authors, matching the corpus the catalog was
// built for).
var DefaultOriginNames = []string{
	// Classic authors
	"r.k. narayan", "r k narayan", "ruskin bond", "amitav ghosh",
	"arundhati roy", "jhumpa lahiri", "vikram seth", "anita desai",
	"salman rushdie", "rohinton mistry", "kiran desai", "aravind adiga",
	"shashi tharoor", "premchand", "tagore", "rabindranath tagore",
	"mulk raj anand", "r.k. laxman",
	// Contemporary authors
	"chetan bhagat", "amish tripathi", "devdutt pattanaik",
	"sudha murty", "manu s pillai", "shobhaa de", "anuja chauhan",
	"anuradha roy", "manju kapur", "bharati mukherjee",
	// Regional authors
	"vaikom muhammad basheer", "kamala das", "o.v. vijayan",
	"mahasweta devi", "nirmal verma", "u.r. ananthamurthy",
	"girish karnad", "shyam selvadurai", "nayantara sahgal",
	// Ancient and classical authors
	"valmiki", "vālmīki", "vatsyayana", "vātsyāyana", "kalidasa", "kālidāsa",
	// Historians and non-fiction
	"jawaharlal nehru", "ramachandra guha", "amartya sen", "khushwant singh",
	// Women authors
	"shashi deshpande", "bama", "nabaneeta dev sen", "ambai", "ismat chughtai",
	"abul kalam azad",
}

// originTitleMarkers flag books about the origin region by title even when
// the author is not on the name list.
var originTitleMarkers = []string{
	"india", "delhi", "mumbai", "bengal",
	"malgudi", "calcutta", "kolkata", "chennai",
}

// NameListClassifier matches authors against a fixed name list with
// word-boundary, diacritic-insensitive matching. Word boundaries prevent a
// short name matching inside an unrelated longer one ("Bama" must not match
// "Barack Obama").
type NameListClassifier struct {
	patterns []*regexp.Regexp
}

// NewNameListClassifier compiles a classifier from author names.
func NewNameListClassifier(names []string) *NameListClassifier {
	patterns := make([]*regexp.Regexp, 0, len(names))
	for _, name := range names {
		folded := slug.Fold(name)
		patterns = append(patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(folded)+`\b`))
	}
	return &NameListClassifier{patterns: patterns}
}

// NewDefaultClassifier builds the classifier over DefaultOriginNames.
func NewDefaultClassifier() *NameListClassifier {
	return NewNameListClassifier(DefaultOriginNames)
}

// Matches reports whether the author matches any name on the list.
func (c *NameListClassifier) Matches(author string) bool {
	folded := slug.Fold(author)
	for _, pattern := range c.patterns {
		if pattern.MatchString(folded) {
			return true
		}
	}
	return false
}

// titleSuggestsOrigin reports whether a book title references the origin
// region. Used only for pool partitioning, never for final-list
// enforcement, which goes by author.
func titleSuggestsOrigin(title string) bool {
	lower := strings.ToLower(title)
	for _, marker := range originTitleMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// PoolShaper applies the soft representation constraint to a candidate
// pool before it is offered to the generative backend. Hard enforcement on
// the final list happens in the reconciler.
type PoolShaper struct {
	classifier OriginClassifier
	// minMatches is the minimum matching-author count sought in a
	// balanced pool before interleaving.
	minMatches int
	// minTotal is the floor for the interleaved pool size.
	minTotal int
}

// NewPoolShaper creates a shaper. minMatches defaults to 20 and minTotal
// to 40 when non-positive.
func NewPoolShaper(classifier OriginClassifier, minMatches int) *PoolShaper {
	if minMatches <= 0 {
		minMatches = 20
	}
	return &PoolShaper{
		classifier: classifier,
		minMatches: minMatches,
		minTotal:   40,
	}
}

// Shape reorders and reslices the pool to satisfy the soft constraint.
// OriginNone returns the pool untouched; OriginRequired keeps only the
// matching partition; OriginBalanced interleaves half matching and half
// other, expanding the matching side from the expansion slice if needed.
// The expansion slice must carry the same exclusion and safety filters as
// the pool, or filtered books leak back in through the expansion.
func (s *PoolShaper) Shape(pool, expansion []domain.BookRecord, req OriginRequirement) []domain.BookRecord {
	if req == OriginNone {
		return pool
	}

	var matching, other []domain.BookRecord
	for _, book := range pool {
		if s.classifier.Matches(book.Author) || titleSuggestsOrigin(book.Title) {
			matching = append(matching, book)
		} else {
			other = append(other, book)
		}
	}

	if req == OriginRequired {
		return matching
	}

	// Balanced: expand the matching partition when the tag-filtered pool
	// holds too few, then interleave half and half.
	if len(matching) < s.minMatches {
		seen := make(map[string]bool, len(matching))
		for _, book := range matching {
			seen[book.ID] = true
		}
		for _, book := range expansion {
			if len(matching) >= s.minMatches {
				break
			}
			if seen[book.ID] || !s.classifier.Matches(book.Author) {
				continue
			}
			matching = append(matching, book)
			seen[book.ID] = true
		}
	}

	total := len(pool)
	if total < s.minTotal {
		total = s.minTotal
	}
	half := total / 2

	shaped := make([]domain.BookRecord, 0, total)
	shaped = append(shaped, head(matching, half)...)
	shaped = append(shaped, head(other, half)...)
	return shaped
}

func head(books []domain.BookRecord, n int) []domain.BookRecord {
	if n > len(books) {
		n = len(books)
	}
	return books[:n]
}
