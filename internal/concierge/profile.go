package concierge

import (
	"regexp"
	"strconv"
	"strings"
)

// OriginRequirement expresses how the representation target applies to a
// request.
type OriginRequirement string

// Origin requirements.
const (
	// OriginBalanced is the default: aim for roughly half matching-origin
	// authors in both the pool and the final list.
	OriginBalanced OriginRequirement = "balanced"
	// OriginRequired means the client explicitly asked for matching-origin
	// authors only.
	OriginRequired OriginRequirement = "required"
	// OriginNone means the client explicitly asked for non-matching
	// authors; no balancing is applied and matching shaping is skipped.
	OriginNone OriginRequirement = "none"
)

// Profile captures everything the pipeline derives from the raw message
// before touching the catalog.
type Profile struct {
	Message string
	// ChildSafety is true for children's or age-bounded requests.
	ChildSafety bool
	// AgeHint is the requested reader age, or 0 when unspecified.
	AgeHint int
	// Discovery is true when the request should bypass the catalog and
	// ask the backend to recommend from world knowledge.
	Discovery bool
	// Origin is the representation requirement for this request.
	Origin OriginRequirement
}

var agePattern = regexp.MustCompile(`(\d+)[\s-]?year[\s-]?old`)

// childTriggers mark a request as a child-safety context.
var childTriggers = []string{"kid", "child", "young", "family", "age appropriate"}

// discoveryTriggers route a request into discovery mode on top of the
// child-safety triggers: educational intents and specialized topics the
// catalog rarely covers.
var discoveryTriggers = []string{
	"teach",
	"learn about",
	"explain",
	"finance",
	"money",
	"science",
	"feminism",
	"feminist",
	"history of",
}

// nonOriginPhrases signal the client explicitly wants non-matching authors.
var nonOriginPhrases = []string{
	"western author",
	"american author",
	"british author",
	"european author",
	"non-indian",
}

// originPhrases signal the client explicitly wants matching authors only.
var originPhrases = []string{
	"indian author",
	"indian woman author",
	"indian women author",
	"indian writer",
	"by indian",
	"from india",
}

// AnalyzeMessage derives the request profile from the raw message.
// Pure and deterministic; the message is expected to be trimmed and
// non-empty by the caller.
func AnalyzeMessage(message string) Profile {
	lower := strings.ToLower(message)

	profile := Profile{
		Message: message,
		Origin:  OriginBalanced,
	}

	if m := agePattern.FindStringSubmatch(lower); m != nil {
		if age, err := strconv.Atoi(m[1]); err == nil {
			profile.AgeHint = age
		}
	}

	profile.ChildSafety = containsAny(lower, childTriggers) ||
		(profile.AgeHint > 0 && profile.AgeHint <= 12)

	profile.Discovery = profile.ChildSafety || containsAny(lower, discoveryTriggers)

	// Explicit exclusion wins over explicit inclusion; both phrasings
	// together is contradictory and the non-matching request reads as
	// the stronger signal.
	switch {
	case containsAny(lower, nonOriginPhrases):
		profile.Origin = OriginNone
	case containsAny(lower, originPhrases):
		profile.Origin = OriginRequired
	}

	return profile
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}
