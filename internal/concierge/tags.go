// Package concierge implements the recommendation pipeline: deriving tags
// from free text, building candidate pools, shaping them for safety and
// representation, prompting the generative backend, parsing its output, and
// reconciling the result into a final suggestion list.
package concierge

import (
	"strings"

	"github.com/reserveapp/reserve-server/internal/domain"
)

// tagRule maps message substrings to the mood/genre tags they imply.
// Rules are evaluated independently; a message can trigger many of them
// and tags accumulate as a bag.
type tagRule struct {
	triggers []string
	moods    []string
	genres   []string
}

var tagRules = []tagRule{
	{
		// Energizing and uplifting needs. "un-stuck"/"unstuck" are listed
		// explicitly even though the "stuck" substring already covers them.
		triggers: []string{"stuck", "overwhelm", "drained", "burned", "burnout", "detach", "un-stuck", "unstuck", "energiz", "uplift", "motivat"},
		moods:    []string{"hopeful", "adventurous", "curious", "expansive"},
	},
	{
		triggers: []string{"anxious", "restless", "nervous", "worry"},
		moods:    []string{"grounded", "restorative", "gentle"},
	},
	{
		triggers: []string{"lonely", "alone", "disconnect", "isolated"},
		moods:    []string{"warm", "intimate", "tender"},
	},
	{
		triggers: []string{"grief", "loss", "sad", "heavy heart"},
		moods:    []string{"gentle", "tender", "contemplative"},
	},
	{
		triggers: []string{"joy", "delight", "happy", "uplift", "cheer"},
		moods:    []string{"hopeful", "warm", "cozy"},
	},
	{
		triggers: []string{"slow", "ground", "still", "peace", "calm", "meditat"},
		moods:    []string{"meditative", "quiet", "contemplative", "grounded"},
	},
	{
		triggers: []string{"focus", "clarity", "clear mind", "priorities", "what matters", "distract", "scattered", "attention"},
		moods:    []string{"focused", "grounded", "contemplative", "quiet"},
		genres:   []string{"philosophy", "essays"},
	},
	{
		triggers: []string{"kid", "child", "young", "family", "age appropriate"},
		moods:    []string{"warm", "hopeful", "gentle"},
		genres:   []string{"childrens", "young-adult", "middle-grade"},
	},
	{
		triggers: []string{"india", "indian", "diwali", "holi", "monsoon", "delhi", "mumbai", "bengal"},
		genres:   []string{"indian-literature", "south-asian"},
	},
	{
		triggers: []string{"light", "gentle"},
		moods:    []string{"gentle", "hopeful", "warm"},
	},
	{
		triggers: []string{"deep", "dense", "challeng", "profound"},
		moods:    []string{"contemplative", "reflective", "expansive"},
	},
	{
		triggers: []string{"comfort", "cozy"},
		moods:    []string{"cozy", "warm", "restorative"},
	},
	{
		triggers: []string{"quiet"},
		moods:    []string{"quiet"},
	},
	{
		triggers: []string{"warm"},
		moods:    []string{"warm"},
	},
	{
		triggers: []string{"adventurous", "adventure"},
		moods:    []string{"adventurous", "expansive"},
	},
	{
		triggers: []string{"travel"},
		genres:   []string{"travel"},
	},
	{
		triggers: []string{"poetry", "poem"},
		genres:   []string{"poetry"},
	},
	{
		triggers: []string{"mystery", "detective"},
		genres:   []string{"mystery"},
	},
	{
		triggers: []string{"history", "historical"},
		genres:   []string{"history", "historical"},
	},
	{
		triggers: []string{"philosophy", "stoic"},
		genres:   []string{"philosophy"},
	},
	{
		triggers: []string{"romance", "love story"},
		genres:   []string{"romance"},
	},
	{
		triggers: []string{"fantasy", "magical"},
		genres:   []string{"fantasy"},
	},
	{
		triggers: []string{"science", "sci-fi", "scifi"},
		genres:   []string{"science-fiction"},
	},
	{
		triggers: []string{"essay"},
		genres:   []string{"essays"},
	},
	{
		triggers: []string{"memoir", "autobiography"},
		genres:   []string{"memoir", "biography"},
	},
	{
		triggers: []string{"nature", "outdoors"},
		genres:   []string{"nature"},
	},
	{
		triggers: []string{"short stor"},
		genres:   []string{"short-stories"},
	},
	{
		triggers: []string{"classic"},
		genres:   []string{"classics"},
	},
	{
		triggers: []string{"literary", "literature"},
		genres:   []string{"literary"},
	},
}

// DeriveTags maps a free-text message to mood and genre tags via the fixed
// keyword rule table. Deterministic and side-effect free.
func DeriveTags(message string) domain.Tags {
	normalized := strings.ToLower(message)
	var tags domain.Tags

	for _, rule := range tagRules {
		for _, trigger := range rule.triggers {
			if strings.Contains(normalized, trigger) {
				tags.Moods = append(tags.Moods, rule.moods...)
				tags.Genres = append(tags.Genres, rule.genres...)
				break
			}
		}
	}

	return tags
}
