package concierge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reserveapp/reserve-server/internal/domain"
)

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		message string
		want    Intent
	}{
		{"a book for my commute", IntentTravel},
		{"travelling next week", IntentTravel},
		{"something light please", IntentLight},
		{"gentle reads", IntentLight},
		{"something heavy and dense", IntentHeavy},
		{"what should I read next", IntentNextBook},
		// Travel outranks light when both keywords appear.
		{"light reading for travel", IntentTravel},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyIntent(tt.message))
		})
	}
}

func TestFallbackResolvesAgainstEdition(t *testing.T) {
	edition := domain.Edition{
		Books: []domain.EditionBook{
			{ID: "e-1", Title: "Gitanjali", Author: "Rabindranath Tagore"},
		},
	}
	responses := []domain.CannedResponse{
		{
			Intent: "next_book",
			Title:  "A few quiet suggestions",
			Suggestions: []domain.CannedSuggestion{
				{BookID: "e-1", Rationale: "poems for the evening"},
				{BookID: "e-gone", Rationale: "this one left the edition"},
			},
		},
	}

	result := Fallback("what next", responses, edition)

	assert.Equal(t, "A few quiet suggestions", result.Title)
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "Gitanjali", result.Suggestions[0].Title)
	assert.Equal(t, "poems for the evening", result.Suggestions[0].Rationale)
}

func TestFallbackUnknownIntentUsesFirstResponse(t *testing.T) {
	edition := domain.Edition{
		Books: []domain.EditionBook{{ID: "e-1", Title: "Walden", Author: "Henry David Thoreau"}},
	}
	responses := []domain.CannedResponse{
		{Intent: "travel", Title: "For the road", Suggestions: []domain.CannedSuggestion{{BookID: "e-1", Rationale: "r"}}},
	}

	result := Fallback("what should I read next", responses, edition)
	assert.Equal(t, "For the road", result.Title)
}

func TestFallbackNoResponses(t *testing.T) {
	result := Fallback("anything", nil, domain.Edition{})
	assert.Equal(t, "A few quiet suggestions", result.Title)
	assert.Empty(t, result.Suggestions)
	assert.NotNil(t, result.Suggestions)
}
