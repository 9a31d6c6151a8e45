package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrentContextWithoutWeatherClient(t *testing.T) {
	svc := NewContextService(nil, testLogger())

	got := svc.Current(context.Background(), "Mumbai")
	assert.Equal(t, "Mumbai", got.Location)
	assert.Nil(t, got.Weather)
	assert.NotEmpty(t, got.Season)
	assert.NotEmpty(t, got.TimeOfDay)
	assert.NotEmpty(t, got.ReadingMood)
}

func TestCurrentContextEmptyLocation(t *testing.T) {
	svc := NewContextService(nil, testLogger())

	got := svc.Current(context.Background(), "")
	assert.Empty(t, got.Location)
	assert.NotEmpty(t, got.ReadingMood)
}
