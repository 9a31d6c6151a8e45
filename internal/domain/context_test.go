package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDetectHemisphere(t *testing.T) {
	assert.Equal(t, HemisphereSouth, DetectHemisphere("Sydney, Australia"))
	assert.Equal(t, HemisphereSouth, DetectHemisphere("Buenos Aires, ARGENTINA"))
	assert.Equal(t, HemisphereNorth, DetectHemisphere("Mumbai"))
	assert.Equal(t, HemisphereNorth, DetectHemisphere(""))
}

func TestSeasonAt(t *testing.T) {
	tests := []struct {
		month      time.Month
		hemisphere Hemisphere
		want       Season
	}{
		{time.January, HemisphereNorth, SeasonWinter},
		{time.April, HemisphereNorth, SeasonSpring},
		{time.July, HemisphereNorth, SeasonSummer},
		{time.October, HemisphereNorth, SeasonFall},
		{time.December, HemisphereNorth, SeasonWinter},
		{time.January, HemisphereSouth, SeasonSummer},
		{time.April, HemisphereSouth, SeasonFall},
		{time.July, HemisphereSouth, SeasonWinter},
		{time.October, HemisphereSouth, SeasonSpring},
	}

	for _, tt := range tests {
		at := time.Date(2026, tt.month, 15, 12, 0, 0, 0, time.UTC)
		assert.Equal(t, tt.want, SeasonAt(at, tt.hemisphere), "%s %s", tt.month, tt.hemisphere)
	}
}

func TestTimeOfDayAt(t *testing.T) {
	tests := []struct {
		hour int
		want TimeOfDay
	}{
		{5, TimeEarlyMorning},
		{9, TimeMorning},
		{13, TimeAfternoon},
		{18, TimeEvening},
		{22, TimeNight},
		{2, TimeLateNight},
	}

	for _, tt := range tests {
		at := time.Date(2026, time.March, 10, tt.hour, 0, 0, 0, time.UTC)
		assert.Equal(t, tt.want, TimeOfDayAt(at), "hour %d", tt.hour)
	}
}

func TestReadingMoodWeatherWins(t *testing.T) {
	mood := ReadingMoodFor(&Weather{Condition: "Rain"}, SeasonSummer, TimeAfternoon)
	assert.Equal(t, "Cozy, introspective", mood)

	// Warm clear days read differently from cool ones.
	assert.Equal(t, "Light, breezy", ReadingMoodFor(&Weather{Condition: "Clear", Temp: 30}, SeasonSummer, TimeMorning))
	assert.Equal(t, "Bright, energizing", ReadingMoodFor(&Weather{Condition: "Clear", Temp: 15}, SeasonSummer, TimeMorning))
}

func TestReadingMoodSeasonFallback(t *testing.T) {
	assert.Equal(t, "Cozy, intimate", ReadingMoodFor(nil, SeasonWinter, TimeEvening))
	assert.Equal(t, "Contemplative, grounded", ReadingMoodFor(nil, SeasonWinter, TimeMorning))
	assert.Equal(t, "Fresh, hopeful", ReadingMoodFor(nil, SeasonSpring, TimeMorning))
}

func TestNewReadingContextDegradesWithoutWeather(t *testing.T) {
	at := time.Date(2026, time.September, 1, 21, 30, 0, 0, time.UTC)
	ctx := NewReadingContext("Mumbai", nil, at)

	assert.Equal(t, "Mumbai", ctx.Location)
	assert.Nil(t, ctx.Weather)
	assert.Equal(t, SeasonFall, ctx.Season)
	assert.Equal(t, TimeNight, ctx.TimeOfDay)
	assert.NotEmpty(t, ctx.ReadingMood)
}

func TestDescribe(t *testing.T) {
	ctx := ReadingContext{
		Location:  "Pune",
		Weather:   &Weather{Condition: "Drizzle"},
		TimeOfDay: TimeEvening,
	}
	assert.Equal(t, "drizzle evening in Pune", ctx.Describe())

	bare := ReadingContext{TimeOfDay: TimeMorning}
	assert.Equal(t, "morning", bare.Describe())
}
