package domain

import (
	"strings"
	"time"
)

// Season names follow the display convention of the client.
type Season string

// Seasons.
const (
	SeasonWinter Season = "Winter"
	SeasonSpring Season = "Spring"
	SeasonSummer Season = "Summer"
	SeasonFall   Season = "Fall"
)

// TimeOfDay buckets a clock hour into a reading-relevant band.
type TimeOfDay string

// Time-of-day bands.
const (
	TimeEarlyMorning TimeOfDay = "Early Morning"
	TimeMorning      TimeOfDay = "Morning"
	TimeAfternoon    TimeOfDay = "Afternoon"
	TimeEvening      TimeOfDay = "Evening"
	TimeNight        TimeOfDay = "Night"
	TimeLateNight    TimeOfDay = "Late Night"
)

// Hemisphere selects the season mapping.
type Hemisphere string

// Hemispheres.
const (
	HemisphereNorth Hemisphere = "north"
	HemisphereSouth Hemisphere = "south"
)

// Weather is a snapshot of current conditions at the reader's location.
type Weather struct {
	Condition   string `json:"condition"`
	Temp        int    `json:"temp"`
	Description string `json:"description"`
}

// ReadingContext captures location, weather, and time signals used to
// color recommendations.
type ReadingContext struct {
	Location    string    `json:"location,omitempty"`
	Weather     *Weather  `json:"weather,omitempty"`
	Season      Season    `json:"season"`
	TimeOfDay   TimeOfDay `json:"timeOfDay"`
	ReadingMood string    `json:"readingMood"`
}

// southernCountries are location substrings that flip the season mapping.
var southernCountries = []string{
	"australia",
	"new zealand",
	"argentina",
	"chile",
	"south africa",
	"brazil",
	"uruguay",
	"paraguay",
	"bolivia",
	"peru",
}

// DetectHemisphere infers a hemisphere from a free-text location.
// Defaults to north when no southern indicator matches.
func DetectHemisphere(location string) Hemisphere {
	lower := strings.ToLower(location)
	for _, country := range southernCountries {
		if strings.Contains(lower, country) {
			return HemisphereSouth
		}
	}
	return HemisphereNorth
}

// SeasonAt maps a date to a season for the given hemisphere.
func SeasonAt(t time.Time, hemisphere Hemisphere) Season {
	month := int(t.Month()) // 1-12

	if hemisphere == HemisphereSouth {
		switch {
		case month >= 6 && month <= 8:
			return SeasonWinter
		case month >= 9 && month <= 11:
			return SeasonSpring
		case month == 12 || month <= 2:
			return SeasonSummer
		default:
			return SeasonFall
		}
	}

	switch {
	case month == 12 || month <= 2:
		return SeasonWinter
	case month >= 3 && month <= 5:
		return SeasonSpring
	case month >= 6 && month <= 8:
		return SeasonSummer
	default:
		return SeasonFall
	}
}

// TimeOfDayAt buckets the hour of the given time.
func TimeOfDayAt(t time.Time) TimeOfDay {
	hour := t.Hour()
	switch {
	case hour >= 4 && hour < 7:
		return TimeEarlyMorning
	case hour >= 7 && hour < 12:
		return TimeMorning
	case hour >= 12 && hour < 17:
		return TimeAfternoon
	case hour >= 17 && hour < 21:
		return TimeEvening
	case hour >= 21:
		return TimeNight
	default:
		return TimeLateNight
	}
}

// ReadingMoodFor derives a short mood phrase from weather first, then
// season and time of day, then time alone.
func ReadingMoodFor(weather *Weather, season Season, timeOfDay TimeOfDay) string {
	if weather != nil {
		condition := strings.ToLower(weather.Condition)
		switch {
		case strings.Contains(condition, "rain") || strings.Contains(condition, "drizzle"):
			return "Cozy, introspective"
		case strings.Contains(condition, "snow"):
			return "Quiet, contemplative"
		case strings.Contains(condition, "storm") || strings.Contains(condition, "thunder"):
			return "Atmospheric, immersive"
		case strings.Contains(condition, "cloud") || strings.Contains(condition, "overcast"):
			return "Gentle, reflective"
		case strings.Contains(condition, "clear") || strings.Contains(condition, "sun"):
			if weather.Temp > 24 {
				return "Light, breezy"
			}
			return "Bright, energizing"
		}
	}

	switch season {
	case SeasonWinter:
		if timeOfDay == TimeEvening || timeOfDay == TimeNight {
			return "Cozy, intimate"
		}
		return "Contemplative, grounded"
	case SeasonSummer:
		if timeOfDay == TimeAfternoon {
			return "Light, leisurely"
		}
		return "Expansive, adventurous"
	case SeasonFall:
		return "Reflective, transitional"
	case SeasonSpring:
		return "Fresh, hopeful"
	}

	switch timeOfDay {
	case TimeEarlyMorning:
		return "Quiet, contemplative"
	case TimeMorning:
		return "Fresh, energizing"
	case TimeAfternoon:
		return "Light, leisurely"
	case TimeEvening:
		return "Gentle, winding down"
	case TimeNight:
		return "Intimate, reflective"
	default:
		return "Quiet, restful"
	}
}

// NewReadingContext assembles a full context for a location at a time.
// Weather may be nil; the context degrades to season and time signals.
func NewReadingContext(location string, weather *Weather, now time.Time) ReadingContext {
	hemisphere := HemisphereNorth
	if location != "" {
		hemisphere = DetectHemisphere(location)
	}
	season := SeasonAt(now, hemisphere)
	timeOfDay := TimeOfDayAt(now)

	return ReadingContext{
		Location:    location,
		Weather:     weather,
		Season:      season,
		TimeOfDay:   timeOfDay,
		ReadingMood: ReadingMoodFor(weather, season, timeOfDay),
	}
}

// Describe renders a short human-readable context line.
func (c ReadingContext) Describe() string {
	parts := make([]string, 0, 3)
	if c.Weather != nil {
		parts = append(parts, strings.ToLower(c.Weather.Condition))
	}
	parts = append(parts, strings.ToLower(string(c.TimeOfDay)))
	if c.Location != "" {
		parts = append(parts, "in "+c.Location)
	}
	return strings.Join(parts, " ")
}
