package service

import (
	"context"
	"time"

	"github.com/reserveapp/reserve-server/internal/domain"
	"github.com/reserveapp/reserve-server/internal/logger"
	"github.com/reserveapp/reserve-server/internal/weather"
)

// ContextService assembles the reading context used to color prompts and
// shown to the client directly.
type ContextService struct {
	weather *weather.Client
	logger  *logger.Logger
}

// NewContextService creates the context service.
func NewContextService(weatherClient *weather.Client, log *logger.Logger) *ContextService {
	return &ContextService{weather: weatherClient, logger: log}
}

// Current builds the reading context for a location at the current time.
// Weather lookup failures degrade to a weatherless context; season and
// time-of-day signals are always present.
func (s *ContextService) Current(ctx context.Context, location string) domain.ReadingContext {
	var conditions *domain.Weather

	if location != "" && s.weather != nil && s.weather.Configured() {
		w, err := s.weather.Current(ctx, location)
		if err != nil {
			s.logger.Warn("weather lookup failed, continuing without it", "location", location, "error", err)
		} else {
			conditions = w
		}
	}

	return domain.NewReadingContext(location, conditions, time.Now())
}
