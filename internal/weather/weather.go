// Package weather fetches current conditions from OpenWeatherMap: a
// geocoding lookup to resolve a free-text location, then a current-weather
// call for the coordinates.
package weather

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/reserveapp/reserve-server/internal/domain"
	"github.com/reserveapp/reserve-server/internal/logger"
	"github.com/reserveapp/reserve-server/internal/ratelimit"
)

const (
	geocodePath = "/geo/1.0/direct"
	weatherPath = "/data/2.5/weather"

	defaultBurst   = 3
	defaultTimeout = 10 * time.Second
)

// Config configures the weather client.
type Config struct {
	APIKey            string
	BaseURL           string
	Timeout           time.Duration
	RequestsPerMinute int
}

// Client is a rate-limited OpenWeatherMap client. Every failure path
// returns a nil Weather and an error; callers degrade to a weatherless
// reading context.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *ratelimit.KeyedRateLimiter
	logger  *logger.Logger
}

// New creates the client. An empty API key is allowed; Current then
// reports an error without making a request.
func New(cfg Config, log *logger.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openweathermap.org"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 30
	}
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: ratelimit.New(float64(rpm)/60.0, defaultBurst),
		logger:  log,
	}
}

// Close releases resources held by the client.
func (c *Client) Close() {
	c.limiter.Stop()
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.cfg.APIKey != ""
}

type geocodeEntry struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type weatherResponse struct {
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
}

// Current resolves a location and returns its current conditions in
// Celsius.
func (c *Client) Current(ctx context.Context, location string) (*domain.Weather, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("weather client not configured")
	}

	var geo []geocodeEntry
	geoQuery := url.Values{
		"q":     {location},
		"limit": {"1"},
		"appid": {c.cfg.APIKey},
	}
	if err := c.get(ctx, geocodePath, geoQuery, &geo); err != nil {
		return nil, fmt.Errorf("geocode %q: %w", location, err)
	}
	if len(geo) == 0 {
		return nil, fmt.Errorf("geocode %q: no results", location)
	}

	var conditions weatherResponse
	weatherQuery := url.Values{
		"lat":   {fmt.Sprintf("%f", geo[0].Lat)},
		"lon":   {fmt.Sprintf("%f", geo[0].Lon)},
		"units": {"metric"},
		"appid": {c.cfg.APIKey},
	}
	if err := c.get(ctx, weatherPath, weatherQuery, &conditions); err != nil {
		return nil, fmt.Errorf("current weather: %w", err)
	}
	if len(conditions.Weather) == 0 {
		return nil, fmt.Errorf("current weather: empty conditions")
	}

	return &domain.Weather{
		Condition:   conditions.Weather[0].Main,
		Temp:        int(math.Round(conditions.Main.Temp)),
		Description: conditions.Weather[0].Description,
	}, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, v any) error {
	if err := c.limiter.Wait(ctx, "openweathermap"); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.Unmarshal(body, v)
}
