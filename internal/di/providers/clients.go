package providers

import (
	"github.com/samber/do/v2"

	"github.com/reserveapp/reserve-server/internal/config"
	"github.com/reserveapp/reserve-server/internal/llm"
	"github.com/reserveapp/reserve-server/internal/logger"
	"github.com/reserveapp/reserve-server/internal/weather"
)

// AnthropicClientHandle wraps the generative backend client with Shutdownable.
type AnthropicClientHandle struct {
	*llm.Anthropic
}

// Shutdown implements do.Shutdownable.
func (h *AnthropicClientHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideAnthropicClient provides the Anthropic messages-API client. The
// client is created even without an API key so dependent services can
// degrade to fallback behavior.
func ProvideAnthropicClient(i do.Injector) (*AnthropicClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := llm.NewAnthropic(llm.AnthropicConfig{
		APIKey:            cfg.Anthropic.APIKey,
		Model:             cfg.Anthropic.Model,
		BaseURL:           cfg.Anthropic.BaseURL,
		Timeout:           cfg.Anthropic.Timeout,
		RequestsPerMinute: cfg.Anthropic.RequestsPerMinute,
	}, log)

	if client.Configured() {
		log.Info("Generative backend configured", "model", cfg.Anthropic.Model)
	} else {
		log.Warn("Generative backend not configured, serving fallback suggestions")
	}

	return &AnthropicClientHandle{Anthropic: client}, nil
}

// WeatherClientHandle wraps the weather client with Shutdownable.
type WeatherClientHandle struct {
	*weather.Client
}

// Shutdown implements do.Shutdownable.
func (h *WeatherClientHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideWeatherClient provides the OpenWeatherMap client. Missing
// credentials are allowed; the reading context degrades to a weatherless
// view.
func ProvideWeatherClient(i do.Injector) (*WeatherClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := weather.New(weather.Config{
		APIKey:            cfg.Weather.APIKey,
		BaseURL:           cfg.Weather.BaseURL,
		Timeout:           cfg.Weather.Timeout,
		RequestsPerMinute: cfg.Weather.RequestsPerMinute,
	}, log)

	if !client.Configured() {
		log.Info("Weather lookups disabled, reading context will omit conditions")
	}

	return &WeatherClientHandle{Client: client}, nil
}
