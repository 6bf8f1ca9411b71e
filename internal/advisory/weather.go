// Package advisory surfaces current weather and rule-based farming advice.
// The weather lookup is a thin OpenWeatherMap wrapper; without an API key it
// serves a fixed mock report so the rest of the app stays usable offline.
package advisory

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// Report is the weather snapshot the advisory rules consume.
type Report struct {
	City         string  `json:"city"`
	Country      string  `json:"country,omitempty"`
	Temp         float64 `json:"temp"`
	FeelsLike    float64 `json:"feels_like,omitempty"`
	Humidity     int     `json:"humidity"`
	WindKmh      float64 `json:"wind"`
	Condition    string  `json:"condition"`
	Description  string  `json:"description"`
	PressureHPa  int     `json:"pressure,omitempty"`
	VisibilityKm float64 `json:"visibility,omitempty"`
	Mock         bool    `json:"mock,omitempty"`
}

// Client fetches current weather for a location.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a weather client. An empty API key switches the client
// into mock mode.
func NewClient(apiKey, baseURL string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

// Current returns the weather for a city. Without an API key a deterministic
// mock report is returned; with a key, lookup failures are returned as
// errors for the caller to degrade on.
func (c *Client) Current(ctx context.Context, location string) (*Report, error) {
	if c.apiKey == "" {
		return &Report{
			City:        location,
			Temp:        28,
			Humidity:    65,
			WindKmh:     12,
			Condition:   "Partly Cloudy",
			Description: "Moderate humidity, suitable for farming activities",
			Mock:        true,
		}, nil
	}

	q := url.Values{}
	q.Set("q", location+",IN")
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("advisory: weather lookup: %w", err)
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, fmt.Errorf("advisory: invalid weather API key")
	case http.StatusNotFound:
		return nil, fmt.Errorf("advisory: location %q not found", location)
	default:
		return nil, fmt.Errorf("advisory: weather lookup failed: %s", resp.Status)
	}

	var payload struct {
		Name string `json:"name"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  int     `json:"humidity"`
			Pressure  int     `json:"pressure"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
		Visibility int `json:"visibility"`
		Sys        struct {
			Country string `json:"country"`
		} `json:"sys"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("advisory: decode weather response: %w", err)
	}

	report := &Report{
		City:         payload.Name,
		Country:      payload.Sys.Country,
		Temp:         round1(payload.Main.Temp),
		FeelsLike:    round1(payload.Main.FeelsLike),
		Humidity:     payload.Main.Humidity,
		WindKmh:      round1(payload.Wind.Speed * 3.6),
		PressureHPa:  payload.Main.Pressure,
		VisibilityKm: float64(payload.Visibility) / 1000,
	}
	if len(payload.Weather) > 0 {
		report.Condition = payload.Weather[0].Main
		report.Description = payload.Weather[0].Description
	}
	return report, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
