// Package weather resolves city names to coordinates and fetches daily
// forecast series from the Open-Meteo APIs. Lookups are best-effort
// collaborators: an empty result is (nil, nil), never an error, and
// callers are expected to skip enrichment on any failure.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/navan-labs/navan/internal/httpkit"
)

// Geo is a resolved location, immutable once returned.
type Geo struct {
	Name    string
	Country string
	Lat     float64
	Lon     float64
}

// Series holds parallel daily forecast arrays for a date range.
type Series struct {
	Dates []string
	TMax  []float64 // daily max temperature, °C
	TMin  []float64 // daily min temperature, °C
	Rain  []float64 // daily precipitation probability, %
}

// Service is the lookup interface the assistant consumes. Tests and
// offline mode substitute a canned implementation.
type Service interface {
	Geocode(ctx context.Context, name string) (*Geo, error)
	Forecast(ctx context.Context, lat, lon float64, start, end string) (*Series, error)
}

// requestTimeout bounds each lookup; the turn blocks on it.
const requestTimeout = 8 * time.Second

// Client talks to the Open-Meteo geocoding and forecast APIs.
type Client struct {
	geocodeURL  string
	forecastURL string
	httpClient  *http.Client
	logger      *slog.Logger
}

// NewClient creates a weather client for the given endpoints.
func NewClient(geocodeURL, forecastURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		geocodeURL:  geocodeURL,
		forecastURL: forecastURL,
		logger:      logger.With("component", "weather"),
		httpClient: httpkit.NewClient(
			httpkit.WithTimeout(requestTimeout),
			// One retry with a short fixed backoff on transient failures;
			// both endpoints are idempotent GETs.
			httpkit.WithRetry(1, 350*time.Millisecond),
			httpkit.WithLogger(logger),
		),
	}
}

type geocodeResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Country   string  `json:"country"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

// Geocode resolves a free-text place name to its top match.
// Returns (nil, nil) when the service has no results.
func (c *Client) Geocode(ctx context.Context, name string) (*Geo, error) {
	if name == "" {
		return nil, nil
	}

	q := url.Values{}
	q.Set("name", name)
	q.Set("count", "3")
	q.Set("language", "en")

	var resp geocodeResponse
	if err := c.getJSON(ctx, c.geocodeURL+"?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("geocode %q: %w", name, err)
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}

	top := resp.Results[0]
	geoName := top.Name
	if geoName == "" {
		geoName = name
	}
	return &Geo{Name: geoName, Country: top.Country, Lat: top.Latitude, Lon: top.Longitude}, nil
}

type forecastResponse struct {
	Daily *struct {
		Time     []string  `json:"time"`
		TMax     []float64 `json:"temperature_2m_max"`
		TMin     []float64 `json:"temperature_2m_min"`
		RainProb []float64 `json:"precipitation_probability_max"`
	} `json:"daily"`
}

// Forecast fetches the daily series for an inclusive ISO date range.
// Returns (nil, nil) when the service has no daily data for the range.
func (c *Client) Forecast(ctx context.Context, lat, lon float64, start, end string) (*Series, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", lat))
	q.Set("longitude", fmt.Sprintf("%.4f", lon))
	q.Set("start_date", start)
	q.Set("end_date", end)
	q.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_probability_max")
	q.Set("timezone", "UTC")

	var resp forecastResponse
	if err := c.getJSON(ctx, c.forecastURL+"?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("forecast %.2f,%.2f: %w", lat, lon, err)
	}
	if resp.Daily == nil {
		return nil, nil
	}

	return &Series{
		Dates: resp.Daily.Time,
		TMax:  resp.Daily.TMax,
		TMin:  resp.Daily.TMin,
		Rain:  resp.Daily.RainProb,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer httpkit.DrainAndClose(resp.Body, 4096)

	if resp.StatusCode != http.StatusOK {
		body := httpkit.ReadErrorBody(resp.Body, 512)
		return fmt.Errorf("status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
