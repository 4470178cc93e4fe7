package assistant

import (
	"context"

	"github.com/navan-labs/navan/internal/session"
	"github.com/navan-labs/navan/internal/weather"
)

// EnrichmentStatus states whether a turn refreshed the cached weather
// facts.
type EnrichmentStatus string

const (
	// Enriched means live weather data was fetched and summarized.
	Enriched EnrichmentStatus = "enriched"
	// Skipped means no fetch happened; Reason says why.
	Skipped EnrichmentStatus = "skipped"
)

// Enrichment reports the outcome of a weather-facts refresh.
type Enrichment struct {
	Status EnrichmentStatus
	Reason string
}

// enrich refreshes the session's weather facts when a city and a date
// window are both known. Failures leave any previously cached facts in
// place.
func (a *Assistant) enrich(ctx context.Context, sess *session.Session) Enrichment {
	slots := &sess.Slots
	if slots.City == "" || !slots.HasWindow() {
		return Enrichment{Status: Skipped, Reason: "missing city or dates"}
	}

	if !slots.HasCoords() {
		geo, err := a.weather.Geocode(ctx, slots.City)
		if err != nil || geo == nil {
			a.logger.Debug("enrichment geocode failed", "city", slots.City, "error", err)
			return Enrichment{Status: Skipped, Reason: "geocode failed"}
		}
		slots.SetPlace(geo.Name, geo.Country, geo.Lat, geo.Lon)
	}

	series, err := a.weather.Forecast(ctx, *slots.Lat, *slots.Lon, slots.StartDate, slots.EndDate)
	if err != nil {
		a.logger.Debug("enrichment forecast failed", "city", slots.City, "error", err)
		return Enrichment{Status: Skipped, Reason: "forecast failed"}
	}
	if series == nil {
		return Enrichment{Status: Skipped, Reason: "no forecast data"}
	}

	sess.ToolFacts = weather.Summarize(slots.City, slots.StartDate, slots.EndDate, series)
	a.logger.Debug("weather facts refreshed", "session", sess.ID, "city", slots.City)
	return Enrichment{Status: Enriched}
}
