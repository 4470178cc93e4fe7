package weather

import (
	"context"
	"strings"
	"time"
)

// Offline is a canned Service for keyless demos and tests: a small
// city table for geocoding and a synthetic forecast. Replies are
// deterministic so turn processing stays reproducible.
type Offline struct{}

var offlineCities = map[string]Geo{
	"rome":          {Name: "Rome", Country: "Italy", Lat: 41.8919, Lon: 12.5113},
	"paris":         {Name: "Paris", Country: "France", Lat: 48.8534, Lon: 2.3488},
	"london":        {Name: "London", Country: "United Kingdom", Lat: 51.5085, Lon: -0.1257},
	"new york":      {Name: "New York", Country: "United States", Lat: 40.7143, Lon: -74.006},
	"los angeles":   {Name: "Los Angeles", Country: "United States", Lat: 34.0522, Lon: -118.2437},
	"san francisco": {Name: "San Francisco", Country: "United States", Lat: 37.7749, Lon: -122.4194},
	"tokyo":         {Name: "Tokyo", Country: "Japan", Lat: 35.6895, Lon: 139.6917},
	"barcelona":     {Name: "Barcelona", Country: "Spain", Lat: 41.3888, Lon: 2.159},
	"lisbon":        {Name: "Lisbon", Country: "Portugal", Lat: 38.7167, Lon: -9.1333},
	"berlin":        {Name: "Berlin", Country: "Germany", Lat: 52.5244, Lon: 13.4105},
	"sydney":        {Name: "Sydney", Country: "Australia", Lat: -33.8679, Lon: 151.2073},
	"tel aviv":      {Name: "Tel Aviv", Country: "Israel", Lat: 32.0809, Lon: 34.7806},
	"israel":        {Name: "Jerusalem", Country: "Israel", Lat: 31.769, Lon: 35.2163},
	"nice":          {Name: "Nice", Country: "France", Lat: 43.7031, Lon: 7.2661},
}

// Geocode resolves against the canned table; unknown cities get no result.
func (Offline) Geocode(_ context.Context, name string) (*Geo, error) {
	if g, ok := offlineCities[strings.ToLower(strings.TrimSpace(name))]; ok {
		geo := g
		return &geo, nil
	}
	return nil, nil
}

// Forecast synthesizes a mild daily series for the requested range.
func (Offline) Forecast(_ context.Context, _, _ float64, start, end string) (*Series, error) {
	from, err := time.Parse("2006-01-02", start)
	if err != nil {
		return nil, nil
	}
	to, err := time.Parse("2006-01-02", end)
	if err != nil || to.Before(from) {
		return nil, nil
	}

	s := &Series{}
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		s.Dates = append(s.Dates, d.Format("2006-01-02"))
		s.TMax = append(s.TMax, 24)
		s.TMin = append(s.TMin, 14)
		s.Rain = append(s.Rain, 20)
	}
	return s, nil
}
