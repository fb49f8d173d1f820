package weather

import "context"

// Provider abstracts a weather data source capable of returning a
// current-day hourly forecast for a free-form location query
// (postal code, place name, or "lat,lon").
type Provider interface {
	Name() string
	Forecast(ctx context.Context, location string) (*Forecast, error)
}

// Cache is the contract the in-memory forecast cache must satisfy.
// Implementations decide freshness; GetFresh returns only documents
// still within the configured max age.
type Cache interface {
	Save(location string, forecast *Forecast)
	GetFresh(location string) (*Forecast, bool)
}
