package walk

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/alexkokkinos/walktime/internal/prefs"
	"github.com/alexkokkinos/walktime/internal/weather"
)

// BestWalkResult is the single best remaining hour plus the location and
// current-conditions context the presentation layer renders from. Built once
// per request and immutable afterwards; both _f and _c fields are present so
// the consumer picks per the user's units.
type BestWalkResult struct {
	BestWalkHour weather.HourlyRecord      `json:"best_walk_hour"`
	Location     weather.LocationInfo      `json:"location"`
	Current      weather.CurrentConditions `json:"current"`
}

// ScoredHoursResult is every remaining hour of the day with its score, in
// chronological order. The best-walk hour is the arg-max of Hours.
type ScoredHoursResult struct {
	Hours    []weather.HourlyRecord    `json:"hours"`
	Location weather.LocationInfo      `json:"location"`
	Current  weather.CurrentConditions `json:"current"`
}

// Service runs the best-walk pipeline: fetch (or reuse a cached) forecast,
// filter to the hours still remaining today, score them, select the max.
// Each call is independent and stateless aside from the forecast cache.
type Service struct {
	provider weather.Provider
	cache    weather.Cache
	now      func() time.Time
}

func NewService(provider weather.Provider, cache weather.Cache) *Service {
	return &Service{
		provider: provider,
		cache:    cache,
		now:      time.Now,
	}
}

// BestWalk returns the best remaining hour of today for the given
// preferences.
func (s *Service) BestWalk(ctx context.Context, p prefs.UserPreferences) (*BestWalkResult, error) {
	forecast, remaining, err := s.remainingHours(ctx, p.Location)
	if err != nil {
		return nil, err
	}

	best, err := BestWalk(remaining, p)
	if err != nil {
		return nil, err
	}

	return &BestWalkResult{
		BestWalkHour: best,
		Location:     forecast.Location,
		Current:      forecast.Current,
	}, nil
}

// ScoredHours returns all remaining hours of today with scores attached.
func (s *Service) ScoredHours(ctx context.Context, p prefs.UserPreferences) (*ScoredHoursResult, error) {
	forecast, remaining, err := s.remainingHours(ctx, p.Location)
	if err != nil {
		return nil, err
	}
	if len(remaining) == 0 {
		return nil, ErrNoRemainingHours
	}

	scored, err := ScoreHours(remaining, p)
	if err != nil {
		return nil, err
	}

	return &ScoredHoursResult{
		Hours:    scored,
		Location: forecast.Location,
		Current:  forecast.Current,
	}, nil
}

// RefreshForecast fetches a fresh forecast for the location and caches it.
// Used by the scheduler to keep forecasts warm for stored preference
// locations.
func (s *Service) RefreshForecast(ctx context.Context, location string) error {
	forecast, err := s.provider.Forecast(ctx, location)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	s.cache.Save(location, forecast)
	return nil
}

func (s *Service) remainingHours(ctx context.Context, location string) (*weather.Forecast, []weather.HourlyRecord, error) {
	forecast, err := s.forecast(ctx, location)
	if err != nil {
		return nil, nil, err
	}

	remaining := RemainingHours(forecast.Hours, forecast.ReferenceEpoch(s.now()))
	return forecast, remaining, nil
}

func (s *Service) forecast(ctx context.Context, location string) (*weather.Forecast, error) {
	if s.cache != nil {
		if cached, ok := s.cache.GetFresh(location); ok {
			return cached, nil
		}
	}

	forecast, err := s.provider.Forecast(ctx, location)
	if err != nil {
		log.Printf("provider %s forecast failed for %q: %v", s.provider.Name(), location, err)
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	if s.cache != nil {
		s.cache.Save(location, forecast)
	}
	return forecast, nil
}
