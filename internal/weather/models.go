package weather

import "time"

// ConditionInfo is the provider's textual condition plus its icon URL,
// passed through to consumers untouched.
type ConditionInfo struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
}

// HourlyRecord is one forecasted hour, normalized to the field set every
// provider must fill. Records are immutable once fetched; WeatherScore is
// the only derived field and is attached by the scorer.
type HourlyRecord struct {
	TimeEpoch    int64         `json:"time_epoch"`
	Time         string        `json:"time"` // local display string, e.g. "2024-05-04 15:00"
	TempC        float64       `json:"temp_c"`
	TempF        float64       `json:"temp_f"`
	FeelslikeC   float64       `json:"feelslike_c"`
	FeelslikeF   float64       `json:"feelslike_f"`
	WindMph      float64       `json:"wind_mph"`
	ChanceOfRain int           `json:"chance_of_rain"` // 0-100
	ChanceOfSnow int           `json:"chance_of_snow"` // 0-100
	WillItRain   bool          `json:"will_it_rain"`
	Condition    ConditionInfo `json:"condition"`

	// WeatherScore is <= 0; higher (closer to zero) is better.
	WeatherScore float64 `json:"weather_score"`
}

// LocationInfo describes the resolved location as reported by the provider.
// LocaltimeEpoch is the provider's notion of "now" at that location and is
// the reference point for filtering out past hours.
type LocationInfo struct {
	Name           string  `json:"name"`
	Region         string  `json:"region"`
	Country        string  `json:"country"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	TzID           string  `json:"tz_id"`
	LocaltimeEpoch int64   `json:"localtime_epoch"`
	Localtime      string  `json:"localtime"`
}

// CurrentConditions is the as-of-now weather for the resolved location.
// The scoring core never interprets it; it is forwarded for display.
type CurrentConditions struct {
	TempC      float64       `json:"temp_c"`
	TempF      float64       `json:"temp_f"`
	FeelslikeC float64       `json:"feelslike_c"`
	FeelslikeF float64       `json:"feelslike_f"`
	WindMph    float64       `json:"wind_mph"`
	Humidity   float64       `json:"humidity"`
	Condition  ConditionInfo `json:"condition"`
}

// Forecast is a single-day hourly forecast document for one location.
// Hours are ordered chronologically as returned by the provider.
type Forecast struct {
	Location LocationInfo      `json:"location"`
	Current  CurrentConditions `json:"current"`
	Hours    []HourlyRecord    `json:"hours"`

	// FetchedAt records when this document was retrieved, so a cached copy
	// can still compute the location's current local time.
	FetchedAt time.Time `json:"fetched_at"`
}

// ReferenceEpoch returns the location's local "now" in epoch seconds as of
// the given wall-clock instant. For a freshly fetched document this is just
// LocaltimeEpoch; for a cached one the elapsed time since fetch is added so
// the remaining-hours filter still uses the target location's clock.
func (f *Forecast) ReferenceEpoch(now time.Time) int64 {
	elapsed := int64(now.Sub(f.FetchedAt).Seconds())
	if elapsed < 0 {
		elapsed = 0
	}
	return f.Location.LocaltimeEpoch + elapsed
}
