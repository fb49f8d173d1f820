package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/alexkokkinos/walktime/internal/weather"
	"github.com/sony/gobreaker"
)

// WeatherAPIProvider implements weather.Provider against the
// WeatherAPI.com forecast endpoint. A single-day forecast is requested;
// the response carries the location's local time, current conditions and
// up to 24 hourly records for today.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewWeatherAPIProvider(client *http.Client, apiKey string) *WeatherAPIProvider {
	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: "https://api.weatherapi.com/v1/forecast.json",
		httpCfg: defaultHTTPConfig(client),
		circuit: defaultBreaker("weatherapi"),
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

// weatherAPIForecast mirrors the subset of the forecast.json payload the
// service consumes. Hour fields keep the upstream naming so records can be
// forwarded to consumers as-is.
type weatherAPIForecast struct {
	Location struct {
		Name           string  `json:"name"`
		Region         string  `json:"region"`
		Country        string  `json:"country"`
		Lat            float64 `json:"lat"`
		Lon            float64 `json:"lon"`
		TzID           string  `json:"tz_id"`
		LocaltimeEpoch int64   `json:"localtime_epoch"`
		Localtime      string  `json:"localtime"`
	} `json:"location"`
	Current struct {
		TempC      float64 `json:"temp_c"`
		TempF      float64 `json:"temp_f"`
		FeelslikeC float64 `json:"feelslike_c"`
		FeelslikeF float64 `json:"feelslike_f"`
		WindMph    float64 `json:"wind_mph"`
		Humidity   float64 `json:"humidity"`
		Condition  struct {
			Text string `json:"text"`
			Icon string `json:"icon"`
		} `json:"condition"`
	} `json:"current"`
	Forecast struct {
		Forecastday []struct {
			Date string `json:"date"`
			Hour []struct {
				TimeEpoch    int64   `json:"time_epoch"`
				Time         string  `json:"time"`
				TempC        float64 `json:"temp_c"`
				TempF        float64 `json:"temp_f"`
				FeelslikeC   float64 `json:"feelslike_c"`
				FeelslikeF   float64 `json:"feelslike_f"`
				WindMph      float64 `json:"wind_mph"`
				ChanceOfRain int     `json:"chance_of_rain"`
				ChanceOfSnow int     `json:"chance_of_snow"`
				WillItRain   int     `json:"will_it_rain"`
				Condition    struct {
					Text string `json:"text"`
					Icon string `json:"icon"`
				} `json:"condition"`
			} `json:"hour"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

func (p *WeatherAPIProvider) Forecast(ctx context.Context, location string) (*weather.Forecast, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("weatherapi api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("key", p.apiKey)
		// WeatherAPI accepts postal codes, place names and "lat,lon" in "q".
		values.Set("q", location)
		values.Set("days", "1")
		values.Set("aqi", "no")
		values.Set("alerts", "no")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload weatherAPIForecast
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding weatherapi response: %w", err)
	}

	if len(payload.Forecast.Forecastday) == 0 {
		return nil, fmt.Errorf("weatherapi returned no forecast days for %q", location)
	}

	day := payload.Forecast.Forecastday[0]
	hours := make([]weather.HourlyRecord, 0, len(day.Hour))
	for _, h := range day.Hour {
		hours = append(hours, weather.HourlyRecord{
			TimeEpoch:    h.TimeEpoch,
			Time:         h.Time,
			TempC:        h.TempC,
			TempF:        h.TempF,
			FeelslikeC:   h.FeelslikeC,
			FeelslikeF:   h.FeelslikeF,
			WindMph:      h.WindMph,
			ChanceOfRain: h.ChanceOfRain,
			ChanceOfSnow: h.ChanceOfSnow,
			WillItRain:   h.WillItRain == 1,
			Condition: weather.ConditionInfo{
				Text: h.Condition.Text,
				Icon: h.Condition.Icon,
			},
		})
	}

	return &weather.Forecast{
		Location: weather.LocationInfo{
			Name:           payload.Location.Name,
			Region:         payload.Location.Region,
			Country:        payload.Location.Country,
			Lat:            payload.Location.Lat,
			Lon:            payload.Location.Lon,
			TzID:           payload.Location.TzID,
			LocaltimeEpoch: payload.Location.LocaltimeEpoch,
			Localtime:      payload.Location.Localtime,
		},
		Current: weather.CurrentConditions{
			TempC:      payload.Current.TempC,
			TempF:      payload.Current.TempF,
			FeelslikeC: payload.Current.FeelslikeC,
			FeelslikeF: payload.Current.FeelslikeF,
			WindMph:    payload.Current.WindMph,
			Humidity:   payload.Current.Humidity,
			Condition: weather.ConditionInfo{
				Text: payload.Current.Condition.Text,
				Icon: payload.Current.Condition.Icon,
			},
		},
		Hours:     hours,
		FetchedAt: time.Now().UTC(),
	}, nil
}
