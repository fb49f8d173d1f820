package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/alexkokkinos/walktime/internal/weather"
	"github.com/sony/gobreaker"
)

// OpenWeatherProvider implements weather.Provider against the OpenWeatherMap
// 5-day/3-hour forecast endpoint. Entries are requested in imperial units and
// normalized to the same hourly record shape WeatherAPI produces; only the
// slots falling on the location's current local day are kept.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, apiKey string) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5/forecast",
		httpCfg: defaultHTTPConfig(client),
		circuit: defaultBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

type openWeatherForecast struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  float64 `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Pop  float64 `json:"pop"` // precipitation probability, 0-1
		Rain struct {
			ThreeH float64 `json:"3h"`
		} `json:"rain"`
		Snow struct {
			ThreeH float64 `json:"3h"`
		} `json:"snow"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
	} `json:"list"`
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
		Coord   struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"coord"`
		Timezone int64 `json:"timezone"` // shift from UTC in seconds
	} `json:"city"`
}

func (p *OpenWeatherProvider) Forecast(ctx context.Context, location string) (*weather.Forecast, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("appid", p.apiKey)
		values.Set("q", location)
		values.Set("units", "imperial")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload openWeatherForecast
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding openweather response: %w", err)
	}
	if len(payload.List) == 0 {
		return nil, fmt.Errorf("openweather returned no forecast entries for %q", location)
	}

	now := time.Now().UTC()
	offset := time.Duration(payload.City.Timezone) * time.Second
	localNow := now.Add(offset)
	localDay := localNow.Format("2006-01-02")

	var hours []weather.HourlyRecord
	for _, e := range payload.List {
		localTS := time.Unix(e.Dt, 0).UTC().Add(offset)
		if localTS.Format("2006-01-02") != localDay {
			continue
		}

		rec := weather.HourlyRecord{
			TimeEpoch:  e.Dt,
			Time:       localTS.Format("2006-01-02 15:04"),
			TempF:      e.Main.Temp,
			TempC:      fahrenheitToCelsius(e.Main.Temp),
			FeelslikeF: e.Main.FeelsLike,
			FeelslikeC: fahrenheitToCelsius(e.Main.FeelsLike),
			WindMph:    e.Wind.Speed,
			WillItRain: e.Pop > 0.5 && e.Rain.ThreeH > 0,
		}

		// OpenWeather reports one probability for all precipitation; assign
		// it to snow when the slot forecasts snowfall, otherwise to rain.
		pct := int(math.Round(e.Pop * 100))
		if e.Snow.ThreeH > 0 {
			rec.ChanceOfSnow = pct
		} else {
			rec.ChanceOfRain = pct
		}

		if len(e.Weather) > 0 {
			rec.Condition = weather.ConditionInfo{
				Text: e.Weather[0].Description,
				Icon: fmt.Sprintf("//openweathermap.org/img/wn/%s@2x.png", e.Weather[0].Icon),
			}
		}

		hours = append(hours, rec)
	}

	// The first slot stands in for current conditions; the 3-hour grid has
	// no dedicated "current" document.
	first := payload.List[0]
	current := weather.CurrentConditions{
		TempF:      first.Main.Temp,
		TempC:      fahrenheitToCelsius(first.Main.Temp),
		FeelslikeF: first.Main.FeelsLike,
		FeelslikeC: fahrenheitToCelsius(first.Main.FeelsLike),
		WindMph:    first.Wind.Speed,
		Humidity:   first.Main.Humidity,
	}
	if len(first.Weather) > 0 {
		current.Condition = weather.ConditionInfo{
			Text: first.Weather[0].Description,
			Icon: fmt.Sprintf("//openweathermap.org/img/wn/%s@2x.png", first.Weather[0].Icon),
		}
	}

	return &weather.Forecast{
		Location: weather.LocationInfo{
			Name:           payload.City.Name,
			Country:        payload.City.Country,
			Lat:            payload.City.Coord.Lat,
			Lon:            payload.City.Coord.Lon,
			LocaltimeEpoch: now.Unix(),
			Localtime:      localNow.Format("2006-01-02 15:04"),
		},
		Current:   current,
		Hours:     hours,
		FetchedAt: now,
	}, nil
}

func fahrenheitToCelsius(f float64) float64 {
	return (f - 32) * 5 / 9
}
