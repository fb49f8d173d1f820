package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openWeatherFixture builds a forecast payload around the current time so
// the provider's same-local-day filter sees a deterministic split: two slots
// today, one tomorrow.
func openWeatherFixture(t *testing.T) []byte {
	t.Helper()

	now := time.Now().UTC()
	entry := func(dt int64, temp, feels, wind, pop, rain3h, snow3h float64) map[string]interface{} {
		return map[string]interface{}{
			"dt":   dt,
			"main": map[string]interface{}{"temp": temp, "feels_like": feels, "humidity": 50},
			"wind": map[string]interface{}{"speed": wind},
			"pop":  pop,
			"rain": map[string]interface{}{"3h": rain3h},
			"snow": map[string]interface{}{"3h": snow3h},
			"weather": []map[string]interface{}{
				{"description": "light rain", "icon": "10d"},
			},
		}
	}

	payload := map[string]interface{}{
		"list": []map[string]interface{}{
			entry(now.Unix(), 64.4, 62.6, 8, 0.6, 0.3, 0),
			entry(now.Unix()+3*3600, 50, 48.2, 12, 0.4, 0, 1.2),
			entry(now.Unix()+48*3600, 70, 70, 5, 0, 0, 0),
		},
		"city": map[string]interface{}{
			"name":     "Chicago",
			"country":  "US",
			"coord":    map[string]interface{}{"lat": 41.85, "lon": -87.65},
			"timezone": 0,
		},
	}

	b, err := json.Marshal(payload)
	require.NoError(t, err)
	return b
}

func TestOpenWeatherProviderNormalizesForecast(t *testing.T) {
	// Slots near midnight UTC can land on two different local days; pin the
	// test to a time of day where now and now+3h share a date.
	if h := time.Now().UTC().Hour(); h >= 21 {
		t.Skip("too close to midnight UTC for a stable same-day fixture")
	}

	body := openWeatherFixture(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "imperial", r.URL.Query().Get("units"))
		w.Write(body)
	}))
	t.Cleanup(srv.Close)

	p := NewOpenWeatherProvider(srv.Client(), "test-key")
	p.baseURL = srv.URL

	forecast, err := p.Forecast(context.Background(), "Chicago")
	require.NoError(t, err)

	assert.Equal(t, "Chicago", forecast.Location.Name)
	assert.Equal(t, "US", forecast.Location.Country)

	// The +48h slot falls outside the current local day.
	require.Len(t, forecast.Hours, 2)

	rainy := forecast.Hours[0]
	assert.Equal(t, 60, rainy.ChanceOfRain)
	assert.Equal(t, 0, rainy.ChanceOfSnow)
	assert.True(t, rainy.WillItRain)
	assert.InDelta(t, 64.4, rainy.TempF, 1e-9)
	assert.InDelta(t, 18, rainy.TempC, 0.01)
	assert.Equal(t, "light rain", rainy.Condition.Text)

	snowy := forecast.Hours[1]
	assert.Equal(t, 0, snowy.ChanceOfRain)
	assert.Equal(t, 40, snowy.ChanceOfSnow)
	assert.False(t, snowy.WillItRain)

	assert.InDelta(t, 64.4, forecast.Current.TempF, 1e-9)
	assert.InDelta(t, 50, forecast.Current.Humidity, 1e-9)
}

func TestFahrenheitToCelsius(t *testing.T) {
	tests := []struct{ f, c float64 }{
		{32, 0},
		{212, 100},
		{50, 10},
		{-40, -40},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.c, fahrenheitToCelsius(tt.f), 1e-9, fmt.Sprintf("%v°F", tt.f))
	}
}
