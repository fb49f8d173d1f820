package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/alexkokkinos/walktime/internal/prefs"
	"github.com/alexkokkinos/walktime/internal/store"
	"github.com/alexkokkinos/walktime/internal/walk"
	"github.com/alexkokkinos/walktime/internal/weather"
)

type fakeProvider struct {
	forecast *weather.Forecast
	err      error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Forecast(_ context.Context, _ string) (*weather.Forecast, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.forecast, nil
}

func newTestApp(provider weather.Provider) (*fiber.App, prefs.Repository) {
	app := fiber.New()
	repo := prefs.NewMemoryRepository()
	svc := walk.NewService(provider, store.NewMemoryCache(time.Hour))
	RegisterRoutes(app, svc, repo)
	return app, repo
}

func walkableForecast() *weather.Forecast {
	return &weather.Forecast{
		Location: weather.LocationInfo{Name: "Chicago", LocaltimeEpoch: 100},
		Hours: []weather.HourlyRecord{
			{TimeEpoch: 100, FeelslikeF: 72, FeelslikeC: 22.2, ChanceOfRain: 90},
			{TimeEpoch: 200, FeelslikeF: 72, FeelslikeC: 22.2, WindMph: 4},
		},
		FetchedAt: time.Now().UTC(),
	}
}

func TestBestWalkEndpoint(t *testing.T) {
	app, _ := newTestApp(&fakeProvider{forecast: walkableForecast()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/walk/best", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var result walk.BestWalkResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if result.BestWalkHour.TimeEpoch != 200 {
		t.Fatalf("expected best hour at epoch 200, got %d", result.BestWalkHour.TimeEpoch)
	}
	if result.Location.Name != "Chicago" {
		t.Fatalf("expected location Chicago, got %q", result.Location.Name)
	}
}

func TestBestWalkEndpointNoRemainingHours(t *testing.T) {
	forecast := walkableForecast()
	forecast.Location.LocaltimeEpoch = 10_000
	app, _ := newTestApp(&fakeProvider{forecast: forecast})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/walk/best", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestBestWalkEndpointUpstreamFailure(t *testing.T) {
	app, _ := newTestApp(&fakeProvider{err: errors.New("connection refused")})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/walk/best", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected status %d, got %d", http.StatusBadGateway, resp.StatusCode)
	}
}

func TestBestWalkEndpointRejectsNonIntegerIdealTemp(t *testing.T) {
	app, _ := newTestApp(&fakeProvider{forecast: walkableForecast()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/walk/best?ideal_temp=72.5", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestBestWalkEndpointUsesStoredPreferences(t *testing.T) {
	app, repo := newTestApp(&fakeProvider{forecast: walkableForecast()})

	ideal := 22
	if err := repo.Upsert(context.Background(), prefs.Record{
		UserID: "u1", Location: "Chicago", IdealTemp: &ideal, Units: "c",
	}); err != nil {
		t.Fatalf("seeding preferences: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/walk/best?user_id=u1", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}

func TestScoredHoursEndpoint(t *testing.T) {
	app, _ := newTestApp(&fakeProvider{forecast: walkableForecast()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/walk/hours", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var result walk.ScoredHoursResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(result.Hours) != 2 {
		t.Fatalf("expected 2 scored hours, got %d", len(result.Hours))
	}
	if result.Hours[0].WeatherScore > 0 || result.Hours[1].WeatherScore > 0 {
		t.Fatalf("scores must be <= 0, got %v and %v",
			result.Hours[0].WeatherScore, result.Hours[1].WeatherScore)
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	app, _ := newTestApp(&fakeProvider{forecast: walkableForecast()})

	body := strings.NewReader(`{"location":"60657","ideal_temp":68,"units":"F"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/preferences/u1", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/preferences/u1", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var rec prefs.Record
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if rec.Location != "60657" {
		t.Fatalf("expected location 60657, got %q", rec.Location)
	}
	if rec.IdealTemp == nil || *rec.IdealTemp != 68 {
		t.Fatalf("expected ideal_temp 68, got %v", rec.IdealTemp)
	}
}

func TestPreferencesRejectNonIntegerIdealTemp(t *testing.T) {
	app, _ := newTestApp(&fakeProvider{forecast: walkableForecast()})

	body := strings.NewReader(`{"location":"60657","ideal_temp":72.5,"units":"f"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/preferences/u1", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestPreferencesRejectUnknownUnits(t *testing.T) {
	app, _ := newTestApp(&fakeProvider{forecast: walkableForecast()})

	body := strings.NewReader(`{"units":"kelvin"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/preferences/u1", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestPreferencesGetMissing(t *testing.T) {
	app, _ := newTestApp(&fakeProvider{forecast: walkableForecast()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/preferences/nobody", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}
