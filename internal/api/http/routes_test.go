package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/daily-weather-report/internal/export"
	"github.com/i474232898/daily-weather-report/internal/geo"
	"github.com/i474232898/daily-weather-report/internal/weather"
)

type stubProvider struct {
	result weather.WeatherResult
	err    error
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) FetchDaily(context.Context, geo.Coordinate, weather.DateRange) (weather.WeatherResult, error) {
	return s.result, s.err
}

var testCatalog = []geo.ReferenceSite{
	{Name: "Saint-Brieuc", Coordinate: geo.Coordinate{Latitude: 48.514, Longitude: -2.765}},
	{Name: "Rennes", Coordinate: geo.Coordinate{Latitude: 48.117, Longitude: -1.677}},
}

var defaultAt = geo.Coordinate{Latitude: 48.514, Longitude: -2.765}

func newTestApp(provider weather.DailyProvider) *fiber.App {
	app := fiber.New()
	svc := weather.NewService(provider, testCatalog)
	RegisterRoutes(app, svc, defaultAt)
	return app
}

func floatPtr(v float64) *float64 { return &v }

// pastRange returns a short range safely in the past.
func pastRange() (string, string) {
	return "2024-01-01", "2024-01-03"
}

func TestDailyQueryValidation(t *testing.T) {
	app := newTestApp(&stubProvider{})
	start, end := pastRange()

	cases := []string{
		// Latitude out of range.
		fmt.Sprintf("/api/v1/weather/daily?latitude=95&longitude=0&start_date=%s&end_date=%s", start, end),
		// Longitude without latitude.
		fmt.Sprintf("/api/v1/weather/daily?longitude=0&start_date=%s&end_date=%s", start, end),
		// Unparseable date.
		"/api/v1/weather/daily?start_date=01/01/2024&end_date=2024-01-03",
		// Start without end.
		"/api/v1/weather/daily?start_date=2024-01-01",
		// End in the future.
		fmt.Sprintf("/api/v1/weather/daily?start_date=%s&end_date=%s", start,
			weather.Today().AddDays(2).String()),
	}

	for _, target := range cases {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected status %d, got %d", target, http.StatusBadRequest, resp.StatusCode)
		}
	}
}

func TestDailyInvertedRangeRejected(t *testing.T) {
	app := newTestApp(&stubProvider{})

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/weather/daily?start_date=2024-01-03&end_date=2024-01-01", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestDailyReportEndpoint(t *testing.T) {
	stub := &stubProvider{result: weather.WeatherResult{
		Records: []weather.DailyRecord{
			{Date: weather.NewDate(2024, time.January, 1), TempMaxC: floatPtr(10.5), TempMinC: floatPtr(5.0), RainMM: floatPtr(0.0)},
			{Date: weather.NewDate(2024, time.January, 3), TempMaxC: floatPtr(12.0), TempMinC: floatPtr(6.0), RainMM: floatPtr(2.3)},
		},
	}}
	app := newTestApp(stub)
	start, end := pastRange()

	req := httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/api/v1/weather/daily?latitude=48.117&longitude=-1.677&start_date=%s&end_date=%s", start, end), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var report weather.Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("undecodable response: %v", err)
	}

	if report.Site.Name != "Rennes" || report.SiteDistanceKm != 0 {
		t.Fatalf("expected Rennes at distance 0, got %s at %v", report.Site.Name, report.SiteDistanceKm)
	}
	if len(report.Result.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(report.Result.Records))
	}
	if report.Completeness.IsComplete {
		t.Fatal("expected incomplete range")
	}
	if len(report.Completeness.MissingDates) != 1 ||
		report.Completeness.MissingDates[0] != weather.NewDate(2024, time.January, 2) {
		t.Fatalf("expected 2024-01-02 missing, got %v", report.Completeness.MissingDates)
	}
}

func TestDailyEmptyResultIsOK(t *testing.T) {
	app := newTestApp(&stubProvider{})
	start, end := pastRange()

	req := httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/api/v1/weather/daily?start_date=%s&end_date=%s", start, end), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("no data is not an error; expected 200, got %d", resp.StatusCode)
	}

	var report weather.Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("undecodable response: %v", err)
	}
	if len(report.Result.Records) != 0 || report.Completeness.IsComplete {
		t.Fatalf("expected an all-missing empty report, got %+v", report)
	}
	if len(report.Completeness.MissingDates) != 3 {
		t.Fatalf("expected 3 missing dates, got %v", report.Completeness.MissingDates)
	}
}

func TestDailyUpstreamFailure(t *testing.T) {
	app := newTestApp(&stubProvider{err: &weather.UpstreamError{StatusCode: 500, BodyExcerpt: "boom"}})
	start, end := pastRange()

	req := httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/api/v1/weather/daily?start_date=%s&end_date=%s", start, end), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected status %d, got %d", http.StatusBadGateway, resp.StatusCode)
	}
}

func TestDailyExportDownload(t *testing.T) {
	stub := &stubProvider{result: weather.WeatherResult{
		Records: []weather.DailyRecord{
			{Date: weather.NewDate(2024, time.January, 1), TempMaxC: floatPtr(10.5)},
		},
	}}
	app := newTestApp(stub)
	start, end := pastRange()

	req := httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/api/v1/weather/daily.xlsx?start_date=%s&end_date=%s", start, end), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get(fiber.HeaderContentType); ct != export.XLSXContentType {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := resp.Header.Get(fiber.HeaderContentDisposition); cd == "" {
		t.Fatal("expected an attachment disposition")
	}
}

func TestDailyExportRefusedWhenNoData(t *testing.T) {
	app := newTestApp(&stubProvider{})
	start, end := pastRange()

	req := httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/api/v1/weather/daily.xlsx?start_date=%s&end_date=%s", start, end), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}
