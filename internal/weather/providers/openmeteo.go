package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/daily-weather-report/internal/geo"
	"github.com/i474232898/daily-weather-report/internal/weather"
)

// ArchiveClient implements weather.DailyProvider against the Open-Meteo
// archive API. It requests daily max/min temperature and summed
// precipitation for an inclusive date range.
type ArchiveClient struct {
	name     string
	baseURL  string
	timezone string
	client   *http.Client
	circuit  *gobreaker.CircuitBreaker
	logf     func(format string, args ...interface{})
}

// Option configures an ArchiveClient.
type Option func(*ArchiveClient)

// WithBaseURL overrides the archive endpoint, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *ArchiveClient) { c.baseURL = u }
}

// WithTimezone sets the civil timezone the provider uses for day boundaries.
// It should match the caller's business calendar.
func WithTimezone(tz string) Option {
	return func(c *ArchiveClient) { c.timezone = tz }
}

// WithLogf replaces the diagnostic logging callback.
func WithLogf(f func(format string, args ...interface{})) Option {
	return func(c *ArchiveClient) { c.logf = f }
}

func NewArchiveClient(client *http.Client, opts ...Option) *ArchiveClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openmeteo-archive",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	c := &ArchiveClient{
		name:     "openmeteo-archive",
		baseURL:  "https://archive-api.open-meteo.com/v1/archive",
		timezone: "Europe/Paris",
		client:   client,
		circuit:  cb,
		logf:     log.Printf,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *ArchiveClient) Name() string {
	return c.name
}

// FetchDaily issues a single GET to the archive endpoint and normalizes the
// parallel-array response into one DailyRecord per day. A parsed response
// without a daily block is a successful empty result, not an error.
func (c *ArchiveClient) FetchDaily(ctx context.Context, at geo.Coordinate, rng weather.DateRange) (weather.WeatherResult, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", at.Latitude))
	values.Set("longitude", fmt.Sprintf("%f", at.Longitude))
	values.Set("start_date", rng.Start.String())
	values.Set("end_date", rng.End.String())
	values.Add("daily", "temperature_2m_max")
	values.Add("daily", "temperature_2m_min")
	values.Add("daily", "precipitation_sum")
	values.Set("timezone", c.timezone)

	u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return weather.WeatherResult{}, err
	}

	c.logf("%s: GET %s", c.name, u)

	resp, err := doRequest(c.client, c.circuit, req)
	if err != nil {
		return weather.WeatherResult{}, err
	}
	defer resp.Body.Close()

	c.logf("%s: HTTP %d", c.name, resp.StatusCode)

	var payload struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
		Elevation *float64 `json:"elevation"`
		Daily     *struct {
			Time      []string   `json:"time"`
			TempMax   []*float64 `json:"temperature_2m_max"`
			TempMin   []*float64 `json:"temperature_2m_min"`
			PrecipSum []*float64 `json:"precipitation_sum"`
		} `json:"daily"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.WeatherResult{}, &weather.MalformedResponseError{
			Detail: "body is not valid JSON",
			Err:    err,
		}
	}

	if payload.Daily == nil {
		// The provider has no data for this point/range. That is a normal
		// outcome, distinct from a protocol failure.
		return weather.WeatherResult{}, nil
	}

	records := make([]weather.DailyRecord, 0, len(payload.Daily.Time))
	for i, raw := range payload.Daily.Time {
		d, err := weather.ParseDate(raw)
		if err != nil {
			// Drop the row rather than misalign the arrays; the
			// completeness check will flag the day as missing.
			c.logf("%s: dropping row %d with unparseable date %q", c.name, i, raw)
			continue
		}
		records = append(records, weather.DailyRecord{
			Date:     d,
			TempMaxC: valueAt(payload.Daily.TempMax, i),
			TempMinC: valueAt(payload.Daily.TempMin, i),
			RainMM:   valueAt(payload.Daily.PrecipSum, i),
		})
	}

	result := weather.WeatherResult{Records: records}
	if payload.Latitude != nil && payload.Longitude != nil {
		meta := &weather.ResultMeta{
			Latitude:  *payload.Latitude,
			Longitude: *payload.Longitude,
		}
		if payload.Elevation != nil {
			meta.ElevationM = *payload.Elevation
		}
		result.Meta = meta
	}

	return result, nil
}

// valueAt reads the i-th value of a parallel array, tolerating provider
// nulls and ragged array lengths.
func valueAt(vals []*float64, i int) *float64 {
	if i >= len(vals) || vals[i] == nil {
		return nil
	}
	v := *vals[i]
	return &v
}
