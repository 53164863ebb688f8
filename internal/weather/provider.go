package weather

import (
	"context"

	"github.com/i474232898/daily-weather-report/internal/geo"
)

// DailyProvider abstracts a daily-weather archive source (e.g. Open-Meteo).
// FetchDaily issues exactly one request per invocation; it never retries.
type DailyProvider interface {
	Name() string
	FetchDaily(ctx context.Context, at geo.Coordinate, rng DateRange) (WeatherResult, error)
}
