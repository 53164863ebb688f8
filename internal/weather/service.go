package weather

import (
	"context"
	"fmt"

	"github.com/i474232898/daily-weather-report/internal/geo"
)

// Service runs the daily-weather pipeline: resolve the nearest reference
// site, fetch the records, check range completeness.
type Service struct {
	provider DailyProvider
	catalog  []geo.ReferenceSite
}

// NewService creates a new Service. The catalog must be non-empty.
func NewService(provider DailyProvider, catalog []geo.ReferenceSite) *Service {
	return &Service{
		provider: provider,
		catalog:  catalog,
	}
}

// Report is the result of one daily-weather query. Site and SiteDistanceKm
// label which reference site the queried coordinate is closest to; they never
// alter which coordinate was queried.
type Report struct {
	Site           geo.ReferenceSite  `json:"site"`
	SiteDistanceKm float64            `json:"siteDistanceKm"`
	Result         WeatherResult      `json:"result"`
	Completeness   CompletenessReport `json:"completeness"`
}

// DailyReport fetches daily observations for the coordinate over the
// inclusive date range and checks that every calendar day is covered.
// The fetch issues exactly one upstream request.
func (s *Service) DailyReport(ctx context.Context, at geo.Coordinate, rng DateRange) (Report, error) {
	if err := rng.Validate(); err != nil {
		return Report{}, err
	}

	site, dist, err := geo.NearestSite(at, s.catalog)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	result, err := s.provider.FetchDaily(ctx, at, rng)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Site:           site,
		SiteDistanceKm: dist,
		Result:         result,
		Completeness:   CheckCompleteness(result, rng),
	}, nil
}
