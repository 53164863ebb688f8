package geo

import (
	"errors"

	"github.com/golang/geo/s2"
)

// EarthRadiusKm is Earth's mean radius in kilometers.
const EarthRadiusKm = 6371.0

// Coordinate is a geographic point in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ReferenceSite is a named, fixed location used to label arbitrary coordinates.
type ReferenceSite struct {
	Name       string     `json:"name"`
	Coordinate Coordinate `json:"coordinate"`
}

// ErrEmptyCatalog is returned when a site lookup is attempted against an
// empty catalog. Callers are expected to supply a non-empty static catalog,
// so hitting this is a programming error rather than a runtime condition.
var ErrEmptyCatalog = errors.New("reference site catalog is empty")

// DistanceKm returns the great-circle distance between two coordinates in
// kilometers, computed with the haversine formula.
func DistanceKm(a, b Coordinate) float64 {
	p1 := s2.LatLngFromDegrees(a.Latitude, a.Longitude)
	p2 := s2.LatLngFromDegrees(b.Latitude, b.Longitude)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// NearestSite returns the catalog entry closest to point along with its
// distance in kilometers. Equidistant entries keep the first one in catalog
// order.
func NearestSite(point Coordinate, catalog []ReferenceSite) (ReferenceSite, float64, error) {
	if len(catalog) == 0 {
		return ReferenceSite{}, 0, ErrEmptyCatalog
	}

	best := catalog[0]
	bestDist := DistanceKm(point, best.Coordinate)
	for _, site := range catalog[1:] {
		if d := DistanceKm(point, site.Coordinate); d < bestDist {
			best = site
			bestDist = d
		}
	}
	return best, bestDist, nil
}
