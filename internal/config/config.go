package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/daily-weather-report/internal/geo"
)

type AppConfig struct {
	Port string

	// HTTPTimeout bounds each outbound provider call.
	HTTPTimeout time.Duration

	// OpenMeteoBaseURL is the archive endpoint.
	OpenMeteoBaseURL string

	// Timezone is the civil timezone sent to the provider so day boundaries
	// match the analyst's business calendar.
	Timezone string

	// DefaultCoordinate is queried when a request omits latitude/longitude.
	DefaultCoordinate geo.Coordinate

	// Sites is the reference catalog used to label queried coordinates.
	Sites []geo.ReferenceSite
}

// defaultSites covers the Brittany locations the reports are usually run for.
var defaultSites = []geo.ReferenceSite{
	{Name: "Saint-Brieuc", Coordinate: geo.Coordinate{Latitude: 48.514, Longitude: -2.765}},
	{Name: "Rennes", Coordinate: geo.Coordinate{Latitude: 48.117, Longitude: -1.677}},
	{Name: "Brest", Coordinate: geo.Coordinate{Latitude: 48.390, Longitude: -4.486}},
	{Name: "Lorient", Coordinate: geo.Coordinate{Latitude: 47.748, Longitude: -3.366}},
	{Name: "Quimper", Coordinate: geo.Coordinate{Latitude: 47.996, Longitude: -4.102}},
	{Name: "Vannes", Coordinate: geo.Coordinate{Latitude: 47.658, Longitude: -2.760}},
	{Name: "Saint-Malo", Coordinate: geo.Coordinate{Latitude: 48.649, Longitude: -2.026}},
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.OpenMeteoBaseURL = getenvDefault("OPENMETEO_BASE_URL", "https://archive-api.open-meteo.com/v1/archive")
	cfg.Timezone = getenvDefault("WEATHER_TIMEZONE", "Europe/Paris")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.DefaultCoordinate = geo.Coordinate{
		Latitude:  getenvFloat("WEATHER_DEFAULT_LAT", 48.514),
		Longitude: getenvFloat("WEATHER_DEFAULT_LON", -2.765),
	}

	sites, err := loadSites()
	if err != nil {
		return nil, err
	}
	cfg.Sites = sites

	return cfg, nil
}

// loadSites parses WEATHER_SITES ("Name:lat:lon" pairs separated by ";"),
// falling back to the built-in catalog.
func loadSites() ([]geo.ReferenceSite, error) {
	raw := os.Getenv("WEATHER_SITES")
	if raw == "" {
		return defaultSites, nil
	}

	var sites []geo.ReferenceSite
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		if len(parts) != 3 || parts[0] == "" {
			return nil, fmt.Errorf("invalid WEATHER_SITES entry %q; want Name:lat:lon", entry)
		}
		lat, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude in WEATHER_SITES entry %q: %w", entry, err)
		}
		lon, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude in WEATHER_SITES entry %q: %w", entry, err)
		}
		sites = append(sites, geo.ReferenceSite{
			Name:       parts[0],
			Coordinate: geo.Coordinate{Latitude: lat, Longitude: lon},
		})
	}
	if len(sites) == 0 {
		return nil, fmt.Errorf("WEATHER_SITES is set but contains no sites")
	}
	return sites, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
