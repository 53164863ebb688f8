package httpapi

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/daily-weather-report/internal/export"
	"github.com/i474232898/daily-weather-report/internal/geo"
	"github.com/i474232898/daily-weather-report/internal/weather"
)

var validate = validator.New()

// defaultWindowDays is the range queried when no dates are supplied.
const defaultWindowDays = 14

// RegisterRoutes wires the HTTP handlers into the Fiber app. defaultAt is
// the coordinate queried when a request omits latitude/longitude.
func RegisterRoutes(app *fiber.App, service *weather.Service, defaultAt geo.Coordinate) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/daily", func(c *fiber.Ctx) error {
		req, err := parseDailyQuery(c, defaultAt)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		report, err := service.DailyReport(c.UserContext(), req.coordinate(), req.dateRange())
		if err != nil {
			return mapServiceError(err)
		}

		return c.JSON(report)
	})

	v1.Get("/weather/daily.xlsx", func(c *fiber.Ctx) error {
		req, err := parseDailyQuery(c, defaultAt)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		report, err := service.DailyReport(c.UserContext(), req.coordinate(), req.dateRange())
		if err != nil {
			return mapServiceError(err)
		}

		if len(report.Result.Records) == 0 {
			return fiber.NewError(fiber.StatusNotFound, "no data for this range")
		}

		b, err := export.DailyRecordsXLSX(report.Result.Records)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to build spreadsheet")
		}

		filename := fmt.Sprintf("daily-weather_%s_to_%s.xlsx", req.Start, req.End)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
		c.Set(fiber.HeaderContentType, export.XLSXContentType)
		return c.Send(b)
	})
}

// mapServiceError translates the service's error kinds into HTTP statuses.
func mapServiceError(err error) error {
	var ue *weather.UpstreamError
	var me *weather.MalformedResponseError
	switch {
	case errors.Is(err, weather.ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.As(err, &ue):
		return fiber.NewError(fiber.StatusBadGateway, ue.Error())
	case errors.As(err, &me):
		return fiber.NewError(fiber.StatusBadGateway, me.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
	}
}

// dailyQuery holds validated query parameters for the daily endpoints.
type dailyQuery struct {
	Latitude  float64 `validate:"gte=-90,lte=90"`
	Longitude float64 `validate:"gte=-180,lte=180"`
	Start     weather.Date
	End       weather.Date
}

func (q dailyQuery) coordinate() geo.Coordinate {
	return geo.Coordinate{Latitude: q.Latitude, Longitude: q.Longitude}
}

func (q dailyQuery) dateRange() weather.DateRange {
	return weather.DateRange{Start: q.Start, End: q.End}
}

func parseDailyQuery(c *fiber.Ctx, defaultAt geo.Coordinate) (dailyQuery, error) {
	var q dailyQuery

	latStr := c.Query("latitude")
	lonStr := c.Query("longitude")
	switch {
	case latStr == "" && lonStr == "":
		q.Latitude = defaultAt.Latitude
		q.Longitude = defaultAt.Longitude
	case latStr == "" || lonStr == "":
		return q, errors.New("latitude and longitude must be supplied together")
	default:
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return q, fmt.Errorf("invalid latitude: %w", err)
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			return q, fmt.Errorf("invalid longitude: %w", err)
		}
		q.Latitude = lat
		q.Longitude = lon
	}

	today := weather.Today()
	startStr := c.Query("start_date")
	endStr := c.Query("end_date")
	switch {
	case startStr == "" && endStr == "":
		q.Start = today.AddDays(-defaultWindowDays)
		q.End = today
	case startStr == "" || endStr == "":
		return q, errors.New("start_date and end_date must be supplied together")
	default:
		start, err := weather.ParseDate(startStr)
		if err != nil {
			return q, fmt.Errorf("invalid start_date: %w", err)
		}
		end, err := weather.ParseDate(endStr)
		if err != nil {
			return q, fmt.Errorf("invalid end_date: %w", err)
		}
		q.Start = start
		q.End = end
	}

	// The archive only holds past days.
	if q.End.After(today) {
		return q, errors.New("end_date may not be in the future")
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}
