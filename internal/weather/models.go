package weather

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a timezone-naive calendar day. The provider is always queried with
// a fixed civil timezone, so a Date identifies one unambiguous business day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date from its components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Today returns the current calendar day in UTC.
func Today() Date {
	return DateOf(time.Now().UTC())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// Time returns the date as midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n calendar days later.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// After reports whether d falls after other.
func (d Date) After(other Date) bool {
	return d.Time().After(other.Time())
}

func (d Date) String() string {
	return d.Time().Format(dateLayout)
}

// MarshalJSON renders the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON parses a "YYYY-MM-DD" string.
func (d *Date) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("date must be a %q string", dateLayout)
	}
	parsed, err := ParseDate(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DateRange is an inclusive span of calendar days. Start must not be after End.
type DateRange struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

// Validate checks the Start <= End invariant.
func (r DateRange) Validate() error {
	if r.Start.After(r.End) {
		return fmt.Errorf("%w: start date %s is after end date %s", ErrInvalidInput, r.Start, r.End)
	}
	return nil
}

// Days returns every calendar day from Start to End, both endpoints included.
func (r DateRange) Days() []Date {
	var days []Date
	for d := r.Start; !d.After(r.End); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// DailyRecord is one day of normalized observations. Measurements the
// provider has no value for are nil.
type DailyRecord struct {
	Date     Date     `json:"date"`
	TempMaxC *float64 `json:"temp_max_C"`
	TempMinC *float64 `json:"temp_min_C"`
	RainMM   *float64 `json:"rain_mm"`
}

// ResultMeta echoes what the provider actually resolved the query to.
// Providers may snap to the nearest supported grid cell; this is purely
// informational and never re-keys the records.
type ResultMeta struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	ElevationM float64 `json:"elevationM"`
}

// WeatherResult is a normalized per-day record set for one query.
// Records are chronological with at most one entry per date.
type WeatherResult struct {
	Records []DailyRecord `json:"records"`
	Meta    *ResultMeta   `json:"meta,omitempty"`
}

// CompletenessReport lists the calendar days of a requested range that have
// no corresponding record, in chronological order.
type CompletenessReport struct {
	MissingDates []Date `json:"missingDates"`
	IsComplete   bool   `json:"isComplete"`
}
