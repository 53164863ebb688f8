package weather

import (
	"testing"
	"time"
)

func record(d Date) DailyRecord {
	v := 10.0
	return DailyRecord{Date: d, TempMaxC: &v, TempMinC: &v, RainMM: &v}
}

func TestCheckCompletenessFullRange(t *testing.T) {
	rng := DateRange{Start: NewDate(2024, time.January, 1), End: NewDate(2024, time.January, 5)}

	var result WeatherResult
	for _, d := range rng.Days() {
		result.Records = append(result.Records, record(d))
	}

	report := CheckCompleteness(result, rng)
	if !report.IsComplete {
		t.Fatalf("expected complete report, missing %v", report.MissingDates)
	}
	if len(report.MissingDates) != 0 {
		t.Fatalf("expected no missing dates, got %v", report.MissingDates)
	}
}

func TestCheckCompletenessEmptyResult(t *testing.T) {
	rng := DateRange{Start: NewDate(2024, time.January, 1), End: NewDate(2024, time.January, 3)}

	report := CheckCompleteness(WeatherResult{}, rng)
	if report.IsComplete {
		t.Fatal("empty result must not be complete")
	}
	if len(report.MissingDates) != 3 {
		t.Fatalf("expected 3 missing dates, got %v", report.MissingDates)
	}
	for i, d := range rng.Days() {
		if report.MissingDates[i] != d {
			t.Fatalf("missing dates out of order: %v", report.MissingDates)
		}
	}
}

func TestCheckCompletenessSingleInteriorGap(t *testing.T) {
	rng := DateRange{Start: NewDate(2024, time.January, 1), End: NewDate(2024, time.January, 3)}
	result := WeatherResult{Records: []DailyRecord{
		record(NewDate(2024, time.January, 1)),
		record(NewDate(2024, time.January, 3)),
	}}

	report := CheckCompleteness(result, rng)
	if report.IsComplete {
		t.Fatal("expected incomplete report")
	}
	if len(report.MissingDates) != 1 || report.MissingDates[0] != NewDate(2024, time.January, 2) {
		t.Fatalf("expected only 2024-01-02 missing, got %v", report.MissingDates)
	}
}

func TestCheckCompletenessReportsChronologically(t *testing.T) {
	rng := DateRange{Start: NewDate(2024, time.March, 1), End: NewDate(2024, time.March, 6)}
	// Records out of order and with gaps on the 2nd, 4th and 5th.
	result := WeatherResult{Records: []DailyRecord{
		record(NewDate(2024, time.March, 6)),
		record(NewDate(2024, time.March, 1)),
		record(NewDate(2024, time.March, 3)),
	}}

	report := CheckCompleteness(result, rng)
	want := []Date{
		NewDate(2024, time.March, 2),
		NewDate(2024, time.March, 4),
		NewDate(2024, time.March, 5),
	}
	if len(report.MissingDates) != len(want) {
		t.Fatalf("expected %v, got %v", want, report.MissingDates)
	}
	for i := range want {
		if report.MissingDates[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, report.MissingDates)
		}
	}
}
