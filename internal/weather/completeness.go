package weather

// CheckCompleteness reports which calendar days of the requested range have
// no record in result. It iterates the expected day sequence, so missing
// dates come out in chronological order. An empty result is valid input and
// yields an all-missing report.
func CheckCompleteness(result WeatherResult, rng DateRange) CompletenessReport {
	got := make(map[Date]struct{}, len(result.Records))
	for _, rec := range result.Records {
		got[rec.Date] = struct{}{}
	}

	var missing []Date
	for _, d := range rng.Days() {
		if _, ok := got[d]; !ok {
			missing = append(missing, d)
		}
	}

	return CompletenessReport{
		MissingDates: missing,
		IsComplete:   len(missing) == 0,
	}
}
