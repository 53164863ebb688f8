package export

import (
	"bytes"

	"github.com/xuri/excelize/v2"

	"github.com/i474232898/daily-weather-report/internal/weather"
)

// SheetName is the single sheet the daily table is written to.
const SheetName = "daily_weather"

// XLSXContentType is the MIME type for the generated workbook.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var header = []interface{}{"date", "temp_max_C", "temp_min_C", "rain_mm"}

// DailyRecordsXLSX renders the record table as an in-memory workbook: one
// sheet, a header row, then one row per day mirroring the records column for
// column. Absent measurements become empty cells; no derived columns are
// added.
func DailyRecordsXLSX(records []weather.DailyRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, err
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			rec.Date.String(),
			cellValue(rec.TempMaxC),
			cellValue(rec.TempMinC),
			cellValue(rec.RainMM),
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func cellValue(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
