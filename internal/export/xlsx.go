// Package export renders run results into the spreadsheet dispatch
// hands out: one row per driver with stats, status and the first
// navigation segments.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Zhyangithub/eataway-router/internal/domain"
)

const sheetName = "Route Links"

// segmentColumns is how many navigation links get their own column.
// Routes longer than 30 stops are rare enough that extra segments are
// available from the dashboard instead.
const segmentColumns = 3

var headers = []string{"Chaufför", "Butiker", "Tid", "Distans", "Status", "Segment 1", "Segment 2", "Segment 3"}
var widths = []float64{12, 8, 12, 12, 10, 60, 60, 60}

// Workbook renders the results for the given roster order into an
// xlsx workbook and returns its bytes.
func Workbook(roster []string, results domain.RunResults) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("export workbook: rename sheet: %w", err)
	}

	styles, err := newStyles(f)
	if err != nil {
		return nil, fmt.Errorf("export workbook: styles: %w", err)
	}

	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("export workbook: header %q: %w", h, err)
		}
		_ = f.SetCellStyle(sheetName, cell, cell, styles.header)

		colName, _ := excelize.ColumnNumberToName(col + 1)
		_ = f.SetColWidth(sheetName, colName, colName, widths[col])
	}
	_ = f.SetRowHeight(sheetName, 1, 22)

	for i, driver := range roster {
		row := i + 2
		res := results.Drivers[driver]
		if err := writeDriverRow(f, styles, row, driver, res); err != nil {
			return nil, fmt.Errorf("export workbook: driver %q: %w", driver, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export workbook: write: %w", err)
	}
	return buf.Bytes(), nil
}

func writeDriverRow(f *excelize.File, s *styles, row int, driver string, res domain.DriverResult) error {
	_ = f.SetRowHeight(sheetName, row, 30)

	body, link := s.okBody, s.okLink
	if !res.OK() {
		body, link = s.errBody, s.errBody
	}

	set := func(col int, v any, style int) error {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return err
		}
		return f.SetCellStyle(sheetName, cell, cell, style)
	}

	stores, duration, distance, status := "—", "—", "—", "Fel: "+res.Error
	if res.OK() {
		stores = fmt.Sprintf("%d", len(res.Stops))
		duration = fmt.Sprintf("%d min", res.Stats.DurationMinutes)
		distance = fmt.Sprintf("%.1f km", res.Stats.DistanceKm)
		status = "Klar"
	}

	values := []any{driver, stores, duration, distance, status}
	for col, v := range values {
		if err := set(col+1, v, body); err != nil {
			return err
		}
	}

	for seg := 0; seg < segmentColumns; seg++ {
		url := ""
		if seg < len(res.NavLinks) {
			url = res.NavLinks[seg]
		}
		style := body
		if url != "" {
			style = link
		}
		if err := set(6+seg, url, style); err != nil {
			return err
		}
	}
	return nil
}

type styles struct {
	header  int
	okBody  int
	errBody int
	okLink  int
}

func newStyles(f *excelize.File) (*styles, error) {
	border := []excelize.Border{
		{Type: "left", Style: 1, Color: "333355"},
		{Type: "right", Style: 1, Color: "333355"},
		{Type: "top", Style: 1, Color: "333355"},
		{Type: "bottom", Style: 1, Color: "333355"},
	}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	leftWrap := &excelize.Alignment{Horizontal: "left", Vertical: "center", WrapText: true}

	header, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1A1A2E"}},
		Font:      &excelize.Font{Color: "F5A623", Bold: true, Size: 11},
		Alignment: center,
		Border:    border,
	})
	if err != nil {
		return nil, err
	}

	okBody, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"0D2137"}},
		Font:      &excelize.Font{Color: "E0E0E0", Size: 10},
		Alignment: center,
		Border:    border,
	})
	if err != nil {
		return nil, err
	}

	errBody, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"2D1A1A"}},
		Font:      &excelize.Font{Color: "E0E0E0", Size: 10},
		Alignment: center,
		Border:    border,
	})
	if err != nil {
		return nil, err
	}

	okLink, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"0D2137"}},
		Font:      &excelize.Font{Color: "4A9FD4", Size: 9, Underline: "single"},
		Alignment: leftWrap,
		Border:    border,
	})
	if err != nil {
		return nil, err
	}

	return &styles{header: header, okBody: okBody, errBody: errBody, okLink: okLink}, nil
}
