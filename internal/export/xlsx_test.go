package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Zhyangithub/eataway-router/internal/domain"
)

func sampleResults() domain.RunResults {
	return domain.RunResults{
		RunID:       "run-1",
		GeneratedAt: time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC),
		Drivers: map[string]domain.DriverResult{
			"Saman": domain.OkResult(
				[]domain.Stop{
					{Name: "Ica Söder", Lat: "59.26", Lng: "18.01"},
					{Name: "Coop Nord", Lat: "59.25", Lng: "17.98"},
				},
				domain.RouteStats{DurationMinutes: 42, DistanceKm: 13.5},
				[]string{
					"https://www.google.com/maps/dir/?api=1&origin=a&destination=b",
					"https://www.google.com/maps/dir/?api=1&origin=b&destination=c",
				},
				nil,
			),
			"Ahmed": domain.ErrorResult("directions service error: ZERO_RESULTS"),
		},
	}
}

func openWorkbook(t *testing.T, raw []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestWorkbookLayout(t *testing.T) {
	raw, err := Workbook([]string{"Saman", "Ahmed"}, sampleResults())
	require.NoError(t, err)

	f := openWorkbook(t, raw)
	require.Equal(t, []string{"Route Links"}, f.GetSheetList())

	rows, err := f.GetRows("Route Links")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, headers, rows[0][:len(headers)])
}

func TestWorkbookDriverRows(t *testing.T) {
	raw, err := Workbook([]string{"Saman", "Ahmed"}, sampleResults())
	require.NoError(t, err)
	f := openWorkbook(t, raw)

	cell := func(ref string) string {
		v, err := f.GetCellValue("Route Links", ref)
		require.NoError(t, err)
		return v
	}

	// Roster order decides row order.
	assert.Equal(t, "Saman", cell("A2"))
	assert.Equal(t, "2", cell("B2"))
	assert.Equal(t, "42 min", cell("C2"))
	assert.Equal(t, "13.5 km", cell("D2"))
	assert.Equal(t, "Klar", cell("E2"))
	assert.Equal(t, "https://www.google.com/maps/dir/?api=1&origin=a&destination=b", cell("F2"))
	assert.Equal(t, "https://www.google.com/maps/dir/?api=1&origin=b&destination=c", cell("G2"))
	assert.Equal(t, "", cell("H2"))

	assert.Equal(t, "Ahmed", cell("A3"))
	assert.Equal(t, "—", cell("B3"))
	assert.Equal(t, "—", cell("C3"))
	assert.Equal(t, "—", cell("D3"))
	assert.Equal(t, "Fel: directions service error: ZERO_RESULTS", cell("E3"))
	assert.Equal(t, "", cell("F3"))
}

func TestWorkbookDriverWithoutResult(t *testing.T) {
	results := sampleResults()
	raw, err := Workbook([]string{"Saman", "Ahmed", "Nadia"}, results)
	require.NoError(t, err)
	f := openWorkbook(t, raw)

	// A roster member absent from the results still gets a row, in the
	// error shape of the zero result.
	v, err := f.GetCellValue("Route Links", "A4")
	require.NoError(t, err)
	assert.Equal(t, "Nadia", v)
	v, err = f.GetCellValue("Route Links", "E4")
	require.NoError(t, err)
	assert.Equal(t, "Fel: ", v)
}

func TestWorkbookCapsSegmentColumns(t *testing.T) {
	results := domain.RunResults{
		Drivers: map[string]domain.DriverResult{
			"Saman": domain.OkResult(
				[]domain.Stop{{Name: "Ica Söder", Lat: "59.26", Lng: "18.01"}},
				domain.RouteStats{},
				[]string{"u1", "u2", "u3", "u4", "u5"},
				nil,
			),
		},
	}
	raw, err := Workbook([]string{"Saman"}, results)
	require.NoError(t, err)
	f := openWorkbook(t, raw)

	rows, err := f.GetRows("Route Links")
	require.NoError(t, err)
	require.Len(t, rows[1], len(headers))
	assert.Equal(t, "u3", rows[1][len(headers)-1])
}
