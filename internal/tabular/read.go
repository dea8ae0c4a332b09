package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads the first sheet of an xlsx workbook into a Grid.
func ReadXLSX(path string) (Grid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("read xlsx %q: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("read xlsx %q: workbook has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read xlsx %q: sheet %q: %w", path, sheets[0], err)
	}
	return Grid(rows), nil
}

// ReadCSV reads a CSV file into a Grid. Rows are allowed to have
// varying lengths, since hand-edited exports rarely stay rectangular.
func ReadCSV(path string) (Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read csv %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv %q: %w", path, err)
	}
	return Grid(rows), nil
}

// Read loads a table by file extension.
func Read(path string) (Grid, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(path)
	case ".csv":
		return ReadCSV(path)
	default:
		return nil, fmt.Errorf("read table %q: unsupported file type", path)
	}
}

// Locate returns the configured path if it exists, otherwise the same
// path with its extension swapped between .xlsx and .csv. The source
// tables arrive in either format depending on who exported them last.
func Locate(path string) (string, error) {
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	var alt string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		alt = strings.TrimSuffix(path, filepath.Ext(path)) + ".csv"
	case ".csv":
		alt = strings.TrimSuffix(path, filepath.Ext(path)) + ".xlsx"
	default:
		return "", fmt.Errorf("locate table: %q does not exist", path)
	}

	if _, err := os.Stat(alt); err == nil {
		return alt, nil
	}
	return "", fmt.Errorf("locate table: neither %q nor %q exists", path, alt)
}

// FileSource loads the coordinate and route tables from disk. It
// implements the pipeline's table source contract.
type FileSource struct {
	CoordinatesPath string
	RoutesPath      string
}

func (s FileSource) Coordinates() (Grid, error) {
	path, err := Locate(s.CoordinatesPath)
	if err != nil {
		return nil, fmt.Errorf("coordinate table: %w", err)
	}
	return Read(path)
}

func (s FileSource) Routes() (Grid, error) {
	path, err := Locate(s.RoutesPath)
	if err != nil {
		return nil, fmt.Errorf("route table: %w", err)
	}
	return Read(path)
}
