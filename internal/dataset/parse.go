// Package dataset turns uploaded files and the synthetic generator into
// validated datasets, and writes datasets back out as CSV.
package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/GregMSThompson/sales-dashboard/internal/errs"
)

// Table is a raw, untyped sheet: a header row and string cells.
type Table struct {
	Header []string
	Rows   [][]string
	// ExcelDates marks tables whose date cells may hold spreadsheet serial
	// numbers rather than formatted text.
	ExcelDates bool
}

// SupportedExtensions lists the accepted upload formats.
var SupportedExtensions = []string{".csv", ".xlsx", ".xls"}

// ReadTable decodes data according to the file extension of name.
func ReadTable(name string, data []byte) (*Table, error) {
	var (
		t   *Table
		err error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		t, err = readCSV(bytes.NewReader(data))
	case ".xlsx":
		t, err = readXLSX(bytes.NewReader(data))
	case ".xls":
		t, err = readXLS(bytes.NewReader(data))
	default:
		return nil, errs.NewValidationError(fmt.Sprintf(
			"unsupported file format %q: expected one of %s", filepath.Ext(name), strings.Join(SupportedExtensions, ", ")))
	}
	if err != nil {
		return nil, errs.NewValidationError(fmt.Sprintf("could not read %s: %v", name, err))
	}
	t.normalize()
	return t, nil
}

func readCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("file is empty")
	}
	rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	return &Table{Header: rows[0], Rows: rows[1:]}, nil
}

func readXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}
	return &Table{Header: rows[0], Rows: rows[1:], ExcelDates: true}, nil
}

func readXLS(r io.ReadSeeker) (*Table, error) {
	wb, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return nil, err
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	var rows [][]string
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			continue
		}
		cells := make([]string, 0, row.LastCol())
		for j := 0; j < row.LastCol(); j++ {
			cells = append(cells, row.Col(j))
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet is empty")
	}
	return &Table{Header: rows[0], Rows: rows[1:], ExcelDates: true}, nil
}

// normalize trims header names and pads short rows to the header width.
func (t *Table) normalize() {
	for i, h := range t.Header {
		t.Header[i] = strings.TrimSpace(h)
	}
	for i, row := range t.Rows {
		if len(row) < len(t.Header) {
			padded := make([]string, len(t.Header))
			copy(padded, row)
			t.Rows[i] = padded
		}
	}
}
