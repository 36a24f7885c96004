package dataset

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"github.com/GregMSThompson/sales-dashboard/internal/errs"
	"github.com/GregMSThompson/sales-dashboard/internal/models"
)

const validCSV = `Date,Category,Region,Sales,Units,Customers
2025-01-01,Electronics,North,1200.5,10,4
2025-01-02,Sports,South,300,5.6,2
2025-01-03,Sports,East,abc,5,2
2025-01-04,,East,10,5,2
2025-01-05,Clothing,West,-4,5,2
`

func TestLoadCSV(t *testing.T) {
	ds, err := Load("sales.csv", []byte(validCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []models.Record{
		{Date: "2025-01-01", Category: "Electronics", Region: "North", Sales: 1200.5, Units: 10, Customers: 4},
		{Date: "2025-01-02", Category: "Sports", Region: "South", Sales: 300, Units: 6, Customers: 2},
	}
	if diff := cmp.Diff(want, ds.Records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
	if ds.Dropped != 3 {
		t.Fatalf("expected 3 dropped rows, got %d", ds.Dropped)
	}
	if !strings.HasPrefix(ds.SourceID, "upload:sales.csv:") {
		t.Fatalf("unexpected source id %q", ds.SourceID)
	}
}

func TestLoadCSVWithByteOrderMark(t *testing.T) {
	data := "\xef\xbb\xbf" + validCSV

	ds, err := Load("excel-export.csv", []byte(data))
	if err != nil {
		t.Fatalf("expected the byte-order mark to be stripped from the header, got %v", err)
	}
	if len(ds.Records) != 2 || ds.Records[0].Date != "2025-01-01" {
		t.Fatalf("unexpected records %+v", ds.Records)
	}
}

func TestLoadMissingColumn(t *testing.T) {
	data := "Date,Category,Sales,Units,Customers\n2025-01-01,Electronics,1,1,1\n"

	_, err := Load("sales.csv", []byte(data))

	var schemaErr *errs.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %T (%v)", err, err)
	}
	if diff := cmp.Diff([]string{"Region"}, schemaErr.Missing); diff != "" {
		t.Fatalf("missing columns mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(models.Columns, schemaErr.Expected); diff != "" {
		t.Fatalf("expected columns mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadBadDate(t *testing.T) {
	data := "Date,Category,Region,Sales,Units,Customers\nnot-a-date,Electronics,North,1,1,1\n"

	_, err := Load("sales.csv", []byte(data))

	var coercion *errs.CoercionError
	if !errors.As(err, &coercion) {
		t.Fatalf("expected CoercionError, got %T (%v)", err, err)
	}
	if coercion.Column != models.ColDate {
		t.Fatalf("expected Date column, got %q", coercion.Column)
	}
}

func TestLoadAllRowsDropped(t *testing.T) {
	data := "Date,Category,Region,Sales,Units,Customers\n2025-01-01,Electronics,North,x,1,1\n"

	_, err := Load("sales.csv", []byte(data))

	var empty *errs.EmptyResultError
	if !errors.As(err, &empty) {
		t.Fatalf("expected EmptyResultError, got %T (%v)", err, err)
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	_, err := Load("sales.json", []byte("{}"))

	var validation *errs.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %T (%v)", err, err)
	}
}

func TestUploadSourceIDDependsOnContent(t *testing.T) {
	a := UploadSourceID("a.csv", []byte("one"))
	if a != UploadSourceID("a.csv", []byte("one")) {
		t.Fatal("expected identical uploads to share a source id")
	}
	if a == UploadSourceID("a.csv", []byte("two")) {
		t.Fatal("expected different content to change the source id")
	}
}

func TestCSVRoundTrip(t *testing.T) {
	ds := GenerateSample(time.Date(2025, 3, 1, 15, 0, 0, 0, time.UTC), 5, 7)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, ds.Records); err != nil {
		t.Fatalf("write: %v", err)
	}
	back, err := Load("export.csv", buf.Bytes())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}

	if diff := cmp.Diff(ds.Records, back.Records); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
	if back.Dropped != 0 {
		t.Fatalf("expected no dropped rows, got %d", back.Dropped)
	}
}

func TestLoadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetList()[0]
	rows := [][]any{
		{"Date", "Category", "Region", "Sales", "Units", "Customers"},
		{"2025-02-01", "Food & Beverage", "West", 99.5, 3, 1},
		{45689, "Sports", "East", 10, 1, 1},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	ds, err := Load("sales.xlsx", buf.Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", ds.Len())
	}
	if ds.Records[0].Sales != 99.5 {
		t.Fatalf("unexpected sales %v", ds.Records[0].Sales)
	}
	if ds.Records[1].Date != "2025-02-01" {
		t.Fatalf("expected serial date to convert, got %q", ds.Records[1].Date)
	}
}

func TestGenerateSample(t *testing.T) {
	now := time.Date(2025, 6, 30, 9, 30, 0, 0, time.UTC)
	ds := GenerateSample(now, 90, DefaultSampleSeed)

	if ds.Len() != 91*5*4 {
		t.Fatalf("expected %d records, got %d", 91*5*4, ds.Len())
	}
	sig := ds.Signature()
	if sig.MinDate != "2025-04-01" || sig.MaxDate != "2025-06-30" {
		t.Fatalf("unexpected bounds %s..%s", sig.MinDate, sig.MaxDate)
	}
	if diff := cmp.Diff([]string{"Clothing", "Electronics", "Food & Beverage", "Home & Garden", "Sports"}, sig.Categories); diff != "" {
		t.Fatalf("categories mismatch (-want +got):\n%s", diff)
	}
	for _, r := range ds.Records {
		if r.Sales < 0 || r.Units < 50 || r.Units >= 200 || r.Customers < 20 || r.Customers >= 100 {
			t.Fatalf("record out of range: %+v", r)
		}
	}

	again := GenerateSample(now.Add(2*time.Hour), 90, DefaultSampleSeed)
	if diff := cmp.Diff(ds.Records, again.Records); diff != "" {
		t.Fatalf("expected deterministic output for the same day (-want +got):\n%s", diff)
	}
}
