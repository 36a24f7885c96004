package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/GregMSThompson/sales-dashboard/internal/report"
)

const testCSV = `Date,Category,Region,Sales,Units,Customers
2025-01-01,Electronics,North,100,2,1
2025-01-02,Electronics,South,300,4,2
2025-01-02,Sports,South,50,1,1
2025-01-03,Sports,North,abc,5,3
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeTestCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.csv")
	if err := os.WriteFile(path, []byte(testCSV), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestSampleCmd(t *testing.T) {
	out, err := run(t, "sample", "--days", "2", "--seed", "1")
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}
	// header plus 3 days x 5 categories x 4 regions
	if lines := strings.Count(out, "\n"); lines != 61 {
		t.Fatalf("expected 61 lines, got %d", lines)
	}
}

func TestValidateCmd(t *testing.T) {
	out, err := run(t, "validate", writeTestCSV(t))
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	for _, want := range []string{"rows:       3", "dropped:    1", "dates:      2025-01-01 to 2025-01-02"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestValidateCmdRejectsSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	os.WriteFile(path, []byte("Date,Sales\n2025-01-01,1\n"), 0o600)

	if _, err := run(t, "validate", path); err == nil || !strings.Contains(err.Error(), "missing required columns") {
		t.Fatalf("expected a schema error, got %v", err)
	}
}

func TestReportCmd(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.xlsx")
	if _, err := run(t, "report", writeTestCSV(t), "--out", out, "--region", "South"); err != nil {
		t.Fatalf("report failed: %v", err)
	}

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(report.SheetRaw)
	if err != nil {
		t.Fatalf("read raw data: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 South rows, got %d", len(rows))
	}
}

func TestReportCmdEmptySelection(t *testing.T) {
	_, err := run(t, "report", writeTestCSV(t), "--out", filepath.Join(t.TempDir(), "r.xlsx"), "--start", "2025-01-02", "--end", "2025-01-02", "--region", "North")
	if err == nil {
		t.Fatal("expected an error for a selection with no rows")
	}
}
