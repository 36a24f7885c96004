package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/GregMSThompson/sales-dashboard/internal/models"
)

// UploadSourceID fingerprints an upload by name and content, so re-sending
// the same file yields the same source while an edited file does not.
func UploadSourceID(name string, data []byte) string {
	return fmt.Sprintf("upload:%s:%016x", name, xxhash.Sum64(data))
}

// Load reads and validates an uploaded file in one step.
func Load(name string, data []byte) (*models.Dataset, error) {
	t, err := ReadTable(name, data)
	if err != nil {
		return nil, err
	}
	return Validate(t, UploadSourceID(name, data), name)
}

// WriteCSV writes records with a header row in schema column order.
func WriteCSV(w io.Writer, records []models.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(models.Columns); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Date,
			r.Category,
			r.Region,
			strconv.FormatFloat(r.Sales, 'f', -1, 64),
			strconv.Itoa(r.Units),
			strconv.Itoa(r.Customers),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
