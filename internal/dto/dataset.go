package dto

import (
	"time"

	"github.com/GregMSThompson/sales-dashboard/internal/models"
)

type DatasetInfo struct {
	Name      string           `json:"name"`
	SourceID  string           `json:"sourceId"`
	Rows      int              `json:"rows"`
	Dropped   int              `json:"dropped"`
	LoadedAt  time.Time        `json:"loadedAt"`
	Signature models.Signature `json:"signature"`
}

func NewDatasetInfo(ds *models.Dataset) DatasetInfo {
	return DatasetInfo{
		Name:      ds.Name,
		SourceID:  ds.SourceID,
		Rows:      ds.Len(),
		Dropped:   ds.Dropped,
		LoadedAt:  ds.LoadedAt,
		Signature: ds.Signature(),
	}
}
