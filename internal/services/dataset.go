package services

import (
	"context"
	"time"

	"github.com/GregMSThompson/sales-dashboard/internal/dataset"
	"github.com/GregMSThompson/sales-dashboard/internal/dto"
	"github.com/GregMSThompson/sales-dashboard/internal/errs"
	"github.com/GregMSThompson/sales-dashboard/internal/metrics"
	"github.com/GregMSThompson/sales-dashboard/internal/models"
	"github.com/GregMSThompson/sales-dashboard/pkg/logger"
)

const noDatasetMessage = "no data loaded: load sample data or upload a file first"

// datasetCache holds each session's loaded and filtered datasets.
type datasetCache interface {
	Dataset(sessionID string) *models.Dataset
	Filtered(sessionID string) *models.Dataset
	SetDataset(sessionID string, ds *models.Dataset)
	SetFiltered(sessionID string, ds *models.Dataset)
}

type datasetService struct {
	cache      datasetCache
	now        func() time.Time
	sampleDays int
	sampleSeed uint64
}

func NewDatasetService(cache datasetCache, sampleDays int, sampleSeed uint64) *datasetService {
	return &datasetService{
		cache:      cache,
		now:        time.Now,
		sampleDays: sampleDays,
		sampleSeed: sampleSeed,
	}
}

// Sample generates the synthetic dataset for today without loading it.
func (s *datasetService) Sample() *models.Dataset {
	return dataset.GenerateSample(s.now(), s.sampleDays, s.sampleSeed)
}

func (s *datasetService) LoadSample(ctx context.Context, sessionID string) (dto.DatasetInfo, error) {
	ds := s.Sample()
	s.cache.SetDataset(sessionID, ds)
	metrics.DatasetLoaded("sample", nil)

	logger.FromContext(ctx).Info("sample dataset loaded", "rows", ds.Len())
	return dto.NewDatasetInfo(ds), nil
}

// LoadUpload parses and validates an uploaded file. A file that fails
// validation leaves the session's current dataset in place.
func (s *datasetService) LoadUpload(ctx context.Context, sessionID, filename string, data []byte) (dto.DatasetInfo, error) {
	log := logger.FromContext(ctx)

	ds, err := dataset.Load(filename, data)
	metrics.DatasetLoaded("upload", err)
	if err != nil {
		log.Warn("upload rejected", "filename", filename, "error", err)
		return dto.DatasetInfo{}, err
	}
	ds.LoadedAt = s.now()
	s.cache.SetDataset(sessionID, ds)

	log.Info("upload loaded", "filename", filename, "rows", ds.Len(), "dropped", ds.Dropped)
	return dto.NewDatasetInfo(ds), nil
}

func (s *datasetService) Current(_ context.Context, sessionID string) (dto.DatasetInfo, error) {
	ds := s.cache.Dataset(sessionID)
	if ds == nil {
		return dto.DatasetInfo{}, errs.NewNotFoundError(noDatasetMessage)
	}
	return dto.NewDatasetInfo(ds), nil
}

// workingSet is the dataset downstream pages operate on: the last filtered
// view, or the loaded dataset if no render cycle has filtered it yet.
func workingSet(cache datasetCache, sessionID string) (*models.Dataset, error) {
	if ds := cache.Filtered(sessionID); ds != nil {
		return ds, nil
	}
	if ds := cache.Dataset(sessionID); ds != nil {
		return ds, nil
	}
	return nil, errs.NewNotFoundError(noDatasetMessage)
}
