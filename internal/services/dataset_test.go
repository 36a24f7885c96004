package services

import (
	"errors"
	"testing"
	"time"

	"github.com/GregMSThompson/sales-dashboard/internal/dataset"
	"github.com/GregMSThompson/sales-dashboard/internal/errs"
	"github.com/GregMSThompson/sales-dashboard/pkg/helpers"
)

func newTestDatasetService(cache *fakeCache) *datasetService {
	svc := NewDatasetService(cache, dataset.DefaultSampleDays, dataset.DefaultSampleSeed)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestLoadSample(t *testing.T) {
	cache := newFakeCache()
	svc := newTestDatasetService(cache)

	info, err := svc.LoadSample(helpers.TestCtx(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Rows != 1820 || info.Signature.MaxDate != "2025-06-30" {
		t.Fatalf("unexpected info %+v", info)
	}
	if !cache.Dataset("s1").Signature().Equal(sampleDataset().Signature()) {
		t.Fatal("expected repeated sample loads to share a signature")
	}
}

func TestLoadUpload(t *testing.T) {
	cache := newFakeCache()
	svc := newTestDatasetService(cache)
	data := []byte("Date,Category,Region,Sales,Units,Customers\n2025-01-01,Sports,North,10,1,1\n")

	info, err := svc.LoadUpload(helpers.TestCtx(), "s1", "sales.csv", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Rows != 1 || info.Name != "sales.csv" {
		t.Fatalf("unexpected info %+v", info)
	}
}

func TestLoadUploadKeepsPreviousDataset(t *testing.T) {
	cache := newFakeCache()
	previous := smallDataset("a")
	cache.SetDataset("s1", previous)
	svc := newTestDatasetService(cache)

	_, err := svc.LoadUpload(helpers.TestCtx(), "s1", "bad.csv", []byte("Date,Category\n2025-01-01,Sports\n"))

	var schemaErr *errs.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %T (%v)", err, err)
	}
	if cache.Dataset("s1") != previous {
		t.Fatal("expected a rejected upload to leave the dataset unchanged")
	}
}

func TestCurrentWithoutDataset(t *testing.T) {
	_, err := newTestDatasetService(newFakeCache()).Current(helpers.TestCtx(), "s1")

	var notFound *errs.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %T (%v)", err, err)
	}
}
