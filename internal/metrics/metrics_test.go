package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRender(t *testing.T) {
	before := testutil.ToFloat64(renderCycles)
	resets := testutil.ToFloat64(filterResets)
	empties := testutil.ToFloat64(emptyResults)

	ObserveRender(time.Now(), true, false)

	if got := testutil.ToFloat64(renderCycles); got != before+1 {
		t.Fatalf("expected render count %v, got %v", before+1, got)
	}
	if got := testutil.ToFloat64(filterResets); got != resets+1 {
		t.Fatalf("expected reset count %v, got %v", resets+1, got)
	}
	if got := testutil.ToFloat64(emptyResults); got != empties {
		t.Fatalf("expected empty count unchanged, got %v", got)
	}
}

func TestDatasetLoaded(t *testing.T) {
	ok := testutil.ToFloat64(datasetLoads.WithLabelValues("upload", "ok"))
	failed := testutil.ToFloat64(datasetLoads.WithLabelValues("upload", "error"))

	DatasetLoaded("upload", nil)
	DatasetLoaded("upload", errors.New("boom"))

	if got := testutil.ToFloat64(datasetLoads.WithLabelValues("upload", "ok")); got != ok+1 {
		t.Fatalf("expected ok count %v, got %v", ok+1, got)
	}
	if got := testutil.ToFloat64(datasetLoads.WithLabelValues("upload", "error")); got != failed+1 {
		t.Fatalf("expected error count %v, got %v", failed+1, got)
	}
}
