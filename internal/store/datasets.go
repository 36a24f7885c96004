package store

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/GregMSThompson/sales-dashboard/internal/models"
)

type cachedDatasets struct {
	raw      *models.Dataset
	filtered *models.Dataset
}

// DatasetCache holds each session's loaded dataset and its latest filtered
// view. Datasets are treated as immutable once stored. At most maxSessions
// sessions are kept; the least recently used is evicted first, and a
// session not written for ttl expires.
type DatasetCache struct {
	mu       sync.Mutex
	sessions *expirable.LRU[string, cachedDatasets]
}

func NewDatasetCache(maxSessions int, ttl time.Duration) *DatasetCache {
	return &DatasetCache{sessions: expirable.NewLRU[string, cachedDatasets](maxSessions, nil, ttl)}
}

func (c *DatasetCache) Dataset(sessionID string) *models.Dataset {
	entry, _ := c.sessions.Get(sessionID)
	return entry.raw
}

func (c *DatasetCache) Filtered(sessionID string) *models.Dataset {
	entry, _ := c.sessions.Get(sessionID)
	return entry.filtered
}

// SetDataset replaces the session's dataset and drops any filtered view
// derived from the previous one.
func (c *DatasetCache) SetDataset(sessionID string, ds *models.Dataset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions.Add(sessionID, cachedDatasets{raw: ds})
}

func (c *DatasetCache) SetFiltered(sessionID string, ds *models.Dataset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, _ := c.sessions.Peek(sessionID)
	entry.filtered = ds
	c.sessions.Add(sessionID, entry)
}

func (c *DatasetCache) Delete(sessionID string) {
	c.sessions.Remove(sessionID)
}

// Len reports how many sessions are cached.
func (c *DatasetCache) Len() int {
	return c.sessions.Len()
}
