package jobs

import (
	"context"

	"github.com/emrgen/journal/internal/cache"
	"github.com/emrgen/journal/internal/store"
	"github.com/sirupsen/logrus"
)

var _ CronJob = (*CacheEvictJob)(nil)

// CacheEvictJob drops trashed journals from the lookup cache so reads
// stop serving them between TTL expiries.
type CacheEvictJob struct {
	store store.Store
	cache cache.JournalCache
}

func NewCacheEvictJob(store store.Store, cache cache.JournalCache) *CacheEvictJob {
	return &CacheEvictJob{
		store: store,
		cache: cache,
	}
}

func (j *CacheEvictJob) Schedule() string {
	return "@every 5m"
}

func (j *CacheEvictJob) Run() {
	ctx := context.Background()

	trash := true
	journals, err := j.store.SearchJournals(ctx, store.JournalFilter{Trash: &trash})
	if err != nil {
		logrus.Errorf("cache evict: listing trashed journals failed: %v", err)
		return
	}

	for _, journal := range journals {
		if err := j.cache.DeleteJournal(ctx, journal); err != nil {
			logrus.Errorf("cache evict: dropping journal '%s' failed: %v", journal.Name, err)
		}
	}
}
