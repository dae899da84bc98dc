package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/archivedesk/minutes/internal/cache"
	"github.com/archivedesk/minutes/internal/model"
	"github.com/archivedesk/minutes/internal/store"
	"github.com/sirupsen/logrus"
)

const (
	statsCacheKey = "minutes:stats"
	statsCacheTTL = 30 * time.Second
)

// StatsService serves the global counters. The database computes them at
// call time; a short-lived cache entry absorbs dashboard polling. Mutations
// invalidate the entry rather than updating it.
type StatsService struct {
	store store.Store
	cache cache.KV
}

func NewStatsService(st store.Store, kv cache.KV) *StatsService {
	return &StatsService{store: st, cache: kv}
}

func (s *StatsService) GetMomStats(ctx context.Context) (model.MomStats, error) {
	if cached, err := s.cache.Get(ctx, statsCacheKey); err == nil {
		var stats model.MomStats
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return stats, nil
		}
	}

	stats, err := s.store.GetMomStats(ctx, time.Now())
	if err != nil {
		return model.MomStats{}, &StorageError{Err: err}
	}

	if data, err := json.Marshal(stats); err == nil {
		if err := s.cache.Set(ctx, statsCacheKey, string(data), statsCacheTTL); err != nil {
			logrus.Warnf("stats: cache set failed: %v", err)
		}
	}

	return stats, nil
}

// Invalidate drops the cached counters after a mutation.
func (s *StatsService) Invalidate(ctx context.Context) error {
	return s.cache.Del(ctx, statsCacheKey)
}
