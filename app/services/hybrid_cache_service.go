package services

import (
	"context"

	"github.com/address-resolver/app/models"
	"go.uber.org/zap"
)

// HybridCacheService kết hợp LRU in-process (L1) và Redis (L2) theo kiểu
// read-through: miss L1 thì đọc L2 rồi backfill L1; ghi write-through
// cả hai tầng. Lỗi L2 không chặn hot path, chỉ log warning.
type HybridCacheService struct {
	l1     *LRUCacheService
	l2     *RedisCacheService
	logger *zap.Logger
}

// NewHybridCacheService tạo mới hybrid cache service
func NewHybridCacheService(l1 *LRUCacheService, l2 *RedisCacheService, logger *zap.Logger) *HybridCacheService {
	return &HybridCacheService{
		l1:     l1,
		l2:     l2,
		logger: logger,
	}
}

// Get đọc L1 trước, miss thì đọc L2 và backfill L1
func (hcs *HybridCacheService) Get(ctx context.Context, key string) (*models.ResolutionResult, bool, error) {
	if result, found, err := hcs.l1.Get(ctx, key); err == nil && found {
		return result, true, nil
	}

	result, found, err := hcs.l2.Get(ctx, key)
	if err != nil {
		hcs.logger.Warn("Lỗi đọc L2 cache, coi như miss", zap.Error(err))
		return nil, false, nil
	}
	if !found {
		return nil, false, nil
	}

	if err := hcs.l1.Set(ctx, key, result); err != nil {
		hcs.logger.Warn("Lỗi backfill L1 cache", zap.Error(err))
	}
	return result, true, nil
}

// Set ghi write-through cả hai tầng
func (hcs *HybridCacheService) Set(ctx context.Context, key string, result *models.ResolutionResult) error {
	if err := hcs.l1.Set(ctx, key, result); err != nil {
		return err
	}
	if err := hcs.l2.Set(ctx, key, result); err != nil {
		hcs.logger.Warn("Lỗi ghi L2 cache", zap.Error(err))
	}
	return nil
}

// Delete xóa key khỏi cả hai tầng
func (hcs *HybridCacheService) Delete(ctx context.Context, key string) error {
	if err := hcs.l1.Delete(ctx, key); err != nil {
		return err
	}
	return hcs.l2.Delete(ctx, key)
}

// Clear xóa toàn bộ cả hai tầng
func (hcs *HybridCacheService) Clear(ctx context.Context) error {
	if err := hcs.l1.Clear(ctx); err != nil {
		return err
	}
	return hcs.l2.Clear(ctx)
}

// Stats gộp thống kê: hits/misses theo tổng hai tầng, items theo L2
func (hcs *HybridCacheService) Stats(ctx context.Context) (*CacheStats, error) {
	l1Stats, err := hcs.l1.Stats(ctx)
	if err != nil {
		return nil, err
	}
	l2Stats, err := hcs.l2.Stats(ctx)
	if err != nil {
		return l1Stats, nil
	}

	hits := l1Stats.TotalHits + l2Stats.TotalHits
	misses := l2Stats.TotalMiss
	total := hits + misses
	hitRate := float64(0)
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return &CacheStats{
		HitRate:    hitRate,
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: l2Stats.TotalItems,
	}, nil
}

// Close đóng kết nối của cả hai tầng
func (hcs *HybridCacheService) Close() error {
	if err := hcs.l1.Close(); err != nil {
		return err
	}
	return hcs.l2.Close()
}
