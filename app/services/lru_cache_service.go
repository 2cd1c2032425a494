package services

import (
	"context"
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/address-resolver/app/models"
	"go.uber.org/zap"
)

// LRUCacheService cache in-process dùng LRU, phù hợp chạy một instance
// hoặc làm tầng L1 trước Redis
type LRUCacheService struct {
	cache  *lru.Cache[string, *models.ResolutionResult]
	logger *zap.Logger

	hits   int64
	misses int64
}

// NewLRUCacheService tạo mới LRU cache service
func NewLRUCacheService(size int, logger *zap.Logger) (*LRUCacheService, error) {
	cache, err := lru.New[string, *models.ResolutionResult](size)
	if err != nil {
		return nil, fmt.Errorf("lỗi tạo LRU cache: %w", err)
	}
	return &LRUCacheService{
		cache:  cache,
		logger: logger,
	}, nil
}

// Get lấy kết quả từ cache
func (lcs *LRUCacheService) Get(ctx context.Context, key string) (*models.ResolutionResult, bool, error) {
	result, ok := lcs.cache.Get(key)
	if !ok {
		atomic.AddInt64(&lcs.misses, 1)
		return nil, false, nil
	}

	atomic.AddInt64(&lcs.hits, 1)
	lcs.logger.Debug("LRU cache hit", zap.String("key", key))
	return result, true, nil
}

// Set lưu kết quả vào cache
func (lcs *LRUCacheService) Set(ctx context.Context, key string, result *models.ResolutionResult) error {
	lcs.cache.Add(key, result)
	return nil
}

// Delete xóa key khỏi cache
func (lcs *LRUCacheService) Delete(ctx context.Context, key string) error {
	lcs.cache.Remove(key)
	return nil
}

// Clear xóa toàn bộ cache
func (lcs *LRUCacheService) Clear(ctx context.Context) error {
	lcs.cache.Purge()
	lcs.logger.Info("Đã clear LRU cache")
	return nil
}

// Stats lấy thống kê cache
func (lcs *LRUCacheService) Stats(ctx context.Context) (*CacheStats, error) {
	hits := atomic.LoadInt64(&lcs.hits)
	misses := atomic.LoadInt64(&lcs.misses)

	total := hits + misses
	hitRate := float64(0)
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return &CacheStats{
		HitRate:    hitRate,
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: int64(lcs.cache.Len()),
	}, nil
}

// Close không có kết nối cần đóng
func (lcs *LRUCacheService) Close() error { return nil }
