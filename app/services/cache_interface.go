package services

import (
	"context"

	"github.com/address-resolver/app/models"
)

// CacheStats thống kê cache
type CacheStats struct {
	HitRate    float64 `json:"hit_rate"`
	TotalHits  int64   `json:"total_hits"`
	TotalMiss  int64   `json:"total_miss"`
	TotalItems int64   `json:"total_items"`
}

// ICacheService interface định nghĩa các method cần thiết cho cache kết quả
// resolve. Key là fingerprint của địa chỉ đã chuẩn hóa kèm phiên bản
// gazetteer, nên đổi gazetteer tự động miss toàn bộ key cũ.
type ICacheService interface {
	// Get lấy kết quả từ cache
	Get(ctx context.Context, key string) (*models.ResolutionResult, bool, error)

	// Set lưu kết quả vào cache
	Set(ctx context.Context, key string, result *models.ResolutionResult) error

	// Delete xóa một key khỏi cache
	Delete(ctx context.Context, key string) error

	// Clear xóa toàn bộ cache
	Clear(ctx context.Context) error

	// Stats lấy thống kê cache
	Stats(ctx context.Context) (*CacheStats, error)

	// Close đóng kết nối (nếu cần)
	Close() error
}
