package responses

import "github.com/address-resolver/app/models"

// ResolveAddressResponse response resolve địa chỉ đơn lẻ
type ResolveAddressResponse struct {
	GazetteerVersion string                  `json:"gazetteer_version"`     // Phiên bản gazetteer
	Result           models.ResolutionResult `json:"result"`                // Kết quả resolve
	Suggestions      *models.SuggestionSet   `json:"suggestions,omitempty"` // Gợi ý cho cấp chưa resolve
	ProcessingTimeMs int64                   `json:"processing_time_ms"`    // Thời gian xử lý (ms)
	CacheHit         bool                    `json:"cache_hit"`             // Có hit cache không
}

// BatchResolveResponse response resolve hàng loạt địa chỉ
type BatchResolveResponse struct {
	JobID            string `json:"job_id"`            // ID của job
	EstimatedSeconds int    `json:"estimated_seconds"` // Thời gian ước tính (giây)
	TotalAddresses   int    `json:"total_addresses"`   // Tổng số địa chỉ
	Message          string `json:"message"`           // Thông báo
}

// JobStatusResponse response trạng thái job
type JobStatusResponse struct {
	JobID     string  `json:"job_id"`    // ID của job
	Status    string  `json:"status"`    // Trạng thái job
	Progress  float64 `json:"progress"`  // Tiến độ (0.0 - 1.0)
	Processed int     `json:"processed"` // Số địa chỉ đã xử lý
	Total     int     `json:"total"`     // Tổng số địa chỉ
	Message   string  `json:"message"`   // Thông báo
}

// JobStatus constants
const (
	JobStatusPending = "pending"
	JobStatusRunning = "running"
	JobStatusDone    = "done"
	JobStatusFailed  = "failed"
)

// SuggestResponse response gợi ý đơn vị hành chính
type SuggestResponse struct {
	GazetteerVersion string                  `json:"gazetteer_version"` // Phiên bản gazetteer
	Result           models.ResolutionResult `json:"result"`            // Kết quả resolve tốt nhất
	Suggestions      models.SuggestionSet    `json:"suggestions"`       // Gợi ý cho cấp chưa resolve
}

// GazetteerStatsResponse response thống kê gazetteer
type GazetteerStatsResponse struct {
	Version   string `json:"version"`   // Phiên bản gazetteer
	Provinces int    `json:"provinces"` // Số tỉnh/thành phố
	Districts int    `json:"districts"` // Số quận/huyện
	Wards     int    `json:"wards"`     // Số phường/xã
}

// ErrorResponse response lỗi
type ErrorResponse struct {
	Error   string `json:"error"`   // Mã lỗi
	Message string `json:"message"` // Thông báo lỗi
}

// SuccessResponse response thành công
type SuccessResponse struct {
	Success bool        `json:"success"`        // Có thành công không
	Message string      `json:"message"`        // Thông báo
	Data    interface{} `json:"data,omitempty"` // Dữ liệu
}

// HealthCheckResponse response kiểm tra sức khỏe
type HealthCheckResponse struct {
	Status    string            `json:"status"`    // Trạng thái sức khỏe
	Timestamp string            `json:"timestamp"` // Thời gian kiểm tra
	Uptime    string            `json:"uptime"`    // Thời gian hoạt động
	Version   string            `json:"version"`   // Phiên bản service
	Services  map[string]string `json:"services"`  // Trạng thái các service
}
