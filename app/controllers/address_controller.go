package controllers

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/address-resolver/app/requests"
	"github.com/address-resolver/app/responses"
	"github.com/address-resolver/app/services"
	"github.com/address-resolver/helpers/utils"
	"github.com/address-resolver/internal/normalizer"
	"go.uber.org/zap"
)

// AddressController controller xử lý các request liên quan đến địa chỉ
type AddressController struct {
	resolveService *services.ResolveService
	cacheService   services.ICacheService
	logger         *zap.Logger
}

// NewAddressController tạo mới AddressController
func NewAddressController(resolveService *services.ResolveService, cacheService services.ICacheService, logger *zap.Logger) *AddressController {
	return &AddressController{
		resolveService: resolveService,
		cacheService:   cacheService,
		logger:         logger,
	}
}

// ResolveAddress resolve địa chỉ đơn lẻ
func (ac *AddressController) ResolveAddress(c *gin.Context) {
	var req requests.ResolveAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "Request không hợp lệ: " + err.Error(),
		})
		return
	}

	startTime := time.Now()

	result, cacheHit, err := ac.resolveService.ResolveAddress(c.Request.Context(), req.Address, req.Options)
	if err != nil {
		status := http.StatusInternalServerError
		code := "RESOLVE_ERROR"
		if errors.Is(err, services.ErrEmptyAddress) || errors.Is(err, normalizer.ErrInvalidInput) {
			status = http.StatusBadRequest
			code = "INVALID_ADDRESS"
		}
		c.JSON(status, responses.ErrorResponse{
			Error:   code,
			Message: "Lỗi resolve địa chỉ: " + err.Error(),
		})
		return
	}

	resp := responses.ResolveAddressResponse{
		GazetteerVersion: ac.resolveService.GazetteerVersion(),
		Result:           *result,
		ProcessingTimeMs: time.Since(startTime).Milliseconds(),
		CacheHit:         cacheHit,
	}

	if req.Options.WithSuggestions && !result.IsResolved() {
		if _, set, err := ac.resolveService.Suggest(c.Request.Context(), req.Address, req.Options.TopK); err == nil && !set.IsEmpty() {
			resp.Suggestions = set
		}
	}

	c.JSON(http.StatusOK, resp)
}

// BatchResolve tạo job resolve hàng loạt địa chỉ
func (ac *AddressController) BatchResolve(c *gin.Context) {
	var req requests.BatchResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "Request không hợp lệ: " + err.Error(),
		})
		return
	}

	jobID := utils.GenerateUUID()
	estimatedTime := ac.resolveService.EstimateBatchProcessingTime(len(req.Addresses))

	go ac.resolveService.ProcessBatchJob(jobID, req.Addresses, req.Options)

	c.JSON(http.StatusAccepted, responses.BatchResolveResponse{
		JobID:            jobID,
		EstimatedSeconds: estimatedTime,
		TotalAddresses:   len(req.Addresses),
		Message:          "Job đã được tạo và đang xử lý",
	})
}

// GetJobStatus lấy trạng thái job
func (ac *AddressController) GetJobStatus(c *gin.Context) {
	jobID := c.Param("jobID")

	status, err := ac.resolveService.GetJobStatus(jobID)
	if err != nil {
		c.JSON(http.StatusNotFound, responses.ErrorResponse{
			Error:   "JOB_NOT_FOUND",
			Message: "Không tìm thấy job: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.JobStatusResponse{
		JobID:     jobID,
		Status:    status.Status,
		Progress:  status.Progress,
		Processed: status.Processed,
		Total:     status.Total,
		Message:   status.Message,
	})
}

// GetJobResults lấy kết quả job với hỗ trợ NDJSON + gzip streaming
func (ac *AddressController) GetJobResults(c *gin.Context) {
	jobID := c.Param("jobID")

	if c.Query("format") == "ndjson" {
		ac.streamNDJSONResults(c, jobID, c.Query("gzip") == "1")
		return
	}

	results, err := ac.resolveService.GetJobResults(jobID)
	if err != nil {
		c.JSON(http.StatusNotFound, responses.ErrorResponse{
			Error:   "JOB_NOT_FOUND",
			Message: "Không tìm thấy job: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success: true,
		Message: "Lấy kết quả thành công",
		Data:    results,
	})
}

// Suggest gợi ý đơn vị hành chính cho địa chỉ khó resolve
func (ac *AddressController) Suggest(c *gin.Context) {
	var req requests.SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "Request không hợp lệ: " + err.Error(),
		})
		return
	}

	result, set, err := ac.resolveService.Suggest(c.Request.Context(), req.Address, req.TopK)
	if err != nil {
		status := http.StatusInternalServerError
		code := "SUGGEST_ERROR"
		if errors.Is(err, services.ErrEmptyAddress) || errors.Is(err, normalizer.ErrInvalidInput) {
			status = http.StatusBadRequest
			code = "INVALID_ADDRESS"
		}
		c.JSON(status, responses.ErrorResponse{
			Error:   code,
			Message: "Lỗi gợi ý địa chỉ: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.SuggestResponse{
		GazetteerVersion: ac.resolveService.GazetteerVersion(),
		Result:           *result,
		Suggestions:      *set,
	})
}

// GazetteerStats thống kê gazetteer đang phục vụ
func (ac *AddressController) GazetteerStats(c *gin.Context) {
	provinces, districts, wards := ac.resolveService.GazetteerCounts()

	c.JSON(http.StatusOK, responses.GazetteerStatsResponse{
		Version:   ac.resolveService.GazetteerVersion(),
		Provinces: provinces,
		Districts: districts,
		Wards:     wards,
	})
}

// CacheStats thống kê cache kết quả
func (ac *AddressController) CacheStats(c *gin.Context) {
	stats, err := ac.cacheService.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "CACHE_ERROR",
			Message: "Lỗi lấy thống kê cache: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success: true,
		Message: "Lấy thống kê cache thành công",
		Data:    stats,
	})
}

// InvalidateCache xóa toàn bộ cache kết quả
func (ac *AddressController) InvalidateCache(c *gin.Context) {
	if err := ac.cacheService.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "CACHE_ERROR",
			Message: "Lỗi clear cache: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success: true,
		Message: "Đã clear cache",
	})
}

// HealthCheck kiểm tra sức khỏe service
func (ac *AddressController) HealthCheck(c *gin.Context) {
	uptime := time.Since(ac.resolveService.GetStartTime())

	c.JSON(http.StatusOK, responses.HealthCheckResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    uptime.String(),
		Version:   "1.0.0",
		Services: map[string]string{
			"resolver": "healthy",
			"cache":    "healthy",
		},
	})
}

// streamNDJSONResults stream kết quả theo format NDJSON với hỗ trợ gzip
func (ac *AddressController) streamNDJSONResults(c *gin.Context, jobID string, gzipEnabled bool) {
	resultChannel, err := ac.resolveService.GetJobResultsStream(jobID)
	if err != nil {
		c.JSON(http.StatusNotFound, responses.ErrorResponse{
			Error:   "JOB_NOT_FOUND",
			Message: "Không tìm thấy job: " + err.Error(),
		})
		return
	}

	c.Header("Content-Type", "application/x-ndjson")

	var writer gin.ResponseWriter = c.Writer
	if gzipEnabled {
		c.Header("Content-Encoding", "gzip")
		gzWriter := gzip.NewWriter(c.Writer)
		defer gzWriter.Close()
		writer = &gzipResponseWriter{
			ResponseWriter: c.Writer,
			gzWriter:       gzWriter,
		}
	}

	encoder := json.NewEncoder(writer)
	for result := range resultChannel {
		if err := encoder.Encode(result); err != nil {
			ac.logger.Error("Lỗi encode NDJSON", zap.Error(err))
			break
		}
		if flusher, ok := writer.(http.Flusher); ok {
			flusher.Flush()
		}
	}
}

// gzipResponseWriter wrapper cho gzip writer
type gzipResponseWriter struct {
	gin.ResponseWriter
	gzWriter *gzip.Writer
}

func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	return w.gzWriter.Write(data)
}

func (w *gzipResponseWriter) Flush() {
	w.gzWriter.Flush()
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}
