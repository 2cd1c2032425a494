package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/address-resolver/app/models"
	"github.com/address-resolver/app/requests"
	"github.com/address-resolver/internal/gazetteer"
	"github.com/address-resolver/internal/normalizer"
	"github.com/address-resolver/internal/resolver"
	"github.com/address-resolver/internal/suggest"
	"go.uber.org/zap"
)

// ErrEmptyAddress địa chỉ đầu vào rỗng
var ErrEmptyAddress = errors.New("địa chỉ không được để trống")

// ErrJobNotFound không tìm thấy job theo id
var ErrJobNotFound = errors.New("job không tồn tại")

// ISuggester backend gợi ý: fuzzy in-memory hoặc Meilisearch
type ISuggester interface {
	SuggestProvinces(query string, topK int) []suggest.Candidate
	SuggestDistricts(query, provinceID string, topK int) []suggest.Candidate
	SuggestWards(query, districtID string, topK int) []suggest.Candidate
}

// JobStatus trạng thái của batch job
type JobStatus struct {
	JobID     string
	Status    string
	Progress  float64
	Processed int
	Total     int
	Message   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ResolveService service xử lý logic resolve địa chỉ: chuẩn hóa, cache,
// resolve, ráp kết quả, gợi ý, batch job
type ResolveService struct {
	normalizer *normalizer.TextNormalizer
	resolver   *resolver.Resolver
	gaz        *gazetteer.Gazetteer
	cache      ICacheService
	suggester  ISuggester
	logger     *zap.Logger
	startTime  time.Time

	mu         sync.RWMutex
	jobs       map[string]*JobStatus
	jobResults map[string][]*models.ResolutionResult
}

// NewResolveService tạo mới ResolveService
func NewResolveService(
	tn *normalizer.TextNormalizer,
	r *resolver.Resolver,
	gaz *gazetteer.Gazetteer,
	cache ICacheService,
	suggester ISuggester,
	logger *zap.Logger,
) *ResolveService {
	return &ResolveService{
		normalizer: tn,
		resolver:   r,
		gaz:        gaz,
		cache:      cache,
		suggester:  suggester,
		logger:     logger,
		startTime:  time.Now(),
		jobs:       make(map[string]*JobStatus),
		jobResults: make(map[string][]*models.ResolutionResult),
	}
}

// ResolveAddress resolve một địa chỉ; trả về kết quả và cờ cache hit
func (rs *ResolveService) ResolveAddress(ctx context.Context, rawAddress string, options requests.ResolveOptions) (*models.ResolutionResult, bool, error) {
	if rawAddress == "" {
		return nil, false, ErrEmptyAddress
	}

	normalized, err := rs.normalizer.Normalize(rawAddress)
	if err != nil {
		return nil, false, fmt.Errorf("lỗi chuẩn hóa địa chỉ: %w", err)
	}

	fingerprint := rs.fingerprint(normalized)

	if options.UseCache && rs.cache != nil {
		if cached, found, err := rs.cache.Get(ctx, fingerprint); err == nil && found {
			// Raw khác nhau có thể chuẩn hóa về cùng fingerprint
			result := *cached
			result.Raw = rawAddress
			return &result, true, nil
		}
	}

	res := rs.resolver.Resolve(normalized)

	result := &models.ResolutionResult{
		Raw:              rawAddress,
		Normalized:       normalized,
		Remainder:        res.Remainder,
		Province:         unitName(res.Province),
		District:         unitName(res.District),
		Ward:             unitName(res.Ward),
		GazetteerVersion: rs.gaz.Version(),
		Fingerprint:      fingerprint,
	}
	result.Assembled = models.Assemble(result.Remainder, result.Ward, result.District, result.Province)

	if options.UseCache && rs.cache != nil {
		if err := rs.cache.Set(ctx, fingerprint, result); err != nil {
			rs.logger.Warn("Lỗi ghi cache", zap.Error(err), zap.String("fingerprint", fingerprint))
		}
	}

	return result, false, nil
}

// Suggest resolve địa chỉ rồi gợi ý candidate cho các cấp chưa resolve được.
// Gợi ý chỉ phục vụ review thủ công, không sửa kết quả resolve.
func (rs *ResolveService) Suggest(ctx context.Context, rawAddress string, topK int) (*models.ResolutionResult, *models.SuggestionSet, error) {
	if topK <= 0 {
		topK = 5
	}

	if rawAddress == "" {
		return nil, nil, ErrEmptyAddress
	}
	normalized, err := rs.normalizer.Normalize(rawAddress)
	if err != nil {
		return nil, nil, fmt.Errorf("lỗi chuẩn hóa địa chỉ: %w", err)
	}

	res := rs.resolver.Resolve(normalized)
	result := &models.ResolutionResult{
		Raw:              rawAddress,
		Normalized:       normalized,
		Remainder:        res.Remainder,
		Province:         unitName(res.Province),
		District:         unitName(res.District),
		Ward:             unitName(res.Ward),
		GazetteerVersion: rs.gaz.Version(),
		Fingerprint:      rs.fingerprint(normalized),
	}
	result.Assembled = models.Assemble(result.Remainder, result.Ward, result.District, result.Province)

	set := &models.SuggestionSet{}
	if rs.suggester == nil {
		return result, set, nil
	}

	query := result.Remainder
	if query == "" {
		query = result.Normalized
	}

	var provinceID, districtID string
	if res.Province != nil {
		provinceID = res.Province.ID
	}
	if res.District != nil {
		districtID = res.District.ID
	}

	if result.Province == "" {
		set.Provinces = toSuggestions(rs.suggester.SuggestProvinces(query, topK))
	}
	if result.District == "" {
		set.Districts = toSuggestions(rs.suggester.SuggestDistricts(query, provinceID, topK))
	}
	if result.Ward == "" && districtID != "" {
		set.Wards = toSuggestions(rs.suggester.SuggestWards(query, districtID, topK))
	}

	return result, set, nil
}

// fingerprint khóa cache: sha256 của địa chỉ đã chuẩn hóa + phiên bản
// gazetteer, phân tách bằng ký tự không xuất hiện trong address
func (rs *ResolveService) fingerprint(normalized string) string {
	h := sha256.New()
	h.Write([]byte(normalized))
	h.Write([]byte{0x1F})
	h.Write([]byte(rs.gaz.Version()))
	return hex.EncodeToString(h.Sum(nil))
}

// EstimateBatchProcessingTime ước tính thời gian xử lý batch (giây)
func (rs *ResolveService) EstimateBatchProcessingTime(addressCount int) int {
	// Ước tính mỗi địa chỉ khoảng 1ms trên gazetteer cỡ quốc gia
	estimatedMs := addressCount
	seconds := estimatedMs / 1000
	if seconds < 1 {
		seconds = 1
	}
	return seconds
}

// ProcessBatchJob xử lý job batch trong background
func (rs *ResolveService) ProcessBatchJob(jobID string, addresses []string, options requests.ResolveOptions) {
	rs.mu.Lock()
	rs.jobs[jobID] = &JobStatus{
		JobID:     jobID,
		Status:    "running",
		Total:     len(addresses),
		Message:   "Đang xử lý...",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	rs.mu.Unlock()

	ctx := context.Background()
	results := make([]*models.ResolutionResult, len(addresses))

	for i, address := range addresses {
		result, _, err := rs.ResolveAddress(ctx, address, options)
		if err != nil {
			// Lỗi một dòng không làm hỏng cả job; dòng lỗi trả kết quả rỗng
			rs.logger.Warn("Lỗi resolve địa chỉ trong batch",
				zap.String("job_id", jobID),
				zap.Int("index", i),
				zap.Error(err))
			result = &models.ResolutionResult{
				Raw:              address,
				GazetteerVersion: rs.gaz.Version(),
				Assembled:        models.Assemble("", "", "", ""),
			}
		}
		results[i] = result

		rs.mu.Lock()
		if job, exists := rs.jobs[jobID]; exists {
			job.Processed = i + 1
			job.Progress = float64(i+1) / float64(len(addresses))
			job.UpdatedAt = time.Now()
			if i == len(addresses)-1 {
				job.Status = "done"
				job.Message = "Hoàn thành xử lý"
			}
		}
		rs.mu.Unlock()
	}

	rs.mu.Lock()
	rs.jobResults[jobID] = results
	rs.mu.Unlock()

	rs.logger.Info("Batch job hoàn thành",
		zap.String("job_id", jobID),
		zap.Int("total_addresses", len(addresses)))
}

// GetJobStatus lấy trạng thái job
func (rs *ResolveService) GetJobStatus(jobID string) (*JobStatus, error) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	job, exists := rs.jobs[jobID]
	if !exists {
		return nil, ErrJobNotFound
	}
	return job, nil
}

// GetJobResults lấy kết quả job
func (rs *ResolveService) GetJobResults(jobID string) ([]*models.ResolutionResult, error) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	results, exists := rs.jobResults[jobID]
	if !exists {
		return nil, ErrJobNotFound
	}
	return results, nil
}

// GetJobResultsStream lấy kết quả job dưới dạng channel để stream NDJSON
func (rs *ResolveService) GetJobResultsStream(jobID string) (<-chan *models.ResolutionResult, error) {
	results, err := rs.GetJobResults(jobID)
	if err != nil {
		return nil, err
	}

	resultChannel := make(chan *models.ResolutionResult, 100)
	go func() {
		defer close(resultChannel)
		for _, result := range results {
			resultChannel <- result
		}
	}()

	return resultChannel, nil
}

// GetStartTime lấy thời gian khởi động service
func (rs *ResolveService) GetStartTime() time.Time {
	return rs.startTime
}

// GazetteerVersion phiên bản gazetteer đang phục vụ
func (rs *ResolveService) GazetteerVersion() string {
	return rs.gaz.Version()
}

// GazetteerCounts số lượng đơn vị mỗi cấp
func (rs *ResolveService) GazetteerCounts() (provinces, districts, wards int) {
	return rs.gaz.Counts()
}

func toSuggestions(candidates []suggest.Candidate) []models.Suggestion {
	out := make([]models.Suggestion, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, models.Suggestion{
			ID:    c.Unit.ID,
			Name:  c.Unit.Name,
			Score: c.Score,
		})
	}
	return out
}

func unitName(u *gazetteer.Unit) string {
	if u == nil {
		return ""
	}
	return u.Name
}
