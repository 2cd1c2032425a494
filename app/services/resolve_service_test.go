package services

import (
	"context"
	"errors"
	"testing"

	"github.com/address-resolver/app/requests"
	"github.com/address-resolver/internal/gazetteer"
	"github.com/address-resolver/internal/normalizer"
	"github.com/address-resolver/internal/resolver"
	"github.com/address-resolver/internal/suggest"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) *ResolveService {
	t.Helper()

	g, err := gazetteer.New(&gazetteer.Dataset{
		Version: "test-1",
		Provinces: []gazetteer.Unit{
			{ID: "01", Name: "Hà Nội", Aliases: []string{"Ha Noi"}},
			{ID: "79", Name: "Hồ Chí Minh", Aliases: []string{"Ho Chi Minh"}},
		},
		Districts: []gazetteer.Unit{
			{ID: "760", Name: "Quận 1", Aliases: []string{"Q1"}, ParentID: "79"},
		},
		Wards: []gazetteer.Unit{
			{ID: "26734", Name: "Bến Nghé", Aliases: []string{"Ben Nghe"}, ParentID: "760"},
		},
	})
	if err != nil {
		t.Fatalf("gazetteer.New() error = %v", err)
	}

	rules, err := normalizer.DefaultRules()
	if err != nil {
		t.Fatalf("DefaultRules() error = %v", err)
	}
	tn, err := normalizer.NewTextNormalizer(rules)
	if err != nil {
		t.Fatalf("NewTextNormalizer() error = %v", err)
	}

	logger := zap.NewNop()
	cache, err := NewLRUCacheService(128, logger)
	if err != nil {
		t.Fatalf("NewLRUCacheService() error = %v", err)
	}

	r := resolver.New(g, logger)
	fs := suggest.NewFuzzySuggester(g, logger)

	return NewResolveService(tn, r, g, cache, fs, logger)
}

func TestResolveAddress(t *testing.T) {
	rs := newTestService(t)
	ctx := context.Background()

	result, cacheHit, err := rs.ResolveAddress(ctx, "123 Nguyễn Văn Cừ, Q.1, Tp.HCM", requests.ResolveOptions{})
	if err != nil {
		t.Fatalf("ResolveAddress() error = %v", err)
	}
	if cacheHit {
		t.Error("lần gọi đầu không được hit cache")
	}

	if result.Province != "Hồ Chí Minh" {
		t.Errorf("Province = %q, want %q", result.Province, "Hồ Chí Minh")
	}
	if result.District != "Quận 1" {
		t.Errorf("District = %q, want %q", result.District, "Quận 1")
	}
	if result.Remainder != "123 Nguyen Van Cu" {
		t.Errorf("Remainder = %q, want %q", result.Remainder, "123 Nguyen Van Cu")
	}
	if result.GazetteerVersion != "test-1" {
		t.Errorf("GazetteerVersion = %q", result.GazetteerVersion)
	}
	if result.Fingerprint == "" {
		t.Error("Fingerprint rỗng")
	}

	wantAssembled := "123 Nguyen Van Cu , Quận 1, Hồ Chí Minh"
	if result.Assembled != wantAssembled {
		t.Errorf("Assembled = %q, want %q", result.Assembled, wantAssembled)
	}
}

// TestAssembledFormat format chuỗi ráp lại giữ nguyên cấu trúc phẩy/space
// kể cả khi mọi segment rỗng
func TestAssembledFormat(t *testing.T) {
	rs := newTestService(t)

	result, _, err := rs.ResolveAddress(context.Background(), "So 9 Duong Hoa", requests.ResolveOptions{})
	if err != nil {
		t.Fatalf("ResolveAddress() error = %v", err)
	}
	if result.Province != "" || result.District != "" || result.Ward != "" {
		t.Fatalf("không được resolve cấp nào: %+v", result)
	}

	want := "So 9 Duong Hoa , , "
	if result.Assembled != want {
		t.Errorf("Assembled = %q, want %q", result.Assembled, want)
	}
}

func TestResolveAddressCacheHit(t *testing.T) {
	rs := newTestService(t)
	ctx := context.Background()
	opts := requests.ResolveOptions{UseCache: true}

	first, hit, err := rs.ResolveAddress(ctx, "45 Le Loi, Q1, Ho Chi Minh", opts)
	if err != nil {
		t.Fatalf("ResolveAddress() error = %v", err)
	}
	if hit {
		t.Error("lần gọi đầu không được hit cache")
	}

	second, hit, err := rs.ResolveAddress(ctx, "45 Le Loi, Q1, Ho Chi Minh", opts)
	if err != nil {
		t.Fatalf("ResolveAddress() lần hai error = %v", err)
	}
	if !hit {
		t.Error("lần gọi thứ hai phải hit cache")
	}
	if second.Assembled != first.Assembled || second.Province != first.Province {
		t.Errorf("kết quả cache khác kết quả gốc: %+v vs %+v", second, first)
	}
}

func TestResolveAddressErrors(t *testing.T) {
	rs := newTestService(t)
	ctx := context.Background()

	if _, _, err := rs.ResolveAddress(ctx, "", requests.ResolveOptions{}); !errors.Is(err, ErrEmptyAddress) {
		t.Errorf("địa chỉ rỗng: error = %v, want ErrEmptyAddress", err)
	}

	invalid := string([]byte{0xff, 0xfe})
	if _, _, err := rs.ResolveAddress(ctx, invalid, requests.ResolveOptions{}); !errors.Is(err, normalizer.ErrInvalidInput) {
		t.Errorf("UTF-8 không hợp lệ: error = %v, want ErrInvalidInput", err)
	}
}

func TestSuggestForUnresolvedLevels(t *testing.T) {
	rs := newTestService(t)

	// Tỉnh viết sai chính tả nên resolver không match được
	result, set, err := rs.Suggest(context.Background(), "Ho Chi Min", 3)
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	if result.Province != "" {
		t.Fatalf("Province = %q, expect không resolve được", result.Province)
	}
	if len(set.Provinces) == 0 {
		t.Fatal("phải có gợi ý tỉnh cho địa chỉ sai chính tả")
	}
	if set.Provinces[0].Name != "Hồ Chí Minh" {
		t.Errorf("gợi ý đầu = %q, want %q", set.Provinces[0].Name, "Hồ Chí Minh")
	}
}

func TestBatchJobLifecycle(t *testing.T) {
	rs := newTestService(t)

	jobID := "job-test-1"
	addresses := []string{
		"123 Nguyen Van Cu, Q1, Ho Chi Minh",
		"So 9 Duong Hoa",
	}

	// Chạy đồng bộ trong test để không phải chờ goroutine
	rs.ProcessBatchJob(jobID, addresses, requests.ResolveOptions{})

	status, err := rs.GetJobStatus(jobID)
	if err != nil {
		t.Fatalf("GetJobStatus() error = %v", err)
	}
	if status.Status != "done" || status.Processed != len(addresses) {
		t.Errorf("status = %+v", status)
	}

	results, err := rs.GetJobResults(jobID)
	if err != nil {
		t.Fatalf("GetJobResults() error = %v", err)
	}
	if len(results) != len(addresses) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(addresses))
	}
	if results[0].Province != "Hồ Chí Minh" {
		t.Errorf("results[0].Province = %q", results[0].Province)
	}

	count := 0
	stream, err := rs.GetJobResultsStream(jobID)
	if err != nil {
		t.Fatalf("GetJobResultsStream() error = %v", err)
	}
	for range stream {
		count++
	}
	if count != len(addresses) {
		t.Errorf("stream trả về %d kết quả, want %d", count, len(addresses))
	}

	if _, err := rs.GetJobStatus("khong-ton-tai"); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("job không tồn tại: error = %v, want ErrJobNotFound", err)
	}
}
