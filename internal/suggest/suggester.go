// Package suggest gợi ý đơn vị hành chính cho luồng review thủ công khi
// resolver không match được một cấp. Nằm hoàn toàn ngoài engine resolve
// deterministic: kết quả gợi ý không bao giờ được ghi ngược vào resolution.
package suggest

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/address-resolver/internal/gazetteer"
	"github.com/xrash/smetrics"
	"go.uber.org/zap"
)

// Candidate một đơn vị gợi ý kèm điểm tương đồng
type Candidate struct {
	Unit  *gazetteer.Unit
	Score float64
}

// Trọng số mặc định khi trộn hai thước đo tương đồng
const (
	defaultJWWeight  = 0.6
	defaultLevWeight = 0.4
)

// FuzzySuggester chấm điểm candidate bằng JaroWinkler + Levenshtein
// chuẩn hóa trên alias đã bỏ dấu
type FuzzySuggester struct {
	gaz       *gazetteer.Gazetteer
	jwWeight  float64
	levWeight float64
	logger    *zap.Logger
}

// NewFuzzySuggester tạo mới FuzzySuggester với trọng số mặc định
func NewFuzzySuggester(gaz *gazetteer.Gazetteer, logger *zap.Logger) *FuzzySuggester {
	return &FuzzySuggester{
		gaz:       gaz,
		jwWeight:  defaultJWWeight,
		levWeight: defaultLevWeight,
		logger:    logger,
	}
}

// SuggestProvinces gợi ý tỉnh/thành phố gần query nhất
func (fs *FuzzySuggester) SuggestProvinces(query string, topK int) []Candidate {
	return fs.rank(query, fs.gaz.ProvinceIDs(), func(id string) (*gazetteer.Unit, bool) {
		return fs.gaz.Province(id)
	}, topK)
}

// SuggestDistricts gợi ý quận/huyện; provinceID rỗng thì xét toàn bộ
func (fs *FuzzySuggester) SuggestDistricts(query, provinceID string, topK int) []Candidate {
	ids := fs.gaz.DistrictIDs()
	if provinceID != "" {
		ids = fs.gaz.DistrictsOf(provinceID)
	}
	return fs.rank(query, ids, func(id string) (*gazetteer.Unit, bool) {
		return fs.gaz.District(id)
	}, topK)
}

// SuggestWards gợi ý phường/xã trong một quận
func (fs *FuzzySuggester) SuggestWards(query, districtID string, topK int) []Candidate {
	return fs.rank(query, fs.gaz.WardsOf(districtID), func(id string) (*gazetteer.Unit, bool) {
		return fs.gaz.Ward(id)
	}, topK)
}

// rank chấm điểm từng candidate theo alias tốt nhất của nó rồi sort giảm dần.
// Hòa điểm thì id nhỏ hơn đứng trước để thứ tự ổn định giữa các lần gọi.
func (fs *FuzzySuggester) rank(query string, ids []string, lookup func(string) (*gazetteer.Unit, bool), topK int) []Candidate {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || topK <= 0 {
		return nil
	}

	candidates := make([]Candidate, 0, len(ids))
	for _, id := range ids {
		u, ok := lookup(id)
		if !ok {
			continue
		}
		best := 0.0
		for _, alias := range u.Aliases {
			if s := fs.score(query, strings.ToLower(alias)); s > best {
				best = s
			}
		}
		if s := fs.score(query, strings.ToLower(u.Name)); s > best {
			best = s
		}
		if best > 0 {
			candidates = append(candidates, Candidate{Unit: u, Score: best})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Unit.ID < candidates[j].Unit.ID
	})

	if len(candidates) > topK {
		candidates = candidates[:topK]
	}
	return candidates
}

// score trộn JaroWinkler và Levenshtein chuẩn hóa về [0, 1]
func (fs *FuzzySuggester) score(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}

	jw := smetrics.JaroWinkler(a, b, 0.7, 4)

	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	lev := 1.0 - float64(levenshtein.ComputeDistance(a, b))/float64(maxLen)
	if lev < 0 {
		lev = 0
	}

	return fs.jwWeight*jw + fs.levWeight*lev
}
