package suggest

import (
	"fmt"

	"github.com/address-resolver/internal/gazetteer"
	ms "github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"
)

// MeiliSuggester backend gợi ý dùng Meilisearch thay cho fuzzy in-memory,
// bật qua config khi index admin_units đã được seed sẵn.
type MeiliSuggester struct {
	cli    ms.ServiceManager
	index  string
	gaz    *gazetteer.Gazetteer
	logger *zap.Logger
}

// NewMeiliSuggester tạo mới MeiliSuggester
func NewMeiliSuggester(host, apiKey, index string, gaz *gazetteer.Gazetteer, logger *zap.Logger) *MeiliSuggester {
	return &MeiliSuggester{
		cli:    ms.New(host, ms.WithAPIKey(apiKey)),
		index:  index,
		gaz:    gaz,
		logger: logger,
	}
}

// SuggestProvinces gợi ý tỉnh/thành phố qua Meilisearch
func (msg *MeiliSuggester) SuggestProvinces(query string, topK int) []Candidate {
	return msg.search(query, filterLevel(gazetteer.LevelProvince, ""), topK, func(id string) (*gazetteer.Unit, bool) {
		return msg.gaz.Province(id)
	})
}

// SuggestDistricts gợi ý quận/huyện; provinceID rỗng thì xét toàn bộ
func (msg *MeiliSuggester) SuggestDistricts(query, provinceID string, topK int) []Candidate {
	return msg.search(query, filterLevel(gazetteer.LevelDistrict, provinceID), topK, func(id string) (*gazetteer.Unit, bool) {
		return msg.gaz.District(id)
	})
}

// SuggestWards gợi ý phường/xã trong một quận
func (msg *MeiliSuggester) SuggestWards(query, districtID string, topK int) []Candidate {
	return msg.search(query, filterLevel(gazetteer.LevelWard, districtID), topK, func(id string) (*gazetteer.Unit, bool) {
		return msg.gaz.Ward(id)
	})
}

func (msg *MeiliSuggester) search(query, filter string, topK int, lookup func(string) (*gazetteer.Unit, bool)) []Candidate {
	if query == "" || topK <= 0 {
		return nil
	}

	resp, err := msg.cli.Index(msg.index).Search(query, &ms.SearchRequest{
		Limit:  int64(topK),
		Filter: filter,
	})
	if err != nil {
		msg.logger.Warn("Lỗi search Meilisearch", zap.Error(err), zap.String("query", query))
		return nil
	}

	candidates := make([]Candidate, 0, len(resp.Hits))
	for i, hit := range resp.Hits {
		doc, ok := hit.(map[string]interface{})
		if !ok {
			continue
		}
		id, ok := doc["admin_id"].(string)
		if !ok {
			continue
		}
		unit, ok := lookup(id)
		if !ok {
			// Hit trỏ về unit không có trong gazetteer đang load: index cũ
			msg.logger.Warn("Meilisearch hit không khớp gazetteer", zap.String("admin_id", id))
			continue
		}
		// Meilisearch đã xếp hạng theo relevance; quy điểm theo vị trí
		candidates = append(candidates, Candidate{
			Unit:  unit,
			Score: 1.0 - float64(i)/float64(topK),
		})
	}
	return candidates
}

// filterLevel build filter string theo level và parent_id
func filterLevel(level int, parentID string) string {
	if parentID == "" {
		return fmt.Sprintf("level = %d", level)
	}
	return fmt.Sprintf("level = %d AND parent_id = %q", level, parentID)
}
