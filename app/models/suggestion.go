package models

// Suggestion một đơn vị hành chính gợi ý cho luồng review thủ công
type Suggestion struct {
	ID    string  `json:"id"`    // ID đơn vị hành chính
	Name  string  `json:"name"`  // Tên chuẩn
	Score float64 `json:"score"` // Điểm tương đồng (0.0 - 1.0)
}

// SuggestionSet gợi ý cho các cấp chưa resolve được của một địa chỉ
type SuggestionSet struct {
	Provinces []Suggestion `json:"provinces,omitempty"`
	Districts []Suggestion `json:"districts,omitempty"`
	Wards     []Suggestion `json:"wards,omitempty"`
}

// IsEmpty không có gợi ý nào ở cả ba cấp
func (ss *SuggestionSet) IsEmpty() bool {
	return len(ss.Provinces) == 0 && len(ss.Districts) == 0 && len(ss.Wards) == 0
}
