package normalizer

import "fmt"

// AbbrevRule ánh xạ các biến thể viết tắt về dạng chuẩn (vd: "Tp." -> "Tp ").
type AbbrevRule struct {
	Canonical string   `yaml:"canonical" json:"canonical"`
	Variants  []string `yaml:"variants" json:"variants"`
}

// CityDashRule ánh xạ các synonym của thành phố có dấu gạch về tên chuẩn.
type CityDashRule struct {
	Canonical string   `yaml:"canonical" json:"canonical"`
	Synonyms  []string `yaml:"synonyms" json:"synonyms"`
}

// Rules chứa toàn bộ bảng chuẩn hóa, load từ YAML và bất biến sau khi load.
// Thứ tự rule trong slice quyết định thứ tự áp dụng.
type Rules struct {
	Abbreviations []AbbrevRule   `yaml:"abbreviations" json:"abbreviations"`
	CityDash      []CityDashRule `yaml:"city_dash" json:"city_dash"`
	Punctuation   []string       `yaml:"punctuation" json:"punctuation"`
}

// Validate kiểm tra cấu hình rules trước khi build normalizer
func (r *Rules) Validate() error {
	for i, rule := range r.Abbreviations {
		if rule.Canonical == "" {
			return fmt.Errorf("abbreviation rule %d: canonical rỗng", i)
		}
		if len(rule.Variants) == 0 {
			return fmt.Errorf("abbreviation rule %q: không có variant nào", rule.Canonical)
		}
	}
	for i, rule := range r.CityDash {
		if rule.Canonical == "" {
			return fmt.Errorf("city_dash rule %d: canonical rỗng", i)
		}
		if len(rule.Synonyms) == 0 {
			return fmt.Errorf("city_dash rule %q: không có synonym nào", rule.Canonical)
		}
	}
	for i, p := range r.Punctuation {
		if p == "" {
			return fmt.Errorf("punctuation %d: ký tự rỗng", i)
		}
	}
	return nil
}
