package normalizer

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/rules.yaml
var rulesYAML []byte

// _embedDummy sử dụng để tránh lỗi linter về import embed không sử dụng
var _embedDummy = embed.FS{}

// DefaultRules load bảng chuẩn hóa mặc định từ embedded YAML
func DefaultRules() (*Rules, error) {
	rules := &Rules{}
	if err := yaml.Unmarshal(rulesYAML, rules); err != nil {
		return nil, fmt.Errorf("lỗi parse rules.yaml: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("rules.yaml không hợp lệ: %w", err)
	}
	return rules, nil
}
