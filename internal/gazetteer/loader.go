package gazetteer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile load gazetteer từ file YAML trên đĩa
func LoadFile(path string) (*Gazetteer, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lỗi đọc file gazetteer: %w", err)
	}

	var ds Dataset
	if err := yaml.Unmarshal(b, &ds); err != nil {
		return nil, fmt.Errorf("lỗi parse gazetteer YAML: %w", err)
	}

	g, err := New(&ds)
	if err != nil {
		return nil, fmt.Errorf("gazetteer %q không hợp lệ: %w", path, err)
	}
	return g, nil
}
