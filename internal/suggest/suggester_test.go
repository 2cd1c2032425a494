package suggest

import (
	"testing"

	"github.com/address-resolver/internal/gazetteer"
	"go.uber.org/zap"
)

func testGazetteer(t *testing.T) *gazetteer.Gazetteer {
	t.Helper()

	g, err := gazetteer.New(&gazetteer.Dataset{
		Provinces: []gazetteer.Unit{
			{ID: "01", Name: "Hà Nội", Aliases: []string{"Ha Noi"}},
			{ID: "79", Name: "Hồ Chí Minh", Aliases: []string{"Ho Chi Minh", "Hcm"}},
			{ID: "48", Name: "Đà Nẵng", Aliases: []string{"Da Nang"}},
		},
		Districts: []gazetteer.Unit{
			{ID: "760", Name: "Quận 1", Aliases: []string{"Q1"}, ParentID: "79"},
			{ID: "769", Name: "Thủ Đức", Aliases: []string{"Thu Duc"}, ParentID: "79"},
			{ID: "001", Name: "Ba Đình", Aliases: []string{"Ba Dinh"}, ParentID: "01"},
		},
		Wards: []gazetteer.Unit{
			{ID: "26734", Name: "Bến Nghé", Aliases: []string{"Ben Nghe"}, ParentID: "760"},
			{ID: "26737", Name: "Bến Thành", Aliases: []string{"Ben Thanh"}, ParentID: "760"},
		},
	})
	if err != nil {
		t.Fatalf("gazetteer.New() error = %v", err)
	}
	return g
}

// TestSuggestProvincesRanking query gần đúng phải xếp đơn vị đúng lên đầu
func TestSuggestProvincesRanking(t *testing.T) {
	fs := NewFuzzySuggester(testGazetteer(t), zap.NewNop())

	tests := []struct {
		query     string
		wantFirst string
	}{
		{"ho chi min", "Hồ Chí Minh"},
		{"ha nol", "Hà Nội"},
		{"da nag", "Đà Nẵng"},
	}

	for _, tt := range tests {
		got := fs.SuggestProvinces(tt.query, 3)
		if len(got) == 0 {
			t.Fatalf("SuggestProvinces(%q) rỗng", tt.query)
		}
		if got[0].Unit.Name != tt.wantFirst {
			t.Errorf("SuggestProvinces(%q)[0] = %q (score %.3f), want %q",
				tt.query, got[0].Unit.Name, got[0].Score, tt.wantFirst)
		}
		for i := 1; i < len(got); i++ {
			if got[i].Score > got[i-1].Score {
				t.Errorf("SuggestProvinces(%q) không sort giảm dần theo score", tt.query)
			}
		}
	}
}

// TestSuggestDistrictsConstrained có provinceID thì chỉ gợi ý quận thuộc tỉnh đó
func TestSuggestDistrictsConstrained(t *testing.T) {
	fs := NewFuzzySuggester(testGazetteer(t), zap.NewNop())

	got := fs.SuggestDistricts("thu duk", "79", 5)
	if len(got) == 0 {
		t.Fatal("SuggestDistricts rỗng")
	}
	if got[0].Unit.Name != "Thủ Đức" {
		t.Errorf("SuggestDistricts[0] = %q, want %q", got[0].Unit.Name, "Thủ Đức")
	}
	for _, c := range got {
		if c.Unit.ParentID != "79" {
			t.Errorf("gợi ý %q nằm ngoài tỉnh ràng buộc (parent %q)", c.Unit.Name, c.Unit.ParentID)
		}
	}
}

func TestSuggestWards(t *testing.T) {
	fs := NewFuzzySuggester(testGazetteer(t), zap.NewNop())

	got := fs.SuggestWards("ben nge", "760", 2)
	if len(got) == 0 {
		t.Fatal("SuggestWards rỗng")
	}
	if got[0].Unit.Name != "Bến Nghé" {
		t.Errorf("SuggestWards[0] = %q, want %q", got[0].Unit.Name, "Bến Nghé")
	}
}

func TestSuggestEmptyQueryOrTopK(t *testing.T) {
	fs := NewFuzzySuggester(testGazetteer(t), zap.NewNop())

	if got := fs.SuggestProvinces("", 3); got != nil {
		t.Errorf("SuggestProvinces(rỗng) = %v, want nil", got)
	}
	if got := fs.SuggestProvinces("ha noi", 0); got != nil {
		t.Errorf("SuggestProvinces(topK=0) = %v, want nil", got)
	}
}

// TestSuggestTopKTruncation không trả về nhiều hơn topK kết quả
func TestSuggestTopKTruncation(t *testing.T) {
	fs := NewFuzzySuggester(testGazetteer(t), zap.NewNop())

	if got := fs.SuggestProvinces("a", 1); len(got) > 1 {
		t.Errorf("SuggestProvinces(topK=1) trả về %d kết quả", len(got))
	}
}
