package gazetteer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validDataset() *Dataset {
	return &Dataset{
		Version: "2024-01",
		Provinces: []Unit{
			{ID: "79", Name: "Hồ Chí Minh", Aliases: []string{"Ho Chi Minh"}},
			{ID: "01", Name: "Hà Nội", Aliases: []string{"Ha Noi"}},
		},
		Districts: []Unit{
			{ID: "760", Name: "Quận 1", Aliases: []string{"Q1"}, ParentID: "79"},
			{ID: "769", Name: "Thủ Đức", Aliases: []string{"Thu Duc"}, ParentID: "79"},
			{ID: "001", Name: "Ba Đình", Aliases: []string{"Ba Dinh"}, ParentID: "01"},
		},
		Wards: []Unit{
			{ID: "26734", Name: "Bến Nghé", Aliases: []string{"Ben Nghe"}, ParentID: "760"},
			{ID: "26737", Name: "Bến Thành", Aliases: []string{"Ben Thanh"}, ParentID: "760"},
		},
	}
}

func TestNewBuildsIndexes(t *testing.T) {
	g, err := New(validDataset())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if g.Version() != "2024-01" {
		t.Errorf("Version() = %q, want %q", g.Version(), "2024-01")
	}

	p, ok := g.Province("79")
	if !ok || p.Name != "Hồ Chí Minh" {
		t.Errorf("Province(79) = %v, %v", p, ok)
	}
	if _, ok := g.Province("99"); ok {
		t.Error("Province(99) phải trả về not found")
	}

	provinces, districts, wards := g.Counts()
	if provinces != 2 || districts != 3 || wards != 2 {
		t.Errorf("Counts() = %d, %d, %d", provinces, districts, wards)
	}
}

// TestSortedIteration thứ tự quét candidate phải cố định theo id tăng dần
func TestSortedIteration(t *testing.T) {
	g, err := New(validDataset())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	wantProvinces := []string{"01", "79"}
	gotProvinces := g.ProvinceIDs()
	for i, id := range wantProvinces {
		if gotProvinces[i] != id {
			t.Fatalf("ProvinceIDs() = %v, want %v", gotProvinces, wantProvinces)
		}
	}

	wantDistricts := []string{"760", "769"}
	gotDistricts := g.DistrictsOf("79")
	if len(gotDistricts) != len(wantDistricts) {
		t.Fatalf("DistrictsOf(79) = %v, want %v", gotDistricts, wantDistricts)
	}
	for i, id := range wantDistricts {
		if gotDistricts[i] != id {
			t.Fatalf("DistrictsOf(79) = %v, want %v", gotDistricts, wantDistricts)
		}
	}

	if got := g.WardsOf("760"); len(got) != 2 || got[0] != "26734" {
		t.Errorf("WardsOf(760) = %v", got)
	}
	if got := g.WardsOf("769"); len(got) != 0 {
		t.Errorf("WardsOf(769) = %v, want rỗng", got)
	}
}

func TestNewRejectsBadData(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Dataset)
		wantErr string
	}{
		{
			name:    "province id trung",
			mutate:  func(ds *Dataset) { ds.Provinces = append(ds.Provinces, Unit{ID: "79", Name: "Trùng"}) },
			wantErr: "bị trùng",
		},
		{
			name:    "district parent khong ton tai",
			mutate:  func(ds *Dataset) { ds.Districts[0].ParentID = "xx" },
			wantErr: "không tồn tại",
		},
		{
			name:    "ward parent khong ton tai",
			mutate:  func(ds *Dataset) { ds.Wards[0].ParentID = "xx" },
			wantErr: "không tồn tại",
		},
		{
			name:    "thieu id",
			mutate:  func(ds *Dataset) { ds.Provinces[0].ID = "" },
			wantErr: "thiếu id",
		},
		{
			name:    "thieu name",
			mutate:  func(ds *Dataset) { ds.Districts[0].Name = "" },
			wantErr: "thiếu name",
		},
		{
			name:    "alias rong",
			mutate:  func(ds *Dataset) { ds.Wards[0].Aliases = []string{""} },
			wantErr: "rỗng",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := validDataset()
			tt.mutate(ds)
			_, err := New(ds)
			if err == nil {
				t.Fatal("New() = nil error, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("New() error = %q, want chứa %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	content := `
version: "test-1"
provinces:
  - id: "79"
    name: "Hồ Chí Minh"
    aliases: ["Ho Chi Minh", "Hcm"]
districts:
  - id: "760"
    name: "Quận 1"
    aliases: ["Q1"]
    parent_id: "79"
wards:
  - id: "26734"
    name: "Bến Nghé"
    aliases: ["Ben Nghe"]
    parent_id: "760"
`
	path := filepath.Join(t.TempDir(), "gazetteer.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}

	g, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if g.Version() != "test-1" {
		t.Errorf("Version() = %q", g.Version())
	}
	if d, ok := g.District("760"); !ok || d.ParentID != "79" {
		t.Errorf("District(760) = %v, %v", d, ok)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile("/duong/dan/khong/ton/tai.yaml"); err == nil {
		t.Error("LoadFile() = nil error, want error")
	}
}
