// Package gazetteer chứa dữ liệu tham chiếu đơn vị hành chính ba cấp
// (tỉnh/thành phố, quận/huyện, phường/xã). Dữ liệu bất biến sau khi build,
// đọc đồng thời không cần lock.
package gazetteer

import (
	"fmt"
	"sort"
)

// Unit một đơn vị hành chính. ParentID: district trỏ về province,
// ward trỏ về district, province không có parent.
type Unit struct {
	ID       string   `yaml:"id" json:"id" bson:"admin_id"`
	Name     string   `yaml:"name" json:"name" bson:"name"`
	Aliases  []string `yaml:"aliases" json:"aliases" bson:"aliases"`
	ParentID string   `yaml:"parent_id,omitempty" json:"parent_id,omitempty" bson:"parent_id,omitempty"`
}

// Dataset dữ liệu gazetteer dạng phẳng trước khi build index
type Dataset struct {
	Version   string `yaml:"version" json:"version"`
	Provinces []Unit `yaml:"provinces" json:"provinces"`
	Districts []Unit `yaml:"districts" json:"districts"`
	Wards     []Unit `yaml:"wards" json:"wards"`
}

// Gazetteer index tra cứu bất biến. Các slice ID đã sort tăng dần một lần
// lúc build; mọi vòng quét candidate đi theo thứ tự này nên kết quả
// resolve luôn deterministic.
type Gazetteer struct {
	version string

	provinces map[string]*Unit
	districts map[string]*Unit
	wards     map[string]*Unit

	provinceIDs []string
	districtIDs []string

	districtsOf map[string][]string
	wardsOf     map[string][]string
}

// New build Gazetteer từ dataset, validate toàn bộ cấu trúc cây.
// Mọi lỗi cấu hình (id trùng, parent không tồn tại) fail ngay tại đây
// để hot path resolve không bao giờ gặp lỗi dữ liệu.
func New(ds *Dataset) (*Gazetteer, error) {
	if ds == nil {
		return nil, fmt.Errorf("dataset không được nil")
	}

	g := &Gazetteer{
		version:     ds.Version,
		provinces:   make(map[string]*Unit, len(ds.Provinces)),
		districts:   make(map[string]*Unit, len(ds.Districts)),
		wards:       make(map[string]*Unit, len(ds.Wards)),
		districtsOf: make(map[string][]string),
		wardsOf:     make(map[string][]string),
	}

	for i := range ds.Provinces {
		p := ds.Provinces[i]
		if err := validateUnit(&p, "province"); err != nil {
			return nil, err
		}
		if _, dup := g.provinces[p.ID]; dup {
			return nil, fmt.Errorf("province id %q bị trùng", p.ID)
		}
		g.provinces[p.ID] = &p
		g.provinceIDs = append(g.provinceIDs, p.ID)
	}

	for i := range ds.Districts {
		d := ds.Districts[i]
		if err := validateUnit(&d, "district"); err != nil {
			return nil, err
		}
		if _, dup := g.districts[d.ID]; dup {
			return nil, fmt.Errorf("district id %q bị trùng", d.ID)
		}
		if _, ok := g.provinces[d.ParentID]; !ok {
			return nil, fmt.Errorf("district %q trỏ về province %q không tồn tại", d.ID, d.ParentID)
		}
		g.districts[d.ID] = &d
		g.districtIDs = append(g.districtIDs, d.ID)
		g.districtsOf[d.ParentID] = append(g.districtsOf[d.ParentID], d.ID)
	}

	for i := range ds.Wards {
		w := ds.Wards[i]
		if err := validateUnit(&w, "ward"); err != nil {
			return nil, err
		}
		if _, dup := g.wards[w.ID]; dup {
			return nil, fmt.Errorf("ward id %q bị trùng", w.ID)
		}
		if _, ok := g.districts[w.ParentID]; !ok {
			return nil, fmt.Errorf("ward %q trỏ về district %q không tồn tại", w.ID, w.ParentID)
		}
		g.wards[w.ID] = &w
		g.wardsOf[w.ParentID] = append(g.wardsOf[w.ParentID], w.ID)
	}

	sort.Strings(g.provinceIDs)
	sort.Strings(g.districtIDs)
	for _, ids := range g.districtsOf {
		sort.Strings(ids)
	}
	for _, ids := range g.wardsOf {
		sort.Strings(ids)
	}

	return g, nil
}

func validateUnit(u *Unit, level string) error {
	if u.ID == "" {
		return fmt.Errorf("%s thiếu id (name=%q)", level, u.Name)
	}
	if u.Name == "" {
		return fmt.Errorf("%s %q thiếu name", level, u.ID)
	}
	for i, alias := range u.Aliases {
		if alias == "" {
			return fmt.Errorf("%s %q: alias %d rỗng", level, u.ID, i)
		}
	}
	return nil
}

// Version phiên bản dataset đang load
func (g *Gazetteer) Version() string { return g.version }

// Province tra cứu province theo id; không tìm thấy trả về (nil, false)
func (g *Gazetteer) Province(id string) (*Unit, bool) {
	u, ok := g.provinces[id]
	return u, ok
}

// District tra cứu district theo id
func (g *Gazetteer) District(id string) (*Unit, bool) {
	u, ok := g.districts[id]
	return u, ok
}

// Ward tra cứu ward theo id
func (g *Gazetteer) Ward(id string) (*Unit, bool) {
	u, ok := g.wards[id]
	return u, ok
}

// ProvinceIDs toàn bộ id province, đã sort tăng dần
func (g *Gazetteer) ProvinceIDs() []string { return g.provinceIDs }

// DistrictIDs toàn bộ id district, đã sort tăng dần
func (g *Gazetteer) DistrictIDs() []string { return g.districtIDs }

// DistrictsOf các district id thuộc một province, đã sort tăng dần
func (g *Gazetteer) DistrictsOf(provinceID string) []string {
	return g.districtsOf[provinceID]
}

// WardsOf các ward id thuộc một district, đã sort tăng dần
func (g *Gazetteer) WardsOf(districtID string) []string {
	return g.wardsOf[districtID]
}

// Counts số lượng đơn vị mỗi cấp, dùng cho endpoint stats
func (g *Gazetteer) Counts() (provinces, districts, wards int) {
	return len(g.provinces), len(g.districts), len(g.wards)
}
