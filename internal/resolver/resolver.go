// Package resolver tìm tỉnh/quận/phường trong địa chỉ đã chuẩn hóa bằng
// thuật toán greedy ba giai đoạn: match alias gần cuối chuỗi nhất ở từng cấp,
// cấp cha đã resolve giới hạn candidate của cấp con, quận resolve được có thể
// suy ngược ra tỉnh. Không backtrack giữa các giai đoạn.
package resolver

import (
	"regexp"
	"strings"

	"github.com/address-resolver/internal/gazetteer"
	"go.uber.org/zap"
)

// specialEnding ký tự phải đứng ngay sau alias ở cấp quận/phường,
// chặn alias ngắn match nhầm thành prefix của từ dài hơn
// ("Q1" không được match trong "Q10").
const specialEnding = `[g.;,\s]`

// Resolution kết quả resolve một địa chỉ. Field rỗng nghĩa là cấp đó
// không resolve được; đó là kết quả hợp lệ, không phải lỗi.
type Resolution struct {
	Remainder string
	Province  *gazetteer.Unit
	District  *gazetteer.Unit
	Ward      *gazetteer.Unit
}

// Resolver giữ gazetteer và toàn bộ pattern alias đã precompile.
// Bất biến sau khi tạo, dùng đồng thời được từ nhiều goroutine.
type Resolver struct {
	gaz      *gazetteer.Gazetteer
	anchored map[string]*regexp.Regexp
	reSpaces *regexp.Regexp
	logger   *zap.Logger
}

// New tạo Resolver, compile một lần pattern có anchor cho mọi alias
// quận/phường (compile trong vòng match từng request quá đắt).
func New(gaz *gazetteer.Gazetteer, logger *zap.Logger) *Resolver {
	r := &Resolver{
		gaz:      gaz,
		anchored: make(map[string]*regexp.Regexp),
		reSpaces: regexp.MustCompile(`\s+`),
		logger:   logger,
	}

	for _, id := range gaz.DistrictIDs() {
		d, _ := gaz.District(id)
		r.compileAliases(d.Aliases)
		for _, wid := range gaz.WardsOf(id) {
			w, _ := gaz.Ward(wid)
			r.compileAliases(w.Aliases)
		}
	}
	return r
}

func (r *Resolver) compileAliases(aliases []string) {
	for _, alias := range aliases {
		if _, ok := r.anchored[alias]; ok {
			continue
		}
		r.anchored[alias] = regexp.MustCompile(regexp.QuoteMeta(alias) + specialEnding)
	}
}

// Resolve chạy ba giai đoạn trên địa chỉ đã chuẩn hóa.
// Dấu phẩy sentinel được nối vào cuối để alias nằm cuối chuỗi
// match giống hệt alias nằm giữa chuỗi.
func (r *Resolver) Resolve(normalized string) *Resolution {
	address := normalized + ","

	// Giai đoạn 1: tỉnh/thành phố, quét toàn bộ province, match substring thô
	provinceID, provinceWord := r.matchProvince(address)
	if provinceID != "" {
		address = removeLastOccurrence(address, provinceWord)
	}
	// Qualifier "Thanh Pho" đứng cuối bị bỏ lại sau khi rút tên tỉnh
	address = strings.TrimSuffix(address, "Thanh Pho ,")

	// Giai đoạn 2: quận/huyện
	var districtID, districtWord string
	if provinceID != "" {
		// Ràng buộc phân cấp: chỉ xét quận thuộc tỉnh đã resolve, match có anchor
		districtID, districtWord = r.matchUnits(address, r.gaz.DistrictsOf(provinceID), r.gaz.District, true)
	} else {
		// Không có tỉnh: xét mọi quận, match thô, để suy ngược tỉnh từ quận
		districtID, districtWord = r.matchUnits(address, r.gaz.DistrictIDs(), r.gaz.District, false)
	}
	if districtID != "" {
		address = removeLastOccurrence(address, districtWord)
		if provinceID == "" {
			d, _ := r.gaz.District(districtID)
			provinceID = d.ParentID
		}
	}

	// Giai đoạn 3: phường/xã, chỉ chạy khi đã có quận
	var wardID, wardWord string
	if districtID != "" {
		wardID, wardWord = r.matchUnits(address, r.gaz.WardsOf(districtID), r.gaz.Ward, true)
		if wardID != "" {
			address = removeLastOccurrence(address, wardWord)
		}
	}

	res := &Resolution{Remainder: r.tidyRemainder(address)}
	if provinceID != "" {
		res.Province, _ = r.gaz.Province(provinceID)
	}
	if districtID != "" {
		res.District, _ = r.gaz.District(districtID)
	}
	if wardID != "" {
		res.Ward, _ = r.gaz.Ward(wardID)
	}

	r.logger.Debug("Đã resolve địa chỉ",
		zap.String("normalized", normalized),
		zap.String("province", unitName(res.Province)),
		zap.String("district", unitName(res.District)),
		zap.String("ward", unitName(res.Ward)),
		zap.String("remainder", res.Remainder))

	return res
}

// matchProvince tìm province có alias xuất hiện gần cuối chuỗi nhất
func (r *Resolver) matchProvince(address string) (id, word string) {
	largest := -1
	for _, pid := range r.gaz.ProvinceIDs() {
		p, _ := r.gaz.Province(pid)
		for _, alias := range p.Aliases {
			last := strings.LastIndex(address, alias)
			if betterMatch(last, largest, alias, word) {
				id, word, largest = pid, alias, last
			}
		}
	}
	return id, word
}

// matchUnits áp dụng rule chung cho một tập candidate: alias có lần xuất hiện
// cuối cùng ở index lớn nhất thắng; cùng index thì alias dài hơn thắng;
// vẫn hòa thì unit có id nhỏ nhất thắng (ids đã sort, so sánh chỉ nhận
// strictly-better nên candidate quét trước được giữ).
func (r *Resolver) matchUnits(address string, ids []string, lookup func(string) (*gazetteer.Unit, bool), anchored bool) (id, word string) {
	largest := -1
	for _, uid := range ids {
		u, ok := lookup(uid)
		if !ok {
			continue
		}
		for _, alias := range u.Aliases {
			var last int
			if anchored {
				last = r.lastAnchoredIndex(address, alias)
			} else {
				last = strings.LastIndex(address, alias)
			}
			if betterMatch(last, largest, alias, word) {
				id, word, largest = uid, alias, last
			}
		}
	}
	return id, word
}

// lastAnchoredIndex index bắt đầu của lần xuất hiện cuối cùng của alias
// có ký tự kết thúc hợp lệ ngay sau; -1 nếu không có
func (r *Resolver) lastAnchoredIndex(address, alias string) int {
	re, ok := r.anchored[alias]
	if !ok {
		return -1
	}
	locs := re.FindAllStringIndex(address, -1)
	if len(locs) == 0 {
		return -1
	}
	return locs[len(locs)-1][0]
}

// betterMatch rule so sánh: index lớn hơn thắng; cùng index (và có match)
// thì alias dài hơn thắng
func betterMatch(last, largest int, alias, chosen string) bool {
	if last > largest {
		return true
	}
	return last == largest && largest > -1 && len(alias) > len(chosen)
}

// removeLastOccurrence xóa duy nhất lần xuất hiện cuối cùng của substr.
// Các lần xuất hiện trước đó (vd tên tỉnh nằm trong tên đường) phải giữ nguyên.
func removeLastOccurrence(s, substr string) string {
	if substr == "" {
		return s
	}
	i := strings.LastIndex(s, substr)
	if i < 0 {
		return s
	}
	return s[:i] + s[i+len(substr):]
}

// tidyRemainder bỏ sentinel và gọn khoảng trắng phần địa chỉ còn lại
func (r *Resolver) tidyRemainder(address string) string {
	address = strings.TrimSpace(address)
	address = strings.TrimSuffix(address, ",")
	return strings.TrimSpace(r.reSpaces.ReplaceAllString(address, " "))
}

func unitName(u *gazetteer.Unit) string {
	if u == nil {
		return ""
	}
	return u.Name
}
