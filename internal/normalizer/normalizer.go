// Package normalizer chuẩn hóa chuỗi địa chỉ tiếng Việt về dạng canonical
// để match với alias trong gazetteer. Pipeline gồm các bước có thứ tự cố định;
// đổi thứ tự sẽ đổi kết quả.
package normalizer

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidInput input không phải chuỗi UTF-8 hợp lệ
var ErrInvalidInput = errors.New("địa chỉ phải là chuỗi UTF-8 hợp lệ")

type abbrevPattern struct {
	re        *regexp.Regexp
	canonical string
}

type cityDashPattern struct {
	re        *regexp.Regexp
	canonical string
}

// TextNormalizer thực hiện pipeline chuẩn hóa 10 bước. Toàn bộ regex được
// precompile trong constructor; struct bất biến sau khi tạo nên an toàn
// khi dùng đồng thời từ nhiều goroutine.
type TextNormalizer struct {
	abbrevPatterns   []abbrevPattern
	cityDashPatterns []cityDashPattern

	rePunctuation  *regexp.Regexp
	reSpaces       *regexp.Regexp
	reComma        *regexp.Regexp
	reSeparator    *regexp.Regexp
	reDistrict     *regexp.Regexp
	reDistrictZero *regexp.Regexp
	reWard         *regexp.Regexp
	reWardF        *regexp.Regexp
	reWardZero     *regexp.Regexp
}

// NewTextNormalizer tạo mới TextNormalizer từ bảng rules bất biến
func NewTextNormalizer(rules *Rules) (*TextNormalizer, error) {
	if rules == nil {
		return nil, errors.New("rules không được nil")
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	tn := &TextNormalizer{
		reSpaces:       regexp.MustCompile(`\s+`),
		reComma:        regexp.MustCompile(`\s*,\s*`),
		reSeparator:    regexp.MustCompile(`[._-]`),
		reDistrict:     regexp.MustCompile(`(?i)\b(?:q|quan)\s*([0-9]+)\b`),
		reDistrictZero: regexp.MustCompile(`\bQ0+([0-9]+)\b`),
		reWard:         regexp.MustCompile(`(?i)\b(?:p|phuong)\s*([0-9]+)\b`),
		reWardF:        regexp.MustCompile(`\b[Ff]([0-9]+)\b`),
		reWardZero:     regexp.MustCompile(`\bP0+([0-9]+)\b`),
	}

	for _, rule := range rules.Abbreviations {
		re, err := compileAlternation(rule.Variants, false)
		if err != nil {
			return nil, fmt.Errorf("abbreviation rule %q: %w", rule.Canonical, err)
		}
		tn.abbrevPatterns = append(tn.abbrevPatterns, abbrevPattern{re: re, canonical: rule.Canonical})
	}

	for _, rule := range rules.CityDash {
		re, err := compileAlternation(rule.Synonyms, true)
		if err != nil {
			return nil, fmt.Errorf("city_dash rule %q: %w", rule.Canonical, err)
		}
		tn.cityDashPatterns = append(tn.cityDashPatterns, cityDashPattern{re: re, canonical: rule.Canonical})
	}

	var class strings.Builder
	class.WriteString("[")
	for _, p := range rules.Punctuation {
		class.WriteString(regexp.QuoteMeta(p))
	}
	class.WriteString("]")
	rePunct, err := regexp.Compile(class.String())
	if err != nil {
		return nil, fmt.Errorf("lỗi compile punctuation class: %w", err)
	}
	tn.rePunctuation = rePunct

	return tn, nil
}

// compileAlternation build pattern case-insensitive từ danh sách literal.
// Sort theo độ dài giảm dần vì RE2 chọn nhánh alternation đầu tiên match được,
// synonym dài hơn phải được thử trước ("Tp Hcm" trước "Hcm").
func compileAlternation(words []string, wordBoundary bool) (*regexp.Regexp, error) {
	sorted := make([]string, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})

	quoted := make([]string, len(sorted))
	for i, w := range sorted {
		quoted[i] = regexp.QuoteMeta(w)
	}

	pattern := "(?i)(?:" + strings.Join(quoted, "|") + ")"
	if wordBoundary {
		pattern = `(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`
	}
	return regexp.Compile(pattern)
}

// Normalize chạy pipeline chuẩn hóa đầy đủ. Hàm thuần, không side effect.
//
// Các bước theo thứ tự:
//  1. viết hoa chữ cái đầu mỗi từ
//  2. bỏ dấu tiếng Việt
//  3. mở rộng viết tắt (Tp. -> Tp )
//  4. gọn khoảng trắng
//  5. chuẩn hóa quận số (quan 1 -> Q1, Q01 -> Q1)
//  6. chuẩn hóa phường số (phuong 5 -> P5, F5 -> P5, P05 -> P5)
//  7. chuẩn hóa thành phố có dấu gạch (Brvt -> Ba Ria - Vung Tau)
//  8. bỏ dấu câu
//  9. chuẩn hóa separator + viết hoa lại từng từ
// 10. áp dụng lại bước 5 và 6 (bỏ dấu câu có thể ghép các token
//     mà lần chạy đầu chưa thấy)
func (tn *TextNormalizer) Normalize(text string) (string, error) {
	if !utf8.ValidString(text) {
		return "", ErrInvalidInput
	}

	out := titleCaseWords(text)
	out = StripDiacritics(out)
	out = tn.expandAbbreviations(out)
	out = tn.collapseSpaces(out)
	out = tn.normalizeDistrictDigits(out)
	out = tn.normalizeWardDigits(out)
	out = tn.normalizeCityDash(out)
	out = tn.stripPunctuation(out)
	out = tn.normalizeSeparators(out)
	out = tn.normalizeDistrictDigits(out)
	out = tn.normalizeWardDigits(out)

	return out, nil
}

// expandAbbreviations thay các biến thể viết tắt bằng dạng chuẩn
func (tn *TextNormalizer) expandAbbreviations(text string) string {
	for _, p := range tn.abbrevPatterns {
		text = p.re.ReplaceAllString(text, p.canonical)
	}
	return text
}

// normalizeDistrictDigits chuẩn hóa "q 1"/"quan 1" về "Q1", bỏ số 0 đầu
func (tn *TextNormalizer) normalizeDistrictDigits(text string) string {
	text = tn.reDistrict.ReplaceAllString(text, "Q$1")
	text = tn.reDistrictZero.ReplaceAllString(text, "Q$1")
	return text
}

// normalizeWardDigits chuẩn hóa "p 1"/"phuong 1"/"f1" về "P1", bỏ số 0 đầu
func (tn *TextNormalizer) normalizeWardDigits(text string) string {
	text = tn.reWard.ReplaceAllString(text, "P$1")
	text = tn.reWardF.ReplaceAllString(text, "P$1")
	text = tn.reWardZero.ReplaceAllString(text, "P$1")
	return text
}

// normalizeCityDash thay synonym về tên thành phố chuẩn có dấu gạch
func (tn *TextNormalizer) normalizeCityDash(text string) string {
	for _, p := range tn.cityDashPatterns {
		text = p.re.ReplaceAllString(text, p.canonical)
	}
	return text
}

// stripPunctuation bỏ toàn bộ dấu câu rồi gọn khoảng trắng
func (tn *TextNormalizer) stripPunctuation(text string) string {
	text = tn.rePunctuation.ReplaceAllString(text, "")
	return tn.collapseSpaces(text)
}

// normalizeSeparators chuẩn hóa khoảng trắng quanh dấu phẩy, chuyển
// chấm/gạch/gạch dưới còn sót thành space, viết hoa lại từng từ
func (tn *TextNormalizer) normalizeSeparators(text string) string {
	text = tn.reComma.ReplaceAllString(text, ", ")
	text = tn.reSeparator.ReplaceAllString(text, " ")
	text = tn.collapseSpaces(text)
	return titleCaseWords(text)
}

func (tn *TextNormalizer) collapseSpaces(text string) string {
	return strings.TrimSpace(tn.reSpaces.ReplaceAllString(text, " "))
}

// titleCaseWords viết hoa chữ cái đầu mỗi từ, các chữ còn lại về lowercase
func titleCaseWords(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	for i, w := range fields {
		fields[i] = capitalize(w)
	}
	return strings.Join(fields, " ")
}

func capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(word[size:])
}
