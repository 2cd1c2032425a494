package normalizer

import (
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// vietnameseBase thay thế các chữ cái tiếng Việt mà NFD decomposition
// không tách được thành chữ cái gốc + dấu (đ không phải base + combining mark).
var vietnameseBase = map[rune]rune{
	'đ': 'd',
	'Đ': 'D',
}

// StripDiacritics loại bỏ dấu tiếng Việt, trả về chuỗi thuần ASCII Latin.
// Decompose NFD rồi bỏ combining mark xử lý toàn bộ nguyên âm có dấu
// (kể cả ơ/ư vì dấu móc cũng là combining mark); bảng vietnameseBase xử lý đ/Đ;
// unidecode chặn hậu các ký tự ngoài ASCII còn sót lại.
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	out, _, _ := transform.String(t, s)

	mapped := make([]rune, 0, len(out))
	ascii := true
	for _, r := range out {
		if base, ok := vietnameseBase[r]; ok {
			r = base
		}
		if r > unicode.MaxASCII {
			ascii = false
		}
		mapped = append(mapped, r)
	}
	if ascii {
		return string(mapped)
	}
	return unidecode.Unidecode(string(mapped))
}

// isMn kiểm tra xem rune có phải là diacritic mark không
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
