package normalizer

import (
	"errors"
	"testing"
)

func newTestNormalizer(t *testing.T) *TextNormalizer {
	t.Helper()

	rules, err := DefaultRules()
	if err != nil {
		t.Fatalf("DefaultRules() error = %v", err)
	}
	tn, err := NewTextNormalizer(rules)
	if err != nil {
		t.Fatalf("NewTextNormalizer() error = %v", err)
	}
	return tn
}

func TestNormalize(t *testing.T) {
	tn := newTestNormalizer(t)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "dia chi day du voi viet tat",
			input: "123 Nguyen Van Cu, Q.1, Tp.HCM",
			want:  "123 Nguyen Van Cu Q1 Ho Chi Minh",
		},
		{
			name:  "quan so khong co dau cham",
			input: "45 Le Loi, Q1",
			want:  "45 Le Loi Q1",
		},
		{
			name:  "bo dau tieng viet",
			input: "Đường Trần Hưng Đạo, Quận Hoàn Kiếm, Hà Nội",
			want:  "Duong Tran Hung Dao Quan Hoan Kiem Ha Noi",
		},
		{
			name:  "phuong so co so 0 dau",
			input: "P.05 Quan 3",
			want:  "P5 Q3",
		},
		{
			name:  "f thay cho phuong",
			input: "12 Ly Tu Trong F2 Q10",
			want:  "12 Ly Tu Trong P2 Q10",
		},
		{
			name:  "quan viet day du",
			input: "so 8 quan 03 tphcm",
			want:  "So 8 Q3 Ho Chi Minh",
		},
		{
			name:  "thanh pho dau gach",
			input: "Xa Long Son, Brvt",
			want:  "Xa Long Son Ba Ria Vung Tau",
		},
		{
			name:  "sai gon ve ho chi minh",
			input: "Cho Ben Thanh, Sai Gon",
			want:  "Cho Ben Thanh Ho Chi Minh",
		},
		{
			name:  "thua thien hue",
			input: "Hue, Thua Thien - Hue",
			want:  "Hue Thua Thien Hue",
		},
		{
			name:  "khoang trang thua",
			input: "  140   Le    Trong Tan ",
			want:  "140 Le Trong Tan",
		},
		{
			name:  "chuoi rong",
			input: "",
			want:  "",
		},
		{
			name:  "chi dau cau",
			input: ".,;:!?",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tn.Normalize(tt.input)
			if err != nil {
				t.Fatalf("Normalize(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestNormalizeIdempotent chuẩn hóa chuỗi đã chuẩn hóa phải là no-op
func TestNormalizeIdempotent(t *testing.T) {
	tn := newTestNormalizer(t)

	inputs := []string{
		"123 Nguyen Van Cu, Q.1, Tp.HCM",
		"45 Le Loi, Q1",
		"Đường Trần Hưng Đạo, Quận Hoàn Kiếm, Hà Nội",
		"Xa Long Son, Brvt",
		"P.05 Quan 3",
	}

	for _, input := range inputs {
		once, err := tn.Normalize(input)
		if err != nil {
			t.Fatalf("Normalize(%q) error = %v", input, err)
		}
		twice, err := tn.Normalize(once)
		if err != nil {
			t.Fatalf("Normalize(%q) error = %v", once, err)
		}
		if once != twice {
			t.Errorf("Normalize không idempotent: %q -> %q -> %q", input, once, twice)
		}
	}
}

// TestNormalizeStepOrdering bỏ dấu câu có thể ghép token lại với nhau,
// nên rule quận/phường số phải được áp dụng lại sau đó
func TestNormalizeStepOrdering(t *testing.T) {
	tn := newTestNormalizer(t)

	tests := []struct {
		input string
		want  string
	}{
		// "Phuong.7" chỉ thành "Phuong7" sau khi bỏ dấu chấm,
		// lần chạy ward-digit thứ hai mới bắt được
		{"Phuong.7", "P7"},
		{"Quan.2", "Q2"},
	}

	for _, tt := range tests {
		got, err := tn.Normalize(tt.input)
		if err != nil {
			t.Fatalf("Normalize(%q) error = %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeInvalidInput(t *testing.T) {
	tn := newTestNormalizer(t)

	invalid := string([]byte{0xff, 0xfe, 0xfd})
	_, err := tn.Normalize(invalid)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Normalize(invalid UTF-8) error = %v, want ErrInvalidInput", err)
	}
}

func TestStripDiacritics(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hà Nội", "Ha Noi"},
		{"Đà Nẵng", "Da Nang"},
		{"Thừa Thiên Huế", "Thua Thien Hue"},
		{"Bà Rịa Vũng Tàu", "Ba Ria Vung Tau"},
		{"đường Ưng Bình", "duong Ung Binh"},
		{"abc 123", "abc 123"},
	}

	for _, tt := range tests {
		if got := StripDiacritics(tt.input); got != tt.want {
			t.Errorf("StripDiacritics(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNewTextNormalizerRejectsBadRules(t *testing.T) {
	tests := []struct {
		name  string
		rules *Rules
	}{
		{"nil rules", nil},
		{"canonical rong", &Rules{Abbreviations: []AbbrevRule{{Canonical: "", Variants: []string{"x."}}}}},
		{"variant rong", &Rules{Abbreviations: []AbbrevRule{{Canonical: "X ", Variants: nil}}}},
		{"synonym rong", &Rules{CityDash: []CityDashRule{{Canonical: " X ", Synonyms: nil}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTextNormalizer(tt.rules); err == nil {
				t.Errorf("NewTextNormalizer() = nil error, want error")
			}
		})
	}
}
