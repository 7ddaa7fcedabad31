package folding

import "testing"

func TestFold_VietnameseNames(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Full Name With Tones",
			input:    "Nguyễn Văn A",
			expected: "nguyen van a",
		},
		{
			name:     "Uppercase",
			input:    "NGUYỄN THỊ KIM NGÂN",
			expected: "nguyen thi kim ngan",
		},
		{
			name:     "D Stroke",
			input:    "Đà Nẵng",
			expected: "da nang",
		},
		{
			name:     "D Stroke Uppercase",
			input:    "ĐỒNG THÁP",
			expected: "dong thap",
		},
		{
			name:     "Punctuation Runs",
			input:    "Bà Rịa - Vũng Tàu (số 1)",
			expected: "ba ria vung tau so 1",
		},
		{
			name:     "Unit Label",
			input:    "Đơn vị bầu cử số 3",
			expected: "don vi bau cu so 3",
		},
		{
			name:     "Interior Whitespace",
			input:    "  Hà   Nội  ",
			expected: "ha noi",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Fold(tc.input)
			if got != tc.expected {
				t.Errorf("Fold(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestFold_Idempotent(t *testing.T) {
	inputs := []string{
		"Nguyễn Văn A",
		"Đà Nẵng",
		"thanh pho ho chi minh",
		"Số 5, Phường Bến Nghé!",
		"",
	}
	for _, input := range inputs {
		once := Fold(input)
		twice := Fold(once)
		if once != twice {
			t.Errorf("Fold not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestFold_CaseAndAccentInsensitive(t *testing.T) {
	if Fold("Nguyễn") != Fold("NGUYEN") || Fold("Nguyễn") != Fold("nguyen") {
		t.Errorf("case/accent variants diverge: %q %q %q", Fold("Nguyễn"), Fold("NGUYEN"), Fold("nguyen"))
	}
	if Fold("Đà Nẵng") != Fold("da nang") {
		t.Errorf("đ handling diverges: %q != %q", Fold("Đà Nẵng"), Fold("da nang"))
	}
}

func TestFold_Total(t *testing.T) {
	if got := Fold(""); got != "" {
		t.Errorf("Fold(\"\") = %q, want empty", got)
	}
	if got := Fold("   "); got != "" {
		t.Errorf("Fold(blank) = %q, want empty", got)
	}
	if got := Fold("!!! ··· ???"); got != "" {
		t.Errorf("Fold(punctuation only) = %q, want empty", got)
	}
}
