package utils

import "testing"

func TestRemoveDiacritics(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"tuyệt vời", "tuyet voi"},
		{"Dịch vụ rất tốt", "Dich vu rat tot"},
		{"đánh giá", "đanh gia"}, // đ has no decomposition, stays
		{"no accents here", "no accents here"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := RemoveDiacritics(tc.in); got != tc.want {
			t.Errorf("RemoveDiacritics(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
