package helper

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"Go Study Group", 0, "go-study-group"},
		{"  Algorithms   101 ", 0, "algorithms-101"},
		{"Café & Thé", 0, "cafe-the"},
		{"!!!", 0, "item"},
		{"", 0, "item"},
		{"a-very-long-name", 6, "a-very"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in, tc.max); got != tc.want {
			t.Errorf("Slugify(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}
