package models

import "testing"

func TestDisplayProjectType(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Rivning", "Demontering"},
		{"rivning", "Demontering"},
		{"RIVNING", "Demontering"},
		{"Demontering", "Demontering"},
		{"Nybyggnation", "Nybyggnation"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := DisplayProjectType(tc.in); got != tc.want {
			t.Errorf("DisplayProjectType(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
