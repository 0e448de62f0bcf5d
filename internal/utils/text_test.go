package utils

import "testing"

func TestCapitalizeFirst(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"grön energi", "Grön energi"},
		{"MOBILITET", "Mobilitet"},
		{"  öppna data  ", "Öppna data"},
		{"", ""},
		{"   ", ""},
		{"x", "X"},
	}
	for _, tc := range cases {
		if got := CapitalizeFirst(tc.in); got != tc.want {
			t.Errorf("CapitalizeFirst(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestJoinTags(t *testing.T) {
	cases := []struct {
		in   []string
		want string
	}{
		{[]string{"Trä", "Betong"}, "Trä, Betong"},
		{[]string{" Trä ", "", "Betong"}, "Trä, Betong"},
		{[]string{"Trä"}, "Trä"},
		{nil, ""},
	}
	for _, tc := range cases {
		if got := JoinTags(tc.in); got != tc.want {
			t.Errorf("JoinTags(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
