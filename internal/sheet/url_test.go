package sheet

import "testing"

func TestBuildCSVURL(t *testing.T) {
	cases := []struct {
		name, base, gid, want string
	}{
		{"pub without gid", "https://docs.google.com/spreadsheets/d/e/X/pub?output=csv", "7",
			"https://docs.google.com/spreadsheets/d/e/X/pub?output=csv&gid=7&single=true&output=csv"},
		{"pub replaces gid", "https://docs.google.com/spreadsheets/d/e/X/pub?gid=0&single=true&output=csv", "9",
			"https://docs.google.com/spreadsheets/d/e/X/pub?gid=9&single=true&output=csv"},
		{"export appends gid", "https://docs.google.com/spreadsheets/d/ID/export?format=csv", "5",
			"https://docs.google.com/spreadsheets/d/ID/export?format=csv&gid=5"},
		{"export replaces gid", "https://docs.google.com/spreadsheets/d/ID/export?format=csv&gid=1", "5",
			"https://docs.google.com/spreadsheets/d/ID/export?format=csv&gid=5"},
		{"edit link", "https://docs.google.com/spreadsheets/d/ABC_123/edit#gid=0", "3",
			"https://docs.google.com/spreadsheets/d/ABC_123/export?format=csv&gid=3"},
		{"other url untouched", "https://example.com/q.csv", "3", "https://example.com/q.csv"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BuildCSVURL(tc.base, tc.gid); got != tc.want {
				t.Fatalf("BuildCSVURL = %s\nwant %s", got, tc.want)
			}
		})
	}
}
