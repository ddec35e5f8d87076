package search

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"spaced f 500", "f 500", "f-500"},
		{"concatenated f500", "F500 aviation", "f-500 aviation"},
		{"hydro lock", "hydro lock", "hydrolock"},
		{"hydrolock compound", "HydroLock vapor", "hydrolock vapor"},
		{"pinnacle foam", "pinnacle foam spray", "pinnacle spray"},
		{"dust wash multiple spaces", "dust  wash", "dust-wash"},
		{"lowercasing only", "Lithium Battery FIRE", "lithium battery fire"},
		{"already canonical", "f-500 encapsulator", "f-500 encapsulator"},
		{"no whole word match", "aff500b", "aff500b"},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.query)
			if got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.query, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	queries := []string{
		"f 500",
		"F500 aviation",
		"hydro lock",
		"pinnacle foam spray",
		"dust  wash",
		"what is f 500 used for",
		"unrelated query",
	}

	for _, q := range queries {
		once := Normalize(q)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", q, once, twice)
		}
	}
}
