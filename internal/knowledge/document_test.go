package knowledge

import "testing"

func TestParseFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     FileMeta
	}{
		{
			name:     "full convention",
			filename: "B_F500_AM_Aviation.pdf",
			want:     FileMeta{Category: "B", Product: "F500", Subcategory: "AM", Topic: "Aviation"},
		},
		{
			name:     "multi segment topic",
			filename: "B_F500_AM_Lithium_Battery_Fires.docx",
			want:     FileMeta{Category: "B", Product: "F500", Subcategory: "AM", Topic: "Lithium_Battery_Fires"},
		},
		{
			name:     "category and product only",
			filename: "A_Pinnacle.txt",
			want:     FileMeta{Category: "A", Product: "Pinnacle"},
		},
		{
			name:     "category only",
			filename: "Datasheet.pdf",
			want:     FileMeta{Category: "Datasheet", Product: "Unknown"},
		},
		{
			name:     "three segments no topic",
			filename: "C_DustWash_IN.txt",
			want:     FileMeta{Category: "C", Product: "DustWash", Subcategory: "IN"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseFilename(tc.filename)
			if got != tc.want {
				t.Errorf("ParseFilename(%q) = %+v, want %+v", tc.filename, got, tc.want)
			}
		})
	}
}

func TestCountWords(t *testing.T) {
	if got := CountWords("  one  two\nthree "); got != 3 {
		t.Errorf("CountWords = %d, want 3", got)
	}
	if got := CountWords(""); got != 0 {
		t.Errorf("CountWords of empty string = %d, want 0", got)
	}
}
