package fold

import "testing"

func TestText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Paneer", "paneer"},
		{"Chicken Breast (Grilled)", "chicken breast grilled"},
		{"Grüße", "grusse"},
		{"Crème Brûlée", "creme brulee"},
		{"Dal—Makhani", "dal makhani"},
		{"  aloo   gobi  ", "aloo gobi"},
		{"Vitamin B12", "vitamin b12"},
		// U+2011 non-breaking hyphen, as used by the goal radio labels
		{"High‑Protein", "high protein"},
		{"", ""},
	}

	for _, tc := range tests {
		if got := Text(tc.input); got != tc.want {
			t.Errorf("Text(%q) = %q; want %q", tc.input, got, tc.want)
		}
	}
}

func TestKey(t *testing.T) {
	same := []string{"HighProtein", "High-Protein", "high_protein", "HIGH PROTEIN", "High‑Protein"}
	for _, s := range same {
		if got := Key(s); got != "highprotein" {
			t.Errorf("Key(%q) = %q; want %q", s, got, "highprotein")
		}
	}
	if got := Key("--"); got != "" {
		t.Errorf("Key(%q) = %q; want empty", "--", got)
	}
}
