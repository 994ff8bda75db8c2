package mojibake

import "testing"

func TestNormalize_RewritesKnownSequences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ΓòÉΓòÉΓòÉ", "═══"},
		{"ΓöÇ", "─"},
		{"Γû¬ item", "▪ item"},
		{"aΓÇæb", "a-b"},
		{"aΓÇôb", "a-b"},
		{"no mojibake here", "no mojibake here"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"ΓòÉ title ΓöÇ",
		"plain ascii text",
		"mixed Γû¬ bullet and ΓÇô dash",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}
