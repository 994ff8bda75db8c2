// Package mojibake repairs a fixed set of double-encoded byte
// sequences that show up in LLM responses piped through a lossy
// intermediate encoding, rewriting them to their intended Unicode
// glyphs.
package mojibake

import "strings"

var sequences = []string{
	"ΓòÉ", "═",
	"ΓöÇ", "─",
	"Γû¬", "▪",
	"ΓÇæ", "-",
	"ΓÇô", "-",
}

var replacer = strings.NewReplacer(sequences...)

// Normalize rewrites known mojibake sequences in s to their intended
// characters. It is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	return replacer.Replace(s)
}
