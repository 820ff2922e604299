package nutricionista

import "strings"

var accentReplacer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
	"Á", "a", "É", "e", "Í", "i", "Ó", "o", "Ú", "u", "Ü", "u", "Ñ", "n",
)

// fold lowercases and strips Spanish accents so "María" matches "maria".
func fold(s string) string {
	return strings.ToLower(accentReplacer.Replace(s))
}

// foldContains reports whether haystack contains needle, both folded.
func foldContains(haystack, needle string) bool {
	return strings.Contains(fold(haystack), fold(needle))
}
