package similarity

import (
	"strings"
	"unicode"
)

// phoneticMatchScore is the fixed score awarded when two marks share a
// phonetic key. The key is the first phoneticKeyLen consonants of the mark;
// both constants are a frozen behavioral contract, not tunables.
const (
	phoneticMatchScore = 0.7
	phoneticKeyLen     = 3
)

// vowels covers plain and accented Spanish vowels; input is already
// lower-cased by the matcher.
const vowels = "aeiouáéíóúü"

// phoneticScore returns phoneticMatchScore when both marks reduce to the same
// phonetic key, 0 otherwise. A deliberately crude heuristic; changing it
// changes which filings clear the inclusion threshold.
func phoneticScore(a, b string) float64 {
	if phoneticKey(a) == phoneticKey(b) {
		return phoneticMatchScore
	}
	return 0
}

// phoneticKey strips vowels and non-letters and keeps the first
// phoneticKeyLen remaining characters.
func phoneticKey(s string) string {
	var key strings.Builder
	count := 0
	for _, r := range s {
		if !unicode.IsLetter(r) || strings.ContainsRune(vowels, r) {
			continue
		}
		key.WriteRune(r)
		count++
		if count == phoneticKeyLen {
			break
		}
	}
	return key.String()
}
