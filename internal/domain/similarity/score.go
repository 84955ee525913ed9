package similarity

import (
	"math"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// visualScore is the normalized lexical similarity between two already
// normalized strings, in [0, 1]. Identical strings score 1, fully disjoint
// strings score 0, and the metric is symmetric.
//
// The score is the better of two signals: an edit-distance ratio and a
// bounded subsequence signal, the latter capped below the ratio a
// near-identical pair would produce so it can only lift loose matches.
func visualScore(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}

	lev := float64(maxLen-levenshteinDistance(a, b)) / float64(maxLen)
	if sub := subsequenceScore(a, b); sub > lev {
		return sub
	}
	return lev
}

// subsequenceScore rewards one string appearing as an in-order subsequence of
// the other. RankMatch is directional, so both directions are tried to keep
// the overall metric symmetric.
func subsequenceScore(a, b string) float64 {
	return math.Max(rankScore(a, b), rankScore(b, a))
}

// rankScore maps fuzzy.RankMatch output onto [0, 0.6]: the closer the
// subsequence is to the full text, the higher the score. A non-matching
// pattern scores 0.
func rankScore(text, pattern string) float64 {
	rank := fuzzy.RankMatch(pattern, text)
	if rank < 0 {
		return 0
	}
	textLen := len([]rune(text))
	if textLen == 0 || rank >= textLen {
		return 0
	}
	return 0.6 * float64(textLen-rank) / float64(textLen)
}

// levenshteinDistance is the edit distance between two strings, computed with
// two rolling rows.
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len([]rune(b))
	}
	if len(b) == 0 {
		return len([]rune(a))
	}

	ra := []rune(a)
	rb := []rune(b)

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}
