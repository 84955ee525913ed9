// Package similarity scores bulletin filings against a portfolio of owned
// trademarks and emits ranked conflict candidates. Scoring combines a lexical
// (visual) signal with a coarse phonetic signal; each filing keeps only its
// single best-matching portfolio mark.
package similarity

import (
	"math"
	"sort"
	"strings"

	"github.com/markwatch/markwatch/internal/domain/bulletin"
)

// SimilarityKind identifies which signal produced the winning score.
type SimilarityKind string

const (
	KindVisual   SimilarityKind = "visual"
	KindPhonetic SimilarityKind = "phonetic"
	// KindBoth means the visual and phonetic scores tied exactly for the
	// best-matching portfolio mark.
	KindBoth SimilarityKind = "both"
)

// MatchResult is one scored conflict between a bulletin filing and the
// closest mark in the portfolio. Similarity is the combined score scaled to
// 0-100; every emitted result clears the inclusion threshold.
type MatchResult struct {
	Mark                 string         `json:"mark"`
	NiceClass            string         `json:"niceClass,omitempty"`
	Applicant            string         `json:"applicant,omitempty"`
	FileNumber           string         `json:"fileNumber,omitempty"`
	Similarity           int            `json:"similarity"`
	MatchedPortfolioMark string         `json:"matchedPortfolioMark"`
	SimilarityKind       SimilarityKind `json:"similarityKind"`
	Suggestions          []string       `json:"suggestions"`
}

// inclusionThreshold is the minimum combined score (exclusive) a filing must
// reach against its best portfolio mark to be reported at all.
const inclusionThreshold = 0.20

// Suggested actions appended to results, tier message first.
const (
	SuggestionUrgentReview = "High similarity: urgent review recommended"
	SuggestionOpposition   = "Moderate similarity: consider filing an opposition"
	SuggestionMonitor      = "Low similarity: monitor upcoming bulletins"
	SuggestionContainment  = "Term containment detected between the marks"
)

// Matcher compares denominative filing entries against a portfolio.
// The zero threshold fields are set by NewMatcher; a Matcher is safe for
// concurrent use, it holds no per-call state.
type Matcher struct {
	threshold float64
}

// NewMatcher creates a matcher with the standard inclusion threshold.
func NewMatcher() *Matcher {
	return &Matcher{threshold: inclusionThreshold}
}

// Match scores every entry against every portfolio mark and returns the
// qualifying conflicts sorted by similarity, highest first. Ties keep the
// original entry order. Callers must pass the denominative subset only;
// portfolio marks are normalized (trimmed, lower-cased) defensively.
//
// Empty entries or an empty portfolio yield an empty result list; that is
// success, not an error.
func (m *Matcher) Match(entries []bulletin.FilingEntry, portfolio []string) []MatchResult {
	owned := normalizeAll(portfolio)
	results := make([]MatchResult, 0, len(entries))

	for _, entry := range entries {
		candidate := normalize(entry.Mark)
		if candidate == "" {
			continue
		}

		var (
			best     float64
			bestMark string
			bestKind SimilarityKind
		)
		for _, mark := range owned {
			visual := visualScore(candidate, mark)
			phonetic := phoneticScore(candidate, mark)

			combined := math.Max(visual, phonetic)
			// Strictly-greater keeps the earliest portfolio mark on ties,
			// so the single-best-match winner is deterministic.
			if combined > best {
				best = combined
				bestMark = mark
				switch {
				case visual == phonetic:
					bestKind = KindBoth
				case visual > phonetic:
					bestKind = KindVisual
				default:
					bestKind = KindPhonetic
				}
			}
		}

		if best <= m.threshold {
			continue
		}
		// Rounding can pull a barely-qualifying score back onto the
		// threshold; the emitted integer must clear it too.
		similarity := int(math.Round(best * 100))
		if similarity <= int(math.Round(m.threshold*100)) {
			continue
		}

		results = append(results, MatchResult{
			Mark:                 entry.Mark,
			NiceClass:            entry.NiceClass,
			Applicant:            entry.Applicant,
			FileNumber:           entry.FileNumber,
			Similarity:           similarity,
			MatchedPortfolioMark: bestMark,
			SimilarityKind:       bestKind,
			Suggestions:          buildSuggestions(best, candidate, bestMark),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	return results
}

// buildSuggestions derives the suggested actions from the winning score and
// simple substring containment, tier message first.
func buildSuggestions(score float64, candidate, matched string) []string {
	suggestions := make([]string, 0, 2)

	switch {
	case score > 0.8:
		suggestions = append(suggestions, SuggestionUrgentReview)
	case score > 0.6:
		suggestions = append(suggestions, SuggestionOpposition)
	case score > 0.4:
		suggestions = append(suggestions, SuggestionMonitor)
	}

	if strings.Contains(candidate, matched) || strings.Contains(matched, candidate) {
		suggestions = append(suggestions, SuggestionContainment)
	}

	return suggestions
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeAll(marks []string) []string {
	out := make([]string, 0, len(marks))
	for _, mark := range marks {
		if n := normalize(mark); n != "" {
			out = append(out, n)
		}
	}
	return out
}
