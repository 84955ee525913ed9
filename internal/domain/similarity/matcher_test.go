package similarity

import (
	"fmt"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markwatch/markwatch/internal/domain/bulletin"
)

func entry(mark string) bulletin.FilingEntry {
	return bulletin.FilingEntry{Kind: bulletin.KindDenominative, Mark: mark}
}

func TestMatcher_ExactSelfMatch(t *testing.T) {
	matcher := NewMatcher()

	results := matcher.Match([]bulletin.FilingEntry{entry("ACME")}, []string{"acme"})

	require.Len(t, results, 1)
	assert.Equal(t, 100, results[0].Similarity)
	assert.Equal(t, KindVisual, results[0].SimilarityKind)
	assert.Equal(t, "acme", results[0].MatchedPortfolioMark)
	assert.Equal(t, "ACME", results[0].Mark)
}

func TestMatcher_BelowThresholdExcluded(t *testing.T) {
	matcher := NewMatcher()

	results := matcher.Match([]bulletin.FilingEntry{entry("zzy")}, []string{"acme"})

	assert.Empty(t, results)
}

func TestMatcher_ContainmentSuggestion(t *testing.T) {
	matcher := NewMatcher()

	results := matcher.Match([]bulletin.FilingEntry{entry("acme corp")}, []string{"acme"})

	require.Len(t, results, 1)
	assert.Contains(t, results[0].Suggestions, SuggestionContainment)
	assert.Contains(t, results[0].Suggestions, SuggestionMonitor)
	// Tier message comes first.
	assert.Equal(t, SuggestionMonitor, results[0].Suggestions[0])
}

func TestMatcher_PhoneticWin(t *testing.T) {
	matcher := NewMatcher()

	// Same consonant key ("bnt"), visually far apart.
	results := matcher.Match([]bulletin.FilingEntry{entry("banete")}, []string{"bonaut"})

	require.Len(t, results, 1)
	assert.Equal(t, 70, results[0].Similarity)
	assert.Equal(t, KindPhonetic, results[0].SimilarityKind)
	assert.Contains(t, results[0].Suggestions, SuggestionOpposition)
}

func TestMatcher_BothOnExactTie(t *testing.T) {
	matcher := NewMatcher()

	// Levenshtein ratio (10-3)/10 = 0.7 and a shared "bcd" phonetic key.
	results := matcher.Match([]bulletin.FilingEntry{entry("bcdaaaaeee")}, []string{"bcdaaaaaaa"})

	require.Len(t, results, 1)
	assert.Equal(t, 70, results[0].Similarity)
	assert.Equal(t, KindBoth, results[0].SimilarityKind)
}

func TestMatcher_UrgentTier(t *testing.T) {
	matcher := NewMatcher()

	results := matcher.Match([]bulletin.FilingEntry{entry("THERMACEL")}, []string{"thermacell"})

	require.Len(t, results, 1)
	assert.Equal(t, 90, results[0].Similarity)
	assert.Equal(t, []string{SuggestionUrgentReview, SuggestionContainment}, results[0].Suggestions)
}

func TestMatcher_SingleBestMatchPerEntry(t *testing.T) {
	matcher := NewMatcher()

	// Both portfolio marks clear the threshold; only the best is reported.
	results := matcher.Match(
		[]bulletin.FilingEntry{entry("acme")},
		[]string{"acme inc", "acme"},
	)

	require.Len(t, results, 1)
	assert.Equal(t, "acme", results[0].MatchedPortfolioMark)
	assert.Equal(t, 100, results[0].Similarity)
}

func TestMatcher_TieKeepsEarliestPortfolioMark(t *testing.T) {
	matcher := NewMatcher()

	// Identical portfolio marks produce identical scores; the first wins.
	results := matcher.Match(
		[]bulletin.FilingEntry{entry("lumina")},
		[]string{"lumina", "lumina "},
	)

	require.Len(t, results, 1)
	assert.Equal(t, "lumina", results[0].MatchedPortfolioMark)
}

func TestMatcher_SortedAndStable(t *testing.T) {
	matcher := NewMatcher()

	entries := []bulletin.FilingEntry{
		entry("banete"), // phonetic 70 against bonaut
		entry("acme"),   // exact 100
		entry("benato"), // phonetic 70 against bonaut
	}
	results := matcher.Match(entries, []string{"acme", "bonaut"})

	require.Len(t, results, 3)
	assert.Equal(t, "acme", results[0].Mark)
	// Equal scores keep original entry order.
	assert.Equal(t, "banete", results[1].Mark)
	assert.Equal(t, "benato", results[2].Mark)

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Similarity, results[i].Similarity)
	}
}

func TestMatcher_ScoreRoundingDownToThresholdExcluded(t *testing.T) {
	matcher := NewMatcher()

	// Edit-distance ratio 9/44 = 0.2045: past the raw cutoff but the
	// reported integer would be 20, so the result must be dropped.
	candidate := strings.Repeat("x", 35) + strings.Repeat("a", 9)
	results := matcher.Match([]bulletin.FilingEntry{entry(candidate)}, []string{"aaaaaaaaa"})

	assert.Empty(t, results)
}

func TestMatcher_SimilarityBounds(t *testing.T) {
	matcher := NewMatcher()

	entries := []bulletin.FilingEntry{
		entry("acme"), entry("acme corp"), entry("banete"), entry("lumina"),
	}
	results := matcher.Match(entries, []string{"acme", "bonaut", "lumina sa"})

	require.NotEmpty(t, results)
	for _, r := range results {
		assert.Greater(t, r.Similarity, 20)
		assert.LessOrEqual(t, r.Similarity, 100)
	}
}

func TestMatcher_EmptyInputs(t *testing.T) {
	matcher := NewMatcher()

	t.Run("no entries", func(t *testing.T) {
		assert.Empty(t, matcher.Match(nil, []string{"acme"}))
	})

	t.Run("no portfolio", func(t *testing.T) {
		assert.Empty(t, matcher.Match([]bulletin.FilingEntry{entry("acme")}, nil))
	})

	t.Run("blank portfolio marks skipped", func(t *testing.T) {
		assert.Empty(t, matcher.Match([]bulletin.FilingEntry{entry("zzy")}, []string{"", "   "}))
	})
}

func TestMatcher_NormalizesEntryMark(t *testing.T) {
	matcher := NewMatcher()

	results := matcher.Match([]bulletin.FilingEntry{entry("  ACME  ")}, []string{"acme"})

	require.Len(t, results, 1)
	assert.Equal(t, 100, results[0].Similarity)
}

func TestMatcher_CarriesFilingFields(t *testing.T) {
	matcher := NewMatcher()

	filing := bulletin.FilingEntry{
		Kind:       bulletin.KindDenominative,
		Mark:       "ACME",
		FileNumber: "4510769",
		NiceClass:  "21",
		Applicant:  "ACME SA",
	}
	results := matcher.Match([]bulletin.FilingEntry{filing}, []string{"acme"})

	require.Len(t, results, 1)
	assert.Equal(t, "4510769", results[0].FileNumber)
	assert.Equal(t, "21", results[0].NiceClass)
	assert.Equal(t, "ACME SA", results[0].Applicant)
}

func TestBuildSuggestions_Tiers(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  []string
	}{
		{"above 0.8", 0.85, []string{SuggestionUrgentReview}},
		{"exactly 0.8 falls to moderate", 0.8, []string{SuggestionOpposition}},
		{"above 0.6", 0.65, []string{SuggestionOpposition}},
		{"above 0.4", 0.45, []string{SuggestionMonitor}},
		{"at or below 0.4 has no tier", 0.4, []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, buildSuggestions(tc.score, "abc", "xyz"))
		})
	}
}

func BenchmarkMatcher_Match(b *testing.B) {
	gofakeit.Seed(42)

	portfolio := make([]string, 200)
	for i := range portfolio {
		portfolio[i] = gofakeit.Company()
	}

	entries := make([]bulletin.FilingEntry, 100)
	for i := range entries {
		entries[i] = entry(fmt.Sprintf("%s %d", gofakeit.Word(), i))
	}

	matcher := NewMatcher()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = matcher.Match(entries, portfolio)
	}
}
