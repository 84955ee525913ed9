package bulletin

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func page(lines ...string) string {
	return strings.Join(lines, "\n")
}

func TestParse_SingleFiling(t *testing.T) {
	pages := []string{page(
		"(21) Acta 4510769 - (51) Clase 21",
		"(40) D (54) THERMACELL",
		"(73) THERMACELL REPELLENTS, INC.",
	)}

	result := Parse(pages, nil)

	require.Len(t, result.Entries, 1)
	entry := result.Entries[0]
	assert.Equal(t, KindDenominative, entry.Kind)
	assert.Equal(t, "THERMACELL", entry.Mark)
	assert.Equal(t, "4510769", entry.FileNumber)
	assert.Equal(t, "21", entry.NiceClass)
	assert.Equal(t, "THERMACELL REPELLENTS, INC.", entry.Applicant)
	assert.Nil(t, entry.Image)
}

func TestParse_BareMixedMarkBindsImage(t *testing.T) {
	pages := []string{page(
		"(21) Acta 1 - (51) Clase 1",
		"(40) M (54)",
	)}
	images := [][]PageImage{{{Data: []byte("png-bytes")}}}

	result := Parse(pages, images)

	require.Len(t, result.Entries, 1)
	entry := result.Entries[0]
	assert.Equal(t, KindMixed, entry.Kind)
	assert.Equal(t, PlaceholderMixedMark, entry.Mark)
	require.NotNil(t, entry.Image)
	assert.Equal(t, 0, entry.Image.Page)
	assert.Equal(t, 0, entry.Image.Index)

	// Mixed entries never reach the matcher.
	assert.Empty(t, result.Denominative())
}

func TestParse_BareMixedMarkNoImageLeft(t *testing.T) {
	pages := []string{page(
		"(21) Acta 1 - (51) Clase 1",
		"(40) M (54)",
		"(21) Acta 2 - (51) Clase 2",
		"(40) M (54)",
	)}
	// One image on the page; the second mixed filing finds none left.
	images := [][]PageImage{{{Data: []byte("img")}}}

	result := Parse(pages, images)

	require.Len(t, result.Entries, 2)
	require.NotNil(t, result.Entries[0].Image)
	assert.Nil(t, result.Entries[1].Image)
}

func TestParse_ImageCursorResetsPerPage(t *testing.T) {
	pages := []string{
		page(
			"(21) Acta 1 - (51) Clase 1",
			"(40) M (54)",
		),
		page(
			"(21) Acta 2 - (51) Clase 2",
			"(40) M (54)",
		),
	}
	images := [][]PageImage{
		{{Data: []byte("page0-img0")}},
		{{Data: []byte("page1-img0")}},
	}

	result := Parse(pages, images)

	require.Len(t, result.Entries, 2)
	require.NotNil(t, result.Entries[0].Image)
	assert.Equal(t, ImageRef{Page: 0, Index: 0}, *result.Entries[0].Image)

	// The second page's mixed filing binds that page's first image, not a
	// stale cursor carried over from page 0.
	require.NotNil(t, result.Entries[1].Image)
	assert.Equal(t, ImageRef{Page: 1, Index: 0}, *result.Entries[1].Image)
}

func TestParse_MixedMarkWithNameSkipsImageBinding(t *testing.T) {
	pages := []string{page(
		"(21) Acta 3 - (51) Clase 9",
		"(40) M (54) ACME DEVICE",
	)}
	images := [][]PageImage{{{Data: []byte("img")}}}

	result := Parse(pages, images)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, KindMixed, result.Entries[0].Kind)
	assert.Equal(t, "ACME DEVICE", result.Entries[0].Mark)
	assert.Nil(t, result.Entries[0].Image)
}

func TestParse_FirstApplicantWins(t *testing.T) {
	pages := []string{page(
		"(21) Acta 10 - (51) Clase 5",
		"(40) D (54) LUMINA",
		"(73) FIRST APPLICANT SA",
		"(73) SECOND APPLICANT SRL",
	)}

	result := Parse(pages, nil)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, "FIRST APPLICANT SA", result.Entries[0].Applicant)
}

func TestParse_ApplicantBeforeMarkIgnored(t *testing.T) {
	pages := []string{page(
		"(21) Acta 10 - (51) Clase 5",
		"(73) TOO EARLY SA",
		"(40) D (54) LUMINA",
	)}

	result := Parse(pages, nil)

	require.Len(t, result.Entries, 1)
	assert.Empty(t, result.Entries[0].Applicant)
}

func TestParse_MarkLineWithoutOpenFilingIgnored(t *testing.T) {
	pages := []string{page(
		"(40) D (54) ORPHAN MARK",
		"(21) Acta 7 - (51) Clase 3",
		"(40) D (54) REAL MARK",
	)}

	result := Parse(pages, nil)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, "REAL MARK", result.Entries[0].Mark)
}

func TestParse_FilingWithoutMarkDropped(t *testing.T) {
	pages := []string{page(
		"(21) Acta 1 - (51) Clase 1",
		"(73) NAMELESS SA",
		"(21) Acta 2 - (51) Clase 2",
		"(40) D (54) KEEPER",
	)}

	result := Parse(pages, nil)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, "KEEPER", result.Entries[0].Mark)
	assert.Equal(t, "2", result.Entries[0].FileNumber)
}

func TestParse_BareDenominativeMarkLineSetsNothing(t *testing.T) {
	pages := []string{page(
		"(21) Acta 1 - (51) Clase 1",
		"(40) D (54)",
	)}

	result := Parse(pages, nil)

	// "(40) D (54)" with no trailing text leaves the filing without a
	// mark, so it never surfaces.
	assert.Empty(t, result.Entries)
}

func TestParse_FilingSpansPageBreak(t *testing.T) {
	pages := []string{
		page("(21) Acta 55 - (51) Clase 30"),
		page(
			"(40) D (54) CROSSPAGE",
			"(73) SPLIT FILINGS LLC",
		),
	}

	result := Parse(pages, nil)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, "CROSSPAGE", result.Entries[0].Mark)
	assert.Equal(t, "55", result.Entries[0].FileNumber)
	assert.Equal(t, "SPLIT FILINGS LLC", result.Entries[0].Applicant)
}

func TestParse_MultipleFilingsKeepDocumentOrder(t *testing.T) {
	pages := []string{page(
		"(21) Acta 100 - (51) Clase 1",
		"(40) D (54) ALPHA",
		"noise between filings",
		"(21) Acta 200 - (51) Clase 2",
		"(40) M (54) BETA FIGURATIVE",
		"(21) Acta 300 - (51) Clase 3",
		"(40) D (54) GAMMA",
	)}

	result := Parse(pages, nil)

	require.Len(t, result.Entries, 3)
	assert.Equal(t, "ALPHA", result.Entries[0].Mark)
	assert.Equal(t, "BETA FIGURATIVE", result.Entries[1].Mark)
	assert.Equal(t, "GAMMA", result.Entries[2].Mark)

	denominative := result.Denominative()
	require.Len(t, denominative, 2)
	assert.Equal(t, "ALPHA", denominative[0].Mark)
	assert.Equal(t, "GAMMA", denominative[1].Mark)

	require.Len(t, result.Mixed(), 1)
}

func TestParse_EveryMarkNonEmpty(t *testing.T) {
	pages := []string{page(
		"(21) Acta 1 - (51) Clase 1",
		"(40) D (54) ONE",
		"(21) Acta 2 - (51) Clase 2",
		"(21) Acta 3 - (51) Clase 3",
		"(40) M (54)",
	)}

	result := Parse(pages, nil)

	for _, entry := range result.Entries {
		assert.NotEmpty(t, entry.Mark)
	}
}

func TestParse_EmptyAndUnrecognizedInput(t *testing.T) {
	t.Run("no pages", func(t *testing.T) {
		result := Parse(nil, nil)
		assert.Empty(t, result.Entries)
		assert.Zero(t, result.Pages)
	})

	t.Run("blank pages", func(t *testing.T) {
		result := Parse([]string{"", "\n\n"}, nil)
		assert.Empty(t, result.Entries)
		assert.Equal(t, 2, result.Pages)
		assert.Zero(t, result.LinesSeen)
	})

	t.Run("no recognizable lines", func(t *testing.T) {
		result := Parse([]string{page("random text", "more noise")}, nil)
		assert.Empty(t, result.Entries)
		assert.Equal(t, 2, result.LinesSeen)
		assert.Zero(t, result.Recognized)
	})
}

func TestParse_Pure(t *testing.T) {
	pages := []string{page(
		"(21) Acta 1 - (51) Clase 1",
		"(40) M (54)",
		"(21) Acta 2 - (51) Clase 2",
		"(40) D (54) REPEATABLE",
	)}
	images := [][]PageImage{{{Data: []byte("img")}}}

	first := Parse(pages, images)
	second := Parse(pages, images)

	assert.Equal(t, first, second)
}

func BenchmarkParse(b *testing.B) {
	var lines []string
	for i := 0; i < 200; i++ {
		lines = append(lines,
			"(21) Acta 4500000 - (51) Clase 21",
			"(40) D (54) SOME TRADEMARK NAME",
			"(73) SOME APPLICANT COMPANY SA",
			"filler line the parser ignores",
		)
	}
	pages := []string{strings.Join(lines, "\n")}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Parse(pages, nil)
	}
}
