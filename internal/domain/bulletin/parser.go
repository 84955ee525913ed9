package bulletin

import "strings"

// parseState is the accumulator threaded through the line fold: the filing
// currently being assembled plus the image cursor for the page being read.
// The cursor is page-local; it resets at every page boundary so mixed marks on
// later pages bind to that page's images.
type parseState struct {
	open        *FilingEntry
	imageCursor int
}

// Parse converts per-page bulletin text and the matching per-page image lists
// into an ordered list of filing entries.
//
// A filing opens at a "(21) Acta ... - (51) Clase ..." line, accumulates the
// mark declaration "(40) <D|M> (54) ..." and the first "(73)" applicant line,
// and is finalized when the next boundary line or the end of input arrives.
// Entries without a mark name are dropped. The function is pure: it never
// fails, carries no state between calls, and empty input yields empty output.
func Parse(pages []string, images [][]PageImage) ParseResult {
	res := ParseResult{Pages: len(pages)}
	st := parseState{}

	for pageIdx, page := range pages {
		st.imageCursor = 0

		for _, raw := range strings.Split(page, "\n") {
			line := strings.TrimSpace(raw)
			if line == "" {
				continue
			}
			res.LinesSeen++

			tok := classifyLine(line)
			switch tok.class {
			case lineBoundary:
				res.Recognized++
				if st.open != nil && st.open.Mark != "" {
					res.Entries = append(res.Entries, *st.open)
				}
				st.open = &FilingEntry{
					Kind:       KindDenominative,
					FileNumber: tok.fileNumber,
					NiceClass:  tok.niceClass,
				}

			case lineMark:
				res.Recognized++
				if st.open == nil {
					continue
				}
				switch {
				case tok.markText != "":
					st.open.Kind = tok.markKind
					st.open.Mark = tok.markText
				case tok.markKind == KindMixed:
					// Bare "(40) M (54)": figurative filing with no
					// denomination. Bind the next unclaimed image on this
					// page, if one remains.
					st.open.Kind = KindMixed
					st.open.Mark = PlaceholderMixedMark
					if pageIdx < len(images) && st.imageCursor < len(images[pageIdx]) {
						st.open.Image = &ImageRef{Page: pageIdx, Index: st.imageCursor}
						st.imageCursor++
					}
				}

			case lineApplicant:
				res.Recognized++
				// First applicant wins; later "(73)" lines for the same
				// filing are ignored.
				if st.open != nil && st.open.Mark != "" && st.open.Applicant == "" {
					st.open.Applicant = tok.applicant
				}
			}
		}
	}

	if st.open != nil && st.open.Mark != "" {
		res.Entries = append(res.Entries, *st.open)
	}

	return res
}
