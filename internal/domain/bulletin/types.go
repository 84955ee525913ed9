// Package bulletin turns raw gazette page text into discrete trademark filing
// entries. The input is the per-page plain text (and per-page image list)
// produced by the external extraction service; the output is an ordered list of
// FilingEntry values ready for conflict scoring.
package bulletin

// MarkKind distinguishes text-only marks from marks with a figurative element.
type MarkKind string

const (
	// KindDenominative is a text-only trademark.
	KindDenominative MarkKind = "denominative"
	// KindMixed is a trademark combining text and a graphical element.
	KindMixed MarkKind = "mixed"
)

// PlaceholderMixedMark is the mark text assigned to mixed filings whose
// "(54)" segment carries no denomination at all.
const PlaceholderMixedMark = "Marca Mixta"

// ImageRef points at one extracted raster image by page and position.
type ImageRef struct {
	Page  int `json:"page"`
	Index int `json:"index"`
}

// PageImage is one raster image extracted from a bulletin page. The bytes are
// opaque to this package; mixed-mark entries reference them positionally.
type PageImage struct {
	Data        []byte `json:"data"`
	ContentType string `json:"content_type,omitempty"`
}

// FilingEntry is one trademark application parsed from the bulletin.
// Mark is always non-empty in parser output; the remaining string fields are
// empty when the corresponding line never appeared for the filing.
type FilingEntry struct {
	Kind       MarkKind  `json:"kind"`
	Mark       string    `json:"mark"`
	FileNumber string    `json:"file_number,omitempty"`
	NiceClass  string    `json:"nice_class,omitempty"`
	Applicant  string    `json:"applicant,omitempty"`
	Image      *ImageRef `json:"image,omitempty"`
}

// ParseResult contains the parsed entries plus counters useful for logging
// how much of the bulletin was recognized.
type ParseResult struct {
	Entries    []FilingEntry
	Pages      int
	LinesSeen  int // non-blank lines examined
	Recognized int // lines that matched one of the known formats
}

// Denominative returns the text-only subset of the parsed entries, in order.
// Only this subset is eligible for similarity scoring.
func (r ParseResult) Denominative() []FilingEntry {
	out := make([]FilingEntry, 0, len(r.Entries))
	for _, e := range r.Entries {
		if e.Kind == KindDenominative {
			out = append(out, e)
		}
	}
	return out
}

// Mixed returns the figurative subset of the parsed entries, in order.
func (r ParseResult) Mixed() []FilingEntry {
	out := make([]FilingEntry, 0, len(r.Entries))
	for _, e := range r.Entries {
		if e.Kind == KindMixed {
			out = append(out, e)
		}
	}
	return out
}
