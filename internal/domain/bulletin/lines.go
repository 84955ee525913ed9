package bulletin

import (
	"regexp"
	"strings"
)

// lineClass is the closed set of line shapes the parser understands.
// Classification happens once per line; the parser dispatches on the result.
type lineClass int

const (
	lineOther lineClass = iota
	lineBoundary
	lineMark
	lineApplicant
)

// Gazette line formats, in precedence order. The capture groups for the
// boundary line are digit-only by construction, so non-numeric acta/class
// values can never reach an entry.
var (
	boundaryRe  = regexp.MustCompile(`^\(21\)\s*Acta\s+(\d+)\s*-\s*\(51\)\s*Clase\s+(\d+)`)
	markRe      = regexp.MustCompile(`^\(40\)\s*([DM])\s*\(54\)\s*(.*)$`)
	applicantRe = regexp.MustCompile(`^\(73\)\s*(\S.*)$`)
)

// lineToken is the classified form of a single trimmed line. Only the fields
// belonging to the detected class are populated.
type lineToken struct {
	class      lineClass
	fileNumber string
	niceClass  string
	markKind   MarkKind
	markText   string
	applicant  string
}

// classifyLine matches a trimmed, non-blank line against the known gazette
// formats, first match wins.
func classifyLine(line string) lineToken {
	if m := boundaryRe.FindStringSubmatch(line); m != nil {
		return lineToken{class: lineBoundary, fileNumber: m[1], niceClass: m[2]}
	}
	if m := markRe.FindStringSubmatch(line); m != nil {
		kind := KindDenominative
		if m[1] == "M" {
			kind = KindMixed
		}
		return lineToken{class: lineMark, markKind: kind, markText: strings.TrimSpace(m[2])}
	}
	if m := applicantRe.FindStringSubmatch(line); m != nil {
		return lineToken{class: lineApplicant, applicant: strings.TrimSpace(m[1])}
	}
	return lineToken{class: lineOther}
}
