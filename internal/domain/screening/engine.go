// Package screening detects verbatim occurrences of portfolio marks anywhere
// in raw bulletin text. It is an exact-substring prescreen using the
// Aho-Corasick algorithm: all marks are matched in a single pass per page,
// independent of portfolio size. Screening output is additive reporting only;
// it never feeds back into similarity scoring.
package screening

import (
	"strings"
	"sync"

	"github.com/cloudflare/ahocorasick"
)

// Mention is one exact, case-insensitive occurrence of a portfolio mark on a
// bulletin page. Mentions are deduplicated per (mark, page).
type Mention struct {
	PortfolioMark string `json:"portfolio_mark"`
	Page          int    `json:"page"`
}

// Engine matches a fixed set of portfolio marks against page text.
type Engine struct {
	matcher *ahocorasick.Matcher
	marks   []string // normalized display form, same order as the matcher dictionary
	mu      sync.RWMutex
}

// NewEngine builds an engine for the given portfolio marks.
func NewEngine(portfolio []string) *Engine {
	e := &Engine{}
	e.Build(portfolio)
	return e
}

// Build (re)constructs the matcher from the portfolio. Marks are matched
// case-insensitively; empty marks are skipped. With no usable marks the
// engine screens nothing.
func (e *Engine) Build(portfolio []string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	marks := make([]string, 0, len(portfolio))
	dictionary := make([]string, 0, len(portfolio))
	seen := make(map[string]bool, len(portfolio))

	for _, mark := range portfolio {
		normalized := strings.ToLower(strings.TrimSpace(mark))
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		marks = append(marks, normalized)
		dictionary = append(dictionary, strings.ToUpper(normalized))
	}

	if len(dictionary) == 0 {
		e.matcher = nil
		e.marks = nil
		return
	}

	e.marks = marks
	e.matcher = ahocorasick.NewStringMatcher(dictionary)
}

// Screen returns every portfolio mark appearing verbatim in the page texts,
// in page order. Empty input or an empty engine yields no mentions.
func (e *Engine) Screen(pages []string) []Mention {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.matcher == nil {
		return nil
	}

	var mentions []Mention
	for pageIdx, page := range pages {
		if page == "" {
			continue
		}
		hits := e.matcher.Match([]byte(strings.ToUpper(page)))
		for _, hit := range hits {
			if hit < 0 || hit >= len(e.marks) {
				continue
			}
			mentions = append(mentions, Mention{
				PortfolioMark: e.marks[hit],
				Page:          pageIdx,
			})
		}
	}

	return mentions
}

// MarkCount returns the number of marks loaded into the engine.
func (e *Engine) MarkCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.marks)
}
