// Package portfolio loads and normalizes the caller's list of owned
// trademarks. The rest of the pipeline only ever sees the normalized form:
// trimmed, lower-cased, no empties, no duplicates.
package portfolio

import (
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
)

// markRow is one row of an uploaded portfolio CSV. The tags cover the common
// header variants (gocsv matches by header name); only the mark column is
// required.
type markRow struct {
	Mark          string `csv:"mark"`
	Marca         string `csv:"marca"`
	Denominacion  string `csv:"denominación"`
	Denominacion2 string `csv:"denominacion"`
	Name          string `csv:"name"`

	NiceClass string `csv:"nice_class"`
	Clase     string `csv:"clase"`

	FileNumber string `csv:"file_number"`
	Acta       string `csv:"acta"`
}

// Normalize trims and lower-cases every mark, dropping empties and
// duplicates while preserving first-seen order.
func Normalize(marks []string) []string {
	out := make([]string, 0, len(marks))
	seen := make(map[string]bool, len(marks))
	for _, mark := range marks {
		normalized := strings.ToLower(strings.TrimSpace(mark))
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		out = append(out, normalized)
	}
	return out
}

// LoadCSV reads a portfolio CSV and returns the normalized mark list.
// Rows without a recognizable mark column value are skipped, not errors.
func LoadCSV(r io.Reader) ([]string, error) {
	var rows []markRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse portfolio CSV: %w", err)
	}

	marks := make([]string, 0, len(rows))
	for _, row := range rows {
		if mark := coalesce(row.Mark, row.Marca, row.Denominacion, row.Denominacion2, row.Name); mark != "" {
			marks = append(marks, mark)
		}
	}

	return Normalize(marks), nil
}

// coalesce returns the first non-empty value.
func coalesce(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
