// Package report renders a scan result into an XLSX workbook for download.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/markwatch/markwatch/internal/domain/scan"
)

const (
	conflictsSheet = "Conflicts"
	mentionsSheet  = "Mentions"
)

// WriteWorkbook writes a two-sheet workbook: the ranked conflicts and the
// verbatim portfolio mentions. Row order follows the result order, which is
// already ranked by similarity.
func WriteWorkbook(w io.Writer, result *scan.RunResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", conflictsSheet); err != nil {
		return fmt.Errorf("failed to rename conflicts sheet: %w", err)
	}
	if _, err := f.NewSheet(mentionsSheet); err != nil {
		return fmt.Errorf("failed to create mentions sheet: %w", err)
	}

	if err := writeConflicts(f, result); err != nil {
		return err
	}
	if err := writeMentions(f, result); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeConflicts(f *excelize.File, result *scan.RunResult) error {
	header := []any{
		"Mark", "Nice Class", "Applicant", "Acta", "Similarity",
		"Matched Portfolio Mark", "Signal", "Suggestions",
	}
	if err := f.SetSheetRow(conflictsSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write conflicts header: %w", err)
	}

	for i, match := range result.Matches {
		row := []any{
			match.Mark,
			match.NiceClass,
			match.Applicant,
			match.FileNumber,
			match.Similarity,
			match.MatchedPortfolioMark,
			string(match.SimilarityKind),
			strings.Join(match.Suggestions, "; "),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(conflictsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write conflict row %d: %w", i+1, err)
		}
	}

	return nil
}

func writeMentions(f *excelize.File, result *scan.RunResult) error {
	header := []any{"Portfolio Mark", "Page"}
	if err := f.SetSheetRow(mentionsSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write mentions header: %w", err)
	}

	for i, mention := range result.Mentions {
		// Pages are 1-based for readers.
		row := []any{mention.PortfolioMark, mention.Page + 1}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(mentionsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write mention row %d: %w", i+1, err)
		}
	}

	return nil
}
