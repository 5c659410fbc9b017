package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Balaji91221/resume-screening-app/internal/core/domain"
)

const (
	SheetName   = "Frequencies"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// WriteFrequencies writes a single-sheet workbook with a Word/Count header row.
func WriteFrequencies(w io.Writer, words []domain.WordFrequency) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetColWidth(SheetName, "A", "A", 28); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	rows := make([][]any, 0, len(words)+1)
	rows = append(rows, []any{"Word", "Count"})
	for _, word := range words {
		rows = append(rows, []any{word.Word, word.Count})
	}

	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(SheetName, cell, value); err != nil {
				return fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
