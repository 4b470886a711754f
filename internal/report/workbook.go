package report

import (
	"errors"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/MikeSquared-Agency/breakdowns/internal/breakdown"
)

// Workbook writes each summary to its own sheet, named after the detector, in
// an xlsx file. Re-running a detector replaces its sheet and leaves the others.
type Workbook struct {
	path string
}

func NewWorkbook(path string) *Workbook {
	return &Workbook{path: path}
}

func (wb *Workbook) Write(s breakdown.Summary) (err error) {
	f, fresh, err := wb.open()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close workbook: %w", cerr)
		}
	}()

	sheet := s.Detector
	if err := resetSheet(f, sheet); err != nil {
		return err
	}
	if fresh {
		// Drop the placeholder sheet excelize creates for new files.
		if def := f.GetSheetName(0); def != sheet {
			if err := f.DeleteSheet(def); err != nil {
				return fmt.Errorf("drop default sheet: %w", err)
			}
		}
	}

	next, err := writeTable(f, sheet, 1, []any{headerSequence, headerCount}, breakdownCells(s))
	if err != nil {
		return err
	}
	if _, err := writeTable(f, sheet, next+1, []any{headerPattern, headerWidth, headerCount}, patternCells(s)); err != nil {
		return err
	}

	if err := f.SaveAs(wb.path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func (wb *Workbook) open() (*excelize.File, bool, error) {
	if _, err := os.Stat(wb.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return excelize.NewFile(), true, nil
		}
		return nil, false, fmt.Errorf("stat workbook: %w", err)
	}
	f, err := excelize.OpenFile(wb.path)
	if err != nil {
		return nil, false, fmt.Errorf("open workbook: %w", err)
	}
	return f, false, nil
}

// resetSheet leaves an empty sheet called name in f.
func resetSheet(f *excelize.File, name string) error {
	idx, err := f.GetSheetIndex(name)
	if err != nil {
		return fmt.Errorf("lookup sheet %s: %w", name, err)
	}
	if idx == -1 {
		idx, err = f.NewSheet(name)
		if err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
		f.SetActiveSheet(idx)
		return nil
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return fmt.Errorf("read sheet %s: %w", name, err)
	}
	for r := len(rows); r >= 1; r-- {
		if err := f.RemoveRow(name, r); err != nil {
			return fmt.Errorf("clear sheet %s: %w", name, err)
		}
	}
	return nil
}

// writeTable writes headers and rows starting at row start and returns the
// next free row.
func writeTable(f *excelize.File, sheet string, start int, headers []any, rows [][]any) (int, error) {
	if err := setRow(f, sheet, start, headers); err != nil {
		return 0, err
	}
	for i, r := range rows {
		if err := setRow(f, sheet, start+1+i, r); err != nil {
			return 0, err
		}
	}
	return start + 1 + len(rows), nil
}

func setRow(f *excelize.File, sheet string, row int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
	}
	return nil
}

func breakdownCells(s breakdown.Summary) [][]any {
	rows := make([][]any, 0, len(s.Breakdowns))
	for _, r := range s.Breakdowns {
		rows = append(rows, []any{r.Sequence, r.Count})
	}
	return rows
}

func patternCells(s breakdown.Summary) [][]any {
	rows := make([][]any, 0, len(s.Patterns))
	for _, p := range s.Patterns {
		rows = append(rows, []any{patternLabel(p.Window), p.Width, p.Count})
	}
	return rows
}
