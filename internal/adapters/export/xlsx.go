package export

import (
	"fmt"
	"io"

	"github.com/okian/cambios/internal/domain/model"
	"github.com/xuri/excelize/v2"
)

// WriteXLSX writes a workbook with the minute-ordered timeline and, when the analysis
// has been evaluated, the impact records.
func WriteXLSX(w io.Writer, a model.Analysis) error {
	f := excelize.NewFile()
	defer f.Close()

	first := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(first, SheetEvents); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeSheet(f, SheetEvents, eventHeader, eventRows(a)); err != nil {
		return err
	}

	if a.Report != nil {
		if _, err := f.NewSheet(SheetImpact); err != nil {
			return fmt.Errorf("create sheet %q: %w", SheetImpact, err)
		}
		if err := writeSheet(f, SheetImpact, impactHeader, impactRows(*a.Report)); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]string) error {
	all := append([][]string{header}, rows...)
	for idx, row := range all {
		axis, err := excelize.CoordinatesToCellName(1, idx+1)
		if err != nil {
			return err
		}
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}
		if err := f.SetSheetRow(sheet, axis, &cells); err != nil {
			return fmt.Errorf("sheet %q row %d: %w", sheet, idx+1, err)
		}
	}
	return nil
}
