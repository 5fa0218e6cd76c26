package export

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"commentgen/internal/logging"
	"commentgen/internal/roster"
)

const xlsxSheet = "종합의견"

// XLSXFilename returns the conventional export name for the given date,
// e.g. 종합의견_20260830.xlsx.
func XLSXFilename(now time.Time) string {
	return fmt.Sprintf("종합의견_%s.xlsx", now.Format("20060102"))
}

// WriteXLSX writes the same rows as WriteCSV into a single-sheet workbook.
// Column widths are sized for the long comment column.
func WriteXLSX(w io.Writer, students []roster.Student, finals map[string]string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	if err := f.SetSheetRow(xlsxSheet, "A1", &csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	line := 2
	for _, st := range students {
		comment := finals[st.ID]
		if strings.TrimSpace(comment) == "" {
			continue
		}
		row := []any{
			st.Field("학번"),
			st.Field("이름"),
			comment,
			utf8.RuneCountInString(comment),
		}
		cell := fmt.Sprintf("A%d", line)
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", line, err)
		}
		line++
	}

	if err := f.SetColWidth(xlsxSheet, "A", "B", 12); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(xlsxSheet, "C", "C", 80); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(xlsxSheet, "D", "D", 8); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	logging.ExportDebug("xlsx export: %d rows of %d students", line-2, len(students))
	return nil
}
