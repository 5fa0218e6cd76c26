// Package export renders confirmed comments to downloadable files.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"commentgen/internal/logging"
	"commentgen/internal/roster"
)

// csvHeader is the fixed column set of the comment export.
var csvHeader = []string{"학번", "이름", "종합의견", "글자수"}

// CSVFilename returns the conventional export name for the given date,
// e.g. 종합의견_20260830.csv.
func CSVFilename(now time.Time) string {
	return fmt.Sprintf("종합의견_%s.csv", now.Format("20060102"))
}

// WriteCSV writes one row per student with a confirmed comment, in roster
// order, with the comment's character count (spaces included). Students
// without a final are skipped. The output starts with a UTF-8 BOM so
// spreadsheet tools detect the encoding.
func WriteCSV(w io.Writer, students []roster.Student, finals map[string]string) error {
	var b strings.Builder
	b.WriteString("\uFEFF")
	b.WriteString(strings.Join(csvHeader, ","))
	b.WriteString("\n")

	rows := 0
	for _, st := range students {
		comment := finals[st.ID]
		if strings.TrimSpace(comment) == "" {
			continue
		}
		rows++
		b.WriteString(fmt.Sprintf("%s,%s,%s,%d\n",
			st.Field("학번"),
			st.Field("이름"),
			quoteField(comment),
			utf8.RuneCountInString(comment),
		))
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	logging.ExportDebug("csv export: %d rows of %d students", rows, len(students))
	return nil
}

// quoteField always wraps the comment in quotes so embedded commas and
// newlines survive, doubling any quotes inside.
func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
