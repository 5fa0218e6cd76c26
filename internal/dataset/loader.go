// Package dataset loads survey response files (CSV or XLSX) into ordered
// flat records and classifies their columns into identity and criterion
// fields.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"

	"commentgen/internal/logging"
)

// Row represents a single data row with column name to value mapping.
// All values are strings; spreadsheet cells are coerced to their displayed
// form.
type Row map[string]string

// Sentinel errors for import failures.
var (
	ErrEmptyData            = errors.New("file contains no data rows")
	ErrUnsupportedExtension = errors.New("unsupported file extension")
)

// Encoding selects the source text encoding for CSV imports. Legacy exports
// from Korean spreadsheet tools are often EUC-KR rather than UTF-8.
type Encoding string

const (
	EncodingUTF8  Encoding = "utf-8"
	EncodingEUCKR Encoding = "euc-kr"
)

// Load reads a CSV or XLSX file and returns its rows plus the column schema.
// The first row (CSV) or the first sheet's first row (XLSX) defines column
// names.
func Load(path string, enc Encoding) ([]Row, *Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return LoadReader(f, filepath.Ext(path), enc)
}

// LoadReader reads tabular data from r, dispatching on the file extension.
func LoadReader(r io.Reader, ext string, enc Encoding) ([]Row, *Schema, error) {
	switch strings.ToLower(ext) {
	case ".csv":
		return loadCSV(r, enc)
	case ".xlsx", ".xls":
		return loadXLSX(r)
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedExtension, ext)
	}
}

func loadCSV(r io.Reader, enc Encoding) ([]Row, *Schema, error) {
	if enc == EncodingEUCKR {
		r = transform.NewReader(r, korean.EUCKR.NewDecoder())
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // survey exports have ragged rows
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, ErrEmptyData
	}

	headers := records[0]
	// A UTF-8 BOM on the first header survives encoding/csv; strip it.
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\uFEFF")
	}

	rows := tabulate(headers, records[1:])
	if len(rows) == 0 {
		return nil, nil, ErrEmptyData
	}

	schema := classify(headers)
	logging.DatasetDebug("csv loaded: rows=%d identity=%d criteria=%d",
		len(rows), len(schema.Identity), len(schema.Criteria))
	return rows, schema, nil
}

func loadXLSX(r io.Reader) ([]Row, *Schema, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, ErrEmptyData
	}

	// First sheet only; GetRows returns displayed cell values as strings.
	records, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, nil, ErrEmptyData
	}

	headers := records[0]
	rows := tabulate(headers, records[1:])
	if len(rows) == 0 {
		return nil, nil, ErrEmptyData
	}

	schema := classify(headers)
	logging.DatasetDebug("xlsx loaded: sheet=%s rows=%d identity=%d criteria=%d",
		sheets[0], len(rows), len(schema.Identity), len(schema.Criteria))
	return rows, schema, nil
}

// tabulate maps raw records onto the header, skipping blank lines and
// padding short rows (trailing empty cells are dropped by both csv ragged
// mode and excelize).
func tabulate(headers []string, records [][]string) []Row {
	rows := make([]Row, 0, len(records))
	for _, record := range records {
		blank := true
		for _, v := range record {
			if strings.TrimSpace(v) != "" {
				blank = false
				break
			}
		}
		if blank {
			continue
		}

		row := make(Row, len(headers))
		for j, h := range headers {
			if j < len(record) {
				row[h] = record[j]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}
