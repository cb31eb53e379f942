package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table is an in-memory tabular export: a header row plus data rows.
// Rows may be ragged; cell access through Get tolerates short rows and
// missing columns so that absent fields degrade to empty values.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Index returns the position of the named column, or -1 when absent.
func (t *Table) Index(col string) int {
	for i, h := range t.Headers {
		if strings.TrimSpace(h) == col {
			return i
		}
	}
	return -1
}

// Get returns the trimmed cell value of the named column in the given
// row, or "" when the column is absent or the row is short.
func (t *Table) Get(row []string, col string) string {
	idx := t.Index(col)
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// ReadCSV reads a CSV export into a Table. A UTF-8 BOM is stripped and
// ragged records are tolerated; the first record becomes the header.
func ReadCSV(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	data = stripBOM(data)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV file: %w", err)
	}
	if len(records) == 0 {
		return &Table{}, nil
	}

	return &Table{Headers: records[0], Rows: records[1:]}, nil
}

// ReadLines reads a text export as raw lines with the UTF-8 BOM
// stripped and trailing newlines removed. Used for the free-form sales
// report layouts that are not regular CSV tables.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	data = stripBOM(data)

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

// FromLines converts raw report lines into a Table by splitting on
// commas. The first line becomes the header. Cells are not unquoted, so
// the table round-trips back to text without reshaping the report.
func FromLines(lines []string) *Table {
	if len(lines) == 0 {
		return &Table{}
	}
	t := &Table{Headers: strings.Split(lines[0], ",")}
	for _, line := range lines[1:] {
		t.Rows = append(t.Rows, strings.Split(line, ","))
	}
	return t
}

// Lines renders the table back into raw report lines by joining cells
// with commas, the inverse of FromLines. Because FromLines never
// unquotes cells, a table built from it reproduces the source lines
// exactly.
func (t *Table) Lines() []string {
	if len(t.Headers) == 0 && len(t.Rows) == 0 {
		return nil
	}
	lines := make([]string, 0, len(t.Rows)+1)
	lines = append(lines, strings.Join(t.Headers, ","))
	for _, row := range t.Rows {
		lines = append(lines, strings.Join(row, ","))
	}
	return lines
}

// ReadXLSX reads the first sheet of an Excel workbook into a Table.
func ReadXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Table{}, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return &Table{}, nil
	}

	return &Table{Headers: rows[0], Rows: rows[1:]}, nil
}

func stripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
}
