package core

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Column names recognised in the header row.
const (
	ColumnLinkID  = "linkId"
	ColumnText    = "text"
	ColumnType    = "type"
	ColumnOptions = "options"
)

// Row is one data line of a survey CSV with its cells trimmed.
// Cells missing from a short line are empty.
type Row struct {
	Line    int // 1-based line in the source file
	LinkID  string
	Text    string
	Type    string
	Options string
}

// NewRow builds a Row from header-keyed cells.
func NewRow(line int, cells map[string]string) Row {
	return Row{
		Line:    line,
		LinkID:  strings.TrimSpace(cells[ColumnLinkID]),
		Text:    strings.TrimSpace(cells[ColumnText]),
		Type:    strings.TrimSpace(cells[ColumnType]),
		Options: strings.TrimSpace(cells[ColumnOptions]),
	}
}

// Valid reports whether the row carries every required cell.
// Invalid rows are skipped by the mapper, never reported as errors.
func (r Row) Valid() bool {
	return r.LinkID != "" && r.Text != "" && r.Type != ""
}

// RowParser reads decoded survey text into rows.
type RowParser interface {
	Parse(r io.Reader) ([]Row, error)
}

// CSVRowParser reads comma-delimited text whose first line names the columns.
type CSVRowParser struct{}

// Parse reads every data line into a Row, in file order.
// An empty input yields no rows. Quoting errors are returned wrapped in
// ErrMalformedCSV with the offending line.
func (CSVRowParser) Parse(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // short and long lines are allowed

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrMalformedCSV, err)
	}

	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.TrimSpace(name)
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedCSV, err)
		}

		line, _ := reader.FieldPos(0)
		rows = append(rows, NewRow(line, recordCells(columns, record)))
	}

	return rows, nil
}

// recordCells keys a record by column name. Cells beyond the header are
// dropped; a repeated column name keeps its last cell.
func recordCells(columns, record []string) map[string]string {
	cells := make(map[string]string, len(columns))
	for i, name := range columns {
		if i >= len(record) {
			break
		}
		cells[name] = record[i]
	}
	return cells
}
