package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMissingInputField is returned when a required column is absent from a table.
var ErrMissingInputField = errors.New("missing input field")

// Options controls the delimited format.
type Options struct {
	// Comma is the field separator. Zero means ','.
	Comma rune
}

func (o Options) comma() rune {
	if o.Comma == 0 {
		return ','
	}
	return o.Comma
}

// Table is a header row plus data rows. Every row has exactly len(Header) cells.
type Table struct {
	Header []string
	Rows   [][]string

	// Encoding is the detected source encoding of a table returned by Read.
	Encoding string

	index map[string]int
}

// New creates an empty table with the given header.
func New(header ...string) *Table {
	t := &Table{Header: append([]string(nil), header...)}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Header))
	for i, h := range t.Header {
		// first occurrence wins for duplicate headers
		if _, ok := t.index[h]; !ok {
			t.index[h] = i
		}
	}
}

// Read parses a delimited table. The first record is the header.
func Read(r io.Reader, opts Options) (*Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read table: %w", err)
	}

	data, encoding, err := Decode(raw)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = opts.comma()
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty table: no header row found")
		}
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	t := New(header...)
	t.Encoding = encoding

	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", line, err)
		}
		if isBlank(record) {
			continue
		}
		t.Rows = append(t.Rows, t.fit(record))
	}

	return t, nil
}

// fit pads or truncates a record to the header width.
func (t *Table) fit(record []string) []string {
	if len(record) == len(t.Header) {
		return record
	}
	row := make([]string, len(t.Header))
	copy(row, record)
	return row
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Has reports whether the table has a column named col.
func (t *Table) Has(col string) bool {
	_, ok := t.index[col]
	return ok
}

// Require checks that all columns are present.
func (t *Table) Require(cols ...string) error {
	for _, c := range cols {
		if !t.Has(c) {
			return fmt.Errorf("%w: %q", ErrMissingInputField, c)
		}
	}
	return nil
}

// Value returns the trimmed cell of row i in column col, or "" if the column is absent.
func (t *Table) Value(i int, col string) string {
	idx, ok := t.index[col]
	if !ok || i < 0 || i >= len(t.Rows) {
		return ""
	}
	return strings.TrimSpace(t.Rows[i][idx])
}

// AddColumn appends a column with empty cells. Existing columns are left untouched.
func (t *Table) AddColumn(col string) {
	if t.Has(col) {
		return
	}
	t.Header = append(t.Header, col)
	t.index[col] = len(t.Header) - 1
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], "")
	}
}

// AppendRow adds a row from a column→value map. Unknown columns are ignored.
func (t *Table) AppendRow(values map[string]string) {
	row := make([]string, len(t.Header))
	for col, v := range values {
		if idx, ok := t.index[col]; ok {
			row[idx] = v
		}
	}
	t.Rows = append(t.Rows, row)
}

// RowMap returns row i keyed by header name.
func (t *Table) RowMap(i int) map[string]string {
	out := make(map[string]string, len(t.Header))
	for col, idx := range t.index {
		out[col] = t.Rows[i][idx]
	}
	return out
}

// Write encodes the table with a header row.
func (t *Table) Write(w io.Writer, opts Options) error {
	return Write(w, t.Header, t.Rows, opts)
}

// Write encodes header and rows as a delimited table.
func Write(w io.Writer, header []string, rows [][]string, opts Options) error {
	cw := csv.NewWriter(w)
	cw.Comma = opts.comma()

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	return nil
}
