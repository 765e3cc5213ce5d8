// Package tabular reads and writes delimited text tables (CSV with a configurable
// separator) as used by the forms export, the registry export and the generated outputs.
//
// Read is lenient about the input: a byte order mark is stripped, UTF-16 input with a BOM
// and non-UTF-8 input (Windows-1252, as produced by spreadsheet exports on Windows) are
// decoded to UTF-8, header names are trimmed and short rows are padded to the header width.
//
// Columns are addressed by header name. Require reports the first missing column wrapped
// in ErrMissingInputField so callers can abort before producing any output.
package tabular
