// Package csvio reads raw source tables and writes cleaned tables as CSV
// with an explicit character encoding. The dataset carries Brazilian
// Portuguese text in latin1; decoding through the declared charmap keeps
// mis-decoded byte sequences intact so the cleaning stage can repair them.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/ivan-zamurenko/Delivery-Food-Center-in-Brazil/internal/table"
)

// LoadError reports an unreadable source or an invalid encoding for the
// stream. Row-level problems are never a LoadError; they flow downstream
// as data-quality issues.
type LoadError struct {
	Table string
	Path  string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s from %s: %v", e.Table, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Encoding resolves a configured encoding name to a charmap. A nil result
// with nil error means the stream is read as UTF-8 without translation.
func Encoding(name string) (*charmap.Charmap, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "latin1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1, nil
	case "cp1252", "windows-1252":
		return charmap.Windows1252, nil
	case "utf-8", "utf8", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
}

// ReadTable loads one raw table. Every cell stays a string; short records
// simply leave their trailing columns absent from the row. Only an
// unreadable file or a malformed CSV stream fails the load.
func ReadTable(path, name string, enc *charmap.Charmap) (table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return table.Table{}, &LoadError{Table: name, Path: path, Err: err}
	}
	defer f.Close()

	var reader = csv.NewReader(transformReader(f, enc))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return table.Table{}, &LoadError{Table: name, Path: path, Err: err}
	}
	if len(records) == 0 {
		return table.Table{}, &LoadError{Table: name, Path: path, Err: fmt.Errorf("no header row")}
	}

	header := records[0]
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = cleanHeader(h)
	}

	rows := make([]table.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(table.Row, len(columns))
		for i, cell := range record {
			if i >= len(columns) {
				break
			}
			row[columns[i]] = cell
		}
		rows = append(rows, row)
	}

	return table.Table{Name: name, Columns: columns, Rows: rows}, nil
}

// WriteTable writes header+rows to path atomically: the data lands in a
// temp file in the same directory and is renamed into place, so a reader
// never observes a partially written table.
func WriteTable(path string, enc *charmap.Charmap, header []string, rows [][]string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	var out io.Writer = tmp
	var enctw *transform.Writer
	if enc != nil {
		enctw = transform.NewWriter(tmp, enc.NewEncoder())
		out = enctw
	}

	writer := csv.NewWriter(out)
	if err := writer.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("writing header to %s: %w", path, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		tmp.Close()
		return fmt.Errorf("writing rows to %s: %w", path, err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	if enctw != nil {
		if err := enctw.Close(); err != nil {
			tmp.Close()
			return fmt.Errorf("encoding %s: %w", path, err)
		}
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file for %s: %w", path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

func transformReader(f *os.File, enc *charmap.Charmap) io.Reader {
	if enc == nil {
		return f
	}
	return transform.NewReader(f, enc.NewDecoder())
}

// cleanHeader strips a UTF-8 BOM and surrounding whitespace from a header
// cell. Cell values themselves are left untouched at this stage.
func cleanHeader(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	return strings.TrimSpace(s)
}
