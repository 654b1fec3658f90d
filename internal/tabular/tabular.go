// Package tabular reads the header-addressed CSV tables netdraw consumes:
// vertex and edge tables, flow tables, and demand tables.
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/netdraw/pkg/errors"
)

// Table is a CSV source whose fields are addressed by header name.
type Table struct {
	name   string
	r      *csv.Reader
	closer io.Closer
	header map[string]int
	row    []string
}

// Option configures a Table.
type Option func(*csv.Reader)

// WithComments skips lines starting with c.
func WithComments(c rune) Option {
	return func(r *csv.Reader) { r.Comment = c }
}

// Open opens the table at path and reads its header.
func Open(path string, opts ...Option) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found -- '%s'", path)
	}
	t, err := newTable(filepath.Base(path), f, opts)
	if err != nil {
		f.Close()
		return nil, err
	}
	t.closer = f
	return t, nil
}

// New reads a table from r. name is used in error messages.
func New(name string, r io.Reader, opts ...Option) (*Table, error) {
	return newTable(name, r, opts)
}

func newTable(name string, src io.Reader, opts []Option) (*Table, error) {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.ReuseRecord = true
	for _, opt := range opts {
		opt(r)
	}
	hdr, err := r.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeMalformedHeader, "%s: missing header", name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedHeader, err, "%s: read header", name)
	}
	header := make(map[string]int, len(hdr))
	for i, k := range hdr {
		header[strings.TrimSpace(k)] = i
	}
	return &Table{name: name, r: r, header: header}, nil
}

// Require fails with MALFORMED_HEADER unless every column is present.
func (t *Table) Require(columns ...string) error {
	for _, c := range columns {
		if _, ok := t.header[c]; !ok {
			return errors.New(errors.ErrCodeMalformedHeader, "%s: missing column %q", t.name, c)
		}
	}
	return nil
}

// Next advances to the next row and reports false at the end of the table.
func (t *Table) Next() (bool, error) {
	row, err := t.r.Read()
	if err == io.EOF {
		t.row = nil
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", t.name)
	}
	t.row = row
	return true, nil
}

// Line returns the input line of the current row, or 0 past the end.
func (t *Table) Line() int {
	if len(t.row) == 0 {
		return 0
	}
	line, _ := t.r.FieldPos(0)
	return line
}

// Field returns the trimmed value of column in the current row, or "" if the
// row is too short.
func (t *Table) Field(column string) string {
	i, ok := t.header[column]
	if !ok || i >= len(t.row) {
		return ""
	}
	return strings.TrimSpace(t.row[i])
}

// Int parses column as an integer.
func (t *Table) Int(column string) (int, error) {
	s := t.Field(column)
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, t.malformed(column, s, err)
	}
	return v, nil
}

// Float parses column as a finite floating point number.
func (t *Table) Float(column string) (float64, error) {
	s := t.Field(column)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, t.malformed(column, s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, t.malformed(column, s, fmt.Errorf("%v is not finite", v))
	}
	return v, nil
}

func (t *Table) malformed(column, value string, cause error) error {
	return errors.Wrap(errors.ErrCodeMalformedNumber, cause,
		"%s:%d: column %s: malformed number %q", t.name, t.Line(), column, value)
}

// Errorf returns an error with code located at the current row.
func (t *Table) Errorf(code errors.Code, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if line := t.Line(); line > 0 {
		return errors.New(code, "%s:%d: %s", t.name, line, msg)
	}
	return errors.New(code, "%s: %s", t.name, msg)
}

// Close releases the underlying file, if any. It is safe to call on nil.
func (t *Table) Close() error {
	if t == nil || t.closer == nil {
		return nil
	}
	err := t.closer.Close()
	t.closer = nil
	return err
}
