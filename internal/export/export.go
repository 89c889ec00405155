// Package export renders tabular reports as PDF and Excel files.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Format is a report file format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts "pdf", "xlsx" and "excel".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pdf":
		return FormatPDF, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// ContentType is the MIME type served for the format.
func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Formatter renders timestamps the way the reports show them:
// es-ES day/month/year with a 12-hour clock in a fixed zone.
type Formatter struct {
	loc *time.Location
}

// NewFormatter loads the named zone, e.g. "America/Guatemala".
func NewFormatter(zone string) (*Formatter, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", zone, err)
	}
	return &Formatter{loc: loc}, nil
}

// Location is the zone timestamps are rendered in.
func (f *Formatter) Location() *time.Location {
	if f == nil {
		return time.UTC
	}
	return f.loc
}

// Time formats t as "5/10/2024, 8:30:00 a. m.".
func (f *Formatter) Time(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	t = t.In(f.Location())
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	suffix := "a. m."
	if t.Hour() >= 12 {
		suffix = "p. m."
	}
	return fmt.Sprintf("%d/%d/%d, %d:%02d:%02d %s",
		t.Day(), int(t.Month()), t.Year(), hour, t.Minute(), t.Second(), suffix)
}

// Table is a report ready to be written in any format.
type Table struct {
	Title       string
	Sheet       string
	FileBase    string
	GeneratedAt string
	Headers     []string
	Rows        [][]string
}

// FileName is the download name of the table in format f.
func (t Table) FileName(f Format) string {
	return t.FileBase + "." + string(f)
}

// Column maps a record to one cell.
type Column[T any] struct {
	Header string
	Value  func(T) string
}

// Build fills a table's headers and rows from records.
func Build[T any](t Table, columns []Column[T], records []T) Table {
	t.Headers = make([]string, len(columns))
	for i, c := range columns {
		t.Headers[i] = c.Header
	}
	t.Rows = make([][]string, 0, len(records))
	for _, r := range records {
		row := make([]string, len(columns))
		for i, c := range columns {
			row[i] = c.Value(r)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Write renders t in format f.
func Write(w io.Writer, f Format, t Table) error {
	switch f {
	case FormatPDF:
		return WritePDF(w, t)
	case FormatXLSX:
		return WriteExcel(w, t)
	}
	return fmt.Errorf("unknown export format %q", f)
}
