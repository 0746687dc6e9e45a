package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/yndnr/respkv/pkg/resp"
)

// TableFormatter formats aggregate replies as a two-column table. Other
// replies are written in the plain format.
type TableFormatter struct {
	NoHeaders bool
}

// Format formats f as a table.
func (t *TableFormatter) Format(w io.Writer, f resp.Frame) error {
	table, ok := toTable(f)
	if !ok {
		return (&PlainFormatter{}).Format(w, f)
	}
	return table.RenderWithOptions(w, t.NoHeaders)
}

func toTable(f resp.Frame) (*Table, bool) {
	if f.IsNull() || f.Len() == 0 {
		return nil, false
	}
	t := &Table{}
	switch f.Kind() {
	case resp.KindMap:
		t.SetHeaders("KEY", "VALUE")
		for _, p := range f.Pairs() {
			t.AddRow(cell(p.Key), cell(p.Value))
		}
	case resp.KindArray, resp.KindSet:
		t.SetHeaders("#", "VALUE")
		for i, e := range f.Elems() {
			t.AddRow(fmt.Sprint(i+1), cell(e))
		}
	default:
		return nil, false
	}
	return t, true
}

// cell renders f on a single line.
func cell(f resp.Frame) string {
	switch f.Kind() {
	case resp.KindSimpleString, resp.KindBulkString:
		if !f.IsNull() {
			return strings.NewReplacer("\t", `\t`, "\n", `\n`, "\r", `\r`).Replace(f.Text())
		}
	case resp.KindArray, resp.KindSet, resp.KindMap:
		return f.String()
	}
	return scalar(f)
}

// Table is a simple column-aligned table.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Render writes the table with headers.
func (t *Table) Render(w io.Writer) error {
	return t.RenderWithOptions(w, false)
}

// RenderWithOptions writes the table, optionally without the header row.
func (t *Table) RenderWithOptions(w io.Writer, noHeaders bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if !noHeaders && len(t.Headers) > 0 {
		fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	}
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// SetHeaders sets the table headers.
func (t *Table) SetHeaders(headers ...string) {
	t.Headers = headers
}
