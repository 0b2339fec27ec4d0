package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jacksmith/storectl/internal/model"
	"golang.org/x/term"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// colorEnabled tracks whether color output is enabled.
// It is set based on terminal detection but can be overridden.
var colorEnabled = true

func init() {
	colorEnabled = IsTerminal(os.Stdout)
}

// SetColorEnabled allows overriding the color output setting.
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

// ColorEnabled returns whether color output is currently enabled.
func ColorEnabled() bool {
	return colorEnabled
}

// IsTerminal returns true if w is a terminal.
func IsTerminal(w any) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

func paint(code, s string) string {
	if !colorEnabled {
		return s
	}
	return code + s + colorReset
}

// Green returns s wrapped in green ANSI codes if colors are enabled.
func Green(s string) string { return paint(colorGreen, s) }

// Red returns s wrapped in red ANSI codes if colors are enabled.
func Red(s string) string { return paint(colorRed, s) }

// Yellow returns s wrapped in yellow ANSI codes if colors are enabled.
func Yellow(s string) string { return paint(colorYellow, s) }

// Gray returns s wrapped in gray ANSI codes if colors are enabled.
func Gray(s string) string { return paint(colorGray, s) }

// Success writes a green message line.
func Success(w io.Writer, msg string) {
	fmt.Fprintln(w, Green(msg))
}

// Failure writes a red message line.
func Failure(w io.Writer, msg string) {
	fmt.Fprintln(w, Red(msg))
}

// Table formats columnar output with automatic column width calculation.
type Table struct {
	rows      [][]string
	colWidths []int
	indent    string
}

// NewTable creates a new empty table.
func NewTable() *Table {
	return &Table{}
}

// SetIndent prefixes every rendered row with indent.
func (t *Table) SetIndent(indent string) {
	t.indent = indent
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cols ...string) {
	for len(t.colWidths) < len(cols) {
		t.colWidths = append(t.colWidths, 0)
	}
	for i, col := range cols {
		if w := visibleWidth(col); w > t.colWidths[i] {
			t.colWidths[i] = w
		}
	}
	t.rows = append(t.rows, cols)
}

// Render writes the table to w with columns separated by two spaces.
func (t *Table) Render(w io.Writer) {
	for _, row := range t.rows {
		parts := make([]string, len(row))
		for i, col := range row {
			if i < len(t.colWidths)-1 && i < len(row)-1 {
				col += strings.Repeat(" ", t.colWidths[i]-visibleWidth(col))
			}
			parts[i] = col
		}
		fmt.Fprintln(w, t.indent+strings.Join(parts, "  "))
	}
}

// StoreTable returns a key/value table of a store's fields.
func StoreTable(s model.Store) *Table {
	t := NewTable()
	t.AddRow("ID:", s.ID)
	t.AddRow("Store Name:", s.StoreName)
	t.AddRow("Address:", s.Address)
	t.AddRow("Manager:", s.ManagerName)
	return t
}

// DraftTable returns a key/value table of the editable fields, with empty
// values shown as a gray dash.
func DraftTable(d model.Draft) *Table {
	t := NewTable()
	for _, f := range model.Fields() {
		v := d.Get(f)
		if v == "" {
			v = Gray("-")
		}
		t.AddRow(f.Label()+":", v)
	}
	return t
}

// visibleWidth returns the visible width of s, excluding ANSI escape codes.
func visibleWidth(s string) int {
	width := 0
	inEscape := false

	for _, r := range s {
		if r == '\033' {
			inEscape = true
			continue
		}
		if inEscape {
			if r == 'm' {
				inEscape = false
			}
			continue
		}
		width++
	}

	return width
}
