package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TableStyle defines the style for table output.
type TableStyle struct {
	// Border is drawn around and between cells.
	Border lipgloss.Border

	// BorderColor is the foreground of the border runes.
	BorderColor lipgloss.Color

	// HeaderStyle applies to the column headings.
	HeaderStyle lipgloss.Style

	// CellStyle applies to every data cell.
	CellStyle lipgloss.Style
}

// DefaultTableStyle returns the style used on terminals.
func DefaultTableStyle() TableStyle {
	return TableStyle{
		Border:      lipgloss.NormalBorder(),
		BorderColor: ColorDimGray,
		HeaderStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		CellStyle:   lipgloss.NewStyle(),
	}
}

// PlainTableStyle returns an uncoloured style for pipes and files.
func PlainTableStyle() TableStyle {
	return TableStyle{
		Border:      lipgloss.NormalBorder(),
		HeaderStyle: lipgloss.NewStyle(),
		CellStyle:   lipgloss.NewStyle(),
	}
}

// Table collects rows of schema fields for display.
type Table struct {
	headers []string
	rows    [][]string
	style   TableStyle
	// widths caps columns by index; cells wider than the cap wrap.
	widths map[int]int
}

// NewTable creates a new table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{
		headers: headers,
		style:   DefaultTableStyle(),
		widths:  make(map[int]int),
	}
}

// Row adds a row to the table.
func (t *Table) Row(cells ...string) *Table {
	t.rows = append(t.rows, cells)
	return t
}

// Wrap limits column col to width cells; longer text such as field
// descriptions wraps onto further lines.
func (t *Table) Wrap(col, width int) *Table {
	if width > 0 {
		t.widths[col] = width
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render renders the table for w, dropping colour when w is not a terminal.
func (t *Table) Render(w io.Writer) string {
	style := t.style
	if !IsTerminal(w) {
		style = PlainTableStyle()
	}
	return t.render(style)
}

// String renders the table with its terminal style.
func (t *Table) String() string {
	return t.render(t.style)
}

func (t *Table) render(style TableStyle) string {
	tbl := table.New().
		Border(style.Border).
		BorderStyle(lipgloss.NewStyle().Foreground(style.BorderColor)).
		Headers(t.headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := style.CellStyle
			if row == table.HeaderRow {
				s = style.HeaderStyle
			}
			if width, ok := t.widths[col]; ok {
				s = s.Width(width)
			}
			return s
		})

	for _, row := range t.rows {
		tbl.Row(row...)
	}

	return tbl.String()
}
