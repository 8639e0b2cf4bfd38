package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/san-kum/labcalc/internal/physnum"
)

// Row is one named quantity in a results table.
type Row struct {
	Name   string
	Op     string
	Number physnum.Number
}

// RenderTable lays rows out as name, op, value, uncertainty, unit and percentage
// columns. In latex and macro modes the value column holds the rendered
// expression and the uncertainty column is dropped.
func RenderTable(title string, rows []Row, mode physnum.FormatMode) string {
	return renderTable(CurrentTheme, title, rows, mode)
}

func renderTable(th Theme, title string, rows []Row, mode physnum.FormatMode) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(th.Border))

	if mode == physnum.FormatPlain {
		t.Headers("NAME", "OP", "VALUE", "UNCERTAINTY", "UNIT", "%")
		for _, r := range rows {
			n := r.Number
			t.Row(r.Name, r.Op, n.ValueString(false), n.UncertaintyString(false), n.Unit().Symbol, n.PercentageString())
		}
	} else {
		t.Headers("NAME", "OP", "EXPRESSION", "%")
		for _, r := range rows {
			t.Row(r.Name, r.Op, r.Number.Render(mode, true), r.Number.PercentageString())
		}
	}

	header, cell, muted := headerStyle(th), cellStyle(th), mutedStyle(th).Padding(0, 1)
	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return header
		case col == 1:
			return muted
		default:
			return cell
		}
	})

	if title == "" {
		return t.Render()
	}
	return titleStyle(th).Render(title) + "\n" + t.Render()
}
