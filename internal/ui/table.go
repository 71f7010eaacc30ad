// Package ui renders query results and status lines for the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderTable renders rows in a mysql-client style grid. Columns may be nil
// when the statement produced no metadata; rows are sized to the widest cell
// per column. Returns the empty string for zero columns and zero rows.
func RenderTable(columns []string, rows [][]string) string {
	width := len(columns)
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	if width == 0 {
		return ""
	}

	colWidths := make([]int, width)
	for i, col := range columns {
		colWidths[i] = lipgloss.Width(col)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > colWidths[i] {
				colWidths[i] = w
			}
		}
	}

	var b strings.Builder
	separator := renderSeparator(colWidths)

	b.WriteString(separator)
	b.WriteString("\n")
	if len(columns) > 0 {
		b.WriteString(renderRow(columns, colWidths, HeaderStyle))
		b.WriteString("\n")
		b.WriteString(separator)
		b.WriteString("\n")
	}
	for _, row := range rows {
		b.WriteString(renderRow(row, colWidths, CellStyle))
		b.WriteString("\n")
	}
	b.WriteString(separator)

	return b.String()
}

func renderSeparator(colWidths []int) string {
	parts := make([]string, len(colWidths))
	for i, w := range colWidths {
		parts[i] = strings.Repeat("-", w+2)
	}
	return BorderStyle.Render("+" + strings.Join(parts, "+") + "+")
}

func renderRow(cells []string, colWidths []int, style lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(BorderStyle.Render("|"))
	for i, w := range colWidths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		padding := strings.Repeat(" ", w-lipgloss.Width(cell))
		b.WriteString(" " + style.Render(cell) + padding + " ")
		b.WriteString(BorderStyle.Render("|"))
	}
	return b.String()
}

// RenderRowCount renders the trailing summary line below a result table.
func RenderRowCount(n int) string {
	if n == 1 {
		return MutedStyle.Render("1 row in set")
	}
	return MutedStyle.Render(fmt.Sprintf("%d rows in set", n))
}

// RenderSuccess renders a green check line.
func RenderSuccess(msg string) string {
	return SuccessStyle.Render(SymbolCheck + " " + msg)
}

// RenderError renders a red cross line.
func RenderError(msg string) string {
	return ErrorStyle.Render(SymbolCross + " " + msg)
}
