package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// CatalogEntry describes one registered solver and which of its input files exist.
type CatalogEntry struct {
	Day       int
	Name      string
	Input     bool
	TestPart1 bool
	TestPart2 bool
}

// Catalog renders the solvers registered for a year. Declared names whose day
// could not be parsed are listed under the table.
func Catalog(year int, entries []CatalogEntry, unresolved []string) string {
	var b strings.Builder
	b.WriteString(bannerStyle.Render(fmt.Sprintf("Advent of Code %d - Registered Solvers", year)))
	b.WriteString("\n")

	if len(entries) == 0 {
		b.WriteString(warningStyle.Render(fmt.Sprintf("No solutions found for year %d", year)))
		b.WriteString("\n")
	} else {
		rows := make([][]string, 0, len(entries))
		for _, entry := range entries {
			rows = append(rows, []string{
				fmt.Sprintf("%02d", entry.Day),
				entry.Name,
				presence(entry.Input),
				presence(entry.TestPart1),
				presence(entry.TestPart2),
			})
		}
		grid := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(borderStyle).
			Headers("DAY", "SOLVER", "INPUT", "TEST 1", "TEST 2").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return headerStyle
				case row < 0 || row >= len(rows) || col < 2:
					return cellStyle
				case rows[row][col] == iconFailed:
					return failureStyle
				default:
					return resultStyle
				}
			})
		b.WriteString(grid.Render())
		b.WriteString("\n")
	}

	for _, name := range unresolved {
		b.WriteString(warningStyle.Render(fmt.Sprintf("%s: no day could be read from the name; it will never run", name)))
		b.WriteString("\n")
	}
	return b.String()
}

// Scaffold renders the paths touched by a create command.
func Scaffold(created, skipped []string) string {
	var b strings.Builder
	for _, path := range created {
		b.WriteString(totalStyle.Render(iconDone + " created " + path))
		b.WriteString("\n")
	}
	for _, path := range skipped {
		b.WriteString(mutedStyle.Render("- exists  " + path))
		b.WriteString("\n")
	}
	if len(created) == 0 && len(skipped) == 0 {
		b.WriteString(mutedStyle.Render("nothing to do"))
		b.WriteString("\n")
	}
	return b.String()
}

func presence(ok bool) string {
	if ok {
		return iconDone
	}
	return iconFailed
}
