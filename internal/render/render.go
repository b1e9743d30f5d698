// Package render turns a finished run report into terminal tables or
// machine-readable documents.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/aoc-runner/aoc/internal/report"
)

// Format selects the report encoding.
type Format string

const (
	// FormatTable renders a styled terminal table.
	FormatTable Format = "table"
	// FormatJSON renders an indented JSON document.
	FormatJSON Format = "json"
	// FormatYAML renders a YAML document.
	FormatYAML Format = "yaml"
)

// ParseFormat validates a user supplied format name.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want table, json or yaml)", value)
	}
}

// Document is the machine-readable shape of a report.
type Document struct {
	Mode    string        `json:"mode" yaml:"mode"`
	Year    int           `json:"year" yaml:"year"`
	Day     int           `json:"day,omitempty" yaml:"day,omitempty"`
	Rows    []DocumentRow `json:"rows" yaml:"rows"`
	TotalMs float64       `json:"total_ms" yaml:"total_ms"`
}

// DocumentRow is one part outcome. ElapsedMs is absent for failures.
type DocumentRow struct {
	Year      int      `json:"year" yaml:"year"`
	Day       int      `json:"day" yaml:"day"`
	Part      int      `json:"part" yaml:"part"`
	Status    string   `json:"status" yaml:"status"`
	Result    string   `json:"result,omitempty" yaml:"result,omitempty"`
	Reason    string   `json:"reason,omitempty" yaml:"reason,omitempty"`
	ElapsedMs *float64 `json:"elapsed_ms,omitempty" yaml:"elapsed_ms,omitempty"`
}

// NewDocument converts a report into its document form.
func NewDocument(r report.Report) Document {
	doc := Document{
		Mode:    string(r.Mode),
		Year:    r.Year,
		Day:     r.Day,
		Rows:    make([]DocumentRow, 0, len(r.Rows)),
		TotalMs: r.TotalMs(),
	}
	for _, row := range r.Rows {
		status := "ok"
		if !row.OK {
			status = "failed"
		}
		doc.Rows = append(doc.Rows, DocumentRow{
			Year:      row.Year,
			Day:       row.Day,
			Part:      row.Part,
			Status:    status,
			Result:    row.Result,
			Reason:    row.Reason,
			ElapsedMs: row.ElapsedMs(),
		})
	}
	return doc
}

// Render writes r to w in the requested format.
func Render(w io.Writer, r report.Report, format Format) error {
	if w == nil {
		return fmt.Errorf("render: writer is nil")
	}
	switch format {
	case FormatTable, "":
		_, err := io.WriteString(w, Table(r))
		return err
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(NewDocument(r)); err != nil {
			return fmt.Errorf("encode json report: %w", err)
		}
		return nil
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(NewDocument(r)); err != nil {
			return fmt.Errorf("encode yaml report: %w", err)
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// Table renders the report as a banner, a table of part outcomes and a total.
func Table(r report.Report) string {
	var b strings.Builder
	b.WriteString(bannerStyle.Render(Banner(r)))
	b.WriteString("\n")

	if len(r.Rows) == 0 {
		b.WriteString(warningStyle.Render(emptyMessage(r)))
		b.WriteString("\n")
		return b.String()
	}

	rows := make([][]string, 0, len(r.Rows))
	for _, group := range r.Groups() {
		for i, row := range group.Rows {
			day := ""
			if i == 0 {
				day = fmt.Sprintf("%02d", row.Day)
			}
			rows = append(rows, []string{day, strconv.Itoa(row.Part), answer(row), elapsed(row)})
		}
	}

	grid := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("DAY", "PART", "ANSWER", "TIME").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row < 0 || row >= len(rows):
				return cellStyle
			case col == 2 && strings.HasPrefix(rows[row][2], iconFailed):
				return failureStyle
			case col == 2:
				return resultStyle
			case col == 3:
				return mutedStyle
			default:
				return cellStyle
			}
		})

	b.WriteString(grid.Render())
	b.WriteString("\n")
	b.WriteString(totalStyle.Render(Summary(r)))
	b.WriteString("\n")
	return b.String()
}

// Banner is the heading line for a report.
func Banner(r report.Report) string {
	if r.Mode == report.ModeSingle {
		return fmt.Sprintf("Advent of Code %d - Day %02d", r.Year, r.Day)
	}
	return fmt.Sprintf("Advent of Code %d - All Days", r.Year)
}

// Summary is the total line printed under the table.
func Summary(r report.Report) string {
	line := fmt.Sprintf("%s Total: %s", iconDone, formatMs(r.TotalMs()))
	if failures := r.Failures(); failures > 0 {
		line += fmt.Sprintf("  (%d failed)", failures)
	}
	return line
}

// Error renders a top-level failure for stderr.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return errorStyle.Render(fmt.Sprintf("%s Error: %v", iconFailed, err))
}

func emptyMessage(r report.Report) string {
	if r.Mode == report.ModeSingle {
		return fmt.Sprintf("No parts were run for year %d, day %02d", r.Year, r.Day)
	}
	return fmt.Sprintf("No solutions found for year %d", r.Year)
}

func answer(row report.Row) string {
	if !row.OK {
		return iconFailed + " " + row.Reason
	}
	return row.Result
}

func elapsed(row report.Row) string {
	ms := row.ElapsedMs()
	if ms == nil {
		return "-"
	}
	return formatMs(*ms)
}

func formatMs(ms float64) string {
	return strconv.FormatFloat(ms, 'f', 3, 64) + " ms"
}
