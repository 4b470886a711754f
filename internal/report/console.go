package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/MikeSquared-Agency/breakdowns/internal/breakdown"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// Console prints summaries as bordered tables.
type Console struct {
	w io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Write(s breakdown.Summary) error {
	if _, err := fmt.Fprintf(c.w, "\nBreakdown Summary\n\n"); err != nil {
		return err
	}
	if err := c.table([]string{headerPattern, headerWidth, headerCount}, patternRows(s)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(c.w, "Detailed Breakdown Detection for %s\n\n", s.Detector); err != nil {
		return err
	}
	return c.table([]string{headerSequence, headerCount}, breakdownRows(s))
}

func (c *Console) table(headers []string, rows [][]string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(c.w, "(no rows)")
		return err
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
	_, err := fmt.Fprintln(c.w, t.String())
	return err
}
