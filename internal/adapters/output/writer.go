// Package output provides adapters for rendering the evolution report.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/akolsi/git-evolve/internal/domain"
)

// Format selects the rendering of the report.
type Format string

// Supported output formats.
const (
	// FormatVisual is the human-readable terminal report.
	FormatVisual Format = "visual"

	// FormatJSON serializes the report structure as indented JSON.
	FormatJSON Format = "json"

	// FormatQuiet prints only the evolution percentage.
	FormatQuiet Format = "quiet"
)

// Rendering dimensions.
const (
	ruleWidth        = 60
	statRuleWidth    = 40
	barWidth         = 50
	fileBarWidth     = 20
	maxFileNameWidth = 40
	breakdownRows    = 10
	shortHashLen     = 8
)

// Writer renders an EvolutionReport to its output destination.
// The whole report is assembled in memory and written in one call, so a
// failing destination never receives a partial report.
type Writer struct {
	out    io.Writer
	format Format

	title    *color.Color
	section  *color.Color
	evolved  *color.Color
	survived *color.Color
	errText  *color.Color
}

// NewWriter creates a Writer printing to stdout.
func NewWriter(format Format, colorize bool) *Writer {
	return NewWriterWithOutput(os.Stdout, format, colorize)
}

// NewWriterWithOutput creates a Writer with a custom output destination.
// This is useful for testing.
func NewWriterWithOutput(out io.Writer, format Format, colorize bool) *Writer {
	return &Writer{
		out:      out,
		format:   format,
		title:    newColor(colorize, color.Bold),
		section:  newColor(colorize, color.FgCyan),
		evolved:  newColor(colorize, color.FgYellow),
		survived: newColor(colorize, color.FgGreen),
		errText:  newColor(colorize, color.FgRed),
	}
}

// Write renders the report in the writer's configured format.
func (w *Writer) Write(report *domain.EvolutionReport) error {
	var buf bytes.Buffer

	switch w.format {
	case FormatJSON:
		if err := writeJSON(&buf, report); err != nil {
			return err
		}
	case FormatQuiet:
		fmt.Fprintf(&buf, "%s%%\n", formatPercent(report.EvolutionPercent))
	default:
		w.writeVisual(&buf, report)
	}

	_, err := w.out.Write(buf.Bytes())
	return err
}

func writeJSON(buf *bytes.Buffer, report *domain.EvolutionReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}
	buf.Write(data)
	buf.WriteByte('\n')
	return nil
}

func (w *Writer) writeVisual(buf *bytes.Buffer, r *domain.EvolutionReport) {
	rule := strings.Repeat("─", ruleWidth)

	fmt.Fprintf(buf, "\n%s\n  %s\n%s\n", rule, w.title.Sprintf("Git Evolve Report: %s", r.Repository), rule)
	fmt.Fprintf(buf, "  Base commit: %s\n\n", shortHash(r.BaseCommit))

	if r.Error != "" {
		fmt.Fprintf(buf, "  %s\n\n%s\n\n", w.errText.Sprint(r.Error), rule)
		return
	}

	fmt.Fprintf(buf, "  %s\n  %s\n", w.section.Sprint("Code Statistics"), strings.Repeat("─", statRuleWidth))
	w.writeStat(buf, "Total Lines", r.TotalLines)
	w.writeStat(buf, "Base Lines Surviving", r.BaseLinesSurviving)
	w.writeStat(buf, "Evolved Lines", r.ManualOrModifiedLines)
	w.writeStat(buf, "Files Analyzed", r.FilesAnalyzed)
	if r.FilesSkipped > 0 {
		w.writeStat(buf, "Files Skipped", r.FilesSkipped)
	}

	fmt.Fprintf(buf, "\n  Evolution: %s | Survival: %s\n",
		w.evolved.Sprintf("%s%%", formatPercent(r.EvolutionPercent)),
		w.survived.Sprintf("%s%%", formatPercent(r.SurvivalPercent)))
	fmt.Fprintf(buf, "  %s\n", progressBar(r.EvolutionPercent, barWidth))

	if len(r.FileBreakdown) > 0 {
		fmt.Fprintf(buf, "\n  %s\n", w.section.Sprint("Top Evolved Files"))
		w.writeBreakdown(buf, r.FileBreakdown)
	}

	if len(r.Timeline) > 0 {
		fmt.Fprintf(buf, "\n  %s\n", w.section.Sprint("Commits Since Base"))
		for _, entry := range r.Timeline {
			fmt.Fprintf(buf, "  %s  %s  %s\n", shortHash(entry.Commit), entry.Date, entry.Subject)
		}
	}

	fmt.Fprintf(buf, "\n%s\n", rule)
}

func (w *Writer) writeStat(buf *bytes.Buffer, label string, value int) {
	fmt.Fprintf(buf, "  %-25s %s\n", label, humanize.Comma(int64(value)))
}

func (w *Writer) writeBreakdown(buf *bytes.Buffer, stats []domain.FileStat) {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "File", "Lines", "Evolved", "Evolution"})

	for i, stat := range stats {
		if i >= breakdownRows {
			break
		}
		t.AppendRow(table.Row{
			i + 1,
			truncateName(stat.File),
			humanize.Comma(int64(stat.TotalLines)),
			humanize.Comma(int64(stat.EvolvedLines)),
			fmt.Sprintf("%s %s%%", progressBar(stat.EvolutionPercent, fileBarWidth), formatPercent(stat.EvolutionPercent)),
		})
	}

	for _, line := range strings.Split(t.Render(), "\n") {
		fmt.Fprintf(buf, "  %s\n", line)
	}
}

// progressBar renders percent as a filled/empty block bar of the given width.
func progressBar(percent float64, width int) string {
	filled := int(float64(width) * percent / 100)
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// formatPercent prints a percentage without trailing zero noise (20%, 33.33%).
func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func shortHash(hash string) string {
	if len(hash) > shortHashLen {
		return hash[:shortHashLen]
	}
	return hash
}

func truncateName(name string) string {
	if len(name) <= maxFileNameWidth {
		return name
	}
	return "..." + name[len(name)-(maxFileNameWidth-3):]
}

func newColor(colorize bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if colorize {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}
