package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akolsi/git-evolve/internal/domain"
)

func sampleReport() *domain.EvolutionReport {
	return &domain.EvolutionReport{
		Repository:            "acme/widgets",
		BaseCommit:            "a123456789abcdef0123456789abcdef01234567",
		TotalLines:            12345,
		BaseLinesSurviving:    9876,
		ManualOrModifiedLines: 2469,
		EvolutionPercent:      20.0,
		SurvivalPercent:       80.0,
		FilesAnalyzed:         42,
	}
}

func TestWriter_Write_Quiet(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		want    string
	}{
		{name: "whole number", percent: 20.0, want: "20%\n"},
		{name: "two decimals", percent: 33.33, want: "33.33%\n"},
		{name: "zero", percent: 0.0, want: "0%\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			report := sampleReport()
			report.EvolutionPercent = tt.percent

			writer := NewWriterWithOutput(&buf, FormatQuiet, false)
			require.NoError(t, writer.Write(report))

			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriter_Write_JSON(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriterWithOutput(&buf, FormatJSON, false)

	require.NoError(t, writer.Write(sampleReport()))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "acme/widgets", decoded["repository"])
	assert.Equal(t, float64(12345), decoded["total_lines"])
	assert.Equal(t, 20.0, decoded["evolution_percent"])
	// Optional fields stay absent when empty.
	assert.NotContains(t, decoded, "file_breakdown")
	assert.NotContains(t, decoded, "timeline")
	assert.NotContains(t, decoded, "error")
	assert.NotContains(t, decoded, "files_skipped")
}

func TestWriter_Write_Visual(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriterWithOutput(&buf, FormatVisual, false)

	require.NoError(t, writer.Write(sampleReport()))
	out := buf.String()

	assert.Contains(t, out, "Git Evolve Report: acme/widgets")
	assert.Contains(t, out, "Base commit: a1234567")
	assert.Contains(t, out, "Total Lines")
	assert.Contains(t, out, "12,345")
	assert.Contains(t, out, "Evolution: 20%")
	assert.Contains(t, out, "Survival: 80%")
	assert.Contains(t, out, "█")
	assert.Contains(t, out, "░")
	assert.NotContains(t, out, "\x1b[", "colors disabled")
	assert.NotContains(t, out, "Files Skipped")
}

func TestWriter_Write_Visual_Colorized(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriterWithOutput(&buf, FormatVisual, true)

	require.NoError(t, writer.Write(sampleReport()))

	assert.Contains(t, buf.String(), "\x1b[")
}

func TestWriter_Write_Visual_ErrorReport(t *testing.T) {
	var buf bytes.Buffer
	report := &domain.EvolutionReport{
		Repository: "acme/widgets",
		BaseCommit: "a123456789abcdef0123456789abcdef01234567",
		Error:      "No tracked files found",
	}

	writer := NewWriterWithOutput(&buf, FormatVisual, false)
	require.NoError(t, writer.Write(report))
	out := buf.String()

	assert.Contains(t, out, "No tracked files found")
	assert.NotContains(t, out, "Total Lines")
}

func TestWriter_Write_Visual_BreakdownAndTimeline(t *testing.T) {
	report := sampleReport()
	report.FilesSkipped = 3
	report.FileBreakdown = []domain.FileStat{
		{File: "internal/very/deeply/nested/path/that/overflows/the/column/engine.go", TotalLines: 100, EvolvedLines: 90, EvolutionPercent: 90.0},
		{File: "main.go", TotalLines: 50, EvolvedLines: 10, EvolutionPercent: 20.0},
	}
	report.Timeline = []domain.TimelineEntry{
		{Commit: "b987654321fedcba9876543210fedcba98765432", Date: "2026-08-30", Subject: "tighten parser"},
	}

	var buf bytes.Buffer
	writer := NewWriterWithOutput(&buf, FormatVisual, false)
	require.NoError(t, writer.Write(report))
	out := buf.String()

	assert.Contains(t, out, "Top Evolved Files")
	assert.Contains(t, out, "main.go")
	assert.Contains(t, out, "...", "long file names are truncated")
	assert.Contains(t, out, "Files Skipped")
	assert.Contains(t, out, "Commits Since Base")
	assert.Contains(t, out, "b9876543  2026-08-30  tighten parser")
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, strings.Repeat("░", 10), progressBar(0, 10))
	assert.Equal(t, strings.Repeat("█", 10), progressBar(100, 10))
	assert.Equal(t, "█████░░░░░", progressBar(50, 10))
	assert.Equal(t, strings.Repeat("░", 10), progressBar(-5, 10))
	assert.Equal(t, strings.Repeat("█", 10), progressBar(250, 10))
}

func TestTruncateName(t *testing.T) {
	assert.Equal(t, "main.go", truncateName("main.go"))

	long := strings.Repeat("d/", 30) + "file.go"
	got := truncateName(long)
	assert.Len(t, got, maxFileNameWidth)
	assert.True(t, strings.HasPrefix(got, "..."))
	assert.True(t, strings.HasSuffix(got, "file.go"))
}
