package usecases

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/akolsi/git-evolve/internal/domain"
)

// msgNoTrackedFiles is the terminal (non-fatal) condition reported for an
// empty tracked-file set.
const msgNoTrackedFiles = "No tracked files found"

// BuildInput carries everything the report builder needs for one reduction.
type BuildInput struct {
	Results       []domain.FileAttribution
	BaseRevision  string
	RepoName      string
	RepoRoot      string
	FileBreakdown bool
	Timeline      bool
}

// ReportBuilder reduces per-file attribution results into the repository-wide
// EvolutionReport. The reduction is commutative: permuting the result
// sequence yields an identical report.
type ReportBuilder struct {
	gateway domain.CommandGateway
	logger  Logger
}

// NewReportBuilder creates a builder. The gateway is only used for the
// optional commit timeline.
func NewReportBuilder(gateway domain.CommandGateway, log Logger) *ReportBuilder {
	return &ReportBuilder{gateway: gateway, logger: log}
}

// Build constructs the report. An empty result set short-circuits to a
// zero-metric report carrying an explanatory error field.
func (b *ReportBuilder) Build(ctx context.Context, input BuildInput) *domain.EvolutionReport {
	report := &domain.EvolutionReport{
		Repository: input.RepoName,
		BaseCommit: input.BaseRevision,
	}

	if len(input.Results) == 0 {
		report.Error = msgNoTrackedFiles
		return report
	}

	var totalLines, survivingLines, skipped int
	for _, r := range input.Results {
		totalLines += r.TotalLines
		survivingLines += r.SurvivingLines
		if r.Skipped {
			skipped++
		}
	}

	evolvedLines := totalLines - survivingLines
	var evolutionPercent float64
	if totalLines > 0 {
		evolutionPercent = round2(float64(evolvedLines) / float64(totalLines) * 100)
	}

	report.TotalLines = totalLines
	report.BaseLinesSurviving = survivingLines
	report.ManualOrModifiedLines = evolvedLines
	report.EvolutionPercent = evolutionPercent
	report.SurvivalPercent = round2(100 - evolutionPercent)
	report.FilesAnalyzed = len(input.Results)
	report.FilesSkipped = skipped

	if input.FileBreakdown {
		report.FileBreakdown = buildBreakdown(input.Results)
	}
	if input.Timeline {
		report.Timeline = b.buildTimeline(ctx, input.BaseRevision, input.RepoRoot)
	}

	return report
}

// buildBreakdown ranks files by evolution percentage, descending, capped at
// BreakdownLimit. Zero-line files (binary, unattributable, genuinely empty)
// are excluded entirely, consistent with their zero contribution to the
// aggregate. Ties break on path so the ranking is independent of input order.
func buildBreakdown(results []domain.FileAttribution) []domain.FileStat {
	stats := make([]domain.FileStat, 0, len(results))
	for _, r := range results {
		if r.TotalLines == 0 {
			continue
		}
		evolved := r.TotalLines - r.SurvivingLines
		stats = append(stats, domain.FileStat{
			File:             r.Path,
			TotalLines:       r.TotalLines,
			EvolvedLines:     evolved,
			EvolutionPercent: round2(float64(evolved) / float64(r.TotalLines) * 100),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].EvolutionPercent != stats[j].EvolutionPercent {
			return stats[i].EvolutionPercent > stats[j].EvolutionPercent
		}
		return stats[i].File < stats[j].File
	})

	if len(stats) > domain.BreakdownLimit {
		stats = stats[:domain.BreakdownLimit]
	}
	return stats
}

// buildTimeline lists commits reachable from HEAD but not from the base,
// newest first, capped at TimelineLimit. A backend failure degrades to an
// empty timeline rather than failing the report.
func (b *ReportBuilder) buildTimeline(ctx context.Context, baseRevision, repoRoot string) []domain.TimelineEntry {
	out, err := b.gateway.Execute(ctx, []string{
		"log",
		baseRevision + "..HEAD",
		fmt.Sprintf("--max-count=%d", domain.TimelineLimit),
		"--pretty=format:%H|%ad|%s",
		"--date=short",
	}, repoRoot)
	if err != nil {
		b.logger.Warn(ctx, "timeline query failed; omitting timeline", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	var entries []domain.TimelineEntry
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "|", 3)
		if len(parts) != 3 {
			continue
		}
		entries = append(entries, domain.TimelineEntry{
			Commit:  parts[0],
			Date:    parts[1],
			Subject: parts[2],
		})
	}
	return entries
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
