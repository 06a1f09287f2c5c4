package usecases

import (
	"bufio"
	"context"
	"strings"

	"github.com/akolsi/git-evolve/internal/domain"
)

// blameScanBufferSize bounds individual blame dump lines; source lines longer
// than this (minified bundles and the like) would otherwise stop the scan.
const blameScanBufferSize = 1024 * 1024

// LineAnalyzer attributes every line of one file to the commit that last
// touched it and classifies the line as base-surviving or evolved.
//
// Attribute never returns an error: this is the system's failure-containment
// boundary. One unattributable file must not abort the whole run, so every
// failure degrades to a skipped zero-contribution result.
type LineAnalyzer struct {
	gateway domain.CommandGateway
	logger  Logger
}

// NewLineAnalyzer creates an analyzer backed by the given gateway.
func NewLineAnalyzer(gateway domain.CommandGateway, log Logger) *LineAnalyzer {
	return &LineAnalyzer{gateway: gateway, logger: log}
}

// Attribute classifies every line of file against baseRevision.
// Binary files are short-circuited without attempting attribution, since
// binary content has no meaningful line semantics.
func (a *LineAnalyzer) Attribute(ctx context.Context, file, baseRevision, repoRoot string) domain.FileAttribution {
	if a.isBinary(ctx, file, repoRoot) {
		a.logger.Debug(ctx, "skipping binary file", map[string]interface{}{"path": file})
		return domain.FileAttribution{Path: file, Skipped: true}
	}

	dump, err := a.gateway.Execute(ctx, []string{"blame", "-w", "--porcelain", "--", file}, repoRoot)
	if err != nil {
		// Unmerged, deleted, or otherwise unattributable path.
		a.logger.Debug(ctx, "blame failed; file contributes zero lines", map[string]interface{}{
			"path":  file,
			"error": err.Error(),
		})
		return domain.FileAttribution{Path: file, Skipped: true}
	}

	total, surviving := countSurvivingLines(dump, baseRevision)

	return domain.FileAttribution{
		Path:           file,
		TotalLines:     total,
		SurvivingLines: surviving,
	}
}

// isBinary asks the backend whether the file carries the binary attribute.
// Any failure answers false; an undeclared binary then falls through to
// blame, whose failure containment still covers it.
func (a *LineAnalyzer) isBinary(ctx context.Context, file, repoRoot string) bool {
	out, err := a.gateway.Execute(ctx, []string{"check-attr", "binary", "--", file}, repoRoot)
	if err != nil {
		return false
	}
	return strings.HasSuffix(strings.TrimSpace(out), ": binary: set")
}

// countSurvivingLines decodes a porcelain blame dump linearly.
//
// Content lines start with a tab and carry the literal source line. Header
// lines start with a revision identifier, or with a single leading space
// before the identifier once the revision has already been introduced in the
// dump. Metadata lines (author, summary, filename, ...) start with a keyword
// and never update the current attributing revision.
//
// A content line survives when the current revision shares a
// MatchPrefixLength prefix with baseRevision.
func countSurvivingLines(dump, baseRevision string) (total, surviving int) {
	basePrefix := baseRevision
	if len(basePrefix) > domain.MatchPrefixLength {
		basePrefix = basePrefix[:domain.MatchPrefixLength]
	}

	var current string
	scanner := bufio.NewScanner(strings.NewReader(dump))
	scanner.Buffer(make([]byte, 0, 64*1024), blameScanBufferSize)

	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "\t"):
			total++
			if current != "" && strings.HasPrefix(current, basePrefix) {
				surviving++
			}
		case strings.HasPrefix(line, " "):
			if rev, ok := headerRevision(line[1:]); ok {
				current = rev
			}
		default:
			if rev, ok := headerRevision(line); ok {
				current = rev
			}
		}
	}

	return total, surviving
}

// headerRevision extracts the revision identifier from a candidate header
// line. The first token must look like a (possibly abbreviated) hex id at
// least MatchPrefixLength characters long.
func headerRevision(line string) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", false
	}
	rev := fields[0]
	if len(rev) < domain.MatchPrefixLength || len(rev) > domain.FullHashLength || !isHex(rev) {
		return "", false
	}
	return rev, true
}
