// Package domain defines the core business entities and interfaces for git-evolve.
package domain

// FileAttribution is the per-file outcome of line attribution.
// Invariant: 0 <= SurvivingLines <= TotalLines.
type FileAttribution struct {
	// Path is the file path relative to the repository root, forward-slash
	// separated, as reported by the tracked-file listing.
	Path string

	// TotalLines is the number of content lines in the file.
	TotalLines int

	// SurvivingLines is the number of lines still attributed to the base
	// revision.
	SurvivingLines int

	// Skipped marks files whose attribution failed or was short-circuited
	// (binary content, unmerged path, backend failure). Skipped files
	// contribute zero lines and are excluded from breakdowns.
	Skipped bool
}

// FileStat is one entry of the ranked per-file breakdown.
type FileStat struct {
	File             string  `json:"file"`
	TotalLines       int     `json:"total_lines"`
	EvolvedLines     int     `json:"evolved_lines"`
	EvolutionPercent float64 `json:"evolution_percent"`
}

// TimelineEntry describes one commit made after the base revision.
type TimelineEntry struct {
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Subject string `json:"subject"`
}

// EvolutionReport is the aggregate analysis result. It is the sole artifact
// crossing the core/presentation boundary and is never mutated after
// construction.
type EvolutionReport struct {
	// Repository is the repository name, in owner/repo form when derived
	// from the origin remote, otherwise the basename of the worktree root.
	Repository string `json:"repository"`

	// BaseCommit is the fully resolved 40-character base revision.
	BaseCommit string `json:"base_commit"`

	// TotalLines is the sum of content lines over all analyzed files.
	TotalLines int `json:"total_lines"`

	// BaseLinesSurviving counts lines still attributed to the base revision.
	BaseLinesSurviving int `json:"base_lines_surviving"`

	// ManualOrModifiedLines counts lines added or modified since the base.
	ManualOrModifiedLines int `json:"manual_or_modified_lines"`

	// EvolutionPercent and SurvivalPercent are complementary, rounded to two
	// decimals, and sum to 100 for any non-empty repository.
	EvolutionPercent float64 `json:"evolution_percent"`
	SurvivalPercent  float64 `json:"survival_percent"`

	// FilesAnalyzed is the number of tracked files that entered analysis.
	FilesAnalyzed int `json:"files_analyzed"`

	// FilesSkipped counts files whose attribution was contained to a
	// zero-contribution result rather than propagated as a failure.
	FilesSkipped int `json:"files_skipped,omitempty"`

	// FileBreakdown holds the top files ranked by evolution percentage.
	// Present only when requested.
	FileBreakdown []FileStat `json:"file_breakdown,omitempty"`

	// Timeline lists commits reachable from HEAD but not from the base,
	// newest first. Present only when requested.
	Timeline []TimelineEntry `json:"timeline,omitempty"`

	// Error carries a non-fatal terminal condition such as an empty
	// tracked-file set.
	Error string `json:"error,omitempty"`
}

// AnalyzeInput contains the parameters for an evolution analysis.
type AnalyzeInput struct {
	// BaseRef is the user-supplied base revision reference (hash, tag,
	// branch, or relative expression). Resolved before use.
	BaseRef string

	// FileBreakdown requests the ranked per-file breakdown.
	FileBreakdown bool

	// Timeline requests the post-base commit timeline.
	Timeline bool

	// Parallel enables the bounded worker pool for large file sets.
	Parallel bool

	// Workers bounds the number of concurrent attribution tasks.
	Workers int

	// ExcludePatterns are shell-style globs dropped from the tracked set.
	ExcludePatterns []string

	// ReportProgress enables coarse progress output during the parallel phase.
	ReportProgress bool
}

// Analysis tuning constants.
const (
	// FullHashLength is the length of a canonical revision identifier.
	FullHashLength = 40

	// MatchPrefixLength is the revision prefix width used to attribute a
	// content line to the base revision. Accepted approximation: 7 hex
	// characters are specific enough for realistic repository sizes.
	MatchPrefixLength = 7

	// DefaultWorkers is the default attribution worker-pool size.
	DefaultWorkers = 4

	// ParallelThreshold is the file count above which the scheduler uses
	// the worker pool instead of running in the calling goroutine.
	ParallelThreshold = 10

	// BreakdownLimit caps the ranked per-file breakdown.
	BreakdownLimit = 20

	// TimelineLimit caps the post-base commit timeline.
	TimelineLimit = 20

	// ProgressInterval is the completion count between progress emissions.
	ProgressInterval = 10
)
