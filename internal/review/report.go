package review

import (
	"sort"

	"github.com/google/uuid"
)

// RepoInfo contains repository metadata.
type RepoInfo struct {
	Root   string `json:"root,omitempty"`
	Head   string `json:"head,omitempty"`
	Branch string `json:"branch,omitempty"`
}

// InputInfo describes what was reviewed.
type InputInfo struct {
	Mode    string   `json:"mode"`
	Range   string   `json:"range,omitempty"`
	Sources []string `json:"sources,omitempty"`
}

// SeverityCounts holds counts by severity level.
type SeverityCounts struct {
	Error   int `json:"error"`
	Warning int `json:"warning"`
	Info    int `json:"info"`
	Ignore  int `json:"ignore"`
}

// Summary provides an overview of the review.
type Summary struct {
	Total           int            `json:"total"`
	Counts          SeverityCounts `json:"counts"`
	HighestSeverity Severity       `json:"highestSeverity,omitempty"`
	Dropped         int            `json:"dropped"`
}

// FileReport holds the comments attached to one file.
type FileReport struct {
	Path     string    `json:"path"`
	Comments []Comment `json:"comments"`
}

// Timing contains performance metrics.
type Timing struct {
	ParseMs int64 `json:"parseMs"`
	TotalMs int64 `json:"totalMs"`
}

// Report is a snapshot of a Review for the output writers.
type Report struct {
	Tool     string         `json:"tool"`
	Version  string         `json:"version"`
	RunID    string         `json:"runId"`
	Repo     RepoInfo       `json:"repo"`
	Inputs   InputInfo      `json:"inputs"`
	Summary  Summary        `json:"summary"`
	Problems []string       `json:"problems"`
	Messages []string       `json:"messages,omitempty"`
	Scores   map[string]int `json:"scores,omitempty"`
	Files    []FileReport   `json:"files"`
	Timing   Timing         `json:"timing"`
}

// Meta carries the run details a Review does not know about.
type Meta struct {
	Version string
	Repo    RepoInfo
	Inputs  InputInfo
	Timing  Timing
}

// ComputeSummary calculates the summary counts from a review.
func ComputeSummary(r *Review) Summary {
	s := Summary{
		Total:   r.TotalViolationCount(),
		Dropped: r.DroppedViolationCount(),
		Counts: SeverityCounts{
			Error:   r.ViolationCount(SeverityError),
			Warning: r.ViolationCount(SeverityWarning),
			Info:    r.ViolationCount(SeverityInfo),
			Ignore:  r.ViolationCount(SeverityIgnore),
		},
	}
	for _, sev := range Severities {
		if r.ViolationCount(sev) > 0 && SeverityRank(sev) > 0 {
			s.HighestSeverity = sev
			break
		}
	}
	return s
}

// BuildReport snapshots a review. Files without comments are omitted and
// comments within a file are ordered by line, keeping add order for ties.
func BuildReport(r *Review, meta Meta) *Report {
	report := &Report{
		Tool:     "sift",
		Version:  meta.Version,
		RunID:    uuid.NewString(),
		Repo:     meta.Repo,
		Inputs:   meta.Inputs,
		Summary:  ComputeSummary(r),
		Problems: r.Problems(),
		Messages: r.Messages(),
		Scores:   r.Scores(),
		Files:    []FileReport{},
		Timing:   meta.Timing,
	}
	if report.Problems == nil {
		report.Problems = []string{}
	}
	for _, f := range r.Files() {
		comments := f.Comments()
		if len(comments) == 0 {
			continue
		}
		sorted := append([]Comment(nil), comments...)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Line() < sorted[j].Line()
		})
		report.Files = append(report.Files, FileReport{
			Path:     f.ReviewFilename(),
			Comments: sorted,
		})
	}
	return report
}
