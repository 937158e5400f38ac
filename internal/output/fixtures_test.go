package output

import (
	"github.com/dshills/sift/internal/review"
)

func sampleReport() *review.Report {
	return &review.Report{
		Tool:    "sift",
		Version: "1.0",
		RunID:   "run-1",
		Repo:    review.RepoInfo{Root: "/tmp/repo", Branch: "main"},
		Inputs:  review.InputInfo{Mode: "diff", Sources: []string{"vet", "lint"}},
		Summary: review.Summary{
			Total:           3,
			Counts:          review.SeverityCounts{Error: 1, Warning: 1, Info: 1},
			HighestSeverity: review.SeverityError,
			Dropped:         2,
		},
		Problems: []string{"lint: report not found"},
		Messages: []string{"vet produced no findings on docs"},
		Scores:   map[string]int{"Code-Review": -1},
		Files: []review.FileReport{
			{
				Path: "cmd/main.go",
				Comments: []review.Comment{
					review.NewComment(3, "[vet] ERROR: unreachable code", review.SeverityError),
					review.NewComment(10, "[lint] WARNING: exported func lacks comment", review.SeverityWarning),
				},
			},
			{
				Path: "config/secrets.yaml",
				Comments: []review.Comment{
					review.NewComment(1, "[lint] INFO: token: \"abcdefgh12345\"", review.SeverityInfo),
				},
			},
		},
		Timing: review.Timing{ParseMs: 4, TotalMs: 12},
	}
}

func emptyReport() *review.Report {
	return &review.Report{
		Tool:     "sift",
		Version:  "1.0",
		Inputs:   review.InputInfo{Mode: "files"},
		Problems: []string{},
		Files:    []review.FileReport{},
	}
}
