package output

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/dshills/sift/internal/review"
)

// TextWriter outputs a human-readable text report.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, report *review.Report) error {
	ew := &errWriter{w: w}
	s := report.Summary

	ew.printf("Static Analysis Review — %s mode\n", report.Inputs.Mode)
	if report.Inputs.Range != "" {
		ew.printf("Range: %s\n", report.Inputs.Range)
	}
	if report.Repo.Root != "" {
		ew.printf("Repository: %s (branch: %s)\n", report.Repo.Root, report.Repo.Branch)
	}
	if len(report.Inputs.Sources) > 0 {
		ew.printf("Analyzers: %s\n", strings.Join(report.Inputs.Sources, ", "))
	}
	ew.println(strings.Repeat("─", 60))
	ew.printf("Violations: %d total", s.Total)
	if s.Total > 0 {
		ew.printf(" (%d error, %d warning, %d info)", s.Counts.Error, s.Counts.Warning, s.Counts.Info)
	}
	ew.println("")
	if s.Dropped > 0 {
		ew.printf("Skipped %d violations on files outside the review\n", s.Dropped)
	}
	for _, label := range slices.Sorted(maps.Keys(report.Scores)) {
		ew.printf("Score: %s %+d\n", label, report.Scores[label])
	}
	ew.println(strings.Repeat("─", 60))

	if len(report.Problems) > 0 {
		ew.println("\nProblems:")
		for _, p := range report.Problems {
			for i, line := range wrapText(p, 70) {
				if i == 0 {
					ew.printf("  - %s\n", line)
				} else {
					ew.printf("    %s\n", line)
				}
			}
		}
	}

	if s.Total == 0 {
		ew.println("\nNo violations found. Looks good!")
	}

	for _, f := range report.Files {
		ew.printf("\n%s\n", f.Path)
		ew.println(strings.Repeat("─", 40))
		for _, c := range f.Comments {
			lines := wrapText(c.Message(), 70)
			ew.printf("  %s %4d  %s\n", severityIcon(c.Severity()), c.Line(), lines[0])
			for _, line := range lines[1:] {
				ew.printf("             %s\n", line)
			}
		}
	}

	for _, m := range report.Messages {
		ew.printf("\n%s\n", m)
	}

	ew.printf("\n%s\n", strings.Repeat("─", 60))
	ew.printf("Completed in %dms (parse: %dms)\n", report.Timing.TotalMs, report.Timing.ParseMs)

	return ew.err
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

func severityIcon(s review.Severity) string {
	switch s {
	case review.SeverityError:
		return "[!!]"
	case review.SeverityWarning:
		return "[!] "
	case review.SeverityInfo:
		return "[-] "
	default:
		return "[ ] "
	}
}

func wrapText(text string, width int) []string {
	if len(text) <= width {
		return []string{text}
	}
	var lines []string
	words := strings.Fields(text)
	var current strings.Builder
	for _, word := range words {
		if current.Len()+len(word)+1 > width && current.Len() > 0 {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
