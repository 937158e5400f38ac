package output

import (
	"io"
	"strings"

	"github.com/dshills/sift/internal/review"
)

// MarkdownWriter outputs a PR-description-friendly markdown report.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, report *review.Report) error {
	ew := &errWriter{w: w}
	s := report.Summary

	ew.printf("## Static Analysis Review\n\n")

	ew.printf("| Severity | Count |\n")
	ew.printf("|----------|-------|\n")
	ew.printf("| Error    | %d    |\n", s.Counts.Error)
	ew.printf("| Warning  | %d    |\n", s.Counts.Warning)
	ew.printf("| Info     | %d    |\n", s.Counts.Info)
	ew.printf("| **Total** | **%d** |\n\n", s.Total)

	if len(report.Problems) > 0 {
		ew.printf("### Problems\n\n")
		for _, p := range report.Problems {
			ew.printf("- %s\n", p)
		}
		ew.printf("\n")
	}

	if s.Total == 0 {
		ew.println("No violations found. :white_check_mark:")
		return ew.err
	}

	for _, f := range report.Files {
		ew.printf("<details>\n<summary><code>%s</code> (%d)</summary>\n\n", f.Path, len(f.Comments))
		for _, c := range f.Comments {
			msg := strings.ReplaceAll(c.Message(), "\n", " ")
			ew.printf("- **L%d** %s %s\n", c.Line(), mdSeverityIcon(c.Severity()), msg)
		}
		ew.printf("\n</details>\n\n")
	}

	if s.Dropped > 0 {
		ew.printf("*%d violations were on files outside this review.*\n\n", s.Dropped)
	}
	ew.printf("*Reviewed in %dms*\n", report.Timing.TotalMs)

	return ew.err
}

func mdSeverityIcon(s review.Severity) string {
	switch s {
	case review.SeverityError:
		return ":red_circle:"
	case review.SeverityWarning:
		return ":orange_circle:"
	case review.SeverityInfo:
		return ":large_blue_circle:"
	default:
		return ":white_circle:"
	}
}
