package output

import (
	"fmt"
	"io"
	"os"

	"github.com/dshills/sift/internal/redact"
	"github.com/dshills/sift/internal/review"
)

// Writer writes a report in a specific format.
type Writer interface {
	Write(w io.Writer, report *review.Report) error
}

// Options tune writers that need more than the report.
type Options struct {
	// MaxComments limits inline comments in the github format (0 = no limit).
	MaxComments int
	// Redactor withholds comments on files covered by its path policy.
	Redactor *redact.Redactor
}

// Formats lists the supported output formats.
var Formats = []string{"text", "json", "markdown", "sarif", "github"}

// GetWriter returns a writer for the specified format.
func GetWriter(format string, opts Options) (Writer, error) {
	switch format {
	case "text", "":
		return &TextWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	case "markdown":
		return &MarkdownWriter{}, nil
	case "sarif":
		return &SARIFWriter{}, nil
	case "github":
		return &GitHubWriter{MaxComments: opts.MaxComments}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteReport writes the report to the specified output (file path or stdout).
func WriteReport(report *review.Report, format, outPath string, opts Options) error {
	writer, err := GetWriter(format, opts)
	if err != nil {
		return err
	}
	if opts.Redactor != nil {
		report = Redact(report, opts.Redactor)
	}

	var w io.Writer
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	} else {
		w = os.Stdout
	}

	return writer.Write(w, report)
}

// Redact returns a copy of report with every comment message passed through
// the redactor. The original report is not modified.
func Redact(report *review.Report, r *redact.Redactor) *review.Report {
	out := *report
	out.Files = make([]review.FileReport, len(report.Files))
	for i, f := range report.Files {
		comments := make([]review.Comment, len(f.Comments))
		for j, c := range f.Comments {
			comments[j] = review.NewComment(c.Line(), r.Message(f.Path, c.Message()), c.Severity())
		}
		out.Files[i] = review.FileReport{Path: f.Path, Comments: comments}
	}
	return &out
}
