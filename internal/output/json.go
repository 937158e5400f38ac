package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dshills/sift/internal/github"
	"github.com/dshills/sift/internal/review"
)

// JSONWriter outputs the full report as JSON.
type JSONWriter struct{}

func (j *JSONWriter) Write(w io.Writer, report *review.Report) error {
	return writeJSON(w, report, "JSON")
}

// GitHubWriter outputs a pull request review payload as JSON.
type GitHubWriter struct {
	MaxComments int
}

func (g *GitHubWriter) Write(w io.Writer, report *review.Report) error {
	return writeJSON(w, github.BuildReview(report, g.MaxComments), "GitHub review")
}

func writeJSON(w io.Writer, v any, what string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", what, err)
	}
	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing %s: %w", what, err)
	}
	_, err = fmt.Fprintln(w)
	return err
}
