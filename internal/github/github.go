package github

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/sift/internal/review"
)

// Review events accepted by the pull request reviews API.
const (
	EventComment        = "COMMENT"
	EventApprove        = "APPROVE"
	EventRequestChanges = "REQUEST_CHANGES"
)

// ReviewComment represents an inline comment on a PR review.
type ReviewComment struct {
	Path string `json:"path"`
	Line int    `json:"line"`
	Body string `json:"body"`
}

// ReviewRequest represents a PR review to post.
type ReviewRequest struct {
	Body     string          `json:"body"`
	Event    string          `json:"event"`
	Comments []ReviewComment `json:"comments"`
}

// BuildReview converts a report into a review request. At most maxComments
// inline comments are included (0 means no limit); the rest are counted in
// the body. Comments are taken in severity order so errors are never the
// ones cut.
func BuildReview(report *review.Report, maxComments int) ReviewRequest {
	var all []ReviewComment
	var ranks []int
	for _, f := range report.Files {
		for _, c := range f.Comments {
			all = append(all, ReviewComment{Path: f.Path, Line: c.Line(), Body: c.Message()})
			ranks = append(ranks, review.SeverityRank(c.Severity()))
		}
	}

	idx := make([]int, len(all))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return ranks[idx[a]] > ranks[idx[b]]
	})

	comments := []ReviewComment{}
	omitted := 0
	for _, i := range idx {
		if maxComments > 0 && len(comments) >= maxComments {
			omitted++
			continue
		}
		comments = append(comments, all[i])
	}

	return ReviewRequest{
		Body:     buildBody(report, omitted),
		Event:    event(report.Scores),
		Comments: comments,
	}
}

func buildBody(report *review.Report, omitted int) string {
	counts := report.Summary.Counts
	var sb strings.Builder
	sb.WriteString("## Static Analysis Review\n\n")
	sb.WriteString("| Severity | Count |\n|----------|-------|\n")
	fmt.Fprintf(&sb, "| Error | %d |\n", counts.Error)
	fmt.Fprintf(&sb, "| Warning | %d |\n", counts.Warning)
	fmt.Fprintf(&sb, "| Info | %d |\n\n", counts.Info)

	if omitted > 0 {
		fmt.Fprintf(&sb, "%d more comments were not posted inline.\n\n", omitted)
	}

	if len(report.Problems) > 0 {
		sb.WriteString("### Problems\n\n")
		for _, p := range report.Problems {
			fmt.Fprintf(&sb, "- %s\n", p)
		}
		sb.WriteString("\n")
	}

	for _, m := range report.Messages {
		sb.WriteString(m)
		sb.WriteString("\n")
	}
	return sb.String()
}

func event(scores map[string]int) string {
	if len(scores) == 0 {
		return EventComment
	}
	lo, hi := 0, 0
	for _, v := range scores {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	switch {
	case lo < 0:
		return EventRequestChanges
	case hi > 0:
		return EventApprove
	default:
		return EventComment
	}
}
