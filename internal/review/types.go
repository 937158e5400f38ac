package review

import (
	"encoding/json"
	"strings"
)

// Severity represents the importance of a violation or comment.
type Severity string

const (
	SeverityIgnore  Severity = "ignore"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Severities lists the known severities from most to least severe.
var Severities = []Severity{SeverityError, SeverityWarning, SeverityInfo, SeverityIgnore}

// SeverityRank returns a numeric rank for sorting (higher = more severe).
func SeverityRank(s Severity) int {
	switch s {
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// MeetsThreshold returns true if severity is at or above the threshold.
// Counting never uses this; it backs the CLI fail-on gate only.
func MeetsThreshold(s Severity, threshold string) bool {
	if threshold == "none" || threshold == "" {
		return false
	}
	t, ok := ParseSeverity(threshold)
	if !ok {
		return false
	}
	return SeverityRank(s) >= SeverityRank(t) && SeverityRank(s) > 0
}

// ParseSeverity maps the spellings used by common analyzers onto Severity.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error", "err", "fatal", "blocker", "critical", "high":
		return SeverityError, true
	case "warning", "warn", "major", "medium":
		return SeverityWarning, true
	case "info", "note", "notice", "minor", "low", "suggestion":
		return SeverityInfo, true
	case "ignore", "none", "off":
		return SeverityIgnore, true
	default:
		return "", false
	}
}

// Comment is a violation attached to a line of a reviewed file.
// It cannot be changed after NewComment.
type Comment struct {
	line     int
	message  string
	severity Severity
}

// NewComment creates a comment.
func NewComment(line int, message string, severity Severity) Comment {
	return Comment{line: line, message: message, severity: severity}
}

func (c Comment) Line() int          { return c.line }
func (c Comment) Message() string    { return c.message }
func (c Comment) Severity() Severity { return c.severity }

type commentJSON struct {
	Line     int      `json:"line"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

func (c Comment) MarshalJSON() ([]byte, error) {
	return json.Marshal(commentJSON{Line: c.line, Message: c.message, Severity: c.severity})
}

func (c *Comment) UnmarshalJSON(data []byte) error {
	var raw commentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = NewComment(raw.Line, raw.Message, raw.Severity)
	return nil
}

// Violation is an issue reported by an analyzer before it is matched to a file.
type Violation struct {
	Filename string   `json:"filename"`
	Line     int      `json:"line"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Result holds the violations produced by one analyzer run, in report order.
type Result struct {
	Violations []Violation `json:"violations"`
}

// Add appends a violation.
func (r *Result) Add(v Violation) {
	r.Violations = append(r.Violations, v)
}

// File is a file under review. Review appends to it through AddComment and
// reads it back through Comments.
type File interface {
	ReviewFilename() string
	Comments() []Comment
	AddComment(c Comment)
}

// ReviewFile is the default File implementation.
type ReviewFile struct {
	name     string
	comments []Comment
}

// NewFile creates an empty file with the given review name.
func NewFile(name string) *ReviewFile {
	return &ReviewFile{name: name}
}

// NewFiles creates one empty file per name.
func NewFiles(names []string) []File {
	files := make([]File, 0, len(names))
	for _, n := range names {
		files = append(files, NewFile(n))
	}
	return files
}

func (f *ReviewFile) ReviewFilename() string { return f.name }

// Comments returns the comments in the order they were added.
func (f *ReviewFile) Comments() []Comment { return f.comments }

func (f *ReviewFile) AddComment(c Comment) {
	f.comments = append(f.comments, c)
}

// Formatter renders problem and comment text. Implementations must be
// deterministic.
type Formatter interface {
	FormatProblem(source, problem string) string
	FormatComment(source string, severity Severity, message string) string
}
