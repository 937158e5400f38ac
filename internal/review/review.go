package review

import (
	"maps"

	log "github.com/sirupsen/logrus"
)

// Observer is notified as a Review aggregates analyzer output.
type Observer interface {
	ViolationAdded(source string, severity Severity)
	ViolationDropped(source string, v Violation)
	ProblemAdded(source string)
}

// LogObserver logs dropped violations at debug level. It is the default
// observer.
type LogObserver struct{}

func (LogObserver) ViolationAdded(string, Severity) {}

func (LogObserver) ViolationDropped(source string, v Violation) {
	log.WithFields(log.Fields{
		"source": source,
		"file":   v.Filename,
		"line":   v.Line,
	}).Debug("dropping violation for file outside review")
}

func (LogObserver) ProblemAdded(string) {}

// Option configures a Review.
type Option func(*Review)

// WithObserver replaces the default logging observer.
func WithObserver(o Observer) Option {
	return func(r *Review) {
		if o != nil {
			r.observer = o
		}
	}
}

// Review aggregates analyzer results into comments on the files under review.
type Review struct {
	files     []File
	index     map[string]int
	formatter Formatter
	observer  Observer
	problems  []string
	messages  []string
	scores    map[string]int
	dropped   int
}

// New creates a Review over a fixed set of files. An empty file list is valid.
// If two files share a name, violations go to the first one.
func New(files []File, formatter Formatter, opts ...Option) *Review {
	r := &Review{
		files:     files,
		index:     make(map[string]int, len(files)),
		formatter: formatter,
		observer:  LogObserver{},
	}
	for i, f := range files {
		name := f.ReviewFilename()
		if _, ok := r.index[name]; !ok {
			r.index[name] = i
		}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// TotalViolationCount returns the number of comments across all files.
func (r *Review) TotalViolationCount() int {
	total := 0
	for _, f := range r.files {
		total += len(f.Comments())
	}
	return total
}

// ViolationCount returns the number of comments with exactly the given severity.
func (r *Review) ViolationCount(severity Severity) int {
	count := 0
	for _, f := range r.files {
		for _, c := range f.Comments() {
			if c.Severity() == severity {
				count++
			}
		}
	}
	return count
}

// AddProblem records a review-wide problem, such as an analyzer that failed
// to run. Problems are not attached to files.
func (r *Review) AddProblem(source, problem string) {
	r.problems = append(r.problems, r.formatter.FormatProblem(source, problem))
	r.observer.ProblemAdded(source)
}

// Add attaches each violation in result to the file it names. Violations
// naming a file outside the review are dropped.
func (r *Review) Add(source string, result *Result) {
	if result == nil {
		return
	}
	for _, v := range result.Violations {
		i, ok := r.index[v.Filename]
		if !ok {
			r.dropped++
			r.observer.ViolationDropped(source, v)
			continue
		}
		msg := r.formatter.FormatComment(source, v.Severity, v.Message)
		r.files[i].AddComment(NewComment(v.Line, msg, v.Severity))
		r.observer.ViolationAdded(source, v.Severity)
	}
}

// DroppedViolationCount returns how many violations Add could not match to a file.
func (r *Review) DroppedViolationCount() int {
	return r.dropped
}

// Problems returns a copy of the formatted problems in the order added.
func (r *Review) Problems() []string {
	return append([]string(nil), r.problems...)
}

// Formatter returns the formatter the review renders text with.
func (r *Review) Formatter() Formatter {
	return r.formatter
}

// Files returns the files under review in construction order.
func (r *Review) Files() []File {
	return r.files
}

// File looks up a file by review name.
func (r *Review) File(name string) (File, bool) {
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.files[i], true
}

// Filenames returns the review names of all files in construction order.
func (r *Review) Filenames() []string {
	names := make([]string, len(r.files))
	for i, f := range r.files {
		names[i] = f.ReviewFilename()
	}
	return names
}

// AddMessage records a free-form summary line, e.g. "3 files skipped".
func (r *Review) AddMessage(msg string) {
	r.messages = append(r.messages, msg)
}

// Messages returns a copy of the summary lines.
func (r *Review) Messages() []string {
	return append([]string(nil), r.messages...)
}

// SetScores replaces the review labels, e.g. {"Code-Review": -1}.
func (r *Review) SetScores(scores map[string]int) {
	r.scores = maps.Clone(scores)
}

// Scores returns a copy of the review labels.
func (r *Review) Scores() map[string]int {
	return maps.Clone(r.scores)
}
