package analyzer

import (
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/dshills/sift/internal/review"
	log "github.com/sirupsen/logrus"
)

// Options control how report entries become violations.
type Options struct {
	// StripPrefix is removed from report paths so they match review filenames.
	StripPrefix string
	// Rules may override severities or drop rules entirely.
	Rules *Rules
	// DefaultSeverity applies when the report gives none.
	DefaultSeverity review.Severity
}

// entry is a report item before rules and path normalization apply.
type entry struct {
	path     string
	line     int
	rule     string
	severity string
	message  string
}

// Parser reads one report format.
type Parser func(r io.Reader, opts Options) (*review.Result, error)

var parsers = map[string]Parser{
	"checkstyle": ParseCheckstyle,
	"sarif":      ParseSARIF,
	"unix":       ParseUnix,
}

// Formats returns the supported report format names.
func Formats() []string {
	names := make([]string, 0, len(parsers))
	for name := range parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse reads a report in the named format.
func Parse(format string, r io.Reader, opts Options) (*review.Result, error) {
	p, ok := parsers[format]
	if !ok {
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
	return p(r, opts)
}

// ReportSpec names one analyzer report: the source label it is tagged with,
// its format, and where to read it.
type ReportSpec struct {
	Source string
	Format string
	Path   string
}

// ParseReportSpec parses "source=format:path" or "format:path". Without a
// source the format name is used as the label.
func ParseReportSpec(s string) (ReportSpec, error) {
	var spec ReportSpec
	rest := s
	eq, colon := strings.Index(s, "="), strings.Index(s, ":")
	if eq >= 0 && (colon < 0 || eq < colon) {
		spec.Source = strings.TrimSpace(s[:eq])
		rest = s[eq+1:]
	}
	format, p, ok := strings.Cut(rest, ":")
	if !ok || strings.TrimSpace(format) == "" || strings.TrimSpace(p) == "" {
		return ReportSpec{}, fmt.Errorf("invalid report %q: want [source=]format:path", s)
	}
	spec.Format = strings.TrimSpace(format)
	spec.Path = strings.TrimSpace(p)
	if spec.Source == "" {
		spec.Source = spec.Format
	}
	if _, ok := parsers[spec.Format]; !ok {
		return ReportSpec{}, fmt.Errorf("invalid report %q: unsupported format %s (want one of %s)",
			s, spec.Format, strings.Join(Formats(), ", "))
	}
	return spec, nil
}

// Load opens and parses the report a spec names. "-" reads stdin.
func Load(spec ReportSpec, opts Options) (*review.Result, error) {
	var r io.Reader
	if spec.Path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(spec.Path)
		if err != nil {
			return nil, fmt.Errorf("opening %s report: %w", spec.Source, err)
		}
		defer f.Close()
		r = f
	}
	result, err := Parse(spec.Format, r, opts)
	if err != nil {
		return nil, fmt.Errorf("parsing %s report %s: %w", spec.Source, spec.Path, err)
	}
	log.WithFields(log.Fields{
		"source":     spec.Source,
		"format":     spec.Format,
		"violations": len(result.Violations),
	}).Debug("loaded analyzer report")
	return result, nil
}

// build applies rules and path normalization to parsed entries.
func build(entries []entry, opts Options) *review.Result {
	result := &review.Result{Violations: make([]review.Violation, 0, len(entries))}
	for _, e := range entries {
		if opts.Rules.ignored(e.rule) {
			continue
		}
		sev, ok := review.ParseSeverity(e.severity)
		if !ok {
			sev = opts.DefaultSeverity
			if sev == "" {
				sev = review.SeverityWarning
			}
		}
		if override, ok := opts.Rules.override(e.rule); ok {
			sev = override
		}
		line := e.line
		if line < 1 {
			line = 1
		}
		result.Add(review.Violation{
			Filename: NormalizePath(e.path, opts.StripPrefix),
			Line:     line,
			Message:  strings.TrimSpace(e.message),
			Severity: sev,
		})
	}
	return result
}

// NormalizePath converts a report path into review filename form: forward
// slashes, no file:// scheme, no prefix, no leading "./".
func NormalizePath(p, prefix string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimPrefix(p, "file://")
	if prefix != "" {
		prefix = strings.ReplaceAll(prefix, "\\", "/")
		if !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		p = strings.TrimPrefix(p, prefix)
	}
	if p == "" {
		return p
	}
	return path.Clean(p)
}
