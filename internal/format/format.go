package format

import (
	"fmt"
	"strings"

	"github.com/dshills/sift/internal/redact"
	"github.com/dshills/sift/internal/review"
)

// New returns the formatter registered under name.
func New(name string) (review.Formatter, error) {
	switch name {
	case "", "plain":
		return Plain{}, nil
	case "markdown":
		return Markdown{}, nil
	default:
		return nil, fmt.Errorf("unsupported comment format: %s", name)
	}
}

// Plain renders "source: problem" and "[source] SEVERITY: message".
type Plain struct{}

func (Plain) FormatProblem(source, problem string) string {
	return fmt.Sprintf("%s: %s", source, problem)
}

func (Plain) FormatComment(source string, severity review.Severity, message string) string {
	return fmt.Sprintf("[%s] %s: %s", source, strings.ToUpper(string(severity)), message)
}

// Markdown renders for review systems that accept markdown comment bodies.
type Markdown struct{}

func (Markdown) FormatProblem(source, problem string) string {
	return fmt.Sprintf("**%s**: %s", source, problem)
}

func (Markdown) FormatComment(source string, severity review.Severity, message string) string {
	return fmt.Sprintf("%s **[%s]** %s", severityIcon(severity), source, message)
}

func severityIcon(s review.Severity) string {
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

// Redacting scrubs secrets from whatever the wrapped formatter produces.
type Redacting struct {
	Next review.Formatter
}

func (r Redacting) FormatProblem(source, problem string) string {
	return redact.Secrets(r.Next.FormatProblem(source, problem))
}

func (r Redacting) FormatComment(source string, severity review.Severity, message string) string {
	return redact.Secrets(r.Next.FormatComment(source, severity, message))
}
