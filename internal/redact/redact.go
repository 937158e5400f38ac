package redact

import (
	"path/filepath"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
)

const placeholder = "[REDACTED]"

// Withheld replaces a whole message on a file covered by a path policy.
const Withheld = placeholder + " (message withheld by path policy)"

// secretPatterns are regex heuristics for common secret types.
var secretPatterns = []*regexp.Regexp{
	// Generic API keys (long hex/base64 strings after common key patterns)
	regexp.MustCompile(`(?i)(api[_-]?key|apikey|api[_-]?secret)\s*[:=]\s*["']?([A-Za-z0-9/+=_-]{20,})["']?`),
	// AWS access key IDs
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	regexp.MustCompile(`(?i)(aws[_-]?secret[_-]?access[_-]?key)\s*[:=]\s*["']?([A-Za-z0-9/+=]{40})["']?`),
	regexp.MustCompile(`(?i)(secret|token|password|passwd|credential)\s*[:=]\s*["']([^"']{8,})["']`),
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._-]{20,}`),
	// JWTs
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`),
	regexp.MustCompile(`-----BEGIN\s+(RSA\s+|EC\s+|OPENSSH\s+)?PRIVATE KEY-----`),
	regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`),
	regexp.MustCompile(`xox[bporas]-[A-Za-z0-9-]{10,}`),
	regexp.MustCompile(`sk-ant-[A-Za-z0-9_-]{20,}`),
	regexp.MustCompile(`sk-[A-Za-z0-9]{20,}`),
	// Database URLs with inline credentials
	regexp.MustCompile(`[a-z][a-z0-9+.-]*://[^:/\s]+:[^@/\s]+@[^\s]+`),
}

// Secrets replaces detected secrets in text with [REDACTED].
func Secrets(text string) string {
	result := text
	for _, pat := range secretPatterns {
		result = pat.ReplaceAllString(result, placeholder)
	}
	return result
}

// MatchPath reports whether path matches any of the glob patterns.
// "**" matches any number of directories, including none.
func MatchPath(path string, patterns []string) bool {
	path = filepath.ToSlash(path)
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, path); err == nil && matched {
			return true
		}
	}
	return false
}

// Redactor applies secret scrubbing and a path policy.
type Redactor struct {
	paths []string
}

// New creates a Redactor withholding messages on files matching paths.
func New(paths []string) *Redactor {
	return &Redactor{paths: paths}
}

// Message returns msg scrubbed of secrets, or [Withheld] when path is covered
// by the path policy.
func (r *Redactor) Message(path, msg string) string {
	if MatchPath(path, r.paths) {
		return Withheld
	}
	return Secrets(msg)
}
