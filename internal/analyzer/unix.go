package analyzer

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/dshills/sift/internal/review"
)

var unixLineRe = regexp.MustCompile(`^([^:\s][^:]*):(\d+)(?::\d+)?:\s*(?:((?i:error|warning|warn|info|note))\s*:\s*)?(.*)$`)

// ruleSuffixRe matches a trailing "(rule)" as printed by staticcheck and revive.
var ruleSuffixRe = regexp.MustCompile(`\s+\(([A-Za-z0-9_.-]+)\)$`)

// ParseUnix reads "path:line[:col]: [severity:] message" lines. Lines that do
// not match, such as summaries, are skipped.
func ParseUnix(r io.Reader, opts Options) (*review.Result, error) {
	var entries []entry
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		m := unixLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		msg := m[4]
		var rule string
		if rm := ruleSuffixRe.FindStringSubmatch(msg); rm != nil {
			rule = rm[1]
			msg = strings.TrimSuffix(msg, rm[0])
		}
		entries = append(entries, entry{
			path:     m[1],
			line:     n,
			rule:     rule,
			severity: m[3],
			message:  msg,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	return build(entries, opts), nil
}
