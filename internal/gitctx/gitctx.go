package gitctx

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sourcegraph/go-diff/diff"
)

// Options controls which files are kept.
type Options struct {
	Include []string
	Exclude []string
}

// Files holds the files under review and where they came from.
type Files struct {
	Names []string
	Mode  string
	Range string
	Repo  RepoMeta
}

// RepoMeta contains git repository metadata.
type RepoMeta struct {
	Root   string
	Head   string
	Branch string
}

// GetRepoMeta collects repository metadata from git.
func GetRepoMeta() (RepoMeta, error) {
	root, err := gitOutput("rev-parse", "--show-toplevel")
	if err != nil {
		return RepoMeta{}, fmt.Errorf("not a git repository: %w", err)
	}
	head, err := gitOutput("rev-parse", "HEAD")
	if err != nil {
		head = "" // new repo with no commits
	}
	branch, err := gitOutput("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		branch = ""
	}
	return RepoMeta{
		Root:   strings.TrimSpace(root),
		Head:   strings.TrimSpace(head),
		Branch: strings.TrimSpace(branch),
	}, nil
}

// FromDiff reads a unified diff and returns the files it adds or modifies.
func FromDiff(r io.Reader, label string, opts Options) (Files, error) {
	names, err := ParseDiffFiles(r)
	if err != nil {
		return Files{}, err
	}
	return buildFiles(names, "diff", label, opts), nil
}

// FromDiffFile is FromDiff for a path; "-" reads stdin.
func FromDiffFile(path string, opts Options) (Files, error) {
	if path == "-" {
		return FromDiff(os.Stdin, "stdin", opts)
	}
	f, err := os.Open(path)
	if err != nil {
		return Files{}, fmt.Errorf("opening diff: %w", err)
	}
	defer f.Close()
	return FromDiff(f, path, opts)
}

// ParseDiffFiles returns the new-side names of the files a unified diff
// touches, in diff order, without duplicates. Deleted files are skipped.
func ParseDiffFiles(r io.Reader) ([]string, error) {
	fileDiffs, err := diff.NewMultiFileDiffReader(r).ReadAllFiles()
	if err != nil {
		return nil, fmt.Errorf("parsing diff: %w", err)
	}
	var names []string
	seen := make(map[string]bool)
	for _, fd := range fileDiffs {
		name := fd.NewName
		if name == "" || name == "/dev/null" {
			continue
		}
		name = stripDiffPrefix(name)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names, nil
}

func stripDiffPrefix(name string) string {
	// go-diff keeps the a/ and b/ prefixes; the timestamp part of a
	// "+++ b/x\t2024-01-01" header is already split off.
	if strings.HasPrefix(name, "b/") || strings.HasPrefix(name, "a/") {
		return name[2:]
	}
	return name
}

// Unstaged returns the files changed in the working tree vs the index.
func Unstaged(opts Options) (Files, error) {
	out, err := gitOutput("diff", "--name-only", "--diff-filter=d")
	if err != nil {
		return Files{}, fmt.Errorf("git diff: %w", err)
	}
	return buildFiles(splitLines(out), "unstaged", "", opts), nil
}

// Staged returns the files changed in the index vs HEAD.
func Staged(opts Options) (Files, error) {
	out, err := gitOutput("diff", "--cached", "--name-only", "--diff-filter=d")
	if err != nil {
		return Files{}, fmt.Errorf("git diff --cached: %w", err)
	}
	return buildFiles(splitLines(out), "staged", "", opts), nil
}

// Range returns the files changed in a revision range. With mergeBase set,
// "a..b" is compared from the merge base as "a...b".
func Range(revRange string, mergeBase bool, opts Options) (Files, error) {
	diffRange := revRange
	if mergeBase && strings.Contains(revRange, "..") && !strings.Contains(revRange, "...") {
		diffRange = strings.Replace(revRange, "..", "...", 1)
	}
	out, err := gitOutput("diff", "--name-only", "--diff-filter=d", diffRange)
	if err != nil {
		return Files{}, fmt.Errorf("git diff %s: %w", revRange, err)
	}
	return buildFiles(splitLines(out), "range", revRange, opts), nil
}

// FromList uses an explicit list of file names.
func FromList(names []string, opts Options) Files {
	return buildFiles(names, "files", "", opts)
}

func buildFiles(names []string, mode, rangeStr string, opts Options) Files {
	meta, err := GetRepoMeta()
	if err != nil {
		meta = RepoMeta{}
	}
	return Files{
		Names: Filter(names, opts),
		Mode:  mode,
		Range: rangeStr,
		Repo:  meta,
	}
}

// Filter keeps names matching an include pattern (all names when there are
// none) and no exclude pattern.
func Filter(names []string, opts Options) []string {
	var result []string
	for _, n := range names {
		if len(opts.Include) > 0 && !MatchesAny(n, opts.Include) {
			continue
		}
		if MatchesAny(n, opts.Exclude) {
			continue
		}
		result = append(result, n)
	}
	return result
}

// MatchesAny returns true if the path matches any of the given glob patterns.
// "**" matches any number of directories, including none.
func MatchesAny(path string, patterns []string) bool {
	path = filepath.ToSlash(path)
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, path); err == nil && matched {
			return true
		}
	}
	return false
}

func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func gitOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return string(out), fmt.Errorf("%s: %s", err, string(exitErr.Stderr))
		}
		return "", err
	}
	return string(out), nil
}
