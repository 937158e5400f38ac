// Sift is a local CLI that turns static analysis reports into a code review.
//
// It reads checkstyle, SARIF and unix-style analyzer output, keeps the
// findings on files under review (a diff, a revision range, staged or
// unstaged changes, or an explicit list), and emits the review as text,
// JSON, Markdown, SARIF or a GitHub pull request review payload. Exit codes
// are deterministic for CI gating and git hooks.
//
// Usage:
//
//	sift review --report lint=checkstyle:lint.xml            # unstaged changes
//	sift review --staged --report vet=unix:vet.txt            # staged changes
//	sift review --range origin/main..HEAD --report sarif:out.sarif
//	git diff main | sift review --diff - --report vet=unix:vet.txt
//	sift hook install --report vet=unix:vet.txt               # pre-commit hook
package main
