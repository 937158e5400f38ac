// Package analyzer reads static-analysis reports into review results.
//
// Three report formats are supported:
//   - checkstyle — checkstyle XML, also emitted by eslint and golangci-lint
//   - sarif      — SARIF v2.1.0 JSON
//   - unix       — "path:line[:col]: [severity:] message" lines (go vet, staticcheck)
//
// Use [Parse] with a format name, or [Load] with a [ReportSpec] parsed from a
// "source=format:path" command-line value. [Rules] override severities per
// rule id and drop ignored rules before violations reach the review.
package analyzer
