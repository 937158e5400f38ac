// Package output writes review reports for display or machine consumption.
//
// Five formats are supported:
//   - text     — human-readable terminal output (default)
//   - json     — full structured JSON report
//   - markdown — summary table and per-file comment lists for PR descriptions
//   - sarif    — SARIF v2.1.0 for code scanning uploads
//   - github   — a pull request review payload (see package github)
//
// Use [GetWriter] to obtain a [Writer] for a given format string, or
// [WriteReport] to write straight to a file or stdout. Path-based redaction
// from [Options] is applied before any writer sees the report.
package output
