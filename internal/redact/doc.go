// Package redact scrubs secrets from rendered review text.
//
// Analyzers such as secret scanners quote the offending line in their
// messages, so comments and problems pass through [Secrets] before they
// are written anywhere. Detection uses regex heuristics for common secret
// shapes: API keys, JWTs, private keys, AWS keys, bearer tokens, and
// provider tokens (GitHub, Slack, OpenAI, Anthropic).
//
// A [Redactor] also carries path globs; comments on matching files are
// withheld entirely rather than scanned.
package redact
