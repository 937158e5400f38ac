// Package format provides the review.Formatter implementations used to
// render problems and comments: [Plain] for terminals and plain-text review
// systems, [Markdown] for pull request comments, and [Redacting], which wraps
// either and scrubs secrets from the rendered text.
package format
