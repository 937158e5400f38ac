// Package review aggregates analyzer violations into per-file review comments.
//
// A [Review] owns the fixed set of files under review and a [Formatter].
// Analyzer output arrives as a [Result] tagged with a source label; [Review.Add]
// matches each [Violation] to its file by name and appends a formatted
// [Comment]. Violations for files outside the review are dropped and reported
// to the configured [Observer]. Counts are derived from the comment lists on
// every call, never cached.
//
// [BuildReport] takes a snapshot of a Review for the output writers.
//
// A Review is not safe for concurrent use; callers aggregating results from
// parallel analyzers must serialize calls to Add and AddProblem.
package review
