// Package github builds GitHub pull request review payloads from a review
// report.
//
// [BuildReview] maps every file comment to an inline review comment and puts
// the severity summary, problems, and messages into the review body. The
// review event follows the report's score: a negative vote requests changes,
// a positive vote approves, anything else comments. Posting the payload is
// left to the caller.
package github
