// Package gitctx determines which files are under review.
//
// Files come from a unified diff ([FromDiff], parsed with go-diff), from git
// itself ([Unstaged], [Staged], [Range]), or from an explicit list
// ([FromList]). Deleted files are never under review. Every mode applies
// the same include/exclude glob filters and records repository metadata.
package gitctx
