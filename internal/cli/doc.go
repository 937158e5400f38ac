// Package cli wires together the Cobra command tree for the sift binary.
//
// It defines the root command and all subcommands (review, config, hook,
// version), binds flags, reads configuration, runs each analyzer report
// through the review, and returns deterministic exit codes for CI gating.
package cli
