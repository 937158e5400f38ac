// Package score turns review counts into review-system labels such as
// Gerrit's Code-Review vote.
package score

import (
	"fmt"

	"github.com/dshills/sift/internal/review"
)

// Strategy names.
const (
	NoScore        = "noscore"
	AlwaysPass     = "always-pass"
	PassIfEmpty    = "pass-if-empty"
	PassIfNoErrors = "pass-if-no-errors"
)

// Strategy decides a review's labels once aggregation is complete.
type Strategy struct {
	Name  string
	Label string
	Pass  int
	Fail  int
}

// Apply computes the labels for r and stores them with r.SetScores. The
// returned bool reports whether the review passed; NoScore always passes
// and sets no labels.
func (s Strategy) Apply(r *review.Review) (bool, error) {
	var passed bool
	switch s.Name {
	case NoScore, "":
		return true, nil
	case AlwaysPass:
		passed = true
	case PassIfEmpty:
		passed = r.TotalViolationCount() == 0
	case PassIfNoErrors:
		passed = r.ViolationCount(review.SeverityError) == 0
	default:
		return false, fmt.Errorf("unknown score strategy: %s", s.Name)
	}

	value := s.Fail
	if passed {
		value = s.Pass
	}
	r.SetScores(map[string]int{s.Label: value})
	return passed, nil
}
