package score

import (
	"testing"

	"github.com/dshills/sift/internal/format"
	"github.com/dshills/sift/internal/review"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reviewWith(severities ...review.Severity) *review.Review {
	files := review.NewFiles([]string{"a.go"})
	r := review.New(files, format.Plain{})
	res := &review.Result{}
	for i, s := range severities {
		res.Add(review.Violation{Filename: "a.go", Line: i + 1, Message: "m", Severity: s})
	}
	r.Add("lint", res)
	return r
}

func TestStrategy_Apply(t *testing.T) {
	tests := []struct {
		name       string
		strategy   string
		severities []review.Severity
		wantPass   bool
		wantScore  int
	}{
		{"always pass with errors", AlwaysPass, []review.Severity{review.SeverityError}, true, 1},
		{"empty passes", PassIfEmpty, nil, true, 1},
		{"empty fails on info", PassIfEmpty, []review.Severity{review.SeverityInfo}, false, -1},
		{"no errors passes on warnings", PassIfNoErrors, []review.Severity{review.SeverityWarning, review.SeverityInfo}, true, 1},
		{"no errors fails on error", PassIfNoErrors, []review.Severity{review.SeverityWarning, review.SeverityError}, false, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := reviewWith(tt.severities...)
			s := Strategy{Name: tt.strategy, Label: "Code-Review", Pass: 1, Fail: -1}

			passed, err := s.Apply(r)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPass, passed)
			assert.Equal(t, map[string]int{"Code-Review": tt.wantScore}, r.Scores())
		})
	}
}

func TestStrategy_NoScore(t *testing.T) {
	r := reviewWith(review.SeverityError)
	passed, err := Strategy{Name: NoScore, Label: "Code-Review"}.Apply(r)
	require.NoError(t, err)
	assert.True(t, passed)
	assert.Empty(t, r.Scores())
}

func TestStrategy_Unknown(t *testing.T) {
	_, err := Strategy{Name: "coin-flip"}.Apply(reviewWith())
	assert.Error(t, err)
}
