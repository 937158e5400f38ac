package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/sift/internal/format"
	"github.com/dshills/sift/internal/review"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_CountsReviewEvents(t *testing.T) {
	rec := NewRecorder()
	r := review.New(review.NewFiles([]string{"a.go"}), format.Plain{}, review.WithObserver(rec))

	r.Add("vet", &review.Result{Violations: []review.Violation{
		{Filename: "a.go", Line: 1, Severity: review.SeverityError},
		{Filename: "a.go", Line: 2, Severity: review.SeverityError},
		{Filename: "b.go", Line: 1, Severity: review.SeverityWarning},
	}})
	r.AddProblem("staticcheck", "report missing")

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.added.WithLabelValues("vet", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.dropped.WithLabelValues("vet")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.problems.WithLabelValues("staticcheck")))
}

func TestRecorder_WriteTextfile(t *testing.T) {
	rec := NewRecorder()
	rec.ViolationDropped("gosec", review.Violation{Filename: "x.go"})

	path := filepath.Join(t.TempDir(), "sift.prom")
	require.NoError(t, rec.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `sift_violations_dropped_total{source="gosec"} 1`)
}

func TestRecordersAreIndependent(t *testing.T) {
	a, b := NewRecorder(), NewRecorder()
	a.ProblemAdded("x")
	assert.Equal(t, 0, testutil.CollectAndCount(b.problems))
	assert.Equal(t, 1, testutil.CollectAndCount(a.problems))
}

type countingObserver struct{ added, dropped, problems int }

func (c *countingObserver) ViolationAdded(string, review.Severity)    { c.added++ }
func (c *countingObserver) ViolationDropped(string, review.Violation) { c.dropped++ }
func (c *countingObserver) ProblemAdded(string)                       { c.problems++ }

func TestChain(t *testing.T) {
	first, second := &countingObserver{}, &countingObserver{}
	c := Chain{first, second}

	c.ViolationAdded("s", review.SeverityInfo)
	c.ViolationDropped("s", review.Violation{})
	c.ProblemAdded("s")

	for _, o := range []*countingObserver{first, second} {
		assert.Equal(t, countingObserver{1, 1, 1}, *o)
	}
}
