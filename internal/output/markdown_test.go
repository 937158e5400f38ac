package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownWriter_NoViolations(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&MarkdownWriter{}).Write(&buf, emptyReport()))

	out := buf.String()
	assert.Contains(t, out, "## Static Analysis Review")
	assert.Contains(t, out, "| **Total** | **0** |")
	assert.Contains(t, out, "No violations found. :white_check_mark:")
	assert.NotContains(t, out, "<details>")
}

func TestMarkdownWriter_WithViolations(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&MarkdownWriter{}).Write(&buf, sampleReport()))

	out := buf.String()
	assert.Contains(t, out, "| Error    | 1    |")
	assert.Contains(t, out, "### Problems")
	assert.Contains(t, out, "- lint: report not found")
	assert.Contains(t, out, "<summary><code>cmd/main.go</code> (2)</summary>")
	assert.Contains(t, out, "- **L3** :red_circle: [vet] ERROR: unreachable code")
	assert.Contains(t, out, "*2 violations were on files outside this review.*")
	assert.Contains(t, out, "*Reviewed in 12ms*")
}
