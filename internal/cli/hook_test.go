package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateHookScript(t *testing.T) {
	script := generateHookScript("error", "text", []string{"lint=checkstyle:lint.xml", "vet=unix:vet.txt"})

	assert.True(t, strings.HasPrefix(script, hookMarkerStart))
	assert.Contains(t, script, hookMarkerEnd)
	assert.Contains(t, script, "sift review --staged --fail-on error --format text --report 'lint=checkstyle:lint.xml' --report 'vet=unix:vet.txt'\n")
	assert.Contains(t, script, "SIFT_EXIT=$?")
	assert.Contains(t, script, "exit 1")
	assert.Contains(t, script, "allowing commit")
}

func TestValidateHookReports(t *testing.T) {
	assert.ErrorContains(t, validateHookReports(nil), "at least one --report")
	assert.Error(t, validateHookReports([]string{"garbage"}))
	assert.NoError(t, validateHookReports([]string{"vet=unix:vet.txt"}))
}

func TestHookInstall_RequiresReport(t *testing.T) {
	isolate(t)
	assert.Equal(t, ExitUsageError, execute("hook", "install"))
}

func TestShellQuote(t *testing.T) {
	assert.Equal(t, `'plain'`, shellQuote("plain"))
	assert.Equal(t, `'it'\''s'`, shellQuote("it's"))
}

func TestReplaceHookSection_NoExisting(t *testing.T) {
	existing := "#!/bin/sh\nsome-other-hook\n"
	section := generateHookScript("error", "text", nil)

	result := replaceHookSection(existing, section)

	assert.True(t, strings.HasPrefix(result, existing), "existing content should be preserved")
	assert.Contains(t, result, hookMarkerStart)
}

func TestReplaceHookSection_ExistingSection(t *testing.T) {
	oldSection := generateHookScript("info", "text", nil)
	existing := "#!/bin/sh\nbefore\n" + oldSection + "after\n"
	newSection := generateHookScript("error", "json", nil)

	result := replaceHookSection(existing, newSection)

	assert.Contains(t, result, "before")
	assert.Contains(t, result, "after")
	assert.Contains(t, result, "--fail-on error")
	assert.NotContains(t, result, "--fail-on info")
	assert.Equal(t, 1, strings.Count(result, hookMarkerStart))
}

func TestReplaceHookSection_NoTrailingNewline(t *testing.T) {
	existing := "#!/bin/sh\nsome-hook"
	result := replaceHookSection(existing, generateHookScript("error", "text", nil))

	assert.Contains(t, result, "some-hook\n"+hookMarkerStart)
}

func TestRemoveHookSection(t *testing.T) {
	section := generateHookScript("error", "text", nil)
	existing := "#!/bin/sh\nbefore\n" + section + "after\n"

	result := removeHookSection(existing)

	assert.Equal(t, "#!/bin/sh\nbefore\nafter\n", result)
}

func TestRemoveHookSection_NoSection(t *testing.T) {
	existing := "#!/bin/sh\nsome-hook\n"
	assert.Equal(t, existing, removeHookSection(existing))
}
