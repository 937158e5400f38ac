package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFile serves a fixed comment list, like a mocked file in the pipeline.
type stubFile struct {
	name     string
	comments []Comment
}

func (f *stubFile) ReviewFilename() string { return f.name }
func (f *stubFile) Comments() []Comment    { return f.comments }
func (f *stubFile) AddComment(c Comment)   { f.comments = append(f.comments, c) }

type commentCall struct {
	source   string
	severity Severity
	message  string
}

// stubFormatter returns canned output and records its calls.
type stubFormatter struct {
	comment  string
	calls    []commentCall
	problems int
}

func (f *stubFormatter) FormatProblem(source, problem string) string {
	f.problems++
	return source + ": " + problem
}

func (f *stubFormatter) FormatComment(source string, severity Severity, message string) string {
	f.calls = append(f.calls, commentCall{source, severity, message})
	return f.comment
}

type recordingObserver struct {
	added    map[Severity]int
	dropped  []Violation
	problems []string
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{added: make(map[Severity]int)}
}

func (o *recordingObserver) ViolationAdded(_ string, s Severity) { o.added[s]++ }
func (o *recordingObserver) ViolationDropped(_ string, v Violation) {
	o.dropped = append(o.dropped, v)
}
func (o *recordingObserver) ProblemAdded(source string) { o.problems = append(o.problems, source) }

func setUp() (*stubFile, *stubFile, *stubFormatter, *Review) {
	file1 := &stubFile{name: "file1"}
	file2 := &stubFile{name: "file2"}
	formatter := &stubFormatter{comment: "Format comment"}
	return file1, file2, formatter, New([]File{file1, file2}, formatter)
}

func TestReview_TotalViolationCountFromCommentsSize(t *testing.T) {
	file1, file2, _, r := setUp()
	file1.comments = []Comment{{}, {}}
	file2.comments = []Comment{{}}

	assert.Equal(t, 3, r.TotalViolationCount())
}

func TestReview_ViolationCountPerSeverity(t *testing.T) {
	file1, file2, _, r := setUp()
	file1.comments = []Comment{
		NewComment(1, "a", SeverityError),
		NewComment(2, "b", SeverityInfo),
	}
	file2.comments = []Comment{NewComment(3, "c", SeverityInfo)}

	assert.Equal(t, 2, r.ViolationCount(SeverityInfo))
	assert.Equal(t, 1, r.ViolationCount(SeverityError))
	assert.Equal(t, 0, r.ViolationCount(SeverityWarning))
}

func TestReview_CountsSumToTotal(t *testing.T) {
	file1, file2, _, r := setUp()
	file1.comments = []Comment{
		NewComment(1, "a", SeverityError),
		NewComment(1, "b", SeverityWarning),
		NewComment(2, "c", SeverityIgnore),
	}
	file2.comments = []Comment{
		NewComment(3, "d", SeverityInfo),
		NewComment(4, "e", SeverityWarning),
	}

	sum := 0
	for _, s := range Severities {
		sum += r.ViolationCount(s)
	}
	assert.Equal(t, r.TotalViolationCount(), sum)
	assert.Equal(t, 5, sum)
}

func TestReview_CountsAreLive(t *testing.T) {
	file1, _, _, r := setUp()
	assert.Equal(t, 0, r.TotalViolationCount())

	file1.AddComment(NewComment(1, "late", SeverityWarning))

	assert.Equal(t, 1, r.TotalViolationCount())
	assert.Equal(t, 1, r.ViolationCount(SeverityWarning))
}

func TestReview_AddProblem(t *testing.T) {
	_, _, formatter, r := setUp()

	r.AddProblem("TestSource", "TestProblem")

	assert.Equal(t, []string{"TestSource: TestProblem"}, r.Problems())
	assert.Contains(t, r.Problems(), r.Formatter().FormatProblem("TestSource", "TestProblem"))
	assert.Equal(t, 2, formatter.problems)
}

func TestReview_AddProblemDoesNotTouchFiles(t *testing.T) {
	file1, file2, _, r := setUp()

	r.AddProblem("pmd", "crashed")

	assert.Empty(t, file1.comments)
	assert.Empty(t, file2.comments)
	assert.Equal(t, 0, r.TotalViolationCount())
}

func TestReview_ProblemsReturnsCopy(t *testing.T) {
	_, _, _, r := setUp()
	r.AddProblem("a", "b")

	got := r.Problems()
	got[0] = "mutated"

	assert.Equal(t, []string{"a: b"}, r.Problems())
}

func TestReview_AddViolation(t *testing.T) {
	file1, file2, formatter, r := setUp()
	result := &Result{}
	result.Add(Violation{Filename: "file1", Line: 1, Message: "Violation message", Severity: SeverityError})

	require.Empty(t, file1.Comments())
	r.Add("checkstyle", result)

	require.Len(t, file1.Comments(), 1)
	c := file1.Comments()[0]
	assert.Equal(t, 1, c.Line())
	assert.Equal(t, "Format comment", c.Message())
	assert.Equal(t, SeverityError, c.Severity())
	assert.Empty(t, file2.Comments())
	assert.Equal(t, 1, r.TotalViolationCount())
	assert.Equal(t, 1, r.ViolationCount(SeverityError))
	assert.Equal(t, []commentCall{{"checkstyle", SeverityError, "Violation message"}}, formatter.calls)
}

func TestReview_AddPreservesOrder(t *testing.T) {
	file1, file2, _, r := setUp()
	formatter := &echoFormatter{}
	r = New([]File{file1, file2}, formatter)

	r.Add("lint", &Result{Violations: []Violation{
		{Filename: "file2", Line: 9, Message: "first", Severity: SeverityInfo},
		{Filename: "file1", Line: 4, Message: "second", Severity: SeverityWarning},
		{Filename: "file2", Line: 2, Message: "third", Severity: SeverityError},
		{Filename: "file2", Line: 2, Message: "third", Severity: SeverityError},
	}})

	require.Len(t, file2.comments, 3)
	assert.Equal(t, "lint/first", file2.comments[0].Message())
	assert.Equal(t, "lint/third", file2.comments[1].Message())
	assert.Equal(t, "lint/third", file2.comments[2].Message())
	require.Len(t, file1.comments, 1)
	assert.Equal(t, 4, file1.comments[0].Line())
}

type echoFormatter struct{}

func (echoFormatter) FormatProblem(source, problem string) string { return source + "/" + problem }
func (echoFormatter) FormatComment(source string, _ Severity, message string) string {
	return source + "/" + message
}

func TestReview_UnmatchedViolationIsDropped(t *testing.T) {
	file1, file2, formatter, _ := setUp()
	obs := newRecordingObserver()
	r := New([]File{file1, file2}, formatter, WithObserver(obs))

	r.Add("checkstyle", &Result{Violations: []Violation{
		{Filename: "missing.go", Line: 3, Message: "gone", Severity: SeverityError},
	}})

	assert.Empty(t, file1.Comments())
	assert.Empty(t, file2.Comments())
	assert.Equal(t, 0, r.TotalViolationCount())
	assert.Equal(t, 1, r.DroppedViolationCount())
	require.Len(t, obs.dropped, 1)
	assert.Equal(t, "missing.go", obs.dropped[0].Filename)
	assert.Empty(t, formatter.calls, "dropped violations are not formatted")
}

func TestReview_UnmatchedDoesNotAffectOthers(t *testing.T) {
	file1, file2, formatter, _ := setUp()
	obs := newRecordingObserver()
	r := New([]File{file1, file2}, formatter, WithObserver(obs))

	r.Add("vet", &Result{Violations: []Violation{
		{Filename: "nope", Line: 1, Severity: SeverityError},
		{Filename: "file2", Line: 5, Message: "kept", Severity: SeverityWarning},
	}})

	assert.Empty(t, file1.Comments())
	require.Len(t, file2.Comments(), 1)
	assert.Equal(t, 5, file2.Comments()[0].Line())
	assert.Equal(t, 1, obs.added[SeverityWarning])
	assert.Len(t, obs.dropped, 1)
}

func TestReview_AddNilResult(t *testing.T) {
	_, _, _, r := setUp()
	assert.NotPanics(t, func() { r.Add("x", nil) })
	assert.Equal(t, 0, r.TotalViolationCount())
}

func TestReview_EmptyFileList(t *testing.T) {
	r := New(nil, &stubFormatter{})

	r.Add("lint", &Result{Violations: []Violation{{Filename: "a.go", Line: 1}}})
	r.AddProblem("lint", "exit status 2")

	assert.Equal(t, 0, r.TotalViolationCount())
	assert.Equal(t, 1, r.DroppedViolationCount())
	assert.Equal(t, []string{"lint: exit status 2"}, r.Problems())
}

func TestReview_DuplicateFilenameFirstWins(t *testing.T) {
	a := NewFile("dup.go")
	b := NewFile("dup.go")
	r := New([]File{a, b}, echoFormatter{})

	r.Add("lint", &Result{Violations: []Violation{{Filename: "dup.go", Line: 1, Severity: SeverityInfo}}})

	assert.Len(t, a.Comments(), 1)
	assert.Empty(t, b.Comments())
}

func TestReview_ObserverSeesProblems(t *testing.T) {
	obs := newRecordingObserver()
	r := New(nil, echoFormatter{}, WithObserver(obs))
	r.AddProblem("pmd", "failed")
	assert.Equal(t, []string{"pmd"}, obs.problems)
}

func TestReview_FileLookup(t *testing.T) {
	_, _, _, r := setUp()

	f, ok := r.File("file2")
	require.True(t, ok)
	assert.Equal(t, "file2", f.ReviewFilename())

	_, ok = r.File("file3")
	assert.False(t, ok)
	assert.Equal(t, []string{"file1", "file2"}, r.Filenames())
	assert.Len(t, r.Files(), 2)
}

func TestReview_MessagesAndScores(t *testing.T) {
	_, _, _, r := setUp()
	r.AddMessage("2 analyzers ran")
	scores := map[string]int{"Code-Review": -1}
	r.SetScores(scores)
	scores["Code-Review"] = 1

	assert.Equal(t, []string{"2 analyzers ran"}, r.Messages())
	assert.Equal(t, map[string]int{"Code-Review": -1}, r.Scores())
}
