package report

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/quickspec/internal/expect"
	"github.com/roach88/quickspec/internal/runner"
	"github.com/roach88/quickspec/internal/spec"
)

// mixedTree builds a tree exercising every example status. Failures carry
// a fixed location so the rendered bytes are stable across machines.
func mixedTree() *spec.Context {
	root := spec.NewRoot()
	calc := root.Describe("calculator")

	add := calc.Describe("addition")
	add.It("adds small integers", func() {})
	add.It("adds negatives", func() {
		panic(&expect.Failure{
			Message:  "expected -1 to equal 1",
			Location: "calc_spec.go:12",
		})
	})
	add.Pending("handles overflow")

	div := calc.Describe("division")
	div.It("divides by zero", func() {
		panic("runtime error: integer divide by zero")
	})
	div.It("divides evenly", func() {})

	return root
}

func render(t *testing.T, format string, root *spec.Context) []byte {
	t.Helper()
	var buf bytes.Buffer
	rep, err := New(format, &buf)
	require.NoError(t, err)
	runner.New(rep).Run(root)
	return buf.Bytes()
}

func golden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestNested_MixedStatuses(t *testing.T) {
	golden(t).Assert(t, "nested_mixed", render(t, FormatNested, mixedTree()))
}

func TestProgress_MixedStatuses(t *testing.T) {
	golden(t).Assert(t, "progress_mixed", render(t, FormatProgress, mixedTree()))
}

func TestNested_AllPassing(t *testing.T) {
	root := spec.NewRoot()
	ctx := root.Describe("strings")
	ctx.It("concatenates", func() {})
	ctx.It("compares", func() {})

	golden(t).Assert(t, "nested_passing", render(t, FormatNested, root))
}

func TestProgress_AllPassing(t *testing.T) {
	root := spec.NewRoot()
	ctx := root.Describe("strings")
	ctx.It("concatenates", func() {})
	ctx.It("compares", func() {})

	golden(t).Assert(t, "progress_passing", render(t, FormatProgress, root))
}

func TestNested_HookFailure(t *testing.T) {
	root := spec.NewRoot()
	ctx := root.Describe("teardown")
	ctx.AfterAllHook(func() { panic("cleanup failed") })
	ctx.It("works", func() {})

	golden(t).Assert(t, "nested_hook_failure", render(t, FormatNested, root))
}

func TestProgress_BeforeAllFailure(t *testing.T) {
	root := spec.NewRoot()
	broken := root.Describe("broken")
	broken.BeforeAllHook(func() { panic("setup failed") })
	broken.It("never runs", func() {})

	golden(t).Assert(t, "progress_before_all_failure", render(t, FormatProgress, root))
}

func TestNew_RejectsUnknownFormat(t *testing.T) {
	rep, err := New("tap", &bytes.Buffer{})
	assert.Nil(t, rep)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "tap"`)
}

func TestNew_AcceptsAllValidFormats(t *testing.T) {
	for _, format := range ValidFormats {
		rep, err := New(format, &bytes.Buffer{})
		require.NoError(t, err, format)
		assert.NotNil(t, rep, format)
	}
}
