// Package report contains the reference reporters: "nested" indents the
// tree as it is traversed, "progress" prints one terse symbol per example
// and keeps the details for the end. Both are pure consumers of the
// runner's event stream and hold no state the runner depends on.
package report

import (
	"fmt"
	"io"

	"github.com/roach88/quickspec/internal/runner"
	"github.com/roach88/quickspec/internal/spec"
)

// Formats accepted by the CLI's --format flag.
const (
	FormatNested   = "nested"
	FormatProgress = "progress"
)

// ValidFormats lists the accepted reporter formats.
var ValidFormats = []string{FormatNested, FormatProgress}

// New returns the reporter for a format name, or an error for an unknown
// one.
func New(format string, w io.Writer) (runner.Reporter, error) {
	switch format {
	case FormatNested:
		return NewNested(w), nil
	case FormatProgress:
		return NewProgress(w), nil
	default:
		return nil, fmt.Errorf("unknown format %q: must be one of %v", format, ValidFormats)
	}
}

// Nested writes one line per context and example, indented by depth.
type Nested struct {
	w io.Writer
}

// NewNested creates a nested reporter writing to w.
func NewNested(w io.Writer) *Nested {
	return &Nested{w: w}
}

// ContextEntered prints the context name at its depth.
func (n *Nested) ContextEntered(name string, depth int) {
	fmt.Fprintf(n.w, "%s%s\n", indent(depth), name)
}

// ContextExited prints nothing; the indentation already closes the group.
func (n *Nested) ContextExited(name string, depth int) {}

// ExampleFinished prints one line per example with a status marker.
func (n *Nested) ExampleFinished(name string, depth int, res runner.ExampleResult) {
	pad := indent(depth)
	switch res.Status {
	case runner.Passed:
		fmt.Fprintf(n.w, "%s✓ %s\n", pad, name)
	case runner.Pending:
		fmt.Fprintf(n.w, "%s• %s (pending)\n", pad, name)
	case runner.Failed:
		fmt.Fprintf(n.w, "%s✗ %s: %s%s\n", pad, name, res.Message, location(res))
	case runner.Errored:
		fmt.Fprintf(n.w, "%s! %s: %s%s\n", pad, name, res.Message, location(res))
	}
}

// ContextHookFailed prints the framework-level error inside its context.
func (n *Nested) ContextHookFailed(name string, depth int, kind spec.HookKind, err error) {
	fmt.Fprintf(n.w, "%s! %s hook failed: %v\n", indent(depth+1), kind, err)
}

// RunFinished prints the summary line.
func (n *Nested) RunFinished(sum runner.Summary) {
	fmt.Fprintln(n.w)
	writeSummary(n.w, sum)
}

func indent(depth int) string {
	const step = "  "
	s := ""
	for i := 0; i < depth; i++ {
		s += step
	}
	return s
}

func location(res runner.ExampleResult) string {
	if res.Location == "" {
		return ""
	}
	return fmt.Sprintf(" (%s)", res.Location)
}

func writeSummary(w io.Writer, sum runner.Summary) {
	fmt.Fprintf(w, "%d examples: %d passed, %d failed, %d pending, %d errored\n",
		sum.Total(), sum.Passed, sum.Failed, sum.Pending, sum.Errored)
	if sum.HookFailures > 0 {
		fmt.Fprintf(w, "%d hook failure(s)\n", sum.HookFailures)
	}
}
