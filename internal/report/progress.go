package report

import (
	"fmt"
	"io"

	"github.com/roach88/quickspec/internal/runner"
	"github.com/roach88/quickspec/internal/spec"
)

// Progress prints one symbol per example as it finishes: "." passed,
// "F" failed, "*" pending, "E" errored. Failure details are buffered and
// printed before the summary.
type Progress struct {
	w        io.Writer
	failures []string
}

// NewProgress creates a progress reporter writing to w.
func NewProgress(w io.Writer) *Progress {
	return &Progress{w: w}
}

// ContextEntered prints nothing; progress output is flat.
func (p *Progress) ContextEntered(name string, depth int) {}

// ContextExited prints nothing.
func (p *Progress) ContextExited(name string, depth int) {}

// ExampleFinished prints the status symbol and buffers failure details.
func (p *Progress) ExampleFinished(name string, depth int, res runner.ExampleResult) {
	switch res.Status {
	case runner.Passed:
		fmt.Fprint(p.w, ".")
	case runner.Pending:
		fmt.Fprint(p.w, "*")
	case runner.Failed:
		fmt.Fprint(p.w, "F")
		p.failures = append(p.failures, fmt.Sprintf("%s: %s%s", name, res.Message, location(res)))
	case runner.Errored:
		fmt.Fprint(p.w, "E")
		p.failures = append(p.failures, fmt.Sprintf("%s: %s%s", name, res.Message, location(res)))
	}
}

// ContextHookFailed buffers the framework-level error for the end of the
// run.
func (p *Progress) ContextHookFailed(name string, depth int, kind spec.HookKind, err error) {
	p.failures = append(p.failures, fmt.Sprintf("%s: %s hook failed: %v", name, kind, err))
}

// RunFinished prints buffered failure details and the summary line.
func (p *Progress) RunFinished(sum runner.Summary) {
	fmt.Fprintln(p.w)
	if len(p.failures) > 0 {
		fmt.Fprintln(p.w)
		fmt.Fprintln(p.w, "Failures:")
		for _, f := range p.failures {
			fmt.Fprintf(p.w, "  %s\n", f)
		}
	}
	fmt.Fprintln(p.w)
	writeSummary(p.w, sum)
}
