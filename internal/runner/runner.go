// Package runner walks a specification tree, runs hooks and example
// bodies with per-example failure isolation, and emits an ordered event
// stream to a Reporter.
//
// Event ordering is a durable contract for formatters: context-entered,
// the context's children in insertion order (each example contributing
// exactly one example-finished event), context-exited, and a single
// run-finished event at the end of the run.
package runner

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/roach88/quickspec/internal/expect"
	"github.com/roach88/quickspec/internal/spec"
)

// Reporter consumes the run's event stream. Implementations are pure
// consumers; the runner never reads anything back.
type Reporter interface {
	// ContextEntered is emitted before any of the context's children.
	// Depth is 0 for top-level contexts.
	ContextEntered(name string, depth int)

	// ExampleFinished is emitted exactly once per example, in traversal
	// order.
	ExampleFinished(name string, depth int, result ExampleResult)

	// ContextExited is emitted after all of the context's children.
	ContextExited(name string, depth int)

	// ContextHookFailed is emitted when a before-all or after-all action
	// fails. The failure belongs to the context, not to any example.
	ContextHookFailed(name string, depth int, kind spec.HookKind, err error)

	// RunFinished is emitted once, after the whole tree.
	RunFinished(summary Summary)
}

// Runner executes specification trees sequentially on the calling
// goroutine. Ordering between examples is total and deterministic for a
// fixed tree.
type Runner struct {
	reporter Reporter
	logger   *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used for secondary failures (after-each and
// after-all actions failing behind an already-determined result).
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// New creates a Runner emitting to the given reporter. Logs are discarded
// unless WithLogger is supplied.
func New(reporter Reporter, opts ...Option) *Runner {
	r := &Runner{
		reporter: reporter,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the tree rooted at root and returns the run summary. The
// root container itself emits no events; its children are the top-level
// contexts.
func (r *Runner) Run(root *spec.Context) Summary {
	sum := Summary{RunID: uuid.Must(uuid.NewV7()).String()}
	r.logger.Info("run started", "run_id", sum.RunID)

	r.runContext(root, 0, &sum)

	r.reporter.RunFinished(sum)
	r.logger.Info("run finished",
		"run_id", sum.RunID,
		"passed", sum.Passed,
		"failed", sum.Failed,
		"pending", sum.Pending,
		"errored", sum.Errored,
		"hook_failures", sum.HookFailures,
	)
	return sum
}

// runContext executes one context: before-all once if the subtree has any
// examples, the children in insertion order, after-all once at the end.
// The unnamed root is treated as an invisible container.
func (r *Runner) runContext(c *spec.Context, depth int, sum *Summary) {
	visible := c.Name() != ""
	childDepth := depth
	if visible {
		r.reporter.ContextEntered(c.Name(), depth)
		childDepth = depth + 1
	}

	hasExamples := c.NumExamples() > 0

	if hasExamples {
		if err := r.runHookList(c.Hooks(spec.BeforeAll)); err != nil {
			// A failed before-all aborts this context only: every descendant
			// example is reported as errored, siblings are untouched.
			sum.HookFailures++
			r.reporter.ContextHookFailed(c.Name(), depth, spec.BeforeAll, err)
			reason := fmt.Sprintf("before-all hook failed: %v", err)
			r.abortChildren(c, childDepth, reason, sum)
			if visible {
				r.reporter.ContextExited(c.Name(), depth)
			}
			return
		}
	}

	for _, child := range c.Children() {
		switch node := child.(type) {
		case *spec.Context:
			r.runContext(node, childDepth, sum)
		case *spec.Example:
			res := r.runExample(node)
			sum.count(res)
			r.reporter.ExampleFinished(node.Name(), childDepth, res)
		}
	}

	if hasExamples {
		if err := r.runHookList(c.Hooks(spec.AfterAll)); err != nil {
			sum.HookFailures++
			r.reporter.ContextHookFailed(c.Name(), depth, spec.AfterAll, err)
		}
	}

	if visible {
		r.reporter.ContextExited(c.Name(), depth)
	}
}

// abortChildren reports every example under c as errored without running
// any hooks or bodies, keeping the event stream's shape intact.
func (r *Runner) abortChildren(c *spec.Context, depth int, reason string, sum *Summary) {
	for _, child := range c.Children() {
		switch node := child.(type) {
		case *spec.Context:
			r.reporter.ContextEntered(node.Name(), depth)
			r.abortChildren(node, depth+1, reason, sum)
			r.reporter.ContextExited(node.Name(), depth)
		case *spec.Example:
			res := ExampleResult{Status: Errored, Message: reason}
			sum.count(res)
			r.reporter.ExampleFinished(node.Name(), depth, res)
		}
	}
}

// runExample executes one example with its full hook chain: ancestor
// before-each actions outermost first, the body, then after-each actions
// innermost first. The after-each chain always runs; its failures never
// suppress each other, and only the first failure of the whole execution
// determines the reported result.
func (r *Runner) runExample(ex *spec.Example) ExampleResult {
	chain := ex.Parent().Ancestry()

	res := r.runBeforeEach(chain)
	if res == nil {
		body := r.invokeBody(ex)
		res = &body
	}

	for i := len(chain) - 1; i >= 0; i-- {
		for _, action := range chain[i].Hooks(spec.AfterEach) {
			err := r.runHook(action)
			if err == nil {
				continue
			}
			if res.Status == Failed || res.Status == Errored {
				// First failure wins; later ones are logged, not substituted.
				r.logger.Warn("after-each hook failed after earlier failure",
					"context", chain[i].Name(),
					"example", ex.Name(),
					"error", err,
				)
				continue
			}
			*res = ExampleResult{
				Status:  Errored,
				Message: fmt.Sprintf("after-each hook failed: %v", err),
			}
		}
	}

	return *res
}

// runBeforeEach runs the before-each chain outer to inner. It returns a
// non-nil errored result when an action fails; the body is then skipped
// but the after-each chain still runs.
func (r *Runner) runBeforeEach(chain []*spec.Context) *ExampleResult {
	for _, c := range chain {
		for _, action := range c.Hooks(spec.BeforeEach) {
			if err := r.runHook(action); err != nil {
				return &ExampleResult{
					Status:  Errored,
					Message: fmt.Sprintf("before-each hook failed: %v", err),
				}
			}
		}
	}
	return nil
}

// invokeBody runs the example body, classifying an assertion failure as
// Failed and any other panic as Errored.
func (r *Runner) invokeBody(ex *spec.Example) (res ExampleResult) {
	if ex.IsPending() {
		return ExampleResult{Status: Pending}
	}

	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		if f, ok := expect.AsFailure(rec); ok {
			res = ExampleResult{Status: Failed, Message: f.Message, Location: f.Location}
			return
		}
		res = ExampleResult{Status: Errored, Message: describePanic(rec)}
	}()

	ex.Body()()
	return ExampleResult{Status: Passed}
}

// runHook invokes a single hook action, converting panics into errors. An
// assertion failure inside a hook is a hook failure like any other.
func (r *Runner) runHook(action func()) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if f, ok := expect.AsFailure(rec); ok {
				err = f
				return
			}
			err = fmt.Errorf("%s", describePanic(rec))
		}
	}()
	action()
	return nil
}

// runHookList invokes actions in registration order, stopping at the
// first failure.
func (r *Runner) runHookList(actions []func()) error {
	for _, action := range actions {
		if err := r.runHook(action); err != nil {
			return err
		}
	}
	return nil
}

// describePanic renders a recovered panic value for a result message.
func describePanic(rec any) string {
	if err, ok := rec.(error); ok {
		return fmt.Sprintf("panic: %v", err)
	}
	return fmt.Sprintf("panic: %v", rec)
}
