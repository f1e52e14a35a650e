// Package prop implements the randomized property-testing engine:
// "for all samples drawn from a generator, an optional precondition
// filters the sample and a conclusion predicate must hold".
//
// The sampling loop has three outcomes per draw: the precondition rejects
// the sample (discarded, redrawn), the conclusion holds (accepted), or the
// conclusion fails (the loop stops and reports the falsifying sample
// as-is; no shrinking is attempted). A finite discard budget guarantees
// termination even for preconditions that almost never hold: exhausting it
// is an inconclusive failure, never a pass.
package prop

import (
	"fmt"
	"runtime"

	"github.com/roach88/quickspec/internal/expect"
	"github.com/roach88/quickspec/internal/gen"
)

const (
	// DefaultSamples is the number of accepted samples a check evaluates
	// when the caller does not say otherwise.
	DefaultSamples = 100

	// DefaultDiscardFactor sizes the discard budget relative to the sample
	// count: a check tolerates factor*samples rejected draws before giving
	// up as inconclusive.
	DefaultDiscardFactor = 10
)

// Params tunes a property check.
type Params struct {
	// Samples is the number of accepted samples to evaluate. Zero or
	// negative means DefaultSamples.
	Samples int

	// DiscardBudget caps precondition rejections. Zero or negative means
	// DefaultDiscardFactor * Samples.
	DiscardBudget int
}

// DefaultParams returns the standard 100-sample configuration.
func DefaultParams() *Params {
	return &Params{Samples: DefaultSamples}
}

func (p *Params) normalized() (samples, budget int) {
	samples = DefaultSamples
	if p != nil && p.Samples > 0 {
		samples = p.Samples
	}
	budget = DefaultDiscardFactor * samples
	if p != nil && p.DiscardBudget > 0 {
		budget = p.DiscardBudget
	}
	return samples, budget
}

// Status classifies the outcome of a property check.
type Status int

const (
	// Passed means every accepted sample satisfied the conclusion.
	Passed Status = iota

	// Falsified means a sample satisfied the precondition but not the
	// conclusion. The sample is reported in Result.Counterexample.
	Falsified

	// Exhausted means the discard budget ran out before enough samples
	// were accepted. This is inconclusive, distinct from Falsified.
	Exhausted
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Passed:
		return "passed"
	case Falsified:
		return "falsified"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Result is the outcome of one property check.
type Result struct {
	// Status is the overall outcome.
	Status Status

	// Samples is the number of accepted samples that were evaluated.
	Samples int

	// Discarded is the number of samples rejected by the precondition.
	Discarded int

	// Counterexample is the rendered falsifying sample, set only when
	// Status is Falsified.
	Counterexample string
}

// Property binds a generator to a conclusion predicate, with an optional
// precondition installed via When.
type Property[T any] struct {
	gen  gen.Generator[T]
	pre  func(T) bool
	then func(T) bool
}

// ForAll builds a property over one generator.
func ForAll[T any](g gen.Generator[T], then func(T) bool) *Property[T] {
	return &Property[T]{gen: g, then: then}
}

// When installs a precondition. Samples failing it are discarded and
// redrawn; they count toward the discard budget, not the sample count.
func (p *Property[T]) When(pre func(T) bool) *Property[T] {
	p.pre = pre
	return p
}

// Check runs the sampling loop. A nil params means DefaultParams.
func (p *Property[T]) Check(params *Params) Result {
	samples, budget := params.normalized()
	res := Result{Status: Passed}
	for res.Samples < samples {
		v := p.gen()
		if p.pre != nil && !p.pre(v) {
			res.Discarded++
			if res.Discarded > budget {
				res.Status = Exhausted
				return res
			}
			continue
		}
		res.Samples++
		if !p.then(v) {
			res.Status = Falsified
			res.Counterexample = fmt.Sprintf("%v", v)
			return res
		}
	}
	return res
}

// Must runs the check and raises an assertion failure unless it passes,
// so a property drops into an example body like any other expectation.
func (p *Property[T]) Must(params *Params) {
	mustPass(p.Check(params), callerLocation())
}

// Property2 is a property over a pair of generators.
type Property2[A, B any] struct {
	inner *Property[pair[A, B]]
}

type pair[A, B any] struct {
	a A
	b B
}

func (p pair[A, B]) String() string {
	return fmt.Sprintf("(%v, %v)", p.a, p.b)
}

// ForAll2 builds a property over two generators; each draw samples both.
func ForAll2[A, B any](ga gen.Generator[A], gb gen.Generator[B], then func(A, B) bool) *Property2[A, B] {
	return &Property2[A, B]{
		inner: ForAll(func() pair[A, B] {
			return pair[A, B]{a: ga(), b: gb()}
		}, func(v pair[A, B]) bool {
			return then(v.a, v.b)
		}),
	}
}

// When installs a precondition over the pair.
func (p *Property2[A, B]) When(pre func(A, B) bool) *Property2[A, B] {
	p.inner.When(func(v pair[A, B]) bool { return pre(v.a, v.b) })
	return p
}

// Check runs the sampling loop.
func (p *Property2[A, B]) Check(params *Params) Result {
	return p.inner.Check(params)
}

// Must runs the check and raises an assertion failure unless it passes.
func (p *Property2[A, B]) Must(params *Params) {
	mustPass(p.inner.Check(params), callerLocation())
}

// Property3 is a property over three generators.
type Property3[A, B, C any] struct {
	inner *Property[triple[A, B, C]]
}

type triple[A, B, C any] struct {
	a A
	b B
	c C
}

func (t triple[A, B, C]) String() string {
	return fmt.Sprintf("(%v, %v, %v)", t.a, t.b, t.c)
}

// ForAll3 builds a property over three generators.
func ForAll3[A, B, C any](ga gen.Generator[A], gb gen.Generator[B], gc gen.Generator[C], then func(A, B, C) bool) *Property3[A, B, C] {
	return &Property3[A, B, C]{
		inner: ForAll(func() triple[A, B, C] {
			return triple[A, B, C]{a: ga(), b: gb(), c: gc()}
		}, func(v triple[A, B, C]) bool {
			return then(v.a, v.b, v.c)
		}),
	}
}

// When installs a precondition over the triple.
func (p *Property3[A, B, C]) When(pre func(A, B, C) bool) *Property3[A, B, C] {
	p.inner.When(func(v triple[A, B, C]) bool { return pre(v.a, v.b, v.c) })
	return p
}

// Check runs the sampling loop.
func (p *Property3[A, B, C]) Check(params *Params) Result {
	return p.inner.Check(params)
}

// Must runs the check and raises an assertion failure unless it passes.
func (p *Property3[A, B, C]) Must(params *Params) {
	mustPass(p.inner.Check(params), callerLocation())
}

// mustPass translates a non-passing result into an assertion failure
// attributed to the user's call site.
func mustPass(res Result, location string) {
	switch res.Status {
	case Falsified:
		expect.FailAt(location, fmt.Sprintf(
			"property falsified after %d sample(s): counterexample %s",
			res.Samples, res.Counterexample))
	case Exhausted:
		expect.FailAt(location, fmt.Sprintf(
			"property inconclusive: discard budget exhausted after %d rejected sample(s), only %d accepted",
			res.Discarded, res.Samples))
	}
}

// callerLocation returns file:line of the Must caller, two frames up.
func callerLocation() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d", file, line)
}
