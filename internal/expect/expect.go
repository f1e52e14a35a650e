// Package expect evaluates the assertions used inside example bodies.
//
// Every assertion has a positive and a negated variant; negation inverts
// the boolean outcome of the same underlying check. A violated assertion
// panics with a *Failure, which the runner recovers and turns into a
// Failed result. Any other panic escaping an example body is an Errored
// result, so the two never collapse into one another.
package expect

import (
	"fmt"
	"reflect"
	"runtime"
)

// Failure is the structured signal raised when an assertion is violated.
// It is distinct from arbitrary runtime panics: the runner reports a
// *Failure as Failed and everything else as Errored.
type Failure struct {
	// Message describes the violated expectation.
	Message string

	// Location is the file:line of the assertion call site.
	Location string
}

// Error implements the error interface.
func (f *Failure) Error() string {
	if f.Location != "" {
		return fmt.Sprintf("%s: %s", f.Location, f.Message)
	}
	return f.Message
}

// AsFailure reports whether a recovered panic value is an assertion
// failure. Used by the runner to classify example outcomes.
func AsFailure(v any) (*Failure, bool) {
	f, ok := v.(*Failure)
	return f, ok
}

// Fail raises an assertion failure with the given message, attributed to
// the caller. Exported so higher layers (the property engine) can raise
// failures that the runner classifies the same way.
func Fail(message string) {
	panic(&Failure{Message: message, Location: callerLocation(2)})
}

// FailAt raises an assertion failure attributed to an explicit location.
// Layers that discover failures away from the user's call site (the
// property engine) capture their own caller and pass it through here.
func FailAt(location, message string) {
	panic(&Failure{Message: message, Location: location})
}

// fail raises a failure attributed to the assertion's own caller, two
// frames up from here.
func fail(format string, args ...any) {
	panic(&Failure{Message: fmt.Sprintf(format, args...), Location: callerLocation(3)})
}

// callerLocation returns file:line for the frame skip levels above the
// caller of callerLocation.
func callerLocation(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d", file, line)
}

// Equal asserts got == want.
func Equal[T comparable](got, want T) {
	if got != want {
		fail("expected %v to equal %v", got, want)
	}
}

// NotEqual asserts got != want.
func NotEqual[T comparable](got, want T) {
	if got == want {
		fail("expected %v not to equal %v", got, want)
	}
}

// EqualFunc asserts equality under a caller-supplied equality function.
// This is the escape hatch for types that are not comparable or need a
// domain-specific notion of equality.
func EqualFunc[T any](got, want T, eq func(a, b T) bool) {
	if !eq(got, want) {
		fail("expected %v to equal %v", got, want)
	}
}

// DeepEqual asserts reflect.DeepEqual(got, want). Covers slices, maps and
// nested structures without a hand-written equality function.
func DeepEqual[T any](got, want T) {
	if !reflect.DeepEqual(got, want) {
		fail("expected %v to deep-equal %v", got, want)
	}
}

// NotDeepEqual asserts !reflect.DeepEqual(got, want).
func NotDeepEqual[T any](got, want T) {
	if reflect.DeepEqual(got, want) {
		fail("expected %v not to deep-equal %v", got, want)
	}
}

// Be asserts that the value satisfies the predicate.
func Be[T any](v T, pred func(T) bool) {
	if !pred(v) {
		fail("expected %v to satisfy predicate", v)
	}
}

// NotBe asserts that the value does not satisfy the predicate.
func NotBe[T any](v T, pred func(T) bool) {
	if pred(v) {
		fail("expected %v not to satisfy predicate", v)
	}
}

// Match asserts that the value matches a pattern predicate. The predicate
// is a black box supplied by the caller; this layer only defines the
// pass/fail and negation semantics around it.
func Match[T any](v T, pattern func(T) bool) {
	if !pattern(v) {
		fail("expected %v to match pattern", v)
	}
}

// NotMatch asserts that the value does not match a pattern predicate.
func NotMatch[T any](v T, pattern func(T) bool) {
	if pattern(v) {
		fail("expected %v not to match pattern", v)
	}
}

// Panics asserts that invoking f panics with any value.
func Panics(f func()) {
	if _, panicked := capture(f); !panicked {
		fail("expected panic, but none occurred")
	}
}

// NotPanics asserts that invoking f does not panic.
func NotPanics(f func()) {
	if recovered, panicked := capture(f); panicked {
		fail("expected no panic, but got %v", recovered)
	}
}

// PanicsWith asserts that invoking f panics with exactly the given value.
// A panic with a different value is a failure, not a pass.
func PanicsWith(want any, f func()) {
	recovered, panicked := capture(f)
	if !panicked {
		fail("expected panic with %v, but none occurred", want)
		return
	}
	if !panicValueEqual(recovered, want) {
		fail("expected panic with %v, but got %v", want, recovered)
	}
}

// NotPanicsWith asserts that invoking f does not panic with the given
// value. Not panicking at all, or panicking with a different value, both
// pass.
func NotPanicsWith(want any, f func()) {
	recovered, panicked := capture(f)
	if panicked && panicValueEqual(recovered, want) {
		fail("expected no panic with %v, but got one", want)
	}
}

// capture invokes f and reports the recovered value, if any. A nil panic
// value still counts as panicked.
func capture(f func()) (recovered any, panicked bool) {
	defer func() {
		if r := recover(); r != nil || panicked {
			recovered = r
		}
	}()
	panicked = true
	f()
	panicked = false
	return
}

// panicValueEqual compares a recovered panic value against an expected
// one. Errors compare by message so sentinel errors survive the trip
// through panic/recover; everything else falls back to DeepEqual.
func panicValueEqual(got, want any) bool {
	if gotErr, ok := got.(error); ok {
		if wantErr, ok := want.(error); ok {
			return gotErr.Error() == wantErr.Error()
		}
	}
	return reflect.DeepEqual(got, want)
}
