package prop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/quickspec/internal/expect"
	"github.com/roach88/quickspec/internal/gen"
)

func TestCheck_PassesWhenConclusionHolds(t *testing.T) {
	r := gen.NewSource(1)

	res := ForAll(gen.IntN(r, 100), func(x int) bool {
		return x >= 0 && x < 100
	}).Check(nil)

	assert.Equal(t, Passed, res.Status)
	assert.Equal(t, DefaultSamples, res.Samples)
	assert.Equal(t, 0, res.Discarded)
	assert.Empty(t, res.Counterexample)
}

func TestCheck_PreconditionCountsAcceptedSamplesOnly(t *testing.T) {
	r := gen.NewSource(1)

	// forall 10 bool b . b = true -> b = true: exactly 10 accepted samples,
	// never falsified, roughly half of all draws discarded.
	evaluated := 0
	res := ForAll(gen.Bool(r), func(b bool) bool {
		evaluated++
		return b == true
	}).When(func(b bool) bool {
		return b == true
	}).Check(&Params{Samples: 10})

	assert.Equal(t, Passed, res.Status)
	assert.Equal(t, 10, res.Samples)
	assert.Equal(t, 10, evaluated)
	assert.Less(t, res.Discarded, 10*DefaultDiscardFactor, "budget must not be reached")
}

func TestCheck_ReverseRoundTrip(t *testing.T) {
	r := gen.NewSource(1)
	lists := gen.SliceOf(r, gen.IntN(r, 1000))

	reverse := func(l []int) []int {
		out := make([]int, len(l))
		for i, v := range l {
			out[len(l)-1-i] = v
		}
		return out
	}

	res := ForAll(lists, func(l []int) bool {
		rr := reverse(reverse(l))
		if len(rr) != len(l) {
			return false
		}
		for i := range l {
			if rr[i] != l[i] {
				return false
			}
		}
		return true
	}).Check(nil)

	assert.Equal(t, Passed, res.Status)
	assert.Equal(t, 100, res.Samples)
}

func TestCheck_StopsAtFirstCounterexample(t *testing.T) {
	evaluated := 0
	g := func() int { evaluated++; return evaluated }

	res := ForAll(g, func(x int) bool { return x < 5 }).Check(nil)

	assert.Equal(t, Falsified, res.Status)
	assert.Equal(t, 5, res.Samples, "stops on the falsifying sample")
	assert.Equal(t, 5, evaluated, "no draws after the counterexample")
	assert.Equal(t, "5", res.Counterexample)
}

func TestCheck_ExhaustsDiscardBudget(t *testing.T) {
	r := gen.NewSource(1)

	res := ForAll(gen.IntN(r, 10), func(int) bool {
		t.Fatal("conclusion must never run when the precondition never holds")
		return false
	}).When(func(int) bool {
		return false
	}).Check(&Params{Samples: 5, DiscardBudget: 30})

	assert.Equal(t, Exhausted, res.Status)
	assert.Equal(t, 0, res.Samples)
	assert.Equal(t, 31, res.Discarded, "one past the budget ends the loop")
}

func TestCheck_NilAndZeroParamsUseDefaults(t *testing.T) {
	samples, budget := (*Params)(nil).normalized()
	assert.Equal(t, DefaultSamples, samples)
	assert.Equal(t, DefaultSamples*DefaultDiscardFactor, budget)

	samples, budget = (&Params{}).normalized()
	assert.Equal(t, DefaultSamples, samples)
	assert.Equal(t, DefaultSamples*DefaultDiscardFactor, budget)

	samples, budget = (&Params{Samples: 7}).normalized()
	assert.Equal(t, 7, samples)
	assert.Equal(t, 70, budget)
}

func TestMust_RaisesAssertionFailureOnFalsification(t *testing.T) {
	failure := capturePropFailure(t, func() {
		ForAll(gen.Const(3), func(x int) bool { return x != 3 }).Must(nil)
	})
	require.NotNil(t, failure)
	assert.Contains(t, failure.Message, "property falsified after 1 sample(s)")
	assert.Contains(t, failure.Message, "counterexample 3")
	assert.Contains(t, failure.Location, "prop_test.go")
}

func TestMust_RaisesDistinctFailureOnExhaustion(t *testing.T) {
	failure := capturePropFailure(t, func() {
		ForAll(gen.Const(1), func(int) bool { return true }).
			When(func(int) bool { return false }).
			Must(&Params{Samples: 2, DiscardBudget: 4})
	})
	require.NotNil(t, failure)
	assert.Contains(t, failure.Message, "property inconclusive")
	assert.NotContains(t, failure.Message, "falsified")
}

func TestMust_SilentOnPass(t *testing.T) {
	assert.NotPanics(t, func() {
		ForAll(gen.Const(1), func(x int) bool { return x == 1 }).Must(&Params{Samples: 5})
	})
}

func TestForAll2_SamplesBothGenerators(t *testing.T) {
	r := gen.NewSource(1)

	// Addition is commutative.
	res := ForAll2(gen.IntN(r, 1000), gen.IntN(r, 1000), func(a, b int) bool {
		return a+b == b+a
	}).Check(nil)
	assert.Equal(t, Passed, res.Status)

	// Counterexamples render as a pair.
	res = ForAll2(gen.Const(1), gen.Const(2), func(a, b int) bool {
		return a > b
	}).Check(nil)
	assert.Equal(t, Falsified, res.Status)
	assert.Equal(t, "(1, 2)", res.Counterexample)
}

func TestForAll2_WhenFiltersPairs(t *testing.T) {
	r := gen.NewSource(1)

	res := ForAll2(gen.IntN(r, 20), gen.IntN(r, 20), func(a, b int) bool {
		return a/b >= 0
	}).When(func(a, b int) bool {
		return b != 0
	}).Check(&Params{Samples: 50})

	assert.Equal(t, Passed, res.Status)
	assert.Equal(t, 50, res.Samples)
}

func TestForAll3_TriplesCheckAndRender(t *testing.T) {
	r := gen.NewSource(1)

	res := ForAll3(gen.IntN(r, 100), gen.IntN(r, 100), gen.IntN(r, 100), func(a, b, c int) bool {
		return (a+b)+c == a+(b+c)
	}).Check(nil)
	assert.Equal(t, Passed, res.Status)

	res = ForAll3(gen.Const(1), gen.Const(2), gen.Const(3), func(a, b, c int) bool {
		return false
	}).Check(nil)
	assert.Equal(t, Falsified, res.Status)
	assert.Equal(t, "(1, 2, 3)", res.Counterexample)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "passed", Passed.String())
	assert.Equal(t, "falsified", Falsified.String())
	assert.Equal(t, "exhausted", Exhausted.String())
}

// capturePropFailure runs f and returns the assertion failure it raised.
func capturePropFailure(t *testing.T, f func()) *expect.Failure {
	t.Helper()
	var failure *expect.Failure
	func() {
		defer func() {
			if rec := recover(); rec != nil {
				var ok bool
				failure, ok = expect.AsFailure(rec)
				require.True(t, ok, "expected *expect.Failure panic, got %v", rec)
			}
		}()
		f()
	}()
	return failure
}
