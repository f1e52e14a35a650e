// Package gen provides composable random value generators for property
// tests.
//
// A generator is nothing more than a zero-argument function returning a
// fresh independent sample on every call, so any func() T is usable where
// a Generator[T] is expected and combinators are ordinary function
// composition. Randomness comes from an explicit *rand.Rand handle passed
// to the constructors rather than hidden global state: NewSource(seed)
// yields fully reproducible runs, RandomSource() yields a time-seeded one.
package gen

import (
	"math/rand/v2"
	"time"
)

// Generator produces a random value of type T. Each call is a fresh
// independent draw; no generator is deterministic across calls.
type Generator[T any] func() T

// defaultMaxLen bounds the default length distribution for unsized
// containers: lengths are uniform in [0, defaultMaxLen].
const defaultMaxLen = 16

// NewSource creates a seeded random source. Two sources built from the
// same seed drive identical sample sequences.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// RandomSource creates a time-seeded random source. Successive runs are
// not reproducible; use NewSource when determinism matters.
func RandomSource() *rand.Rand {
	now := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(now, now>>32))
}

// Bool generates true or false with equal probability.
func Bool(r *rand.Rand) Generator[bool] {
	return func() bool { return r.IntN(2) == 0 }
}

// Float64 generates floats uniformly in [0, 1).
func Float64(r *rand.Rand) Generator[float64] {
	return func() float64 { return r.Float64() }
}

// IntN generates integers uniformly in [0, n). Panics if n <= 0.
func IntN(r *rand.Rand, n int) Generator[int] {
	return func() int { return r.IntN(n) }
}

// IntRange generates integers uniformly in the inclusive range [lo, hi].
// Panics if lo > hi.
func IntRange(r *rand.Rand, lo, hi int) Generator[int] {
	if lo > hi {
		panic("gen: IntRange with lo > hi")
	}
	return func() int { return lo + r.IntN(hi-lo+1) }
}

// Byte generates bytes uniformly over all 256 values.
func Byte(r *rand.Rand) Generator[byte] {
	return func() byte { return byte(r.IntN(256)) }
}

// Rune generates valid Unicode code points, redrawing the surrogate range.
func Rune(r *rand.Rand) Generator[rune] {
	return func() rune {
		for {
			c := rune(r.IntN(0x110000))
			if c < 0xD800 || c > 0xDFFF {
				return c
			}
		}
	}
}

// ASCIIRune generates runes uniformly over the 7-bit ASCII range.
func ASCIIRune(r *rand.Rand) Generator[rune] {
	return func() rune { return rune(r.IntN(128)) }
}

// Digit generates the runes '0' through '9'.
func Digit(r *rand.Rand) Generator[rune] {
	return runeIn(r, "0123456789")
}

// Lower generates lowercase ASCII letters.
func Lower(r *rand.Rand) Generator[rune] {
	return runeIn(r, "abcdefghijklmnopqrstuvwxyz")
}

// Upper generates uppercase ASCII letters.
func Upper(r *rand.Rand) Generator[rune] {
	return runeIn(r, "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
}

// AlphaNum generates ASCII letters and digits.
func AlphaNum(r *rand.Rand) Generator[rune] {
	return runeIn(r, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")
}

func runeIn(r *rand.Rand, alphabet string) Generator[rune] {
	runes := []rune(alphabet)
	return func() rune { return runes[r.IntN(len(runes))] }
}

// Const generates the same value on every call. Useful as a fixed length
// generator for the Sized variants.
func Const[T any](v T) Generator[T] {
	return func() T { return v }
}

// OneOf generates values drawn uniformly from the given choices.
// Panics if no choices are supplied.
func OneOf[T any](r *rand.Rand, choices ...T) Generator[T] {
	if len(choices) == 0 {
		panic("gen: OneOf with no choices")
	}
	return func() T { return choices[r.IntN(len(choices))] }
}

// Map transforms a generator's output through f.
func Map[T, U any](g Generator[T], f func(T) U) Generator[U] {
	return func() U { return f(g()) }
}

// SliceOf generates slices of elem with the default length distribution,
// uniform in [0, 16].
func SliceOf[T any](r *rand.Rand, elem Generator[T]) Generator[[]T] {
	return SizedSliceOf(IntRange(r, 0, defaultMaxLen), elem)
}

// SliceOfN generates slices of exactly n elements.
func SliceOfN[T any](n int, elem Generator[T]) Generator[[]T] {
	return SizedSliceOf(Const(n), elem)
}

// SizedSliceOf generates slices whose length is drawn from size on every
// call.
func SizedSliceOf[T any](size Generator[int], elem Generator[T]) Generator[[]T] {
	return func() []T {
		n := size()
		out := make([]T, n)
		for i := range out {
			out[i] = elem()
		}
		return out
	}
}

// StringOf generates strings of ch with the default length distribution.
func StringOf(r *rand.Rand, ch Generator[rune]) Generator[string] {
	return SizedStringOf(IntRange(r, 0, defaultMaxLen), ch)
}

// SizedStringOf generates strings whose rune count is drawn from size on
// every call.
func SizedStringOf(size Generator[int], ch Generator[rune]) Generator[string] {
	return func() string {
		n := size()
		runes := make([]rune, n)
		for i := range runes {
			runes[i] = ch()
		}
		return string(runes)
	}
}

// MapOf generates maps of key/val pairs with the default length
// distribution. Duplicate keys collapse, so the resulting map may be
// smaller than the drawn size.
func MapOf[K comparable, V any](r *rand.Rand, key Generator[K], val Generator[V]) Generator[map[K]V] {
	return SizedMapOf(IntRange(r, 0, defaultMaxLen), key, val)
}

// SizedMapOf generates maps whose entry count is drawn from size on every
// call, before duplicate keys collapse.
func SizedMapOf[K comparable, V any](size Generator[int], key Generator[K], val Generator[V]) Generator[map[K]V] {
	return func() map[K]V {
		n := size()
		out := make(map[K]V, n)
		for i := 0; i < n; i++ {
			out[key()] = val()
		}
		return out
	}
}
