// Package oracle defines the engine's four-callback contract with the
// outside world (spec.md §4.O): drawing a signal, classifying a position,
// checking for termination, and progress notification.
//
// Ops is a struct of function fields rather than an interface, in the
// style of bfs.BFSOptions/dfs.DFSOptions — the engine calls whichever
// fields are non-nil and treats the rest as no-ops.
package oracle

import "github.com/katalvlaran/gnp/core"

// Ops holds the four oracle callbacks plus the callback period.
type Ops struct {
	// InputSignal draws the next configuration to feed the learner. Must
	// be safe to call repeatedly from the engine's single goroutine; the
	// oracle owns whatever external randomness or sensing it needs.
	InputSignal func() []float64

	// Eval classifies a position as FREE or OBST (collision check).
	Eval func(w []float64) core.Class

	// Terminate reports whether the engine should stop after the current
	// step. Polled once per step (spec.md §5).
	Terminate func() bool

	// Callback is an optional progress notification, invoked every
	// CallbackPeriod steps. Nil means no notification.
	Callback func(step int64)

	// CallbackPeriod is how many steps elapse between Callback
	// invocations. A value ≤ 0 disables Callback entirely.
	CallbackPeriod int64
}

// DefaultOps returns an Ops with every optional field as a safe no-op;
// InputSignal and Eval are left nil since the engine cannot run without
// a real implementation of either.
func DefaultOps() Ops {
	return Ops{
		Terminate:      func() bool { return false },
		Callback:       func(int64) {},
		CallbackPeriod: 0,
	}
}

// ShouldNotify invokes Callback and returns true if step lands on a
// CallbackPeriod boundary, otherwise it is a no-op returning false.
// The engine's step loop calls it once per step.
func (o Ops) ShouldNotify(step int64) bool {
	if o.Callback == nil || o.CallbackPeriod <= 0 || step%o.CallbackPeriod != 0 {
		return false
	}
	o.Callback(step)
	return true
}

// Memo wraps Eval with a short-lived, step-scoped cache keyed by a stable
// string rendering of the position — acceptable because the cache only
// needs to survive a single step, so a hashing dependency would be
// overkill for something this short-lived.
type Memo struct {
	eval  func(w []float64) core.Class
	cache map[string]core.Class
}

// NewMemo wraps eval in a fresh, empty memoization cache.
func NewMemo(eval func(w []float64) core.Class) *Memo {
	return &Memo{eval: eval, cache: make(map[string]core.Class)}
}

// Eval returns eval(w), memoized by w's key within this Memo's lifetime.
func (m *Memo) Eval(w []float64) core.Class {
	key := memoKey(w)
	if c, ok := m.cache[key]; ok {
		return c
	}
	c := m.eval(w)
	m.cache[key] = c
	return c
}

// Reset discards all memoized entries, for reuse across engine steps.
func (m *Memo) Reset() {
	m.cache = make(map[string]core.Class)
}
