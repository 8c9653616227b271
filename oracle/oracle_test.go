package oracle_test

import (
	"testing"

	"github.com/katalvlaran/gnp/core"
	"github.com/katalvlaran/gnp/oracle"
	"github.com/stretchr/testify/assert"
)

func TestDefaultOps_TerminateFalseAndCallbackNoOp(t *testing.T) {
	ops := oracle.DefaultOps()
	assert.False(t, ops.Terminate())
	assert.NotPanics(t, func() { ops.Callback(5) })
}

func TestShouldNotify_FiresOnPeriodBoundary(t *testing.T) {
	var fired []int64
	ops := oracle.Ops{
		Callback:       func(step int64) { fired = append(fired, step) },
		CallbackPeriod: 10,
	}
	for step := int64(1); step <= 25; step++ {
		ops.ShouldNotify(step)
	}
	assert.Equal(t, []int64{10, 20}, fired)
}

func TestShouldNotify_DisabledWhenPeriodZero(t *testing.T) {
	called := false
	ops := oracle.Ops{
		Callback:       func(int64) { called = true },
		CallbackPeriod: 0,
	}
	ops.ShouldNotify(0)
	assert.False(t, called)
}

func TestMemo_CachesPerPosition(t *testing.T) {
	calls := 0
	eval := func(w []float64) core.Class {
		calls++
		return core.Free
	}
	m := oracle.NewMemo(eval)

	assert.Equal(t, core.Free, m.Eval([]float64{1, 2}))
	assert.Equal(t, core.Free, m.Eval([]float64{1, 2}))
	assert.Equal(t, 1, calls, "second call with the same position must hit the cache")

	m.Eval([]float64{3, 4})
	assert.Equal(t, 2, calls, "a distinct position must miss the cache")
}

func TestMemo_ResetClearsCache(t *testing.T) {
	calls := 0
	m := oracle.NewMemo(func(w []float64) core.Class {
		calls++
		return core.Obst
	})
	m.Eval([]float64{0, 0})
	m.Reset()
	m.Eval([]float64{0, 0})
	assert.Equal(t, 2, calls)
}
