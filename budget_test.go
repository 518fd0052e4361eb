package dynarray

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudget(t *testing.T) {
	rejections := prometheus.NewCounter(prometheus.CounterOpts{Name: "rejections_total"})
	b := NewBudget(100, rejections)

	require.NoError(t, b.Reserve(60))
	require.NoError(t, b.Reserve(40))
	assert.Equal(t, uint64(100), b.InUse())

	err := b.Reserve(1)
	require.ErrorIs(t, err, ErrBudgetExceeded)
	assert.Equal(t, uint64(100), b.InUse(), "a refused reservation charges nothing")

	require.ErrorIs(t, b.Reserve(1), ErrBudgetExceeded)
	assert.Equal(t, uint64(2), b.Refused())
	assert.Equal(t, 1.0, testutil.ToFloat64(rejections), "only the first rejection is counted")

	b.Return(70)
	assert.Equal(t, uint64(30), b.InUse())
	assert.Equal(t, uint64(100), b.Peak())
	assert.Equal(t, uint64(100), b.Limit())

	require.Panics(t, func() { b.Return(31) })
}

func TestBudgetUnlimited(t *testing.T) {
	b := NewBudget(0, nil)
	require.NoError(t, b.Reserve(1<<40))
	require.NoError(t, b.Reserve(1<<40))
	assert.Equal(t, uint64(1<<41), b.Peak())
}

func TestBudgetReserveLargerThanLimit(t *testing.T) {
	b := NewBudget(10, nil)
	require.ErrorIs(t, b.Reserve(^uint64(0)), ErrBudgetExceeded)
	assert.Zero(t, b.InUse())
}

func TestArrayChargesBudget(t *testing.T) {
	b := NewBudget(0, nil)
	a := MustNew[int64](0, WithBudget[int64](b))
	assert.Equal(t, uint64(DefaultCapacity*8), b.InUse())

	require.NoError(t, a.Resize(DefaultCapacity+1))
	assert.Equal(t, uint64(2*DefaultCapacity*8), b.InUse())
	assert.Equal(t, uint64(3*DefaultCapacity*8), b.Peak(), "growth holds both buffers while copying")

	c, err := a.Clone()
	require.NoError(t, err)
	assert.Equal(t, uint64(4*DefaultCapacity*8), b.InUse())

	c.Release()
	a.Release()
	assert.Zero(t, b.InUse())
}

func TestNewRefusedByBudget(t *testing.T) {
	b := NewBudget(DefaultCapacity*8-1, nil)
	a, err := New[int64](0, WithBudget[int64](b))
	require.Nil(t, a)
	require.ErrorIs(t, err, ErrAllocation)
	require.ErrorIs(t, err, ErrBudgetExceeded)
	assert.Equal(t, ErrBudgetExceeded, errors.Cause(err))
	assert.Zero(t, b.InUse())
}

func TestMaxBytesConfigCreatesBudget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxBytes = DefaultCapacity * 8
	a, err := New[int64](0, WithConfig[int64](cfg))
	require.NoError(t, err)
	require.NotNil(t, a.ledger.budget)

	err = a.Resize(DefaultCapacity + 1)
	require.ErrorIs(t, err, ErrBudgetExceeded)
	assert.Equal(t, DefaultCapacity, a.Cap())
}

func TestResizeStrongGuarantee(t *testing.T) {
	// Room for the initial buffer only.
	b := NewBudget(DefaultCapacity*8, nil)
	a := MustNew[int64](0, WithBudget[int64](b))
	for i := range int64(DefaultCapacity) {
		require.NoError(t, a.PushBack(i))
	}
	before := append([]int64(nil), a.Slice()...)
	buf := a.data

	for _, op := range []struct {
		name string
		run  func() error
	}{
		{"resize", func() error { return a.Resize(DefaultCapacity + 1) }},
		{"push back", func() error { return a.PushBack(-1) }},
		{"insert", func() error {
			pos, err := a.Insert(5, -1)
			assert.Equal(t, 5, pos)
			return err
		}},
	} {
		t.Run(op.name, func(t *testing.T) {
			err := op.run()
			require.ErrorIs(t, err, ErrAllocation)
			assert.Equal(t, before, a.Slice())
			assert.Equal(t, DefaultCapacity, a.Cap())
			assert.Same(t, &buf[0], &a.data[0])
			assert.Equal(t, uint64(DefaultCapacity*8), b.InUse())
			requireInvariants(t, a)
		})
	}
	assert.Zero(t, a.Reallocations())
}

func TestAssignStrongGuarantee(t *testing.T) {
	b := NewBudget(DefaultCapacity*8, nil)
	a := MustNew[int64](0, WithBudget[int64](b))
	require.NoError(t, a.PushBack(1))

	other := MustNew[int64](3)
	err := a.Assign(other)
	require.ErrorIs(t, err, ErrBudgetExceeded)
	assert.Equal(t, []int64{1}, a.Slice())
	assert.Equal(t, uint64(DefaultCapacity*8), b.InUse())

	// With room for the copy the assignment goes through and the old buffer
	// is refunded.
	roomy := NewBudget(0, nil)
	c := MustNew[int64](0, WithBudget[int64](roomy))
	require.NoError(t, c.Assign(other))
	assert.Equal(t, []int64{0, 0, 0}, c.Slice())
	assert.Equal(t, uint64(DefaultCapacity*8), roomy.InUse())
}

func TestSwapKeepsBudgetsBalanced(t *testing.T) {
	ba, bb := NewBudget(0, nil), NewBudget(0, nil)
	a := MustNew[int64](0, WithBudget[int64](ba))
	b := MustNew[int64](100, WithBudget[int64](bb))

	a.Swap(b)
	a.Release()
	assert.Zero(t, bb.InUse(), "b's old buffer is refunded to the budget that paid for it")
	assert.Equal(t, uint64(DefaultCapacity*8), ba.InUse())

	b.Release()
	assert.Zero(t, ba.InUse())
}

func TestMoveKeepsBudgetBalanced(t *testing.T) {
	budget := NewBudget(0, nil)
	a := MustNew[int64](0, WithBudget[int64](budget))
	b := Move(a)

	a.Release()
	assert.Equal(t, uint64(DefaultCapacity*8), budget.InUse())
	b.Release()
	assert.Zero(t, budget.InUse())
}
