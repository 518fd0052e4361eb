package dynarray

import (
	"iter"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

// Array is a resizable sequence of T that owns its buffer.
//
// An Array tracks its logical size separately from the capacity of its
// buffer and grows by GrowthFactor when an append does not fit. Positions are
// element indices in [Begin(), End()]; any position taken before a call that
// mutates the array is stale after it.
//
// The zero value is an empty array with no buffer, ready to use.
// Array is not goroutine-safe.
type Array[T any] struct {
	capacity int
	size     int
	data     []T // len(data) == capacity; nil when capacity == 0
	reallocs int

	ledger ledger
	cfg    Config
	copyFn CopyFunc[T]
	logger log.Logger
}

// New creates an Array holding n zero-valued elements, with room for at
// least the configured default capacity.
//
// On error no array is returned.
func New[T any](n int, opts ...Option[T]) (*Array[T], error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrNegativeSize, "new array of size %d", n)
	}
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	a := &Array[T]{
		ledger: ledger{budget: o.budget, metrics: o.metrics},
		cfg:    o.cfg,
		copyFn: o.copyFn,
		logger: o.logger,
	}
	capacity := max(n, o.cfg.DefaultCapacity)
	data, err := a.allocBuffer(capacity)
	if err != nil {
		return nil, err
	}
	a.data, a.capacity, a.size = data, capacity, n
	return a, nil
}

// MustNew is like New but panics on error.
func MustNew[T any](n int, opts ...Option[T]) *Array[T] {
	a, err := New(n, opts...)
	if err != nil {
		panic(err)
	}
	return a
}

// Clone returns an independent copy of a with the same size, capacity and
// configuration. Elements are duplicated with the array's CopyFunc.
//
// If any element fails to copy, the partial buffer is released and the
// CopyFunc's error is returned wrapped in a *CopyError; a is never modified.
func (a *Array[T]) Clone() (*Array[T], error) {
	return a.cloneWith(a.ledger)
}

func (a *Array[T]) cloneWith(l ledger) (*Array[T], error) {
	c := &Array[T]{
		ledger: l,
		cfg:    a.cfg,
		copyFn: a.copyFn,
		logger: a.logger,
	}
	data, err := c.allocBuffer(a.capacity)
	if err != nil {
		return nil, errors.Wrap(err, "clone")
	}
	if err := copyElems(data[:a.size], a.data[:a.size], a.copyFn); err != nil {
		c.freeBuffer(data)
		return nil, err
	}
	c.data, c.capacity, c.size = data, a.capacity, a.size
	return c, nil
}

// Move transfers src's buffer to a new Array in constant time. src is left
// empty with no buffer, as if freshly created with zero capacity.
func Move[T any](src *Array[T]) *Array[T] {
	dst := &Array[T]{
		capacity: src.capacity,
		size:     src.size,
		data:     src.data,
		reallocs: src.reallocs,
		ledger:   src.ledger,
		cfg:      src.cfg,
		copyFn:   src.copyFn,
		logger:   src.logger,
	}
	src.capacity, src.size, src.data, src.reallocs = 0, 0, nil, 0
	return dst
}

// Assign makes a an independent copy of other's elements. The copy is built
// before a is touched, so on error a is left exactly as it was.
func (a *Array[T]) Assign(other *Array[T]) error {
	if a == other {
		return nil
	}
	c, err := other.cloneWith(a.ledger)
	if err != nil {
		return err
	}
	a.Swap(c)
	c.Release()
	return nil
}

// MoveAssign exchanges the contents of a and other. other ends up owning
// what a held before the call.
func (a *Array[T]) MoveAssign(other *Array[T]) {
	a.Swap(other)
}

// Release drops the buffer and returns its bytes to the budget. The array
// stays usable as an empty array with zero capacity. Calling Release more than
// once is a no-op.
func (a *Array[T]) Release() {
	a.freeBuffer(a.data)
	a.data, a.capacity, a.size = nil, 0, 0
}

// At returns a pointer to the element at index i. The pointer is invalidated
// by the next call that mutates a.
// It panics with a *RangeError if i is not in [0, Len()).
func (a *Array[T]) At(i int) *T {
	if i < 0 || i >= a.size {
		panicRange("At", i, a.size)
	}
	return &a.data[i]
}

// Get returns the element at index i.
func (a *Array[T]) Get(i int) T {
	if i < 0 || i >= a.size {
		panicRange("Get", i, a.size)
	}
	return a.data[i]
}

// Set replaces the element at index i.
func (a *Array[T]) Set(i int, v T) {
	if i < 0 || i >= a.size {
		panicRange("Set", i, a.size)
	}
	a.data[i] = v
}

// Len returns the number of elements.
func (a *Array[T]) Len() int { return a.size }

// Cap returns the number of allocated slots.
func (a *Array[T]) Cap() int { return a.capacity }

// IsEmpty reports whether the array holds no elements.
func (a *Array[T]) IsEmpty() bool { return a.size == 0 }

// Begin returns the position of the first element.
func (a *Array[T]) Begin() int { return 0 }

// End returns the position one past the last element.
func (a *Array[T]) End() int { return a.size }

// All returns an iterator over index/value pairs in order.
func (a *Array[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < a.size; i++ {
			if !yield(i, a.data[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements in order.
func (a *Array[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < a.size; i++ {
			if !yield(a.data[i]) {
				return
			}
		}
	}
}

// Slice returns the live elements as a slice sharing the array's buffer.
// Its capacity is clipped to its length, so appending to it never writes
// into the array. It is invalidated by the next call that mutates a.
func (a *Array[T]) Slice() []T {
	return a.data[:a.size:a.size]
}

// Resize sets the number of elements to n.
//
// If n fits in the current capacity only the size changes; slots exposed by
// growing are zeroed. Otherwise the buffer is replaced by one of
// max(Cap()*GrowthFactor, n) slots. If that allocation fails the array is
// unchanged. Resize never reduces the capacity.
func (a *Array[T]) Resize(n int) error {
	if n < 0 {
		return errors.Wrapf(ErrNegativeSize, "resize to %d", n)
	}
	if n > a.capacity {
		if err := a.grow(n); err != nil {
			return err
		}
	}
	a.setSize(n)
	return nil
}

// grow replaces the buffer with a larger one holding at least need slots.
func (a *Array[T]) grow(need int) error {
	newCap, err := grownCapacity(a.capacity, need, a.cfg.GrowthFactor)
	if err != nil {
		return newAllocError(err, "growing to %d slots", need)
	}
	data, err := a.allocBuffer(newCap)
	if err != nil {
		return err
	}
	copy(data, a.data[:a.size])

	level.Debug(a.log()).Log("msg", "grew buffer", "old_capacity", a.capacity, "new_capacity", newCap, "size", a.size)
	a.freeBuffer(a.data)
	a.data, a.capacity = data, newCap
	a.reallocs++
	if m := a.ledger.metrics; m != nil {
		m.Reallocations.Inc()
	}
	return nil
}

// setSize changes the size within the current capacity, zeroing the slots
// entering or leaving the live range. It never allocates.
func (a *Array[T]) setSize(n int) {
	if n > a.size {
		clear(a.data[a.size:n])
	} else {
		clear(a.data[n:a.size])
	}
	a.size = n
}

// Insert places item before position pos, shifting the elements from pos
// onwards up by one, and returns the position of the inserted element.
//
// If the array has to grow and cannot, it is left unchanged and the error is
// returned. It panics with a *RangeError if pos is not in [0, Len()].
func (a *Array[T]) Insert(pos int, item T) (int, error) {
	if pos < 0 || pos > a.size {
		panicRange("Insert", pos, a.size)
	}
	if err := a.Resize(a.size + 1); err != nil {
		return pos, err
	}
	a.data[a.size-1] = item
	rotateRight(a.data[pos:a.size])
	return pos, nil
}

// Erase removes the element at pos, shifting the following elements down by
// one, and returns pos, which now holds the element that followed the removed
// one or equals End(). Erase never allocates.
// It panics with a *RangeError if pos is not in [0, Len()).
func (a *Array[T]) Erase(pos int) int {
	if pos < 0 || pos >= a.size {
		panicRange("Erase", pos, a.size)
	}
	rotateLeft(a.data[pos:a.size])
	a.setSize(a.size - 1)
	return pos
}

// PushBack appends item, growing the buffer if needed.
func (a *Array[T]) PushBack(item T) error {
	_, err := a.Insert(a.size, item)
	return err
}

// PopBack removes and returns the last element.
// It panics with a *RangeError if the array is empty.
func (a *Array[T]) PopBack() T {
	if a.size == 0 {
		panicRange("PopBack", -1, 0)
	}
	v := a.data[a.size-1]
	a.Erase(a.size - 1)
	return v
}

// Swap exchanges the buffers, sizes and capacities of a and other in
// constant time. Each buffer keeps the budget it was charged to.
func (a *Array[T]) Swap(other *Array[T]) {
	a.capacity, other.capacity = other.capacity, a.capacity
	a.size, other.size = other.size, a.size
	a.data, other.data = other.data, a.data
	a.ledger, other.ledger = other.ledger, a.ledger
}

func (a *Array[T]) log() log.Logger {
	if a.logger == nil {
		return log.NewNopLogger()
	}
	return a.logger
}
