package dynarray

import (
	"math"
	"math/bits"
	"unsafe"

	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

// maxBufferBytes bounds a single buffer to what make can represent on this
// architecture.
var maxBufferBytes = func() uint64 {
	if bits.UintSize == 64 {
		return 1 << 47
	}
	return math.MaxInt32
}()

// ledger is where a buffer's bytes are accounted. It travels with the buffer
// on Swap and Move so a buffer is always refunded to the budget that paid for it.
type ledger struct {
	budget  *Budget
	metrics *Metrics
}

// elemSize returns the size in bytes of one slot of T.
func elemSize[T any]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}

// bufferBytes returns the size in bytes of a buffer of n slots of T.
func bufferBytes[T any](n int) (uint64, error) {
	size := uint64(elemSize[T]())
	if size == 0 {
		return 0, nil
	}
	if uint64(n) > maxBufferBytes/size {
		return 0, errors.Wrapf(ErrCapacityOverflow, "%d elements of %d bytes", n, size)
	}
	return uint64(n) * size, nil
}

// allocBuffer returns a zeroed buffer of exactly n slots, charged to the
// array's ledger. A zero n yields a nil buffer and charges nothing.
func (a *Array[T]) allocBuffer(n int) ([]T, error) {
	if n == 0 {
		return nil, nil
	}

	bytes, err := bufferBytes[T](n)
	if err == nil && a.ledger.budget != nil {
		err = a.ledger.budget.Reserve(bytes)
	}
	if err != nil {
		if m := a.ledger.metrics; m != nil {
			m.AllocationFailures.Inc()
		}
		level.Warn(a.log()).Log("msg", "buffer allocation refused", "capacity", n, "bytes", bytes, "err", err)
		return nil, newAllocError(err, "allocating %d slots", n)
	}

	buf := make([]T, n)
	if m := a.ledger.metrics; m != nil {
		m.AllocatedBytes.Add(float64(bytes))
	}
	return buf, nil
}

// freeBuffer refunds buf to the array's ledger. The caller must drop its
// reference to buf afterwards.
func (a *Array[T]) freeBuffer(buf []T) {
	if buf == nil {
		return
	}
	bytes := uint64(len(buf)) * uint64(elemSize[T]())
	if a.ledger.budget != nil {
		a.ledger.budget.Return(bytes)
	}
	if m := a.ledger.metrics; m != nil {
		m.AllocatedBytes.Sub(float64(bytes))
	}
}

// copyElems fills dst from src with fn, or with plain assignment if fn is nil.
// It stops at the first failing element; dst is then partially written.
func copyElems[T any](dst, src []T, fn CopyFunc[T]) error {
	if fn == nil {
		copy(dst, src)
		return nil
	}
	for i, v := range src {
		c, err := fn(v)
		if err != nil {
			return &CopyError{Index: i, Err: err}
		}
		dst[i] = c
	}
	return nil
}

// grownCapacity returns the capacity to grow to so that need elements fit:
// the current capacity times the growth factor, or need if that is larger.
func grownCapacity(capacity, need, factor int) (int, error) {
	if factor < 2 {
		factor = GrowthFactor
	}
	if capacity > math.MaxInt/factor {
		return 0, errors.Wrapf(ErrCapacityOverflow, "growing capacity %d by %d", capacity, factor)
	}
	return max(capacity*factor, need), nil
}
