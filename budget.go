package dynarray

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Budget caps the number of bytes the arrays charged to it may hold in their
// buffers at any one time, and tracks the peak.
//
// A Budget may be shared by several arrays. It is not safe for concurrent use.
type Budget struct {
	limit   uint64
	inUse   uint64
	peak    uint64
	refused uint64

	rejections       prometheus.Counter
	recordedRejected bool
}

// NewBudget creates a Budget allowing at most maxBytes bytes. A maxBytes of
// zero means unlimited. rejections, if not nil, is incremented the first time
// the budget refuses a reservation.
func NewBudget(maxBytes uint64, rejections prometheus.Counter) *Budget {
	return &Budget{limit: maxBytes, rejections: rejections}
}

// Reserve charges n bytes to the budget.
//
// It returns an error matching ErrBudgetExceeded if the charge would take the
// budget over its limit; nothing is charged in that case.
func (b *Budget) Reserve(n uint64) error {
	if b.limit > 0 && (n > b.limit || b.inUse > b.limit-n) {
		b.refused++
		if !b.recordedRejected {
			b.recordedRejected = true
			if b.rejections != nil {
				b.rejections.Inc()
			}
		}
		return errors.Wrapf(ErrBudgetExceeded, "reserving %d bytes with %d of %d in use", n, b.inUse, b.limit)
	}

	b.inUse += n
	b.peak = max(b.peak, b.inUse)
	return nil
}

// Return gives n bytes back to the budget.
func (b *Budget) Return(n uint64) {
	if n > b.inUse {
		panic("dynarray: budget returned more bytes than were reserved, a buffer was released twice")
	}
	b.inUse -= n
}

// Limit returns the maximum number of bytes, zero meaning unlimited.
func (b *Budget) Limit() uint64 { return b.limit }

// InUse returns the number of bytes currently reserved.
func (b *Budget) InUse() uint64 { return b.inUse }

// Peak returns the highest number of bytes ever reserved at once.
func (b *Budget) Peak() uint64 { return b.peak }

// Refused returns how many reservations were refused.
func (b *Budget) Refused() uint64 { return b.refused }
