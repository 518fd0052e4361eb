// Package dynarray implements a generic, resizable array that owns its buffer.
//
// # Overview
//
// An Array keeps its logical size separate from the capacity of the buffer
// behind it. Appends that fit in the buffer cost nothing beyond the store;
// appends that don't replace the buffer with one GrowthFactor times larger,
// so a run of N appends performs O(log N) reallocations.
//
// # Basic Usage
//
//	a, err := dynarray.New[float64](1) // size 1, capacity DefaultCapacity
//	if err != nil {
//		return err
//	}
//	defer a.Release()
//
//	_ = a.Resize(20)
//	_, _ = a.Insert(a.Begin()+3, 8)
//	_ = a.PushBack(3)
//
//	a.Erase(a.Begin() + 3)
//	last := a.PopBack()
//
//	for i, v := range a.All() {
//		fmt.Println(i, v)
//	}
//
// # Value Semantics
//
// An Array is an owning value. Clone makes an independent deep copy, using
// a CopyFunc when elements need more than plain assignment. Move hands the
// buffer to a new Array and leaves the source empty. Assign copies another
// array into the receiver and MoveAssign exchanges the two. Swap exchanges
// buffers without touching any element.
//
// # Failure Guarantees
//
//   - New, Clone, Assign, Resize, Insert and PushBack either succeed or
//     leave every array exactly as it was.
//   - Move, MoveAssign, Swap, Release, Erase and PopBack never fail and never
//     allocate.
//
// Allocation can only fail when a Budget is attached: Go treats running out
// of memory as fatal, so a Budget is the way to make large arrays refuse
// growth instead.
//
//	budget := dynarray.NewBudget(64<<20, nil)
//	a := dynarray.MustNew[int64](0, dynarray.WithBudget[int64](budget))
//	if err := a.PushBack(1); errors.Is(err, dynarray.ErrBudgetExceeded) {
//		// a is unchanged
//	}
//
// # Positions
//
// Positions are indices: Begin() is 0 and End() is Len(). Insert accepts
// [Begin(), End()], At, Get, Set and Erase accept [Begin(), End()). A position
// outside that range panics with a *RangeError. Positions, pointers from At
// and slices from Slice are stale after any call that mutates the array.
//
// # Thread Safety
//
// Array is not safe for concurrent use. Callers sharing an array across
// goroutines must synchronise access themselves.
//
// # Metrics and Monitoring
//
//	m := a.Metrics()
//	fmt.Printf("Utilization: %.2f%%\n", m.Utilization*100)
//	fmt.Printf("Reallocations: %d\n", m.Reallocations)
//
// For Prometheus, create one Metrics with NewMetrics and pass it to every
// array with WithMetrics.
package dynarray
