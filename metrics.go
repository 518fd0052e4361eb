package dynarray

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors shared by every array configured
// with WithMetrics.
type Metrics struct {
	Reallocations      prometheus.Counter
	AllocationFailures prometheus.Counter
	AllocatedBytes     prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Reallocations: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "dynarray_reallocations_total",
			Help: "Total number of times an array moved its elements into a larger buffer.",
		}),
		AllocationFailures: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "dynarray_allocation_failures_total",
			Help: "Total number of buffer allocations refused by a memory budget.",
		}),
		AllocatedBytes: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "dynarray_allocated_bytes",
			Help: "Bytes currently held in array buffers.",
		}),
	}
}

// ArrayMetrics is a point-in-time snapshot of an array's storage.
type ArrayMetrics struct {
	Size           int     // Live elements
	Capacity       int     // Allocated slots
	ElementSize    int     // Bytes per slot
	BytesInUse     int     // Size * ElementSize
	BytesAllocated int     // Capacity * ElementSize
	Reallocations  int     // Growths since construction
	Utilization    float64 // Size / Capacity (0.0-1.0)
}

// Utilization returns the ratio of live elements to allocated slots (0.0 to 1.0).
// Returns 0.0 if the array has no capacity.
func (a *Array[T]) Utilization() float64 {
	if a.capacity == 0 {
		return 0
	}
	return float64(a.size) / float64(a.capacity)
}

// Reallocations returns how many times the array has grown its buffer.
func (a *Array[T]) Reallocations() int {
	return a.reallocs
}

// Metrics returns a snapshot of array statistics.
func (a *Array[T]) Metrics() ArrayMetrics {
	elem := int(elemSize[T]())
	return ArrayMetrics{
		Size:           a.size,
		Capacity:       a.capacity,
		ElementSize:    elem,
		BytesInUse:     a.size * elem,
		BytesAllocated: a.capacity * elem,
		Reallocations:  a.reallocs,
		Utilization:    a.Utilization(),
	}
}
