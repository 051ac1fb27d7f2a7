// Package layout provides an incremental measure/arrange scheduler for
// retained element trees.
//
// Mutations call InvalidateMeasure or InvalidateArrange; the scheduler
// queues the affected nodes, posts a pass to its Host, and drains the
// queues shallowest-first in time-sliced passes. Size-changed records and
// layout-updated subscribers fire once both queues are empty.
//
// Element is a ready-made stack-panel Node. Dispatcher is a small
// single-goroutine Host for programs that have no run loop of their own.
package layout
