// Package notify implements ordered callback registrations that are fired
// from a point-in-time snapshot.
//
// Callbacks may subscribe or unsubscribe entries while a firing is in
// progress without corrupting it. Entries that were removed, or whose weak
// owner has been collected, are pruned lazily when a firing walks past them.
package notify

import "weak"

// Cancel removes a registration. Calling it more than once is safe.
type Cancel func()

type entry struct {
	resolve func() (func(), bool)
	active  bool
}

// List is an ordered set of registrations. It is not safe for concurrent
// use; it belongs to the goroutine that owns the scheduler.
type List struct {
	entries []*entry
	stale   int
}

// Add registers fn and returns a handle that removes it.
func (l *List) Add(fn func()) Cancel {
	return l.add(func() (func(), bool) { return fn, true })
}

// AddWeak registers fn keyed on owner. The list holds owner weakly: once
// owner is unreachable the registration is dropped on the next firing.
// fn must not capture owner, or owner will never be collected.
func AddWeak[T any](l *List, owner *T, fn func(*T)) Cancel {
	wp := weak.Make(owner)
	return l.add(func() (func(), bool) {
		p := wp.Value()
		if p == nil {
			return nil, false
		}
		return func() { fn(p) }, true
	})
}

func (l *List) add(resolve func() (func(), bool)) Cancel {
	e := &entry{resolve: resolve, active: true}
	l.entries = append(l.entries, e)
	return func() {
		if e.active {
			e.active = false
			l.stale++
		}
	}
}

// Len returns the number of registrations that have not been cancelled.
// Weak entries whose owner was collected are counted until pruned.
func (l *List) Len() int {
	return len(l.entries) - l.stale
}

// Fire calls each live registration in registration order, walking a copy
// of the list taken before the first call. After each call, stop is
// consulted; when it returns true the walk ends early and Fire returns
// false. Fire returns true when every entry in the snapshot was visited.
func (l *List) Fire(stop func() bool) bool {
	snapshot := make([]*entry, len(l.entries))
	copy(snapshot, l.entries)

	completed := true
	for _, e := range snapshot {
		if !e.active {
			continue
		}
		fn, ok := e.resolve()
		if !ok {
			e.active = false
			l.stale++
			continue
		}
		fn()
		if stop != nil && stop() {
			completed = false
			break
		}
	}
	l.prune()
	return completed
}

// prune drops inactive entries. Only the current backing slice is
// compacted; snapshots taken by an outer Fire are unaffected.
func (l *List) prune() {
	if l.stale == 0 {
		return
	}
	kept := make([]*entry, 0, len(l.entries)-l.stale)
	for _, e := range l.entries {
		if e.active {
			kept = append(kept, e)
		}
	}
	l.entries = kept
	l.stale = 0
}
