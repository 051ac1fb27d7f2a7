package layout

import "slices"

// Mount installs e as the root of s, laid out against available.
func (e *Element) Mount(s *Scheduler, available Size) {
	if e.parent != nil {
		panic(contractViolation("Mount: element %s has a parent", e))
	}
	e.setSchedulerRecursive(s)
	s.SetRoot(e, available)
}

// Unmount detaches a mounted root from its scheduler.
func (e *Element) Unmount() {
	if e.sched == nil {
		return
	}
	e.sched.Detach(e)
	e.setSchedulerRecursive(nil)
}

// AddChild appends children to this Element.
// Children already attached elsewhere are moved.
func (e *Element) AddChild(children ...*Element) {
	for _, child := range children {
		if child.parent != nil {
			child.parent.RemoveChild(child)
		}
		child.parent = e
		e.children = append(e.children, child)
		child.setSchedulerRecursive(e.sched)
		if e.sched != nil {
			e.sched.Attach(child)
		} else {
			setDepths(child, e.box.depth+1)
		}
	}
}

// RemoveChild removes a child from this Element.
// Returns true if the child was found and removed.
func (e *Element) RemoveChild(child *Element) bool {
	i := slices.Index(e.children, child)
	if i < 0 {
		return false
	}
	if e.sched != nil {
		e.sched.Detach(child)
	}
	e.children = slices.Delete(e.children, i, i+1)
	child.parent = nil
	child.setSchedulerRecursive(nil)
	e.invalidateMeasure()
	return true
}

// RemoveAllChildren removes all children from this Element.
func (e *Element) RemoveAllChildren() {
	if len(e.children) == 0 {
		return
	}
	for _, child := range e.children {
		if e.sched != nil {
			e.sched.Detach(child)
		}
		child.parent = nil
		child.setSchedulerRecursive(nil)
	}
	e.children = nil
	e.invalidateMeasure()
}

// Children returns the child elements.
func (e *Element) Children() []*Element {
	return e.children
}

// Parent returns the parent element, or nil if this is the root.
func (e *Element) Parent() *Element {
	return e.parent
}

// Walk calls fn for e and each descendant, parents before children.
func (e *Element) Walk(fn func(*Element)) {
	fn(e)
	for _, c := range e.children {
		c.Walk(fn)
	}
}

func (e *Element) setSchedulerRecursive(s *Scheduler) {
	e.sched = s
	for _, child := range e.children {
		child.setSchedulerRecursive(s)
	}
}
