package layout

// InvalidateMeasure marks n's desired size stale and queues it. A node
// whose measure is invalid is also rearranged. Invalidating a node that is
// already queued, or covered by a dirty ancestor, is a no-op.
func (s *Scheduler) InvalidateMeasure(n Node) {
	s.mustAccess("InvalidateMeasure", n)
	s.invalidate(phaseMeasure, n)
	s.invalidate(phaseArrange, n)
}

// InvalidateArrange marks n's arranged rectangle stale and queues it.
func (s *Scheduler) InvalidateArrange(n Node) {
	s.mustAccess("InvalidateArrange", n)
	s.invalidate(phaseArrange, n)
}

func (s *Scheduler) invalidate(p phase, n Node) {
	if s.closed {
		return
	}
	b := n.LayoutBox()
	if b.inProgress(p) {
		// Requeued with a hold once the running call returns.
		b.markRedirty(p)
		s.RequestPass()
		return
	}
	if !b.valid(p) {
		// A failed call leaves n invalid with nothing queued.
		if b.request(p) == nil && b.everDone(p) {
			s.enqueue(p, n)
			s.RequestPass()
		}
		return
	}
	b.invalidate(p)
	if b.everDone(p) {
		s.enqueue(p, n)
	}
	s.RequestPass()
}

// enqueue adds n to the phase queue. Running out of requests is reported
// by panicking with the error after n is recorded as the fault anchor, so
// the next pass revalidates n's whole tree.
func (s *Scheduler) enqueue(p phase, n Node) {
	if err := s.queue(p).add(n); err != nil {
		s.logger.Error("request allocation failed", "phase", p, "depth", n.LayoutBox().depth, "err", err)
		s.fail(n, err)
		panic(err)
	}
}

// SetRoot installs n as the tree root, laid out against available. A
// previous root is detached. Either axis of available may be unbounded;
// the root is then arranged at its desired size on that axis.
func (s *Scheduler) SetRoot(n Node, available Size) {
	s.mustAccess("SetRoot", n)
	if available.IsNaN() {
		panic(contractViolation("SetRoot: NaN size %v", available))
	}
	if n.LayoutParent() != nil {
		panic(contractViolation("SetRoot: node has a layout parent"))
	}
	if s.root != nil && s.root != n {
		s.Detach(s.root)
	}
	s.root = n

	b := n.LayoutBox()
	b.detached = false
	setDepths(n, 0)
	s.updateSuspension(n, false)

	b.prevConstraint = available
	b.finalRect = Rect{Width: available.Width, Height: available.Height}
	b.measureValid = false
	b.arrangeValid = false
	s.enqueue(phaseMeasure, n)
	s.enqueue(phaseArrange, n)
	s.RequestPass()
}

// Resize changes the root's available size.
func (s *Scheduler) Resize(available Size) {
	if s.root == nil {
		panic(contractViolation("Resize: no root installed"))
	}
	s.mustAccess("Resize", s.root)
	if available.IsNaN() {
		panic(contractViolation("Resize: NaN size %v", available))
	}
	b := s.root.LayoutBox()
	if b.prevConstraint.Close(available) {
		return
	}
	b.prevConstraint = available
	b.finalRect = Rect{Width: available.Width, Height: available.Height}
	s.InvalidateMeasure(s.root)
}

// Attach is called after n has been linked under its layout parent (or
// unlinked into a new root). It recomputes depths for n's subtree, lifts a
// detach suspension, and invalidates the parent so it measures n.
func (s *Scheduler) Attach(n Node) {
	s.mustAccess("Attach", n)
	if s.closed {
		return
	}
	parent := n.LayoutParent()
	depth := 0
	inherited := false
	if parent != nil {
		pb := parent.LayoutBox()
		depth = pb.depth + 1
		inherited = pb.suspended
	}
	n.LayoutBox().detached = false
	setDepths(n, depth)
	s.updateSuspension(n, inherited)

	if parent != nil {
		s.InvalidateMeasure(parent)
	}
}

// Detach purges every queued request and pending size-changed record for
// n's subtree and suspends its layout until it is attached again. Call it
// when n is removed from the tree.
func (s *Scheduler) Detach(n Node) {
	s.mustAccess("Detach", n)
	n.LayoutBox().detached = true
	s.forgetSubtree(n)
	s.updateSuspension(n, true)
	if s.root == n {
		s.root = nil
	}
}

// SetSuspended collapses (true) or restores (false) n's subtree. A
// collapsed subtree is skipped by Measure and Arrange and never queued.
func (s *Scheduler) SetSuspended(n Node, suspended bool) {
	s.mustAccess("SetSuspended", n)
	b := n.LayoutBox()
	if b.collapsed == suspended {
		return
	}
	b.collapsed = suspended
	inherited := false
	if parent := n.LayoutParent(); parent != nil {
		inherited = parent.LayoutBox().suspended
	}
	s.updateSuspension(n, inherited)

	if !suspended {
		s.InvalidateMeasure(n)
	}
	if parent := n.LayoutParent(); parent != nil {
		s.InvalidateMeasure(parent)
	}
}

// updateSuspension recomputes the effective suspended flag top-down.
// Newly suspended nodes lose their requests; newly resumed dirty nodes are
// queued again.
func (s *Scheduler) updateSuspension(n Node, inherited bool) {
	b := n.LayoutBox()
	was := b.suspended
	b.suspended = inherited || b.collapsed || b.detached

	switch {
	case b.suspended && !was:
		s.measureQueue.remove(n)
		s.arrangeQueue.remove(n)
		s.sizeChanged.remove(n)
	case !b.suspended && was && !s.closed:
		if !b.measureValid && b.measured {
			s.enqueue(phaseMeasure, n)
		}
		if !b.arrangeValid && b.arranged {
			s.enqueue(phaseArrange, n)
		}
	}

	for _, c := range n.LayoutChildren() {
		s.updateSuspension(c, b.suspended)
	}
}

// forgetSubtree drops all scheduler references into n's subtree.
func (s *Scheduler) forgetSubtree(n Node) {
	s.measureQueue.remove(n)
	s.arrangeQueue.remove(n)
	s.sizeChanged.remove(n)
	if s.faultAnchor == n {
		s.faultAnchor = nil
	}
	for _, c := range n.LayoutChildren() {
		s.forgetSubtree(c)
	}
}

// markTreeDirty invalidates both phases for every node under n without
// queueing; the caller queues n itself.
func markTreeDirty(n Node) {
	b := n.LayoutBox()
	b.measureValid = false
	b.arrangeValid = false
	for _, c := range n.LayoutChildren() {
		markTreeDirty(c)
	}
}
