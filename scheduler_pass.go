package layout

import (
	"context"
	"fmt"
	"time"
)

// RequestPass asks the host for a layout pass at PriorityLayout. Repeated
// calls before the pass runs post a single callback. Calls made while a
// pass is running are folded into that pass.
func (s *Scheduler) RequestPass() {
	if err := s.verifyAccess("RequestPass"); err != nil {
		panic(err)
	}
	if s.closed {
		return
	}
	s.firePostLayout = true
	if s.passPending || s.inPass {
		return
	}
	s.passPending = true
	s.host.Schedule(s.passCallback, PriorityLayout)
}

func (s *Scheduler) passCallback() {
	s.passPending = false
	s.report(s.RunPass())
}

// scheduleContinuation posts a pass at p unless one is already posted there.
func (s *Scheduler) scheduleContinuation(p Priority) {
	if s.continuationQueued[p] {
		return
	}
	s.continuationQueued[p] = true
	s.host.Schedule(func() {
		s.continuationQueued[p] = false
		s.report(s.RunPass())
	}, p)
}

func (s *Scheduler) report(err error) {
	if err == nil {
		return
	}
	if s.onError != nil {
		s.onError(err)
		return
	}
	s.logger.Error("layout pass failed", "err", err)
}

// RunPass drains the measure and arrange queues shallowest-first, then
// fires size-changed records, layout-updated subscribers and automation
// subscribers, repeating until nothing is dirty. It returns early, with a
// continuation posted, when the pass exceeds its iteration or time budget.
//
// RunPass is refused (returns nil without doing anything) while another
// pass or a Measure/Arrange call is already on the stack.
//
// A node failure is returned (or re-panicked) unchanged after the node is
// recorded as the fault anchor; the next pass revalidates its whole tree.
func (s *Scheduler) RunPass() error {
	if err := s.verifyAccess("RunPass"); err != nil {
		return err
	}
	if s.closed || s.inPass || s.measureDepth > 0 || s.arrangeDepth > 0 {
		return nil
	}

	s.inPass = true
	s.stats.Passes++
	start := s.clock()
	defer func() {
		s.inPass = false
		if r := recover(); r != nil {
			if e, ok := r.(*Error); !ok || e.Code != CodeResourceExhausted {
				s.fail(s.current, panicError(r))
			}
			s.current = nil
			panic(r)
		}
		s.current = nil
	}()

	if s.faulted {
		s.recoverFromFault()
	}

	processed := 0
	iterations := 0
	for s.hasDirtiness() || s.firePostLayout || !s.sizeChanged.isEmpty() {
		if iterations >= s.maxOuterIterations {
			s.yield("iterations", s.maxOuterIterations)
			return nil
		}
		iterations++
		s.cycle++

		s.state = StateMeasuring
		for {
			n := s.measureQueue.getTopMost(s.cycle)
			if n == nil {
				break
			}
			s.current = n
			if s.onDequeue != nil {
				s.onDequeue(phaseMeasure, n)
			}
			if _, err := s.Measure(n, n.LayoutBox().prevConstraint); err != nil {
				return s.failPass(n, err)
			}
			processed++
			if s.overBudget(start, processed) {
				s.yield("time", processed)
				return nil
			}
		}

		s.state = StateArranging
		for s.measureQueue.isEmpty() {
			n := s.arrangeQueue.getTopMost(s.cycle)
			if n == nil {
				break
			}
			s.current = n
			if s.onDequeue != nil {
				s.onDequeue(phaseArrange, n)
			}
			if err := s.Arrange(n, s.properArrangeRect(n)); err != nil {
				return s.failPass(n, err)
			}
			processed++
			if s.overBudget(start, processed) {
				s.yield("time", processed)
				return nil
			}
		}
		s.current = nil

		if s.hasDirtiness() {
			continue
		}

		s.state = StateFiringSizeChanged
		if !s.fireSizeChanged() {
			continue
		}

		s.state = StateFiringLayoutUpdated
		if s.layoutUpdated.Fire(s.hasDirtiness) {
			s.stats.LayoutUpdated++
		}
		if s.hasDirtiness() {
			continue
		}

		s.state = StateFiringAutomation
		s.automation.Fire(s.hasDirtiness)
		if s.hasDirtiness() {
			continue
		}

		s.state = StateFiringSizeChanged
		if !s.fireSizeChanged() {
			continue
		}
		s.firePostLayout = false
	}

	s.state = StateIdle
	s.logger.Debug("pass complete",
		"processed", processed,
		"iterations", iterations,
		"elapsed", s.clock().Sub(start),
	)
	return nil
}

// RunToQuiescence runs passes back to back until the scheduler is
// quiescent, ctx is done, or a pass fails. Budget yields do not return
// control to the host. Called from inside a pass it does nothing.
func (s *Scheduler) RunToQuiescence(ctx context.Context) error {
	if err := s.verifyAccess("RunToQuiescence"); err != nil {
		return err
	}
	if s.inPass || s.measureDepth > 0 || s.arrangeDepth > 0 {
		return nil
	}
	for !s.closed && !s.IsQuiescent() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.RunPass(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scheduler) overBudget(start time.Time, processed int) bool {
	if s.timeBudget <= 0 || processed%s.checkInterval != 0 {
		return false
	}
	return s.clock().Sub(start) > s.timeBudget
}

// yield stops the pass and posts a background continuation.
func (s *Scheduler) yield(reason string, count int) {
	s.state = StateAborted
	s.stats.Yields++
	s.firePostLayout = true
	s.logger.Warn("pass yielded",
		"reason", reason,
		"count", count,
		"measure", s.measureQueue.len(),
		"arrange", s.arrangeQueue.len(),
	)
	s.scheduleContinuation(PriorityBackground)
}

func (s *Scheduler) failPass(n Node, err error) error {
	s.fail(n, err)
	return err
}

// fail records a pass failure. Fatal failures leave the tree as it is;
// anything else anchors a full revalidation posted at PriorityIdle.
func (s *Scheduler) fail(n Node, err error) {
	s.state = StateFaulted
	s.stats.Faults++
	if IsFatal(err) {
		s.logger.Error("pass failed", "err", err, "fatal", true)
		return
	}
	depth := -1
	if n != nil {
		depth = n.LayoutBox().depth
	}
	s.logger.Error("pass failed", "err", err, "depth", depth)
	s.markFaulted(n)
}

func (s *Scheduler) markFaulted(n Node) {
	if n != nil {
		s.faultAnchor = n
	}
	s.faulted = true
	s.scheduleContinuation(PriorityIdle)
}

// recoverFromFault invalidates every node under the topmost ancestor of
// the fault anchor and queues that ancestor for both phases.
func (s *Scheduler) recoverFromFault() {
	anchor := s.faultAnchor
	if anchor == nil {
		anchor = s.root
	}
	s.faulted = false
	s.faultAnchor = nil
	if anchor == nil {
		return
	}

	top := rootOf(anchor)
	if top.LayoutBox().suspended {
		return
	}
	markTreeDirty(top)
	s.dropRequests(top)
	s.enqueue(phaseMeasure, top)
	s.enqueue(phaseArrange, top)
	s.firePostLayout = true
	s.stats.Recoveries++
	s.logger.Info("recovering from fault", "depth", anchor.LayoutBox().depth)
}

// dropRequests removes the measure and arrange requests of n's subtree.
func (s *Scheduler) dropRequests(n Node) {
	s.measureQueue.remove(n)
	s.arrangeQueue.remove(n)
	for _, c := range n.LayoutChildren() {
		s.dropRequests(c)
	}
}

// properArrangeRect returns the rectangle a queued node is rearranged at.
// A root laid out against an unbounded axis takes its desired size on that
// axis, and a root is always placed at the origin.
func (s *Scheduler) properArrangeRect(n Node) Rect {
	b := n.LayoutBox()
	r := b.finalRect
	if n.LayoutParent() != nil {
		return r
	}
	r.X, r.Y = 0, 0
	if b.prevConstraint.IsUnboundedWidth() {
		r.Width = b.desired.Width
	}
	if b.prevConstraint.IsUnboundedHeight() {
		r.Height = b.desired.Height
	}
	return r
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", r)
}
