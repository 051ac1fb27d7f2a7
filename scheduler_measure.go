package layout

import "math"

// Measure computes n's desired size for available, calling its
// MeasureOverride only when the cached result is stale or the constraint
// changed. Nodes call it for each child from their own MeasureOverride.
//
// Errors from MeasureOverride are returned unchanged.
func (s *Scheduler) Measure(n Node, available Size) (Size, error) {
	if n == nil {
		return Size{}, contractViolation("Measure: nil node")
	}
	if err := s.verifyAccess("Measure"); err != nil {
		return Size{}, err
	}
	if available.IsNaN() {
		return Size{}, contractViolation("Measure: NaN constraint %v", available)
	}

	b := n.LayoutBox()
	s.measureQueue.remove(n)

	if b.suspended {
		b.prevConstraint = available
		return Size{}, nil
	}
	if b.measureValid && b.measured && b.prevConstraint.Close(available) {
		return b.desired, nil
	}

	if s.measureDepth >= s.recursionLimit {
		err := NewError(CodeRecursionLimit, "measure nesting exceeded %d", s.recursionLimit)
		err.Limit = s.recursionLimit
		return Size{}, err
	}

	if b.arrangeValid {
		s.invalidate(phaseArrange, n)
	}

	prev := b.desired
	wasMeasured := b.measured
	b.measureValid = false

	desired, err := s.measureCore(n, b, available)
	if err != nil {
		b.measureRedirty = false
		return Size{}, err
	}
	if !finite(desired) {
		return Size{}, contractViolation("MeasureOverride returned %v", desired)
	}

	b.desired = desired
	b.prevConstraint = available
	b.measured = true
	s.stats.Measures++

	if b.measureRedirty {
		b.measureRedirty = false
		s.enqueue(phaseMeasure, n)
		s.measureQueue.hold(n, s.cycle)
	} else {
		b.measureValid = true
	}

	if wasMeasured && !prev.Close(desired) {
		if parent := n.LayoutParent(); parent != nil && !parent.LayoutBox().measureInProgress {
			s.InvalidateMeasure(parent)
		}
	}
	return desired, nil
}

func (s *Scheduler) measureCore(n Node, b *Box, available Size) (Size, error) {
	b.measureInProgress = true
	s.measureDepth++
	defer func() {
		b.measureInProgress = false
		s.measureDepth--
	}()
	return n.MeasureOverride(s, available)
}

// Arrange positions n at rect, relative to its parent. A node whose
// measure is stale is measured first, against its previous constraint, or
// against rect's size when it was never measured.
//
// Errors from MeasureOverride and ArrangeOverride are returned unchanged.
func (s *Scheduler) Arrange(n Node, rect Rect) error {
	if n == nil {
		return contractViolation("Arrange: nil node")
	}
	if err := s.verifyAccess("Arrange"); err != nil {
		return err
	}
	if rect.IsNaN() || math.IsInf(rect.Width, 0) || math.IsInf(rect.Height, 0) {
		return contractViolation("Arrange: invalid rect %v", rect)
	}

	b := n.LayoutBox()
	if b.suspended {
		s.arrangeQueue.remove(n)
		b.finalRect = rect
		return nil
	}

	if !b.measureValid || !b.measured {
		constraint := b.prevConstraint
		if !b.measured {
			constraint = rect.Size()
		}
		if _, err := s.Measure(n, constraint); err != nil {
			return err
		}
	}

	s.arrangeQueue.remove(n)
	if b.arrangeValid && b.arranged && b.finalRect.Close(rect) {
		return nil
	}

	if s.arrangeDepth >= s.recursionLimit {
		err := NewError(CodeRecursionLimit, "arrange nesting exceeded %d", s.recursionLimit)
		err.Limit = s.recursionLimit
		return err
	}

	prev := b.renderSize
	b.arrangeValid = false

	size, err := s.arrangeCore(n, b, rect.Size())
	if err != nil {
		b.arrangeRedirty = false
		return err
	}
	if !finite(size) {
		return contractViolation("ArrangeOverride returned %v", size)
	}

	b.renderSize = size
	b.finalRect = rect
	b.arranged = true
	s.stats.Arranges++

	if b.arrangeRedirty {
		b.arrangeRedirty = false
		s.enqueue(phaseArrange, n)
		s.arrangeQueue.hold(n, s.cycle)
	} else {
		b.arrangeValid = true
	}

	if !prev.Close(size) {
		s.sizeChanged.record(n, prev, size)
	}
	return nil
}

func (s *Scheduler) arrangeCore(n Node, b *Box, final Size) (Size, error) {
	b.arrangeInProgress = true
	s.arrangeDepth++
	defer func() {
		b.arrangeInProgress = false
		s.arrangeDepth--
	}()
	return n.ArrangeOverride(s, final)
}

func finite(sz Size) bool {
	return !sz.IsNaN() && !math.IsInf(sz.Width, 0) && !math.IsInf(sz.Height, 0)
}
