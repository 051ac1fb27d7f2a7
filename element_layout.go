package layout

import "math"

// LayoutBox implements Node.
func (e *Element) LayoutBox() *Box {
	return &e.box
}

// LayoutParent implements Node.
func (e *Element) LayoutParent() Node {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

// LayoutChildren implements Node.
func (e *Element) LayoutChildren() []Node {
	result := make([]Node, len(e.children))
	for i, child := range e.children {
		result[i] = child
	}
	return result
}

// MeasureOverride stacks the visible children along the main axis, each
// measured unbounded on that axis and against the content box on the
// cross axis. Explicit Width/Height replace the content size; Min/Max and
// the available size clamp the result.
func (e *Element) MeasureOverride(s *Scheduler, available Size) (Size, error) {
	if e.onMeasure != nil {
		if err := e.onMeasure(available); err != nil {
			return Size{}, err
		}
	}

	st := e.style
	outer := Size{
		Width:  st.Width.Resolve(available.Width, available.Width),
		Height: st.Height.Resolve(available.Height, available.Height),
	}
	inner := e.clamp(outer, available).Deflate(st.Padding)

	childAvail := inner
	if st.Direction == Row {
		childAvail.Width = math.Inf(1)
	} else {
		childAvail.Height = math.Inf(1)
	}

	var main, cross float64
	visible := 0
	for _, c := range e.children {
		if c.box.suspended {
			continue
		}
		d, err := s.Measure(c, childAvail)
		if err != nil {
			return Size{}, err
		}
		if visible > 0 {
			main += st.Gap
		}
		visible++
		if st.Direction == Row {
			main += d.Width
			cross = math.Max(cross, d.Height)
		} else {
			main += d.Height
			cross = math.Max(cross, d.Width)
		}
	}

	content := e.intrinsic
	if st.Direction == Row {
		content = content.Max(Size{Width: main, Height: cross})
	} else {
		content = content.Max(Size{Width: cross, Height: main})
	}
	content = content.Inflate(st.Padding)

	desired := Size{
		Width:  st.Width.Resolve(available.Width, content.Width),
		Height: st.Height.Resolve(available.Height, content.Height),
	}
	return e.clamp(desired, available), nil
}

// ArrangeOverride places visible children one after another along the
// main axis at their desired extent. Auto-sized children are stretched
// across the content box; sized ones keep their desired cross extent.
func (e *Element) ArrangeOverride(s *Scheduler, final Size) (Size, error) {
	if e.onArrange != nil {
		if err := e.onArrange(final); err != nil {
			return Size{}, err
		}
	}

	st := e.style
	inner := final.Deflate(st.Padding)
	offset := 0.0
	visible := 0
	for _, c := range e.children {
		if c.box.suspended {
			continue
		}
		if visible > 0 {
			offset += st.Gap
		}
		visible++

		d := c.box.desired
		var r Rect
		if st.Direction == Row {
			r = Rect{X: st.Padding.Left + offset, Y: st.Padding.Top, Width: d.Width, Height: inner.Height}
			if !c.style.Height.IsAuto() {
				r.Height = d.Height
			}
			offset += d.Width
		} else {
			r = Rect{X: st.Padding.Left, Y: st.Padding.Top + offset, Width: inner.Width, Height: d.Height}
			if !c.style.Width.IsAuto() {
				r.Width = d.Width
			}
			offset += d.Height
		}
		if err := s.Arrange(c, r); err != nil {
			return Size{}, err
		}
	}
	return final, nil
}

// OnRenderSizeChanged implements Node.
func (e *Element) OnRenderSizeChanged(info SizeChangedInfo) {
	if e.onSizeChanged != nil {
		e.onSizeChanged(info)
	}
}

// clamp applies Min/Max, then limits each bounded axis to available.
func (e *Element) clamp(sz, available Size) Size {
	st := e.style
	minW := st.MinWidth.Resolve(available.Width, 0)
	minH := st.MinHeight.Resolve(available.Height, 0)
	maxW := st.MaxWidth.Resolve(available.Width, math.Inf(1))
	maxH := st.MaxHeight.Resolve(available.Height, math.Inf(1))

	sz.Width = math.Max(minW, math.Min(sz.Width, maxW))
	sz.Height = math.Max(minH, math.Min(sz.Height, maxH))
	sz.Width = math.Min(sz.Width, available.Width)
	sz.Height = math.Min(sz.Height, available.Height)
	return sz
}

// Rect returns the rectangle of the last arrange, relative to the parent.
func (e *Element) Rect() Rect {
	return e.box.finalRect
}

// AbsoluteRect returns the last arranged rectangle in root coordinates.
func (e *Element) AbsoluteRect() Rect {
	r := e.box.finalRect
	for p := e.parent; p != nil; p = p.parent {
		r = r.Offset(p.box.finalRect.Location())
	}
	if e.parent == nil {
		r.X, r.Y = 0, 0
	}
	return r
}
