package layout

// Option configures an Element.
type Option func(*Element)

// WithName labels the element for logs and tests.
func WithName(name string) Option {
	return func(e *Element) {
		e.name = name
	}
}

// --- Dimension Options ---

// WithWidth sets a fixed width.
func WithWidth(w float64) Option {
	return func(e *Element) {
		e.style.Width = Fixed(w)
	}
}

// WithWidthPercent sets width as a percentage of the parent's available width.
func WithWidthPercent(percent float64) Option {
	return func(e *Element) {
		e.style.Width = Percent(percent)
	}
}

// WithHeight sets a fixed height.
func WithHeight(h float64) Option {
	return func(e *Element) {
		e.style.Height = Fixed(h)
	}
}

// WithHeightPercent sets height as a percentage of the parent's available height.
func WithHeightPercent(percent float64) Option {
	return func(e *Element) {
		e.style.Height = Percent(percent)
	}
}

// WithSize sets both width and height.
func WithSize(width, height float64) Option {
	return func(e *Element) {
		e.style.Width = Fixed(width)
		e.style.Height = Fixed(height)
	}
}

// WithMinWidth sets the minimum width.
func WithMinWidth(w float64) Option {
	return func(e *Element) {
		e.style.MinWidth = Fixed(w)
	}
}

// WithMinHeight sets the minimum height.
func WithMinHeight(h float64) Option {
	return func(e *Element) {
		e.style.MinHeight = Fixed(h)
	}
}

// WithMaxWidth sets the maximum width.
func WithMaxWidth(w float64) Option {
	return func(e *Element) {
		e.style.MaxWidth = Fixed(w)
	}
}

// WithMaxHeight sets the maximum height.
func WithMaxHeight(h float64) Option {
	return func(e *Element) {
		e.style.MaxHeight = Fixed(h)
	}
}

// WithIntrinsicSize sets the content size a leaf reports.
func WithIntrinsicSize(width, height float64) Option {
	return func(e *Element) {
		e.intrinsic = Size{Width: width, Height: height}
	}
}

// --- Stacking Options ---

// WithDirection sets the main axis for stacking children.
func WithDirection(d Direction) Option {
	return func(e *Element) {
		e.style.Direction = d
	}
}

// WithGap sets the space between children on the main axis.
func WithGap(gap float64) Option {
	return func(e *Element) {
		e.style.Gap = gap
	}
}

// WithPadding sets equal padding on all sides.
func WithPadding(n float64) Option {
	return func(e *Element) {
		e.style.Padding = EdgeAll(n)
	}
}

// WithPaddingEdges sets padding on each side.
func WithPaddingEdges(p Edges) Option {
	return func(e *Element) {
		e.style.Padding = p
	}
}

// WithVisible sets the initial visibility. Hidden elements take no space.
func WithVisible(visible bool) Option {
	return func(e *Element) {
		e.hidden = !visible
	}
}

// --- Hook Options ---

// WithOnMeasure sets a hook run at the start of every MeasureOverride.
// Returning an error fails the measure.
func WithOnMeasure(fn func(available Size) error) Option {
	return func(e *Element) {
		e.onMeasure = fn
	}
}

// WithOnArrange sets a hook run at the start of every ArrangeOverride.
// Returning an error fails the arrange.
func WithOnArrange(fn func(final Size) error) Option {
	return func(e *Element) {
		e.onArrange = fn
	}
}

// WithOnSizeChanged sets the handler for render size changes.
func WithOnSizeChanged(fn func(SizeChangedInfo)) Option {
	return func(e *Element) {
		e.onSizeChanged = fn
	}
}
