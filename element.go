package layout

var _ Node = (*Element)(nil)

// Direction specifies the main axis for stacking children.
type Direction uint8

const (
	Column Direction = iota // Children stacked top-to-bottom
	Row                     // Children stacked left-to-right
)

// Style contains the layout properties of an Element.
type Style struct {
	// Sizing
	Width     Value
	Height    Value
	MinWidth  Value
	MinHeight Value
	MaxWidth  Value
	MaxHeight Value

	// Stacking
	Direction Direction
	Gap       float64 // Space between visible children on the main axis

	// Spacing
	Padding Edges
}

// DefaultStyle returns a Style with sensible defaults.
func DefaultStyle() Style {
	return Style{
		Width:     Auto(),
		Height:    Auto(),
		MinWidth:  Fixed(0),
		MinHeight: Fixed(0),
		MaxWidth:  Auto(), // No maximum
		MaxHeight: Auto(), // No maximum
		Direction: Column,
	}
}

// Element is a stack-panel node. It stacks its visible children along one
// axis and stretches them across the other. A leaf reports its intrinsic
// size plus padding.
type Element struct {
	// Tree structure
	children []*Element
	parent   *Element
	sched    *Scheduler

	box       Box
	style     Style
	intrinsic Size
	hidden    bool
	name      string

	// Hooks
	onMeasure     func(available Size) error
	onArrange     func(final Size) error
	onSizeChanged func(SizeChangedInfo)
}

// New creates a new Element with the given options.
// By default an Element is a visible, Auto-sized column.
func New(opts ...Option) *Element {
	e := &Element{
		style: DefaultStyle(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.box.collapsed = e.hidden
	return e
}

// Name returns the label given with WithName.
func (e *Element) Name() string {
	return e.name
}

// String implements fmt.Stringer.
func (e *Element) String() string {
	if e.name == "" {
		return "element"
	}
	return e.name
}

// Style returns the element's layout properties.
func (e *Element) Style() Style {
	return e.style
}

// SetStyle replaces the layout properties and invalidates measure.
func (e *Element) SetStyle(style Style) {
	e.style = style
	e.invalidateMeasure()
}

// SetWidth sets the width and invalidates measure.
func (e *Element) SetWidth(v Value) {
	e.style.Width = v
	e.invalidateMeasure()
}

// SetHeight sets the height and invalidates measure.
func (e *Element) SetHeight(v Value) {
	e.style.Height = v
	e.invalidateMeasure()
}

// SetGap sets the spacing between children and invalidates measure.
func (e *Element) SetGap(gap float64) {
	e.style.Gap = gap
	e.invalidateMeasure()
}

// SetPadding sets the padding and invalidates measure.
func (e *Element) SetPadding(p Edges) {
	e.style.Padding = p
	e.invalidateMeasure()
}

// SetDirection sets the stacking axis and invalidates measure.
func (e *Element) SetDirection(d Direction) {
	if e.style.Direction == d {
		return
	}
	e.style.Direction = d
	e.invalidateMeasure()
}

// IntrinsicSize returns the content size reported by a leaf.
func (e *Element) IntrinsicSize() Size {
	return e.intrinsic
}

// SetIntrinsicSize changes the content size and invalidates measure.
func (e *Element) SetIntrinsicSize(sz Size) {
	if e.intrinsic.Close(sz) {
		return
	}
	e.intrinsic = sz
	e.invalidateMeasure()
}

// Visible reports whether the element takes part in layout.
func (e *Element) Visible() bool {
	return !e.hidden
}

// SetVisible collapses (false) or restores (true) the element. A collapsed
// element and its subtree are skipped by layout and take no space.
func (e *Element) SetVisible(visible bool) {
	if e.hidden == !visible {
		return
	}
	e.hidden = !visible
	if e.sched == nil {
		e.box.collapsed = e.hidden
		return
	}
	e.sched.SetSuspended(e, e.hidden)
}

// InvalidateArrange requests a new arrange without a new measure.
func (e *Element) InvalidateArrange() {
	if e.sched != nil {
		e.sched.InvalidateArrange(e)
	}
}

// InvalidateMeasure requests a new measure.
func (e *Element) InvalidateMeasure() {
	e.invalidateMeasure()
}

func (e *Element) invalidateMeasure() {
	if e.sched != nil {
		e.sched.InvalidateMeasure(e)
	}
}

// Scheduler returns the scheduler the element is mounted under, or nil.
func (e *Element) Scheduler() *Scheduler {
	return e.sched
}
