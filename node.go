package layout

// Node is the capability interface every tree element implements to take
// part in scheduled layout. The scheduler never owns nodes; it only keeps
// non-owning references in its queues while a node is dirty.
type Node interface {
	// LayoutBox returns the node's layout state. It must return the same
	// pointer for the lifetime of the node.
	LayoutBox() *Box

	// LayoutParent returns the parent within the layout tree, or nil for a root.
	LayoutParent() Node

	// LayoutChildren returns the children that participate in layout.
	LayoutChildren() []Node

	// MeasureOverride computes the node's desired size for the given
	// constraint. Implementations measure children with s.Measure.
	MeasureOverride(s *Scheduler, available Size) (Size, error)

	// ArrangeOverride positions children within final and returns the size
	// actually used. Implementations arrange children with s.Arrange.
	ArrangeOverride(s *Scheduler, final Size) (Size, error)

	// OnRenderSizeChanged is called after a pass when the arranged size
	// differs from the size reported by the previous arrange.
	OnRenderSizeChanged(info SizeChangedInfo)
}

// phase selects the measure or arrange half of a Box.
type phase uint8

const (
	phaseMeasure phase = iota
	phaseArrange
)

func (p phase) String() string {
	if p == phaseMeasure {
		return "measure"
	}
	return "arrange"
}

// Box holds the cached layout results and dirty-tracking flags of one
// node. Embed it (or hold it) in each Node implementation; the zero value
// is a dirty, never-laid-out node.
type Box struct {
	measureValid      bool
	arrangeValid      bool
	measureInProgress bool
	arrangeInProgress bool
	measured          bool // at least one Measure has completed
	arranged          bool // at least one Arrange has completed
	measureRedirty    bool // invalidated while measure was in progress
	arrangeRedirty    bool // invalidated while arrange was in progress
	suspended         bool // collapsed, detached, or under a suspended ancestor
	collapsed         bool
	detached          bool

	prevConstraint Size
	desired        Size
	finalRect      Rect
	renderSize     Size

	depth int

	measureReq *request
	arrangeReq *request

	sizeChanged *SizeChangedInfo
}

// IsMeasureValid reports whether the desired size is up to date.
func (b *Box) IsMeasureValid() bool { return b.measureValid }

// IsArrangeValid reports whether the arranged rectangle is up to date.
func (b *Box) IsArrangeValid() bool { return b.arrangeValid }

// MeasureInProgress reports whether MeasureOverride is on the stack.
func (b *Box) MeasureInProgress() bool { return b.measureInProgress }

// ArrangeInProgress reports whether ArrangeOverride is on the stack.
func (b *Box) ArrangeInProgress() bool { return b.arrangeInProgress }

// DesiredSize returns the size computed by the last measure.
func (b *Box) DesiredSize() Size { return b.desired }

// PreviousConstraint returns the constraint of the last measure.
func (b *Box) PreviousConstraint() Size { return b.prevConstraint }

// PreviousArrangeRect returns the rectangle of the last arrange, relative
// to the parent.
func (b *Box) PreviousArrangeRect() Rect { return b.finalRect }

// RenderSize returns the size reported by the last arrange.
func (b *Box) RenderSize() Size { return b.renderSize }

// Depth returns the distance from the root (root = 0).
func (b *Box) Depth() int { return b.depth }

// Suspended reports whether layout is suspended for this node, either
// because it is collapsed or because it was detached.
func (b *Box) Suspended() bool { return b.suspended }

func (b *Box) valid(p phase) bool {
	if p == phaseMeasure {
		return b.measureValid
	}
	return b.arrangeValid
}

func (b *Box) inProgress(p phase) bool {
	if p == phaseMeasure {
		return b.measureInProgress
	}
	return b.arrangeInProgress
}

// everDone reports whether the phase has completed at least once. Nodes
// that were never measured are not queued; their parent reaches them.
func (b *Box) everDone(p phase) bool {
	if p == phaseMeasure {
		return b.measured
	}
	return b.arranged
}

func (b *Box) invalidate(p phase) {
	if p == phaseMeasure {
		b.measureValid = false
		return
	}
	b.arrangeValid = false
}

func (b *Box) markRedirty(p phase) {
	if p == phaseMeasure {
		b.measureRedirty = true
		return
	}
	b.arrangeRedirty = true
}

func (b *Box) request(p phase) *request {
	if p == phaseMeasure {
		return b.measureReq
	}
	return b.arrangeReq
}

func (b *Box) setRequest(p phase, r *request) {
	if p == phaseMeasure {
		b.measureReq = r
		return
	}
	b.arrangeReq = r
}

// setDepths assigns depth to n and its descendants.
func setDepths(n Node, depth int) {
	n.LayoutBox().depth = depth
	for _, c := range n.LayoutChildren() {
		setDepths(c, depth+1)
	}
}

// rootOf walks layout parents to the topmost ancestor of n.
func rootOf(n Node) Node {
	for {
		p := n.LayoutParent()
		if p == nil {
			return n
		}
		n = p
	}
}
