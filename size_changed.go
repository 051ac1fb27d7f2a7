package layout

import "github.com/grindlemire/go-layout/internal/geom"

// SizeChangedInfo describes a render size change delivered after a pass.
// PreviousSize is the size before the first change in the pass; NewSize is
// the size after the last one.
type SizeChangedInfo struct {
	Node          Node
	PreviousSize  Size
	NewSize       Size
	WidthChanged  bool
	HeightChanged bool

	next *SizeChangedInfo
}

// sizeChangedChain is a singly linked list built by prepending, so records
// are delivered most-recent-first.
type sizeChangedChain struct {
	head *SizeChangedInfo
}

// record notes that n's render size moved from prev to size. A node appears
// at most once in the chain; later changes update its existing record.
func (c *sizeChangedChain) record(n Node, prev, size Size) {
	b := n.LayoutBox()
	info := b.sizeChanged
	if info == nil {
		info = &SizeChangedInfo{Node: n, PreviousSize: prev, next: c.head}
		c.head = info
		b.sizeChanged = info
	}
	info.NewSize = size
	info.WidthChanged = !geom.AreClose(info.PreviousSize.Width, size.Width)
	info.HeightChanged = !geom.AreClose(info.PreviousSize.Height, size.Height)
}

// pop removes and returns the head record, or nil when empty.
func (c *sizeChangedChain) pop() *SizeChangedInfo {
	info := c.head
	if info == nil {
		return nil
	}
	c.head = info.next
	info.next = nil
	info.Node.LayoutBox().sizeChanged = nil
	return info
}

// remove drops n's record, if any.
func (c *sizeChangedChain) remove(n Node) {
	target := n.LayoutBox().sizeChanged
	if target == nil {
		return
	}
	n.LayoutBox().sizeChanged = nil
	if c.head == target {
		c.head = target.next
		target.next = nil
		return
	}
	for info := c.head; info != nil; info = info.next {
		if info.next == target {
			info.next = target.next
			target.next = nil
			return
		}
	}
}

func (c *sizeChangedChain) isEmpty() bool {
	return c.head == nil
}
