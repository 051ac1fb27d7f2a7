package layout

import "testing"

func TestElement_StackLayout(t *testing.T) {
	type tc struct {
		root      func() (*Element, []*Element)
		available Size
		desired   Size
		rects     []Rect
	}

	tests := map[string]tc{
		"row with padding and gap": {
			root: func() (*Element, []*Element) {
				x := New(WithIntrinsicSize(10, 3))
				y := New(WithIntrinsicSize(5, 4))
				r := New(WithDirection(Row), WithPadding(1), WithGap(2))
				r.AddChild(x, y)
				return r, []*Element{x, y}
			},
			available: Size{Width: 100, Height: 20},
			desired:   Size{Width: 19, Height: 6},
			rects:     []Rect{NewRect(1, 1, 10, 18), NewRect(13, 1, 5, 18)},
		},
		"column stretches auto width": {
			root: func() (*Element, []*Element) {
				x := New(WithIntrinsicSize(10, 2))
				y := New(WithIntrinsicSize(4, 3))
				r := New()
				r.AddChild(x, y)
				return r, []*Element{x, y}
			},
			available: Size{Width: 50, Height: 50},
			desired:   Size{Width: 10, Height: 5},
			rects:     []Rect{NewRect(0, 0, 50, 2), NewRect(0, 2, 50, 3)},
		},
		"fixed and percent widths keep their cross extent": {
			root: func() (*Element, []*Element) {
				x := New(WithWidth(30), WithIntrinsicSize(10, 2))
				y := New(WithWidthPercent(50), WithIntrinsicSize(10, 2))
				r := New()
				r.AddChild(x, y)
				return r, []*Element{x, y}
			},
			available: Size{Width: 100, Height: 50},
			desired:   Size{Width: 50, Height: 4},
			rects:     []Rect{NewRect(0, 0, 30, 2), NewRect(0, 2, 50, 2)},
		},
		"max width clamps content": {
			root: func() (*Element, []*Element) {
				x := New(WithMaxWidth(20), WithIntrinsicSize(50, 1))
				r := New(WithDirection(Row))
				r.AddChild(x)
				return r, []*Element{x}
			},
			available: Size{Width: 100, Height: 10},
			desired:   Size{Width: 20, Height: 1},
			rects:     []Rect{NewRect(0, 0, 20, 10)},
		},
		"min height grows content": {
			root: func() (*Element, []*Element) {
				x := New(WithMinHeight(4), WithIntrinsicSize(3, 1))
				r := New()
				r.AddChild(x)
				return r, []*Element{x}
			},
			available: Size{Width: 10, Height: 10},
			desired:   Size{Width: 3, Height: 4},
			rects:     []Rect{NewRect(0, 0, 10, 4)},
		},
		"hidden child takes no space": {
			root: func() (*Element, []*Element) {
				x := New(WithIntrinsicSize(10, 2), WithVisible(false))
				y := New(WithIntrinsicSize(4, 3))
				r := New(WithGap(1))
				r.AddChild(x, y)
				return r, []*Element{y}
			},
			available: Size{Width: 20, Height: 20},
			desired:   Size{Width: 4, Height: 3},
			rects:     []Rect{NewRect(0, 0, 20, 3)},
		},
		"desired clamped to available": {
			root: func() (*Element, []*Element) {
				return New(WithIntrinsicSize(200, 200)), nil
			},
			available: Size{Width: 100, Height: 50},
			desired:   Size{Width: 100, Height: 50},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s, h := newTestScheduler(t)
			root, children := tt.root()
			root.Mount(s, tt.available)
			h.drain(t)

			if got := root.LayoutBox().DesiredSize(); got != tt.desired {
				t.Errorf("root desired = %v, want %v", got, tt.desired)
			}
			for i, c := range children {
				if got := c.Rect(); got != tt.rects[i] {
					t.Errorf("child %d rect = %v, want %v", i, got, tt.rects[i])
				}
			}
		})
	}
}

func TestElement_TreeMaintainsDepth(t *testing.T) {
	root := New(WithName("root"))
	mid := New(WithName("mid"))
	leaf := New(WithName("leaf"))
	mid.AddChild(leaf)

	if leaf.LayoutBox().Depth() != 1 {
		t.Errorf("leaf depth = %d, want 1 before attach", leaf.LayoutBox().Depth())
	}

	root.AddChild(mid)
	if mid.LayoutBox().Depth() != 1 || leaf.LayoutBox().Depth() != 2 {
		t.Errorf("depths = %d/%d, want 1/2", mid.LayoutBox().Depth(), leaf.LayoutBox().Depth())
	}
	if root.LayoutParent() != nil {
		t.Error("root LayoutParent() should be a nil interface")
	}
	if leaf.LayoutParent() != Node(mid) {
		t.Error("leaf LayoutParent() should be mid")
	}

	other := New(WithName("other"))
	root.AddChild(other)
	other.AddChild(leaf)
	if len(mid.Children()) != 0 || leaf.Parent() != other {
		t.Error("AddChild should move leaf from mid to other")
	}

	if !root.RemoveChild(mid) {
		t.Error("RemoveChild(mid) = false, want true")
	}
	if root.RemoveChild(mid) {
		t.Error("second RemoveChild(mid) = true, want false")
	}
	if got := root.Children(); len(got) != 1 || got[0] != other {
		t.Errorf("children = %v, want [other]", got)
	}

	var names []string
	root.Walk(func(e *Element) { names = append(names, e.Name()) })
	if len(names) != 3 || names[0] != "root" || names[1] != "other" || names[2] != "leaf" {
		t.Errorf("Walk order = %v, want [root other leaf]", names)
	}
}

func TestElement_MutationsInvalidate(t *testing.T) {
	type tc struct {
		mutate  func(tr testTree)
		measure bool
		arrange bool
	}

	tests := map[string]tc{
		"intrinsic size": {
			mutate:  func(tr testTree) { tr.b.SetIntrinsicSize(Size{Width: 1, Height: 1}) },
			measure: true,
			arrange: true,
		},
		"unchanged intrinsic size": {
			mutate: func(tr testTree) { tr.b.SetIntrinsicSize(Size{Width: 10, Height: 2}) },
		},
		"width": {
			mutate:  func(tr testTree) { tr.b.SetWidth(Fixed(3)) },
			measure: true,
			arrange: true,
		},
		"arrange only": {
			mutate:  func(tr testTree) { tr.b.InvalidateArrange() },
			arrange: true,
		},
		"same direction": {
			mutate: func(tr testTree) { tr.b.SetDirection(Column) },
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s, h := newTestScheduler(t)
			tr := newTestTree(nil)
			mountSettled(t, s, h, tr)

			tt.mutate(tr)
			b := tr.b.LayoutBox()
			if b.IsMeasureValid() == tt.measure {
				t.Errorf("measure valid = %v, want %v", b.IsMeasureValid(), !tt.measure)
			}
			if b.IsArrangeValid() == tt.arrange {
				t.Errorf("arrange valid = %v, want %v", b.IsArrangeValid(), !tt.arrange)
			}
		})
	}
}

func TestElement_AbsoluteRect(t *testing.T) {
	s, h := newTestScheduler(t)
	leaf := New(WithIntrinsicSize(3, 1))
	inner := New(WithPadding(2))
	inner.AddChild(leaf)
	spacer := New(WithIntrinsicSize(1, 5))
	root := New(WithPadding(1))
	root.AddChild(spacer, inner)
	root.Mount(s, Size{Width: 20, Height: 20})
	h.drain(t)

	// inner sits below the spacer at (1, 6); leaf is inset by inner's padding.
	if got := leaf.AbsoluteRect(); got != NewRect(3, 8, 14, 1) {
		t.Errorf("AbsoluteRect() = %v, want (3,8) 14x1", got)
	}
	if got := root.AbsoluteRect(); got != NewRect(0, 0, 20, 20) {
		t.Errorf("root AbsoluteRect() = %v, want 20x20 at origin", got)
	}
}
