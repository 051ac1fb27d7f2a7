package layout

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"
)

func TestDispatcher_PriorityOrder(t *testing.T) {
	d, err := NewDispatcher()
	if err != nil {
		t.Fatalf("NewDispatcher() error = %v", err)
	}

	var got []string
	d.Schedule(func() { got = append(got, "idle") }, PriorityIdle)
	d.Schedule(func() { got = append(got, "layout-1") }, PriorityLayout)
	d.Schedule(func() { got = append(got, "input") }, PriorityInput)
	d.Schedule(func() { got = append(got, "layout-2") }, PriorityLayout)
	d.Schedule(func() { got = append(got, "background") }, PriorityBackground)

	if d.Len() != 5 || d.LenAt(PriorityLayout) != 2 {
		t.Fatalf("Len() = %d, LenAt(layout) = %d, want 5 and 2", d.Len(), d.LenAt(PriorityLayout))
	}
	if n := d.RunPending(); n != 5 {
		t.Errorf("RunPending() = %d, want 5", n)
	}

	want := []string{"input", "layout-1", "layout-2", "background", "idle"}
	if !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestDispatcher_RunPendingIncludesNewWork(t *testing.T) {
	d, _ := NewDispatcher()

	ran := 0
	d.Schedule(func() {
		ran++
		d.Schedule(func() { ran++ }, PriorityIdle)
	}, PriorityNormal)

	if n := d.RunPending(); n != 2 || ran != 2 {
		t.Errorf("RunPending() = %d, ran = %d, want 2 and 2", n, ran)
	}
	if d.Step() {
		t.Error("Step() = true on an empty dispatcher")
	}
}

func TestDispatcher_OwnerAccess(t *testing.T) {
	d, _ := NewDispatcher()
	if !d.CheckAccess() {
		t.Fatal("CheckAccess() = false on the owner goroutine")
	}

	var wg sync.WaitGroup
	var offOwner bool
	wg.Add(1)
	go func() {
		defer wg.Done()
		offOwner = d.CheckAccess()
		d.Schedule(func() {}, PriorityNormal)
	}()
	wg.Wait()

	if offOwner {
		t.Error("CheckAccess() = true off the owner goroutine")
	}
	if d.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after cross-goroutine Schedule", d.Len())
	}
}

func TestDispatcher_InvalidSchedule(t *testing.T) {
	type tc struct {
		fn func()
		p  Priority
	}

	tests := map[string]tc{
		"nil callback":     {fn: nil, p: PriorityNormal},
		"unknown priority": {fn: func() {}, p: Priority(42)},
		"negative":         {fn: func() {}, p: Priority(-1)},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			d, _ := NewDispatcher()
			expectPanicCode(t, CodeContractViolation, func() { d.Schedule(tt.fn, tt.p) })
		})
	}
}

func TestWithFrameRate(t *testing.T) {
	type tc struct {
		fps      int
		expected time.Duration
		wantErr  bool
	}

	tests := map[string]tc{
		"60 fps":  {fps: 60, expected: time.Second / 60},
		"1 fps":   {fps: 1, expected: time.Second},
		"240 fps": {fps: 240, expected: time.Second / 240},
		"zero":    {fps: 0, wantErr: true},
		"too high": {
			fps:     241,
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			d, err := NewDispatcher(WithFrameRate(tt.fps))
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewDispatcher() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && d.frameDuration != tt.expected {
				t.Errorf("frameDuration = %v, want %v", d.frameDuration, tt.expected)
			}
		})
	}
}

func TestDispatcher_RunDrivesScheduler(t *testing.T) {
	d, _ := NewDispatcher(WithFrameRate(240))
	s, err := NewScheduler(d)
	if err != nil {
		t.Fatalf("NewScheduler() error = %v", err)
	}
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tr := newTestTree(nil)
	s.SubscribeLayoutUpdated(cancel)
	tr.r.Mount(s, Size{Width: 100, Height: 50})

	if err := d.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !s.IsQuiescent() {
		t.Error("scheduler not quiescent after Run")
	}
	if got := tr.b.Rect(); got != NewRect(0, 0, 100, 2) {
		t.Errorf("B rect = %v, want 100x2", got)
	}
}

func TestPriority_String(t *testing.T) {
	if PriorityBackground.String() != "background" || Priority(9).String() != "unknown" {
		t.Errorf("String() = %q/%q", PriorityBackground.String(), Priority(9).String())
	}
}
