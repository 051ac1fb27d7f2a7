package layout

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"
)

// Dispatcher is a small single-goroutine run loop implementing Host.
// The goroutine that constructs it becomes its owner; callbacks only run
// on that goroutine. Schedule is safe to call from any goroutine.
type Dispatcher struct {
	mu     sync.Mutex
	queues [PriorityInput + 1][]func()
	wake   chan struct{}
	owner  uint64

	frameDuration time.Duration
}

// DispatcherOption is a functional option for configuring a Dispatcher.
type DispatcherOption func(*Dispatcher) error

// WithFrameRate sets the target frame rate for Run.
// Default is 60 fps (16ms frame duration). Valid range is 1-240 fps.
func WithFrameRate(fps int) DispatcherOption {
	return func(d *Dispatcher) error {
		if fps < 1 {
			return fmt.Errorf("frame rate must be at least 1 fps")
		}
		if fps > 240 {
			return fmt.Errorf("frame rate cannot exceed 240 fps")
		}
		d.frameDuration = time.Second / time.Duration(fps)
		return nil
	}
}

// NewDispatcher creates a Dispatcher owned by the calling goroutine.
func NewDispatcher(opts ...DispatcherOption) (*Dispatcher, error) {
	d := &Dispatcher{
		wake:          make(chan struct{}, 1),
		owner:         goroutineID(),
		frameDuration: 16 * time.Millisecond,
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Schedule enqueues fn at priority p. Callbacks of equal priority run in
// the order they were scheduled.
func (d *Dispatcher) Schedule(fn func(), p Priority) {
	if fn == nil {
		panic(contractViolation("dispatcher: nil callback"))
	}
	if p < PriorityIdle || p > PriorityInput {
		panic(contractViolation("dispatcher: unknown priority %d", p))
	}
	d.mu.Lock()
	d.queues[p] = append(d.queues[p], fn)
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// CheckAccess reports whether the caller is running on the owner goroutine.
func (d *Dispatcher) CheckAccess() bool {
	return goroutineID() == d.owner
}

// Len returns the number of pending callbacks.
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, q := range d.queues {
		n += len(q)
	}
	return n
}

// LenAt returns the number of pending callbacks at priority p.
func (d *Dispatcher) LenAt(p Priority) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queues[p])
}

// Step runs the highest-priority pending callback. It returns false when
// nothing was pending. Step must be called on the owner goroutine.
func (d *Dispatcher) Step() bool {
	if !d.CheckAccess() {
		panic(contractViolation("dispatcher: Step called off the owner goroutine"))
	}
	fn := d.pop()
	if fn == nil {
		return false
	}
	fn()
	return true
}

// RunPending runs callbacks until none are pending, including callbacks
// scheduled by the ones it runs. It returns how many ran.
func (d *Dispatcher) RunPending() int {
	n := 0
	for d.Step() {
		n++
	}
	return n
}

// Run processes callbacks until ctx is done. Each frame spends up to half
// the frame duration running callbacks, then sleeps for the remainder (or
// until new work arrives when the queue is empty).
func (d *Dispatcher) Run(ctx context.Context) error {
	if !d.CheckAccess() {
		return contractViolation("dispatcher: Run called off the owner goroutine")
	}
	for {
		frameStart := time.Now()

		deadline := frameStart.Add(d.frameDuration / 2)
		for time.Now().Before(deadline) {
			if !d.Step() {
				break
			}
			if ctx.Err() != nil {
				return nil
			}
		}

		if d.Len() == 0 {
			select {
			case <-d.wake:
			case <-ctx.Done():
				return nil
			}
			continue
		}

		elapsed := time.Since(frameStart)
		if elapsed < d.frameDuration {
			select {
			case <-time.After(d.frameDuration - elapsed):
			case <-ctx.Done():
				return nil
			}
		}
	}
}

func (d *Dispatcher) pop() func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for p := len(d.queues) - 1; p >= 0; p-- {
		q := d.queues[p]
		if len(q) == 0 {
			continue
		}
		fn := q[0]
		q[0] = nil
		d.queues[p] = q[1:]
		return fn
	}
	return nil
}

// goroutineID returns the current goroutine's ID.
// This uses runtime internals and is only for owner checks.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	// Stack trace starts with "goroutine NNN ["
	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] >= '0' && buf[i] <= '9' {
			id = id*10 + uint64(buf[i]-'0')
		} else {
			break
		}
	}
	return id
}
