package layout

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/grindlemire/go-layout/internal/debug"
	"github.com/grindlemire/go-layout/internal/notify"
)

// PassState is the position of the pass state machine.
type PassState uint8

const (
	StateIdle PassState = iota
	StateMeasuring
	StateArranging
	StateFiringSizeChanged
	StateFiringLayoutUpdated
	StateFiringAutomation
	// StateAborted means the last pass yielded on its iteration or time
	// budget; a continuation is posted at PriorityBackground.
	StateAborted
	// StateFaulted means the last pass failed; unless the failure was fatal
	// a recovery pass is posted at PriorityIdle.
	StateFaulted
)

var stateNames = [...]string{
	"idle", "measuring", "arranging", "firing-size-changed",
	"firing-layout-updated", "firing-automation", "aborted", "faulted",
}

func (s PassState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Stats counts scheduler activity since construction.
type Stats struct {
	Passes        int // RunPass calls that did not return early
	Yields        int // passes that stopped on a budget
	Faults        int // passes that failed
	Recoveries    int // forced full-tree revalidations
	Measures      int // MeasureOverride calls that completed
	Arranges      int // ArrangeOverride calls that completed
	SizeChanged   int // size-changed records delivered
	LayoutUpdated int // layout-updated firings that visited every subscriber
}

// Scheduler keeps a tree's measure/arrange caches consistent. It queues
// dirty nodes per phase, drains them shallowest-first in cooperative passes
// posted to its Host, and fires post-pass notifications once both queues
// are empty.
//
// A Scheduler belongs to the goroutine that owns its Host. Every method
// except ID and Stats must be called from that goroutine.
type Scheduler struct {
	id     uuid.UUID
	host   Host
	logger *log.Logger
	clock  func() time.Time

	measureQueue  *dirtyQueue
	arrangeQueue  *dirtyQueue
	sizeChanged   sizeChangedChain
	layoutUpdated notify.List
	automation    notify.List

	root Node

	// Reentrancy
	measureDepth int
	arrangeDepth int
	inPass       bool

	state              PassState
	passPending        bool
	continuationQueued [PriorityInput + 1]bool
	firePostLayout     bool
	faulted            bool
	faultAnchor        Node
	current            Node
	cycle              uint64
	closed             bool

	// Configuration (set via options)
	recursionLimit     int
	timeBudget         time.Duration
	checkInterval      int
	maxOuterIterations int
	poolCapacity       int
	poolReserve        int
	maxRequests        int
	onError            func(error)

	stats Stats

	// onDequeue observes every node a pass takes from a queue. Tests only.
	onDequeue func(phase, Node)
}

// NewScheduler creates a Scheduler that posts its passes to host.
func NewScheduler(host Host, opts ...SchedulerOption) (*Scheduler, error) {
	if host == nil {
		return nil, fmt.Errorf("layout: scheduler requires a host")
	}

	cfg := DefaultConfig()
	s := &Scheduler{
		id:    uuid.New(),
		host:  host,
		clock: time.Now,
	}
	cfg.apply(s)

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if err := s.config().Validate(); err != nil {
		return nil, err
	}

	if s.logger == nil {
		s.logger = debug.Logger()
	}
	s.logger = s.logger.With("scheduler", s.id.String()[:8])

	s.measureQueue = newDirtyQueue(phaseMeasure, s.poolCapacity, s.poolReserve, s.maxRequests)
	s.arrangeQueue = newDirtyQueue(phaseArrange, s.poolCapacity, s.poolReserve, s.maxRequests)
	return s, nil
}

// ID returns the scheduler's instance id, used to tag its log lines.
func (s *Scheduler) ID() uuid.UUID {
	return s.id
}

// Stats returns a copy of the activity counters.
func (s *Scheduler) Stats() Stats {
	return s.stats
}

// State returns the current pass state.
func (s *Scheduler) State() PassState {
	return s.state
}

// Faulted reports whether a failed pass left a recovery pending.
func (s *Scheduler) Faulted() bool {
	return s.faulted
}

// FaultAnchor returns the node that was being processed when the last
// recoverable failure happened, or nil.
func (s *Scheduler) FaultAnchor() Node {
	return s.faultAnchor
}

// Root returns the node installed by SetRoot, or nil.
func (s *Scheduler) Root() Node {
	return s.root
}

// IsQuiescent reports whether nothing is queued, no notification is
// pending and no recovery is outstanding.
func (s *Scheduler) IsQuiescent() bool {
	return !s.hasDirtiness() && !s.firePostLayout && s.sizeChanged.isEmpty() && !s.faulted
}

// MeasureQueueLen returns the number of queued measure requests.
func (s *Scheduler) MeasureQueueLen() int {
	return s.measureQueue.len()
}

// ArrangeQueueLen returns the number of queued arrange requests.
func (s *Scheduler) ArrangeQueueLen() int {
	return s.arrangeQueue.len()
}

// Close tears the scheduler down. Queued requests are dropped and later
// invalidations and passes are no-ops. Close is idempotent.
func (s *Scheduler) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.measureQueue.clear()
	s.arrangeQueue.clear()
	for !s.sizeChanged.isEmpty() {
		s.sizeChanged.pop()
	}
	s.root = nil
	s.faultAnchor = nil
	s.faulted = false
	s.firePostLayout = false
	s.logger.Debug("scheduler closed")
}

func (s *Scheduler) hasDirtiness() bool {
	return !s.measureQueue.isEmpty() || !s.arrangeQueue.isEmpty()
}

func (s *Scheduler) queue(p phase) *dirtyQueue {
	if p == phaseMeasure {
		return s.measureQueue
	}
	return s.arrangeQueue
}

// verifyAccess returns a contract violation when called off the owner.
func (s *Scheduler) verifyAccess(op string) error {
	if !s.host.CheckAccess() {
		return contractViolation("%s called off the owner goroutine", op)
	}
	return nil
}

// mustAccess is verifyAccess for methods without an error return; misuse
// panics with the contract violation.
func (s *Scheduler) mustAccess(op string, n Node) {
	if err := s.verifyAccess(op); err != nil {
		panic(err)
	}
	if n == nil {
		panic(contractViolation("%s: nil node", op))
	}
}
