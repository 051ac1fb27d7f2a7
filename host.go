package layout

// Priority orders callbacks posted to a Host. Higher values run first.
type Priority int

const (
	// PriorityIdle runs only when nothing else is pending. Fault recovery
	// passes are posted here.
	PriorityIdle Priority = iota
	// PriorityBackground runs below layout. Passes that yield on budget
	// continue here so input keeps flowing.
	PriorityBackground
	// PriorityLayout is the priority of a regular RequestPass.
	PriorityLayout
	// PriorityNormal is the default for application work.
	PriorityNormal
	// PriorityInput is for input handling.
	PriorityInput
)

var priorityNames = [...]string{"idle", "background", "layout", "normal", "input"}

// String returns the lowercase priority name.
func (p Priority) String() string {
	if p >= 0 && int(p) < len(priorityNames) {
		return priorityNames[p]
	}
	return "unknown"
}

// Host is the run loop that owns a Scheduler. The scheduler never blocks on
// it; it only posts callbacks and asks whether the caller is the owner.
type Host interface {
	// Schedule posts fn to run later on the owning goroutine.
	Schedule(fn func(), p Priority)

	// CheckAccess reports whether the calling goroutine owns the host.
	CheckAccess() bool
}
