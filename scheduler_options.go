package layout

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// SchedulerOption is a functional option for configuring a Scheduler.
type SchedulerOption func(*Scheduler) error

// WithConfig applies every field of cfg. Later options override it.
func WithConfig(cfg Config) SchedulerOption {
	return func(s *Scheduler) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		cfg.apply(s)
		return nil
	}
}

// WithRecursionLimit sets the nested Measure/Arrange ceiling.
// Default is 4096.
func WithRecursionLimit(n int) SchedulerOption {
	return func(s *Scheduler) error {
		if n < 1 {
			return fmt.Errorf("recursion limit must be at least 1")
		}
		s.recursionLimit = n
		return nil
	}
}

// WithTimeBudget sets how long a pass may run before yielding to the host.
// Default is 306ms. Zero disables time-slicing.
func WithTimeBudget(d time.Duration) SchedulerOption {
	return func(s *Scheduler) error {
		if d < 0 {
			return fmt.Errorf("time budget cannot be negative")
		}
		s.timeBudget = d
		return nil
	}
}

// WithCheckInterval sets how many nodes are processed between clock reads.
// Default is 153.
func WithCheckInterval(n int) SchedulerOption {
	return func(s *Scheduler) error {
		if n < 1 {
			return fmt.Errorf("check interval must be at least 1")
		}
		s.checkInterval = n
		return nil
	}
}

// WithMaxOuterIterations caps measure/arrange/notify rounds per pass.
// Default is 153.
func WithMaxOuterIterations(n int) SchedulerOption {
	return func(s *Scheduler) error {
		if n < 1 {
			return fmt.Errorf("max outer iterations must be at least 1")
		}
		s.maxOuterIterations = n
		return nil
	}
}

// WithPool sets the per-queue free-request capacity and its low-water mark.
// Defaults are 153 and 8.
func WithPool(capacity, reserve int) SchedulerOption {
	return func(s *Scheduler) error {
		if capacity < 0 {
			return fmt.Errorf("pool capacity cannot be negative")
		}
		if reserve < 0 || reserve > capacity {
			return fmt.Errorf("pool reserve must be between 0 and %d", capacity)
		}
		s.poolCapacity = capacity
		s.poolReserve = reserve
		return nil
	}
}

// WithMaxRequests caps live requests per queue. Default is 0 (unlimited).
func WithMaxRequests(n int) SchedulerOption {
	return func(s *Scheduler) error {
		if n < 0 {
			return fmt.Errorf("max requests cannot be negative")
		}
		s.maxRequests = n
		return nil
	}
}

// WithLogger sets the logger. Default is the LAYOUT_DEBUG file logger.
func WithLogger(l *log.Logger) SchedulerOption {
	return func(s *Scheduler) error {
		if l == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		s.logger = l
		return nil
	}
}

// WithClock replaces time.Now for budget checks.
func WithClock(now func() time.Time) SchedulerOption {
	return func(s *Scheduler) error {
		if now == nil {
			return fmt.Errorf("clock cannot be nil")
		}
		s.clock = now
		return nil
	}
}

// WithErrorHandler receives failures from passes the host ran on the
// scheduler's behalf, where there is no caller to return them to.
// By default they are logged.
func WithErrorHandler(fn func(error)) SchedulerOption {
	return func(s *Scheduler) error {
		s.onError = fn
		return nil
	}
}
