package layout

import "github.com/grindlemire/go-layout/internal/notify"

// Unsubscribe removes a subscription. Calling it more than once is safe.
type Unsubscribe func()

// fireSizeChanged delivers pending size-changed records, most recent
// first. It stops as soon as a handler leaves the tree dirty and reports
// whether the chain was drained.
func (s *Scheduler) fireSizeChanged() bool {
	for {
		info := s.sizeChanged.pop()
		if info == nil {
			return true
		}
		s.current = info.Node
		s.stats.SizeChanged++
		info.Node.OnRenderSizeChanged(*info)
		s.current = nil
		if s.hasDirtiness() {
			return false
		}
	}
}

// SubscribeLayoutUpdated registers fn to run after every pass that leaves
// the tree clean. Subscribers run in registration order; a subscriber that
// dirties the tree ends the round, and the rest run after the next one.
func (s *Scheduler) SubscribeLayoutUpdated(fn func()) Unsubscribe {
	if err := s.verifyAccess("SubscribeLayoutUpdated"); err != nil {
		panic(err)
	}
	if fn == nil {
		panic(contractViolation("SubscribeLayoutUpdated: nil callback"))
	}
	return Unsubscribe(s.layoutUpdated.Add(fn))
}

// SubscribeAutomation registers fn to run after the layout-updated
// subscribers, for accessibility tree refresh.
func (s *Scheduler) SubscribeAutomation(fn func()) Unsubscribe {
	if err := s.verifyAccess("SubscribeAutomation"); err != nil {
		panic(err)
	}
	if fn == nil {
		panic(contractViolation("SubscribeAutomation: nil callback"))
	}
	return Unsubscribe(s.automation.Add(fn))
}

// SubscribeLayoutUpdatedWeak is SubscribeLayoutUpdated keyed on owner.
// The scheduler does not keep owner alive; once it is collected the
// subscription is dropped. fn receives owner and must not capture it.
func SubscribeLayoutUpdatedWeak[T any](s *Scheduler, owner *T, fn func(*T)) Unsubscribe {
	s.checkWeak("SubscribeLayoutUpdatedWeak", owner == nil, fn == nil)
	return Unsubscribe(notify.AddWeak(&s.layoutUpdated, owner, fn))
}

// SubscribeAutomationWeak is SubscribeAutomation keyed on owner.
func SubscribeAutomationWeak[T any](s *Scheduler, owner *T, fn func(*T)) Unsubscribe {
	s.checkWeak("SubscribeAutomationWeak", owner == nil, fn == nil)
	return Unsubscribe(notify.AddWeak(&s.automation, owner, fn))
}

func (s *Scheduler) checkWeak(op string, nilOwner, nilFn bool) {
	if err := s.verifyAccess(op); err != nil {
		panic(err)
	}
	if nilOwner || nilFn {
		panic(contractViolation("%s: nil owner or callback", op))
	}
}

// LayoutUpdatedSubscribers returns the number of live layout-updated
// subscriptions.
func (s *Scheduler) LayoutUpdatedSubscribers() int {
	return s.layoutUpdated.Len()
}
