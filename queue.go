package layout

// request is one entry in a dirtyQueue. Requests are recycled through the
// queue's pocket instead of being allocated per invalidation.
type request struct {
	target     Node
	next, prev *request

	// held is the phase-cycle during which this request must not be
	// dequeued. It is set when the target was invalidated while its own
	// Measure/Arrange was running.
	held uint64
}

// dirtyQueue is the doubly linked list of pending requests for one phase.
// The measure and arrange queues differ only in which Box flags they read
// and write, selected by phase.
type dirtyQueue struct {
	phase phase
	head  *request
	count int

	pocket        *request
	pocketSize    int
	pocketCap     int
	pocketReserve int

	// maxRequests caps live requests; 0 means unlimited.
	maxRequests int
}

func newDirtyQueue(p phase, pocketCap, pocketReserve, maxRequests int) *dirtyQueue {
	q := &dirtyQueue{
		phase:         p,
		pocketCap:     pocketCap,
		pocketReserve: pocketReserve,
		maxRequests:   maxRequests,
	}
	for i := 0; i < pocketCap; i++ {
		q.pocket = &request{next: q.pocket}
		q.pocketSize++
	}
	return q
}

// add queues n unless it is already queued, suspended, or its parent's
// pending recomputation will reach it anyway. When the pocket is nearly
// empty, add climbs to the top of the layout island instead, marking every
// node on the way dirty, and queues only the topmost one.
func (q *dirtyQueue) add(n Node) error {
	b := n.LayoutBox()
	if b.request(q.phase) != nil || b.suspended {
		return nil
	}

	q.removeOrphans(n)

	if parent := n.LayoutParent(); parent != nil && q.canRelyOnParent(parent) {
		return nil
	}

	if q.pocketSize > q.pocketReserve {
		return q.addRequest(n)
	}

	for e := n; ; {
		p := e.LayoutParent()
		eb := e.LayoutBox()
		eb.invalidate(q.phase)
		if p == nil || p.LayoutBox().suspended || p.LayoutBox().inProgress(q.phase) {
			if eb.request(q.phase) != nil {
				return nil
			}
			q.removeOrphans(e)
			return q.addRequest(e)
		}
		q.remove(e)
		e = p
	}
}

// canRelyOnParent reports whether recomputing parent will revalidate its
// dirty children: it must itself be dirty and not already mid-call.
func (q *dirtyQueue) canRelyOnParent(parent Node) bool {
	pb := parent.LayoutBox()
	return !pb.valid(q.phase) && !pb.inProgress(q.phase)
}

// remove unlinks n's request, if any, and returns it to the pocket.
func (q *dirtyQueue) remove(n Node) {
	b := n.LayoutBox()
	r := b.request(q.phase)
	if r == nil {
		return
	}
	q.removeRequest(r)
	b.setRequest(q.phase, nil)
}

// removeOrphans drops requests for direct children of parent so the queue
// only holds the roots of dirty subtrees.
func (q *dirtyQueue) removeOrphans(parent Node) {
	level := parent.LayoutBox().depth
	for r := q.head; r != nil; {
		next := r.next
		child := r.target
		if child.LayoutBox().depth == level+1 && child.LayoutParent() == parent {
			q.removeRequest(r)
			child.LayoutBox().setRequest(q.phase, nil)
		}
		r = next
	}
}

// getTopMost returns the queued node with the smallest depth, ignoring
// requests held for cycle. It returns nil when no request is eligible.
func (q *dirtyQueue) getTopMost(cycle uint64) Node {
	var found Node
	best := -1
	for r := q.head; r != nil; r = r.next {
		if cycle != 0 && r.held == cycle {
			continue
		}
		d := r.target.LayoutBox().depth
		if best < 0 || d < best {
			found = r.target
			best = d
		}
	}
	return found
}

// hold marks n's request, if any, as ineligible for cycle.
func (q *dirtyQueue) hold(n Node, cycle uint64) {
	if r := n.LayoutBox().request(q.phase); r != nil {
		r.held = cycle
	}
}

func (q *dirtyQueue) isEmpty() bool {
	return q.head == nil
}

func (q *dirtyQueue) len() int {
	return q.count
}

// clear drops every request.
func (q *dirtyQueue) clear() {
	for q.head != nil {
		q.remove(q.head.target)
	}
}

func (q *dirtyQueue) addRequest(n Node) error {
	r, err := q.newRequest(n)
	if err != nil {
		return err
	}
	r.next = q.head
	if q.head != nil {
		q.head.prev = r
	}
	q.head = r
	q.count++
	n.LayoutBox().setRequest(q.phase, r)
	return nil
}

func (q *dirtyQueue) newRequest(n Node) (*request, error) {
	if q.maxRequests > 0 && q.count >= q.maxRequests {
		err := NewError(CodeResourceExhausted, "%s queue holds %d requests", q.phase, q.count)
		err.Limit = q.maxRequests
		return nil, err
	}
	var r *request
	if q.pocket != nil {
		r = q.pocket
		q.pocket = r.next
		q.pocketSize--
		r.next = nil
		r.prev = nil
	} else {
		r = &request{}
	}
	r.target = n
	r.held = 0
	return r, nil
}

func (q *dirtyQueue) removeRequest(r *request) {
	if r.prev == nil {
		q.head = r.next
	} else {
		r.prev.next = r.next
	}
	if r.next != nil {
		r.next.prev = r.prev
	}
	q.count--
	q.reuse(r)
}

func (q *dirtyQueue) reuse(r *request) {
	r.target = nil
	r.prev = nil
	r.next = nil
	if q.pocketSize < q.pocketCap {
		r.next = q.pocket
		q.pocket = r
		q.pocketSize++
	}
}
