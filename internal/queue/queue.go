// Package queue implements the frame-aligned batch queue at the heart of the
// touch pipeline. Incoming move samples are coalesced into the newest queued
// event when compatible; a flush drains every batch older than the frame
// deadline, in creation order.
package queue

import "github.com/a11ykit/touchpipe/internal/domain"

// node wraps one coalesced motion event plus the policy flags it arrived
// with. Links are intra-queue relations, not ownership: nodes are owned by
// the pool, the queue only threads them together.
type node struct {
	event       *domain.MotionEvent
	policyFlags domain.PolicyFlags

	// older points toward the least recently created node, newer toward the
	// head. The oldest node has no older link.
	older *node
	newer *node
}

// Queue is the batch queue. It stores a single head reference, always the
// most recently created node; the oldest node is discovered by traversal.
// Queue is not safe for concurrent use: everything runs on the pipeline's
// one control goroutine.
type Queue struct {
	head   *node
	merge  domain.MergePolicy
	pool   *pool
	length int
}

// New creates an empty queue. poolCapacity bounds the node free list; see
// DefaultPoolCapacity.
func New(merge domain.MergePolicy, poolCapacity int) *Queue {
	return &Queue{
		merge: merge,
		pool:  newPool(poolCapacity),
	}
}

// Enqueue adds an event to the queue. When the queue is empty a new head
// node is created and Enqueue returns true: the caller must arm a scheduled
// flush. Otherwise the event is merged into the current head when the merge
// policy allows, or linked in as the new head; both return false, since a
// flush is already pending.
func (q *Queue) Enqueue(event *domain.MotionEvent, policyFlags domain.PolicyFlags) bool {
	if q.head == nil {
		q.head = q.obtain(event, policyFlags)
		q.length = 1
		return true
	}
	if q.head.event.AddBatch(event, q.merge) {
		return false
	}
	n := q.obtain(event, policyFlags)
	n.older = q.head
	q.head.newer = n
	q.head = n
	q.length++
	return false
}

// Flush delivers every queued event whose timestamp is strictly earlier than
// frameTimeNanos, in creation order, releasing each node back to the pool.
// The walk starts at the oldest node, found by following older links from the
// head, and proceeds via newer links. The first node at or past the deadline
// is severed from its drained predecessors and left queued.
//
// Returns true when undrained nodes remain, in which case the caller must
// re-arm the scheduled flush for the next frame.
func (q *Queue) Flush(frameTimeNanos int64, deliver func(event *domain.MotionEvent, policyFlags domain.PolicyFlags)) bool {
	current := q.head
	if current == nil {
		return false
	}
	for current.older != nil {
		current = current.older
	}
	for {
		if current == nil {
			q.head = nil
			q.length = 0
			return false
		}
		if current.event.EventTimeNanos() >= frameTimeNanos {
			// Finished with this frame. The rest waits for the next one.
			current.older = nil
			return true
		}
		event, flags := current.event, current.policyFlags
		prior := current
		current = current.newer
		deliver(event, flags)
		q.pool.release(prior)
		q.length--
	}
}

// Clear discards every queued node without delivering it. Used on uninstall:
// queued-but-unflushed events are dropped, not delivered.
func (q *Queue) Clear() {
	for n := q.head; n != nil; {
		older := n.older
		q.pool.release(n)
		n = older
	}
	q.head = nil
	q.length = 0
}

// Len returns the number of queued nodes. Merged samples do not add nodes.
func (q *Queue) Len() int {
	return q.length
}

// Empty reports whether the queue holds no nodes.
func (q *Queue) Empty() bool {
	return q.head == nil
}

func (q *Queue) obtain(event *domain.MotionEvent, policyFlags domain.PolicyFlags) *node {
	n := q.pool.acquire()
	n.event = event
	n.policyFlags = policyFlags
	return n
}
