package queue

// DefaultPoolCapacity is the default bound on the node free list, matching
// the worst case of a few gesture boundaries per frame with ample headroom.
const DefaultPoolCapacity = 32

// pool is a bounded free list of queue nodes. It avoids allocation churn on
// the hot enqueue path. No synchronization: acquire and release happen on
// the pipeline's single control goroutine.
type pool struct {
	free     []*node
	capacity int
}

func newPool(capacity int) *pool {
	if capacity <= 0 {
		capacity = DefaultPoolCapacity
	}
	return &pool{
		free:     make([]*node, 0, capacity),
		capacity: capacity,
	}
}

// acquire returns a zeroed node, reusing a pooled one when available and
// falling back to a fresh allocation otherwise. Never fails.
func (p *pool) acquire() *node {
	if n := len(p.free); n > 0 {
		reused := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		return reused
	}
	return &node{}
}

// release clears a node and returns it to the free list. Nodes beyond the
// capacity are dropped for the garbage collector.
func (p *pool) release(n *node) {
	n.event = nil
	n.policyFlags = 0
	n.older = nil
	n.newer = nil
	if len(p.free) < p.capacity {
		p.free = append(p.free, n)
	}
}
