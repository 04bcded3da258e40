package domain

// DefaultMaxHistorySamples bounds how many samples a single batched event may
// accumulate before the queue starts a fresh node instead.
const DefaultMaxHistorySamples = 128

// MergePolicy decides whether two motion events belong to the same batch.
// The rule is deliberately configurable: platforms differ on what their
// event libraries accept as a batchable continuation.
type MergePolicy struct {
	// MaxHistorySamples caps the total samples a merged event may hold.
	// Zero means unlimited.
	MaxHistorySamples int
}

// DefaultMergePolicy returns the policy used when none is configured:
// same device, same source, move-type actions only, monotonic event time,
// history capped at DefaultMaxHistorySamples.
func DefaultMergePolicy() MergePolicy {
	return MergePolicy{MaxHistorySamples: DefaultMaxHistorySamples}
}

// CanMerge reports whether src may be appended to dst as additional samples.
// Only move events from the same device and source merge; a down or up event
// is always a gesture boundary. Event time must not run backwards.
func (p MergePolicy) CanMerge(dst, src *MotionEvent) bool {
	if dst == nil || src == nil {
		return false
	}
	if dst.DeviceID != src.DeviceID || dst.Source != src.Source {
		return false
	}
	if dst.Action != ActionMove || src.Action != ActionMove {
		return false
	}
	if src.EventTimeNanos() < dst.EventTimeNanos() {
		return false
	}
	if p.MaxHistorySamples > 0 && len(dst.Samples)+len(src.Samples) > p.MaxHistorySamples {
		return false
	}
	return true
}
