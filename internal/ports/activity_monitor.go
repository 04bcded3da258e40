package ports

// ActivityMonitor receives a notification for every event the pipeline
// delivers out of the batch queue, carrying the event's original timestamp.
// Hosts typically forward this to power management to keep the screen awake.
type ActivityMonitor interface {
	UserActivity(eventTimeNanos int64)
}

// NoopActivityMonitor discards activity notifications.
type NoopActivityMonitor struct{}

// UserActivity discards the notification.
func (NoopActivityMonitor) UserActivity(eventTimeNanos int64) {}
