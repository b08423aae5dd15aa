// Package poller schedules dash refreshes and decides when to notify.
//
// Two independent streams run concurrently: a long-interval full refresh and
// a short-interval check against the newest known upstream activity. The
// short stream and focus events can trigger an out-of-band run of the long
// stream. Poll failures are logged and swallowed; the next cycle is always
// scheduled.
package poller

// StreamState is the lifecycle of one poll stream. Transitions:
// Idle -> Scheduled -> Running -> (Succeeded|Failed) -> Scheduled.
type StreamState int

const (
	StreamIdle StreamState = iota
	StreamScheduled
	StreamRunning
	StreamSucceeded
	StreamFailed
)

func (s StreamState) String() string {
	switch s {
	case StreamIdle:
		return "idle"
	case StreamScheduled:
		return "scheduled"
	case StreamRunning:
		return "running"
	case StreamSucceeded:
		return "succeeded"
	case StreamFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Stream names the two poll streams.
type Stream string

const (
	// StreamFullRefresh is the long-interval full dash refresh.
	StreamFullRefresh Stream = "full-refresh"
	// StreamUpdateCheck is the short-interval upstream activity check.
	StreamUpdateCheck Stream = "update-check"
)
