// Package telemetry provides interaction stats, comet ledgers and perf tracking.
package telemetry

// EventType identifies counted telemetry events.
type EventType uint8

const (
	EventCometSpawned EventType = iota
	EventSpawnSuppressed
	EventCometExpired
	EventCometEscaped
	EventPick
	EventPickMiss
	EventReset
	EventControlChange
	eventCount
)

var eventNames = [eventCount]string{
	"comets_spawned",
	"spawns_suppressed",
	"comets_expired",
	"comets_escaped",
	"picks",
	"pick_misses",
	"resets",
	"control_changes",
}

func (e EventType) String() string {
	if e < eventCount {
		return eventNames[e]
	}
	return "unknown"
}
