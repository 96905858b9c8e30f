package domain

import (
	"fmt"
	"time"
)

// NotificationKind classifies a notification event.
type NotificationKind string

const (
	NotificationFinding          NotificationKind = "finding"
	NotificationRemoved          NotificationKind = "removed"
	NotificationDryRun           NotificationKind = "dry_run"
	NotificationThresholdTripped NotificationKind = "threshold_tripped"
	NotificationError            NotificationKind = "error"
)

// Colors attached to each notification kind.
const (
	ColorRed    = "#ff0000"
	ColorGreen  = "#46A346"
	ColorYellow = "#FFFF00"
	ColorOrange = "#FFA500"
)

// NotificationEvent is a single message for the notification channel.
// Member, Threshold and Detail are optional and depend on Kind.
type NotificationEvent struct {
	Kind      NotificationKind
	Timestamp time.Time
	Member    *Member
	Threshold *int   // set for NotificationThresholdTripped
	Detail    string // error detail for NotificationError
}

// NewFindingEvent reports a non-compliant member.
func NewFindingEvent(m Member, at time.Time) NotificationEvent {
	return NotificationEvent{Kind: NotificationFinding, Timestamp: at, Member: &m}
}

// NewRemovedEvent reports a member that was removed from the organization.
func NewRemovedEvent(m Member, at time.Time) NotificationEvent {
	return NotificationEvent{Kind: NotificationRemoved, Timestamp: at, Member: &m}
}

// NewDryRunEvent reports that removals were skipped because dry-run is enabled.
func NewDryRunEvent(at time.Time) NotificationEvent {
	return NotificationEvent{Kind: NotificationDryRun, Timestamp: at}
}

// NewThresholdTrippedEvent reports that the safety threshold blocked removals.
func NewThresholdTrippedEvent(threshold int, at time.Time) NotificationEvent {
	return NotificationEvent{Kind: NotificationThresholdTripped, Timestamp: at, Threshold: &threshold}
}

// NewErrorEvent reports a failure. m may be nil when the error is not tied to a member.
func NewErrorEvent(err error, m *Member, at time.Time) NotificationEvent {
	ev := NotificationEvent{Kind: NotificationError, Timestamp: at, Detail: err.Error()}
	if m != nil {
		member := *m
		ev.Member = &member
	}
	return ev
}

// Pretext returns the classification text shown above the message.
func (e NotificationEvent) Pretext() string {
	switch e.Kind {
	case NotificationFinding:
		return ":x: Github - Non-compliant user found :x:"
	case NotificationRemoved:
		return ":heavy_check_mark: Github - Non-compliant user was removed :heavy_check_mark:"
	case NotificationDryRun:
		return ":construction: Test mode is enabled. No users will be removed :construction:"
	case NotificationThresholdTripped:
		threshold := 0
		if e.Threshold != nil {
			threshold = *e.Threshold
		}
		return fmt.Sprintf(":rotating_light: Github - Safety threshold (*%d*) of users to remove from the organization has been hit.\n No users will be removed :rotating_light:", threshold)
	case NotificationError:
		return "Error: " + e.Detail
	default:
		return string(e.Kind)
	}
}

// Color returns the severity color for the event.
func (e NotificationEvent) Color() string {
	switch e.Kind {
	case NotificationRemoved:
		return ColorGreen
	case NotificationDryRun:
		return ColorYellow
	case NotificationThresholdTripped:
		return ColorOrange
	default:
		return ColorRed
	}
}
