package models

import (
	"strings"
	"time"
)

// Priority is the intake class of a waiting passenger.
type Priority string

const (
	PriorityNormal     Priority = "normal"
	PriorityAged       Priority = "aged"
	PriorityWheelchair Priority = "wheelchair"
	PrioritySick       Priority = "sick"
)

// ParsePriority normalizes user input; an empty value means normal.
func ParsePriority(s string) (Priority, bool) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PriorityNormal, true
	case PriorityNormal, PriorityAged, PriorityWheelchair, PrioritySick:
		return p, true
	default:
		return "", false
	}
}

// Expedited reports whether the passenger is placed ahead of normal intake.
func (p Priority) Expedited() bool {
	return p != PriorityNormal
}

// Passenger is a queued (or in-flight) rider.
type Passenger struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Priority Priority  `json:"priority"`
	JoinedAt time.Time `json:"joined_at"`
}
