package domain

import "time"

// RosterEntry books one performer on one event. At most one entry per
// event carries IsHeadliner; a performer appears at most once per event.
type RosterEntry struct {
	ID           string
	EventID      string
	PerformerID  string
	IsHeadliner  bool
	RegisteredAt time.Time
}
