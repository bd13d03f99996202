package domain

import "time"

// Event is a concert at one venue. The display name, price and public
// availability are derived when a headliner is rostered; until then the
// event is a placeholder named after the venue and closed for sale.
type Event struct {
	ID                 string
	Name               string
	EventDate          time.Time
	AvailableForPublic bool
	Price              float64
	TicketCounter      int
	VenueID            string
	Deleted            bool
	DeletedAt          *time.Time
}

// HasPassed reports whether the event date lies before now. Mutating
// roster, date and admission operations are refused on past events.
func (e Event) HasPassed(now time.Time) bool {
	return e.EventDate.Before(now)
}
