package domain

import "time"

type VenueType string

const (
	VenueTypeArena       VenueType = "arena"
	VenueTypeBandstand   VenueType = "bandstand"
	VenueTypeClub        VenueType = "club"
	VenueTypeConcertHall VenueType = "concert_hall"
	VenueTypeOpenAir     VenueType = "open_air"
)

func (t VenueType) Valid() bool {
	switch t {
	case VenueTypeArena, VenueTypeBandstand, VenueTypeClub, VenueTypeConcertHall, VenueTypeOpenAir:
		return true
	}
	return false
}

// Venue is a place that hosts events. The name is unique among
// non-deleted venues only; deleting a venue frees its name.
type Venue struct {
	ID           string
	Name         string
	ContactPhone string
	Address      string
	Capacity     int
	Type         VenueType
	Deleted      bool
	DeletedAt    *time.Time
}
