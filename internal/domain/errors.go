package domain

import "errors"

var (
	ErrVenueNotFound     = errors.New("music venue not found")
	ErrEventNotFound     = errors.New("event not found")
	ErrPerformerNotFound = errors.New("performer not found")
	ErrBookingNotFound   = errors.New("performer is not booked on event")

	ErrVenueNameTaken     = errors.New("music venue name already exists")
	ErrPerformerNameTaken = errors.New("performer name already exists")

	ErrPastEvent          = errors.New("event date already passed")
	ErrNotOpenForSale     = errors.New("event is not available for public")
	ErrPerformerBooked    = errors.New("performer already registered for event")
	ErrHeadlinerExists    = errors.New("event already has a headliner")
	ErrHeadlinerProtected = errors.New("headliner cannot be removed, change the event date or delete the event")

	ErrCapacityBelowMinimum = errors.New("venue capacity below minimum")
	ErrInvalidID            = errors.New("invalid id")
)
