package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rb3ni/FeelGoodApp/internal/clock"
	"github.com/rb3ni/FeelGoodApp/internal/domain"
)

type EventRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreateEvent(ctx context.Context, event domain.Event) error
	ListActiveEvents(ctx context.Context) ([]domain.Event, error)
	GetActiveEvent(ctx context.Context, eventID string) (domain.Event, error)
	GetActiveEventForUpdate(ctx context.Context, eventID string) (domain.Event, error)
	UpdateEvent(ctx context.Context, event domain.Event) error
	SoftDeleteEvent(ctx context.Context, eventID string, at time.Time) error
	// GetVenue resolves a venue regardless of its deleted flag; an
	// active event keeps its venue reference even through a partially
	// applied venue-deletion cascade.
	GetVenue(ctx context.Context, venueID string) (domain.Venue, error)
	ListRosterEntries(ctx context.Context, eventID string) ([]domain.RosterEntry, error)
	FindRosterEntry(ctx context.Context, eventID, performerID string) (*domain.RosterEntry, error)
	HasHeadliner(ctx context.Context, eventID string) (bool, error)
	CreateRosterEntry(ctx context.Context, entry domain.RosterEntry) error
	DeleteRosterEntry(ctx context.Context, entryID string) error
	ListParticipants(ctx context.Context, eventID string) ([]domain.Participant, error)
}

// VenueDirectory is the slice of VenueService the event lifecycle needs.
type VenueDirectory interface {
	GetVenue(ctx context.Context, venueID string) (domain.Venue, error)
}

// PerformerDirectory resolves active performers for rostering. The
// performer repository satisfies it directly.
type PerformerDirectory interface {
	GetActivePerformer(ctx context.Context, performerID string) (domain.Performer, error)
}

type EventService struct {
	repo       EventRepository
	venues     VenueDirectory
	performers PerformerDirectory
	clock      clock.Clock
	prices     PriceList
}

func NewEventService(repo EventRepository, venues VenueDirectory, performers PerformerDirectory, clk clock.Clock, prices PriceList) *EventService {
	return &EventService{
		repo:       repo,
		venues:     venues,
		performers: performers,
		clock:      clk,
		prices:     prices,
	}
}

type CreateEventInput struct {
	EventDate   time.Time
	TicketCount int
	VenueID     string
}

// EventDetail is an event together with its roster and the
// participants admitted so far.
type EventDetail struct {
	Event        domain.Event
	Roster       []domain.RosterEntry
	Participants []domain.Participant
}

// CreateEvent stores a placeholder event at the venue: no headliner,
// price zero, closed for public sale. The ticket counter starts at the
// requested count since reserved tickets may pre-exist. The event date
// is taken as given; only later mutations are guarded against the past.
func (s *EventService) CreateEvent(ctx context.Context, in CreateEventInput) (domain.Event, error) {
	var event domain.Event

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		venue, err := s.venues.GetVenue(txCtx, in.VenueID)
		if err != nil {
			return err
		}

		event = domain.Event{
			ID:                 newID(),
			Name:               "No headliner performer yet - " + venue.Name,
			EventDate:          in.EventDate,
			AvailableForPublic: false,
			Price:              0,
			TicketCounter:      in.TicketCount,
			VenueID:            venue.ID,
		}
		return s.repo.CreateEvent(txCtx, event)
	})
	if err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

func (s *EventService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	return s.repo.ListActiveEvents(ctx)
}

func (s *EventService) GetEvent(ctx context.Context, eventID string) (EventDetail, error) {
	event, err := s.repo.GetActiveEvent(ctx, eventID)
	if err != nil {
		return EventDetail{}, err
	}
	roster, err := s.repo.ListRosterEntries(ctx, eventID)
	if err != nil {
		return EventDetail{}, err
	}
	participants, err := s.repo.ListParticipants(ctx, eventID)
	if err != nil {
		return EventDetail{}, err
	}
	return EventDetail{Event: event, Roster: roster, Participants: participants}, nil
}

type AddPerformerInput struct {
	EventID     string
	PerformerID string
	IsHeadliner bool
}

// AddPerformer books a performer on an upcoming event. Rostering a
// headliner renames the event after the performer, prices it by the
// performer's partner tier and opens it for public sale; an event holds
// at most one headliner.
func (s *EventService) AddPerformer(ctx context.Context, in AddPerformerInput) (EventDetail, error) {
	now := s.clock.Now()
	var detail EventDetail

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		performer, err := s.performers.GetActivePerformer(txCtx, in.PerformerID)
		if err != nil {
			return err
		}
		event, err := s.repo.GetActiveEventForUpdate(txCtx, in.EventID)
		if err != nil {
			return err
		}
		if err := ensureNotPast(event, now); err != nil {
			return err
		}

		existing, err := s.repo.FindRosterEntry(txCtx, in.EventID, in.PerformerID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("performer %s on event %s: %w", in.PerformerID, in.EventID, domain.ErrPerformerBooked)
		}

		if in.IsHeadliner {
			has, err := s.repo.HasHeadliner(txCtx, in.EventID)
			if err != nil {
				return err
			}
			if has {
				return fmt.Errorf("event %s: %w", in.EventID, domain.ErrHeadlinerExists)
			}

			venue, err := s.repo.GetVenue(txCtx, event.VenueID)
			if err != nil {
				return err
			}
			event.Name = performer.Name + " - " + venue.Name
			event.Price = s.prices.PriceFor(performer.PartnerTier)
			event.AvailableForPublic = true
			if err := s.repo.UpdateEvent(txCtx, event); err != nil {
				return err
			}
		}

		entry := domain.RosterEntry{
			ID:           newID(),
			EventID:      in.EventID,
			PerformerID:  in.PerformerID,
			IsHeadliner:  in.IsHeadliner,
			RegisteredAt: now,
		}
		if err := s.repo.CreateRosterEntry(txCtx, entry); err != nil {
			return err
		}

		roster, err := s.repo.ListRosterEntries(txCtx, in.EventID)
		if err != nil {
			return err
		}
		participants, err := s.repo.ListParticipants(txCtx, in.EventID)
		if err != nil {
			return err
		}
		detail = EventDetail{Event: event, Roster: roster, Participants: participants}
		return nil
	})
	if err != nil {
		return EventDetail{}, err
	}
	return detail, nil
}

// RemovePerformer drops a support act from an upcoming event. The
// headliner cannot be removed this way; the event must be re-dated or
// deleted instead.
func (s *EventService) RemovePerformer(ctx context.Context, eventID, performerID string) error {
	now := s.clock.Now()

	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		event, err := s.repo.GetActiveEventForUpdate(txCtx, eventID)
		if err != nil {
			return err
		}
		if err := ensureNotPast(event, now); err != nil {
			return err
		}

		entry, err := s.repo.FindRosterEntry(txCtx, eventID, performerID)
		if err != nil {
			return err
		}
		if entry == nil {
			return fmt.Errorf("performer %s on event %s: %w", performerID, eventID, domain.ErrBookingNotFound)
		}
		if entry.IsHeadliner {
			return fmt.Errorf("performer %s on event %s: %w", performerID, eventID, domain.ErrHeadlinerProtected)
		}
		return s.repo.DeleteRosterEntry(txCtx, entry.ID)
	})
}

// UpdateEventDate moves an upcoming event to a new date. Only the
// current date is guarded; the new date may itself lie in the past.
func (s *EventService) UpdateEventDate(ctx context.Context, eventID string, newDate time.Time) (domain.Event, error) {
	now := s.clock.Now()
	var event domain.Event

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		found, err := s.repo.GetActiveEventForUpdate(txCtx, eventID)
		if err != nil {
			return err
		}
		if err := ensureNotPast(found, now); err != nil {
			return err
		}

		found.EventDate = newDate
		if err := s.repo.UpdateEvent(txCtx, found); err != nil {
			return err
		}
		event = found
		return nil
	})
	if err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

// DeleteEvent soft-deletes an event. Past events are deletable; there
// is no temporal guard here.
func (s *EventService) DeleteEvent(ctx context.Context, eventID string) error {
	now := s.clock.Now()

	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		event, err := s.repo.GetActiveEventForUpdate(txCtx, eventID)
		if err != nil {
			return err
		}
		return s.repo.SoftDeleteEvent(txCtx, event.ID, now)
	})
}

func ensureNotPast(event domain.Event, now time.Time) error {
	if event.HasPassed(now) {
		return fmt.Errorf("event %s: %w", event.ID, domain.ErrPastEvent)
	}
	return nil
}
