package app

import (
	"context"
	"fmt"

	"github.com/rb3ni/FeelGoodApp/internal/clock"
	"github.com/rb3ni/FeelGoodApp/internal/domain"
)

type ParticipantRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetActiveEventForUpdate(ctx context.Context, eventID string) (domain.Event, error)
	// GetVenueCapacity reads the hosting venue's capacity regardless of
	// its deleted flag; admission only cares about the room size.
	GetVenueCapacity(ctx context.Context, venueID string) (int, error)
	UpdateAdmission(ctx context.Context, eventID string, ticketCounter int, availableForPublic bool) error
	CreateParticipant(ctx context.Context, participant domain.Participant) error
	ListParticipantsByEvent(ctx context.Context, eventID string) ([]domain.Participant, error)
}

// EventResolver is the slice of EventService participant listing needs.
type EventResolver interface {
	GetEvent(ctx context.Context, eventID string) (EventDetail, error)
}

type ParticipantService struct {
	repo   ParticipantRepository
	events EventResolver
	clock  clock.Clock
}

func NewParticipantService(repo ParticipantRepository, events EventResolver, clk clock.Clock) *ParticipantService {
	return &ParticipantService{
		repo:   repo,
		events: events,
		clock:  clk,
	}
}

type AdmitInput struct {
	EventID string
	Name    string
	Email   string
}

// AdmissionResult is the admitted participant together with the event's
// updated counters.
type AdmissionResult struct {
	Participant domain.Participant
	Event       domain.Event
}

// Admit sells one ticket. The event row is locked for the whole
// check-then-increment so concurrent admissions at the capacity
// boundary serialize. Reaching capacity closes the event for public
// sale; nothing in this path ever reopens it.
func (s *ParticipantService) Admit(ctx context.Context, in AdmitInput) (AdmissionResult, error) {
	now := s.clock.Now()
	var result AdmissionResult

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		event, err := s.repo.GetActiveEventForUpdate(txCtx, in.EventID)
		if err != nil {
			return err
		}
		if err := ensureNotPast(event, now); err != nil {
			return err
		}

		capacity, err := s.repo.GetVenueCapacity(txCtx, event.VenueID)
		if err != nil {
			return err
		}
		if !event.AvailableForPublic || event.TicketCounter >= capacity {
			return fmt.Errorf("event %s: %w", in.EventID, domain.ErrNotOpenForSale)
		}

		event.TicketCounter++
		if event.TicketCounter >= capacity {
			event.AvailableForPublic = false
		}
		if err := s.repo.UpdateAdmission(txCtx, event.ID, event.TicketCounter, event.AvailableForPublic); err != nil {
			return err
		}

		participant := domain.Participant{
			ID:      newID(),
			Name:    in.Name,
			Email:   in.Email,
			EventID: event.ID,
		}
		if err := s.repo.CreateParticipant(txCtx, participant); err != nil {
			return err
		}

		result = AdmissionResult{Participant: participant, Event: event}
		return nil
	})
	if err != nil {
		return AdmissionResult{}, err
	}
	return result, nil
}

func (s *ParticipantService) ListByEvent(ctx context.Context, eventID string) ([]domain.Participant, error) {
	if _, err := s.events.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return s.repo.ListParticipantsByEvent(ctx, eventID)
}
