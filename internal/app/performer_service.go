package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rb3ni/FeelGoodApp/internal/clock"
	"github.com/rb3ni/FeelGoodApp/internal/domain"
)

type PerformerRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreatePerformer(ctx context.Context, performer domain.Performer) error
	ListActivePerformers(ctx context.Context) ([]domain.Performer, error)
	GetActivePerformer(ctx context.Context, performerID string) (domain.Performer, error)
	GetActivePerformerForUpdate(ctx context.Context, performerID string) (domain.Performer, error)
	UpdatePerformerTier(ctx context.Context, performerID string, tier domain.PartnerTier) error
	SoftDeletePerformer(ctx context.Context, performerID string, at time.Time) error
	// ListFutureBookings returns the performer's roster entries on
	// events dated after now, irrespective of the events' deleted flag.
	ListFutureBookings(ctx context.Context, performerID string, now time.Time) ([]domain.RosterEntry, error)
	// ListActiveBookings returns the performer's roster entries on
	// non-deleted events.
	ListActiveBookings(ctx context.Context, performerID string) ([]domain.RosterEntry, error)
}

// EventRoster is the slice of EventService the performer cascade needs.
type EventRoster interface {
	DeleteEvent(ctx context.Context, eventID string) error
	RemovePerformer(ctx context.Context, eventID, performerID string) error
}

type PerformerService struct {
	repo   PerformerRepository
	events EventRoster
	clock  clock.Clock
}

func NewPerformerService(repo PerformerRepository, events EventRoster, clk clock.Clock) *PerformerService {
	return &PerformerService{
		repo:   repo,
		events: events,
		clock:  clk,
	}
}

type CreatePerformerInput struct {
	Name         string
	Email        string
	ContactPhone string
	Genre        domain.Genre
	PartnerTier  domain.PartnerTier
}

// CreatePerformer stores a new active performer. Name uniqueness among
// active performers surfaces from the storage layer as
// ErrPerformerNameTaken.
func (s *PerformerService) CreatePerformer(ctx context.Context, in CreatePerformerInput) (domain.Performer, error) {
	performer := domain.Performer{
		ID:           newID(),
		Name:         in.Name,
		Email:        in.Email,
		ContactPhone: in.ContactPhone,
		Genre:        in.Genre,
		PartnerTier:  in.PartnerTier,
	}

	if err := s.repo.CreatePerformer(ctx, performer); err != nil {
		return domain.Performer{}, err
	}
	return performer, nil
}

func (s *PerformerService) ListPerformers(ctx context.Context) ([]domain.Performer, error) {
	return s.repo.ListActivePerformers(ctx)
}

func (s *PerformerService) GetPerformer(ctx context.Context, performerID string) (domain.Performer, error) {
	return s.repo.GetActivePerformer(ctx, performerID)
}

// PerformerDetail is a performer together with their bookings on
// non-deleted events.
type PerformerDetail struct {
	Performer domain.Performer
	Bookings  []domain.RosterEntry
}

func (s *PerformerService) GetPerformerDetail(ctx context.Context, performerID string) (PerformerDetail, error) {
	performer, err := s.repo.GetActivePerformer(ctx, performerID)
	if err != nil {
		return PerformerDetail{}, err
	}
	bookings, err := s.repo.ListActiveBookings(ctx, performerID)
	if err != nil {
		return PerformerDetail{}, err
	}
	return PerformerDetail{Performer: performer, Bookings: bookings}, nil
}

func (s *PerformerService) UpdatePerformerTier(ctx context.Context, performerID string, tier domain.PartnerTier) (domain.Performer, error) {
	var performer domain.Performer

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		found, err := s.repo.GetActivePerformerForUpdate(txCtx, performerID)
		if err != nil {
			return err
		}
		if err := s.repo.UpdatePerformerTier(txCtx, performerID, tier); err != nil {
			return err
		}
		found.PartnerTier = tier
		performer = found
		return nil
	})
	if err != nil {
		return domain.Performer{}, err
	}
	return performer, nil
}

// DeletePerformer soft-deletes the performer, then walks their future
// bookings: a headlined event collapses entirely, a support booking is
// simply dropped. The fan-out runs one transaction per event, so an
// interrupted cascade is recovered by deleting again; sub-steps that
// find their target already gone are no-ops.
func (s *PerformerService) DeletePerformer(ctx context.Context, performerID string) error {
	now := s.clock.Now()

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		performer, err := s.repo.GetActivePerformerForUpdate(txCtx, performerID)
		if err != nil {
			return err
		}
		return s.repo.SoftDeletePerformer(txCtx, performer.ID, now)
	})
	if err != nil {
		return err
	}

	bookings, err := s.repo.ListFutureBookings(ctx, performerID, now)
	if err != nil {
		return fmt.Errorf("list future bookings for performer %s: %w", performerID, err)
	}

	for _, booking := range bookings {
		if booking.IsHeadliner {
			err = s.events.DeleteEvent(ctx, booking.EventID)
		} else {
			err = s.events.RemovePerformer(ctx, booking.EventID, performerID)
		}
		if err != nil && !errors.Is(err, domain.ErrEventNotFound) && !errors.Is(err, domain.ErrBookingNotFound) {
			return fmt.Errorf("cascade delete performer %s on event %s: %w", performerID, booking.EventID, err)
		}
	}
	return nil
}
