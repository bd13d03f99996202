package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rb3ni/FeelGoodApp/internal/clock"
	"github.com/rb3ni/FeelGoodApp/internal/domain"
)

type VenueRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreateVenue(ctx context.Context, venue domain.Venue) error
	ListActiveVenues(ctx context.Context) ([]domain.Venue, error)
	GetActiveVenue(ctx context.Context, venueID string) (domain.Venue, error)
	GetActiveVenueForUpdate(ctx context.Context, venueID string) (domain.Venue, error)
	SoftDeleteVenue(ctx context.Context, venueID string, at time.Time) error
	SoftDeleteFutureEventsByVenue(ctx context.Context, venueID string, at time.Time) error
}

type VenueService struct {
	repo        VenueRepository
	clock       clock.Clock
	minCapacity int
}

const defaultMinVenueCapacity = 200

func NewVenueService(repo VenueRepository, clk clock.Clock, opts ...VenueServiceOption) *VenueService {
	svc := &VenueService{
		repo:        repo,
		clock:       clk,
		minCapacity: defaultMinVenueCapacity,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type VenueServiceOption func(*VenueService)

// WithMinVenueCapacity overrides the capacity floor for new venues.
func WithMinVenueCapacity(n int) VenueServiceOption {
	return func(s *VenueService) {
		if n > 0 {
			s.minCapacity = n
		}
	}
}

type CreateVenueInput struct {
	Name         string
	ContactPhone string
	Address      string
	Capacity     int
	Type         domain.VenueType
}

// CreateVenue stores a new active venue. Name uniqueness among active
// venues is enforced by the storage layer, not pre-checked here.
func (s *VenueService) CreateVenue(ctx context.Context, in CreateVenueInput) (domain.Venue, error) {
	if in.Capacity < s.minCapacity {
		return domain.Venue{}, fmt.Errorf("capacity %d: %w", in.Capacity, domain.ErrCapacityBelowMinimum)
	}

	venue := domain.Venue{
		ID:           newID(),
		Name:         in.Name,
		ContactPhone: in.ContactPhone,
		Address:      in.Address,
		Capacity:     in.Capacity,
		Type:         in.Type,
	}

	if err := s.repo.CreateVenue(ctx, venue); err != nil {
		return domain.Venue{}, err
	}
	return venue, nil
}

func (s *VenueService) ListVenues(ctx context.Context) ([]domain.Venue, error) {
	return s.repo.ListActiveVenues(ctx)
}

func (s *VenueService) GetVenue(ctx context.Context, venueID string) (domain.Venue, error) {
	return s.repo.GetActiveVenue(ctx, venueID)
}

// DeleteVenue soft-deletes the venue and every future event hosted
// there, all stamped with the same instant. Past events stay untouched.
// There is no confirmation step: deleting a venue forfeits its bookings.
func (s *VenueService) DeleteVenue(ctx context.Context, venueID string) error {
	now := s.clock.Now()

	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		venue, err := s.repo.GetActiveVenueForUpdate(txCtx, venueID)
		if err != nil {
			return err
		}
		if err := s.repo.SoftDeleteVenue(txCtx, venue.ID, now); err != nil {
			return err
		}
		return s.repo.SoftDeleteFutureEventsByVenue(txCtx, venue.ID, now)
	})
}
