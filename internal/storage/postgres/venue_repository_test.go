package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rb3ni/FeelGoodApp/internal/domain"
	"github.com/rb3ni/FeelGoodApp/internal/testutil"
)

func TestVenueRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewVenueRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	t.Run("GetActiveVenue returns venue and ErrVenueNotFound", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		venueID := testutil.InsertVenue(t, ctx, pool, "Budapest Park", 500)

		venue, err := repo.GetActiveVenue(ctx, venueID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if venue.Name != "Budapest Park" || venue.Capacity != 500 {
			t.Fatalf("unexpected venue: %+v", venue)
		}

		missingID := "00000000-0000-0000-0000-000000000001"
		_, err = repo.GetActiveVenue(ctx, missingID)
		if !errors.Is(err, domain.ErrVenueNotFound) {
			t.Fatalf("expected ErrVenueNotFound, got %v", err)
		}

		_, err = repo.GetActiveVenue(ctx, "not-a-uuid")
		if !errors.Is(err, domain.ErrInvalidID) {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}
	})

	t.Run("CreateVenue enforces active-name uniqueness only", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		venueID := testutil.InsertVenue(t, ctx, pool, "Akvarium Klub", 700)

		err := repo.CreateVenue(ctx, domain.Venue{
			ID:       "9b4f94b3-41a2-4aa0-9422-02c823af1ad6",
			Name:     "Akvarium Klub",
			Capacity: 700,
			Type:     domain.VenueTypeClub,
		})
		if !errors.Is(err, domain.ErrVenueNameTaken) {
			t.Fatalf("expected ErrVenueNameTaken, got %v", err)
		}

		// deleting the original frees its name
		if err := repo.SoftDeleteVenue(ctx, venueID, time.Now().UTC()); err != nil {
			t.Fatalf("soft delete: %v", err)
		}
		err = repo.CreateVenue(ctx, domain.Venue{
			ID:       "9b4f94b3-41a2-4aa0-9422-02c823af1ad6",
			Name:     "Akvarium Klub",
			Capacity: 700,
			Type:     domain.VenueTypeClub,
		})
		if err != nil {
			t.Fatalf("expected name freed after deletion, got %v", err)
		}
	})

	t.Run("ListActiveVenues skips deleted venues", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		keptID := testutil.InsertVenue(t, ctx, pool, "Kept", 300)
		goneID := testutil.InsertVenue(t, ctx, pool, "Gone", 300)
		if err := repo.SoftDeleteVenue(ctx, goneID, time.Now().UTC()); err != nil {
			t.Fatalf("soft delete: %v", err)
		}

		venues, err := repo.ListActiveVenues(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(venues) != 1 || venues[0].ID != keptID {
			t.Fatalf("unexpected venues: %+v", venues)
		}
	})

	t.Run("SoftDeleteFutureEventsByVenue only touches future events", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		now := time.Now().UTC()
		venueID := testutil.InsertVenue(t, ctx, pool, "Arena", 500)
		pastID := testutil.InsertEvent(t, ctx, pool, venueID, domain.Event{
			Name:      "Past Show",
			EventDate: now.Add(-24 * time.Hour),
		})
		futureID := testutil.InsertEvent(t, ctx, pool, venueID, domain.Event{
			Name:      "Future Show",
			EventDate: now.Add(24 * time.Hour),
		})

		if err := repo.SoftDeleteFutureEventsByVenue(ctx, venueID, now); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		events := NewEventRepository(pool)
		if _, err := events.GetActiveEvent(ctx, pastID); err != nil {
			t.Fatalf("expected past event kept, got %v", err)
		}
		_, err := events.GetActiveEvent(ctx, futureID)
		if !errors.Is(err, domain.ErrEventNotFound) {
			t.Fatalf("expected future event deleted, got %v", err)
		}
	})
}
