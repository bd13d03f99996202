package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rb3ni/FeelGoodApp/internal/domain"
	"github.com/rb3ni/FeelGoodApp/internal/testutil"
)

func TestPerformerRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewPerformerRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	t.Run("CreatePerformer enforces active-name uniqueness", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		testutil.InsertPerformer(t, ctx, pool, "Mogwai", domain.PartnerTier4)

		err := repo.CreatePerformer(ctx, domain.Performer{
			ID:          "4f0979cb-6e28-47f8-8c4c-0e0bbbcbd8b0",
			Name:        "Mogwai",
			Genre:       domain.GenrePostRock,
			PartnerTier: domain.PartnerTier4,
		})
		if !errors.Is(err, domain.ErrPerformerNameTaken) {
			t.Fatalf("expected ErrPerformerNameTaken, got %v", err)
		}
	})

	t.Run("soft-deleted performers disappear from reads", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		performerID := testutil.InsertPerformer(t, ctx, pool, "EF", domain.PartnerTier2)

		if err := repo.SoftDeletePerformer(ctx, performerID, time.Now().UTC()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		_, err := repo.GetActivePerformer(ctx, performerID)
		if !errors.Is(err, domain.ErrPerformerNotFound) {
			t.Fatalf("expected ErrPerformerNotFound, got %v", err)
		}

		performers, err := repo.ListActivePerformers(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(performers) != 0 {
			t.Fatalf("expected no active performers, got %+v", performers)
		}
	})

	t.Run("booking queries split on date and deleted flag", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		now := time.Now().UTC()
		venueID := testutil.InsertVenue(t, ctx, pool, "Arena", 500)
		performerID := testutil.InsertPerformer(t, ctx, pool, "Mogwai", domain.PartnerTier4)

		pastEvent := testutil.InsertEvent(t, ctx, pool, venueID, domain.Event{
			Name:      "Past Show",
			EventDate: now.Add(-24 * time.Hour),
		})
		futureEvent := testutil.InsertEvent(t, ctx, pool, venueID, domain.Event{
			Name:      "Future Show",
			EventDate: now.Add(24 * time.Hour),
		})
		deletedAt := now
		deletedFutureEvent := testutil.InsertEvent(t, ctx, pool, venueID, domain.Event{
			Name:      "Cancelled Show",
			EventDate: now.Add(48 * time.Hour),
			Deleted:   true,
			DeletedAt: &deletedAt,
		})
		testutil.InsertRosterEntry(t, ctx, pool, pastEvent, performerID, false)
		testutil.InsertRosterEntry(t, ctx, pool, futureEvent, performerID, true)
		testutil.InsertRosterEntry(t, ctx, pool, deletedFutureEvent, performerID, false)

		// future bookings ignore the deleted flag
		future, err := repo.ListFutureBookings(ctx, performerID, now)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(future) != 2 {
			t.Fatalf("expected 2 future bookings, got %+v", future)
		}

		// active bookings ignore the date but skip deleted events
		active, err := repo.ListActiveBookings(ctx, performerID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(active) != 2 {
			t.Fatalf("expected 2 active bookings, got %+v", active)
		}
		for _, booking := range active {
			if booking.EventID == deletedFutureEvent {
				t.Fatalf("expected deleted event excluded from active bookings")
			}
		}
	})
}
