package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rb3ni/FeelGoodApp/internal/domain"
	"github.com/rb3ni/FeelGoodApp/internal/testutil"
)

func TestParticipantRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewParticipantRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	t.Run("admission round trip inside a transaction", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		venueID := testutil.InsertVenue(t, ctx, pool, "Arena", 500)
		eventID := testutil.InsertEvent(t, ctx, pool, venueID, domain.Event{
			Name:               "Show",
			EventDate:          time.Now().Add(24 * time.Hour).UTC(),
			AvailableForPublic: true,
			TicketCounter:      40,
		})

		err := repo.WithTx(ctx, func(txCtx context.Context) error {
			event, err := repo.GetActiveEventForUpdate(txCtx, eventID)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			capacity, err := repo.GetVenueCapacity(txCtx, event.VenueID)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if capacity != 500 {
				t.Fatalf("expected capacity 500, got %d", capacity)
			}

			if err := repo.UpdateAdmission(txCtx, eventID, event.TicketCounter+1, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			return repo.CreateParticipant(txCtx, domain.Participant{
				ID:      "72f2e5ae-9dfd-45bb-87b3-1ba522db3b13",
				EventID: eventID,
				Name:    "Anna",
				Email:   "anna@example.com",
			})
		})
		if err != nil {
			t.Fatalf("tx failed: %v", err)
		}

		participants, err := repo.ListParticipantsByEvent(ctx, eventID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(participants) != 1 || participants[0].Name != "Anna" {
			t.Fatalf("unexpected participants: %+v", participants)
		}
	})

	t.Run("CreateParticipant maps a missing event to ErrEventNotFound", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		err := repo.CreateParticipant(ctx, domain.Participant{
			ID:      "72f2e5ae-9dfd-45bb-87b3-1ba522db3b13",
			EventID: "00000000-0000-0000-0000-000000000001",
			Name:    "Anna",
			Email:   "anna@example.com",
		})
		if !errors.Is(err, domain.ErrEventNotFound) {
			t.Fatalf("expected ErrEventNotFound, got %v", err)
		}
	})

	t.Run("listing skips participants of deleted events", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		now := time.Now().UTC()
		venueID := testutil.InsertVenue(t, ctx, pool, "Arena", 500)
		deletedAt := now
		eventID := testutil.InsertEvent(t, ctx, pool, venueID, domain.Event{
			Name:      "Cancelled Show",
			EventDate: now.Add(24 * time.Hour),
			Deleted:   true,
			DeletedAt: &deletedAt,
		})
		if err := repo.CreateParticipant(ctx, domain.Participant{
			ID:      "72f2e5ae-9dfd-45bb-87b3-1ba522db3b13",
			EventID: eventID,
			Name:    "Anna",
			Email:   "anna@example.com",
		}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		participants, err := repo.ListParticipantsByEvent(ctx, eventID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(participants) != 0 {
			t.Fatalf("expected no participants listed, got %+v", participants)
		}
	})
}
