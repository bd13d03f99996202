package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rb3ni/FeelGoodApp/internal/clock"
	"github.com/rb3ni/FeelGoodApp/internal/domain"
)

func TestParticipantService_Admit(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)

	open := domain.Event{
		ID:                 "event-1",
		EventDate:          future,
		AvailableForPublic: true,
		TicketCounter:      40,
		VenueID:            "venue-1",
	}

	makeSvc := func(event domain.Event, capacity int) (*ParticipantService, *fakeParticipantRepo) {
		repo := newFakeParticipantRepo(event, capacity)
		svc := NewParticipantService(repo, fakeEventResolver{event.ID: {Event: event}}, clock.NewFixed(now))
		return svc, repo
	}

	t.Run("admits and increments the counter", func(t *testing.T) {
		svc, repo := makeSvc(open, 500)

		result, err := svc.Admit(context.Background(), AdmitInput{
			EventID: "event-1",
			Name:    "Anna",
			Email:   "anna@example.com",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Event.TicketCounter != 41 {
			t.Fatalf("expected counter 41, got %d", result.Event.TicketCounter)
		}
		if !result.Event.AvailableForPublic {
			t.Fatalf("expected event still open below capacity")
		}
		if len(repo.participants) != 1 {
			t.Fatalf("expected 1 participant stored, got %d", len(repo.participants))
		}
	})

	t.Run("the last seat closes the event for good", func(t *testing.T) {
		almostFull := open
		almostFull.TicketCounter = 499
		svc, repo := makeSvc(almostFull, 500)

		result, err := svc.Admit(context.Background(), AdmitInput{
			EventID: "event-1",
			Name:    "Bela",
			Email:   "bela@example.com",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Event.TicketCounter != 500 {
			t.Fatalf("expected counter 500, got %d", result.Event.TicketCounter)
		}
		if result.Event.AvailableForPublic {
			t.Fatalf("expected event closed at capacity")
		}

		_, err = svc.Admit(context.Background(), AdmitInput{
			EventID: "event-1",
			Name:    "Cecil",
			Email:   "cecil@example.com",
		})
		if !errors.Is(err, domain.ErrNotOpenForSale) {
			t.Fatalf("expected ErrNotOpenForSale, got %v", err)
		}
		if len(repo.participants) != 1 {
			t.Fatalf("expected capacity never exceeded, got %d participants", len(repo.participants))
		}
	})

	t.Run("closed events refuse admission", func(t *testing.T) {
		closed := open
		closed.AvailableForPublic = false
		svc, _ := makeSvc(closed, 500)

		_, err := svc.Admit(context.Background(), AdmitInput{EventID: "event-1", Name: "Anna", Email: "anna@example.com"})
		if !errors.Is(err, domain.ErrNotOpenForSale) {
			t.Fatalf("expected ErrNotOpenForSale, got %v", err)
		}
	})

	t.Run("a full counter refuses admission even while flagged open", func(t *testing.T) {
		full := open
		full.TicketCounter = 500
		svc, _ := makeSvc(full, 500)

		_, err := svc.Admit(context.Background(), AdmitInput{EventID: "event-1", Name: "Anna", Email: "anna@example.com"})
		if !errors.Is(err, domain.ErrNotOpenForSale) {
			t.Fatalf("expected ErrNotOpenForSale, got %v", err)
		}
	})

	t.Run("past events refuse admission", func(t *testing.T) {
		past := open
		past.EventDate = now.Add(-time.Hour)
		svc, _ := makeSvc(past, 500)

		_, err := svc.Admit(context.Background(), AdmitInput{EventID: "event-1", Name: "Anna", Email: "anna@example.com"})
		if !errors.Is(err, domain.ErrPastEvent) {
			t.Fatalf("expected ErrPastEvent, got %v", err)
		}
	})

	t.Run("unknown event returns ErrEventNotFound", func(t *testing.T) {
		svc, _ := makeSvc(open, 500)

		_, err := svc.Admit(context.Background(), AdmitInput{EventID: "missing", Name: "Anna", Email: "anna@example.com"})
		if !errors.Is(err, domain.ErrEventNotFound) {
			t.Fatalf("expected ErrEventNotFound, got %v", err)
		}
	})
}

func TestParticipantService_ListByEvent(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("resolves the event before listing", func(t *testing.T) {
		repo := newFakeParticipantRepo(domain.Event{ID: "event-1"}, 500)
		repo.participants = []domain.Participant{{ID: "p-1", EventID: "event-1", Name: "Anna"}}
		svc := NewParticipantService(repo, fakeEventResolver{}, clock.NewFixed(now))

		_, err := svc.ListByEvent(context.Background(), "event-1")
		if !errors.Is(err, domain.ErrEventNotFound) {
			t.Fatalf("expected ErrEventNotFound, got %v", err)
		}
	})

	t.Run("lists participants of an existing event", func(t *testing.T) {
		event := domain.Event{ID: "event-1"}
		repo := newFakeParticipantRepo(event, 500)
		repo.participants = []domain.Participant{{ID: "p-1", EventID: "event-1", Name: "Anna"}}
		svc := NewParticipantService(repo, fakeEventResolver{"event-1": {Event: event}}, clock.NewFixed(now))

		participants, err := svc.ListByEvent(context.Background(), "event-1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(participants) != 1 || participants[0].Name != "Anna" {
			t.Fatalf("unexpected participants %+v", participants)
		}
	})
}

type fakeEventResolver map[string]EventDetail

func (f fakeEventResolver) GetEvent(_ context.Context, eventID string) (EventDetail, error) {
	detail, ok := f[eventID]
	if !ok {
		return EventDetail{}, domain.ErrEventNotFound
	}
	return detail, nil
}

type fakeParticipantRepo struct {
	event        domain.Event
	capacity     int
	participants []domain.Participant
}

func newFakeParticipantRepo(event domain.Event, capacity int) *fakeParticipantRepo {
	return &fakeParticipantRepo{event: event, capacity: capacity}
}

func (f *fakeParticipantRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeParticipantRepo) GetActiveEventForUpdate(_ context.Context, eventID string) (domain.Event, error) {
	if f.event.ID != eventID || f.event.Deleted {
		return domain.Event{}, domain.ErrEventNotFound
	}
	return f.event, nil
}

func (f *fakeParticipantRepo) GetVenueCapacity(_ context.Context, _ string) (int, error) {
	return f.capacity, nil
}

func (f *fakeParticipantRepo) UpdateAdmission(_ context.Context, eventID string, ticketCounter int, availableForPublic bool) error {
	if f.event.ID != eventID {
		return domain.ErrEventNotFound
	}
	f.event.TicketCounter = ticketCounter
	f.event.AvailableForPublic = availableForPublic
	return nil
}

func (f *fakeParticipantRepo) CreateParticipant(_ context.Context, participant domain.Participant) error {
	f.participants = append(f.participants, participant)
	return nil
}

func (f *fakeParticipantRepo) ListParticipantsByEvent(_ context.Context, eventID string) ([]domain.Participant, error) {
	out := make([]domain.Participant, 0)
	for _, participant := range f.participants {
		if participant.EventID == eventID {
			out = append(out, participant)
		}
	}
	return out, nil
}
