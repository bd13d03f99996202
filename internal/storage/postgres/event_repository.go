package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rb3ni/FeelGoodApp/internal/domain"
)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

const eventColumns = `id, name, event_date, available_for_public, price, ticket_counter, venue_id, deleted, deleted_at`

func (r *EventRepository) CreateEvent(ctx context.Context, event domain.Event) error {
	const stmt = `
INSERT INTO events (id, name, event_date, available_for_public, price, ticket_counter, venue_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.exec(ctx, stmt,
		event.ID,
		event.Name,
		event.EventDate,
		event.AvailableForPublic,
		event.Price,
		event.TicketCounter,
		event.VenueID,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return domain.ErrVenueNotFound
		}
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (r *EventRepository) ListActiveEvents(ctx context.Context) ([]domain.Event, error) {
	const query = `SELECT ` + eventColumns + ` FROM events WHERE NOT deleted ORDER BY created_at ASC`

	rows, err := r.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate events: %w", rows.Err())
	}
	return events, nil
}

func (r *EventRepository) GetActiveEvent(ctx context.Context, eventID string) (domain.Event, error) {
	const query = `SELECT ` + eventColumns + ` FROM events WHERE id = $1 AND NOT deleted`
	return r.getEvent(ctx, query, eventID)
}

func (r *EventRepository) GetActiveEventForUpdate(ctx context.Context, eventID string) (domain.Event, error) {
	const query = `SELECT ` + eventColumns + ` FROM events WHERE id = $1 AND NOT deleted FOR UPDATE`
	return r.getEvent(ctx, query, eventID)
}

func (r *EventRepository) getEvent(ctx context.Context, query, eventID string) (domain.Event, error) {
	event, err := scanEvent(r.queryRow(ctx, query, eventID))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Event{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (r *EventRepository) UpdateEvent(ctx context.Context, event domain.Event) error {
	const stmt = `
UPDATE events
SET name = $2, event_date = $3, available_for_public = $4, price = $5, ticket_counter = $6
WHERE id = $1`

	tag, err := r.exec(ctx, stmt,
		event.ID,
		event.Name,
		event.EventDate,
		event.AvailableForPublic,
		event.Price,
		event.TicketCounter,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) SoftDeleteEvent(ctx context.Context, eventID string, at time.Time) error {
	const stmt = `UPDATE events SET deleted = TRUE, deleted_at = $2 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, eventID, at)
	if err != nil {
		return fmt.Errorf("soft delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// GetVenue resolves the hosting venue without filtering on its deleted
// flag; the event's venue reference stays meaningful either way.
func (r *EventRepository) GetVenue(ctx context.Context, venueID string) (domain.Venue, error) {
	const query = `SELECT ` + venueColumns + ` FROM venues WHERE id = $1`

	venue, err := scanVenue(r.queryRow(ctx, query, venueID))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Venue{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Venue{}, domain.ErrVenueNotFound
		}
		return domain.Venue{}, fmt.Errorf("get venue: %w", err)
	}
	return venue, nil
}

const rosterColumns = `id, event_id, performer_id, is_headliner, registered_at`

func (r *EventRepository) ListRosterEntries(ctx context.Context, eventID string) ([]domain.RosterEntry, error) {
	const query = `SELECT ` + rosterColumns + ` FROM roster_entries WHERE event_id = $1 ORDER BY registered_at ASC`

	rows, err := r.query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("list roster entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.RosterEntry
	for rows.Next() {
		entry, err := scanRosterEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan roster entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate roster entries: %w", rows.Err())
	}
	return entries, nil
}

func (r *EventRepository) FindRosterEntry(ctx context.Context, eventID, performerID string) (*domain.RosterEntry, error) {
	const query = `SELECT ` + rosterColumns + ` FROM roster_entries WHERE event_id = $1 AND performer_id = $2`

	entry, err := scanRosterEntry(r.queryRow(ctx, query, eventID, performerID))
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find roster entry: %w", err)
	}
	return &entry, nil
}

func (r *EventRepository) HasHeadliner(ctx context.Context, eventID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM roster_entries WHERE event_id = $1 AND is_headliner)`

	var has bool
	if err := r.queryRow(ctx, query, eventID).Scan(&has); err != nil {
		if isInvalidUUID(err) {
			return false, domain.ErrInvalidID
		}
		return false, fmt.Errorf("check headliner: %w", err)
	}
	return has, nil
}

func (r *EventRepository) CreateRosterEntry(ctx context.Context, entry domain.RosterEntry) error {
	const stmt = `
INSERT INTO roster_entries (id, event_id, performer_id, is_headliner, registered_at)
VALUES ($1, $2, $3, $4, $5)`

	_, err := r.exec(ctx, stmt,
		entry.ID,
		entry.EventID,
		entry.PerformerID,
		entry.IsHeadliner,
		entry.RegisteredAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrPerformerBooked
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create roster entry: %w", err)
	}
	return nil
}

// ListParticipants reads the admitted participants of an event in
// admission order. The caller has already resolved the event as
// active, so no deleted filter is joined in here.
func (r *EventRepository) ListParticipants(ctx context.Context, eventID string) ([]domain.Participant, error) {
	const query = `
SELECT id, event_id, name, email
FROM participants
WHERE event_id = $1
ORDER BY created_at ASC`

	rows, err := r.query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	var participants []domain.Participant
	for rows.Next() {
		var p domain.Participant
		if err := rows.Scan(&p.ID, &p.EventID, &p.Name, &p.Email); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate participants: %w", rows.Err())
	}
	return participants, nil
}

func (r *EventRepository) DeleteRosterEntry(ctx context.Context, entryID string) error {
	const stmt = `DELETE FROM roster_entries WHERE id = $1`

	tag, err := r.exec(ctx, stmt, entryID)
	if err != nil {
		return fmt.Errorf("delete roster entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func scanEvent(row pgx.Row) (domain.Event, error) {
	var e domain.Event
	err := row.Scan(
		&e.ID,
		&e.Name,
		&e.EventDate,
		&e.AvailableForPublic,
		&e.Price,
		&e.TicketCounter,
		&e.VenueID,
		&e.Deleted,
		&e.DeletedAt,
	)
	if err != nil {
		return domain.Event{}, err
	}
	return e, nil
}

func scanRosterEntry(row pgx.Row) (domain.RosterEntry, error) {
	var entry domain.RosterEntry
	err := row.Scan(&entry.ID, &entry.EventID, &entry.PerformerID, &entry.IsHeadliner, &entry.RegisteredAt)
	if err != nil {
		return domain.RosterEntry{}, err
	}
	return entry, nil
}

func (r *EventRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *EventRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *EventRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
