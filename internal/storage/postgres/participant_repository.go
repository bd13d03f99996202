package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rb3ni/FeelGoodApp/internal/domain"
)

type ParticipantRepository struct {
	pool *pgxpool.Pool
}

func NewParticipantRepository(pool *pgxpool.Pool) *ParticipantRepository {
	return &ParticipantRepository{pool: pool}
}

func (r *ParticipantRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *ParticipantRepository) GetActiveEventForUpdate(ctx context.Context, eventID string) (domain.Event, error) {
	const query = `SELECT ` + eventColumns + ` FROM events WHERE id = $1 AND NOT deleted FOR UPDATE`

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

// GetVenueCapacity reads the room size regardless of the venue's
// deleted flag.
func (r *ParticipantRepository) GetVenueCapacity(ctx context.Context, venueID string) (int, error) {
	const query = `SELECT capacity FROM venues WHERE id = $1`

	var capacity int
	if err := r.queryRow(ctx, query, venueID).Scan(&capacity); err != nil {
		if isInvalidUUID(err) {
			return 0, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return 0, domain.ErrVenueNotFound
		}
		return 0, fmt.Errorf("get venue capacity: %w", err)
	}
	return capacity, nil
}

func (r *ParticipantRepository) UpdateAdmission(ctx context.Context, eventID string, ticketCounter int, availableForPublic bool) error {
	const stmt = `UPDATE events SET ticket_counter = $2, available_for_public = $3 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, eventID, ticketCounter, availableForPublic)
	if err != nil {
		return fmt.Errorf("update admission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *ParticipantRepository) CreateParticipant(ctx context.Context, participant domain.Participant) error {
	const stmt = `
INSERT INTO participants (id, event_id, name, email)
VALUES ($1, $2, $3, $4)`

	_, err := r.exec(ctx, stmt,
		participant.ID,
		participant.EventID,
		participant.Name,
		participant.Email,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("create participant: %w", err)
	}
	return nil
}

func (r *ParticipantRepository) ListParticipantsByEvent(ctx context.Context, eventID string) ([]domain.Participant, error) {
	const query = `
SELECT p.id, p.event_id, p.name, p.email
FROM participants p
JOIN events e ON e.id = p.event_id
WHERE p.event_id = $1 AND NOT e.deleted
ORDER BY p.created_at ASC`

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

func (r *ParticipantRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *ParticipantRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *ParticipantRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
