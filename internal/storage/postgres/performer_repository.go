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

type PerformerRepository struct {
	pool *pgxpool.Pool
}

func NewPerformerRepository(pool *pgxpool.Pool) *PerformerRepository {
	return &PerformerRepository{pool: pool}
}

func (r *PerformerRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

const performerColumns = `id, name, email, contact_phone, genre, partner_tier, deleted, deleted_at`

func (r *PerformerRepository) CreatePerformer(ctx context.Context, performer domain.Performer) error {
	const stmt = `
INSERT INTO performers (id, name, email, contact_phone, genre, partner_tier)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.exec(ctx, stmt,
		performer.ID,
		performer.Name,
		performer.Email,
		performer.ContactPhone,
		performer.Genre,
		performer.PartnerTier,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrPerformerNameTaken
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create performer: %w", err)
	}
	return nil
}

func (r *PerformerRepository) ListActivePerformers(ctx context.Context) ([]domain.Performer, error) {
	const query = `SELECT ` + performerColumns + ` FROM performers WHERE NOT deleted ORDER BY created_at ASC`

	rows, err := r.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list performers: %w", err)
	}
	defer rows.Close()

	var performers []domain.Performer
	for rows.Next() {
		performer, err := scanPerformer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan performer: %w", err)
		}
		performers = append(performers, performer)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate performers: %w", rows.Err())
	}
	return performers, nil
}

func (r *PerformerRepository) GetActivePerformer(ctx context.Context, performerID string) (domain.Performer, error) {
	const query = `SELECT ` + performerColumns + ` FROM performers WHERE id = $1 AND NOT deleted`
	return r.getPerformer(ctx, query, performerID)
}

func (r *PerformerRepository) GetActivePerformerForUpdate(ctx context.Context, performerID string) (domain.Performer, error) {
	const query = `SELECT ` + performerColumns + ` FROM performers WHERE id = $1 AND NOT deleted FOR UPDATE`
	return r.getPerformer(ctx, query, performerID)
}

func (r *PerformerRepository) getPerformer(ctx context.Context, query, performerID string) (domain.Performer, error) {
	performer, err := scanPerformer(r.queryRow(ctx, query, performerID))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Performer{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Performer{}, domain.ErrPerformerNotFound
		}
		return domain.Performer{}, fmt.Errorf("get performer: %w", err)
	}
	return performer, nil
}

func (r *PerformerRepository) UpdatePerformerTier(ctx context.Context, performerID string, tier domain.PartnerTier) error {
	const stmt = `UPDATE performers SET partner_tier = $2 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, performerID, tier)
	if err != nil {
		return fmt.Errorf("update performer tier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPerformerNotFound
	}
	return nil
}

func (r *PerformerRepository) SoftDeletePerformer(ctx context.Context, performerID string, at time.Time) error {
	const stmt = `UPDATE performers SET deleted = TRUE, deleted_at = $2 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, performerID, at)
	if err != nil {
		return fmt.Errorf("soft delete performer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPerformerNotFound
	}
	return nil
}

// ListFutureBookings returns the performer's entries on events dated
// after now. The events' deleted flag is deliberately ignored; the
// deletion cascade queries future bookings directly.
func (r *PerformerRepository) ListFutureBookings(ctx context.Context, performerID string, now time.Time) ([]domain.RosterEntry, error) {
	const query = `
SELECT r.id, r.event_id, r.performer_id, r.is_headliner, r.registered_at
FROM roster_entries r
JOIN events e ON e.id = r.event_id
WHERE r.performer_id = $1 AND e.event_date > $2
ORDER BY r.registered_at ASC`

	return r.listBookings(ctx, query, performerID, now)
}

func (r *PerformerRepository) ListActiveBookings(ctx context.Context, performerID string) ([]domain.RosterEntry, error) {
	const query = `
SELECT r.id, r.event_id, r.performer_id, r.is_headliner, r.registered_at
FROM roster_entries r
JOIN events e ON e.id = r.event_id
WHERE r.performer_id = $1 AND NOT e.deleted
ORDER BY r.registered_at ASC`

	return r.listBookings(ctx, query, performerID)
}

func (r *PerformerRepository) listBookings(ctx context.Context, query string, args ...any) ([]domain.RosterEntry, error) {
	rows, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var entries []domain.RosterEntry
	for rows.Next() {
		entry, err := scanRosterEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		entries = append(entries, entry)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate bookings: %w", rows.Err())
	}
	return entries, nil
}

func scanPerformer(row pgx.Row) (domain.Performer, error) {
	var p domain.Performer
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.ContactPhone, &p.Genre, &p.PartnerTier, &p.Deleted, &p.DeletedAt)
	if err != nil {
		return domain.Performer{}, err
	}
	return p, nil
}

func (r *PerformerRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *PerformerRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *PerformerRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
