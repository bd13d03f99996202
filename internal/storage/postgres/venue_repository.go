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

type VenueRepository struct {
	pool *pgxpool.Pool
}

func NewVenueRepository(pool *pgxpool.Pool) *VenueRepository {
	return &VenueRepository{pool: pool}
}

func (r *VenueRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

const venueColumns = `id, name, contact_phone, address, capacity, venue_type, deleted, deleted_at`

func (r *VenueRepository) CreateVenue(ctx context.Context, venue domain.Venue) error {
	const stmt = `
INSERT INTO venues (id, name, contact_phone, address, capacity, venue_type)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.exec(ctx, stmt,
		venue.ID,
		venue.Name,
		venue.ContactPhone,
		venue.Address,
		venue.Capacity,
		venue.Type,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrVenueNameTaken
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create venue: %w", err)
	}
	return nil
}

func (r *VenueRepository) ListActiveVenues(ctx context.Context) ([]domain.Venue, error) {
	const query = `SELECT ` + venueColumns + ` FROM venues WHERE NOT deleted ORDER BY created_at ASC`

	rows, err := r.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	defer rows.Close()

	var venues []domain.Venue
	for rows.Next() {
		venue, err := scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("scan venue: %w", err)
		}
		venues = append(venues, venue)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate venues: %w", rows.Err())
	}
	return venues, nil
}

func (r *VenueRepository) GetActiveVenue(ctx context.Context, venueID string) (domain.Venue, error) {
	const query = `SELECT ` + venueColumns + ` FROM venues WHERE id = $1 AND NOT deleted`
	return r.getVenue(ctx, query, venueID)
}

func (r *VenueRepository) GetActiveVenueForUpdate(ctx context.Context, venueID string) (domain.Venue, error) {
	const query = `SELECT ` + venueColumns + ` FROM venues WHERE id = $1 AND NOT deleted FOR UPDATE`
	return r.getVenue(ctx, query, venueID)
}

func (r *VenueRepository) getVenue(ctx context.Context, query, venueID string) (domain.Venue, error) {
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

func (r *VenueRepository) SoftDeleteVenue(ctx context.Context, venueID string, at time.Time) error {
	const stmt = `UPDATE venues SET deleted = TRUE, deleted_at = $2 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, venueID, at)
	if err != nil {
		return fmt.Errorf("soft delete venue: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVenueNotFound
	}
	return nil
}

// SoftDeleteFutureEventsByVenue marks every future event at the venue
// deleted with the given instant, whatever their prior deleted state.
func (r *VenueRepository) SoftDeleteFutureEventsByVenue(ctx context.Context, venueID string, at time.Time) error {
	const stmt = `
UPDATE events
SET deleted = TRUE, deleted_at = $2
WHERE venue_id = $1 AND event_date > $2`

	if _, err := r.exec(ctx, stmt, venueID, at); err != nil {
		return fmt.Errorf("soft delete future events: %w", err)
	}
	return nil
}

func scanVenue(row pgx.Row) (domain.Venue, error) {
	var v domain.Venue
	err := row.Scan(&v.ID, &v.Name, &v.ContactPhone, &v.Address, &v.Capacity, &v.Type, &v.Deleted, &v.DeletedAt)
	if err != nil {
		return domain.Venue{}, err
	}
	return v, nil
}

func (r *VenueRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *VenueRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *VenueRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
