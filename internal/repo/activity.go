package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// ActivityRepo defines the persistence operations for Activities.
// All single-row operations are scoped by tripID to enforce ownership.
type ActivityRepo interface {
	// Create inserts a new activity and returns the persisted record.
	Create(ctx context.Context, a domain.Activity) (domain.Activity, error)

	// GetByID retrieves a single activity, scoped to the given tripID.
	// Returns domain.ErrNotFound if no activity with that ID exists under that trip.
	GetByID(ctx context.Context, tripID, activityID uuid.UUID) (domain.Activity, error)

	// ListByTripID returns every activity of a trip ordered by date, then start time.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)

	// ListByTripIDPaged returns one page of a trip's activities and the total count.
	ListByTripIDPaged(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Activity, int64, error)

	// ListByDate returns the activities of a trip on one day ordered by start time.
	ListByDate(ctx context.Context, tripID uuid.UUID, date time.Time) ([]domain.Activity, error)

	// Update overwrites the mutable fields of an activity, scoped to its trip.
	// Returns domain.ErrNotFound if no activity with that ID exists under that trip.
	Update(ctx context.Context, a domain.Activity) (domain.Activity, error)

	// Delete removes an activity by ID, scoped to the given tripID.
	// Returns domain.ErrNotFound if no activity with that ID exists under that trip.
	Delete(ctx context.Context, tripID, activityID uuid.UUID) error

	// DeleteByDestination removes the activities of a trip that belong to d:
	// rows linked to d.ID, plus unlinked rows whose city/country snapshot
	// matches d. Returns the number of rows removed.
	DeleteByDestination(ctx context.Context, tripID uuid.UUID, d domain.Destination) (int64, error)

	// DeleteByTripID removes every activity of a trip and returns the count.
	DeleteByTripID(ctx context.Context, tripID uuid.UUID) (int64, error)
}

// pgActivityRepo is the Postgres implementation of ActivityRepo.
type pgActivityRepo struct {
	db db
}

// NewActivityRepo constructs an ActivityRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewActivityRepo(db db) ActivityRepo {
	return &pgActivityRepo{db: db}
}

const activityColumns = `id, trip_id, destination_id, destination_city, destination_country,
		title, notes, date, start_minute, end_minute, duration_minutes, cost_amount,
		created_at, updated_at`

func (r *pgActivityRepo) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	const q = `
		INSERT INTO activities (trip_id, destination_id, destination_city, destination_country,
		                        title, notes, date, start_minute, end_minute, duration_minutes, cost_amount)
		VALUES (@trip_id, @destination_id, @city, @country,
		        @title, @notes, @date, @start_minute, @end_minute, @duration, @cost)
		RETURNING ` + activityColumns

	result, err := scanActivity(r.db.QueryRow(ctx, q, activityArgs(a)))
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) GetByID(ctx context.Context, tripID, activityID uuid.UUID) (domain.Activity, error) {
	const q = `SELECT ` + activityColumns + ` FROM activities WHERE id = @id AND trip_id = @trip_id`

	result, err := scanActivity(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": activityID, "trip_id": tripID}))
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	const q = `SELECT ` + activityColumns + `
		FROM activities
		WHERE trip_id = @trip_id
		ORDER BY date, start_minute, id`

	acts, err := r.list(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByTripID: %w", err)
	}
	return acts, nil
}

func (r *pgActivityRepo) ListByTripIDPaged(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Activity, int64, error) {
	args := pgx.NamedArgs{"trip_id": tripID, "limit": p.Limit, "offset": p.Offset()}

	var total int64
	const count = `SELECT count(*) FROM activities WHERE trip_id = @trip_id`
	if err := r.db.QueryRow(ctx, count, args).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.ActivityRepo.ListByTripIDPaged: count: %w", err)
	}

	const q = `SELECT ` + activityColumns + `
		FROM activities
		WHERE trip_id = @trip_id
		ORDER BY date, start_minute, id
		LIMIT @limit OFFSET @offset`
	acts, err := r.list(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ActivityRepo.ListByTripIDPaged: %w", err)
	}
	return acts, total, nil
}

func (r *pgActivityRepo) ListByDate(ctx context.Context, tripID uuid.UUID, date time.Time) ([]domain.Activity, error) {
	const q = `SELECT ` + activityColumns + `
		FROM activities
		WHERE trip_id = @trip_id AND date = @date
		ORDER BY start_minute, id`

	acts, err := r.list(ctx, q, pgx.NamedArgs{"trip_id": tripID, "date": domain.DateOf(date)})
	if err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByDate: %w", err)
	}
	return acts, nil
}

func (r *pgActivityRepo) Update(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	const q = `
		UPDATE activities
		SET destination_id      = @destination_id,
		    destination_city    = @city,
		    destination_country = @country,
		    title               = @title,
		    notes               = @notes,
		    date                = @date,
		    start_minute        = @start_minute,
		    end_minute          = @end_minute,
		    duration_minutes    = @duration,
		    cost_amount         = @cost,
		    updated_at          = now()
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + activityColumns

	args := activityArgs(a)
	args["id"] = a.ID

	result, err := scanActivity(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) Delete(ctx context.Context, tripID, activityID uuid.UUID) error {
	const q = `DELETE FROM activities WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": activityID, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.ActivityRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ActivityRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgActivityRepo) DeleteByDestination(ctx context.Context, tripID uuid.UUID, d domain.Destination) (int64, error) {
	const q = `
		DELETE FROM activities
		WHERE trip_id = @trip_id
		  AND (destination_id = @destination_id
		       OR (destination_id IS NULL
		           AND destination_city = @city
		           AND destination_country = @country))`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{
		"trip_id":        tripID,
		"destination_id": d.ID,
		"city":           d.City,
		"country":        d.Country,
	})
	if err != nil {
		return 0, fmt.Errorf("repo.ActivityRepo.DeleteByDestination: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *pgActivityRepo) DeleteByTripID(ctx context.Context, tripID uuid.UUID) (int64, error) {
	const q = `DELETE FROM activities WHERE trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return 0, fmt.Errorf("repo.ActivityRepo.DeleteByTripID: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *pgActivityRepo) list(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Activity, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var acts []domain.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		acts = append(acts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return acts, nil
}

func activityArgs(a domain.Activity) pgx.NamedArgs {
	destID := pgtype.UUID{}
	if a.DestinationID != nil {
		destID = pgtype.UUID{Bytes: *a.DestinationID, Valid: true}
	}
	return pgx.NamedArgs{
		"trip_id":        a.TripID,
		"destination_id": destID,
		"city":           a.City,
		"country":        a.Country,
		"title":          a.Title,
		"notes":          a.Notes,
		"date":           domain.DateOf(a.Date),
		"start_minute":   int(a.StartTime),
		"end_minute":     int(a.EndTime),
		"duration":       a.DurationMinutes,
		"cost":           a.Cost,
	}
}

// scanActivity maps a single database row into a domain.Activity.
func scanActivity(s scanner) (domain.Activity, error) {
	var (
		a                      domain.Activity
		id, tripID, destID     pgtype.UUID
		date                   pgtype.Date
		startMinute, endMinute int
	)

	err := s.Scan(&id, &tripID, &destID, &a.City, &a.Country, &a.Title, &a.Notes,
		&date, &startMinute, &endMinute, &a.DurationMinutes, &a.Cost, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Activity{}, domain.ErrNotFound
		}
		return domain.Activity{}, err
	}

	a.ID = uuid.UUID(id.Bytes)
	a.TripID = uuid.UUID(tripID.Bytes)
	if destID.Valid {
		d := uuid.UUID(destID.Bytes)
		a.DestinationID = &d
	}
	a.Date = date.Time
	a.StartTime = domain.ClockTime(startMinute)
	a.EndTime = domain.ClockTime(endMinute)
	return a, nil
}
