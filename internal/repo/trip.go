package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// TripRepo defines the persistence operations for Trips.
// Destinations, collaborators and the budget are stored on the trip row, so a
// single Update writes all of them at once.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with DB-generated
	// id, version, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// ListPaged returns one page of trips visible to userID (owned or shared),
	// ordered by start_date descending, plus the total count.
	// Pass uuid.Nil to list every trip.
	ListPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// Update overwrites the mutable fields of an existing trip if its stored
	// version still equals trip.Version, and returns the updated record with the
	// version incremented. Returns domain.ErrConflict when the version moved on
	// and domain.ErrNotFound if no trip with that ID exists.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip by ID. Returns domain.ErrNotFound if it does not exist.
	// Activities are not removed; callers delete them first.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, owner_id, name, start_date, end_date, destinations, collaborators,
		budget_total, budget_currency, budget_breakdown, version, created_at, updated_at`

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (owner_id, name, start_date, end_date, destinations, collaborators,
		                   budget_total, budget_currency, budget_breakdown)
		VALUES (@owner_id, @name, @start_date, @end_date, @destinations, @collaborators,
		        @budget_total, @budget_currency, @budget_breakdown)
		RETURNING ` + tripColumns

	args, err := tripArgs(trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns trips owned by or shared with userID, most recent first.
func (r *pgTripRepo) ListPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	const visible = `
		WHERE @user_id::uuid IS NULL
		   OR owner_id = @user_id
		   OR collaborators @> jsonb_build_array(jsonb_build_object('userId', @user_id::text))`

	args := pgx.NamedArgs{"user_id": nullableUUID(userID), "limit": p.Limit, "offset": p.Offset()}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM trips`+visible, args).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", err)
	}

	q := `SELECT ` + tripColumns + ` FROM trips` + visible + `
		ORDER BY start_date DESC, id
		LIMIT @limit OFFSET @offset`
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: rows: %w", err)
	}
	return trips, total, nil
}

// Update is a compare-and-swap on the version column.
func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET name             = @name,
		    start_date       = @start_date,
		    end_date         = @end_date,
		    destinations     = @destinations,
		    collaborators    = @collaborators,
		    budget_total     = @budget_total,
		    budget_currency  = @budget_currency,
		    budget_breakdown = @budget_breakdown,
		    version          = version + 1,
		    updated_at       = now()
		WHERE id = @id AND version = @version
		RETURNING ` + tripColumns

	args, err := tripArgs(trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	args["id"] = trip.ID
	args["version"] = trip.Version

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if errors.Is(err, domain.ErrNotFound) {
		// Either the row is gone or its version moved on; tell them apart.
		var exists bool
		const probe = `SELECT EXISTS (SELECT 1 FROM trips WHERE id = @id)`
		if perr := r.db.QueryRow(ctx, probe, pgx.NamedArgs{"id": trip.ID}).Scan(&exists); perr != nil {
			return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: probe: %w", perr)
		}
		if exists {
			err = domain.ErrConflict
		}
	}
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip by primary key.
func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// tripArgs builds the named arguments shared by Create and Update.
func tripArgs(trip domain.Trip) (pgx.NamedArgs, error) {
	dests, err := encodeDestinations(trip.Destinations)
	if err != nil {
		return nil, err
	}
	cols, err := encodeCollaborators(trip.Collaborators)
	if err != nil {
		return nil, err
	}
	breakdown, err := encodeBreakdown(trip.Budget.Breakdown)
	if err != nil {
		return nil, err
	}
	return pgx.NamedArgs{
		"owner_id":         trip.OwnerID,
		"name":             trip.Name,
		"start_date":       trip.StartDate,
		"end_date":         trip.EndDate,
		"destinations":     string(dests),
		"collaborators":    string(cols),
		"budget_total":     trip.Budget.Total,
		"budget_currency":  trip.Budget.Currency,
		"budget_breakdown": string(breakdown),
	}, nil
}

// scanTrip maps a single database row into a domain.Trip, decoding the
// JSONB document columns.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t              domain.Trip
		id, ownerID    pgtype.UUID
		start, end     pgtype.Date
		dests, cols    []byte
		breakdown      []byte
		budgetTotal    float64
		budgetCurrency string
	)

	err := s.Scan(&id, &ownerID, &t.Name, &start, &end, &dests, &cols,
		&budgetTotal, &budgetCurrency, &breakdown, &t.Version, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.OwnerID = uuid.UUID(ownerID.Bytes)
	t.StartDate = start.Time
	t.EndDate = end.Time
	if t.Destinations, err = decodeDestinations(dests); err != nil {
		return domain.Trip{}, err
	}
	if t.Collaborators, err = decodeCollaborators(cols); err != nil {
		return domain.Trip{}, err
	}
	b, err := decodeBreakdown(breakdown)
	if err != nil {
		return domain.Trip{}, err
	}
	t.Budget = domain.Budget{Total: budgetTotal, Currency: budgetCurrency, Breakdown: b}

	return t, nil
}

// nullableUUID maps uuid.Nil to SQL NULL.
func nullableUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: id != uuid.Nil}
}
