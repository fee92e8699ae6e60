package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/service"
)

func echoActivityRepo() *mockActivityRepo {
	return &mockActivityRepo{
		create: func(_ context.Context, a domain.Activity) (domain.Activity, error) { return a, nil },
		update: func(_ context.Context, a domain.Activity) (domain.Activity, error) { return a, nil },
	}
}

// ---- Create tests ----------------------------------------------------------

func TestActivityService_Create_DerivesDuration(t *testing.T) {
	svc := service.NewActivityService(newTripStore(augustTrip()).repo(), echoActivityRepo())

	got, err := svc.Create(context.Background(), editor, activityAt(aug(2), "09:30", "11:00", 40))

	require.NoError(t, err)
	assert.Equal(t, 90, got.DurationMinutes)
}

func TestActivityService_Create_EndNotAfterStart(t *testing.T) {
	svc := service.NewActivityService(newTripStore(augustTrip()).repo(), echoActivityRepo())

	a := activityAt(aug(2), "10:00", "11:00", 0)
	a.EndTime = a.StartTime

	_, err := svc.Create(context.Background(), editor, a)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestActivityService_Create_NegativeCost(t *testing.T) {
	svc := service.NewActivityService(newTripStore(augustTrip()).repo(), echoActivityRepo())

	_, err := svc.Create(context.Background(), editor, activityAt(aug(2), "10:00", "11:00", -1))

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestActivityService_Create_CopiesDestinationSnapshot(t *testing.T) {
	trip := augustTrip()
	paris := domain.Destination{ID: uuid.New(), City: "Paris", Country: "FR", ArrivalDate: aug(1), DepartureDate: aug(5)}
	trip.Destinations = []domain.Destination{paris}
	svc := service.NewActivityService(newTripStore(trip).repo(), echoActivityRepo())

	a := activityAt(aug(2), "10:00", "11:00", 0)
	a.DestinationID = &paris.ID
	a.City = "Somewhere else"

	got, err := svc.Create(context.Background(), owner, a)

	require.NoError(t, err)
	assert.Equal(t, "Paris", got.City)
	assert.Equal(t, "FR", got.Country)
}

func TestActivityService_Create_UnknownDestination(t *testing.T) {
	svc := service.NewActivityService(newTripStore(augustTrip()).repo(), echoActivityRepo())

	a := activityAt(aug(2), "10:00", "11:00", 0)
	id := uuid.New()
	a.DestinationID = &id

	_, err := svc.Create(context.Background(), owner, a)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestActivityService_Create_ViewerForbidden(t *testing.T) {
	svc := service.NewActivityService(newTripStore(augustTrip()).repo(), echoActivityRepo())

	_, err := svc.Create(context.Background(), viewer, activityAt(aug(2), "10:00", "11:00", 0))

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestActivityService_Create_DoesNotCheckCollisions(t *testing.T) {
	acts := echoActivityRepo()
	acts.listByDate = func(context.Context, uuid.UUID, time.Time) ([]domain.Activity, error) {
		t.Fatal("Create must not consult the day's schedule")
		return nil, nil
	}
	svc := service.NewActivityService(newTripStore(augustTrip()).repo(), acts)

	_, err := svc.Create(context.Background(), editor, activityAt(aug(2), "10:00", "11:00", 0))

	assert.NoError(t, err)
}

// ---- ListPaged tests -------------------------------------------------------

func TestActivityService_ListPaged_EmptyIsNotNil(t *testing.T) {
	acts := &mockActivityRepo{
		listByTripIDPaged: func(context.Context, uuid.UUID, domain.PaginationParams) ([]domain.Activity, int64, error) {
			return nil, 0, nil
		},
	}
	svc := service.NewActivityService(newTripStore(augustTrip()).repo(), acts)

	got, total, err := svc.ListPaged(context.Background(), viewer, tripID, domain.NewPaginationParams(nil, nil))

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Zero(t, total)
}

// ---- Update tests ----------------------------------------------------------

func TestActivityService_Update(t *testing.T) {
	base := activityAt(aug(2), "10:00", "11:00", 20)
	durationOnly := 45
	newStart := clock("14:00")
	lateStart := clock("14:00")
	earlyEnd := clock("13:00")

	cases := []struct {
		name      string
		patch     service.ActivityPatch
		wantStart string
		wantEnd   string
		wantErr   error
	}{
		{name: "duration sets end", patch: service.ActivityPatch{DurationMinutes: &durationOnly}, wantStart: "10:00", wantEnd: "10:45"},
		{name: "start keeps length", patch: service.ActivityPatch{StartTime: &newStart}, wantStart: "14:00", wantEnd: "15:00"},
		{name: "end before start", patch: service.ActivityPatch{StartTime: &lateStart, EndTime: &earlyEnd}, wantErr: domain.ErrValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			acts := echoActivityRepo()
			acts.getByID = func(context.Context, uuid.UUID, uuid.UUID) (domain.Activity, error) { return base, nil }
			svc := service.NewActivityService(newTripStore(augustTrip()).repo(), acts)

			got, err := svc.Update(context.Background(), editor, tripID, base.ID, tc.patch)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantStart, got.StartTime.String())
			assert.Equal(t, tc.wantEnd, got.EndTime.String())
			assert.Equal(t, int(got.EndTime-got.StartTime), got.DurationMinutes)
		})
	}
}

// ---- Move tests ------------------------------------------------------------

func TestActivityService_Move_FirstFit(t *testing.T) {
	moving := activityAt(aug(3), "15:00", "17:00", 0)
	day := []domain.Activity{
		activityAt(aug(5), "09:00", "10:30", 0),
		activityAt(aug(5), "11:00", "12:00", 0),
	}
	var listedFor time.Time
	acts := echoActivityRepo()
	acts.getByID = func(context.Context, uuid.UUID, uuid.UUID) (domain.Activity, error) { return moving, nil }
	acts.listByDate = func(_ context.Context, _ uuid.UUID, date time.Time) ([]domain.Activity, error) {
		listedFor = date
		return day, nil
	}
	svc := service.NewActivityService(newTripStore(augustTrip()).repo(), acts)

	got, err := svc.Move(context.Background(), editor, tripID, moving.ID, aug(5).Add(13*time.Hour))

	require.NoError(t, err)
	assert.Equal(t, aug(5), listedFor)
	assert.Equal(t, aug(5), got.Date)
	assert.Equal(t, "12:00", got.StartTime.String())
	assert.Equal(t, "14:00", got.EndTime.String())
	assert.Equal(t, 120, got.DurationMinutes)
}

func TestActivityService_Move_IgnoresItself(t *testing.T) {
	moving := activityAt(aug(5), "09:00", "10:00", 0)
	acts := echoActivityRepo()
	acts.getByID = func(context.Context, uuid.UUID, uuid.UUID) (domain.Activity, error) { return moving, nil }
	acts.listByDate = func(context.Context, uuid.UUID, time.Time) ([]domain.Activity, error) {
		return []domain.Activity{moving}, nil
	}
	svc := service.NewActivityService(newTripStore(augustTrip()).repo(), acts)

	got, err := svc.Move(context.Background(), editor, tripID, moving.ID, aug(5))

	require.NoError(t, err)
	assert.Equal(t, "09:00", got.StartTime.String())
}

func TestActivityService_Move_NotFound(t *testing.T) {
	acts := &mockActivityRepo{
		getByID: func(context.Context, uuid.UUID, uuid.UUID) (domain.Activity, error) {
			return domain.Activity{}, domain.ErrNotFound
		},
	}
	svc := service.NewActivityService(newTripStore(augustTrip()).repo(), acts)

	_, err := svc.Move(context.Background(), editor, tripID, uuid.New(), aug(5))

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- Delete tests ----------------------------------------------------------

func TestActivityService_Delete(t *testing.T) {
	var deleted uuid.UUID
	acts := &mockActivityRepo{
		delete: func(_ context.Context, _ uuid.UUID, id uuid.UUID) error {
			deleted = id
			return nil
		},
	}
	svc := service.NewActivityService(newTripStore(augustTrip()).repo(), acts)
	id := uuid.New()

	require.NoError(t, svc.Delete(context.Background(), editor, tripID, id))
	assert.Equal(t, id, deleted)
}

func TestActivityService_Delete_ViewerForbidden(t *testing.T) {
	svc := service.NewActivityService(newTripStore(augustTrip()).repo(), &mockActivityRepo{})

	err := svc.Delete(context.Background(), viewer, tripID, uuid.New())

	assert.ErrorIs(t, err, domain.ErrForbidden)
}
