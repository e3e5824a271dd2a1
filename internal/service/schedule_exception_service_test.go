package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aseerhc/physio-booking-api/internal/dto"
	"github.com/aseerhc/physio-booking-api/internal/models"
	appErrors "github.com/aseerhc/physio-booking-api/pkg/errors"
)

type fakeVacationRepo struct {
	stubVacationRepo
}

func (f *fakeVacationRepo) Create(ctx context.Context, vacation *models.Vacation) error {
	f.items = append(f.items, *vacation)
	return nil
}

func (f *fakeVacationRepo) Delete(ctx context.Context, id string) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

type fakeTimeOffRepo struct {
	stubTimeOffRepo
}

func (f *fakeTimeOffRepo) Create(ctx context.Context, timeOff *models.TimeOff) error {
	f.items = append(f.items, *timeOff)
	return nil
}

func (f *fakeTimeOffRepo) Delete(ctx context.Context, id string) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

type fakeExtraRepo struct {
	stubExtraRepo
}

func (f *fakeExtraRepo) Create(ctx context.Context, extra *models.ExtraCapacity) error {
	f.items = append(f.items, *extra)
	return nil
}

func (f *fakeExtraRepo) Delete(ctx context.Context, id string) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

type exceptionFixture struct {
	service   *ScheduleExceptionService
	vacations *fakeVacationRepo
	timeOffs  *fakeTimeOffRepo
	extras    *fakeExtraRepo
	inval     *countingInvalidator
}

func newExceptionFixture(providers []models.Provider) *exceptionFixture {
	f := &exceptionFixture{
		vacations: &fakeVacationRepo{},
		timeOffs:  &fakeTimeOffRepo{},
		extras:    &fakeExtraRepo{},
		inval:     &countingInvalidator{},
	}
	f.service = NewScheduleExceptionService(
		f.vacations, f.timeOffs, f.extras,
		&stubProviderRepo{providers: providers}, f.inval, zap.NewNop())
	return f
}

func TestCreateVacation(t *testing.T) {
	f := newExceptionFixture([]models.Provider{weekdayProvider("p1", "Ahmed", models.SpecialtyMSK, 4)})
	pid := "p1"

	vacation, err := f.service.CreateVacation(context.Background(), dto.VacationRequest{
		ProviderID:  &pid,
		StartDate:   civil(2026, 3, 10),
		EndDate:     civil(2026, 3, 12),
		Description: "conference",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, vacation.ID)
	assert.Len(t, f.vacations.items, 1)
	assert.Equal(t, 1, f.inval.calls)
}

func TestCreateGlobalVacationSkipsProviderCheck(t *testing.T) {
	f := newExceptionFixture(nil)

	vacation, err := f.service.CreateVacation(context.Background(), dto.VacationRequest{
		StartDate:   civil(2026, 3, 10),
		EndDate:     civil(2026, 3, 10),
		Description: "public holiday",
	})
	require.NoError(t, err)
	assert.True(t, vacation.Global())
}

func TestCreateVacationValidation(t *testing.T) {
	f := newExceptionFixture(nil)

	_, err := f.service.CreateVacation(context.Background(), dto.VacationRequest{})
	require.Error(t, err)

	_, err = f.service.CreateVacation(context.Background(), dto.VacationRequest{
		StartDate: civil(2026, 3, 12),
		EndDate:   civil(2026, 3, 10),
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	ghost := "ghost"
	_, err = f.service.CreateVacation(context.Background(), dto.VacationRequest{
		ProviderID: &ghost,
		StartDate:  civil(2026, 3, 10),
		EndDate:    civil(2026, 3, 10),
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestDeleteVacation(t *testing.T) {
	f := newExceptionFixture(nil)
	f.vacations.items = []models.Vacation{{ID: "v1"}}

	require.NoError(t, f.service.DeleteVacation(context.Background(), "v1"))
	assert.Empty(t, f.vacations.items)

	err := f.service.DeleteVacation(context.Background(), "v1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCreateTimeOff(t *testing.T) {
	f := newExceptionFixture([]models.Provider{weekdayProvider("p1", "Ahmed", models.SpecialtyMSK, 4)})

	timeOff, err := f.service.CreateTimeOff(context.Background(), dto.TimeOffRequest{
		ProviderID: "p1",
		Date:       civil(2026, 3, 10),
		StartTime:  540,
		EndTime:    600,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, timeOff.ID)
	assert.Equal(t, 1, f.inval.calls)
}

func TestCreateTimeOffRejectsInvertedWindow(t *testing.T) {
	f := newExceptionFixture([]models.Provider{weekdayProvider("p1", "Ahmed", models.SpecialtyMSK, 4)})

	_, err := f.service.CreateTimeOff(context.Background(), dto.TimeOffRequest{
		ProviderID: "p1",
		Date:       civil(2026, 3, 10),
		StartTime:  600,
		EndTime:    600,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCreateExtraCapacity(t *testing.T) {
	f := newExceptionFixture([]models.Provider{weekdayProvider("p1", "Ahmed", models.SpecialtyMSK, 4)})

	extra, err := f.service.CreateExtraCapacity(context.Background(), dto.ExtraCapacityRequest{
		ProviderID: "p1",
		Date:       civil(2026, 3, 10),
		Slots:      3,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, extra.Slots)

	_, err = f.service.CreateExtraCapacity(context.Background(), dto.ExtraCapacityRequest{
		ProviderID: "p1",
		Date:       civil(2026, 3, 10),
		Slots:      0,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
