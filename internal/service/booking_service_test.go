package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aseerhc/physio-booking-api/internal/dto"
	"github.com/aseerhc/physio-booking-api/internal/models"
	appErrors "github.com/aseerhc/physio-booking-api/pkg/errors"
)

// 2026-03-01 is a Sunday, a regular clinic day.
var fixtureNow = time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC)

type stubProviderRepo struct {
	providers []models.Provider
}

func (s *stubProviderRepo) ListActive(ctx context.Context) ([]models.Provider, error) {
	var active []models.Provider
	for _, p := range s.providers {
		if p.Active {
			active = append(active, p)
		}
	}
	return active, nil
}

func (s *stubProviderRepo) FindByID(ctx context.Context, id string) (*models.Provider, error) {
	for i := range s.providers {
		if s.providers[i].ID == id {
			return &s.providers[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

type stubAppointmentRepo struct {
	items           []models.Appointment
	failCreateTimes int
}

func (s *stubAppointmentRepo) ListBetween(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range s.items {
		if !a.StartAt.Before(from) && a.StartAt.Before(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubAppointmentRepo) List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, *models.Pagination, error) {
	return s.items, &models.Pagination{Page: 1, PageSize: 50, TotalCount: len(s.items)}, nil
}

func (s *stubAppointmentRepo) Create(ctx context.Context, appointment *models.Appointment) error {
	if s.failCreateTimes > 0 {
		s.failCreateTimes--
		return appErrors.ErrSlotTaken
	}
	appointment.CreatedAt = fixtureNow
	s.items = append(s.items, *appointment)
	return nil
}

func (s *stubAppointmentRepo) FindByID(ctx context.Context, id string) (*models.Appointment, error) {
	for i := range s.items {
		if s.items[i].ID == id {
			return &s.items[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *stubAppointmentRepo) Delete(ctx context.Context, id string) error {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

type stubVacationRepo struct {
	items []models.Vacation
}

func (s *stubVacationRepo) ListOverlapping(ctx context.Context, from, to models.CivilDate) ([]models.Vacation, error) {
	return s.items, nil
}

type stubTimeOffRepo struct {
	items []models.TimeOff
}

func (s *stubTimeOffRepo) ListBetween(ctx context.Context, from, to models.CivilDate) ([]models.TimeOff, error) {
	return s.items, nil
}

type stubExtraRepo struct {
	items []models.ExtraCapacity
}

func (s *stubExtraRepo) ListBetween(ctx context.Context, from, to models.CivilDate) ([]models.ExtraCapacity, error) {
	return s.items, nil
}

type stubSettingsRepo struct {
	settings models.SchedulingSettings
}

func (s *stubSettingsRepo) Get(ctx context.Context) (models.SchedulingSettings, error) {
	return s.settings, nil
}

type stubAuditRepo struct {
	entries []models.AuditEntry
}

func (s *stubAuditRepo) Record(ctx context.Context, entry *models.AuditEntry) error {
	s.entries = append(s.entries, *entry)
	return nil
}

func testSettings() models.SchedulingSettings {
	return models.SchedulingSettings{
		UrgentDaysAhead:     1,
		SemiUrgentDaysAhead: 3,
		NormalDaysAhead:     30,
		ChronicWeeksAhead:   8,
		EmergencyDaysAhead:  2,
		BlockFridays:        true,
		BlockSaturdays:      true,
		MorningStartHour:    8,
		MorningEndHour:      12,
		AfternoonStartHour:  12,
		AfternoonEndHour:    15.5,
		SlotDurationMinutes: 15,
		UrgentReserve:       true,
		AutoDistribute:      false,
	}
}

func weekdayProvider(id, name string, specialty models.Specialty, capacity int) models.Provider {
	return models.Provider{
		ID:            id,
		Name:          name,
		Slug:          id,
		Specialty:     specialty,
		Days:          pq.Int64Array{0, 1, 2, 3, 4},
		DailyCapacity: capacity,
		Active:        true,
	}
}

type bookingFixture struct {
	service      *BookingService
	providers    *stubProviderRepo
	appointments *stubAppointmentRepo
	vacations    *stubVacationRepo
	timeOffs     *stubTimeOffRepo
	extras       *stubExtraRepo
	settings     *stubSettingsRepo
	audit        *stubAuditRepo
}

func newBookingFixture(providers []models.Provider, settings models.SchedulingSettings) *bookingFixture {
	f := &bookingFixture{
		providers:    &stubProviderRepo{providers: providers},
		appointments: &stubAppointmentRepo{},
		vacations:    &stubVacationRepo{},
		timeOffs:     &stubTimeOffRepo{},
		extras:       &stubExtraRepo{},
		settings:     &stubSettingsRepo{settings: settings},
		audit:        &stubAuditRepo{},
	}
	f.service = NewBookingService(
		f.providers, f.appointments, f.vacations, f.timeOffs, f.extras,
		f.settings, f.audit, nil, nil, nil, zap.NewNop(), time.UTC, 3)
	f.service.now = func() time.Time { return fixtureNow }
	return f
}

func (f *bookingFixture) addAppointment(providerID string, day, hour, minute int, appType models.AppointmentType) {
	start := time.Date(2026, 3, day, hour, minute, 0, 0, time.UTC)
	f.appointments.items = append(f.appointments.items, models.Appointment{
		ID:         "seed-" + start.Format("02-1504") + "-" + providerID,
		FileNo:     "9000",
		ProviderID: providerID,
		StartAt:    start,
		EndAt:      start.Add(15 * time.Minute),
		Type:       appType,
	})
}

func TestBookFirstOpenSlot(t *testing.T) {
	f := newBookingFixture([]models.Provider{
		weekdayProvider("p1", "Ahmed", models.SpecialtyMSK, 4),
		weekdayProvider("p2", "Basim", models.SpecialtyNeuro, 4),
	}, testSettings())

	result, err := f.service.Book(context.Background(), dto.BookingRequest{FileNo: "12345", Type: models.TypeNormal})
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(t, "p1", result.Appointment.ProviderID)
	assert.Equal(t, "Ahmed", result.ProviderName)
	assert.Equal(t, time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC), result.Appointment.StartAt)
	assert.Equal(t, time.Date(2026, 3, 1, 8, 15, 0, 0, time.UTC), result.Appointment.EndAt)

	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, models.AuditBookingCreate, f.audit.entries[0].Action)
	assert.Equal(t, "12345", f.audit.entries[0].FileNo)
}

func TestBookIsDeterministic(t *testing.T) {
	build := func() *bookingFixture {
		f := newBookingFixture([]models.Provider{
			weekdayProvider("p1", "Ahmed", models.SpecialtyMSK, 4),
			weekdayProvider("p2", "Basim", models.SpecialtyNeuro, 4),
		}, testSettings())
		f.addAppointment("p1", 1, 8, 0, models.TypeNormal)
		return f
	}

	first, err := build().service.Book(context.Background(), dto.BookingRequest{FileNo: "1", Type: models.TypeNormal})
	require.NoError(t, err)
	second, err := build().service.Book(context.Background(), dto.BookingRequest{FileNo: "1", Type: models.TypeNormal})
	require.NoError(t, err)

	assert.Equal(t, first.Appointment.ProviderID, second.Appointment.ProviderID)
	assert.Equal(t, first.Appointment.StartAt, second.Appointment.StartAt)
}

func TestBookSpecialtyFilter(t *testing.T) {
	f := newBookingFixture([]models.Provider{
		weekdayProvider("p1", "Ahmed", models.SpecialtyMSK, 4),
		weekdayProvider("p2", "Basim", models.SpecialtyNeuro, 4),
	}, testSettings())

	result, err := f.service.Book(context.Background(), dto.BookingRequest{
		FileNo: "1", Type: models.TypeNormal, Specialty: models.SpecialtyNeuro,
	})
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(t, "p2", result.Appointment.ProviderID)
}

func TestBookAfternoonPreference(t *testing.T) {
	f := newBookingFixture([]models.Provider{
		weekdayProvider("p1", "Ahmed", models.SpecialtyMSK, 4),
	}, testSettings())

	result, err := f.service.Book(context.Background(), dto.BookingRequest{
		FileNo: "1", Type: models.TypeNormal, TimeOfDay: dto.TimeOfDayAfternoon,
	})
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), result.Appointment.StartAt)
}

func TestBookNearestAliasStoredAsNormal(t *testing.T) {
	f := newBookingFixture([]models.Provider{
		weekdayProvider("p1", "Ahmed", models.SpecialtyMSK, 4),
	}, testSettings())

	result, err := f.service.Book(context.Background(), dto.BookingRequest{FileNo: "1", Type: models.TypeNearest})
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(t, models.TypeNormal, result.Appointment.Type)
}

func TestBookNormalizesEasternArabicDigits(t *testing.T) {
	f := newBookingFixture([]models.Provider{
		weekdayProvider("p1", "Ahmed", models.SpecialtyMSK, 4),
	}, testSettings())

	result, err := f.service.Book(context.Background(), dto.BookingRequest{FileNo: "١٢٣٤٥", Type: models.TypeNormal})
	require.NoError(t, err)
	assert.Equal(t, "12345", result.Appointment.FileNo)
}

func TestBookUrgentReserveOpensExtraSlot(t *testing.T) {
	settings := testSettings()
	f := newBookingFixture([]models.Provider{
		weekdayProvider("p1", "Ahmed", models.SpecialtyMSK, 1),
	}, settings)
	f.addAppointment("p1", 1, 8, 0, models.TypeNormal)

	// Provider is at base capacity, so a normal request rolls to Monday.
	normal, err := f.service.Book(context.Background(), dto.BookingRequest{FileNo: "1", Type: models.TypeNormal})
	require.NoError(t, err)
	require.True(t, normal.Found)
	assert.Equal(t, time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), normal.Appointment.StartAt)

	// An urgent request may use the reserve slot today.
	urgent, err := f.service.Book(context.Background(), dto.BookingRequest{FileNo: "2", Type: models.TypeUrgent})
	require.NoError(t, err)
	require.True(t, urgent.Found)
	assert.Equal(t, time.Date(2026, 3, 1, 8, 15, 0, 0, time.UTC), urgent.Appointment.StartAt)
}

func TestBookUrgentReserveConsumedOnce(t *testing.T) {
	settings := testSettings()
	settings.UrgentDaysAhead = 2
	f := newBookingFixture([]models.Provider{
		weekdayProvider("p1", "Ahmed", models.SpecialtyMSK, 1),
	}, settings)
	f.addAppointment("p1", 1, 8, 0, models.TypeUrgent)

	// The reserve is already consumed by today's urgent appointment, so
	// the booking rolls over to tomorrow.
	result, err := f.service.Book(context.Background(), dto.BookingRequest{FileNo: "1", Type: models.TypeUrgent})
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(t, time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), result.Appointment.StartAt)
}

func TestBookHorizonEndIsExclusive(t *testing.T) {
	mondayOnly := weekdayProvider("p1", "Ahmed", models.SpecialtyMSK, 4)
	mondayOnly.Days = pq.Int64Array{1}
	f := newBookingFixture([]models.Provider{mondayOnly}, testSettings())

	// The 1-day urgent horizon covers only Sunday the 1st; Monday's open
	// schedule is one day out of reach.
	result, err := f.service.Book(context.Background(), dto.BookingRequest{FileNo: "1", Type: models.TypeUrgent})
	require.NoError(t, err)
	assert.False(t, result.Found)
	assert.NotEmpty(t, result.Message)
}

func TestBookNewPatientQuotaRedirects(t *testing.T) {
	quotaProvider := weekdayProvider("p1", "Ahmed", models.SpecialtyMSK, 4)
	quotaProvider.NewPatientProvider = true
	quotaProvider.NewPatientQuota = 1
	f := newBookingFixture([]models.Provider{
		quotaProvider,
		weekdayProvider("p2", "Basim", models.SpecialtyMSK, 4),
	}, testSettings())
	f.addAppointment("p1", 1, 8, 0, models.TypeNormal)

	// p1's new-patient quota is exhausted today, so the booking lands on p2.
	result, err := f.service.Book(context.Background(), dto.BookingRequest{FileNo: "1", Type: models.TypeNormal})
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(t, "p2", result.Appointment.ProviderID)
	assert.Equal(t, time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC), result.Appointment.StartAt)

	// An urgent request is outside the new-patient category and may still
	// use p1.
	urgent, err := f.service.Book(context.Background(), dto.BookingRequest{FileNo: "2", Type: models.TypeUrgent, ProviderID: "p1"})
	require.NoError(t, err)
	require.True(t, urgent.Found)
	assert.Equal(t, "p1", urgent.Appointment.ProviderID)
}

func TestBookAutoDistributePrefersLeastBooked(t *testing.T) {
	settings := testSettings()
	settings.AutoDistribute = true
	f := newBookingFixture([]models.Provider{
		weekdayProvider("p1", "Ahmed", models.SpecialtyMSK, 4),
		weekdayProvider("p2", "Basim", models.SpecialtyMSK, 4),
	}, settings)
	f.addAppointment("p1", 1, 8, 0, models.TypeNormal)

	result, err := f.service.Book(context.Background(), dto.BookingRequest{FileNo: "1", Type: models.TypeNormal})
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(t, "p2", result.Appointment.ProviderID)
}

func TestBookExactProviderDisablesDistribution(t *testing.T) {
	settings := testSettings()
	settings.AutoDistribute = true
	f := newBookingFixture([]models.Provider{
		weekdayProvider("p1", "Ahmed", models.SpecialtyMSK, 4),
		weekdayProvider("p2", "Basim", models.SpecialtyMSK, 4),
	}, settings)
	f.addAppointment("p1", 1, 8, 0, models.TypeNormal)

	result, err := f.service.Book(context.Background(), dto.BookingRequest{FileNo: "1", Type: models.TypeNormal, ProviderID: "p1"})
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(t, "p1", result.Appointment.ProviderID)
	assert.Equal(t, time.Date(2026, 3, 1, 8, 15, 0, 0, time.UTC), result.Appointment.StartAt)
}

func TestBookSkipsVacationAndTimeOff(t *testing.T) {
	f := newBookingFixture([]models.Provider{
		weekdayProvider("p1", "Ahmed", models.SpecialtyMSK, 4),
		weekdayProvider("p2", "Basim", models.SpecialtyMSK, 4),
	}, testSettings())
	pid := "p1"
	f.vacations.items = []models.Vacation{{
		ID: "v1", ProviderID: &pid,
		StartDate: models.CivilDate{Year: 2026, Month: 3, Day: 1},
		EndDate:   models.CivilDate{Year: 2026, Month: 3, Day: 1},
	}}
	f.timeOffs.items = []models.TimeOff{{
		ID: "t1", ProviderID: "p2",
		Date:      models.CivilDate{Year: 2026, Month: 3, Day: 1},
		StartTime: models.ClockMinute(480), EndTime: models.ClockMinute(600),
	}}

	result, err := f.service.Book(context.Background(), dto.BookingRequest{FileNo: "1", Type: models.TypeNormal})
	require.NoError(t, err)
	require.True(t, result.Found)
	// p1 is on vacation; p2's morning is blocked until 10:00.
	assert.Equal(t, "p2", result.Appointment.ProviderID)
	assert.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), result.Appointment.StartAt)
}

func TestBookGlobalVacationSkipsDay(t *testing.T) {
	f := newBookingFixture([]models.Provider{
		weekdayProvider("p1", "Ahmed", models.SpecialtyMSK, 4),
	}, testSettings())
	f.vacations.items = []models.Vacation{{
		ID:        "v1",
		StartDate: models.CivilDate{Year: 2026, Month: 3, Day: 1},
		EndDate:   models.CivilDate{Year: 2026, Month: 3, Day: 1},
	}}

	result, err := f.service.Book(context.Background(), dto.BookingRequest{FileNo: "1", Type: models.TypeNormal})
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(t, time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), result.Appointment.StartAt)
}

func TestBookHorizonExhausted(t *testing.T) {
	fridayOnly := weekdayProvider("p1", "Ahmed", models.SpecialtyMSK, 4)
	fridayOnly.Days = pq.Int64Array{5}
	f := newBookingFixture([]models.Provider{fridayOnly}, testSettings())

	// Fridays are blocked, so the provider is never reachable.
	result, err := f.service.Book(context.Background(), dto.BookingRequest{FileNo: "1", Type: models.TypeNormal})
	require.NoError(t, err)
	assert.False(t, result.Found)
	assert.NotEmpty(t, result.Message)
	assert.Empty(t, f.audit.entries)
}

func TestBookLockedWithoutDate(t *testing.T) {
	settings := testSettings()
	settings.BookingLocked = true
	f := newBookingFixture([]models.Provider{
		weekdayProvider("p1", "Ahmed", models.SpecialtyMSK, 4),
	}, settings)

	_, err := f.service.Book(context.Background(), dto.BookingRequest{FileNo: "1", Type: models.TypeNormal})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrBookingLocked))
}

func TestBookLockPushesSearchStart(t *testing.T) {
	settings := testSettings()
	settings.BookingLocked = true
	lockUntil := models.CivilDate{Year: 2026, Month: 3, Day: 2}
	settings.BookingLockUntil = &lockUntil
	f := newBookingFixture([]models.Provider{
		weekdayProvider("p1", "Ahmed", models.SpecialtyMSK, 4),
	}, settings)

	result, err := f.service.Book(context.Background(), dto.BookingRequest{FileNo: "1", Type: models.TypeNormal})
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(t, time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC), result.Appointment.StartAt)
}

func TestBookRetriesWhenSlotStolen(t *testing.T) {
	f := newBookingFixture([]models.Provider{
		weekdayProvider("p1", "Ahmed", models.SpecialtyMSK, 4),
	}, testSettings())
	f.appointments.failCreateTimes = 1

	result, err := f.service.Book(context.Background(), dto.BookingRequest{FileNo: "1", Type: models.TypeNormal})
	require.NoError(t, err)
	assert.True(t, result.Found)
}

func TestBookGivesUpAfterRetries(t *testing.T) {
	f := newBookingFixture([]models.Provider{
		weekdayProvider("p1", "Ahmed", models.SpecialtyMSK, 4),
	}, testSettings())
	f.appointments.failCreateTimes = 10

	_, err := f.service.Book(context.Background(), dto.BookingRequest{FileNo: "1", Type: models.TypeNormal})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrSlotTaken))
}

func TestBookRejectsInvalidInput(t *testing.T) {
	f := newBookingFixture(nil, testSettings())

	_, err := f.service.Book(context.Background(), dto.BookingRequest{FileNo: " ", Type: models.TypeNormal})
	require.Error(t, err)

	_, err = f.service.Book(context.Background(), dto.BookingRequest{FileNo: "1", Type: "walk_in"})
	require.Error(t, err)
}

func TestBookManual(t *testing.T) {
	f := newBookingFixture([]models.Provider{
		weekdayProvider("p1", "Ahmed", models.SpecialtyMSK, 4),
	}, testSettings())

	result, err := f.service.BookManual(context.Background(), dto.ManualBookingRequest{
		FileNo:     "77",
		ProviderID: "p1",
		Date:       models.CivilDate{Year: 2026, Month: 3, Day: 2},
		StartTime:  models.ClockMinute(540),
		Type:       models.TypeNormal,
	})
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), result.Appointment.StartAt)
}

func TestBookManualRejectsTakenSlot(t *testing.T) {
	f := newBookingFixture([]models.Provider{
		weekdayProvider("p1", "Ahmed", models.SpecialtyMSK, 4),
	}, testSettings())
	f.addAppointment("p1", 2, 9, 0, models.TypeNormal)

	_, err := f.service.BookManual(context.Background(), dto.ManualBookingRequest{
		FileNo:     "77",
		ProviderID: "p1",
		Date:       models.CivilDate{Year: 2026, Month: 3, Day: 2},
		StartTime:  models.ClockMinute(540),
		Type:       models.TypeNormal,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSlotTaken.Code, appErrors.FromError(err).Code)
}

func TestBookManualUnknownProvider(t *testing.T) {
	f := newBookingFixture(nil, testSettings())

	_, err := f.service.BookManual(context.Background(), dto.ManualBookingRequest{
		FileNo:     "77",
		ProviderID: "ghost",
		Date:       models.CivilDate{Year: 2026, Month: 3, Day: 2},
		StartTime:  models.ClockMinute(540),
		Type:       models.TypeNormal,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestBookEmergencyBypassesCapacity(t *testing.T) {
	f := newBookingFixture([]models.Provider{
		weekdayProvider("p1", "Ahmed", models.SpecialtyMSK, 1),
	}, testSettings())
	f.addAppointment("p1", 1, 8, 0, models.TypeNormal)

	result, err := f.service.BookEmergency(context.Background(), dto.EmergencyBookingRequest{
		FileNo: "99", Specialty: models.SpecialtyMSK,
	})
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(t, time.Date(2026, 3, 1, 8, 15, 0, 0, time.UTC), result.Appointment.StartAt)
	assert.True(t, result.Appointment.Emergency)
	assert.Equal(t, models.TypeUrgent, result.Appointment.Type)

	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, models.AuditEmergencyCreate, f.audit.entries[0].Action)
}

func TestBookEmergencyPlacesAfterLastBooked(t *testing.T) {
	f := newBookingFixture([]models.Provider{
		weekdayProvider("p1", "Ahmed", models.SpecialtyMSK, 4),
	}, testSettings())
	f.addAppointment("p1", 1, 8, 0, models.TypeNormal)
	f.addAppointment("p1", 1, 10, 0, models.TypeNormal)

	// Free grid slots before 10:00 are ignored: the emergency appointment
	// goes one step past the day's last booked appointment.
	result, err := f.service.BookEmergency(context.Background(), dto.EmergencyBookingRequest{
		FileNo: "99", Specialty: models.SpecialtyMSK,
	})
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(t, time.Date(2026, 3, 1, 10, 15, 0, 0, time.UTC), result.Appointment.StartAt)
}

func TestBookEmergencyEmptyDayUsesSessionEnd(t *testing.T) {
	f := newBookingFixture([]models.Provider{
		weekdayProvider("p1", "Ahmed", models.SpecialtyMSK, 4),
	}, testSettings())

	result, err := f.service.BookEmergency(context.Background(), dto.EmergencyBookingRequest{
		FileNo: "99", Specialty: models.SpecialtyMSK,
	})
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(t, time.Date(2026, 3, 1, 15, 30, 0, 0, time.UTC), result.Appointment.StartAt)
}

func TestBookEmergencyOverflowsPastSessionEnd(t *testing.T) {
	f := newBookingFixture([]models.Provider{
		weekdayProvider("p1", "Ahmed", models.SpecialtyMSK, 40),
	}, testSettings())
	// Fill the whole grid for the day: 08:00 through 15:15 in 15-minute
	// steps.
	for minute := 480; minute < 930; minute += 15 {
		f.addAppointment("p1", 1, minute/60, minute%60, models.TypeNormal)
	}

	result, err := f.service.BookEmergency(context.Background(), dto.EmergencyBookingRequest{
		FileNo: "99", Specialty: models.SpecialtyMSK,
	})
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(t, time.Date(2026, 3, 1, 15, 30, 0, 0, time.UTC), result.Appointment.StartAt)
}

func TestCancelIsIdempotent(t *testing.T) {
	f := newBookingFixture([]models.Provider{
		weekdayProvider("p1", "Ahmed", models.SpecialtyMSK, 4),
	}, testSettings())

	booked, err := f.service.Book(context.Background(), dto.BookingRequest{FileNo: "1", Type: models.TypeNormal})
	require.NoError(t, err)

	first, err := f.service.Cancel(context.Background(), booked.Appointment.ID)
	require.NoError(t, err)
	assert.True(t, first.Removed)

	second, err := f.service.Cancel(context.Background(), booked.Appointment.ID)
	require.NoError(t, err)
	assert.False(t, second.Removed)

	// One create entry and exactly one cancel entry.
	var cancels int
	for _, e := range f.audit.entries {
		if e.Action == models.AuditBookingCancel {
			cancels++
		}
	}
	assert.Equal(t, 1, cancels)
}

func TestBookSameDaySkipsPastSlots(t *testing.T) {
	f := newBookingFixture([]models.Provider{
		weekdayProvider("p1", "Ahmed", models.SpecialtyMSK, 4),
	}, testSettings())
	f.service.now = func() time.Time { return time.Date(2026, 3, 1, 9, 10, 0, 0, time.UTC) }

	result, err := f.service.Book(context.Background(), dto.BookingRequest{FileNo: "1", Type: models.TypeNormal})
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(t, time.Date(2026, 3, 1, 9, 15, 0, 0, time.UTC), result.Appointment.StartAt)
}
