package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aseerhc/physio-booking-api/internal/models"
	appErrors "github.com/aseerhc/physio-booking-api/pkg/errors"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func appointmentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "file_no", "provider_id", "start_at", "end_at", "type", "emergency", "created_at"})
}

func TestAppointmentListBetween(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, file_no, provider_id, start_at, end_at, type, emergency, created_at FROM appointments WHERE start_at >= $1 AND start_at < $2 ORDER BY start_at ASC")).
		WithArgs(from, to).
		WillReturnRows(appointmentRows().
			AddRow("a1", "12345", "p1", start, start.Add(15*time.Minute), "normal", false, start))

	appointments, err := repo.ListBetween(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, appointments, 1)
	assert.Equal(t, "a1", appointments[0].ID)
	assert.Equal(t, models.TypeNormal, appointments[0].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentListBuildsFilter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)

	from := models.CivilDate{Year: 2026, Month: 3, Day: 1}
	mock.ExpectQuery(regexp.QuoteMeta("WHERE 1=1 AND provider_id = $1 AND file_no = $2 AND start_at >= $3 ORDER BY start_at ASC LIMIT 50 OFFSET 0")).
		WithArgs("p1", "42", from).
		WillReturnRows(appointmentRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM appointments WHERE 1=1 AND provider_id = $1 AND file_no = $2 AND start_at >= $3")).
		WithArgs("p1", "42", from).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, pagination, err := repo.List(context.Background(), models.AppointmentFilter{
		ProviderID: "p1",
		FileNo:     "42",
		From:       &from,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 50, pagination.PageSize)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)

	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	appointment := &models.Appointment{
		ID:         "a1",
		FileNo:     "12345",
		ProviderID: "p1",
		StartAt:    start,
		EndAt:      start.Add(15 * time.Minute),
		Type:       models.TypeNormal,
	}

	mock.ExpectQuery("INSERT INTO appointments").
		WithArgs("a1", "12345", "p1", start, start.Add(15*time.Minute), models.TypeNormal, false).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(start))

	require.NoError(t, repo.Create(context.Background(), appointment))
	assert.Equal(t, start, appointment.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentCreateSlotTaken(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)

	mock.ExpectQuery("INSERT INTO appointments").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "appointments_provider_start_unique"})

	err := repo.Create(context.Background(), &models.Appointment{ID: "a1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrSlotTaken))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentFindByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)

	mock.ExpectQuery("SELECT .+ FROM appointments WHERE id").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "ghost")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM appointments WHERE id = $1")).
		WithArgs("a1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "a1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentDeleteMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM appointments WHERE id = $1")).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "ghost")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}
