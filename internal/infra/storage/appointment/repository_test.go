package appointment

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

func newAppointmentRows() *sqlmock.Rows {
	return sqlmock.NewRows(appointmentColumns)
}

func appointmentRowValues(id int64, date time.Time, start, end string, status domain.AppointmentStatus) []driver.Value {
	return []driver.Value{
		id, int64(42), int64(7), date, start, end, 60,
		string(domain.SessionIndividual), string(domain.ModeVideo), string(status),
		120.0, string(domain.PaymentPending), "Dr. Petrova", 120.0,
		nil, nil, nil, nil, nil, time.Now(), time.Now(),
	}
}

func addRow(rows *sqlmock.Rows, values []driver.Value) {
	rows.AddRow(values...)
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO appointments").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(101), createdAt, createdAt))

	apt := &domain.Appointment{
		ClientID:           42,
		ProviderID:         7,
		Date:               time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime:          "10:00",
		EndTime:            "11:00",
		DurationMinutes:    60,
		SessionType:        domain.SessionIndividual,
		SessionMode:        domain.ModeVideo,
		Status:             domain.StatusPending,
		Amount:             120,
		PaymentStatus:      domain.PaymentPending,
		ProviderName:       "Dr. Petrova",
		ProviderHourlyRate: 120,
	}

	created, err := repo.Create(context.Background(), apt)
	require.NoError(t, err)

	assert.Equal(t, int64(101), created.ID)
	assert.Equal(t, createdAt, created.CreatedAt)
	assert.Equal(t, createdAt, created.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	rows := newAppointmentRows()
	addRow(rows, appointmentRowValues(101, date, "10:00", "11:00", domain.StatusConfirmed))

	mock.ExpectQuery("SELECT (.+) FROM appointments WHERE id").
		WithArgs(int64(101)).
		WillReturnRows(rows)

	apt, err := repo.GetByID(context.Background(), 101)
	require.NoError(t, err)

	assert.Equal(t, int64(101), apt.ID)
	assert.Equal(t, int64(42), apt.ClientID)
	assert.Equal(t, int64(7), apt.ProviderID)
	assert.Equal(t, domain.StatusConfirmed, apt.Status)
	assert.EqualValues(t, "10:00", apt.StartTime)
	assert.EqualValues(t, "11:00", apt.EndTime)
	assert.Equal(t, 120.0, apt.Amount)
	assert.Nil(t, apt.Rating)
	assert.Nil(t, apt.CancelledAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM appointments WHERE id").
		WithArgs(int64(999)).
		WillReturnError(sql.ErrNoRows)

	apt, err := repo.GetByID(context.Background(), 999)
	assert.Nil(t, apt)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByClientID_StatusFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	rows := newAppointmentRows()
	addRow(rows, appointmentRowValues(101, date, "10:00", "11:00", domain.StatusCancelled))

	mock.ExpectQuery("SELECT (.+) FROM appointments WHERE client_id").
		WithArgs(int64(42), string(domain.StatusCancelled)).
		WillReturnRows(rows)

	status := domain.StatusCancelled
	appointments, err := repo.GetByClientID(context.Background(), 42, &status)
	require.NoError(t, err)

	require.Len(t, appointments, 1)
	assert.Equal(t, domain.StatusCancelled, appointments[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByProviderWithFilter_DefaultActiveOnly(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	rows := newAppointmentRows()
	addRow(rows, appointmentRowValues(101, date, "10:00", "11:00", domain.StatusPending))
	addRow(rows, appointmentRowValues(102, date, "11:00", "12:00", domain.StatusConfirmed))

	// Без явного статуса выбираются только занимающие слот записи
	mock.ExpectQuery("SELECT (.+) FROM appointments WHERE provider_id").
		WithArgs(int64(7), date, string(domain.StatusPending), string(domain.StatusConfirmed)).
		WillReturnRows(rows)

	appointments, err := repo.GetByProviderWithFilter(context.Background(), domain.ProviderAppointmentsFilter{
		ProviderID: 7,
		Date:       ptr.Ptr(date),
	})
	require.NoError(t, err)
	require.Len(t, appointments, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByProviderWithFilter_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM appointments WHERE provider_id").
		WillReturnRows(newAppointmentRows())

	appointments, err := repo.GetByProviderWithFilter(context.Background(), domain.ProviderAppointmentsFilter{
		ProviderID: 7,
	})
	require.NoError(t, err)

	// Пустой результат, но не nil
	assert.NotNil(t, appointments)
	assert.Len(t, appointments, 0)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetInRange_Platform(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	rows := newAppointmentRows()
	addRow(rows, appointmentRowValues(101, from.AddDate(0, 0, 3), "10:00", "11:00", domain.StatusCompleted))

	mock.ExpectQuery("SELECT (.+) FROM appointments WHERE date").
		WithArgs(from, to).
		WillReturnRows(rows)

	appointments, err := repo.GetInRange(context.Background(), nil, from, to)
	require.NoError(t, err)
	require.Len(t, appointments, 1)
	assert.Equal(t, domain.StatusCompleted, appointments[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_EarliestAppointmentDates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	first := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT client_id, MIN").
		WithArgs(int64(7), int64(42), int64(43)).
		WillReturnRows(sqlmock.NewRows([]string{"client_id", "min"}).
			AddRow(int64(42), first).
			AddRow(int64(43), first.AddDate(0, 2, 0)))

	dates, err := repo.EarliestAppointmentDates(context.Background(), 7, []int64{42, 43})
	require.NoError(t, err)

	require.Len(t, dates, 2)
	assert.Equal(t, first, dates[42])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_EarliestAppointmentDates_NoClients(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	// Без клиентов запрос к базе не выполняется
	dates, err := repo.EarliestAppointmentDates(context.Background(), 7, nil)
	require.NoError(t, err)
	assert.Empty(t, dates)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatusFrom(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec("UPDATE appointments SET status").
		WithArgs(string(domain.StatusConfirmed), int64(101), string(domain.StatusPending)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.UpdateStatusFrom(context.Background(), 101, domain.StatusPending, domain.StatusConfirmed, nil, nil)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatusFrom_Concurrent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	// Ожидаемый статус не совпал - строка не обновлена
	mock.ExpectExec("UPDATE appointments SET status").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateStatusFrom(context.Background(), 101, domain.StatusPending, domain.StatusConfirmed, nil, nil)
	assert.ErrorIs(t, err, ErrNotUpdated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatusFrom_CancelSetsReason(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec("UPDATE appointments SET status").
		WithArgs(
			string(domain.StatusCancelled),
			"клиент заболел",
			int64(101),
			string(domain.StatusConfirmed),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.UpdateStatusFrom(
		context.Background(),
		101,
		domain.StatusConfirmed,
		domain.StatusCancelled,
		nil,
		ptr.Ptr("клиент заболел"),
	)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SetReview(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec("UPDATE appointments SET rating").
		WithArgs(5, "Отличный специалист", int64(101), string(domain.StatusCompleted)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.SetReview(context.Background(), 101, 5, ptr.Ptr("Отличный специалист"))
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SetReview_NotCompleted(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	// Статус не completed - условие WHERE не выполнено
	mock.ExpectExec("UPDATE appointments SET rating").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.SetReview(context.Background(), 101, 4, nil)
	assert.ErrorIs(t, err, ErrNotUpdated)
	assert.NoError(t, mock.ExpectationsWereMet())
}
