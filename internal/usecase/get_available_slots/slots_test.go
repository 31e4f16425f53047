package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/schedconfig"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/providerservice"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func workingDay(start, end string) providerservice.DaySchedule {
	return providerservice.DaySchedule{
		IsAvailable: true,
		StartTime:   ptr.Ptr(start),
		EndTime:     ptr.Ptr(end),
	}
}

func TestGenerateTimeSlots_FullDay(t *testing.T) {
	now := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	slots, err := generateTimeSlots(workingDay("09:00", "12:00"), 60, date, now, 60)
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"09:00", "10:00", "11:00"}, slots)
}

func TestGenerateTimeSlots_PartialSlotDropped(t *testing.T) {
	now := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	// 10:30-11:30 не помещается в окно до 11:00
	slots, err := generateTimeSlots(workingDay("09:00", "11:00"), 90, date, now, 60)
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"09:00"}, slots)
}

func TestGenerateTimeSlots_PastDate(t *testing.T) {
	now := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	slots, err := generateTimeSlots(workingDay("09:00", "18:00"), 60, date, now, 60)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateTimeSlots_ClosedDay(t *testing.T) {
	now := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	slots, err := generateTimeSlots(providerservice.DaySchedule{IsAvailable: false}, 60, date, now, 60)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateTimeSlots_DefaultWindowWhenTemplateSilent(t *testing.T) {
	now := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	slots, err := generateTimeSlots(providerservice.DaySchedule{IsAvailable: true}, 60, date, now, 60)
	require.NoError(t, err)

	// Окно по умолчанию 09:00-18:00 даёт девять часовых слотов
	require.Len(t, slots, 9)
	assert.Equal(t, types.TimeString("09:00"), slots[0])
	assert.Equal(t, types.TimeString("17:00"), slots[8])
}

func TestGenerateTimeSlots_TodayNoticeFilter(t *testing.T) {
	// Сейчас 10:15, уведомление 60 минут: допустимы слоты с 11:15
	now := time.Date(2025, 6, 3, 10, 15, 0, 0, time.UTC)
	date := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	slots, err := generateTimeSlots(workingDay("09:00", "14:00"), 60, date, now, 60)
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"12:00", "13:00"}, slots)
}

func TestGenerateTimeSlots_NoticePastMidnight(t *testing.T) {
	now := time.Date(2025, 6, 3, 23, 30, 0, 0, time.UTC)
	date := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	slots, err := generateTimeSlots(workingDay("09:00", "18:00"), 60, date, now, 60)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestFilterBookedSlots(t *testing.T) {
	grid := []types.TimeString{"09:00", "10:00", "11:00", "12:00"}

	appointments := []*domain.Appointment{
		{Status: domain.StatusConfirmed, StartTime: "10:00", EndTime: "11:00"},
		{Status: domain.StatusCancelled, StartTime: "12:00", EndTime: "13:00"}, // неактивная не мешает
	}

	slots := filterBookedSlots(grid, 60, appointments)

	require.Len(t, slots, 3)
	assert.Equal(t, types.TimeString("09:00"), slots[0].StartTime)
	assert.Equal(t, types.TimeString("10:00"), slots[0].EndTime)
	assert.Equal(t, types.TimeString("11:00"), slots[1].StartTime)
	assert.Equal(t, types.TimeString("12:00"), slots[2].StartTime)
	assert.Equal(t, 60, slots[2].DurationMinutes)
}

func TestFilterBookedSlots_PartialOverlap(t *testing.T) {
	grid := []types.TimeString{"09:00", "10:00", "11:00"}

	// Запись 09:30-10:30 задевает и первый, и второй слот
	appointments := []*domain.Appointment{
		{Status: domain.StatusPending, StartTime: "09:30", EndTime: "10:30"},
	}

	slots := filterBookedSlots(grid, 60, appointments)

	require.Len(t, slots, 1)
	assert.Equal(t, types.TimeString("11:00"), slots[0].StartTime)
}

func TestFilterBookedSlots_BackToBackDoesNotBlock(t *testing.T) {
	grid := []types.TimeString{"09:00", "10:00"}

	appointments := []*domain.Appointment{
		{Status: domain.StatusConfirmed, StartTime: "10:00", EndTime: "11:00"},
	}

	slots := filterBookedSlots(grid, 60, appointments)

	require.Len(t, slots, 1)
	assert.Equal(t, types.TimeString("09:00"), slots[0].StartTime)
}

func TestFilterBookedSlots_FullyBookedDay(t *testing.T) {
	grid := make([]types.TimeString, 0, 9)
	appointments := make([]*domain.Appointment, 0, 9)

	// Рабочий день 09:00-18:00 полностью занят часовыми записями
	start := types.TimeString("09:00")
	for i := 0; i < 9; i++ {
		end, err := start.AddMinutes(60)
		require.NoError(t, err)
		grid = append(grid, start)
		appointments = append(appointments, &domain.Appointment{
			Status:    domain.StatusConfirmed,
			StartTime: start,
			EndTime:   end,
		})
		start = end
	}

	slots := filterBookedSlots(grid, 60, appointments)
	assert.Empty(t, slots)
}

type stubAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (s *stubAppointmentRepo) GetByProviderWithFilter(_ context.Context, _ domain.ProviderAppointmentsFilter) ([]*domain.Appointment, error) {
	return s.appointments, nil
}

type stubConfigRepo struct {
	cfg *domain.ProviderSchedulingConfig
}

func (s *stubConfigRepo) GetByProvider(_ context.Context, _ int64) (*domain.ProviderSchedulingConfig, error) {
	if s.cfg == nil {
		return nil, schedconfig.ErrConfigNotFound
	}
	return s.cfg, nil
}

type stubProviderClient struct {
	provider *providerservice.Provider
	err      error
}

func (s *stubProviderClient) GetProvider(_ context.Context, _ int64) (*providerservice.Provider, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.provider, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testProvider() *providerservice.Provider {
	day := workingDay("09:00", "12:00")
	return &providerservice.Provider{
		ID:         7,
		Name:       "Dr. Petrova",
		HourlyRate: 120,
		IsActive:   true,
		IsVerified: true,
		WeeklySchedule: providerservice.WeeklySchedule{
			Monday: day, Tuesday: day, Wednesday: day, Thursday: day,
			Friday: day, Saturday: day, Sunday: day,
		},
	}
}

func TestExecute_FreeAndBookedSlots(t *testing.T) {
	now := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	uc := NewUseCase(
		&stubAppointmentRepo{appointments: []*domain.Appointment{
			{Status: domain.StatusConfirmed, StartTime: "10:00", EndTime: "11:00"},
		}},
		&stubConfigRepo{},
		&stubProviderClient{provider: testProvider()},
		nopLogger{},
	)
	uc.timeProvider = fixedTimeProvider{now: now}

	resp, err := uc.Execute(context.Background(), &Request{ProviderID: 7, Date: date})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 2)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("11:00"), resp.Slots[1].StartTime)
}

func TestExecute_ProviderNotFound(t *testing.T) {
	uc := NewUseCase(
		&stubAppointmentRepo{},
		&stubConfigRepo{},
		&stubProviderClient{err: providerservice.ErrProviderNotFound},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{ProviderID: 7, Date: time.Now()})
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestExecute_ClosedDayReturnsEmptySlice(t *testing.T) {
	now := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC) // воскресенье

	provider := testProvider()
	provider.WeeklySchedule.Sunday = providerservice.DaySchedule{IsAvailable: false}

	uc := NewUseCase(&stubAppointmentRepo{}, &stubConfigRepo{}, &stubProviderClient{provider: provider}, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: now}

	resp, err := uc.Execute(context.Background(), &Request{ProviderID: 7, Date: date})
	require.NoError(t, err)
	require.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
}

func TestExecute_DateBeyondHorizon(t *testing.T) {
	now := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	cfg := domain.DefaultSchedulingConfig(7)
	cfg.AdvanceBookingDays = 7

	uc := NewUseCase(&stubAppointmentRepo{}, &stubConfigRepo{cfg: cfg}, &stubProviderClient{provider: testProvider()}, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: now}

	_, err := uc.Execute(context.Background(), &Request{ProviderID: 7, Date: date})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}
