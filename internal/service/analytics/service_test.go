package analytics

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/providerservice"
	"github.com/m04kA/SMC-AppointmentService/internal/service/analytics/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type stubRepo struct {
	inRange   []*domain.Appointment
	created   []*domain.Appointment
	earliest  map[int64]time.Time
	rangeFrom time.Time
	rangeTo   time.Time
}

func (r *stubRepo) GetInRange(_ context.Context, _ *int64, from, to time.Time) ([]*domain.Appointment, error) {
	r.rangeFrom = from
	r.rangeTo = to
	return r.inRange, nil
}

func (r *stubRepo) GetCreatedInRange(_ context.Context, _, _ time.Time) ([]*domain.Appointment, error) {
	return r.created, nil
}

func (r *stubRepo) EarliestAppointmentDates(_ context.Context, _ int64, _ []int64) (map[int64]time.Time, error) {
	if r.earliest == nil {
		return map[int64]time.Time{}, nil
	}
	return r.earliest, nil
}

type stubProviderClient struct {
	stats *providerservice.PlatformStats
}

func (s *stubProviderClient) GetPlatformStats(_ context.Context) (*providerservice.PlatformStats, error) {
	return s.stats, nil
}

type memoryCache struct {
	store map[string][]byte
	gets  int
	hits  int
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.gets++
	payload, ok := c.store[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(payload, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if c.store == nil {
		c.store = make(map[string][]byte)
	}
	c.store[key] = payload
	return nil
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

var (
	providerActor = domain.Actor{ID: 7, Role: domain.RoleProvider}
	adminActor    = domain.Actor{ID: 1, Role: domain.RoleAdmin}
)

func day(d int) time.Time {
	return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
}

func completedAppointment(clientID int64, date time.Time, amount float64) *domain.Appointment {
	return &domain.Appointment{
		ClientID:    clientID,
		ProviderID:  7,
		Date:        date,
		Status:      domain.StatusCompleted,
		Amount:      amount,
		SessionType: domain.SessionIndividual,
	}
}

func newTestService(repo *stubRepo, client *stubProviderClient, reportCache ReportCache, now time.Time) *Service {
	svc := NewService(repo, client, reportCache, nopLogger{})
	svc.timeProvider = fixedTimeProvider{now: now}
	return svc
}

func TestProviderReport_Totals(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	cancelled := completedAppointment(42, day(5), 100)
	cancelled.Status = domain.StatusCancelled
	noShow := completedAppointment(43, day(6), 100)
	noShow.Status = domain.StatusNoShow

	rated := completedAppointment(42, day(10), 120)
	rated.Rating = ptr.Ptr(5)
	rated2 := completedAppointment(44, day(11), 80)
	rated2.Rating = ptr.Ptr(4)

	repo := &stubRepo{
		inRange: []*domain.Appointment{cancelled, noShow, rated, rated2},
		earliest: map[int64]time.Time{
			42: day(5),                                     // первая запись в окне - новый клиент
			43: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), // был раньше - возвращающийся
			44: day(11),
		},
	}

	svc := newTestService(repo, &stubProviderClient{}, nil, now)

	resp, err := svc.ProviderReport(context.Background(), &models.ProviderReportRequest{
		Actor:      providerActor,
		ProviderID: 7,
		Period:     domain.PeriodMonth,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(4), resp.TotalAppointments)
	assert.Equal(t, int64(2), resp.CompletedAppointments)
	assert.Equal(t, int64(1), resp.CancelledAppointments)
	assert.Equal(t, int64(1), resp.NoShowAppointments)
	assert.InDelta(t, 200.0, resp.TotalEarnings, 0.001)

	require.NotNil(t, resp.AverageRating)
	assert.InDelta(t, 4.5, *resp.AverageRating, 0.001)
	assert.Equal(t, int64(2), resp.RatingsCount)

	assert.Equal(t, int64(2), resp.NewClients)
	assert.Equal(t, int64(1), resp.ReturningClients)

	assert.Equal(t, int64(4), resp.SessionTypeDistribution["individual"])

	// Окно месяца начинается с первого числа
	assert.Equal(t, "2025-06-01", resp.WindowStart)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), repo.rangeFrom)
}

func TestProviderReport_EarningsOnlyFromCompleted(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	cancelled := completedAppointment(42, day(5), 500)
	cancelled.Status = domain.StatusCancelled

	repo := &stubRepo{
		inRange: []*domain.Appointment{
			cancelled,
			completedAppointment(42, day(5), 100),
		},
	}

	svc := newTestService(repo, &stubProviderClient{}, nil, now)

	resp, err := svc.ProviderReport(context.Background(), &models.ProviderReportRequest{
		Actor:      providerActor,
		ProviderID: 7,
	})
	require.NoError(t, err)

	assert.InDelta(t, 100.0, resp.TotalEarnings, 0.001)
	require.Len(t, resp.EarningsSeries, 1)
	assert.InDelta(t, 100.0, resp.EarningsSeries[0].Amount, 0.001)
}

func TestProviderReport_SeriesSumMatchesTotals(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	repo := &stubRepo{
		inRange: []*domain.Appointment{
			completedAppointment(42, day(3), 100),
			completedAppointment(42, day(3), 50),
			completedAppointment(43, day(10), 75),
		},
	}

	svc := newTestService(repo, &stubProviderClient{}, nil, now)

	resp, err := svc.ProviderReport(context.Background(), &models.ProviderReportRequest{
		Actor:      providerActor,
		ProviderID: 7,
	})
	require.NoError(t, err)

	var seriesEarnings float64
	var seriesCount int64
	for _, bucket := range resp.EarningsSeries {
		seriesEarnings += bucket.Amount
	}
	for _, bucket := range resp.AppointmentsSeries {
		seriesCount += bucket.Count
	}

	assert.InDelta(t, resp.TotalEarnings, seriesEarnings, 0.001)
	assert.Equal(t, resp.TotalAppointments, seriesCount)
}

func TestProviderReport_SeriesChronological(t *testing.T) {
	now := time.Date(2025, 2, 15, 12, 0, 0, 0, time.UTC)

	// Год: интервалы по месяцам через границу года быть не могут,
	// но порядок внутри окна обязан быть хронологическим, не лексикографическим
	repo := &stubRepo{
		inRange: []*domain.Appointment{
			completedAppointment(42, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), 10),
			completedAppointment(42, time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), 20),
		},
	}

	svc := newTestService(repo, &stubProviderClient{}, nil, now)

	resp, err := svc.ProviderReport(context.Background(), &models.ProviderReportRequest{
		Actor:      providerActor,
		ProviderID: 7,
		Period:     domain.PeriodYear,
	})
	require.NoError(t, err)

	require.Len(t, resp.AppointmentsSeries, 2)
	assert.Equal(t, "2025-01", resp.AppointmentsSeries[0].Label)
	assert.Equal(t, "2025-02", resp.AppointmentsSeries[1].Label)
}

func TestProviderReport_EmptyWindow(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	svc := newTestService(&stubRepo{}, &stubProviderClient{}, nil, now)

	resp, err := svc.ProviderReport(context.Background(), &models.ProviderReportRequest{
		Actor:      providerActor,
		ProviderID: 7,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), resp.TotalAppointments)
	assert.Nil(t, resp.AverageRating)
	require.NotNil(t, resp.EarningsSeries)
	assert.Empty(t, resp.EarningsSeries)
	require.NotNil(t, resp.AppointmentsSeries)
	assert.Empty(t, resp.AppointmentsSeries)
}

func TestProviderReport_AccessControl(t *testing.T) {
	svc := newTestService(&stubRepo{}, &stubProviderClient{}, nil, time.Now())

	// Чужой отчет специалисту недоступен
	_, err := svc.ProviderReport(context.Background(), &models.ProviderReportRequest{
		Actor:      domain.Actor{ID: 8, Role: domain.RoleProvider},
		ProviderID: 7,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Клиенту отчеты недоступны
	_, err = svc.ProviderReport(context.Background(), &models.ProviderReportRequest{
		Actor:      domain.Actor{ID: 7, Role: domain.RoleClient},
		ProviderID: 7,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Администратору доступен любой
	_, err = svc.ProviderReport(context.Background(), &models.ProviderReportRequest{
		Actor:      adminActor,
		ProviderID: 7,
	})
	assert.NoError(t, err)
}

func TestProviderReport_CacheReadThrough(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	repo := &stubRepo{
		inRange: []*domain.Appointment{completedAppointment(42, day(5), 100)},
	}
	reportCache := &memoryCache{}

	svc := newTestService(repo, &stubProviderClient{}, reportCache, now)

	req := &models.ProviderReportRequest{Actor: providerActor, ProviderID: 7}

	first, err := svc.ProviderReport(context.Background(), req)
	require.NoError(t, err)

	// Второй запрос обслуживается из кэша даже при изменившихся данных
	repo.inRange = nil

	second, err := svc.ProviderReport(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.TotalAppointments, second.TotalAppointments)
	assert.Equal(t, 1, reportCache.hits)
}

func TestPlatformReport_AdminOnly(t *testing.T) {
	svc := newTestService(&stubRepo{}, &stubProviderClient{stats: &providerservice.PlatformStats{}}, nil, time.Now())

	_, err := svc.PlatformReport(context.Background(), &models.PlatformReportRequest{
		Actor: providerActor,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestPlatformReport_Totals(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	completedApt := completedAppointment(42, day(5), 100)
	completedApt.CreatedAt = day(5)
	pendingApt := completedAppointment(43, day(6), 50)
	pendingApt.Status = domain.StatusPending
	pendingApt.CreatedAt = day(6)

	repo := &stubRepo{created: []*domain.Appointment{completedApt, pendingApt}}
	client := &stubProviderClient{stats: &providerservice.PlatformStats{
		TotalUsers:        1000,
		ActiveUsers:       400,
		TotalProviders:    50,
		ActiveProviders:   30,
		VerifiedProviders: 25,
	}}

	svc := newTestService(repo, client, nil, now)

	resp, err := svc.PlatformReport(context.Background(), &models.PlatformReportRequest{
		Actor:  adminActor,
		Period: domain.PeriodMonth,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1000), resp.TotalUsers)
	assert.Equal(t, int64(25), resp.VerifiedProviders)
	assert.Equal(t, int64(2), resp.TotalAppointments)
	assert.InDelta(t, 100.0, resp.TotalRevenue, 0.001)
	assert.Equal(t, int64(1), resp.StatusHistogram["completed"])
	assert.Equal(t, int64(1), resp.StatusHistogram["pending"])
	assert.Len(t, resp.AppointmentsSeries, 2)
}

func TestPlatformReport_EarningsOnlyFromCompleted(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	completedApt := completedAppointment(42, day(5), 100)
	completedApt.CreatedAt = day(5)
	cancelledApt := completedAppointment(43, day(5), 50)
	cancelledApt.Status = domain.StatusCancelled
	cancelledApt.CreatedAt = day(5)
	cancelledApt.SessionType = domain.SessionGroup
	pendingApt := completedAppointment(44, day(5), 70)
	pendingApt.Status = domain.StatusPending
	pendingApt.CreatedAt = day(5)

	repo := &stubRepo{created: []*domain.Appointment{completedApt, cancelledApt, pendingApt}}
	client := &stubProviderClient{stats: &providerservice.PlatformStats{}}

	svc := newTestService(repo, client, nil, now)

	resp, err := svc.PlatformReport(context.Background(), &models.PlatformReportRequest{
		Actor:  adminActor,
		Period: domain.PeriodMonth,
	})
	require.NoError(t, err)

	// Ряд заработка - только завершенные записи
	require.Len(t, resp.EarningsSeries, 1)
	assert.InDelta(t, 100.0, resp.EarningsSeries[0].Amount, 0.001)
	assert.Equal(t, int64(1), resp.EarningsSeries[0].Count)
	assert.InDelta(t, 100.0, resp.TotalRevenue, 0.001)

	// Ряд количества считает все статусы, но не копит суммы
	require.Len(t, resp.AppointmentsSeries, 1)
	assert.Equal(t, int64(3), resp.AppointmentsSeries[0].Count)
	assert.InDelta(t, 0.0, resp.AppointmentsSeries[0].Amount, 0.001)

	assert.Equal(t, int64(2), resp.SessionTypeDistribution["individual"])
	assert.Equal(t, int64(1), resp.SessionTypeDistribution["group"])
}
