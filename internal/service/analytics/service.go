package analytics

import (
	"context"
	"fmt"
	"time"

	cache "github.com/m04kA/SMC-AppointmentService/internal/infra/cache/analytics"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/analytics/models"
)

// Service агрегация аналитики по записям в скользящих временных окнах
type Service struct {
	appointmentRepo AppointmentRepository
	providerClient  ProviderServiceClient
	cache           ReportCache
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса аналитики.
// cache может быть nil - тогда отчеты считаются на каждый запрос.
func NewService(
	appointmentRepo AppointmentRepository,
	providerClient ProviderServiceClient,
	reportCache ReportCache,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		providerClient:  providerClient,
		cache:           reportCache,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// ProviderReport строит отчет по записям специалиста за период.
// Специалист видит только свой отчет, администратор - любой.
func (s *Service) ProviderReport(ctx context.Context, req *models.ProviderReportRequest) (*models.ProviderReportResponse, error) {
	if req.ProviderID <= 0 {
		return nil, fmt.Errorf("%w: provider id must be positive", ErrInvalidInput)
	}

	switch req.Actor.Role {
	case domain.RoleAdmin:
	case domain.RoleProvider:
		if req.Actor.ID != req.ProviderID {
			s.logger.Warn("ProviderReport: provider=%d requested report of provider=%d", req.Actor.ID, req.ProviderID)
			return nil, ErrAccessDenied
		}
	default:
		return nil, ErrAccessDenied
	}

	period := domain.NormalizePeriod(req.Period)
	s.logger.Info("ProviderReport: building report for provider=%d, period=%s", req.ProviderID, period)

	cacheKey := cache.ProviderKey(req.ProviderID, string(period))
	var cached models.ProviderReportResponse
	if s.cacheGet(ctx, cacheKey, &cached) {
		s.logger.Info("ProviderReport: cache hit for provider=%d, period=%s", req.ProviderID, period)
		return &cached, nil
	}

	now := s.timeProvider.Now()
	windowStart := domain.WindowStart(period, now)

	appointments, err := s.appointmentRepo.GetInRange(ctx, &req.ProviderID, windowStart, now)
	if err != nil {
		s.logger.Error("ProviderReport: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: ProviderReport - repository error: %v", ErrInternal, err)
	}

	resp := s.buildProviderReport(ctx, req.ProviderID, period, windowStart, now, appointments)

	s.cacheSet(ctx, cacheKey, resp)

	s.logger.Info("ProviderReport: built report for provider=%d over %d appointments", req.ProviderID, resp.TotalAppointments)
	return resp, nil
}

// PlatformReport строит сводный отчет по платформе. Доступен только администратору.
func (s *Service) PlatformReport(ctx context.Context, req *models.PlatformReportRequest) (*models.PlatformReportResponse, error) {
	if req.Actor.Role != domain.RoleAdmin {
		s.logger.Warn("PlatformReport: %s=%d requested platform report", req.Actor.Role, req.Actor.ID)
		return nil, ErrAccessDenied
	}

	period := domain.NormalizePeriod(req.Period)
	s.logger.Info("PlatformReport: building report for period=%s", period)

	cacheKey := cache.PlatformKey(string(period))
	var cached models.PlatformReportResponse
	if s.cacheGet(ctx, cacheKey, &cached) {
		s.logger.Info("PlatformReport: cache hit for period=%s", period)
		return &cached, nil
	}

	now := s.timeProvider.Now()
	windowStart := domain.WindowStart(period, now)

	stats, err := s.providerClient.GetPlatformStats(ctx)
	if err != nil {
		s.logger.Error("PlatformReport: failed to get platform stats: %v", err)
		return nil, fmt.Errorf("%w: PlatformReport - platform stats: %v", ErrInternal, err)
	}

	appointments, err := s.appointmentRepo.GetCreatedInRange(ctx, windowStart, now)
	if err != nil {
		s.logger.Error("PlatformReport: repository error: %v", err)
		return nil, fmt.Errorf("%w: PlatformReport - repository error: %v", ErrInternal, err)
	}

	earnings := newBucketAccumulator(period)
	counts := newBucketAccumulator(period)
	histogram := make(map[string]int64)
	sessionTypes := make(map[string]int64)

	var totalRevenue float64
	for _, apt := range appointments {
		histogram[string(apt.Status)]++
		sessionTypes[string(apt.SessionType)]++
		counts.add(apt.CreatedAt, 0)

		// В выручку и ряд заработка попадают только завершенные записи
		if apt.Status == domain.StatusCompleted {
			totalRevenue += apt.Amount
			earnings.add(apt.CreatedAt, apt.Amount)
		}
	}

	resp := &models.PlatformReportResponse{
		Period:                  string(period),
		WindowStart:             windowStart.Format(domain.DateFormat),
		WindowEnd:               now.Format(domain.DateFormat),
		TotalUsers:              stats.TotalUsers,
		ActiveUsers:             stats.ActiveUsers,
		TotalProviders:          stats.TotalProviders,
		ActiveProviders:         stats.ActiveProviders,
		VerifiedProviders:       stats.VerifiedProviders,
		TotalAppointments:       int64(len(appointments)),
		TotalRevenue:            totalRevenue,
		StatusHistogram:         histogram,
		SessionTypeDistribution: sessionTypes,
		EarningsSeries:          earnings.series(),
		AppointmentsSeries:      counts.series(),
	}

	s.cacheSet(ctx, cacheKey, resp)

	s.logger.Info("PlatformReport: built report over %d appointments", resp.TotalAppointments)
	return resp, nil
}

func (s *Service) buildProviderReport(
	ctx context.Context,
	providerID int64,
	period domain.AnalyticsPeriod,
	windowStart, windowEnd time.Time,
	appointments []*domain.Appointment,
) *models.ProviderReportResponse {
	earnings := newBucketAccumulator(period)
	counts := newBucketAccumulator(period)
	sessionTypes := make(map[string]int64)

	var completed, cancelled, noShow, ratingsCount int64
	var totalEarnings, ratingSum float64

	clientIDs := make(map[int64]struct{})

	for _, apt := range appointments {
		clientIDs[apt.ClientID] = struct{}{}
		sessionTypes[string(apt.SessionType)]++
		counts.add(apt.Date, 0)

		switch apt.Status {
		case domain.StatusCompleted:
			completed++
			totalEarnings += apt.Amount
			earnings.add(apt.Date, apt.Amount)
		case domain.StatusCancelled:
			cancelled++
		case domain.StatusNoShow:
			noShow++
		}

		if apt.Rating != nil {
			ratingsCount++
			ratingSum += float64(*apt.Rating)
		}
	}

	newClients, returningClients := s.splitClients(ctx, providerID, windowStart, clientIDs)

	resp := &models.ProviderReportResponse{
		ProviderID:              providerID,
		Period:                  string(period),
		WindowStart:             windowStart.Format(domain.DateFormat),
		WindowEnd:               windowEnd.Format(domain.DateFormat),
		TotalAppointments:       int64(len(appointments)),
		CompletedAppointments:   completed,
		CancelledAppointments:   cancelled,
		NoShowAppointments:      noShow,
		TotalEarnings:           totalEarnings,
		RatingsCount:            ratingsCount,
		NewClients:              newClients,
		ReturningClients:        returningClients,
		SessionTypeDistribution: sessionTypes,
		EarningsSeries:          earnings.series(),
		AppointmentsSeries:      counts.series(),
	}

	if ratingsCount > 0 {
		avg := ratingSum / float64(ratingsCount)
		resp.AverageRating = &avg
	}

	return resp
}

// splitClients делит клиентов окна на новых и возвращающихся: клиент новый,
// если его самая ранняя запись у специалиста попадает в окно отчета.
// При ошибке подсчёт деградирует до нулей, отчет при этом не падает.
func (s *Service) splitClients(
	ctx context.Context,
	providerID int64,
	windowStart time.Time,
	clientIDs map[int64]struct{},
) (newClients, returningClients int64) {
	if len(clientIDs) == 0 {
		return 0, 0
	}

	ids := make([]int64, 0, len(clientIDs))
	for id := range clientIDs {
		ids = append(ids, id)
	}

	earliest, err := s.appointmentRepo.EarliestAppointmentDates(ctx, providerID, ids)
	if err != nil {
		s.logger.Error("splitClients: repository error for provider=%d: %v", providerID, err)
		return 0, 0
	}

	windowStartDay := time.Date(windowStart.Year(), windowStart.Month(), windowStart.Day(), 0, 0, 0, 0, windowStart.Location())
	for _, first := range earliest {
		if first.Before(windowStartDay) {
			returningClients++
		} else {
			newClients++
		}
	}

	return newClients, returningClients
}

// cacheGet читает отчет из кэша; отказ кэша равнозначен промаху
func (s *Service) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}

	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.logger.Warn("analytics cache unavailable on get %s: %v", key, err)
		return false
	}

	return hit
}

// cacheSet сохраняет отчет в кэш; отказ кэша не влияет на ответ
func (s *Service) cacheSet(ctx context.Context, key string, v interface{}) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Set(ctx, key, v); err != nil {
		s.logger.Warn("analytics cache unavailable on set %s: %v", key, err)
	}
}
