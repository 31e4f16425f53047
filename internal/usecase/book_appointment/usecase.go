package book_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/schedconfig"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/providerservice"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Usecase создание записи на приём
type Usecase struct {
	appointmentRepo AppointmentRepository
	configRepo      ConfigRepository
	providerClient  ProviderServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUsecase конструктор usecase создания записи
func NewUsecase(
	appointmentRepo AppointmentRepository,
	configRepo ConfigRepository,
	providerClient ProviderServiceClient,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Usecase {
	return &Usecase{
		appointmentRepo: appointmentRepo,
		configRepo:      configRepo,
		providerClient:  providerClient,
		txManager:       txManager,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute создаёт запись на приём с проверкой конфликтов по слотам.
// Проверка пересечений и вставка выполняются в serializable-транзакции,
// чтобы два конкурентных запроса не заняли один и тот же интервал.
func (u *Usecase) Execute(ctx context.Context, req Request) (*Response, error) {
	if err := u.validateRequest(req); err != nil {
		return nil, err
	}

	now := u.timeProvider.Now()

	// Проверяем существование и доступность специалиста до открытия транзакции
	provider, err := u.providerClient.GetProvider(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, providerservice.ErrProviderNotFound) {
			return nil, fmt.Errorf("%w: provider %d", ErrProviderNotFound, req.ProviderID)
		}
		u.logger.Error("book_appointment: failed to fetch provider %d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: fetch provider: %v", ErrInternal, err)
	}

	if !provider.IsActive || !provider.IsVerified {
		return nil, fmt.Errorf("%w: provider %d", ErrProviderUnavailable, req.ProviderID)
	}

	endTime, err := req.StartTime.AddMinutes(req.Duration)
	if err != nil {
		return nil, fmt.Errorf("%w: %s + %d min crosses midnight", ErrInvalidTimeSlot, req.StartTime, req.Duration)
	}

	var created *domain.Appointment

	err = u.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		cfg, err := u.loadConfig(txCtx, req.ProviderID)
		if err != nil {
			return err
		}

		if err := u.validateDate(req.Date, now, cfg); err != nil {
			return err
		}

		if err := u.checkWorkingHours(provider, req.Date, req.StartTime, endTime); err != nil {
			return err
		}

		if err := u.checkBookingNotice(req.Date, req.StartTime, now, cfg); err != nil {
			return err
		}

		// Под serializable-транзакцией читаем записи дня с блокировкой строк
		existing, err := u.appointmentRepo.GetByProviderWithFilter(txCtx, domain.ProviderAppointmentsFilter{
			ProviderID: req.ProviderID,
			Date:       ptr.Ptr(req.Date),
		})
		if err != nil {
			u.logger.Error("book_appointment: failed to load appointments for provider %d: %v", req.ProviderID, err)
			return fmt.Errorf("%w: load appointments: %w", ErrInternal, err)
		}

		for _, apt := range existing {
			if !apt.IsActive() {
				continue
			}
			if types.Overlaps(req.StartTime, endTime, apt.StartTime, apt.EndTime) {
				return fmt.Errorf("%w: overlaps appointment %d (%s-%s)",
					ErrSlotConflict, apt.ID, apt.StartTime, apt.EndTime)
			}
		}

		amount := domain.AppointmentAmount(provider.HourlyRate, req.Duration)

		created, err = u.appointmentRepo.Create(txCtx, &domain.Appointment{
			ClientID:           req.ClientID,
			ProviderID:         req.ProviderID,
			Date:               truncateToDay(req.Date),
			StartTime:          req.StartTime,
			EndTime:            endTime,
			DurationMinutes:    req.Duration,
			SessionType:        req.SessionType,
			SessionMode:        req.SessionMode,
			Status:             domain.StatusPending,
			Amount:             amount,
			PaymentStatus:      domain.PaymentPending,
			ProviderName:       provider.Name,
			ProviderHourlyRate: provider.HourlyRate,
			Notes:              req.Notes,
		})
		if err != nil {
			u.logger.Error("book_appointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: create appointment: %w", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("book_appointment: created appointment %d for client %d with provider %d on %s %s-%s",
		created.ID, created.ClientID, created.ProviderID,
		created.Date.Format(domain.DateFormat), created.StartTime, created.EndTime)

	return toResponse(created), nil
}

// loadConfig загружает конфигурацию расписания, подставляя значения по умолчанию
func (u *Usecase) loadConfig(ctx context.Context, providerID int64) (*domain.ProviderSchedulingConfig, error) {
	cfg, err := u.configRepo.GetByProvider(ctx, providerID)
	if err != nil {
		if errors.Is(err, schedconfig.ErrConfigNotFound) {
			return domain.DefaultSchedulingConfig(providerID), nil
		}
		u.logger.Error("book_appointment: failed to load scheduling config for provider %d: %v", providerID, err)
		return nil, fmt.Errorf("%w: load scheduling config: %w", ErrInternal, err)
	}
	return cfg, nil
}

// checkWorkingHours проверяет, что интервал попадает в рабочее окно специалиста
func (u *Usecase) checkWorkingHours(provider *providerservice.Provider, date time.Time, start, end types.TimeString) error {
	day := provider.WeeklySchedule.ForWeekday(date.Weekday())
	if !day.IsAvailable {
		return fmt.Errorf("%w: %s", ErrProviderClosed, date.Weekday())
	}

	workStart := types.TimeString(domain.DefaultWorkDayStart)
	workEnd := types.TimeString(domain.DefaultWorkDayEnd)
	if day.StartTime != nil {
		workStart = types.TimeString(*day.StartTime)
	}
	if day.EndTime != nil {
		workEnd = types.TimeString(*day.EndTime)
	}

	if start.IsBefore(workStart) || end.IsAfter(workEnd) {
		return fmt.Errorf("%w: slot %s-%s is outside working hours %s-%s",
			ErrInvalidTimeSlot, start, end, workStart, workEnd)
	}

	return nil
}

// checkBookingNotice проверяет минимальный интервал до начала приёма
func (u *Usecase) checkBookingNotice(date time.Time, start types.TimeString, now time.Time, cfg *domain.ProviderSchedulingConfig) error {
	if cfg.MinBookingNoticeMinutes <= 0 {
		return nil
	}

	slotStart := truncateToDay(date).Add(time.Duration(start.Minutes()) * time.Minute)
	notice := time.Duration(cfg.MinBookingNoticeMinutes) * time.Minute

	if slotStart.Before(now.Add(notice)) {
		return fmt.Errorf("%w: at least %d minutes notice required", ErrTooLateToBook, cfg.MinBookingNoticeMinutes)
	}

	return nil
}

func toResponse(apt *domain.Appointment) *Response {
	return &Response{
		ID:                 apt.ID,
		ClientID:           apt.ClientID,
		ProviderID:         apt.ProviderID,
		Date:               apt.Date,
		StartTime:          apt.StartTime,
		EndTime:            apt.EndTime,
		DurationMinutes:    apt.DurationMinutes,
		SessionType:        string(apt.SessionType),
		SessionMode:        string(apt.SessionMode),
		Status:             string(apt.Status),
		Amount:             apt.Amount,
		PaymentStatus:      string(apt.PaymentStatus),
		ProviderName:       apt.ProviderName,
		ProviderHourlyRate: apt.ProviderHourlyRate,
		Notes:              apt.Notes,
		CreatedAt:          apt.CreatedAt,
		UpdatedAt:          apt.UpdatedAt,
	}
}
