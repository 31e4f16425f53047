package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/schedconfig"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/providerservice"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// UseCase получение свободных слотов для записи к специалисту
type UseCase struct {
	appointmentRepo AppointmentRepository
	configRepo      ConfigRepository
	providerClient  ProviderServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	configRepo ConfigRepository,
	providerClient ProviderServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		configRepo:      configRepo,
		providerClient:  providerClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute возвращает свободные слоты специалиста на указанную дату
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: provider=%d, date=%s",
		req.ProviderID, req.Date.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	provider, err := uc.providerClient.GetProvider(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, providerservice.ErrProviderNotFound) {
			uc.logger.Warn("GetAvailableSlots: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	if !provider.IsActive || !provider.IsVerified {
		uc.logger.Warn("GetAvailableSlots: provider id=%d is not available", req.ProviderID)
		return nil, ErrProviderUnavailable
	}

	cfg, err := uc.configRepo.GetByProvider(ctx, req.ProviderID)
	if err != nil {
		if !errors.Is(err, schedconfig.ErrConfigNotFound) {
			uc.logger.Error("GetAvailableSlots: failed to get config: %v", err)
			return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
		}
		cfg = domain.DefaultSchedulingConfig(req.ProviderID)
		uc.logger.Info("GetAvailableSlots: using default config for provider=%d", req.ProviderID)
	}

	if err := validateDate(req.Date, now, cfg); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	workingHours := provider.WeeklySchedule.ForWeekday(req.Date.Weekday())
	if !workingHours.IsAvailable {
		uc.logger.Info("GetAvailableSlots: provider is closed on %s", req.Date.Format(domain.DateFormat))
		return &Response{
			ProviderID: req.ProviderID,
			Date:       req.Date,
			Slots:      []domain.AvailableSlot{},
		}, nil
	}

	timeSlots, err := generateTimeSlots(
		workingHours,
		cfg.SlotDurationMinutes,
		req.Date,
		now,
		cfg.MinBookingNoticeMinutes,
	)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}

	appointments, err := uc.appointmentRepo.GetByProviderWithFilter(ctx, domain.ProviderAppointmentsFilter{
		ProviderID: req.ProviderID,
		Date:       ptr.Ptr(req.Date),
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	slots := filterBookedSlots(timeSlots, cfg.SlotDurationMinutes, appointments)

	uc.logger.Info("GetAvailableSlots: %d free slots for provider=%d, date=%s",
		len(slots), req.ProviderID, req.Date.Format(domain.DateFormat))

	return &Response{
		ProviderID: req.ProviderID,
		Date:       req.Date,
		Slots:      slots,
	}, nil
}
