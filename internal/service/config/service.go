package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	configRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/schedconfig"
	"github.com/m04kA/SMC-AppointmentService/internal/service/config/models"
)

// Service сервис для работы с конфигурацией расписания специалистов
type Service struct {
	configRepo ConfigRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(configRepo ConfigRepository, logger Logger) *Service {
	return &Service{
		configRepo: configRepo,
		logger:     logger,
	}
}

// GetByProvider получает конфигурацию расписания специалиста.
// Если специалист не настраивал расписание, возвращается конфигурация
// по умолчанию с признаком isDefault.
// Доступно самому специалисту и администратору.
func (s *Service) GetByProvider(ctx context.Context, providerID int64, actor domain.Actor) (*models.ConfigResponse, error) {
	s.logger.Info("GetByProvider: fetching config for provider=%d by %s=%d", providerID, actor.Role, actor.ID)

	if providerID <= 0 {
		return nil, fmt.Errorf("%w: provider id must be positive", ErrInvalidInput)
	}

	if err := s.checkAccess(providerID, actor); err != nil {
		return nil, err
	}

	cfg, err := s.configRepo.GetByProvider(ctx, providerID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Info("GetByProvider: provider=%d uses default config", providerID)
			return models.FromDomainConfig(domain.DefaultSchedulingConfig(providerID), true), nil
		}
		s.logger.Error("GetByProvider: repository error for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: GetByProvider - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByProvider: successfully fetched config id=%d", cfg.ID)
	return models.FromDomainConfig(cfg, false), nil
}

// Update перезаписывает конфигурацию расписания специалиста.
// Доступно самому специалисту и администратору.
func (s *Service) Update(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Update: updating config for provider=%d by %s=%d", req.ProviderID, req.Actor.Role, req.Actor.ID)

	if req.ProviderID <= 0 {
		return nil, fmt.Errorf("%w: provider id must be positive", ErrInvalidInput)
	}

	if err := s.checkAccess(req.ProviderID, req.Actor); err != nil {
		return nil, err
	}

	if err := s.validateConfigData(req); err != nil {
		s.logger.Warn("Update: validation failed for provider=%d: %v", req.ProviderID, err)
		return nil, err
	}

	cfg, err := s.configRepo.Upsert(ctx, req.ToDomainConfig())
	if err != nil {
		s.logger.Error("Update: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated config id=%d for provider=%d", cfg.ID, cfg.ProviderID)
	return models.FromDomainConfig(cfg, false), nil
}

// Вспомогательные методы

func (s *Service) checkAccess(providerID int64, actor domain.Actor) error {
	switch actor.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleProvider:
		if actor.ID == providerID {
			return nil
		}
	}

	s.logger.Warn("checkAccess: %s=%d has no access to config of provider=%d", actor.Role, actor.ID, providerID)
	return ErrAccessDenied
}

func (s *Service) validateConfigData(req *models.UpdateConfigRequest) error {
	if req.SlotDurationMinutes < 15 || req.SlotDurationMinutes > 240 {
		return fmt.Errorf("%w: slot duration must be between 15 and 240 minutes", ErrInvalidInput)
	}

	if req.SlotDurationMinutes%15 != 0 {
		return fmt.Errorf("%w: slot duration must be a multiple of 15 minutes", ErrInvalidInput)
	}

	if req.AdvanceBookingDays < domain.MinAdvanceBookingDays || req.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advance booking days must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	if req.MinBookingNoticeMinutes < domain.MinBookingNoticeMinutes || req.MinBookingNoticeMinutes > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: min booking notice must be between %d and %d minutes",
			ErrInvalidInput, domain.MinBookingNoticeMinutes, domain.MaxBookingNoticeMinutes)
	}

	return nil
}
