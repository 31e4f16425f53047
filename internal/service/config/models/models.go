package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// UpdateConfigRequest запрос на изменение конфигурации расписания специалиста.
// Конфигурация перезаписывается целиком.
type UpdateConfigRequest struct {
	Actor                   domain.Actor `json:"-"`
	ProviderID              int64        `json:"providerId"`
	SlotDurationMinutes     int          `json:"slotDurationMinutes"`
	AdvanceBookingDays      int          `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int          `json:"minBookingNoticeMinutes"`
}

// ToDomainConfig конвертирует request в domain модель
func (r *UpdateConfigRequest) ToDomainConfig() *domain.ProviderSchedulingConfig {
	return &domain.ProviderSchedulingConfig{
		ProviderID:              r.ProviderID,
		SlotDurationMinutes:     r.SlotDurationMinutes,
		AdvanceBookingDays:      r.AdvanceBookingDays,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
	}
}

// ConfigResponse ответ с конфигурацией расписания
type ConfigResponse struct {
	ID                      int64     `json:"id,omitempty"`
	ProviderID              int64     `json:"providerId"`
	SlotDurationMinutes     int       `json:"slotDurationMinutes"`
	AdvanceBookingDays      int       `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int       `json:"minBookingNoticeMinutes"`
	IsDefault               bool      `json:"isDefault"`
	CreatedAt               time.Time `json:"createdAt,omitempty"`
	UpdatedAt               time.Time `json:"updatedAt,omitempty"`
}

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(cfg *domain.ProviderSchedulingConfig, isDefault bool) *ConfigResponse {
	if cfg == nil {
		return nil
	}

	return &ConfigResponse{
		ID:                      cfg.ID,
		ProviderID:              cfg.ProviderID,
		SlotDurationMinutes:     cfg.SlotDurationMinutes,
		AdvanceBookingDays:      cfg.AdvanceBookingDays,
		MinBookingNoticeMinutes: cfg.MinBookingNoticeMinutes,
		IsDefault:               isDefault,
		CreatedAt:               cfg.CreatedAt,
		UpdatedAt:               cfg.UpdatedAt,
	}
}
