package config

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ConfigRepository интерфейс репозитория конфигурации расписания
type ConfigRepository interface {
	GetByProvider(ctx context.Context, providerID int64) (*domain.ProviderSchedulingConfig, error)
	Upsert(ctx context.Context, cfg *domain.ProviderSchedulingConfig) (*domain.ProviderSchedulingConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
