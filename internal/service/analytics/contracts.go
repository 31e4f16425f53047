package analytics

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/providerservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetInRange(ctx context.Context, providerID *int64, from, to time.Time) ([]*domain.Appointment, error)
	GetCreatedInRange(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error)
	EarliestAppointmentDates(ctx context.Context, providerID int64, clientIDs []int64) (map[int64]time.Time, error)
}

// ProviderServiceClient интерфейс клиента для ProviderService
type ProviderServiceClient interface {
	GetPlatformStats(ctx context.Context) (*providerservice.PlatformStats, error)
}

// ReportCache интерфейс кэша готовых отчетов
type ReportCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, v interface{}) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
