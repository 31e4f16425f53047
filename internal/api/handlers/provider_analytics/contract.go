package provider_analytics

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/analytics/models"
)

type AnalyticsService interface {
	ProviderReport(ctx context.Context, req *models.ProviderReportRequest) (*models.ProviderReportResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
