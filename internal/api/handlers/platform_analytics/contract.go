package platform_analytics

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/analytics/models"
)

type AnalyticsService interface {
	PlatformReport(ctx context.Context, req *models.PlatformReportRequest) (*models.PlatformReportResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
