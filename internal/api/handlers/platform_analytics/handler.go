package platform_analytics

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/analytics"
	"github.com/m04kA/SMC-AppointmentService/internal/service/analytics/models"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service AnalyticsService
	logger  Logger
}

func NewHandler(service AnalyticsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/analytics
// Query params: period = week | month | quarter | year (по умолчанию month)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /admin/analytics - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.PlatformReport(r.Context(), &models.PlatformReportRequest{
		Actor:  actor,
		Period: domain.AnalyticsPeriod(r.URL.Query().Get("period")),
	})
	if err != nil {
		switch {
		case errors.Is(err, analytics.ErrAccessDenied):
			h.logger.Warn("GET /admin/analytics - Access denied: user_id=%d", actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /admin/analytics - Failed to build report: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/analytics - Report built successfully: period=%s", result.Period)
	handlers.RespondJSON(w, http.StatusOK, result)
}
