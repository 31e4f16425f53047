package provider_analytics

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/analytics"
	"github.com/m04kA/SMC-AppointmentService/internal/service/analytics/models"
)

const (
	msgInvalidProviderID = "некорректный ID специалиста"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgForbidden         = "доступ запрещен"
	msgInvalidParams     = "некорректные параметры запроса"
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

// Handle GET /api/v1/providers/{providerId}/analytics
// Query params: period = week | month | quarter | year (по умолчанию month)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/analytics - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /providers/{id}/analytics - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.ProviderReport(r.Context(), &models.ProviderReportRequest{
		Actor:      actor,
		ProviderID: providerID,
		Period:     domain.AnalyticsPeriod(r.URL.Query().Get("period")),
	})
	if err != nil {
		switch {
		case errors.Is(err, analytics.ErrAccessDenied):
			h.logger.Warn("GET /providers/{id}/analytics - Access denied: provider_id=%d, user_id=%d",
				providerID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, analytics.ErrInvalidInput):
			h.logger.Warn("GET /providers/{id}/analytics - Invalid parameters: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /providers/{id}/analytics - Failed to build report: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{id}/analytics - Report built successfully: provider_id=%d, period=%s",
		providerID, result.Period)
	handlers.RespondJSON(w, http.StatusOK, result)
}
