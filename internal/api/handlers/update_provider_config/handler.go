package update_provider_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	configService "github.com/m04kA/SMC-AppointmentService/internal/service/config"
	"github.com/m04kA/SMC-AppointmentService/internal/service/config/models"
)

const (
	msgInvalidProviderID  = "некорректный ID специалиста"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "некорректные параметры конфигурации"
)

// updateConfigBody тело запроса на изменение конфигурации
type updateConfigBody struct {
	SlotDurationMinutes     int `json:"slotDurationMinutes"`
	AdvanceBookingDays      int `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int `json:"minBookingNoticeMinutes"`
}

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/providers/{providerId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /providers/{id}/config - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PUT /providers/{id}/config - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var body updateConfigBody
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("PUT /providers/{id}/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), &models.UpdateConfigRequest{
		Actor:                   actor,
		ProviderID:              providerID,
		SlotDurationMinutes:     body.SlotDurationMinutes,
		AdvanceBookingDays:      body.AdvanceBookingDays,
		MinBookingNoticeMinutes: body.MinBookingNoticeMinutes,
	})
	if err != nil {
		switch {
		case errors.Is(err, configService.ErrAccessDenied):
			h.logger.Warn("PUT /providers/{id}/config - Access denied: provider_id=%d, user_id=%d",
				providerID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, configService.ErrInvalidInput):
			h.logger.Warn("PUT /providers/{id}/config - Invalid input: provider_id=%d, error=%v", providerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /providers/{id}/config - Failed to update config: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /providers/{id}/config - Config updated successfully: provider_id=%d, config_id=%d",
		providerID, result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
