package chat

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/assistantservice"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgEmptyMessage         = "сообщение не может быть пустым"
	msgAssistantUnavailable = "ассистент временно недоступен"
)

const maxMessageLength = 4000

// chatBody тело запроса к ассистенту
type chatBody struct {
	Message string `json:"message"`
}

// chatResponse ответ ассистента
type chatResponse struct {
	Reply string `json:"reply"`
}

type Handler struct {
	assistant AssistantClient
	logger    Logger
}

func NewHandler(assistant AssistantClient, logger Logger) *Handler {
	return &Handler{
		assistant: assistant,
		logger:    logger,
	}
}

// Handle POST /api/v1/chat
// Прокси к AssistantService: сервис добавляет идентификацию пользователя,
// содержимое диалога не хранит.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /chat - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var body chatBody
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /chat - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	message := strings.TrimSpace(body.Message)
	if message == "" || len(message) > maxMessageLength {
		h.logger.Warn("POST /chat - Empty or oversized message: user_id=%d", actor.ID)
		handlers.RespondBadRequest(w, msgEmptyMessage)
		return
	}

	result, err := h.assistant.SendMessage(r.Context(), actor.ID, message)
	if err != nil {
		switch {
		case errors.Is(err, assistantservice.ErrUnavailable):
			h.logger.Warn("POST /chat - Assistant unavailable: user_id=%d, error=%v", actor.ID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgAssistantUnavailable)

		default:
			h.logger.Error("POST /chat - Failed to send message: user_id=%d, error=%v", actor.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /chat - Message relayed successfully: user_id=%d", actor.ID)
	handlers.RespondJSON(w, http.StatusOK, chatResponse{Reply: result.Reply})
}
