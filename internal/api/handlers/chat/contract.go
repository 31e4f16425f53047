package chat

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/integrations/assistantservice"
)

type AssistantClient interface {
	SendMessage(ctx context.Context, userID int64, message string) (*assistantservice.ChatResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
