package book_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ClientID    int64              // ID клиента
	ProviderID  int64              // ID специалиста
	Date        time.Time          // Дата записи (без времени)
	StartTime   types.TimeString   // Время начала (например, "10:00")
	Duration    int                // Длительность в минутах [30, 180]
	SessionType domain.SessionType // Тип сессии
	SessionMode domain.SessionMode // Формат сессии
	Notes       *string            // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64            // ID созданной записи
	ClientID        int64            // ID клиента
	ProviderID      int64            // ID специалиста
	Date            time.Time        // Дата записи
	StartTime       types.TimeString // Время начала
	EndTime         types.TimeString // Время окончания
	DurationMinutes int              // Длительность в минутах
	SessionType     string           // Тип сессии
	SessionMode     string           // Формат сессии
	Status          string           // Статус записи
	Amount          float64          // Стоимость, зафиксированная при создании
	PaymentStatus   string           // Статус оплаты

	// Денормализованные данные специалиста для отображения
	ProviderName       string
	ProviderHourlyRate float64

	Notes *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
