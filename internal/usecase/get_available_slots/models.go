package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса доступных слотов
type Request struct {
	ProviderID int64     // ID специалиста
	Date       time.Time // Дата, на которую запрашиваются слоты
}

// Response модель ответа со слотами
type Response struct {
	ProviderID int64                  // ID специалиста
	Date       time.Time              // Дата
	Slots      []domain.AvailableSlot // Свободные слоты, отсортированные по времени начала
}
