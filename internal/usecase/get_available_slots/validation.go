package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest проверяет корректность входных данных запроса
func validateRequest(req *Request) error {
	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: provider id must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата не выходит за горизонт бронирования.
// Даты в прошлом не являются ошибкой: по ним возвращается пустой список слотов.
func validateDate(date time.Time, now time.Time, cfg *domain.ProviderSchedulingConfig) error {
	if !cfg.HasAdvanceBookingLimit() {
		return nil
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	horizon := today.AddDate(0, 0, cfg.AdvanceBookingDays)
	if day.After(horizon) {
		return fmt.Errorf("%w: bookings are accepted at most %d days ahead",
			ErrDateTooFarInFuture, cfg.AdvanceBookingDays)
	}

	return nil
}
