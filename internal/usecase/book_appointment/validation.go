package book_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest проверяет корректность входных данных запроса
func (u *Usecase) validateRequest(req Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: client id must be positive", ErrInvalidInput)
	}

	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: provider id must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}

	if req.Duration < domain.MinAppointmentDurationMinutes || req.Duration > domain.MaxAppointmentDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinAppointmentDurationMinutes, domain.MaxAppointmentDurationMinutes)
	}

	if !domain.ValidSessionType(req.SessionType) {
		return fmt.Errorf("%w: unknown session type %q", ErrInvalidInput, req.SessionType)
	}

	if !domain.ValidSessionMode(req.SessionMode) {
		return fmt.Errorf("%w: unknown session mode %q", ErrInvalidInput, req.SessionMode)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата записи попадает в допустимое окно бронирования
func (u *Usecase) validateDate(date time.Time, now time.Time, cfg *domain.ProviderSchedulingConfig) error {
	today := truncateToDay(now)
	day := truncateToDay(date)

	if day.Before(today) {
		return fmt.Errorf("%w: date %s is in the past", ErrInvalidDate, day.Format(domain.DateFormat))
	}

	if cfg.HasAdvanceBookingLimit() {
		horizon := today.AddDate(0, 0, cfg.AdvanceBookingDays)
		if day.After(horizon) {
			return fmt.Errorf("%w: bookings are accepted at most %d days ahead",
				ErrDateTooFarInFuture, cfg.AdvanceBookingDays)
		}
	}

	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
