package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
	StatusNoShow    AppointmentStatus = "no_show"
)

// SessionType represents the kind of session being booked
type SessionType string

const (
	SessionIndividual SessionType = "individual"
	SessionGroup      SessionType = "group"
	SessionCouple     SessionType = "couple"
)

// SessionMode represents how the session is delivered
type SessionMode string

const (
	ModeVideo    SessionMode = "video"
	ModeAudio    SessionMode = "audio"
	ModeChat     SessionMode = "chat"
	ModeInPerson SessionMode = "in_person"
)

// PaymentStatus отслеживается, но списание средств выполняет внешняя система
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Appointment represents a scheduled session between a client and a provider
type Appointment struct {
	ID         int64
	ClientID   int64
	ProviderID int64

	Date            time.Time // Календарный день, без времени
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int

	SessionType SessionType
	SessionMode SessionMode
	Status      AppointmentStatus

	// Amount фиксируется при создании и больше не пересчитывается
	Amount        float64
	PaymentStatus PaymentStatus

	// Denormalized data for history
	ProviderName       string
	ProviderHourlyRate float64

	Rating             *int
	Review             *string
	CancellationReason *string
	Notes              *string

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true if the appointment still occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsTerminal returns true if no further status transition is permitted
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCancelled || a.Status == StatusCompleted || a.Status == StatusNoShow
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanBeReviewed returns true if a rating/review may be attached
func (a *Appointment) CanBeReviewed() bool {
	return a.Status == StatusCompleted
}

// CanTransitionTo reports whether the status transition is legal.
// Terminal statuses admit no transitions; pending and confirmed may move
// to any of confirmed, cancelled, completed or no_show.
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	if a.IsTerminal() {
		return false
	}

	switch next {
	case StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	default:
		return false
	}
}

// Overlaps reports whether the [StartTime, EndTime) interval of the
// appointment intersects the given half-open interval.
func (a *Appointment) Overlaps(start, end types.TimeString) bool {
	return types.Overlaps(a.StartTime, a.EndTime, start, end)
}

// ValidStatus reports whether s is a known appointment status
func ValidStatus(s AppointmentStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	default:
		return false
	}
}

// ValidSessionType reports whether t is a known session type
func ValidSessionType(t SessionType) bool {
	switch t {
	case SessionIndividual, SessionGroup, SessionCouple:
		return true
	default:
		return false
	}
}

// ValidSessionMode reports whether m is a known session mode
func ValidSessionMode(m SessionMode) bool {
	switch m {
	case ModeVideo, ModeAudio, ModeChat, ModeInPerson:
		return true
	default:
		return false
	}
}

// AppointmentAmount вычисляет стоимость по часовой ставке специалиста
func AppointmentAmount(hourlyRate float64, durationMinutes int) float64 {
	return hourlyRate / 60.0 * float64(durationMinutes)
}

// ProviderAppointmentsFilter фильтр для выборки записей специалиста
type ProviderAppointmentsFilter struct {
	ProviderID      int64              // Обязательный параметр
	Date            *time.Time         // Конкретная дата (опционально)
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые и no-show
}
