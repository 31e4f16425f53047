package domain

// Default scheduling configuration values
const (
	DefaultSlotDurationMinutes     = 60
	DefaultAdvanceBookingDays      = 0  // 0 = unlimited
	DefaultMinBookingNoticeMinutes = 60 // 1 hour

	// Окно по умолчанию, когда в шаблоне специалиста нет записи на этот день
	DefaultWorkDayStart = "09:00"
	DefaultWorkDayEnd   = "18:00"
)

// Business validation constants
const (
	MinAppointmentDurationMinutes = 30
	MaxAppointmentDurationMinutes = 180

	MinRating = 1
	MaxRating = 5

	MinAdvanceBookingDays   = 0
	MaxAdvanceBookingDays   = 365 // 1 year
	MinBookingNoticeMinutes = 0
	MaxBookingNoticeMinutes = 10080 // 1 week

	MaxNotesLength              = 500
	MaxReviewLength             = 2000
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список статусов, занимающих слот
// Используется при проверке конфликтов бронирования
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}

// TerminalStatuses список финальных статусов
var TerminalStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusCompleted,
	StatusNoShow,
}
