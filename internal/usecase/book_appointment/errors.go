package book_appointment

import "errors"

var (
	// ErrProviderNotFound возвращается, когда специалист не найден
	ErrProviderNotFound = errors.New("book_appointment: provider not found")

	// ErrProviderUnavailable возвращается, когда специалист неактивен или не верифицирован
	ErrProviderUnavailable = errors.New("book_appointment: provider is not available for booking")

	// ErrProviderClosed возвращается, когда специалист не принимает в указанный день
	ErrProviderClosed = errors.New("book_appointment: provider does not work on this date")

	// ErrSlotConflict возвращается, когда интервал пересекается с существующей записью
	ErrSlotConflict = errors.New("book_appointment: time slot conflicts with an existing appointment")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("book_appointment: invalid appointment date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("book_appointment: date is too far in the future")

	// ErrTooLateToBook возвращается, когда бронирование нарушает minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("book_appointment: too late to book this slot")

	// ErrInvalidTimeSlot возвращается, когда интервал некорректен (в т.ч. выходит за границу суток)
	ErrInvalidTimeSlot = errors.New("book_appointment: invalid time slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_appointment: internal error")
)
