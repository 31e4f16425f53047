package get_available_slots

import "errors"

var (
	// ErrProviderNotFound возвращается, когда специалист не найден
	ErrProviderNotFound = errors.New("get_available_slots: provider not found")

	// ErrProviderUnavailable возвращается, когда специалист неактивен или не верифицирован
	ErrProviderUnavailable = errors.New("get_available_slots: provider is not available for booking")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("get_available_slots: date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
