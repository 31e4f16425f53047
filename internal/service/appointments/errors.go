package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	// либо недоступна для запрашивающего. Наличие чужих записей не раскрывается.
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrCannotCancel возвращается, когда запись не может быть отменена
	ErrCannotCancel = errors.New("appointment cannot be cancelled")

	// ErrNotReviewable возвращается, когда отзыв оставить нельзя:
	// запись не завершена или принадлежит другому клиенту
	ErrNotReviewable = errors.New("appointment cannot be reviewed")

	// ErrConcurrentUpdate возвращается, когда статус записи изменился
	// между чтением и условным обновлением
	ErrConcurrentUpdate = errors.New("appointment was modified concurrently")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
