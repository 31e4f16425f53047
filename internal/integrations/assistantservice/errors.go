package assistantservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("assistantservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("assistantservice client: invalid response")

	// ErrUnavailable возвращается, когда ассистент недоступен
	ErrUnavailable = errors.New("assistantservice client: assistant unavailable")
)
