package types

import "errors"

var (
	// ErrInvalidTimeFormat возвращается, когда строка не соответствует формату HH:MM
	ErrInvalidTimeFormat = errors.New("types: invalid time string format")

	// ErrCrossesMidnight возвращается, когда интервал выходит за границу суток
	ErrCrossesMidnight = errors.New("types: time interval crosses midnight")
)
