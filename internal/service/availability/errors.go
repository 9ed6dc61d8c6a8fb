package availability

import "errors"

var (
	// ErrCycleNotFound возвращается, когда велосипед не найден
	ErrCycleNotFound = errors.New("availability: cycle not found")

	// ErrCycleUnavailable возвращается, когда велосипед выведен из
	// строя (флаг available = false). Это отдельное от конфликта дат
	// условие: пользователю нужен другой велосипед, а не другие даты.
	ErrCycleUnavailable = errors.New("availability: cycle is out of service")

	// ErrInternal возвращается при внутренних ошибках проверки
	ErrInternal = errors.New("availability: internal error")
)
