package get_quote

import "errors"

var (
	// ErrCycleNotFound возвращается, когда велосипед не найден
	ErrCycleNotFound = errors.New("get_quote: cycle not found")

	// ErrAccessoryNotFound возвращается, когда один из запрошенных аксессуаров не найден
	ErrAccessoryNotFound = errors.New("get_quote: accessory not found")

	// ErrInvalidRange возвращается при некорректном диапазоне дат
	ErrInvalidRange = errors.New("get_quote: invalid date range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_quote: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_quote: internal error")
)
