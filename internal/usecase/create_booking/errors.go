package create_booking

import "errors"

var (
	// ErrCycleNotFound возвращается, когда велосипед не найден
	ErrCycleNotFound = errors.New("create_booking: cycle not found")

	// ErrCycleUnavailable возвращается, когда велосипед выведен из строя.
	// Не путать с конфликтом дат: это состояние инвентаря, а не занятость.
	ErrCycleUnavailable = errors.New("create_booking: cycle is out of service")

	// ErrDateConflict возвращается, когда запрошенный диапазон пересекается
	// с существующим occupying-бронированием этого велосипеда
	ErrDateConflict = errors.New("create_booking: dates conflict with an existing booking")

	// ErrAccessoryNotFound возвращается, когда один из запрошенных аксессуаров не найден
	ErrAccessoryNotFound = errors.New("create_booking: accessory not found")

	// ErrInvalidRange возвращается при некорректном диапазоне дат
	ErrInvalidRange = errors.New("create_booking: invalid date range")

	// ErrDateInPast возвращается, когда начало аренды в прошлом
	ErrDateInPast = errors.New("create_booking: start date is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
